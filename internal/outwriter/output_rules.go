package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ruleSetView is the serialized form of one task type's rule set.
type ruleSetView struct {
	TaskType  schema.TaskType     `json:"taskType"`
	WeightSum float64             `json:"weightSum"`
	Rules     []schema.MetricRule `json:"rules"`
}

func buildRuleSetViews(book algo.RuleBook) []ruleSetView {
	var views []ruleSetView
	for _, t := range book.TaskTypes() {
		rules := book.For(t)
		views = append(views, ruleSetView{TaskType: t, WeightSum: algo.WeightSum(rules), Rules: rules})
	}
	return views
}

// PrintRules outputs the active rule set for every task type.
func PrintRules(book algo.RuleBook, cfg *contract.Config) error {
	views := buildRuleSetViews(book)
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, views)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesCSV(w, views, fmtFloat)
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, []xlsxSheet{rulesSheet(views)})
		}, "Wrote XLSX")
	default:
		return writeRulesText(os.Stdout, views, fmtFloat)
	}
}

func writeRulesText(w io.Writer, views []ruleSetView, fmtFloat func(float64) string) error {
	for _, v := range views {
		fmt.Fprintf(w, "📐 %s (weights sum to %s)\n", v.TaskType, fmtFloat(v.WeightSum))

		table := tablewriter.NewWriter(w)
		table.Header([]string{"ID", "Metric", "Category", "Criteria", "Unit", "Weight"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})
		var data [][]string
		for _, r := range v.Rules {
			data = append(data, []string{r.ID, r.Name, string(r.Category), r.Criteria, r.Unit, fmtFloat(r.Weight)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Final = sum(weighted) x 0.7 + qualitative x 0.3. Grades: S >= 90, A >= 80, B >= 70, else C.")
	return nil
}

func writeRulesCSV(w io.Writer, views []ruleSetView, fmtFloat func(float64) string) error {
	header := []string{"task_type", "id", "metric", "category", "kind", "criteria", "unit", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range views {
			for _, r := range v.Rules {
				row := []string{string(v.TaskType), r.ID, r.Name, string(r.Category), string(r.Kind), r.Criteria, r.Unit, fmtFloat(r.Weight)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func rulesSheet(views []ruleSetView) xlsxSheet {
	sheet := xlsxSheet{
		name:   "Rules",
		header: []string{"Task type", "ID", "Metric", "Category", "Description", "Criteria", "Unit", "Weight"},
	}
	for _, v := range views {
		for _, r := range v.Rules {
			sheet.rows = append(sheet.rows, []any{
				string(v.TaskType), r.ID, r.Name, string(r.Category), r.Description, r.Criteria, r.Unit, r.Weight,
			})
		}
	}
	return sheet
}
