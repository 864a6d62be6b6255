package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTaskResult outputs one task result, dispatching based on the output format configured.
func PrintTaskResult(res schema.TaskResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaskCSV(w, res, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, taskSheets(res, cfg.Precision))
		}, "Wrote XLSX"); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		if err := writeTaskText(os.Stdout, res, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeTaskText prints the score card followed by the metric breakdown table.
func writeTaskText(w io.Writer, res schema.TaskResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	subtitle := fmt.Sprintf("%s · %s · %s", res.Task.ID, res.Task.Type, res.Period)
	fmt.Fprintln(w, renderScoreCard(res.Task.Name, subtitle, res.Result, fmtFloat, cfg.UseColors))

	if len(res.Result.Breakdown) == 0 {
		fmt.Fprintln(w, "No evaluation data for this task yet.")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Metric", "Category", "Input", "Raw", "Weight", "Weighted"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, m := range res.Result.Breakdown {
			data = append(data, []string{
				m.Rule.Name,
				string(m.Rule.Category),
				fmt.Sprintf("%s %s", fmtFloat(m.InputValue), m.Rule.Unit),
				fmtFloat(m.RawScore),
				fmtFloat(m.Rule.Weight),
				fmtFloat(m.WeightedScore),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if res.Result.QualitativeOpinion != "" {
		fmt.Fprintf(w, "Opinion: %s\n", res.Result.QualitativeOpinion)
	}
	fmt.Fprintf(w, "Scored in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}

// writeTaskCSV writes one row per metric. Task-level scores repeat on every row.
func writeTaskCSV(w io.Writer, res schema.TaskResult, fmtFloat func(float64) string) error {
	header := []string{
		"task_id", "period", "metric_id", "metric", "category", "input", "unit",
		"raw_score", "weight", "weighted_score", "final_score", "grade",
	}
	final := fmtFloat(res.Result.FinalScore)
	grade := string(res.Result.Grade)

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if len(res.Result.Breakdown) == 0 {
			return cw.Write([]string{res.Task.ID, res.Period, "", "", "", "", "", "", "", "", final, grade})
		}
		for _, m := range res.Result.Breakdown {
			row := []string{
				res.Task.ID,
				res.Period,
				m.Rule.ID,
				m.Rule.Name,
				string(m.Rule.Category),
				fmtFloat(m.InputValue),
				m.Rule.Unit,
				fmtFloat(m.RawScore),
				fmtFloat(m.Rule.Weight),
				fmtFloat(m.WeightedScore),
				final,
				grade,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// taskSheets lays out a task result as a summary sheet and a breakdown sheet.
func taskSheets(res schema.TaskResult, precision int) []xlsxSheet {
	r := res.Result
	summary := xlsxSheet{
		name:   "Summary",
		header: []string{"Task", "Name", "Type", "Period", "Quant", "Qual", "Final", "Grade", "Opinion"},
		rows: [][]any{{
			res.Task.ID, res.Task.Name, string(res.Task.Type), res.Period,
			roundTo(r.QuantConverted, precision), roundTo(r.QualConverted, precision),
			roundTo(r.FinalScore, precision), string(r.Grade), r.QualitativeOpinion,
		}},
	}
	breakdown := xlsxSheet{
		name:   "Breakdown",
		header: []string{"Metric", "Category", "Input", "Unit", "Raw", "Weight", "Weighted"},
	}
	for _, m := range r.Breakdown {
		breakdown.rows = append(breakdown.rows, []any{
			m.Rule.Name, string(m.Rule.Category), m.InputValue, m.Rule.Unit,
			roundTo(m.RawScore, precision), m.Rule.Weight, roundTo(m.WeightedScore, precision),
		})
	}
	return []xlsxSheet{summary, breakdown}
}
