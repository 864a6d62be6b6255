package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAssigneeResult outputs the comprehensive result of one assignee.
func PrintAssigneeResult(res schema.AssigneeResult, cfg *contract.Config, duration time.Duration) error {
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
			return writeAssigneeCSV(w, res, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, []xlsxSheet{assigneeSheet(res, cfg.Precision)})
		}, "Wrote XLSX"); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		if err := writeAssigneeText(os.Stdout, res, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeAssigneeText prints the comprehensive card and the per-task summary table.
func writeAssigneeText(w io.Writer, res schema.AssigneeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	subtitle := fmt.Sprintf("%s · %s · comprehensive", res.Assignee.Department, res.Period)
	fmt.Fprintln(w, renderScoreCard(res.Assignee.Name, subtitle, res.Result, fmtFloat, cfg.UseColors))

	if len(res.Result.TaskSummaries) == 0 {
		fmt.Fprintln(w, "No tasks assigned in this period.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Task", "Name", "Quant", "Qual", "Final", "Grade"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range res.Result.TaskSummaries {
		data = append(data, []string{
			s.TaskID,
			contract.TruncateText(s.TaskName, nameWidth),
			fmtFloat(s.QuantConverted),
			fmtFloat(s.QualConverted),
			fmtFloat(s.FinalScore),
			gradeLabel(algo.GradeFor(s.FinalScore), cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Averaged %d tasks in %v. Store backend: %s\n", len(res.Result.TaskSummaries), duration, cfg.StoreBackend)
	return nil
}

// writeAssigneeCSV writes one row per task followed by the comprehensive row.
func writeAssigneeCSV(w io.Writer, res schema.AssigneeResult, fmtFloat func(float64) string) error {
	header := []string{"assignee_id", "assignee", "period", "task_id", "task", "quant", "qual", "final_score", "grade"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range res.Result.TaskSummaries {
			row := []string{
				res.Assignee.ID, res.Assignee.Name, res.Period, s.TaskID, s.TaskName,
				fmtFloat(s.QuantConverted), fmtFloat(s.QualConverted), fmtFloat(s.FinalScore),
				string(algo.GradeFor(s.FinalScore)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		r := res.Result
		return cw.Write([]string{
			res.Assignee.ID, res.Assignee.Name, res.Period, "", "comprehensive",
			fmtFloat(r.QuantConverted), fmtFloat(r.QualConverted), fmtFloat(r.FinalScore), string(r.Grade),
		})
	})
}

func assigneeSheet(res schema.AssigneeResult, precision int) xlsxSheet {
	sheet := xlsxSheet{
		name:   "Assignee",
		header: []string{"Assignee", "Name", "Period", "Task", "Task name", "Quant", "Qual", "Final", "Grade"},
	}
	for _, s := range res.Result.TaskSummaries {
		sheet.rows = append(sheet.rows, []any{
			res.Assignee.ID, res.Assignee.Name, res.Period, s.TaskID, s.TaskName,
			roundTo(s.QuantConverted, precision), roundTo(s.QualConverted, precision),
			roundTo(s.FinalScore, precision), string(algo.GradeFor(s.FinalScore)),
		})
	}
	r := res.Result
	sheet.rows = append(sheet.rows, []any{
		res.Assignee.ID, res.Assignee.Name, res.Period, "", "comprehensive",
		roundTo(r.QuantConverted, precision), roundTo(r.QualConverted, precision),
		roundTo(r.FinalScore, precision), string(r.Grade),
	})
	return sheet
}
