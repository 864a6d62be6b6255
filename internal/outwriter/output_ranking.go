package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRanking outputs ranked assignee results, dispatching based on the output format configured.
func PrintRanking(results []schema.AssigneeResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingCSV(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, rankingSheets(results, cfg.Precision))
		}, "Wrote XLSX"); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		if err := writeRankingText(os.Stdout, results, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// displayName shortens long names to initials before truncating them.
func displayName(name string, width int) string {
	if len([]rune(name)) > width {
		name = schema.AbbreviateName(name)
	}
	return contract.TruncateText(name, width)
}

// writeRankingText prints the leaderboard table and the grade distribution.
func writeRankingText(w io.Writer, results []schema.AssigneeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Name", "Department", "Tasks", "Quant", "Qual", "Final", "Grade"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			displayName(r.Assignee.Name, nameWidth),
			r.Assignee.Department,
			strconv.Itoa(len(r.Result.TaskSummaries)),
			fmtFloat(r.Result.QuantConverted),
			fmtFloat(r.Result.QualConverted),
			fmtFloat(r.Result.FinalScore),
			gradeLabel(r.Result.Grade, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Showing %d assignees. Grades: %s\n", len(results), formatDistribution(algo.GradeDistribution(results)))
	fmt.Fprintf(w, "Ranked in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}

// formatDistribution renders grade counts from best to worst, e.g. "S=1 A=0 B=2 C=0".
func formatDistribution(dist map[schema.Grade]int) string {
	grades := []schema.Grade{schema.GradeS, schema.GradeA, schema.GradeB, schema.GradeC}
	parts := make([]string, 0, len(grades))
	for _, g := range grades {
		parts = append(parts, fmt.Sprintf("%s=%d", g, dist[g]))
	}
	return strings.Join(parts, " ")
}

func writeRankingCSV(w io.Writer, results []schema.AssigneeResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "assignee_id", "assignee", "department", "period", "tasks", "quant", "qual", "final_score", "grade", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			row := []string{
				strconv.Itoa(r.Rank),
				r.Assignee.ID,
				r.Assignee.Name,
				r.Assignee.Department,
				r.Period,
				strconv.Itoa(len(r.Result.TaskSummaries)),
				fmtFloat(r.Result.QuantConverted),
				fmtFloat(r.Result.QualConverted),
				fmtFloat(r.Result.FinalScore),
				string(r.Result.Grade),
				contract.GetPlainLabel(r.Result.Grade),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// rankingSheets lays out the leaderboard and every task summary on separate sheets.
func rankingSheets(results []schema.AssigneeResult, precision int) []xlsxSheet {
	ranking := xlsxSheet{
		name:   "Ranking",
		header: []string{"Rank", "Assignee", "Name", "Department", "Period", "Quant", "Qual", "Final", "Grade"},
	}
	tasks := xlsxSheet{
		name:   "Tasks",
		header: []string{"Assignee", "Task", "Task name", "Quant", "Qual", "Final", "Grade"},
	}
	for _, r := range results {
		ranking.rows = append(ranking.rows, []any{
			r.Rank, r.Assignee.ID, r.Assignee.Name, r.Assignee.Department, r.Period,
			roundTo(r.Result.QuantConverted, precision), roundTo(r.Result.QualConverted, precision),
			roundTo(r.Result.FinalScore, precision), string(r.Result.Grade),
		})
		for _, s := range r.Result.TaskSummaries {
			tasks.rows = append(tasks.rows, []any{
				r.Assignee.ID, s.TaskID, s.TaskName,
				roundTo(s.QuantConverted, precision), roundTo(s.QualConverted, precision),
				roundTo(s.FinalScore, precision), string(algo.GradeFor(s.FinalScore)),
			})
		}
	}
	return []xlsxSheet{ranking, tasks}
}
