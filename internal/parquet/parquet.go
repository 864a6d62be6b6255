// Package parquet provides data structures and functions for exporting evaluation
// inputs and ranking results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"

	"github.com/huangsam/appraise/schema"
	"github.com/parquet-go/parquet-go"
)

// EvaluationRow is one metric input of one stored evaluation record.
// A record without metric inputs is written as a single row with a null metric.
type EvaluationRow struct {
	// EvalKey is the persisted key of the record ("{period}-{taskId}")
	EvalKey string `parquet:"eval_key,snappy"`

	// MetricID is the rule the input belongs to (nullable)
	MetricID *string `parquet:"metric_id,optional,snappy"`

	// InputValue is the raw input entered for the metric (nullable)
	InputValue *float64 `parquet:"input_value,optional,snappy"`

	// QualitativeScore is the 0-100 qualitative score of the record
	QualitativeScore float64 `parquet:"qualitative_score,snappy"`

	// Opinion is the evaluator's free-text opinion (nullable)
	Opinion *string `parquet:"opinion,optional,snappy"`
}

// RankingRow is one assignee line of a ranking.
type RankingRow struct {
	Rank           int32   `parquet:"rank,snappy"`
	Period         string  `parquet:"period,snappy"`
	AssigneeID     string  `parquet:"assignee_id,snappy"`
	AssigneeName   string  `parquet:"assignee_name,snappy"`
	Department     string  `parquet:"department,snappy"`
	QuantConverted float64 `parquet:"quant_converted,snappy"`
	QualConverted  float64 `parquet:"qual_converted,snappy"`
	FinalScore     float64 `parquet:"final_score,snappy"`
	Grade          string  `parquet:"grade,snappy"`
	TaskCount      int32   `parquet:"task_count,snappy"`
}

// ConvertEvaluations flattens an evaluation map into rows, ordered by key and metric.
func ConvertEvaluations(evals schema.EvaluationMap) []EvaluationRow {
	keys := make([]string, 0, len(evals))
	for k := range evals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows []EvaluationRow
	for _, key := range keys {
		data := evals[key]
		var opinion *string
		if data.QualitativeOpinion != "" {
			op := data.QualitativeOpinion
			opinion = &op
		}

		if len(data.Metrics) == 0 {
			rows = append(rows, EvaluationRow{EvalKey: key, QualitativeScore: data.QualitativeScore, Opinion: opinion})
			continue
		}

		metricIDs := make([]string, 0, len(data.Metrics))
		for id := range data.Metrics {
			metricIDs = append(metricIDs, id)
		}
		sort.Strings(metricIDs)
		for _, id := range metricIDs {
			metricID := id
			value := data.Metrics[id].InputValue
			rows = append(rows, EvaluationRow{
				EvalKey:          key,
				MetricID:         &metricID,
				InputValue:       &value,
				QualitativeScore: data.QualitativeScore,
				Opinion:          opinion,
			})
		}
	}
	return rows
}

// RestoreEvaluations groups rows back into an evaluation map.
func RestoreEvaluations(rows []EvaluationRow) schema.EvaluationMap {
	evals := make(schema.EvaluationMap)
	for _, row := range rows {
		data, ok := evals[row.EvalKey]
		if !ok {
			data = schema.TaskEvaluationData{Metrics: map[string]schema.MetricData{}}
		}
		data.QualitativeScore = row.QualitativeScore
		if row.Opinion != nil {
			data.QualitativeOpinion = *row.Opinion
		}
		if row.MetricID != nil {
			var value float64
			if row.InputValue != nil {
				value = *row.InputValue
			}
			data.Metrics[*row.MetricID] = schema.MetricData{ConfigID: *row.MetricID, InputValue: value}
		}
		evals[row.EvalKey] = data
	}
	return evals
}

// ConvertRanking converts ranked assignee results into rows.
func ConvertRanking(results []schema.AssigneeResult) []RankingRow {
	rows := make([]RankingRow, len(results))
	for i, r := range results {
		rows[i] = RankingRow{
			Rank:           int32(r.Rank),
			Period:         r.Period,
			AssigneeID:     r.Assignee.ID,
			AssigneeName:   r.Assignee.Name,
			Department:     r.Assignee.Department,
			QuantConverted: r.Result.QuantConverted,
			QualConverted:  r.Result.QualConverted,
			FinalScore:     r.Result.FinalScore,
			Grade:          string(r.Result.Grade),
			TaskCount:      int32(len(r.Result.TaskSummaries)),
		}
	}
	return rows
}

// WriteEvaluationsParquet writes evaluation rows to a Parquet file.
func WriteEvaluationsParquet(data []EvaluationRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankingParquet writes ranking rows to a Parquet file.
func WriteRankingParquet(data []RankingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ReadEvaluationsParquet reads evaluation rows back from a Parquet file.
func ReadEvaluationsParquet(inputPath string) ([]EvaluationRow, error) {
	rows, err := parquet.ReadFile[EvaluationRow](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}

// ReadRankingParquet reads ranking rows back from a Parquet file.
func ReadRankingParquet(inputPath string) ([]RankingRow, error) {
	rows, err := parquet.ReadFile[RankingRow](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
