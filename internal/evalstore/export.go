package evalstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/parquet"
	"github.com/huangsam/appraise/schema"
)

// Export formats supported by ExecuteExport.
const (
	JSONFormat    = "json"
	ParquetFormat = "parquet"
)

// ExecuteExport writes every stored record in the given format.
// JSON goes to outputFile, or to w when outputFile is empty. Parquet needs a file.
func ExecuteExport(ctx context.Context, store contract.EvaluationStore, format, outputFile string, w io.Writer) error {
	evals, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load evaluations: %w", err)
	}

	switch format {
	case JSONFormat, "":
		raw, err := json.MarshalIndent(evals, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode evaluations: %w", err)
		}
		if outputFile == "" {
			_, err = fmt.Fprintln(w, string(raw))
			return err
		}
		if err := os.WriteFile(outputFile, append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		_, _ = fmt.Fprintf(w, "Exported %d evaluations to: %s\n", len(evals), outputFile)
		return nil

	case ParquetFormat:
		if outputFile == "" {
			return errors.New("--output-file is required for parquet export")
		}
		if len(evals) == 0 {
			return errors.New("no evaluation data found to export")
		}
		rows := parquet.ConvertEvaluations(evals)
		if err := parquet.WriteEvaluationsParquet(rows, outputFile); err != nil {
			return fmt.Errorf("failed to write evaluations: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Exported %d evaluations (%d metric rows) to: %s\n", len(evals), len(rows), outputFile)
		return nil

	default:
		return fmt.Errorf("unsupported export format: %s. Must be json or parquet", format)
	}
}

// ExecuteImport merges the records of a JSON blob or Parquet export into the store
// and returns how many were merged. Qualitative scores are clamped to [0, 100].
func ExecuteImport(ctx context.Context, store contract.EvaluationStore, inputFile string) (int, error) {
	evals, err := readImportFile(inputFile)
	if err != nil {
		return 0, err
	}

	for key, data := range evals {
		if data.Metrics == nil {
			data.Metrics = map[string]schema.MetricData{}
		}
		data.QualitativeScore = schema.Clamp(data.QualitativeScore, schema.MinScore, schema.MaxScore)
		evals[key] = data
	}

	if err := store.SaveAll(ctx, evals); err != nil {
		return 0, fmt.Errorf("failed to save imported evaluations: %w", err)
	}
	return len(evals), nil
}

func readImportFile(inputFile string) (schema.EvaluationMap, error) {
	if strings.EqualFold(filepath.Ext(inputFile), "."+ParquetFormat) {
		rows, err := parquet.ReadEvaluationsParquet(inputFile)
		if err != nil {
			return nil, err
		}
		return parquet.RestoreEvaluations(rows), nil
	}

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputFile, err)
	}
	var evals schema.EvaluationMap
	if err := json.Unmarshal(raw, &evals); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", inputFile, err)
	}
	if evals == nil {
		evals = schema.EvaluationMap{}
	}
	return evals, nil
}
