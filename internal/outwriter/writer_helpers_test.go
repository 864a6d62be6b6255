package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 1", 1, 66.04, "66.0"},
		{"precision 2", 2, 66.045, "66.05"},
		{"precision 0", 0, 89.6, "90"},
		{"negative value", 1, -12.34, "-12.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, createFormatters(tt.precision)(tt.value))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 66.0, roundTo(66.04, 1))
	assert.Equal(t, 89.99, roundTo(89.994, 2))
	assert.Equal(t, 90.0, roundTo(89.96, 1))
}

func TestGradeLabel(t *testing.T) {
	assert.Equal(t, "S (Outstanding)", gradeLabel(schema.GradeS, false))
	assert.Equal(t, "C (Needs work)", gradeLabel(schema.GradeC, false))
	assert.Contains(t, gradeLabel(schema.GradeB, true), "Solid")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, schema.MetricData{ConfigID: "delay_days", InputValue: 3}))
	assert.Equal(t, "{\n  \"configId\": \"delay_days\",\n  \"inputValue\": 3\n}\n", buf.String())
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"task", "opinion"}, func(w *csv.Writer) error {
		return w.Write([]string{"t1", "Clear plan, few changes"})
	})
	require.NoError(t, err)
	assert.Equal(t, "task,opinion\nt1,\"Clear plan, few changes\"\n", buf.String())
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"task"}, func(_ *csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileStdout(t *testing.T) {
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte(""))
		return err
	}, "Wrote test")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWriteWithFileActualFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.json")
	err := writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, sampleRanking())
	}, "Wrote JSON")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Len(t, decoded, 2)
}

func TestWriteWithFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := writeWithFile(path, func(_ io.Writer) error {
		return assert.AnError
	}, "Wrote CSV")
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	err := writeWithFile("/nonexistent/path/out.csv", func(_ io.Writer) error {
		return nil
	}, "Wrote CSV")
	require.Error(t, err)
}

func TestPrintTaskResultToFile(t *testing.T) {
	tests := []struct {
		output schema.OutputMode
		check  func(t *testing.T, content []byte)
	}{
		{schema.JSONOut, func(t *testing.T, content []byte) {
			var decoded schema.TaskResult
			require.NoError(t, json.Unmarshal(content, &decoded))
			assert.Equal(t, "t3", decoded.Task.ID)
			assert.Len(t, decoded.Result.Breakdown, 5)
		}},
		{schema.CSVOut, func(t *testing.T, content []byte) {
			lines := strings.Split(strings.TrimSpace(string(content)), "\n")
			assert.Len(t, lines, 6)
		}},
		{schema.XLSXOut, func(t *testing.T, content []byte) {
			assert.True(t, bytes.HasPrefix(content, []byte("PK")), "xlsx is a zip archive")
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			cfg := testConfig()
			cfg.Output = tt.output
			cfg.OutputFile = filepath.Join(t.TempDir(), "task."+string(tt.output))
			require.NoError(t, PrintTaskResult(sampleTaskResult(), cfg, 0))

			content, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			tt.check(t, content)
		})
	}
}

func TestPrintFeedbackJSON(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "feedback.json")
	out := FeedbackOutput{Subject: "Lee Younghee", Period: testPeriod, Result: sampleAssigneeResult().Result, Feedback: "Well done."}
	require.NoError(t, PrintFeedback(out, cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded FeedbackOutput
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "Well done.", decoded.Feedback)
	assert.True(t, decoded.Result.IsComprehensive)
}

func TestWriteScoreHeader(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Period: "2025-H1", StoreBackend: schema.BlobBackend}
	writeScoreHeader(&buf, cfg, "Kim Cheolsu")
	assert.Equal(t, "🔎 Subject: Kim Cheolsu\n📅 Period: 2025-H1 (Store: blob)\n", buf.String())
}
