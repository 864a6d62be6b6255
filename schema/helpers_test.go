package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Cheolsu", "Cheolsu"},
		{"Cheolsu Kim", "Cheolsu K"},
		{"Younghee Lee Senior", "Younghee S"},
		{"  Alice  ", "Alice"},
		{"John   Doe", "John D"},
		{"Anne-Marie Smith", "Anne-Marie S"},
		{"O'Neill John", "O'Neill J"},
		{"[John Smith]", "John S"},
		{"Hans Müller", "Hans M"},
		{"김 철수", "김 철"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbbreviateName(tt.name))
		})
	}
}

func TestEvaluationKey(t *testing.T) {
	assert.Equal(t, "2025-H1-t1", EvaluationKey("2025-H1", "t1"))
	assert.Equal(t, "2025-H2-task-7", EvaluationKey("2025-H2", "task-7"))
	assert.Equal(t, "-t1", EvaluationKey("", "t1"))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"inside", 42, 42},
		{"below", -5, 0},
		{"above", 120, 100},
		{"lower bound", 0, 0},
		{"upper bound", 100, 100},
		{"nan", math.NaN(), 0},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.value, MinScore, MaxScore))
		})
	}
}

func TestNewEvaluationData(t *testing.T) {
	rules := []MetricRule{{ID: "a"}, {ID: "b"}}

	data := NewEvaluationData(rules, DefaultQualitativeScore)
	require.Len(t, data.Metrics, 2)
	assert.Equal(t, MetricData{ConfigID: "a", InputValue: 0}, data.Metrics["a"])
	assert.Equal(t, MetricData{ConfigID: "b", InputValue: 0}, data.Metrics["b"])
	assert.Equal(t, 80.0, data.QualitativeScore)
	assert.Empty(t, data.QualitativeOpinion)

	clamped := NewEvaluationData(rules, 250)
	assert.Equal(t, 100.0, clamped.QualitativeScore)
}

func TestEvaluationMapClone(t *testing.T) {
	original := EvaluationMap{
		"2025-H1-t1": {
			Metrics:          map[string]MetricData{"a": {ConfigID: "a", InputValue: 3}},
			QualitativeScore: 70,
		},
	}

	clone := original.Clone()
	rec := clone["2025-H1-t1"]
	rec.Metrics["a"] = MetricData{ConfigID: "a", InputValue: 99}
	clone["2025-H1-t1"] = rec

	assert.Equal(t, 3.0, original["2025-H1-t1"].Metrics["a"].InputValue)
	assert.Equal(t, 99.0, clone["2025-H1-t1"].Metrics["a"].InputValue)
}
