package schema

import (
	"maps"
	"math"
	"strings"
	"unicode"
)

// EvaluationKey builds the persisted key for a (period, task) pair.
// The period is an opaque partition prefix and is never parsed.
func EvaluationKey(period, taskID string) string {
	return period + "-" + taskID
}

// Clamp bounds v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// NewEvaluationData seeds a record for the given rules: every input at 0,
// the given qualitative score, and an empty opinion.
func NewEvaluationData(rules []MetricRule, qualitative float64) TaskEvaluationData {
	metrics := make(map[string]MetricData, len(rules))
	for _, r := range rules {
		metrics[r.ID] = MetricData{ConfigID: r.ID, InputValue: 0}
	}
	return TaskEvaluationData{
		Metrics:            metrics,
		QualitativeScore:   Clamp(qualitative, MinScore, MaxScore),
		QualitativeOpinion: "",
	}
}

// Clone returns a deep copy of the record.
func (d TaskEvaluationData) Clone() TaskEvaluationData {
	clone := d
	if d.Metrics != nil {
		clone.Metrics = make(map[string]MetricData, len(d.Metrics))
		maps.Copy(clone.Metrics, d.Metrics)
	}
	return clone
}

// Clone returns a deep copy of the map.
func (m EvaluationMap) Clone() EvaluationMap {
	clone := make(EvaluationMap, len(m))
	for k, v := range m {
		clone[k] = v.Clone()
	}
	return clone
}

// cleanParts trims punctuation from both ends of every name part.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
		})
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Cheolsu Kim" to "Cheolsu K" for narrow tables.
// Single-word names are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	cleaned := cleanParts(strings.Fields(trimmed))

	switch {
	case len(cleaned) >= 2:
		last := []rune(cleaned[len(cleaned)-1])
		return cleaned[0] + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmed
	}
}
