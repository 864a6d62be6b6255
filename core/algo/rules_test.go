package algo

import (
	"math"
	"testing"

	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		kind     schema.RuleKind
		input    float64
		expected float64
	}{
		{"plan specificity zero days", schema.PlanSpecificityKind, 0, 100},
		{"plan specificity at 100", schema.PlanSpecificityKind, 100, 100},
		{"plan specificity at 101", schema.PlanSpecificityKind, 101, 100},
		{"plan specificity at 105", schema.PlanSpecificityKind, 105, 90},
		{"plan specificity at 109", schema.PlanSpecificityKind, 109, 90},
		{"plan specificity at 125", schema.PlanSpecificityKind, 125, 50},
		{"plan specificity at 149", schema.PlanSpecificityKind, 149, 10},
		{"plan specificity at 150", schema.PlanSpecificityKind, 150, 0},
		{"plan specificity at 151", schema.PlanSpecificityKind, 151, 0},
		{"plan specificity negative", schema.PlanSpecificityKind, -20, 100},

		{"schedule changes zero", schema.ScheduleChangesKind, 0, 100},
		{"schedule changes nine", schema.ScheduleChangesKind, 9, 10},
		{"schedule changes ten", schema.ScheduleChangesKind, 10, 0},
		{"schedule changes fifteen", schema.ScheduleChangesKind, 15, 0},
		{"schedule changes fractional", schema.ScheduleChangesKind, 2.5, 75},

		{"start compliance inside", schema.StartComplianceKind, 87.5, 87.5},
		{"start compliance above", schema.StartComplianceKind, 130, 100},
		{"start compliance below", schema.StartComplianceKind, -3, 0},
		{"deadline compliance inside", schema.DeadlineComplianceKind, 64, 64},
		{"deadline compliance above", schema.DeadlineComplianceKind, 101, 100},

		{"delay days zero", schema.DelayDaysKind, 0, 100},
		{"delay days 99", schema.DelayDaysKind, 99, 1},
		{"delay days 100", schema.DelayDaysKind, 100, 0},
		{"delay days 150", schema.DelayDaysKind, 150, 0},

		{"unknown kind", schema.RuleKind("unknown"), 50, 0},
		{"nan input", schema.DelayDaysKind, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.kind, tt.input))
		})
	}
}

func TestUnifiedRules(t *testing.T) {
	rules := UnifiedRules()
	require.Len(t, rules, 5)
	assert.InDelta(t, 100.0, WeightSum(rules), 1e-9)

	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
		assert.Equal(t, string(r.Kind), r.ID)
	}
	assert.Equal(t, []string{
		"plan_specificity", "schedule_changes", "start_compliance", "deadline_compliance", "delay_days",
	}, ids)

	// Mutating the copy must not leak into the canonical set
	rules[0].Weight = 99
	assert.Equal(t, 20.0, UnifiedRules()[0].Weight)
}

func TestRuleSetForIsTotal(t *testing.T) {
	for _, tt := range append(schema.AllTaskTypes, schema.TaskType("OTHER")) {
		t.Run(string(tt), func(t *testing.T) {
			rules := RuleSetFor(tt)
			assert.Len(t, rules, 5)
			assert.InDelta(t, 100.0, WeightSum(rules), 1e-9)
		})
	}
}

func TestRuleBook(t *testing.T) {
	book := DefaultRuleBook()
	assert.Equal(t, schema.AllTaskTypes, book.TaskTypes())
	assert.True(t, book.HasRule("delay_days"))
	assert.False(t, book.HasRule("missing"))

	t.Run("weights override", func(t *testing.T) {
		custom := book.WithWeights(map[string]float64{"plan_specificity": 40, "delay_days": 0})
		rules := custom.For(schema.PlanningTask)
		assert.Equal(t, 40.0, rules[0].Weight)
		assert.Equal(t, 0.0, rules[4].Weight)
		assert.InDelta(t, 100.0, WeightSum(rules), 1e-9)

		// original is untouched
		assert.Equal(t, 20.0, book.For(schema.PlanningTask)[0].Weight)
	})

	t.Run("custom rule set per type", func(t *testing.T) {
		devRules := []schema.MetricRule{
			{ID: "delay_days", Kind: schema.DelayDaysKind, Weight: 100},
		}
		custom := NewRuleBook(map[schema.TaskType][]schema.MetricRule{schema.DevelopmentTask: devRules})
		assert.Len(t, custom.For(schema.DevelopmentTask), 1)
		assert.Len(t, custom.For(schema.PlanningTask), 5)
	})

	t.Run("unknown type falls back", func(t *testing.T) {
		assert.Len(t, book.For(schema.TaskType("OTHER")), 5)
	})
}

func BenchmarkEvaluate(b *testing.B) {
	kinds := []schema.RuleKind{
		schema.PlanSpecificityKind, schema.ScheduleChangesKind, schema.StartComplianceKind,
		schema.DeadlineComplianceKind, schema.DelayDaysKind,
	}
	for b.Loop() {
		for i, k := range kinds {
			_ = Evaluate(k, float64(i*37))
		}
	}
}
