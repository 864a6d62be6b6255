package algo

import (
	"math"

	"github.com/huangsam/appraise/schema"
)

// Evaluate converts a raw input into a score using the function selected by kind.
// It is total over float64: unknown kinds and NaN inputs score 0.
func Evaluate(kind schema.RuleKind, input float64) float64 {
	if math.IsNaN(input) {
		return 0
	}
	switch kind {
	case schema.PlanSpecificityKind:
		return planSpecificity(input)
	case schema.ScheduleChangesKind:
		return math.Max(0, 100-input*10)
	case schema.StartComplianceKind, schema.DeadlineComplianceKind:
		return schema.Clamp(input, schema.MinScore, schema.MaxScore)
	case schema.DelayDaysKind:
		return math.Max(0, 100-input)
	default:
		return 0
	}
}

// planSpecificity loses 10 points for every full 5 days beyond 100, reaching 0 at 150.
func planSpecificity(days float64) float64 {
	switch {
	case days <= 100:
		return 100
	case days > 150:
		return 0
	}
	steps := math.Floor((days - 100) / 5)
	return math.Max(0, 100-steps*10)
}

// unifiedRules is the canonical rule set shared by every task type.
var unifiedRules = []schema.MetricRule{
	{
		ID:          string(schema.PlanSpecificityKind),
		Category:    schema.PlanningCategory,
		Name:        "Plan specificity",
		Description: "Average span of level-2 plan items",
		Criteria:    "<=100d: 100, -10 per 5d over, >150d: 0",
		Weight:      20,
		Kind:        schema.PlanSpecificityKind,
		Unit:        "days",
		Placeholder: "span",
	},
	{
		ID:          string(schema.ScheduleChangesKind),
		Category:    schema.PlanningCategory,
		Name:        "Schedule changes",
		Description: "Number of schedule changes after baseline",
		Criteria:    "100 - 10 per change",
		Weight:      20,
		Kind:        schema.ScheduleChangesKind,
		Unit:        "times",
		Placeholder: "changes",
	},
	{
		ID:          string(schema.StartComplianceKind),
		Category:    schema.OperationCategory,
		Name:        "Start-date compliance",
		Description: "Share of items started on the planned date",
		Criteria:    "rate = score",
		Weight:      20,
		Kind:        schema.StartComplianceKind,
		Unit:        "%",
		Placeholder: "rate",
	},
	{
		ID:          string(schema.DeadlineComplianceKind),
		Category:    schema.OperationCategory,
		Name:        "Deadline compliance",
		Description: "Share of items finished by the deadline",
		Criteria:    "rate = score",
		Weight:      20,
		Kind:        schema.DeadlineComplianceKind,
		Unit:        "%",
		Placeholder: "rate",
	},
	{
		ID:          string(schema.DelayDaysKind),
		Category:    schema.OperationCategory,
		Name:        "Delay days",
		Description: "Total days of delay across items",
		Criteria:    "100 - 1 per day",
		Weight:      20,
		Kind:        schema.DelayDaysKind,
		Unit:        "days",
		Placeholder: "delay",
	},
}

// UnifiedRules returns a fresh copy of the canonical rule set.
func UnifiedRules() []schema.MetricRule {
	rules := make([]schema.MetricRule, len(unifiedRules))
	copy(rules, unifiedRules)
	return rules
}

// RuleSetFor maps a task type to its rule set. Every type currently shares the
// unified set; unknown types fall back to it as well so the mapping stays total.
func RuleSetFor(_ schema.TaskType) []schema.MetricRule {
	return UnifiedRules()
}

// RuleBook holds the rule set for each task type.
type RuleBook struct {
	sets map[schema.TaskType][]schema.MetricRule
}

// DefaultRuleBook maps every task type to the unified rule set.
func DefaultRuleBook() RuleBook {
	sets := make(map[schema.TaskType][]schema.MetricRule, len(schema.AllTaskTypes))
	for _, t := range schema.AllTaskTypes {
		sets[t] = RuleSetFor(t)
	}
	return RuleBook{sets: sets}
}

// NewRuleBook builds a book from explicit rule sets. Types without an entry use the unified set.
func NewRuleBook(sets map[schema.TaskType][]schema.MetricRule) RuleBook {
	book := DefaultRuleBook()
	for t, rules := range sets {
		cp := make([]schema.MetricRule, len(rules))
		copy(cp, rules)
		book.sets[t] = cp
	}
	return book
}

// For returns a copy of the rule set for t.
func (b RuleBook) For(t schema.TaskType) []schema.MetricRule {
	rules, ok := b.sets[t]
	if !ok {
		return RuleSetFor(t)
	}
	cp := make([]schema.MetricRule, len(rules))
	copy(cp, rules)
	return cp
}

// WithWeights returns a new book where rules whose ID appears in overrides carry the new weight.
func (b RuleBook) WithWeights(overrides map[string]float64) RuleBook {
	sets := make(map[schema.TaskType][]schema.MetricRule, len(b.sets))
	for t := range b.sets {
		rules := b.For(t)
		for i := range rules {
			if w, ok := overrides[rules[i].ID]; ok {
				rules[i].Weight = w
			}
		}
		sets[t] = rules
	}
	return RuleBook{sets: sets}
}

// TaskTypes lists the task types in the book in canonical order.
func (b RuleBook) TaskTypes() []schema.TaskType {
	types := make([]schema.TaskType, 0, len(b.sets))
	for _, t := range schema.AllTaskTypes {
		if _, ok := b.sets[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// WeightSum adds up the weights of a rule set.
func WeightSum(rules []schema.MetricRule) float64 {
	sum := 0.0
	for _, r := range rules {
		sum += r.Weight
	}
	return sum
}

// HasRule reports whether any rule set in the book has the given rule ID.
func (b RuleBook) HasRule(id string) bool {
	for _, rules := range b.sets {
		for _, r := range rules {
			if r.ID == id {
				return true
			}
		}
	}
	return false
}
