package algo

import (
	"testing"

	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assigneeResult(id string, final float64) schema.AssigneeResult {
	return schema.AssigneeResult{
		Assignee: schema.Assignee{ID: id, Name: id},
		Result:   schema.EvaluationResult{FinalScore: final, Grade: GradeFor(final)},
	}
}

func TestRankAssignees(t *testing.T) {
	tests := []struct {
		name     string
		input    []schema.AssigneeResult
		limit    int
		expected []string
	}{
		{
			name:     "descending by final score",
			input:    []schema.AssigneeResult{assigneeResult("a", 70), assigneeResult("b", 91), assigneeResult("c", 80)},
			limit:    0,
			expected: []string{"b", "c", "a"},
		},
		{
			name:     "ties broken by id",
			input:    []schema.AssigneeResult{assigneeResult("z", 80), assigneeResult("m", 80), assigneeResult("a", 60)},
			limit:    0,
			expected: []string{"m", "z", "a"},
		},
		{
			name:     "limit applied",
			input:    []schema.AssigneeResult{assigneeResult("a", 10), assigneeResult("b", 20), assigneeResult("c", 30)},
			limit:    2,
			expected: []string{"c", "b"},
		},
		{
			name:     "limit larger than input",
			input:    []schema.AssigneeResult{assigneeResult("a", 10)},
			limit:    5,
			expected: []string{"a"},
		},
		{
			name:     "empty",
			input:    nil,
			limit:    3,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankAssignees(tt.input, tt.limit)
			require.Len(t, ranked, len(tt.expected))
			for i, r := range ranked {
				assert.Equal(t, tt.expected[i], r.Assignee.ID)
				assert.Equal(t, i+1, r.Rank)
			}
		})
	}
}

func TestGradeDistribution(t *testing.T) {
	results := []schema.AssigneeResult{
		assigneeResult("a", 95), assigneeResult("b", 85), assigneeResult("c", 84), assigneeResult("d", 10),
	}
	dist := GradeDistribution(results)
	assert.Equal(t, 1, dist[schema.GradeS])
	assert.Equal(t, 2, dist[schema.GradeA])
	assert.Equal(t, 0, dist[schema.GradeB])
	assert.Equal(t, 1, dist[schema.GradeC])
}
