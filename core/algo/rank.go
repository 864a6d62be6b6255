package algo

import (
	"sort"

	"github.com/huangsam/appraise/schema"
)

// RankAssignees sorts comprehensive results by final score in descending order,
// breaking ties by assignee ID, assigns 1-based ranks and returns the top 'limit'.
// A limit of 0 or less keeps every result.
func RankAssignees(results []schema.AssigneeResult, limit int) []schema.AssigneeResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Result.FinalScore != results[j].Result.FinalScore {
			return results[i].Result.FinalScore > results[j].Result.FinalScore
		}
		return results[i].Assignee.ID < results[j].Assignee.ID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// GradeDistribution counts how many results fall into each grade.
func GradeDistribution(results []schema.AssigneeResult) map[schema.Grade]int {
	dist := map[schema.Grade]int{
		schema.GradeS: 0,
		schema.GradeA: 0,
		schema.GradeB: 0,
		schema.GradeC: 0,
	}
	for _, r := range results {
		dist[r.Result.Grade]++
	}
	return dist
}
