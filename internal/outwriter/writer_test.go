package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testPeriod = "2025-H1"

func testConfig() *contract.Config {
	return &contract.Config{
		Period:       testPeriod,
		Precision:    1,
		Output:       schema.TextOut,
		Width:        120,
		StoreBackend: schema.NoneBackend,
		Rules:        algo.DefaultRuleBook(),
	}
}

func sampleTaskResult() schema.TaskResult {
	task := schema.Task{ID: "t3", AssigneeID: "user2", Name: "Backend API refactoring", Type: schema.DevelopmentTask}
	data := schema.TaskEvaluationData{
		Metrics: map[string]schema.MetricData{
			"plan_specificity":    {ConfigID: "plan_specificity", InputValue: 112},
			"schedule_changes":    {ConfigID: "schedule_changes", InputValue: 2},
			"start_compliance":    {ConfigID: "start_compliance", InputValue: 90},
			"deadline_compliance": {ConfigID: "deadline_compliance", InputValue: 85},
			"delay_days":          {ConfigID: "delay_days", InputValue: 5},
		},
		QualitativeScore:   80,
		QualitativeOpinion: "Solid delivery",
	}
	return schema.TaskResult{Task: task, Period: testPeriod, Result: algo.ScoreTask(task, &data, algo.DefaultRuleBook())}
}

func sampleAssigneeResult() schema.AssigneeResult {
	tasks := []schema.Task{
		{ID: "t3", AssigneeID: "user2", Name: "Backend API refactoring", Type: schema.DevelopmentTask},
		{ID: "t4", AssigneeID: "user2", Name: "Payment system integration", Type: schema.DevelopmentTask},
	}
	evals := schema.EvaluationMap{
		schema.EvaluationKey(testPeriod, "t3"): schema.NewEvaluationData(algo.UnifiedRules(), 80),
	}
	return schema.AssigneeResult{
		Assignee: schema.Assignee{ID: "user2", Name: "Lee Younghee", Department: "Development team"},
		Period:   testPeriod,
		Result:   algo.Aggregate(tasks, evals, testPeriod, algo.DefaultRuleBook()),
	}
}

func sampleRanking() []schema.AssigneeResult {
	second := sampleAssigneeResult()
	first := schema.AssigneeResult{
		Assignee: schema.Assignee{ID: "user1", Name: "Kim Cheolsu", Department: "Planning team"},
		Period:   testPeriod,
		Result:   schema.EvaluationResult{FinalScore: 91, QuantConverted: 65, QualConverted: 26, Grade: schema.GradeS, IsComprehensive: true},
	}
	return algo.RankAssignees([]schema.AssigneeResult{second, first}, 0)
}

func TestWriteTaskText(t *testing.T) {
	res := sampleTaskResult()
	var buf bytes.Buffer
	require.NoError(t, writeTaskText(&buf, res, testConfig(), createFormatters(1), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Backend API refactoring")
	assert.Contains(t, out, "t3 · DEVELOPMENT · 2025-H1")
	assert.Contains(t, out, "Plan specificity")
	assert.Contains(t, out, "112.0 days")
	assert.Contains(t, out, "Opinion: Solid delivery")
	assert.Contains(t, out, "Store backend: none")
}

func TestWriteTaskTextNoData(t *testing.T) {
	res := schema.TaskResult{Task: schema.Task{ID: "t9", Name: "Empty"}, Period: testPeriod, Result: algo.ZeroResult()}
	var buf bytes.Buffer
	require.NoError(t, writeTaskText(&buf, res, testConfig(), createFormatters(1), 0))
	assert.Contains(t, buf.String(), "No evaluation data for this task yet.")
	assert.Contains(t, buf.String(), "C (Needs work)")
}

func TestWriteTaskCSV(t *testing.T) {
	res := sampleTaskResult()
	var buf bytes.Buffer
	require.NoError(t, writeTaskCSV(&buf, res, createFormatters(2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6) // header + 5 metrics
	assert.Equal(t, "task_id", records[0][0])
	assert.Equal(t, []string{"t3", testPeriod, "plan_specificity"}, records[1][:3])
	assert.Equal(t, "80.00", records[1][7]) // 112 days -> two 5-day steps
	for _, rec := range records[1:] {
		assert.Equal(t, string(res.Result.Grade), rec[11])
	}
}

func TestWriteTaskCSVNoData(t *testing.T) {
	res := schema.TaskResult{Task: schema.Task{ID: "t9"}, Period: testPeriod, Result: algo.ZeroResult()}
	var buf bytes.Buffer
	require.NoError(t, writeTaskCSV(&buf, res, createFormatters(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0.0", records[1][10])
	assert.Equal(t, "C", records[1][11])
}

func TestWriteAssigneeText(t *testing.T) {
	res := sampleAssigneeResult()
	var buf bytes.Buffer
	require.NoError(t, writeAssigneeText(&buf, res, testConfig(), createFormatters(1), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Lee Younghee")
	assert.Contains(t, out, "comprehensive")
	assert.Contains(t, out, "Payment system integration")
	assert.Contains(t, out, "Averaged 2 tasks")
}

func TestWriteAssigneeTextNoTasks(t *testing.T) {
	res := schema.AssigneeResult{Assignee: schema.Assignee{ID: "ghost", Name: "Ghost"}, Period: testPeriod, Result: algo.ZeroResult()}
	var buf bytes.Buffer
	require.NoError(t, writeAssigneeText(&buf, res, testConfig(), createFormatters(1), 0))
	assert.Contains(t, buf.String(), "No tasks assigned in this period.")
}

func TestWriteAssigneeCSV(t *testing.T) {
	res := sampleAssigneeResult()
	var buf bytes.Buffer
	require.NoError(t, writeAssigneeCSV(&buf, res, createFormatters(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 tasks + comprehensive
	assert.Equal(t, "t3", records[1][3])
	assert.Equal(t, "t4", records[2][3])
	assert.Equal(t, "0.0", records[2][7]) // no data -> zero
	assert.Equal(t, "comprehensive", records[3][4])
}

func TestWriteRankingText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankingText(&buf, sampleRanking(), testConfig(), createFormatters(1), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Kim Cheolsu")
	assert.Contains(t, out, "Lee Younghee")
	assert.Contains(t, out, "Showing 2 assignees")
	assert.Contains(t, out, "S=1")
	assert.Less(t, strings.Index(out, "Kim Cheolsu"), strings.Index(out, "Lee Younghee"))
}

func TestWriteRankingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankingCSV(&buf, sampleRanking(), createFormatters(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "user1"}, records[1][:2])
	assert.Equal(t, "Outstanding", records[1][10])
	assert.Equal(t, "2", records[2][0])
}

func TestWriteRankingJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleRanking()))

	var decoded []schema.AssigneeResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 1, decoded[0].Rank)
	assert.True(t, decoded[1].Result.IsComprehensive)
}

func TestWriteRulesText(t *testing.T) {
	var buf bytes.Buffer
	views := buildRuleSetViews(algo.DefaultRuleBook())
	require.NoError(t, writeRulesText(&buf, views, createFormatters(1)))

	out := buf.String()
	assert.Contains(t, out, "PLANNING (weights sum to 100.0)")
	assert.Contains(t, out, "DEVELOPMENT (weights sum to 100.0)")
	assert.Contains(t, out, "deadline_compliance")
}

func TestWriteRulesCSV(t *testing.T) {
	var buf bytes.Buffer
	book := algo.DefaultRuleBook().WithWeights(map[string]float64{"delay_days": 40})
	require.NoError(t, writeRulesCSV(&buf, buildRuleSetViews(book), createFormatters(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11) // header + 2 types x 5 rules
	assert.Equal(t, []string{"PLANNING", "delay_days"}, records[5][:2])
	assert.Equal(t, "40.0", records[5][7])
}

func TestWriteFeedbackText(t *testing.T) {
	var buf bytes.Buffer
	out := FeedbackOutput{Subject: "Backend API refactoring", Period: testPeriod, Result: sampleTaskResult().Result, Feedback: "Keep going."}
	require.NoError(t, writeFeedbackText(&buf, out))
	assert.Contains(t, buf.String(), "Feedback for Backend API refactoring")
	assert.Contains(t, buf.String(), "Keep going.")
}

func TestRenderScoreCard(t *testing.T) {
	res := sampleTaskResult()
	card := renderScoreCard("Title", "sub", res.Result, createFormatters(1), false)
	assert.Contains(t, card, "Title")
	assert.Contains(t, card, "/ 70")
	assert.Contains(t, card, "/ 30")
	assert.Contains(t, card, string(res.Result.Grade))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Kim Cheolsu", displayName("Kim Cheolsu", 20))
	assert.Equal(t, "Kim C", displayName("Kim Cheolsu", 10))
	assert.Equal(t, "Backend...", displayName("Backendteamlead", 10))
}

func TestFormatDistribution(t *testing.T) {
	got := formatDistribution(map[schema.Grade]int{schema.GradeA: 2, schema.GradeC: 1})
	assert.Equal(t, "S=0 A=2 B=0 C=1", got)
}

func TestGetMaxTableNameWidth(t *testing.T) {
	assert.Equal(t, 10, GetMaxTableNameWidth(&contract.Config{Width: 60}))
	assert.Equal(t, 30, GetMaxTableNameWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 40, GetMaxTableNameWidth(&contract.Config{Width: 300}))
}

func TestTaskSheetsWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeXLSX(&buf, taskSheets(sampleTaskResult(), 1)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "Breakdown"}, f.GetSheetList())
	rows, err := f.GetRows("Breakdown")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Metric", rows[0][0])
	assert.Equal(t, "Plan specificity", rows[1][0])

	name, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Backend API refactoring", name)
}

func TestRankingSheetsWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeXLSX(&buf, rankingSheets(sampleRanking(), 1)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Ranking")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "user1", rows[1][1])

	tasks, err := f.GetRows("Tasks")
	require.NoError(t, err)
	assert.Len(t, tasks, 3) // header + 2 task summaries of user2
}
