// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the appraise MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Appraise Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		src:     src,
	}

	periodOpt := mcp.WithString("period", mcp.Description("Evaluation period such as 2025-H1. Defaults to the configured period."))

	// --- 1. Tool: list_tasks ---
	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the assignees and tasks of an evaluation period."),
		periodOpt,
		mcp.WithString("assignee_id", mcp.Description("Only list the tasks of this assignee.")),
	), h.handleListTasks)

	// --- 2. Tool: score_task ---
	s.AddTool(mcp.NewTool("score_task",
		mcp.WithDescription("Score one task: weighted metric breakdown, converted scores, final score and grade."),
		mcp.WithString("task_id", mcp.Description("The task to score."), mcp.Required()),
		periodOpt,
	), h.handleScoreTask)

	// --- 3. Tool: score_assignee ---
	s.AddTool(mcp.NewTool("score_assignee",
		mcp.WithDescription("Comprehensive result over every task of one assignee."),
		mcp.WithString("assignee_id", mcp.Description("The assignee to score."), mcp.Required()),
		periodOpt,
	), h.handleScoreAssignee)

	// --- 4. Tool: rank_assignees ---
	s.AddTool(mcp.NewTool("rank_assignees",
		mcp.WithDescription("Rank every assignee by comprehensive final score."),
		periodOpt,
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankAssignees)

	// --- 5. Tool: set_metric_input ---
	s.AddTool(mcp.NewTool("set_metric_input",
		mcp.WithDescription("Store the raw input of one metric for a task and return the new score."),
		mcp.WithString("task_id", mcp.Description("The task to update."), mcp.Required()),
		mcp.WithString("metric_id", mcp.Description("The metric rule id."), mcp.Required(),
			mcp.Enum("plan_specificity", "schedule_changes", "start_compliance", "deadline_compliance", "delay_days")),
		mcp.WithNumber("value", mcp.Description("The raw input value."), mcp.Required()),
		periodOpt,
	), h.handleSetMetricInput)

	// --- 6. Tool: set_qualitative ---
	s.AddTool(mcp.NewTool("set_qualitative",
		mcp.WithDescription("Store the qualitative score (0-100, clamped) and optionally the opinion of a task."),
		mcp.WithString("task_id", mcp.Description("The task to update."), mcp.Required()),
		mcp.WithNumber("score", mcp.Description("Qualitative score between 0 and 100."), mcp.Required()),
		mcp.WithString("opinion", mcp.Description("Free-text evaluator opinion.")),
		periodOpt,
	), h.handleSetQualitative)

	// --- 7. Tool: get_feedback_prompt ---
	s.AddTool(mcp.NewTool("get_feedback_prompt",
		mcp.WithDescription("Build the feedback prompt for a task, or for an assignee when no task is given."),
		mcp.WithString("task_id", mcp.Description("The task to review.")),
		mcp.WithString("assignee_id", mcp.Description("The assignee to review when no task is given.")),
		periodOpt,
	), h.handleGetFeedbackPrompt)

	return s
}

// StartMCPServer starts the appraise MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, src contract.RosterSource) error {
	s := NewMCPServer(baseCfg, mgr, src)
	return server.ServeStdio(s)
}
