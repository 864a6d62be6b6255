package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/feedback"
	"github.com/huangsam/appraise/internal/roster"
	"github.com/huangsam/appraise/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	src     contract.RosterSource
	writeMu sync.Mutex // serializes read-modify-write cycles on the store
}

type taskListing struct {
	Period    string            `json:"period"`
	Assignees []schema.Assignee `json:"assignees"`
	Tasks     []schema.Task     `json:"tasks"`
}

func (h *toolHandler) config(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("period", ""); p != "" {
		cfg.Period = p
	}
	return cfg
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListTasks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.config(request)
	listing := taskListing{Period: cfg.Period, Assignees: h.src.Assignees(), Tasks: h.src.Tasks(cfg.Period)}

	if id := request.GetString("assignee_id", ""); id != "" {
		assignee, err := roster.FindAssignee(h.src, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		listing.Assignees = []schema.Assignee{assignee}
		listing.Tasks = roster.TasksFor(h.src, cfg.Period, id)
	}
	return jsonResult(listing)
}

func (h *toolHandler) handleScoreTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.config(request).CloneWithSelection("", taskID)

	res, err := core.GetTaskResult(ctx, cfg, h.mgr.GetEvaluationStore(), h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleScoreAssignee(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assigneeID, err := request.RequireString("assignee_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.config(request).CloneWithSelection(assigneeID, "")

	res, err := core.GetAssigneeResult(ctx, cfg, h.mgr.GetEvaluationStore(), h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleRankAssignees(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.config(request)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}
	if cfg.Limit < 0 || cfg.Limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}

	results, err := core.GetRanking(ctx, cfg, h.mgr.GetEvaluationStore(), h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(results)
}

func (h *toolHandler) handleSetMetricInput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	metricID, err := request.RequireString("metric_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireFloat("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.config(request).CloneWithSelection("", taskID)

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	res, err := core.UpdateTask(ctx, cfg, h.mgr.GetEvaluationStore(), h.src, func(b *core.Book, task schema.Task) error {
		return b.SetInput(task, metricID, value)
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleSetQualitative(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opinion := request.GetString("opinion", "")
	cfg := h.config(request).CloneWithSelection("", taskID)

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	res, err := core.UpdateTask(ctx, cfg, h.mgr.GetEvaluationStore(), h.src, func(b *core.Book, task schema.Task) error {
		b.SetQualitative(task, score)
		if opinion != "" {
			b.SetOpinion(task, opinion)
		}
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetFeedbackPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := request.GetString("task_id", "")
	assigneeID := request.GetString("assignee_id", "")
	if taskID == "" && assigneeID == "" {
		return mcp.NewToolResultError("either task_id or assignee_id is required"), nil
	}
	cfg := h.config(request).CloneWithSelection(assigneeID, taskID)

	out, err := core.GetFeedbackSubject(ctx, cfg, h.mgr.GetEvaluationStore(), h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return mcp.NewToolResultText(feedback.BuildPrompt(out.Result)), nil
}
