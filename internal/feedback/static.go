package feedback

import (
	"context"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// DisabledMessage is returned by the client built for the "none" backend.
const DisabledMessage = "AI feedback is disabled (ai-backend: none)."

// StaticClient always returns the same text.
type StaticClient struct {
	Text string
}

var _ contract.FeedbackClient = StaticClient{} // Compile-time check

// Review returns the fixed text.
func (c StaticClient) Review(_ context.Context, _ schema.EvaluationResult) string {
	return c.Text
}

// New builds the feedback client selected by the configuration.
func New(cfg *contract.Config) contract.FeedbackClient {
	if cfg.FeedbackBackend == schema.NoneFeedback {
		return StaticClient{Text: DisabledMessage}
	}
	return NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.FeedbackRate)
}
