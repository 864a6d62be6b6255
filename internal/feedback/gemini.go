package feedback

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Fixed messages returned instead of errors.
const (
	MissingKeyMessage = "The API key is not configured, so AI feedback is unavailable."
	EmptyMessage      = "Could not generate the feedback."
	FailureMessage    = "An error occurred during AI analysis. Please try again later."
)

// DefaultBaseURL is the Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/"

// GeminiClient asks a Gemini model for feedback through the genai SDK.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

var _ contract.FeedbackClient = &GeminiClient{} // Compile-time check

// NewGeminiClient creates a client that allows at most perMinute requests per minute.
func NewGeminiClient(apiKey, model string, perMinute float64) *GeminiClient {
	if model == "" {
		model = contract.DefaultGeminiModel
	}
	if perMinute <= 0 {
		perMinute = contract.DefaultFeedbackRate
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perMinute/60), 1),
	}
}

// WithBaseURL points the client at another endpoint.
func (c *GeminiClient) WithBaseURL(baseURL string) *GeminiClient {
	c.baseURL = strings.TrimRight(baseURL, "/") + "/"
	return c
}

// Review asks the model for feedback on result. It never fails: a missing key,
// transport or API errors and empty answers all map to fixed messages.
func (c *GeminiClient) Review(ctx context.Context, result schema.EvaluationResult) string {
	if c.apiKey == "" {
		contract.LogWarn("Gemini feedback", fmt.Errorf("API key is missing"))
		return MissingKeyMessage
	}
	text, err := c.generate(ctx, BuildPrompt(result))
	if err != nil {
		contract.LogWarn("Gemini feedback", err)
		return FailureMessage
	}
	if strings.TrimSpace(text) == "" {
		return EmptyMessage
	}
	return text
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini: rate limit: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.client,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	// Thinking is disabled; the answer is short prose.
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return resp.Text(), nil
}
