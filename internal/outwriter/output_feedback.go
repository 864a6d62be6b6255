package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// FeedbackOutput is the serialized form of a feedback run.
type FeedbackOutput struct {
	Subject  string                  `json:"subject"`
	Period   string                  `json:"period"`
	Result   schema.EvaluationResult `json:"result"`
	Feedback string                  `json:"feedback"`
}

// PrintFeedback outputs generated feedback. JSON carries the scored result along
// with the text; every other format prints the text only.
func PrintFeedback(out FeedbackOutput, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, out)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeFeedbackText(w, out)
	}, "Wrote feedback")
}

func writeFeedbackText(w io.Writer, out FeedbackOutput) error {
	_, err := fmt.Fprintf(w, "🤖 Feedback for %s (%s, grade %s)\n\n%s\n", out.Subject, out.Period, out.Result.Grade, out.Feedback)
	return err
}
