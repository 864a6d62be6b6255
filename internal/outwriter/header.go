package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
)

// LogScoreHeader prints a concise, 2-line header before text output.
// Other output modes stay machine-readable, so nothing is printed for them.
func LogScoreHeader(cfg *contract.Config, subject string) {
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return
	}
	writeScoreHeader(os.Stdout, cfg, subject)
}

func writeScoreHeader(w io.Writer, cfg *contract.Config, subject string) {
	fmt.Fprintf(w, "🔎 Subject: %s\n", subject)
	fmt.Fprintf(w, "📅 Period: %s (Store: %s)\n", cfg.Period, cfg.StoreBackend)
}

// LogUpdate reports a persisted change on stderr.
func LogUpdate(period string, task schema.Task, change string) {
	fmt.Fprintf(os.Stderr, "✏️  %s: %s (%s, %s)\n", change, task.Name, task.ID, period)
}
