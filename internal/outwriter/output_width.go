package outwriter

import (
	"os"

	"github.com/huangsam/appraise/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for name columns in table output
// based on terminal width and the fixed score columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Tasks + Quant + Qual + Final + Grade with borders/padding
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}
