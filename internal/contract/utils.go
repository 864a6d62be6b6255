package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/appraise/schema"
)

// Grade label constants.
const (
	OutstandingValue = "Outstanding" // S
	StrongValue      = "Strong"      // A
	SolidValue       = "Solid"       // B
	NeedsWorkValue   = "Needs work"  // C
)

// Color variables for console output.
var (
	OutstandingColor = color.New(color.FgGreen, color.Bold) // top grade
	StrongColor      = color.New(color.FgCyan, color.Bold)
	SolidColor       = color.New(color.FgYellow)
	NeedsWorkColor   = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for a grade. This is the core logic used for
// CSV, JSON, XLSX and table printing.
func GetPlainLabel(grade schema.Grade) string {
	switch grade {
	case schema.GradeS:
		return OutstandingValue
	case schema.GradeA:
		return StrongValue
	case schema.GradeB:
		return SolidValue
	default:
		return NeedsWorkValue
	}
}

// GetColorLabel returns a colored "grade (label)" string for console output.
func GetColorLabel(grade schema.Grade) string {
	text := fmt.Sprintf("%s (%s)", grade, GetPlainLabel(grade))

	switch grade {
	case schema.GradeS:
		return OutstandingColor.Sprint(text)
	case schema.GradeA:
		return StrongColor.Sprint(text)
	case schema.GradeB:
		return SolidColor.Sprint(text)
	default:
		return NeedsWorkColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output. An empty
// path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreFilePath returns the default path of the local store file for a backend.
func GetStoreFilePath(backend schema.StoreBackend) string {
	name := ".appraise.json"
	if backend == schema.SQLiteBackend {
		name = ".appraise.db"
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, name)
}

// CurrentPeriod builds the half-year period identifier for t, e.g. "2025-H1".
func CurrentPeriod(t time.Time) string {
	half := 1
	if t.Month() > time.June {
		half = 2
	}
	return fmt.Sprintf("%d-H%d", t.Year(), half)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
