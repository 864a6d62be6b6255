package outwriter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/appraise/schema"
)

// Card styles. Colors follow the usual ANSI palette: 10 green, 12 blue, 8 dim.
var (
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardScoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// renderScoreCard renders the headline numbers of a result inside a box.
func renderScoreCard(title, subtitle string, res schema.EvaluationResult, fmtFloat func(float64) string, useColors bool) string {
	titleStyle, dimStyle, scoreStyle, boxStyle := cardTitleStyle, cardDimStyle, cardScoreStyle, cardBoxStyle
	if !useColors {
		titleStyle = lipgloss.NewStyle().Bold(true)
		dimStyle = lipgloss.NewStyle()
		scoreStyle = lipgloss.NewStyle().Bold(true)
		boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	}

	lines := []string{titleStyle.Render(title)}
	if subtitle != "" {
		lines = append(lines, dimStyle.Render(subtitle))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Final   %s / 100   %s", scoreStyle.Render(fmtFloat(res.FinalScore)), gradeLabel(res.Grade, useColors)),
		fmt.Sprintf("Quant   %s / 70", fmtFloat(res.QuantConverted)),
		fmt.Sprintf("Qual    %s / 30", fmtFloat(res.QualConverted)),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}
