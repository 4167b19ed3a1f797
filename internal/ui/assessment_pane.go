package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/surf-terminal/internal/surf"
)

// getSafetyStyle returns the appropriate style for a safety level
func getSafetyStyle(level surf.SafetyLevel) lipgloss.Style {
	switch level {
	case surf.SafetyDanger:
		return safetyDangerStyle
	case surf.SafetyWarning:
		return safetyWarningStyle
	case surf.SafetySafe:
		return safetySafeStyle
	default:
		return valueStyle
	}
}

// safetyLabel returns the heading shown for a safety level
func safetyLabel(level surf.SafetyLevel) string {
	switch level {
	case surf.SafetyDanger:
		return "⛔ 危險"
	case surf.SafetyWarning:
		return "⚠ 注意"
	}
	return "✓ 安全"
}

// formatUntil renders a positive duration as hours and minutes
func formatUntil(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%d 分鐘後", mins)
	}
	return fmt.Sprintf("%d 小時 %d 分後", h, mins)
}

// renderAssessmentPane renders safety, the overall assessment and board
// verdicts
func (m Model) renderAssessmentPane(width int) string {
	a := m.report.Assessment
	wrapped := lipgloss.NewStyle().Width(max(width-6, 20))

	var content strings.Builder
	content.WriteString(m.paneTitle(PaneAssessment, "評估"))
	content.WriteString("\n\n")

	content.WriteString(getSafetyStyle(a.Safety.Level).Render(safetyLabel(a.Safety.Level)))
	if len(a.Safety.Concerns) > 0 {
		content.WriteString(mutedStyle.Render(" " + strings.Join(a.Safety.Concerns, "、")))
	}
	content.WriteString("\n\n")

	content.WriteString(wrapped.Render(a.OverallAssessment))
	content.WriteString("\n\n")
	content.WriteString(wrapped.Render(a.WaveNarrative))
	content.WriteString("\n")
	content.WriteString(wrapped.Render(a.WindNarrative))
	content.WriteString("\n")

	if b := a.BoardSuitability; b != nil {
		content.WriteString(sectionHeaderStyle.Render("板型建議"))
		content.WriteString("\n")
		rows := []struct {
			board   surf.Board
			verdict surf.Verdict
		}{
			{surf.BoardLongboard, b.Longboard},
			{surf.BoardShortboard, b.Shortboard},
			{surf.BoardFunboard, b.Funboard},
		}
		for _, row := range rows {
			name := row.board.DisplayName()
			if row.board == b.Recommended {
				name = successStyle.Render(name + " ★")
			}
			content.WriteString(fmt.Sprintf("%s %s\n", row.verdict.Emoji, name))
			content.WriteString(wrapped.Render(mutedStyle.Render("   " + row.verdict.Reasoning)))
			content.WriteString("\n")
		}
		content.WriteString(labelStyle.Render("推薦: "))
		content.WriteString(valueStyle.Render(b.RecommendedName))
		content.WriteString("\n")
	}

	return m.paneFrame(PaneAssessment, width).Render(content.String())
}
