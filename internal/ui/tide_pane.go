package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/surf-terminal/internal/report"
)

// renderTidePane renders today's tides and the next tide event
func (m Model) renderTidePane(width int) string {
	r := m.report
	var content strings.Builder

	content.WriteString(m.paneTitle(PaneTides, "潮汐"))
	content.WriteString("\n\n")

	if len(r.Tides) == 0 && r.NextTide == nil {
		content.WriteString(mutedStyle.Render("無潮汐資料"))
		if warn := sourceWarning(r, report.SourceTide); warn != "" {
			content.WriteString("\n")
			content.WriteString(warn)
		}
		return m.paneFrame(PaneTides, width).Render(content.String())
	}

	content.WriteString(labelStyle.Render(fmt.Sprintf("今天 (%s)", r.GeneratedAt.Format("01/02"))))
	content.WriteString("\n")
	for _, event := range r.Tides {
		line := fmt.Sprintf("  %s  %s  %+.2f m",
			event.Time.Format("15:04"), event.Type.Label(), event.Height)
		if event.Time.Before(r.GeneratedAt) {
			content.WriteString(mutedStyle.Render(line))
		} else {
			content.WriteString(valueStyle.Render(line))
		}
		content.WriteString("\n")
	}

	if next := r.NextTide; next != nil {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("下一次: "))
		content.WriteString(successStyle.Render(fmt.Sprintf("%s %s (%s)",
			next.Type.Label(), next.Time.Format("15:04"), formatUntil(next.Time.Sub(r.GeneratedAt)))))
		content.WriteString("\n")
	}

	return m.paneFrame(PaneTides, width).Render(content.String())
}
