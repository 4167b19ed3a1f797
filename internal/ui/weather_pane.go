package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/surf-terminal/internal/report"
)

// renderConditionsPane renders current wave and wind, the township weather,
// the sea-area forecast and the next wave model entries
func (m Model) renderConditionsPane(width int) string {
	r := m.report
	// Border: 2 chars, Padding: 4 chars
	contentWidth := max(width-6, 20)
	wrapped := lipgloss.NewStyle().Width(contentWidth)

	var content strings.Builder
	content.WriteString(m.paneTitle(PaneConditions, "浪況"))
	content.WriteString("\n\n")

	c := r.Conditions
	content.WriteString(labelStyle.Render("浪高/週期: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s • %s",
		formatValue(c.WaveHeight, "%.1f m"), formatValue(c.WavePeriod, "%.0f 秒"))))
	content.WriteString(mutedStyle.Render(fmt.Sprintf(" (%s)", originLabel(c.WaveSource, c.StationID))))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("風: "))
	wind := fmt.Sprintf("%s %s", c.WindCompass, formatValue(c.WindSpeedKmh, "%.0f km/h"))
	if c.WindGustKmh != nil {
		wind += fmt.Sprintf("，陣風 %.0f km/h", *c.WindGustKmh)
	}
	content.WriteString(valueStyle.Render(strings.TrimSpace(wind)))
	content.WriteString(mutedStyle.Render(fmt.Sprintf(" (%s)", originLabel(c.WindSource, c.StationID))))
	if a := r.Assessment; a.WindType != "" {
		content.WriteString(fmt.Sprintf(" %s %s %s", a.WindEmoji, a.WindTypeText, a.WindQualityText))
	}
	content.WriteString("\n")

	if c.SeaTemperature != nil || c.AirTemperature != nil {
		content.WriteString(labelStyle.Render("水溫/氣溫: "))
		content.WriteString(valueStyle.Render(fmt.Sprintf("%s / %s",
			formatValue(c.SeaTemperature, "%.1f°C"), formatValue(c.AirTemperature, "%.1f°C"))))
		content.WriteString("\n")
	}
	if !c.ObservedAt.IsZero() {
		content.WriteString(mutedStyle.Render("觀測時間 " + c.ObservedAt.Format("01/02 15:04")))
		content.WriteString("\n")
	}

	if w := r.Weather; w != nil {
		content.WriteString(sectionHeaderStyle.Render("天氣"))
		content.WriteString("\n")
		line := w.Weather
		if w.PoP != nil {
			line += fmt.Sprintf("，降雨機率 %d%%", *w.PoP)
		}
		if w.Temperature != nil {
			line += fmt.Sprintf("，%.0f°C", *w.Temperature)
		}
		content.WriteString(wrapped.Render(line))
		content.WriteString("\n")
	}

	if p, ok := currentSeaPeriod(r.SeaForecast, r.GeneratedAt); ok {
		content.WriteString(sectionHeaderStyle.Render("海面預報 " + r.SeaForecast.Location))
		content.WriteString("\n")
		content.WriteString(wrapped.Render(fmt.Sprintf("%s，%s %s級，%s %s",
			p.Weather, p.WindDirection, p.WindScale, p.WaveType, p.WaveHeight)))
		content.WriteString("\n")
	}

	content.WriteString(sectionHeaderStyle.Render("波浪預報"))
	content.WriteString("\n")
	content.WriteString(renderWaveForecast(r.WaveForecast, 6))

	if warn := sourceWarning(r, report.SourceBuoy, report.SourceWeather, report.SourceSeaForecast, report.SourceWave); warn != "" {
		content.WriteString("\n\n")
		content.WriteString(wrapped.Render(warn))
	}

	return m.paneFrame(PaneConditions, width).Render(content.String())
}
