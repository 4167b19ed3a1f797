package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/surf"
)

// sourceNames are the labels used when a report source failed
var sourceNames = map[string]string{
	report.SourceBuoy:        "浮標觀測",
	report.SourceTide:        "潮汐預報",
	report.SourceWeather:     "鄉鎮天氣預報",
	report.SourceSeaForecast: "海面預報",
	report.SourceWave:        "波浪預報",
}

// paneTitle renders a pane title, highlighted when the pane is active
func (m Model) paneTitle(p ActivePane, title string) string {
	if m.activePane == p {
		return activeTitleStyle.Render(" " + title + " ")
	}
	return titleStyle.Render(title)
}

// formatValue renders an optional measurement, "--" when missing
func formatValue(v *float64, format string) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf(format, *v)
}

// originLabel describes where a condition value came from
func originLabel(origin, stationID string) string {
	switch origin {
	case report.OriginBuoy:
		if stationID != "" {
			return "浮標 " + stationID
		}
		return "浮標"
	case report.OriginForecast:
		return "預報"
	}
	return "無資料"
}

// sourceWarning lists the sources that failed, empty when all succeeded
func sourceWarning(r *report.SpotReport, sources ...string) string {
	var failed []string
	for _, s := range sources {
		if _, ok := r.Errors[s]; ok {
			failed = append(failed, sourceNames[s])
		}
	}
	if len(failed) == 0 {
		return ""
	}
	return mutedStyle.Render("⚠ 無法取得" + strings.Join(failed, "、"))
}

// renderWaveForecast renders the next wave model entries, one per line
func renderWaveForecast(entries []models.WaveForecastEntry, limit int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("無波浪預報資料")
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	var lines []string
	for _, e := range entries {
		dir := "--"
		if e.WaveDirection != nil {
			dir = surf.OctantLabel(*e.WaveDirection)
		}
		lines = append(lines, forecastStyle.Render(fmt.Sprintf("%s  %s  %s  %s",
			e.DateTime.Format("01/02 15:04"),
			formatValue(e.WaveHeight, "%.1f m"),
			formatValue(e.WavePeriod, "%.0f s"),
			dir,
		)))
	}
	return strings.Join(lines, "\n")
}

// currentSeaPeriod returns the sea-area period covering t, else the first
func currentSeaPeriod(f *models.SeaAreaForecast, t time.Time) (models.SeaAreaPeriod, bool) {
	if f == nil || len(f.Periods) == 0 {
		return models.SeaAreaPeriod{}, false
	}
	for _, p := range f.Periods {
		if !t.Before(p.StartTime) && t.Before(p.EndTime) {
			return p, true
		}
	}
	return f.Periods[0], true
}
