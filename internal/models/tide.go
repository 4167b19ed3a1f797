package models

import "time"

// TideType represents whether a tide is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// ParseTideType maps the CWA tide words (滿潮, 乾潮) onto a TideType.
func ParseTideType(s string) (TideType, bool) {
	switch s {
	case "滿潮", "高潮":
		return TideHigh, true
	case "乾潮", "低潮":
		return TideLow, true
	}
	return "", false
}

// Label returns the display word for a tide type.
func (t TideType) Label() string {
	if t == TideHigh {
		return "滿潮"
	}
	return "乾潮"
}

// TideEvent represents a single high or low tide occurrence
type TideEvent struct {
	Time   time.Time `json:"time"`
	Type   TideType  `json:"type"`
	Height float64   `json:"height"` // metres above local mean sea level
}

// TideData contains tide predictions for a location
type TideData struct {
	StationID   string      `json:"station_id"`
	StationName string      `json:"station_name"`
	Events      []TideEvent `json:"events"` // Ordered by time
	UpdatedAt   time.Time   `json:"updated_at"`
}

// GetEventsForDay returns tide events for a specific date
func (td *TideData) GetEventsForDay(date time.Time) []TideEvent {
	var events []TideEvent
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	for _, event := range td.Events {
		if !event.Time.Before(startOfDay) && event.Time.Before(endOfDay) {
			events = append(events, event)
		}
	}
	return events
}

// NextEvent returns the first event strictly after t.
func (td *TideData) NextEvent(t time.Time) (TideEvent, bool) {
	for _, event := range td.Events {
		if event.Time.After(t) {
			return event, true
		}
	}
	return TideEvent{}, false
}
