package cwa

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// cst is Taiwan time. CWA timestamps without an offset are in this zone.
var cst = time.FixedZone("CST", 8*3600)

var missingSentinels = map[float64]bool{-99: true, -99.9: true, -999: true, -9999: true}

// number decodes CWA numeric fields, which arrive as strings or numbers and
// use "None", "-" or sentinels such as -99 for missing readings.
type number struct {
	value float64
	valid bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	*n = number{}
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	switch s {
	case "", "null", "None", "none", "-", "--", "X":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || missingSentinels[v] {
		return nil
	}
	n.value, n.valid = v, true
	return nil
}

// ptr returns the value, or nil when missing.
func (n number) ptr() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// nonNegative returns the value, or nil when missing or negative.
func (n number) nonNegative() *float64 {
	if !n.valid || n.value < 0 {
		return nil
	}
	return n.ptr()
}

// text decodes a field that may be a JSON string or a bare number.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		raw = ""
	}
	*t = text(raw)
	return nil
}

var (
	_ json.Unmarshaler = (*number)(nil)
	_ json.Unmarshaler = (*text)(nil)
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime accepts the timestamp forms used across CWA datasets.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, cst); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
