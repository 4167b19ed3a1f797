package surf

import (
	"math"
	"strings"
)

var compassPoints = [16]string{
	"北", "北北東", "東北", "東北東", "東", "東南東", "東南", "南南東",
	"南", "南南西", "西南", "西南西", "西", "西北西", "西北", "北北西",
}

var octantPoints = [8]string{"北", "東北", "東", "東南", "南", "西南", "西", "西北"}

// directionTokens is ordered longest first so that "東北風" resolves to 45
// rather than matching the bare "北".
var directionTokens = []struct {
	token   string
	degrees float64
}{
	{"北北東", 22.5}, {"東北東", 67.5}, {"東南東", 112.5}, {"南南東", 157.5},
	{"南南西", 202.5}, {"西南西", 247.5}, {"西北西", 292.5}, {"北北西", 337.5},
	{"東北", 45}, {"北東", 45},
	{"東南", 135}, {"南東", 135},
	{"西南", 225}, {"南西", 225},
	{"西北", 315}, {"北西", 315},
	{"北", 0}, {"東", 90}, {"南", 180}, {"西", 270},
}

// NormalizeAngle maps any angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	n := math.Mod(angle, 360)
	if n < 0 {
		n += 360
	}
	return n
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AngularDifference returns the smallest difference between two bearings, 0..180.
func AngularDifference(a, b float64) float64 {
	diff := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if diff > 180 {
		return 360 - diff
	}
	return diff
}

// CompassLabel converts a bearing to a 16-point compass label.
func CompassLabel(degrees float64) string {
	idx := int(math.Round(NormalizeAngle(degrees)/22.5)) % 16
	return compassPoints[idx]
}

// OctantLabel converts a bearing to an 8-point compass label.
func OctantLabel(degrees float64) string {
	idx := int(math.Round(NormalizeAngle(degrees)/45)) % 8
	return octantPoints[idx]
}

// ParseWindDirection reads a direction such as "偏東風" or "東北" and returns
// the bearing the wind blows from.
func ParseWindDirection(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == "--" {
		return 0, false
	}
	for _, d := range directionTokens {
		if strings.Contains(text, d.token) {
			return d.degrees, true
		}
	}
	return 0, false
}

// MsToKmh converts metres per second to kilometres per hour.
func MsToKmh(ms float64) float64 {
	return ms * 3.6
}
