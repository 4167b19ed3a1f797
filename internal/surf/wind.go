package surf

// WindType describes wind relative to the beach.
type WindType string

const (
	WindOffshore   WindType = "offshore"
	WindOnshore    WindType = "onshore"
	WindCrossShore WindType = "cross-shore"
	WindUnknown    WindType = "unknown"
)

// Texture is the surface condition the wind leaves on the water.
type Texture string

const (
	TextureGlassy   Texture = "glassy"
	TextureClean    Texture = "clean"
	TextureTextured Texture = "textured"
	TextureChoppy   Texture = "choppy"
	TextureBlownOut Texture = "blown-out"
)

// Strength is the wind force class.
type Strength string

const (
	StrengthCalm      Strength = "calm"
	StrengthLight     Strength = "light"
	StrengthModerate  Strength = "moderate"
	StrengthStrong    Strength = "strong"
	StrengthDangerous Strength = "dangerous"
)

// Impact is the net effect a factor has on surf quality.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// WindQuality is the coarse rating of a wind type.
type WindQuality string

const (
	QualityExcellent WindQuality = "excellent"
	QualityFair      WindQuality = "fair"
	QualityPoor      WindQuality = "poor"
	QualityUnknown   WindQuality = "unknown"
)

// WindFeatures is the categorical view of a wind reading. Known is false
// when the wind type could not be determined.
type WindFeatures struct {
	Known    bool     `json:"known"`
	Texture  Texture  `json:"texture,omitempty"`
	Strength Strength `json:"strength,omitempty"`
	Impact   Impact   `json:"impact,omitempty"`
}

// speedStep is one row of a speed lookup: values up to limit (exclusive
// unless inclusive is set) map to the tier.
type speedStep[T any] struct {
	limit     float64
	inclusive bool
	tier      T
}

type windThresholds struct {
	texture  []speedStep[Texture]
	strength []speedStep[Strength]
}

// windTable is the fixed per-type lookup in km/h. Offshore tolerates the
// most speed before the surface breaks down, onshore the least.
var windTable = map[WindType]windThresholds{
	WindOffshore: {
		texture: []speedStep[Texture]{
			{5, false, TextureGlassy},
			{25, false, TextureClean},
			{30, true, TextureTextured},
			{infinity, false, TextureBlownOut},
		},
		strength: []speedStep[Strength]{
			{5, false, StrengthCalm},
			{15, false, StrengthLight},
			{25, true, StrengthModerate},
			{30, true, StrengthStrong},
			{infinity, false, StrengthDangerous},
		},
	},
	WindCrossShore: {
		texture: []speedStep[Texture]{
			{4, false, TextureGlassy},
			{12, false, TextureClean},
			{20, false, TextureTextured},
			{28, true, TextureChoppy},
			{infinity, false, TextureBlownOut},
		},
		strength: []speedStep[Strength]{
			{5, false, StrengthCalm},
			{12, false, StrengthLight},
			{20, false, StrengthModerate},
			{32, false, StrengthStrong},
			{infinity, false, StrengthDangerous},
		},
	},
	WindOnshore: {
		texture: []speedStep[Texture]{
			{3, false, TextureGlassy},
			{8, false, TextureTextured},
			{25, true, TextureChoppy},
			{infinity, false, TextureBlownOut},
		},
		strength: []speedStep[Strength]{
			{5, false, StrengthCalm},
			{10, false, StrengthLight},
			{20, false, StrengthModerate},
			{35, false, StrengthStrong},
			{infinity, false, StrengthDangerous},
		},
	},
}

func lookupSpeed[T any](steps []speedStep[T], speed float64) T {
	for _, s := range steps {
		if speed < s.limit || (s.inclusive && speed == s.limit) {
			return s.tier
		}
	}
	return steps[len(steps)-1].tier
}

// ClassifyWindType compares the bearing the wind blows from with the bearing
// the beach faces.
func ClassifyWindType(windDirection, beachFacing float64) WindType {
	diff := AngularDifference(windDirection, beachFacing)
	switch {
	case diff >= 135:
		return WindOffshore
	case diff <= 45:
		return WindOnshore
	default:
		return WindCrossShore
	}
}

// ResolveWindType accepts a wind bearing in degrees or, when that is nil, a
// direction text. A nil or non-finite beach facing, a non-finite bearing or
// unparseable text yields WindUnknown.
func ResolveWindType(degrees *float64, text string, beachFacing *float64) (WindType, *float64) {
	if beachFacing == nil || !IsFinite(*beachFacing) {
		return WindUnknown, nil
	}
	dir := degrees
	if dir != nil && !IsFinite(*dir) {
		return WindUnknown, nil
	}
	if dir == nil {
		parsed, ok := ParseWindDirection(text)
		if !ok {
			return WindUnknown, nil
		}
		dir = &parsed
	}
	return ClassifyWindType(*dir, *beachFacing), dir
}

// ClassifyWind buckets a wind speed (km/h) using the thresholds of its type.
func ClassifyWind(windType WindType, speedKmh float64) WindFeatures {
	table, ok := windTable[windType]
	if !ok {
		return WindFeatures{Known: false}
	}
	speedKmh = clampNonNegative(speedKmh)
	wf := WindFeatures{
		Known:    true,
		Texture:  lookupSpeed(table.texture, speedKmh),
		Strength: lookupSpeed(table.strength, speedKmh),
	}
	wf.Impact = WindImpactFor(windType, wf)
	return wf
}

// WindImpactFor derives the default impact of a classified wind.
func WindImpactFor(windType WindType, wf WindFeatures) Impact {
	if !wf.Known {
		return ImpactNeutral
	}
	switch {
	case wf.Texture == TextureChoppy || wf.Texture == TextureBlownOut:
		return ImpactNegative
	case windType == WindOnshore && wf.Strength != StrengthCalm && wf.Strength != StrengthLight:
		return ImpactNegative
	case windType == WindOffshore && (wf.Texture == TextureGlassy || wf.Texture == TextureClean) &&
		wf.Strength != StrengthStrong && wf.Strength != StrengthDangerous:
		return ImpactPositive
	}
	return ImpactNeutral
}

// WindQualityFor rates a wind type.
func WindQualityFor(windType WindType) WindQuality {
	switch windType {
	case WindOffshore:
		return QualityExcellent
	case WindCrossShore:
		return QualityFair
	case WindOnshore:
		return QualityPoor
	}
	return QualityUnknown
}

// WindTypeText returns the display name of a wind type.
func WindTypeText(windType WindType) string {
	switch windType {
	case WindOffshore:
		return text(msgWindOffshore)
	case WindOnshore:
		return text(msgWindOnshore)
	case WindCrossShore:
		return text(msgWindCrossShore)
	}
	return text(msgWindUnknown)
}

// WindQualityText returns the short display rating of a wind type.
func WindQualityText(windType WindType) string {
	switch windType {
	case WindOffshore:
		return text(msgQualityExcellent)
	case WindCrossShore:
		return text(msgQualityFair)
	case WindOnshore:
		return text(msgQualityPoor)
	}
	return "--"
}

// WindEmoji returns the icon shown next to a wind type.
func WindEmoji(windType WindType) string {
	switch windType {
	case WindOffshore:
		return "✨"
	case WindCrossShore:
		return "🌬️"
	case WindOnshore:
		return "💨"
	}
	return "❓"
}
