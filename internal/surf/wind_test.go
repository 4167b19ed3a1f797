package surf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWindType(t *testing.T) {
	tests := []struct {
		name      string
		wind, fac float64
		want      WindType
	}{
		{"directly offshore", 270, 90, WindOffshore},
		{"offshore boundary", 225, 90, WindOffshore},
		{"cross just inside", 224, 90, WindCrossShore},
		{"onshore boundary", 45, 90, WindOnshore},
		{"directly onshore", 90, 90, WindOnshore},
		{"cross", 0, 90, WindCrossShore},
		{"wraps through north", 350, 10, WindOnshore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWindType(tt.wind, tt.fac))
		})
	}
}

func TestClassifyWindType_RotationInvariant(t *testing.T) {
	for wind := 0; wind < 360; wind += 5 {
		for facing := 0; facing < 360; facing += 15 {
			base := ClassifyWindType(float64(wind), float64(facing))
			rotated := ClassifyWindType(float64(wind+180), float64(facing+180))
			assert.Equal(t, base, rotated, "wind=%d facing=%d", wind, facing)
		}
	}
}

func TestResolveWindType(t *testing.T) {
	facing := 90.0
	deg := 270.0

	wt, dir := ResolveWindType(&deg, "東", &facing)
	assert.Equal(t, WindOffshore, wt)
	require.NotNil(t, dir)
	assert.Equal(t, 270.0, *dir)

	wt, dir = ResolveWindType(nil, "偏東風", &facing)
	assert.Equal(t, WindOnshore, wt)
	require.NotNil(t, dir)
	assert.Equal(t, 90.0, *dir)

	wt, dir = ResolveWindType(nil, "風向不定", &facing)
	assert.Equal(t, WindUnknown, wt)
	assert.Nil(t, dir)

	wt, _ = ResolveWindType(&deg, "", nil)
	assert.Equal(t, WindUnknown, wt)

	nan, inf, negInf := math.NaN(), math.Inf(1), math.Inf(-1)
	nonFinite := []struct {
		name    string
		degrees *float64
		facing  *float64
	}{
		{"NaN bearing", &nan, &facing},
		{"+Inf bearing", &inf, &facing},
		{"-Inf bearing", &negInf, &facing},
		{"NaN facing", &deg, &nan},
		{"Inf facing with text", nil, &inf},
	}
	for _, tt := range nonFinite {
		wt, dir := ResolveWindType(tt.degrees, "東", tt.facing)
		assert.Equal(t, WindUnknown, wt, tt.name)
		assert.Nil(t, dir, tt.name)
	}
}

func TestParseWindDirection(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"東北風", 45, true},
		{"偏北風", 0, true},
		{"北北東", 22.5, true},
		{"西南西風", 247.5, true},
		{"南", 180, true},
		{" 西北 ", 315, true},
		{"--", 0, false},
		{"", 0, false},
		{"calm", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseWindDirection(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCompassLabel(t *testing.T) {
	assert.Equal(t, "北", CompassLabel(0))
	assert.Equal(t, "北", CompassLabel(350))
	assert.Equal(t, "東北", CompassLabel(45))
	assert.Equal(t, "南南西", CompassLabel(200))
	assert.Equal(t, "西", CompassLabel(-90))
	assert.Equal(t, "東南", OctantLabel(140))
}

func TestClassifyWind_Tables(t *testing.T) {
	tests := []struct {
		windType WindType
		speed    float64
		texture  Texture
		strength Strength
	}{
		{WindOffshore, 4.9, TextureGlassy, StrengthCalm},
		{WindOffshore, 24.9, TextureClean, StrengthModerate},
		{WindOffshore, 25, TextureTextured, StrengthModerate},
		{WindOffshore, 30, TextureTextured, StrengthStrong},
		{WindOffshore, 30.1, TextureBlownOut, StrengthDangerous},
		{WindCrossShore, 3.9, TextureGlassy, StrengthCalm},
		{WindCrossShore, 12, TextureTextured, StrengthModerate},
		{WindCrossShore, 28, TextureChoppy, StrengthStrong},
		{WindCrossShore, 32, TextureBlownOut, StrengthDangerous},
		{WindOnshore, 2, TextureGlassy, StrengthCalm},
		{WindOnshore, 7, TextureTextured, StrengthLight},
		{WindOnshore, 25, TextureChoppy, StrengthStrong},
		{WindOnshore, 35, TextureBlownOut, StrengthDangerous},
	}

	for _, tt := range tests {
		wf := ClassifyWind(tt.windType, tt.speed)
		assert.True(t, wf.Known)
		assert.Equal(t, tt.texture, wf.Texture, "%s %v", tt.windType, tt.speed)
		assert.Equal(t, tt.strength, wf.Strength, "%s %v", tt.windType, tt.speed)
	}

	assert.Equal(t, WindFeatures{Known: false}, ClassifyWind(WindUnknown, 10))
}

func TestWindImpactFor(t *testing.T) {
	assert.Equal(t, ImpactPositive, ClassifyWind(WindOffshore, 10).Impact)
	assert.Equal(t, ImpactNeutral, ClassifyWind(WindOffshore, 28).Impact)
	assert.Equal(t, ImpactNegative, ClassifyWind(WindOnshore, 15).Impact)
	assert.Equal(t, ImpactNeutral, ClassifyWind(WindOnshore, 7).Impact)
	assert.Equal(t, ImpactNegative, ClassifyWind(WindCrossShore, 25).Impact)
	assert.Equal(t, ImpactNeutral, ClassifyWind(WindCrossShore, 8).Impact)
}

func TestWindQualityText(t *testing.T) {
	assert.Equal(t, QualityExcellent, WindQualityFor(WindOffshore))
	assert.Equal(t, "優", WindQualityText(WindOffshore))
	assert.Equal(t, "差", WindQualityText(WindOnshore))
	assert.Equal(t, "--", WindQualityText(WindUnknown))
	assert.Equal(t, "風向未知", WindTypeText(WindUnknown))
}

func TestWindEmoji(t *testing.T) {
	assert.Equal(t, "✨", WindEmoji(WindOffshore))
	assert.Equal(t, "🌬️", WindEmoji(WindCrossShore))
	assert.Equal(t, "💨", WindEmoji(WindOnshore))
	assert.Equal(t, "❓", WindEmoji(WindUnknown))
}

func TestWindNarrative(t *testing.T) {
	assert.Equal(t, "離岸風 18 km/h,受惠於理想的風向風速,浪面乾淨,條件優異。", WindNarrative(WindOffshore, 18))
	assert.Equal(t, "風速極輕（5 km/h）,浪面平滑如鏡,接近完美的無風狀態。", WindNarrative(WindOffshore, 5))
	assert.Equal(t, "離岸風 40 km/h,風速過強,可能將衝浪者吹離岸邊,存在安全疑慮。", WindNarrative(WindOffshore, 40))
	assert.Equal(t, "向岸風 12.5 km/h,受風況影響,浪面較為混亂,條件普通。", WindNarrative(WindOnshore, 12.5))
	assert.Equal(t, "側風 22 km/h,側風較強,浪況不穩定,需謹慎評估。", WindNarrative(WindCrossShore, 22))
	assert.Equal(t, "風況資訊不足,無法分析。", WindNarrative(WindUnknown, 22))
}

func TestAssessSafety(t *testing.T) {
	calm := WaveFeatures{Power: PowerModerate, Size: SizeWaist, Period: PeriodMixed}

	safe := AssessSafety(calm, ClassifyWind(WindOffshore, 10))
	assert.Equal(t, SafetySafe, safe.Level)
	assert.Empty(t, safe.Concerns)

	warn := AssessSafety(WaveFeatures{Power: PowerHeavy}, ClassifyWind(WindOffshore, 10))
	assert.Equal(t, SafetyWarning, warn.Level)
	assert.Equal(t, []string{"浪況強勁"}, warn.Concerns)

	danger := AssessSafety(WaveFeatures{Power: PowerHeavy}, ClassifyWind(WindOnshore, 40))
	assert.Equal(t, SafetyDanger, danger.Level)
	assert.Equal(t, []string{"風速過強", "浪況強勁"}, danger.Concerns)

	unknownWind := AssessSafety(calm, ClassifyWind(WindUnknown, 80))
	assert.Equal(t, SafetySafe, unknownWind.Level)
}
