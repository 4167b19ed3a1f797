package surf

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestEvaluate_CleanGroundSwell(t *testing.T) {
	a := Evaluate(Input{
		WaveHeight:           1.0,
		WavePeriod:           10,
		WindDirectionDegrees: ptr(270),
		WindSpeedKmh:         3,
		BeachFacing:          ptr(90),
	})

	require.True(t, a.Sufficient)
	assert.Equal(t, PowerSolid, a.Wave.Power)
	assert.Equal(t, PeriodGroundSwell, a.Wave.Period)
	assert.Equal(t, WindOffshore, a.WindType)
	assert.Equal(t, TextureGlassy, a.Wind.Texture)
	assert.Equal(t, "西", a.WindCompass)
	assert.Equal(t, "優", a.WindQualityText)
	assert.Equal(t, "✨", a.WindEmoji)

	assert.Equal(t, InteractionSynergy, a.Interactions.WavePowerVsTexture.Type)
	assert.Equal(t, ImpactPositive, a.Interactions.WavePowerVsTexture.Impact)
	assert.Equal(t, SynergyExcellent, a.Synergy)
	assert.Equal(t, SafetySafe, a.Safety.Level)

	require.NotNil(t, a.BoardSuitability)
	assert.NotEqual(t, SuitabilityPerfect, a.BoardSuitability.Longboard.Suitability)
	assert.GreaterOrEqual(t, a.BoardSuitability.Shortboard.Suitability.Score(), SuitabilityGood.Score())
	assert.GreaterOrEqual(t, a.BoardSuitability.Funboard.Suitability.Score(), SuitabilityGood.Score())

	assert.Equal(t, ChemistryPerfectConditions, a.Chemistry.Pattern)
	assert.Equal(t, a.Chemistry.Description, a.OverallAssessment)
}

func TestEvaluate_DangerousOnshoreWind(t *testing.T) {
	a := Evaluate(Input{
		WaveHeight:        1.2,
		WavePeriod:        8,
		WindDirectionText: "東",
		WindSpeedKmh:      40,
		BeachFacing:       ptr(90),
	})

	require.True(t, a.Sufficient)
	assert.Equal(t, WindOnshore, a.WindType)
	assert.Equal(t, SafetyDanger, a.Safety.Level)
	require.NotNil(t, a.BoardSuitability)
	assert.Equal(t, SuitabilityUnsuitable, a.BoardSuitability.Longboard.Suitability)
	assert.Equal(t, SuitabilityUnsuitable, a.BoardSuitability.Shortboard.Suitability)
	assert.Equal(t, SuitabilityUnsuitable, a.BoardSuitability.Funboard.Suitability)
	assert.Equal(t, BoardNone, a.BoardSuitability.Recommended)
	assert.True(t, strings.HasPrefix(a.OverallAssessment, "危險海況"), a.OverallAssessment)
	assert.Contains(t, a.OverallAssessment, "風速過強")
	assert.Equal(t, FactorSafety, a.ConflictResolution.DominantFactor)
	assert.Equal(t, SynergyPoor, a.Synergy)
}

func TestEvaluate_CallerSafetyWins(t *testing.T) {
	a := Evaluate(Input{
		WaveHeight:           0.9,
		WavePeriod:           10,
		WindDirectionDegrees: ptr(270),
		WindSpeedKmh:         10,
		BeachFacing:          ptr(90),
		SafetyLevel:          SafetyWarning,
		Concerns:             []string{"海上颱風警報"},
	})

	assert.Equal(t, SafetyWarning, a.Safety.Level)
	assert.Equal(t, []string{"海上颱風警報"}, a.Safety.Concerns)
	assert.True(t, strings.HasPrefix(a.OverallAssessment, "需注意安全（海上颱風警報）"), a.OverallAssessment)
	assert.Contains(t, a.OverallAssessment, "需注意安全，建議謹慎評估")
}

func TestEvaluate_InsufficientData(t *testing.T) {
	noWave := Evaluate(Input{WaveHeight: 0, WavePeriod: 9, WindDirectionDegrees: ptr(0), WindSpeedKmh: 10, BeachFacing: ptr(90)})
	assert.False(t, noWave.Sufficient)
	assert.Nil(t, noWave.BoardSuitability)
	assert.Equal(t, "資訊不足,無法進行綜合評估。", noWave.OverallAssessment)
	assert.Equal(t, "浪況資訊不足,無法分析。", noWave.WaveNarrative)

	noFacing := Evaluate(Input{WaveHeight: 1, WavePeriod: 9, WindDirectionDegrees: ptr(0), WindSpeedKmh: 10})
	assert.False(t, noFacing.Sufficient)
	assert.Equal(t, WindUnknown, noFacing.WindType)
	assert.Equal(t, "風況資訊不足,無法分析。", noFacing.WindNarrative)
	assert.NotEqual(t, "浪況資訊不足,無法分析。", noFacing.WaveNarrative)

	badText := Evaluate(Input{WaveHeight: 1, WavePeriod: 9, WindDirectionText: "--", BeachFacing: ptr(90)})
	assert.False(t, badText.Sufficient)
	assert.Nil(t, badText.WindDirection)

	nanWind := Evaluate(Input{WaveHeight: 1.2, WavePeriod: 10, WindDirectionDegrees: ptr(math.NaN()), WindSpeedKmh: 10, BeachFacing: ptr(90)})
	assert.False(t, nanWind.Sufficient)
	assert.Equal(t, WindUnknown, nanWind.WindType)
	assert.Equal(t, "❓", nanWind.WindEmoji)
	assert.Equal(t, "--", nanWind.WindQualityText)
	assert.Empty(t, nanWind.WindCompass)
	assert.Equal(t, "資訊不足,無法進行綜合評估。", nanWind.OverallAssessment)

	infFacing := Evaluate(Input{WaveHeight: 1.2, WavePeriod: 10, WindDirectionDegrees: ptr(270), WindSpeedKmh: 10, BeachFacing: ptr(math.Inf(1))})
	assert.False(t, infFacing.Sufficient)
	assert.Equal(t, WindUnknown, infFacing.WindType)
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := Input{
		WaveHeight:        1.4,
		WavePeriod:        7,
		WindDirectionText: "東北",
		WindSpeedKmh:      18,
		BeachFacing:       ptr(0),
	}

	first, err := json.Marshal(Evaluate(in))
	require.NoError(t, err)
	second, err := json.Marshal(Evaluate(in))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
