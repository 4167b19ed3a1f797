package surf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeInteractions(t *testing.T) {
	in := AnalyzeInteractions(
		WaveFeatures{Power: PowerSolid, Size: SizeChest, Period: PeriodWindSwell},
		WindFeatures{Known: true, Texture: TextureChoppy, Strength: StrengthStrong, Impact: ImpactNegative},
	)

	assert.Equal(t, InteractionConflict, in.WavePowerVsTexture.Type)
	assert.Equal(t, "浪面凌亂，降低浪況品質", in.WavePowerVsTexture.Description)
	assert.Equal(t, InteractionConflict, in.PeriodVsHeight.Type)
	assert.Equal(t, InteractionConflict, in.WindVsSafety.Type)
	assert.Equal(t, "風力較強，需注意安全", in.WindVsSafety.Description)
}

func TestOverallSynergy(t *testing.T) {
	pos := Interaction{Impact: ImpactPositive}
	neg := Interaction{Impact: ImpactNegative}
	neu := Interaction{Impact: ImpactNeutral}

	tests := []struct {
		name   string
		in     Interactions
		safety SafetyLevel
		want   Synergy
	}{
		{"all positive", Interactions{pos, pos, pos}, SafetySafe, SynergyExcellent},
		{"two positive", Interactions{pos, pos, neu}, SafetySafe, SynergyGood},
		{"two positive one negative", Interactions{pos, pos, neg}, SafetySafe, SynergyMixed},
		{"two negative", Interactions{neg, neu, neg}, SafetySafe, SynergyPoor},
		{"one negative", Interactions{neg, neu, neu}, SafetySafe, SynergyMixed},
		{"all neutral", Interactions{neu, neu, neu}, SafetySafe, SynergyMixed},
		{"warning overrides", Interactions{pos, pos, pos}, SafetyWarning, SynergyPoor},
		{"danger overrides", Interactions{pos, pos, pos}, SafetyDanger, SynergyPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallSynergy(tt.in, tt.safety))
		})
	}
}

func TestResolveConflicts(t *testing.T) {
	glassy := WindFeatures{Known: true, Texture: TextureGlassy, Strength: StrengthCalm}
	choppy := WindFeatures{Known: true, Texture: TextureChoppy, Strength: StrengthModerate}

	bigWindSwell := WaveFeatures{Power: PowerModerate, Size: SizeShoulder, Period: PeriodWindSwell}
	r := ResolveConflicts(bigWindSwell, glassy, AnalyzeInteractions(bigWindSwell, glassy), SafetySafe)
	assert.Equal(t, FactorQuality, r.DominantFactor)
	assert.Equal(t, "週期短導致浪缺乏推力，儘管浪高看似足夠", r.Resolution)
	assert.True(t, r.PriorityApplied)

	mid := WaveFeatures{Power: PowerModerate, Size: SizeWaist, Period: PeriodMixed}
	r = ResolveConflicts(mid, choppy, AnalyzeInteractions(mid, choppy), SafetySafe)
	assert.Equal(t, FactorQuality, r.DominantFactor)
	assert.Equal(t, "浪面品質影響整體體驗，比浪高更重要", r.Resolution)

	huge := WaveFeatures{Power: PowerDangerous, Size: SizeDoubleOverhead, Period: PeriodLongPeriod}
	r = ResolveConflicts(huge, glassy, AnalyzeInteractions(huge, glassy), SafetySafe)
	assert.Equal(t, FactorSize, r.DominantFactor)

	r = ResolveConflicts(huge, glassy, AnalyzeInteractions(huge, glassy), SafetyDanger)
	assert.Equal(t, FactorSafety, r.DominantFactor)
	assert.Equal(t, "安全疑慮為首要考量，其他條件次之", r.Resolution)

	r = ResolveConflicts(mid, glassy, AnalyzeInteractions(mid, glassy), SafetySafe)
	assert.Equal(t, FactorNone, r.DominantFactor)
	assert.False(t, r.PriorityApplied)
}

func TestDetectChemistry(t *testing.T) {
	glassy := WindFeatures{Known: true, Texture: TextureGlassy, Strength: StrengthCalm}

	paradise := DetectChemistry(WaveFeatures{Power: PowerWeak, Size: SizeAnkle, Period: PeriodLongPeriod}, glassy)
	assert.True(t, paradise.HasChemistry)
	assert.Equal(t, ChemistryLongboardParadise, paradise.Pattern)
	assert.Equal(t, "小浪配上鏡面般的浪面與長週期，長板玩家的天堂", paradise.Description)

	wasted := DetectChemistry(WaveFeatures{Power: PowerHeavy, Size: SizeHead, Period: PeriodGroundSwell},
		WindFeatures{Known: true, Texture: TextureBlownOut})
	assert.Equal(t, ChemistryWastedPotential, wasted.Pattern)

	gem := DetectChemistry(WaveFeatures{Power: PowerModerate, Size: SizeThigh, Period: PeriodGroundSwell},
		WindFeatures{Known: true, Texture: TextureTextured})
	assert.Equal(t, ChemistryHiddenGem, gem.Pattern)

	none := DetectChemistry(WaveFeatures{Power: PowerModerate, Size: SizeThigh, Period: PeriodMixed}, glassy)
	assert.False(t, none.HasChemistry)
	assert.Equal(t, ChemistryNone, none.Pattern)
}

func TestRenderAssessment_ChemistryOverridesSynergy(t *testing.T) {
	wave := WaveFeatures{Power: PowerWeak, Size: SizeAnkle, Period: PeriodLongPeriod}
	wind := WindFeatures{Known: true, Texture: TextureGlassy, Strength: StrengthCalm, Impact: ImpactPositive}
	safety := SafetyReport{Level: SafetySafe}

	in := AnalyzeInteractions(wave, wind)
	chem := DetectChemistry(wave, wind)
	got := RenderAssessment(safety, chem, OverallSynergy(in, safety.Level), ResolveConflicts(wave, wind, in, safety.Level))

	assert.Equal(t, "小浪配上鏡面般的浪面與長週期，長板玩家的天堂", got)
}

func TestRenderAssessment_Fallbacks(t *testing.T) {
	safe := SafetyReport{Level: SafetySafe}
	none := Chemistry{Pattern: ChemistryNone}
	balanced := ConflictResolution{DominantFactor: FactorNone, Resolution: "各項條件相對平衡"}
	quality := ConflictResolution{DominantFactor: FactorQuality, Resolution: "浪面品質影響整體體驗，比浪高更重要", PriorityApplied: true}

	assert.Equal(t, "綜合來看，條件不錯，值得下水。", RenderAssessment(safe, none, SynergyGood, balanced))
	assert.Equal(t, "綜合來看，條件普通，可以衝浪但非最佳狀態。", RenderAssessment(safe, none, SynergyMixed, balanced))
	assert.Equal(t, "綜合來看，浪面品質影響整體體驗，比浪高更重要。", RenderAssessment(safe, none, SynergyMixed, quality))
	assert.Equal(t, "綜合來看，浪面品質影響整體體驗，比浪高更重要。不建議下水。", RenderAssessment(safe, none, SynergyPoor, quality))
	assert.Equal(t, "綜合來看，條件不佳，建議等待改善。", RenderAssessment(safe, none, SynergyPoor, balanced))

	danger := SafetyReport{Level: SafetyDanger, Concerns: []string{"風速過強", "浪況危險"}}
	assert.Equal(t, "危險海況，存在嚴重安全疑慮（風速過強、浪況危險），強烈建議不要下水。",
		RenderAssessment(danger, none, SynergyPoor, balanced))
}
