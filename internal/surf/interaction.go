package surf

// InteractionType classifies how two factors combine.
type InteractionType string

const (
	InteractionSynergy  InteractionType = "synergy"
	InteractionConflict InteractionType = "conflict"
	InteractionNeutral  InteractionType = "neutral"
)

// Interaction is the outcome of one pairwise analysis.
type Interaction struct {
	Type        InteractionType `json:"type"`
	Description string          `json:"description"`
	Impact      Impact          `json:"impact"`
}

// Interactions groups the three pairwise analyses.
type Interactions struct {
	WavePowerVsTexture Interaction `json:"wavePowerVsTexture"`
	PeriodVsHeight     Interaction `json:"periodVsHeight"`
	WindVsSafety       Interaction `json:"windVsSafety"`
}

func (i Interactions) all() [3]Interaction {
	return [3]Interaction{i.WavePowerVsTexture, i.PeriodVsHeight, i.WindVsSafety}
}

// Synergy is the overall verdict across interactions.
type Synergy string

const (
	SynergyExcellent Synergy = "excellent"
	SynergyGood      Synergy = "good"
	SynergyMixed     Synergy = "mixed"
	SynergyPoor      Synergy = "poor"
)

// DominantFactor names the concern that won conflict resolution.
type DominantFactor string

const (
	FactorSafety  DominantFactor = "safety"
	FactorQuality DominantFactor = "quality"
	FactorSize    DominantFactor = "size"
	FactorNone    DominantFactor = "none"
)

// ConflictResolution records which factor took priority and why.
type ConflictResolution struct {
	DominantFactor  DominantFactor `json:"dominantFactor"`
	Resolution      string         `json:"resolution"`
	PriorityApplied bool           `json:"priorityApplied"`
}

// ChemistryPattern names a notable combination of features.
type ChemistryPattern string

const (
	ChemistryPerfectConditions ChemistryPattern = "perfect-conditions"
	ChemistryWastedPotential   ChemistryPattern = "wasted-potential"
	ChemistryLongboardParadise ChemistryPattern = "longboard-paradise"
	ChemistryHiddenGem         ChemistryPattern = "hidden-gem"
	ChemistryNone              ChemistryPattern = "none"
)

// Chemistry is the detected pattern, if any.
type Chemistry struct {
	HasChemistry bool             `json:"hasChemistry"`
	Pattern      ChemistryPattern `json:"pattern"`
	Description  string           `json:"description"`
}

func interaction(t InteractionType, id messageID, impact Impact) Interaction {
	return Interaction{Type: t, Description: text(id), Impact: impact}
}

// AnalyzeWavePowerVsTexture weighs swell energy against surface texture.
func AnalyzeWavePowerVsTexture(power Power, texture Texture) Interaction {
	switch {
	case texture == TextureBlownOut:
		return interaction(InteractionConflict, msgInteractionBlownOut, ImpactNegative)
	case isClean(texture) && powerIn(PowerWeak, PowerModerate)(power):
		return interaction(InteractionSynergy, msgInteractionSmallGlassy, ImpactPositive)
	case isClean(texture) && powerIn(PowerSolid, PowerHeavy)(power):
		return interaction(InteractionSynergy, msgInteractionPowerClean, ImpactPositive)
	case texture == TextureChoppy:
		return interaction(InteractionConflict, msgInteractionChoppy, ImpactNegative)
	}
	return interaction(InteractionNeutral, msgInteractionTextureNeutral, ImpactNeutral)
}

// AnalyzePeriodVsHeight weighs swell period against wave size.
func AnalyzePeriodVsHeight(period PeriodClass, size Size) Interaction {
	switch {
	case isGroundSwell(period) && sizeIn(SizeAnkle, SizeKnee, SizeThigh, SizeWaist)(size):
		return interaction(InteractionSynergy, msgInteractionSmallLongPeriod, ImpactPositive)
	case period == PeriodWindSwell && sizeIn(SizeChest, SizeShoulder, SizeHead, SizeOverhead)(size):
		return interaction(InteractionConflict, msgInteractionBigShortPeriod, ImpactNegative)
	case isGroundSwell(period) && sizeIn(SizeChest, SizeShoulder, SizeHead)(size):
		return interaction(InteractionSynergy, msgInteractionBigLongPeriod, ImpactPositive)
	}
	return interaction(InteractionNeutral, msgInteractionPeriodNeutral, ImpactNeutral)
}

// AnalyzeWindVsSafety weighs wind strength against the caller's impact flag.
func AnalyzeWindVsSafety(strength Strength, impact Impact) Interaction {
	switch {
	case strength == StrengthDangerous:
		return interaction(InteractionConflict, msgInteractionWindDangerous, ImpactNegative)
	case strength == StrengthStrong:
		return interaction(InteractionConflict, msgInteractionWindStrong, ImpactNegative)
	case impact == ImpactPositive:
		return interaction(InteractionSynergy, msgInteractionWindIdeal, ImpactPositive)
	}
	return interaction(InteractionNeutral, msgInteractionWindNeutral, ImpactNeutral)
}

// AnalyzeInteractions runs all three pairwise analyses.
func AnalyzeInteractions(wave WaveFeatures, wind WindFeatures) Interactions {
	impact := wind.Impact
	if impact == "" {
		impact = ImpactNeutral
	}
	return Interactions{
		WavePowerVsTexture: AnalyzeWavePowerVsTexture(wave.Power, wind.Texture),
		PeriodVsHeight:     AnalyzePeriodVsHeight(wave.Period, wave.Size),
		WindVsSafety:       AnalyzeWindVsSafety(wind.Strength, impact),
	}
}

// OverallSynergy counts interaction impacts. Any safety concern forces poor.
func OverallSynergy(in Interactions, safety SafetyLevel) Synergy {
	if safety == SafetyDanger || safety == SafetyWarning {
		return SynergyPoor
	}

	var positive, negative int
	for _, i := range in.all() {
		switch i.Impact {
		case ImpactPositive:
			positive++
		case ImpactNegative:
			negative++
		}
	}

	switch {
	case positive == 3:
		return SynergyExcellent
	case positive >= 2 && negative == 0:
		return SynergyGood
	case negative >= 2:
		return SynergyPoor
	}
	return SynergyMixed
}

func resolution(f DominantFactor, id messageID, applied bool) ConflictResolution {
	return ConflictResolution{DominantFactor: f, Resolution: text(id), PriorityApplied: applied}
}

// ResolveConflicts applies the fixed priority safety > quality > size.
func ResolveConflicts(wave WaveFeatures, wind WindFeatures, in Interactions, safety SafetyLevel) ConflictResolution {
	switch safety {
	case SafetyDanger:
		return resolution(FactorSafety, msgResolveDanger, true)
	case SafetyWarning:
		return resolution(FactorSafety, msgResolveWarning, true)
	}

	if in.WavePowerVsTexture.Type == InteractionConflict || in.PeriodVsHeight.Type == InteractionConflict {
		if wind.Texture == TextureBlownOut || wind.Texture == TextureChoppy {
			return resolution(FactorQuality, msgResolveTexture, true)
		}
		if wave.Period == PeriodWindSwell && sizeIn(SizeChest, SizeShoulder)(wave.Size) {
			return resolution(FactorQuality, msgResolvePeriod, true)
		}
	}

	if wave.Power == PowerDangerous || wave.Size == SizeDoubleOverhead {
		return resolution(FactorSize, msgResolveSize, true)
	}

	return resolution(FactorNone, msgResolveBalanced, false)
}

type chemistryRule struct {
	pattern ChemistryPattern
	when    func(WaveFeatures, WindFeatures) bool
	text    messageID
}

var chemistryRules = []chemistryRule{
	{ChemistryPerfectConditions, func(w WaveFeatures, wind WindFeatures) bool {
		return powerIn(PowerSolid, PowerHeavy)(w.Power) && isClean(wind.Texture) &&
			isGroundSwell(w.Period) && sizeIn(SizeChest, SizeShoulder, SizeHead)(w.Size)
	}, msgChemistryPerfect},
	{ChemistryWastedPotential, func(w WaveFeatures, wind WindFeatures) bool {
		return powerIn(PowerSolid, PowerHeavy)(w.Power) && wind.Texture == TextureBlownOut
	}, msgChemistryWasted},
	{ChemistryLongboardParadise, func(w WaveFeatures, wind WindFeatures) bool {
		return w.Power == PowerWeak && isClean(wind.Texture) &&
			isGroundSwell(w.Period) && sizeIn(SizeAnkle, SizeKnee)(w.Size)
	}, msgChemistryLongboard},
	{ChemistryHiddenGem, func(w WaveFeatures, wind WindFeatures) bool {
		return sizeIn(SizeThigh, SizeWaist)(w.Size) && isGroundSwell(w.Period) &&
			wind.Texture != TextureBlownOut && wind.Texture != TextureChoppy
	}, msgChemistryHiddenGem},
}

// DetectChemistry returns the first matching named pattern.
func DetectChemistry(wave WaveFeatures, wind WindFeatures) Chemistry {
	for _, r := range chemistryRules {
		if r.when(wave, wind) {
			return Chemistry{HasChemistry: true, Pattern: r.pattern, Description: text(r.text)}
		}
	}
	return Chemistry{HasChemistry: false, Pattern: ChemistryNone}
}
