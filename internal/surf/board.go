package surf

// Suitability is a board verdict, best to worst.
type Suitability string

const (
	SuitabilityPerfect     Suitability = "perfect"
	SuitabilityGood        Suitability = "good"
	SuitabilityFair        Suitability = "fair"
	SuitabilityChallenging Suitability = "challenging"
	SuitabilityUnsuitable  Suitability = "unsuitable"
)

// Score maps a verdict onto 5 (perfect) .. 1 (unsuitable).
func (s Suitability) Score() int {
	switch s {
	case SuitabilityPerfect:
		return 5
	case SuitabilityGood:
		return 4
	case SuitabilityFair:
		return 3
	case SuitabilityChallenging:
		return 2
	case SuitabilityUnsuitable:
		return 1
	}
	return 0
}

// Emoji returns the icon shown with a verdict.
func (s Suitability) Emoji() string {
	switch s {
	case SuitabilityPerfect:
		return "✅"
	case SuitabilityGood:
		return "👍"
	case SuitabilityFair:
		return "😐"
	case SuitabilityChallenging:
		return "⚠️"
	case SuitabilityUnsuitable:
		return "❌"
	}
	return ""
}

// Board is a board archetype, or BoardNone when nothing is recommended.
type Board string

const (
	BoardLongboard  Board = "longboard"
	BoardShortboard Board = "shortboard"
	BoardFunboard   Board = "funboard"
	BoardNone       Board = "none"
)

// DisplayName returns the localized board name.
func (b Board) DisplayName() string {
	switch b {
	case BoardLongboard:
		return text(msgBoardLongboard)
	case BoardShortboard:
		return text(msgBoardShortboard)
	case BoardFunboard:
		return text(msgBoardFunboard)
	}
	return text(msgBoardNone)
}

// Verdict is the outcome for one board.
type Verdict struct {
	Suitability Suitability `json:"suitability"`
	Reasoning   string      `json:"reasoning"`
	Emoji       string      `json:"emoji"`
}

// BoardSuitability holds the verdict for every board and the pick.
type BoardSuitability struct {
	Longboard       Verdict `json:"longboard"`
	Shortboard      Verdict `json:"shortboard"`
	Funboard        Verdict `json:"funboard"`
	Recommended     Board   `json:"recommended"`
	RecommendedName string  `json:"recommendedName"`
}

// conditions is what every board rule sees.
type conditions struct {
	wave   WaveFeatures
	wind   WindFeatures
	safety SafetyLevel
}

type boardRule struct {
	when        func(c conditions) bool
	suitability Suitability
	reason      messageID
}

func sizeIn(sizes ...Size) func(Size) bool {
	return func(s Size) bool {
		for _, x := range sizes {
			if s == x {
				return true
			}
		}
		return false
	}
}

func powerIn(powers ...Power) func(Power) bool {
	return func(p Power) bool {
		for _, x := range powers {
			if p == x {
				return true
			}
		}
		return false
	}
}

func periodIn(periods ...PeriodClass) func(PeriodClass) bool {
	return func(p PeriodClass) bool {
		for _, x := range periods {
			if p == x {
				return true
			}
		}
		return false
	}
}

func textureIn(textures ...Texture) func(Texture) bool {
	return func(t Texture) bool {
		for _, x := range textures {
			if t == x {
				return true
			}
		}
		return false
	}
}

var (
	isClean       = textureIn(TextureGlassy, TextureClean)
	isGroundSwell = periodIn(PeriodGroundSwell, PeriodLongPeriod)
	isHeavyPower  = powerIn(PowerHeavy, PowerDangerous)
)

func always(conditions) bool { return true }

func inDanger(c conditions) bool { return c.safety == SafetyDanger }

var dangerRule = boardRule{inDanger, SuitabilityUnsuitable, msgBoardDanger}

// Rule order is load-bearing: the first matching rule wins and the danger
// rule always comes first.
var longboardRules = []boardRule{
	dangerRule,
	{func(c conditions) bool {
		return sizeIn(SizeAnkle, SizeKnee, SizeThigh, SizeWaist)(c.wave.Size) &&
			isGroundSwell(c.wave.Period) && isClean(c.wind.Texture)
	}, SuitabilityPerfect, msgLongboardPerfect},
	{func(c conditions) bool {
		return longboardSizeRange(c) && isClean(c.wind.Texture)
	}, SuitabilityGood, msgLongboardGood},
	{func(c conditions) bool {
		return longboardSizeRange(c) && c.wind.Texture == TextureTextured
	}, SuitabilityFair, msgLongboardTextured},
	{func(c conditions) bool {
		return c.wave.Size == SizeFlat && isGroundSwell(c.wave.Period)
	}, SuitabilityFair, msgLongboardFlat},
	{func(c conditions) bool {
		return longboardTooBig(c) && isHeavyPower(c.wave.Power)
	}, SuitabilityChallenging, msgLongboardTooPowerful},
	{longboardTooBig, SuitabilityFair, msgLongboardBigButOK},
	{func(c conditions) bool {
		return c.wave.Period == PeriodWindSwell
	}, SuitabilityChallenging, msgLongboardWindSwell},
	{always, SuitabilityFair, msgLongboardDefault},
}

func longboardSizeRange(c conditions) bool {
	return sizeIn(SizeAnkle, SizeKnee, SizeThigh, SizeWaist, SizeChest)(c.wave.Size) &&
		periodIn(PeriodGroundSwell, PeriodLongPeriod, PeriodMixed)(c.wave.Period)
}

func longboardTooBig(c conditions) bool {
	return sizeIn(SizeShoulder, SizeHead, SizeOverhead, SizeDoubleOverhead)(c.wave.Size)
}

var shortboardRules = []boardRule{
	dangerRule,
	{func(c conditions) bool {
		return sizeIn(SizeChest, SizeShoulder, SizeHead)(c.wave.Size) &&
			powerIn(PowerSolid, PowerHeavy)(c.wave.Power) &&
			isClean(c.wind.Texture) && isGroundSwell(c.wave.Period)
	}, SuitabilityPerfect, msgShortboardPerfect},
	{func(c conditions) bool {
		return shortboardSweetSpot(c) && isClean(c.wind.Texture)
	}, SuitabilityGood, msgShortboardGood},
	{func(c conditions) bool {
		return shortboardSweetSpot(c) && c.wind.Texture == TextureTextured
	}, SuitabilityFair, msgShortboardTextured},
	{func(c conditions) bool {
		return sizeIn(SizeFlat, SizeAnkle, SizeKnee, SizeThigh)(c.wave.Size) && c.wave.Power == PowerWeak
	}, SuitabilityChallenging, msgShortboardTooSmall},
	{func(c conditions) bool {
		return sizeIn(SizeThigh, SizeWaist)(c.wave.Size) && isGroundSwell(c.wave.Period) && isClean(c.wind.Texture)
	}, SuitabilityFair, msgShortboardSmallLongPeriod},
	{func(c conditions) bool {
		return sizeIn(SizeChest, SizeShoulder, SizeHead)(c.wave.Size) && c.wave.Period == PeriodWindSwell
	}, SuitabilityChallenging, msgShortboardWindSwell},
	{func(c conditions) bool {
		return shortboardBig(c) && c.safety == SafetyWarning
	}, SuitabilityChallenging, msgShortboardBigWarning},
	{shortboardBig, SuitabilityFair, msgShortboardBig},
	{func(c conditions) bool {
		return c.wind.Texture == TextureBlownOut
	}, SuitabilityChallenging, msgShortboardBlownOut},
	{always, SuitabilityFair, msgShortboardDefault},
}

func shortboardSweetSpot(c conditions) bool {
	return sizeIn(SizeWaist, SizeChest, SizeShoulder)(c.wave.Size) &&
		powerIn(PowerModerate, PowerSolid)(c.wave.Power) &&
		c.wave.Period != PeriodWindSwell
}

func shortboardBig(c conditions) bool {
	return sizeIn(SizeOverhead, SizeDoubleOverhead)(c.wave.Size) || c.wave.Power == PowerDangerous
}

var funboardRules = []boardRule{
	dangerRule,
	{func(c conditions) bool {
		return sizeIn(SizeThigh, SizeWaist, SizeChest)(c.wave.Size) &&
			powerIn(PowerModerate, PowerSolid)(c.wave.Power) &&
			textureIn(TextureGlassy, TextureClean, TextureTextured)(c.wind.Texture)
	}, SuitabilityPerfect, msgFunboardPerfect},
	{func(c conditions) bool {
		return sizeIn(SizeKnee, SizeThigh, SizeWaist, SizeChest, SizeShoulder)(c.wave.Size) &&
			c.wave.Power != PowerDangerous && c.wind.Texture != TextureBlownOut
	}, SuitabilityGood, msgFunboardGood},
	{func(c conditions) bool {
		return sizeIn(SizeFlat, SizeAnkle)(c.wave.Size) && c.wave.Power == PowerWeak
	}, SuitabilityFair, msgFunboardTooSmall},
	{func(c conditions) bool {
		return sizeIn(SizeHead, SizeOverhead)(c.wave.Size) && isHeavyPower(c.wave.Power)
	}, SuitabilityFair, msgFunboardTooBig},
	{func(c conditions) bool {
		return c.wind.Texture == TextureBlownOut || c.safety == SafetyWarning
	}, SuitabilityChallenging, msgFunboardPoor},
	{always, SuitabilityGood, msgFunboardDefault},
}

func applyRules(rules []boardRule, c conditions) Verdict {
	for _, r := range rules {
		if r.when(c) {
			return Verdict{
				Suitability: r.suitability,
				Reasoning:   text(r.reason),
				Emoji:       r.suitability.Emoji(),
			}
		}
	}
	// unreachable: every table ends with an always rule
	return Verdict{Suitability: SuitabilityFair, Emoji: SuitabilityFair.Emoji()}
}

// AssessLongboard evaluates longboard suitability.
func AssessLongboard(wave WaveFeatures, wind WindFeatures, safety SafetyLevel) Verdict {
	return applyRules(longboardRules, conditions{wave, wind, safety})
}

// AssessShortboard evaluates shortboard suitability.
func AssessShortboard(wave WaveFeatures, wind WindFeatures, safety SafetyLevel) Verdict {
	return applyRules(shortboardRules, conditions{wave, wind, safety})
}

// AssessFunboard evaluates funboard suitability.
func AssessFunboard(wave WaveFeatures, wind WindFeatures, safety SafetyLevel) Verdict {
	return applyRules(funboardRules, conditions{wave, wind, safety})
}

// RecommendBoard picks the highest scoring board. The funboard wins ties at
// the top score, and nothing is recommended when the best score is 2 or less.
func RecommendBoard(longboard, shortboard, funboard Verdict) Board {
	lb, sb, fb := longboard.Suitability.Score(), shortboard.Suitability.Score(), funboard.Suitability.Score()
	best := max(lb, sb, fb)

	switch {
	case best <= 2:
		return BoardNone
	case fb == best:
		return BoardFunboard
	case lb == best:
		return BoardLongboard
	case sb == best:
		return BoardShortboard
	}
	return BoardFunboard
}

// EvaluateBoards runs every board evaluator and picks a recommendation.
func EvaluateBoards(wave WaveFeatures, wind WindFeatures, safety SafetyLevel) BoardSuitability {
	lb := AssessLongboard(wave, wind, safety)
	sb := AssessShortboard(wave, wind, safety)
	fb := AssessFunboard(wave, wind, safety)
	rec := RecommendBoard(lb, sb, fb)
	return BoardSuitability{
		Longboard:       lb,
		Shortboard:      sb,
		Funboard:        fb,
		Recommended:     rec,
		RecommendedName: rec.DisplayName(),
	}
}
