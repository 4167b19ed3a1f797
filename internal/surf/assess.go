package surf

// Input is the set of scalars one evaluation consumes. WindDirectionDegrees
// takes precedence over WindDirectionText. An empty SafetyLevel is derived
// from the classified features.
type Input struct {
	WaveHeight           float64     `json:"waveHeight"`
	WavePeriod           float64     `json:"wavePeriod"`
	WindDirectionDegrees *float64    `json:"windDirectionDegrees,omitempty"`
	WindDirectionText    string      `json:"windDirectionText,omitempty"`
	WindSpeedKmh         float64     `json:"windSpeedKmh"`
	BeachFacing          *float64    `json:"beachFacing,omitempty"`
	SafetyLevel          SafetyLevel `json:"safetyLevel,omitempty"`
	Concerns             []string    `json:"concerns,omitempty"`
}

// Assessment is the full result of one evaluation.
type Assessment struct {
	Sufficient         bool               `json:"sufficient"`
	Wave               WaveFeatures       `json:"wave"`
	Wind               WindFeatures       `json:"wind"`
	WindType           WindType           `json:"windType"`
	WindTypeText       string             `json:"windTypeText"`
	WindQuality        WindQuality        `json:"windQuality"`
	WindQualityText    string             `json:"windQualityText"`
	WindEmoji          string             `json:"windEmoji"`
	WindDirection      *float64           `json:"windDirection,omitempty"`
	WindCompass        string             `json:"windCompass,omitempty"`
	Safety             SafetyReport       `json:"safety"`
	BoardSuitability   *BoardSuitability  `json:"boardSuitability,omitempty"`
	Interactions       Interactions       `json:"interactions"`
	Synergy            Synergy            `json:"synergy"`
	ConflictResolution ConflictResolution `json:"conflictResolution"`
	Chemistry          Chemistry          `json:"chemistry"`
	OverallAssessment  string             `json:"overallAssessment"`
	WaveNarrative      string             `json:"waveNarrative"`
	WindNarrative      string             `json:"windNarrative"`
}

// Evaluate classifies the input and renders the assessment. It is a pure
// function: identical inputs produce identical output.
func Evaluate(in Input) Assessment {
	windType, dir := ResolveWindType(in.WindDirectionDegrees, in.WindDirectionText, in.BeachFacing)
	speed := clampNonNegative(in.WindSpeedKmh)

	a := Assessment{
		WindType:        windType,
		WindTypeText:    WindTypeText(windType),
		WindQuality:     WindQualityFor(windType),
		WindQualityText: WindQualityText(windType),
		WindEmoji:       WindEmoji(windType),
		WaveNarrative:   WaveNarrative(in.WaveHeight, in.WavePeriod),
		WindNarrative:   WindNarrative(windType, speed),
	}
	if dir != nil {
		d := NormalizeAngle(*dir)
		a.WindDirection = &d
		a.WindCompass = CompassLabel(d)
	}

	if !HasWaveData(in.WaveHeight, in.WavePeriod) || windType == WindUnknown {
		a.Sufficient = false
		a.Safety = SafetyReport{Level: SafetySafe, Concerns: []string{}}
		if in.SafetyLevel != "" {
			a.Safety = callerSafety(in)
		}
		a.Synergy = SynergyMixed
		a.ConflictResolution = ConflictResolution{DominantFactor: FactorNone}
		a.Chemistry = Chemistry{Pattern: ChemistryNone}
		a.OverallAssessment = text(msgOverallInsufficient)
		return a
	}

	a.Sufficient = true
	a.Wave = ClassifyWave(in.WaveHeight, in.WavePeriod)
	a.Wind = ClassifyWind(windType, speed)

	if in.SafetyLevel != "" {
		a.Safety = callerSafety(in)
	} else {
		a.Safety = AssessSafety(a.Wave, a.Wind)
	}

	boards := EvaluateBoards(a.Wave, a.Wind, a.Safety.Level)
	a.BoardSuitability = &boards
	a.Interactions = AnalyzeInteractions(a.Wave, a.Wind)
	a.Synergy = OverallSynergy(a.Interactions, a.Safety.Level)
	a.ConflictResolution = ResolveConflicts(a.Wave, a.Wind, a.Interactions, a.Safety.Level)
	a.Chemistry = DetectChemistry(a.Wave, a.Wind)
	a.OverallAssessment = RenderAssessment(a.Safety, a.Chemistry, a.Synergy, a.ConflictResolution)
	return a
}

func callerSafety(in Input) SafetyReport {
	concerns := make([]string, len(in.Concerns))
	copy(concerns, in.Concerns)
	return SafetyReport{Level: in.SafetyLevel, Concerns: concerns}
}
