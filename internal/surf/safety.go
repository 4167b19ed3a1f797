package surf

// SafetyLevel is the overall hazard rating threaded into every evaluator.
type SafetyLevel string

const (
	SafetySafe    SafetyLevel = "safe"
	SafetyWarning SafetyLevel = "warning"
	SafetyDanger  SafetyLevel = "danger"
)

// SafetyReport is a derived safety level and the concerns that produced it.
type SafetyReport struct {
	Level    SafetyLevel `json:"level"`
	Concerns []string    `json:"concerns"`
}

// AssessSafety derives the safety level from classified wave and wind
// features. Dangerous wind or wave power is danger; strong wind or heavy
// power is a warning.
func AssessSafety(wave WaveFeatures, wind WindFeatures) SafetyReport {
	report := SafetyReport{Level: SafetySafe, Concerns: []string{}}

	escalate := func(level SafetyLevel, concern messageID) {
		report.Concerns = append(report.Concerns, text(concern))
		if level == SafetyDanger || report.Level == SafetySafe {
			report.Level = level
		}
	}

	if wind.Known {
		switch wind.Strength {
		case StrengthDangerous:
			escalate(SafetyDanger, msgConcernWindDangerous)
		case StrengthStrong:
			escalate(SafetyWarning, msgConcernWindStrong)
		}
	}

	switch wave.Power {
	case PowerDangerous:
		escalate(SafetyDanger, msgConcernWaveDangerous)
	case PowerHeavy:
		escalate(SafetyWarning, msgConcernWaveHeavy)
	}

	return report
}
