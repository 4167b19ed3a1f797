package surf

import (
	"fmt"
	"strings"
)

// messageID keys every user-facing sentence. Classification code refers to
// ids only; the wording lives in catalog.
type messageID string

const (
	msgSizeFlat           messageID = "size.flat"
	msgSizeAnkle          messageID = "size.ankle"
	msgSizeKnee           messageID = "size.knee"
	msgSizeThigh          messageID = "size.thigh"
	msgSizeWaist          messageID = "size.waist"
	msgSizeChest          messageID = "size.chest"
	msgSizeShoulder       messageID = "size.shoulder"
	msgSizeHead           messageID = "size.head"
	msgSizeOverhead       messageID = "size.overhead"
	msgSizeDoubleOverhead messageID = "size.double-overhead"

	msgPeriodWindSwell   messageID = "period.wind-swell"
	msgPeriodMixed       messageID = "period.mixed"
	msgPeriodGroundSwell messageID = "period.ground-swell"
	msgPeriodLongPeriod  messageID = "period.long-period"

	msgPowerWeak      messageID = "power.weak"
	msgPowerModerate  messageID = "power.moderate"
	msgPowerFair      messageID = "power.fair"
	msgPowerSolid     messageID = "power.solid"
	msgPowerHeavy     messageID = "power.heavy"
	msgPowerDangerous messageID = "power.dangerous"

	msgWindOffshore     messageID = "wind.offshore"
	msgWindOnshore      messageID = "wind.onshore"
	msgWindCrossShore   messageID = "wind.cross-shore"
	msgWindUnknown      messageID = "wind.unknown"
	msgQualityExcellent messageID = "quality.excellent"
	msgQualityFair      messageID = "quality.fair"
	msgQualityPoor      messageID = "quality.poor"

	msgConcernWindDangerous messageID = "concern.wind-dangerous"
	msgConcernWindStrong    messageID = "concern.wind-strong"
	msgConcernWaveDangerous messageID = "concern.wave-dangerous"
	msgConcernWaveHeavy     messageID = "concern.wave-heavy"

	msgBoardLongboard  messageID = "board.longboard"
	msgBoardShortboard messageID = "board.shortboard"
	msgBoardFunboard   messageID = "board.funboard"
	msgBoardNone       messageID = "board.none"
	msgBoardDanger     messageID = "board.danger"

	msgLongboardPerfect     messageID = "longboard.perfect"
	msgLongboardGood        messageID = "longboard.good"
	msgLongboardTextured    messageID = "longboard.textured"
	msgLongboardFlat        messageID = "longboard.flat"
	msgLongboardTooPowerful messageID = "longboard.too-powerful"
	msgLongboardBigButOK    messageID = "longboard.big"
	msgLongboardWindSwell   messageID = "longboard.wind-swell"
	msgLongboardDefault     messageID = "longboard.default"

	msgShortboardPerfect         messageID = "shortboard.perfect"
	msgShortboardGood            messageID = "shortboard.good"
	msgShortboardTextured        messageID = "shortboard.textured"
	msgShortboardTooSmall        messageID = "shortboard.too-small"
	msgShortboardSmallLongPeriod messageID = "shortboard.small-long-period"
	msgShortboardWindSwell       messageID = "shortboard.wind-swell"
	msgShortboardBigWarning      messageID = "shortboard.big-warning"
	msgShortboardBig             messageID = "shortboard.big"
	msgShortboardBlownOut        messageID = "shortboard.blown-out"
	msgShortboardDefault         messageID = "shortboard.default"

	msgFunboardPerfect  messageID = "funboard.perfect"
	msgFunboardGood     messageID = "funboard.good"
	msgFunboardTooSmall messageID = "funboard.too-small"
	msgFunboardTooBig   messageID = "funboard.too-big"
	msgFunboardPoor     messageID = "funboard.poor"
	msgFunboardDefault  messageID = "funboard.default"

	msgInteractionBlownOut        messageID = "interaction.blown-out"
	msgInteractionSmallGlassy     messageID = "interaction.small-glassy"
	msgInteractionPowerClean      messageID = "interaction.power-clean"
	msgInteractionChoppy          messageID = "interaction.choppy"
	msgInteractionTextureNeutral  messageID = "interaction.texture-neutral"
	msgInteractionSmallLongPeriod messageID = "interaction.small-long-period"
	msgInteractionBigShortPeriod  messageID = "interaction.big-short-period"
	msgInteractionBigLongPeriod   messageID = "interaction.big-long-period"
	msgInteractionPeriodNeutral   messageID = "interaction.period-neutral"
	msgInteractionWindDangerous   messageID = "interaction.wind-dangerous"
	msgInteractionWindStrong      messageID = "interaction.wind-strong"
	msgInteractionWindIdeal       messageID = "interaction.wind-ideal"
	msgInteractionWindNeutral     messageID = "interaction.wind-neutral"

	msgResolveDanger   messageID = "resolve.danger"
	msgResolveWarning  messageID = "resolve.warning"
	msgResolveTexture  messageID = "resolve.texture"
	msgResolvePeriod   messageID = "resolve.period"
	msgResolveSize     messageID = "resolve.size"
	msgResolveBalanced messageID = "resolve.balanced"

	msgChemistryPerfect   messageID = "chemistry.perfect-conditions"
	msgChemistryWasted    messageID = "chemistry.wasted-potential"
	msgChemistryLongboard messageID = "chemistry.longboard-paradise"
	msgChemistryHiddenGem messageID = "chemistry.hidden-gem"

	msgOverallDanger          messageID = "overall.danger"
	msgOverallWarning         messageID = "overall.warning"
	msgOverallExcellent       messageID = "overall.excellent"
	msgOverallGood            messageID = "overall.good"
	msgOverallMixedResolved   messageID = "overall.mixed-resolved"
	msgOverallMixed           messageID = "overall.mixed"
	msgOverallPoorResolved    messageID = "overall.poor-resolved"
	msgOverallPoor            messageID = "overall.poor"
	msgOverallInsufficient    messageID = "overall.insufficient"
	msgWaveNarrative          messageID = "wave.narrative"
	msgWaveInsufficient       messageID = "wave.insufficient"
	msgWindInsufficient       messageID = "wind.insufficient"
	msgWindOffshoreDangerous  messageID = "wind.offshore-dangerous"
	msgWindOffshoreIdeal      messageID = "wind.offshore-ideal"
	msgWindOffshoreGlassy     messageID = "wind.offshore-glassy"
	msgWindOffshoreModerate   messageID = "wind.offshore-moderate"
	msgWindOnshoreLight       messageID = "wind.onshore-light"
	msgWindOnshoreModerate    messageID = "wind.onshore-moderate"
	msgWindOnshoreStrong      messageID = "wind.onshore-strong"
	msgWindCrossShoreLight    messageID = "wind.cross-shore-light"
	msgWindCrossShoreModerate messageID = "wind.cross-shore-moderate"
	msgWindCrossShoreStrong   messageID = "wind.cross-shore-strong"
)

var catalog = map[messageID]string{
	msgSizeFlat:           "平坦",
	msgSizeAnkle:          "腳踝浪",
	msgSizeKnee:           "膝蓋浪",
	msgSizeThigh:          "大腿浪",
	msgSizeWaist:          "腰浪",
	msgSizeChest:          "胸浪",
	msgSizeShoulder:       "肩浪",
	msgSizeHead:           "頭浪",
	msgSizeOverhead:       "過頭浪",
	msgSizeDoubleOverhead: "兩倍人高",

	msgPeriodWindSwell:   "風浪",
	msgPeriodMixed:       "混合浪",
	msgPeriodGroundSwell: "湧浪",
	msgPeriodLongPeriod:  "長週期湧浪",

	msgPowerWeak:      "軟弱",
	msgPowerModerate:  "普通",
	msgPowerFair:      "尚可",
	msgPowerSolid:     "有力",
	msgPowerHeavy:     "強勁",
	msgPowerDangerous: "危險",

	msgWindOffshore:     "離岸風",
	msgWindOnshore:      "向岸風",
	msgWindCrossShore:   "側風",
	msgWindUnknown:      "風向未知",
	msgQualityExcellent: "優",
	msgQualityFair:      "普通",
	msgQualityPoor:      "差",

	msgConcernWindDangerous: "風速過強",
	msgConcernWindStrong:    "風力較強",
	msgConcernWaveDangerous: "浪況危險",
	msgConcernWaveHeavy:     "浪況強勁",

	msgBoardLongboard:  "長板",
	msgBoardShortboard: "短板",
	msgBoardFunboard:   "Fun Board",
	msgBoardNone:       "無",
	msgBoardDanger:     "危險海況不適合任何板型",

	msgLongboardPerfect:     "小浪配上長週期與乾淨浪面,長板能輕鬆起乘並享受滑行",
	msgLongboardGood:        "浪況適中,週期足夠,長板能發揮優勢",
	msgLongboardTextured:    "浪高與週期適合長板,但浪面略顯凌亂",
	msgLongboardFlat:        "浪極小但週期長,長板仍可能抓到一些浪",
	msgLongboardTooPowerful: "浪況強勁,長板較難控制且有安全疑慮",
	msgLongboardBigButOK:    "浪稍大但仍可控,有經驗的長板玩家可嘗試",
	msgLongboardWindSwell:   "風浪週期短,長板難以獲得足夠推力",
	msgLongboardDefault:     "條件普通,長板可以使用但非最佳狀態",

	msgShortboardPerfect:         "理想浪高配上紮實推力與乾淨浪面,短板能盡情發揮",
	msgShortboardGood:            "浪高與推力適中,短板能順利起乘並做動作",
	msgShortboardTextured:        "浪況基本符合短板需求,但浪面略顯凌亂",
	msgShortboardTooSmall:        "浪太小且缺乏推力,短板難以起乘",
	msgShortboardSmallLongPeriod: "浪小但週期長,有經驗的短板玩家仍可起乘",
	msgShortboardWindSwell:       "浪雖大但週期短,缺乏推力且容易關門",
	msgShortboardBigWarning:      "浪況強勁,僅適合進階玩家",
	msgShortboardBig:             "大浪條件,適合有經驗的短板玩家挑戰",
	msgShortboardBlownOut:        "浪面被風吹亂,難以做動作",
	msgShortboardDefault:         "條件普通,短板可以使用但非最佳狀態",

	msgFunboardPerfect:  "中等浪況,趣味板能兼顧起乘容易度與操控性",
	msgFunboardGood:     "浪況適合趣味板的多功能特性",
	msgFunboardTooSmall: "浪太小,長板會更容易起乘",
	msgFunboardTooBig:   "浪況強勁,短板會更靈活",
	msgFunboardPoor:     "條件不佳,影響趣味板的表現",
	msgFunboardDefault:  "趣味板的多功能性適合當前條件",

	msgInteractionBlownOut:        "浪面被風吹亂，影響浪況品質",
	msgInteractionSmallGlassy:     "小浪配上鏡面般的浪面，適合長板",
	msgInteractionPowerClean:      "有力的浪配上乾淨的浪面",
	msgInteractionChoppy:          "浪面凌亂，降低浪況品質",
	msgInteractionTextureNeutral:  "浪面質地普通",
	msgInteractionSmallLongPeriod: "雖然浪小，但長週期帶來紮實的推力",
	msgInteractionBigShortPeriod:  "浪雖大但週期短，缺乏推力",
	msgInteractionBigLongPeriod:   "長週期配上適中浪高，能量充沛",
	msgInteractionPeriodNeutral:   "浪高與週期搭配普通",
	msgInteractionWindDangerous:   "風速過強，存在安全疑慮",
	msgInteractionWindStrong:      "風力較強，需注意安全",
	msgInteractionWindIdeal:       "風向風速理想",
	msgInteractionWindNeutral:     "風況普通",

	msgResolveDanger:   "安全疑慮為首要考量，其他條件次之",
	msgResolveWarning:  "需注意安全，建議謹慎評估",
	msgResolveTexture:  "浪面品質影響整體體驗，比浪高更重要",
	msgResolvePeriod:   "週期短導致浪缺乏推力，儘管浪高看似足夠",
	msgResolveSize:     "浪況強勁，適合進階玩家",
	msgResolveBalanced: "各項條件相對平衡",

	msgChemistryPerfect:   "理想的浪高、長週期與乾淨的浪面，完美組合",
	msgChemistryWasted:    "浪況本身不錯，但被風吹亂而浪費了潛力",
	msgChemistryLongboard: "小浪配上鏡面般的浪面與長週期，長板玩家的天堂",
	msgChemistryHiddenGem: "浪雖小但週期長，隱藏的好浪況",

	msgOverallDanger:        "危險海況，存在嚴重安全疑慮（%s），強烈建議不要下水。",
	msgOverallWarning:       "需注意安全（%s），%s。建議謹慎評估自身能力。",
	msgOverallExcellent:     "綜合來看，各項條件配合良好，浪況優異，適合衝浪。",
	msgOverallGood:          "綜合來看，條件不錯，值得下水。",
	msgOverallMixedResolved: "綜合來看，%s。",
	msgOverallMixed:         "綜合來看，條件普通，可以衝浪但非最佳狀態。",
	msgOverallPoorResolved:  "綜合來看，%s。不建議下水。",
	msgOverallPoor:          "綜合來看，條件不佳，建議等待改善。",
	msgOverallInsufficient:  "資訊不足,無法進行綜合評估。",

	msgWaveNarrative:    "浪高 %.1fm (%s)，週期 %.0f秒（%s），浪況%s。",
	msgWaveInsufficient: "浪況資訊不足,無法分析。",
	msgWindInsufficient: "風況資訊不足,無法分析。",

	msgWindOffshoreDangerous:  "%s %s km/h,風速過強,可能將衝浪者吹離岸邊,存在安全疑慮。",
	msgWindOffshoreIdeal:      "%s %s km/h,受惠於理想的風向風速,浪面乾淨,條件優異。",
	msgWindOffshoreGlassy:     "風速極輕（%s km/h）,浪面平滑如鏡,接近完美的無風狀態。",
	msgWindOffshoreModerate:   "%s %s km/h,風向良好,浪面整理得宜,適合衝浪。",
	msgWindOnshoreLight:       "%s %s km/h,風力輕微,對浪況影響有限。",
	msgWindOnshoreModerate:    "%s %s km/h,受風況影響,浪面較為混亂,條件普通。",
	msgWindOnshoreStrong:      "%s %s km/h,強風吹向岸邊,浪面凌亂,條件不佳。",
	msgWindCrossShoreLight:    "%s %s km/h,風力溫和,浪況穩定,條件尚可。",
	msgWindCrossShoreModerate: "%s %s km/h,受側風影響,浪面有些波動,條件普通。",
	msgWindCrossShoreStrong:   "%s %s km/h,側風較強,浪況不穩定,需謹慎評估。",
}

func text(id messageID) string {
	return catalog[id]
}

func render(id messageID, args ...any) string {
	return fmt.Sprintf(catalog[id], args...)
}

// formatSpeed prints a speed without trailing zeros, e.g. 18 or 12.6.
func formatSpeed(kmh float64) string {
	s := fmt.Sprintf("%.1f", kmh)
	return strings.TrimSuffix(s, ".0")
}

// WaveNarrative describes a wave reading in one sentence.
func WaveNarrative(height, period float64) string {
	if !HasWaveData(height, period) {
		return text(msgWaveInsufficient)
	}
	return render(msgWaveNarrative,
		height, SizeLabel(height),
		period, PeriodLabel(period),
		PowerLabel(height, period))
}

// WindNarrative describes a wind reading relative to the beach.
func WindNarrative(windType WindType, speedKmh float64) string {
	if windType == WindUnknown || windType == "" {
		return text(msgWindInsufficient)
	}
	speedKmh = clampNonNegative(speedKmh)
	name, speed := WindTypeText(windType), formatSpeed(speedKmh)

	switch windType {
	case WindOffshore:
		switch {
		case speedKmh > 30:
			return render(msgWindOffshoreDangerous, name, speed)
		case speedKmh >= 15 && speedKmh <= 25:
			return render(msgWindOffshoreIdeal, name, speed)
		case speedKmh < 8:
			return render(msgWindOffshoreGlassy, speed)
		}
		return render(msgWindOffshoreModerate, name, speed)
	case WindOnshore:
		switch {
		case speedKmh < 8:
			return render(msgWindOnshoreLight, name, speed)
		case speedKmh < 20:
			return render(msgWindOnshoreModerate, name, speed)
		}
		return render(msgWindOnshoreStrong, name, speed)
	}
	switch {
	case speedKmh < 10:
		return render(msgWindCrossShoreLight, name, speed)
	case speedKmh < 20:
		return render(msgWindCrossShoreModerate, name, speed)
	}
	return render(msgWindCrossShoreStrong, name, speed)
}

// RenderAssessment picks the final sentence: safety first, then chemistry,
// then the overall synergy.
func RenderAssessment(safety SafetyReport, chem Chemistry, synergy Synergy, res ConflictResolution) string {
	concerns := strings.Join(safety.Concerns, "、")

	switch safety.Level {
	case SafetyDanger:
		return render(msgOverallDanger, concerns)
	case SafetyWarning:
		return render(msgOverallWarning, concerns, res.Resolution)
	}

	if chem.HasChemistry {
		return chem.Description
	}

	switch synergy {
	case SynergyExcellent:
		return text(msgOverallExcellent)
	case SynergyGood:
		return text(msgOverallGood)
	case SynergyMixed:
		if res.PriorityApplied {
			return render(msgOverallMixedResolved, res.Resolution)
		}
		return text(msgOverallMixed)
	}
	if res.PriorityApplied {
		return render(msgOverallPoorResolved, res.Resolution)
	}
	return text(msgOverallPoor)
}
