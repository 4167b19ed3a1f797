package surf

// Power is the energy class of a swell.
type Power string

const (
	PowerWeak      Power = "weak"
	PowerModerate  Power = "moderate"
	PowerSolid     Power = "solid"
	PowerHeavy     Power = "heavy"
	PowerDangerous Power = "dangerous"
)

// Size is the body-scale bucket of a wave height.
type Size string

const (
	SizeFlat           Size = "flat"
	SizeAnkle          Size = "ankle"
	SizeKnee           Size = "knee"
	SizeThigh          Size = "thigh"
	SizeWaist          Size = "waist"
	SizeChest          Size = "chest"
	SizeShoulder       Size = "shoulder"
	SizeHead           Size = "head"
	SizeOverhead       Size = "overhead"
	SizeDoubleOverhead Size = "double-overhead"
)

// PeriodClass is the swell-quality bucket of a wave period.
type PeriodClass string

const (
	PeriodWindSwell   PeriodClass = "wind-swell"
	PeriodMixed       PeriodClass = "mixed"
	PeriodGroundSwell PeriodClass = "ground-swell"
	PeriodLongPeriod  PeriodClass = "long-period"
)

// WaveFeatures is the categorical view of a (height, period) pair.
type WaveFeatures struct {
	Power  Power       `json:"power"`
	Size   Size        `json:"size"`
	Period PeriodClass `json:"period"`
}

type sizeBand struct {
	below float64
	size  Size
	label messageID
}

var sizeBands = []sizeBand{
	{0.2, SizeFlat, msgSizeFlat},
	{0.4, SizeAnkle, msgSizeAnkle},
	{0.6, SizeKnee, msgSizeKnee},
	{0.8, SizeThigh, msgSizeThigh},
	{1.0, SizeWaist, msgSizeWaist},
	{1.3, SizeChest, msgSizeChest},
	{1.6, SizeShoulder, msgSizeShoulder},
	{2.0, SizeHead, msgSizeHead},
	{2.5, SizeOverhead, msgSizeOverhead},
}

type periodBand struct {
	below  float64
	class  PeriodClass
	label  messageID
	powers []powerTier
}

type powerTier struct {
	below float64
	power Power
	label messageID
}

// infinity marks the open upper tier of a band.
const infinity = 1e308

// periodBands carries the power tiers per period band. A longer band never
// yields a lower tier than a shorter one for the same height.
var periodBands = []periodBand{
	{6, PeriodWindSwell, msgPeriodWindSwell, []powerTier{
		{0.8, PowerWeak, msgPowerWeak},
		{1.5, PowerModerate, msgPowerModerate},
		{infinity, PowerModerate, msgPowerFair},
	}},
	{9, PeriodMixed, msgPeriodMixed, []powerTier{
		{0.5, PowerWeak, msgPowerWeak},
		{1.0, PowerModerate, msgPowerModerate},
		{2.0, PowerSolid, msgPowerSolid},
		{infinity, PowerHeavy, msgPowerHeavy},
	}},
	{12, PeriodGroundSwell, msgPeriodGroundSwell, []powerTier{
		{0.4, PowerWeak, msgPowerWeak},
		{0.8, PowerModerate, msgPowerModerate},
		{1.5, PowerSolid, msgPowerSolid},
		{2.5, PowerHeavy, msgPowerHeavy},
		{infinity, PowerDangerous, msgPowerDangerous},
	}},
	{infinity, PeriodLongPeriod, msgPeriodLongPeriod, []powerTier{
		{0.5, PowerModerate, msgPowerModerate},
		{1.0, PowerSolid, msgPowerSolid},
		{2.0, PowerHeavy, msgPowerHeavy},
		{infinity, PowerDangerous, msgPowerDangerous},
	}},
}

// ClassifyWave buckets a height (m) and period (s) into wave features.
// Negative or NaN inputs are treated as zero.
func ClassifyWave(height, period float64) WaveFeatures {
	height, period = clampNonNegative(height), clampNonNegative(period)
	band := periodBandFor(period)
	return WaveFeatures{
		Power:  powerTierFor(band, height).power,
		Size:   sizeBandFor(height).size,
		Period: band.class,
	}
}

// HasWaveData reports whether a reading carries enough information to classify.
func HasWaveData(height, period float64) bool {
	return height > 0 && period > 0
}

// SizeLabel returns the body-scale description of a height.
func SizeLabel(height float64) string {
	return text(sizeBandFor(clampNonNegative(height)).label)
}

// PeriodLabel returns the short description of a period class.
func PeriodLabel(period float64) string {
	return text(periodBandFor(clampNonNegative(period)).label)
}

// PowerLabel returns the descriptive power word for a (height, period) pair.
func PowerLabel(height, period float64) string {
	band := periodBandFor(clampNonNegative(period))
	return text(powerTierFor(band, clampNonNegative(height)).label)
}

func sizeBandFor(height float64) sizeBand {
	for _, b := range sizeBands {
		if height < b.below {
			return b
		}
	}
	return sizeBand{infinity, SizeDoubleOverhead, msgSizeDoubleOverhead}
}

func periodBandFor(period float64) periodBand {
	for _, b := range periodBands {
		if period < b.below {
			return b
		}
	}
	return periodBands[len(periodBands)-1]
}

func powerTierFor(band periodBand, height float64) powerTier {
	for _, t := range band.powers {
		if height < t.below {
			return t
		}
	}
	return band.powers[len(band.powers)-1]
}

func clampNonNegative(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}

var powerRank = map[Power]int{
	PowerWeak: 0, PowerModerate: 1, PowerSolid: 2, PowerHeavy: 3, PowerDangerous: 4,
}

// Rank orders power tiers from weak (0) to dangerous (4).
func (p Power) Rank() int {
	return powerRank[p]
}

var sizeRank = map[Size]int{
	SizeFlat: 0, SizeAnkle: 1, SizeKnee: 2, SizeThigh: 3, SizeWaist: 4, SizeChest: 5,
	SizeShoulder: 6, SizeHead: 7, SizeOverhead: 8, SizeDoubleOverhead: 9,
}

// Rank orders sizes from flat (0) to double-overhead (9).
func (s Size) Rank() int {
	return sizeRank[s]
}

var periodRank = map[PeriodClass]int{
	PeriodWindSwell: 0, PeriodMixed: 1, PeriodGroundSwell: 2, PeriodLongPeriod: 3,
}

// Rank orders period classes from wind-swell (0) to long-period (3).
func (p PeriodClass) Rank() int {
	return periodRank[p]
}
