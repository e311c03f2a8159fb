package transcode

import "math"

// Quality is a coarse encoder quality tier. Each tier maps to a sampling
// weight in [0,1]; the target bitrate is a fixed linear function of that
// weight, not a perceptual quality search.
type Quality string

const (
	QualityPerformance Quality = "performance"
	QualityLow         Quality = "low"
	QualityMedium      Quality = "medium"
	QualityHigh        Quality = "high"
	QualityHighest     Quality = "highest"
)

// DefaultQuality is used when no tier is specified.
const DefaultQuality = QualityPerformance

// baseBitrateBps is the bitrate of a weight-1.0 tier in bits per second.
const baseBitrateBps = 5_000_000

var qualityWeights = map[Quality]float64{
	QualityPerformance: 0.3,
	QualityLow:         0.5,
	QualityMedium:      0.7,
	QualityHigh:        0.85,
	QualityHighest:     1.0,
}

// Weight returns the sampling weight for the tier. The mapping is total:
// unrecognized tiers fall back to the performance weight.
func (q Quality) Weight() float64 {
	if w, ok := qualityWeights[q]; ok {
		return w
	}
	return qualityWeights[QualityPerformance]
}

// Bitrate returns the target bitrate in bits per second.
func (q Quality) Bitrate() int {
	return int(math.Round(q.Weight() * baseBitrateBps))
}

// Valid reports whether q names a known tier.
func (q Quality) Valid() bool {
	_, ok := qualityWeights[q]
	return ok
}
