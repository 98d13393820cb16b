package component

import (
	"math"

	"github.com/milk9111/enginedemos/common"
)

type BloomCompositeMode int

const (
	BloomCompositeEnergyConserving BloomCompositeMode = iota
	BloomCompositeAdditive
)

func (m BloomCompositeMode) String() string {
	if m == BloomCompositeAdditive {
		return "Additive"
	}
	return "Energy-conserving"
}

// BloomPrefilter selects which pixels contribute to bloom. Pixels darker
// than Threshold are dropped; ThresholdSoftness widens the cut into a knee.
type BloomPrefilter struct {
	Threshold         float64
	ThresholdSoftness float64
}

// BloomSettings enables bloom on the camera entity carrying it.
type BloomSettings struct {
	Intensity                  float64
	LowFrequencyBoost          float64
	LowFrequencyBoostCurvature float64
	HighPassFrequency          float64
	CompositeMode              BloomCompositeMode
	Prefilter                  BloomPrefilter
}

func DefaultBloomSettings() BloomSettings {
	return BloomSettings{
		Intensity:                  0.15,
		LowFrequencyBoost:          0.7,
		LowFrequencyBoostCurvature: 0.95,
		HighPassFrequency:          1.0,
		CompositeMode:              BloomCompositeEnergyConserving,
	}
}

// Clamp forces every knob into its valid range: [0,1] for all continuous
// fields except the threshold, which only has a lower bound of 0.
func (b *BloomSettings) Clamp() {
	if b == nil {
		return
	}
	b.Intensity = common.Clamp(b.Intensity, 0, 1)
	b.LowFrequencyBoost = common.Clamp(b.LowFrequencyBoost, 0, 1)
	b.LowFrequencyBoostCurvature = common.Clamp(b.LowFrequencyBoostCurvature, 0, 1)
	b.HighPassFrequency = common.Clamp(b.HighPassFrequency, 0, 1)
	b.Prefilter.Threshold = math.Max(b.Prefilter.Threshold, 0)
	b.Prefilter.ThresholdSoftness = common.Clamp(b.Prefilter.ThresholdSoftness, 0, 1)
}

var BloomSettingsComponent = NewComponent[BloomSettings]()
