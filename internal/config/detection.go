package config

import "voicedetect/internal/model"

// Direction tells which side of a threshold counts as a synthetic-speech indicator
type Direction string

const (
	Below Direction = "below"
	Above Direction = "above"
)

// ThresholdRule is one weak indicator: feature compared against a fixed threshold
type ThresholdRule struct {
	Feature   model.Feature `json:"feature"`
	Threshold float64       `json:"threshold"`
	Direction Direction     `json:"direction"`
}

// Holds reports whether value falls on the indicator side of the threshold.
// Comparisons are strict in both directions.
func (r ThresholdRule) Holds(value float64) bool {
	switch r.Direction {
	case Above:
		return value > r.Threshold
	default:
		return value < r.Threshold
	}
}

// ConfidenceCurve maps an indicator count to a capped confidence value
type ConfidenceCurve struct {
	Base float64 `json:"base"`
	Step float64 `json:"step"`
	Cap  float64 `json:"cap"`
}

// FeatureConfig holds the framing parameters used by feature extraction
type FeatureConfig struct {
	FrameLength    int     `json:"frameLength"`
	HopLength      int     `json:"hopLength"`
	NumMFCC        int     `json:"numMfcc"`
	NumMels        int     `json:"numMels"`
	PitchMinHz     float64 `json:"pitchMinHz"`
	PitchMaxHz     float64 `json:"pitchMaxHz"`
	PitchThreshold float64 `json:"pitchThreshold"`
	SilenceTopDB   float64 `json:"silenceTopDb"`
	DBTopClip      float64 `json:"dbTopClip"`
}

// DetectionConfig holds the scoring rule table and decision boundary
type DetectionConfig struct {
	Rules         []ThresholdRule `json:"rules"`
	DecisionScore int             `json:"decisionScore"`

	// AI confidence grows with the score, HUMAN confidence with the number of rules that did not fire
	AIConfidence    ConfidenceCurve `json:"aiConfidence"`
	HumanConfidence ConfidenceCurve `json:"humanConfidence"`

	Features FeatureConfig `json:"features"`
}

// DefaultDetectionConfig returns the fixed rule table
func DefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		Rules: []ThresholdRule{
			{Feature: model.FeaturePitchStd, Threshold: 18, Direction: Below},
			{Feature: model.FeatureMFCCStd, Threshold: 38, Direction: Below},
			{Feature: model.FeatureEnergyStd, Threshold: 0.025, Direction: Below},
			{Feature: model.FeatureZCRStd, Threshold: 0.02, Direction: Below},
			{Feature: model.FeaturePauseCount, Threshold: 3, Direction: Below},
			{Feature: model.FeaturePitchSmoothness, Threshold: 6, Direction: Below},
			{Feature: model.FeaturePauseStd, Threshold: 1500, Direction: Below},
		},
		DecisionScore:   2,
		AIConfidence:    ConfidenceCurve{Base: 0.75, Step: 0.04, Cap: 0.95},
		HumanConfidence: ConfidenceCurve{Base: 0.85, Step: 0.02, Cap: 0.95},
		Features:        DefaultFeatureConfig(),
	}
}

// DefaultFeatureConfig returns the conventional speech-analysis framing
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		FrameLength:    2048,
		HopLength:      512,
		NumMFCC:        13,
		NumMels:        128,
		PitchMinHz:     150,
		PitchMaxHz:     4000,
		PitchThreshold: 0.1,
		SilenceTopDB:   25,
		DBTopClip:      80,
	}
}

// MaxScore is the number of indicators in the table
func (c *DetectionConfig) MaxScore() int {
	return len(c.Rules)
}
