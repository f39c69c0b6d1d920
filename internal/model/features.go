package model

// Feature names a scalar statistic of a clip
type Feature string

const (
	FeaturePitchStd        Feature = "pitch_std"
	FeatureMFCCStd         Feature = "mfcc_std"
	FeatureEnergyStd       Feature = "energy_std"
	FeatureZCRStd          Feature = "zcr_std"
	FeaturePauseCount      Feature = "pause_count"
	FeaturePitchSmoothness Feature = "pitch_smoothness"
	FeaturePauseStd        Feature = "pause_std"
)

// AudioSignal is a decoded mono waveform at its native sample rate
type AudioSignal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the clip length in seconds
func (s *AudioSignal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Segment is a non-silent region in samples, End exclusive
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FeatureSet holds the seven statistics used for scoring
type FeatureSet struct {
	PitchStd        float64 `json:"pitchStd"`
	MFCCStd         float64 `json:"mfccStd"`
	EnergyStd       float64 `json:"energyStd"`
	ZCRStd          float64 `json:"zcrStd"`
	PauseCount      int     `json:"pauseCount"`
	PitchSmoothness float64 `json:"pitchSmoothness"`
	PauseStd        float64 `json:"pauseStd"` // samples
}

// Value looks up a statistic by name
func (f *FeatureSet) Value(name Feature) (float64, bool) {
	switch name {
	case FeaturePitchStd:
		return f.PitchStd, true
	case FeatureMFCCStd:
		return f.MFCCStd, true
	case FeatureEnergyStd:
		return f.EnergyStd, true
	case FeatureZCRStd:
		return f.ZCRStd, true
	case FeaturePauseCount:
		return float64(f.PauseCount), true
	case FeaturePitchSmoothness:
		return f.PitchSmoothness, true
	case FeaturePauseStd:
		return f.PauseStd, true
	}
	return 0, false
}

// AnalysisReport is the full outcome of analysing one file
type AnalysisReport struct {
	File       string      `json:"file"`
	SampleRate int         `json:"sampleRate"`
	Duration   float64     `json:"durationSeconds"`
	Features   FeatureSet  `json:"features"`
	Result     ScoreResult `json:"result"`
}
