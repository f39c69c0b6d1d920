package service

import (
	"math"
	"voicedetect/internal/config"
	"voicedetect/internal/model"
)

// Score counts how many synthetic-speech indicators hold for the feature set.
// Rules naming an unknown feature never fire.
func Score(fs *model.FeatureSet, cfg *config.DetectionConfig) int {
	score := 0
	for _, rule := range cfg.Rules {
		v, ok := fs.Value(rule.Feature)
		if ok && rule.Holds(v) {
			score++
		}
	}
	return score
}

// Classify maps an indicator count onto a verdict
func Classify(score int, cfg *config.DetectionConfig) model.ScoreResult {
	if score >= cfg.DecisionScore {
		return model.ScoreResult{
			Classification: model.ClassificationAIGenerated,
			Confidence:     confidence(cfg.AIConfidence, score),
			Explanation:    model.ExplanationAIGenerated,
			AIScore:        score,
		}
	}
	return model.ScoreResult{
		Classification: model.ClassificationHuman,
		Confidence:     confidence(cfg.HumanConfidence, cfg.MaxScore()-score),
		Explanation:    model.ExplanationHuman,
		AIScore:        score,
	}
}

func confidence(c config.ConfidenceCurve, n int) float64 {
	return round2(math.Min(c.Base+float64(n)*c.Step, c.Cap))
}

// round2 rounds half away from zero to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
