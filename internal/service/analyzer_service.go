package service

import (
	"context"
	"fmt"
	"voicedetect/internal/audio"
	"voicedetect/internal/config"
	"voicedetect/internal/model"
)

// Analyzer turns an MP3 file into a verdict
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.ScoreResult, error)
}

// AnalyzerService extracts features from decoded audio and scores them.
// It holds no per-request state and is safe for concurrent use.
type AnalyzerService struct {
	cfg *config.DetectionConfig
}

// NewAnalyzerService creates an analyzer using the given rule table
func NewAnalyzerService(cfg *config.DetectionConfig) *AnalyzerService {
	if cfg == nil {
		cfg = config.DefaultDetectionConfig()
	}
	return &AnalyzerService{cfg: cfg}
}

// AnalyzeFile decodes an MP3 file and classifies it
func (s *AnalyzerService) AnalyzeFile(ctx context.Context, path string) (*model.ScoreResult, error) {
	report, err := s.Inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	return &report.Result, nil
}

// Inspect decodes an MP3 file and returns the verdict together with the
// statistics it was derived from
func (s *AnalyzerService) Inspect(ctx context.Context, path string) (*model.AnalysisReport, error) {
	sig, err := audio.DecodeFile(ctx, path)
	if err != nil {
		return nil, err
	}

	features, err := s.extract(ctx, sig)
	if err != nil {
		return nil, err
	}

	return &model.AnalysisReport{
		File:       path,
		SampleRate: sig.SampleRate,
		Duration:   sig.Duration(),
		Features:   *features,
		Result:     Classify(Score(features, s.cfg), s.cfg),
	}, nil
}

// AnalyzeSignal classifies an already decoded signal
func (s *AnalyzerService) AnalyzeSignal(ctx context.Context, sig *model.AudioSignal) (*model.ScoreResult, error) {
	features, err := s.extract(ctx, sig)
	if err != nil {
		return nil, err
	}

	result := Classify(Score(features, s.cfg), s.cfg)
	return &result, nil
}

func (s *AnalyzerService) extract(ctx context.Context, sig *model.AudioSignal) (*model.FeatureSet, error) {
	features, err := audio.ExtractFeatures(ctx, sig, s.cfg.Features)
	if err != nil {
		return nil, fmt.Errorf("feature extraction: %w", err)
	}
	return features, nil
}
