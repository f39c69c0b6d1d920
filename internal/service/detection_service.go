package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"voicedetect/internal/cache"
	"voicedetect/internal/model"

	"github.com/google/uuid"
)

// SupportedFormat is the only accepted audioFormat, compared case-insensitively
const SupportedFormat = "mp3"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidBase64     = errors.New("invalid base64 audio")
	ErrAnalysisFailed    = errors.New("audio analysis failed")
	ErrAnalysisTimeout   = errors.New("audio analysis timed out")
)

// DetectionService validates a detection request, stages the audio on disk
// and runs it through the analyzer
type DetectionService struct {
	analyzer Analyzer
	verdicts cache.VerdictCache
	tempDir  string
	timeout  time.Duration
}

// NewDetectionService creates a new detection service. An empty tempDir uses
// the OS default; a zero timeout disables the analysis deadline.
func NewDetectionService(analyzer Analyzer, verdicts cache.VerdictCache, tempDir string, timeout time.Duration) *DetectionService {
	if verdicts == nil {
		verdicts = cache.NewMemoryVerdictCache()
	}
	return &DetectionService{
		analyzer: analyzer,
		verdicts: verdicts,
		tempDir:  tempDir,
		timeout:  timeout,
	}
}

// Detect classifies the clip in req. The format is checked before the
// payload is decoded.
func (s *DetectionService) Detect(ctx context.Context, req *model.VoiceDetectionRequest) (*model.VoiceDetectionResponse, error) {
	if !strings.EqualFold(req.AudioFormat, SupportedFormat) {
		return nil, ErrUnsupportedFormat
	}

	data, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	result, err := s.analyze(ctx, data)
	if err != nil {
		s.record(ctx, model.OutcomeFailed)
		return nil, err
	}
	s.record(ctx, model.Outcome(result.Classification))

	return &model.VoiceDetectionResponse{
		Status:          model.StatusSuccess,
		Language:        req.Language,
		Classification:  result.Classification,
		ConfidenceScore: result.Confidence,
		Explanation:     result.Explanation,
	}, nil
}

// Stats returns the aggregate outcome counters
func (s *DetectionService) Stats(ctx context.Context) (*model.VerdictStats, error) {
	return s.verdicts.Stats(ctx)
}

type analysisOutcome struct {
	result *model.ScoreResult
	err    error
}

func (s *DetectionService) analyze(ctx context.Context, data []byte) (*model.ScoreResult, error) {
	path, err := s.writeTemp(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer s.removeTemp(path)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan analysisOutcome, 1)
	go func() {
		result, err := s.analyzer.AnalyzeFile(ctx, path)
		done <- analysisOutcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, analysisError(out.err)
		}
		return out.result, nil
	case <-ctx.Done():
		return nil, analysisError(ctx.Err())
	}
}

func analysisError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrAnalysisTimeout
	}
	return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
}

// writeTemp stores the clip in a single-use file and returns its path
func (s *DetectionService) writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp(s.tempDir, "voice-"+uuid.NewString()+"-*.mp3")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		s.removeTemp(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		s.removeTemp(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *DetectionService) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Detection] WARNING: failed to remove temp file %s: %v", path, err)
	}
}

func (s *DetectionService) record(ctx context.Context, outcome model.Outcome) {
	if err := s.verdicts.Increment(ctx, outcome); err != nil {
		log.Printf("[Detection] WARNING: failed to record %s verdict: %v", outcome, err)
	}
}
