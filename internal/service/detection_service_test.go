package service

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
	"voicedetect/internal/cache"
	"voicedetect/internal/model"
)

// fakeAnalyzer records the staged file and returns a canned result
type fakeAnalyzer struct {
	result  *model.ScoreResult
	err     error
	block   bool
	seen    []byte
	existed bool
}

func (f *fakeAnalyzer) AnalyzeFile(ctx context.Context, path string) (*model.ScoreResult, error) {
	data, err := os.ReadFile(path)
	f.existed = err == nil
	f.seen = data
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func humanResult() *model.ScoreResult {
	return &model.ScoreResult{
		Classification: model.ClassificationHuman,
		Confidence:     0.95,
		Explanation:    model.ExplanationHuman,
	}
}

func newTestDetection(t *testing.T, a Analyzer) (*DetectionService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewDetectionService(a, cache.NewMemoryVerdictCache(), dir, time.Second), dir
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp dir to be empty, found %d entries", len(entries))
	}
}

func validRequest(format string) *model.VoiceDetectionRequest {
	return &model.VoiceDetectionRequest{
		Language:    "Tamil",
		AudioFormat: format,
		AudioBase64: base64.StdEncoding.EncodeToString([]byte("fake mp3 bytes")),
	}
}

func TestDetectSuccess(t *testing.T) {
	fake := &fakeAnalyzer{result: humanResult()}
	svc, dir := newTestDetection(t, fake)

	resp, err := svc.Detect(context.Background(), validRequest("mp3"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if resp.Status != model.StatusSuccess || resp.Language != "Tamil" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Classification != model.ClassificationHuman || resp.ConfidenceScore != 0.95 {
		t.Fatalf("unexpected verdict: %+v", resp)
	}
	if !fake.existed || string(fake.seen) != "fake mp3 bytes" {
		t.Fatalf("expected analyzer to read the decoded clip, got %q", fake.seen)
	}
	assertNoTempFiles(t, dir)
}

func TestDetectFormatIsCaseInsensitive(t *testing.T) {
	for _, format := range []string{"mp3", "MP3", "Mp3"} {
		svc, _ := newTestDetection(t, &fakeAnalyzer{result: humanResult()})
		if _, err := svc.Detect(context.Background(), validRequest(format)); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", format, err)
		}
	}
}

func TestDetectRejectsUnsupportedFormat(t *testing.T) {
	for _, format := range []string{"WAV", "Mp3X", "", "mpeg"} {
		fake := &fakeAnalyzer{result: humanResult()}
		svc, dir := newTestDetection(t, fake)
		_, err := svc.Detect(context.Background(), validRequest(format))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected %q to be rejected, got %v", format, err)
		}
		if fake.existed {
			t.Fatalf("expected analyzer not to run for %q", format)
		}
		assertNoTempFiles(t, dir)
	}
}

func TestDetectFormatCheckedBeforeBase64(t *testing.T) {
	svc, _ := newTestDetection(t, &fakeAnalyzer{result: humanResult()})
	req := &model.VoiceDetectionRequest{AudioFormat: "wav", AudioBase64: "%%%not base64%%%"}
	if _, err := svc.Detect(context.Background(), req); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected format error first, got %v", err)
	}
}

func TestDetectRejectsInvalidBase64(t *testing.T) {
	for _, payload := range []string{"%%%not base64%%%", "abc", "YWJj ZA=="} {
		svc, dir := newTestDetection(t, &fakeAnalyzer{result: humanResult()})
		req := &model.VoiceDetectionRequest{AudioFormat: "mp3", AudioBase64: payload}
		if _, err := svc.Detect(context.Background(), req); !errors.Is(err, ErrInvalidBase64) {
			t.Fatalf("expected %q to be rejected, got %v", payload, err)
		}
		assertNoTempFiles(t, dir)
	}
}

func TestDetectAnalyzerFaultCleansUp(t *testing.T) {
	fake := &fakeAnalyzer{err: errors.New("decoder exploded")}
	svc, dir := newTestDetection(t, fake)

	_, err := svc.Detect(context.Background(), validRequest("mp3"))
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
	if !fake.existed {
		t.Fatalf("expected temp file to exist during analysis")
	}
	assertNoTempFiles(t, dir)
}

func TestDetectTimeout(t *testing.T) {
	fake := &fakeAnalyzer{block: true}
	dir := t.TempDir()
	svc := NewDetectionService(fake, cache.NewMemoryVerdictCache(), dir, 20*time.Millisecond)

	_, err := svc.Detect(context.Background(), validRequest("mp3"))
	if !errors.Is(err, ErrAnalysisTimeout) {
		t.Fatalf("expected ErrAnalysisTimeout, got %v", err)
	}
	assertNoTempFiles(t, dir)
}

func TestDetectWithRealAnalyzerRejectsGarbage(t *testing.T) {
	svc, dir := newTestDetection(t, NewAnalyzerService(nil))
	_, err := svc.Detect(context.Background(), validRequest("mp3"))
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed for non-audio bytes, got %v", err)
	}
	assertNoTempFiles(t, dir)
}

func TestDetectRecordsVerdicts(t *testing.T) {
	dir := t.TempDir()
	verdicts := cache.NewMemoryVerdictCache()

	ok := NewDetectionService(&fakeAnalyzer{result: humanResult()}, verdicts, dir, time.Second)
	bad := NewDetectionService(&fakeAnalyzer{err: errors.New("boom")}, verdicts, dir, time.Second)

	_, _ = ok.Detect(context.Background(), validRequest("mp3"))
	_, _ = ok.Detect(context.Background(), validRequest("mp3"))
	_, _ = bad.Detect(context.Background(), validRequest("mp3"))
	_, _ = ok.Detect(context.Background(), validRequest("wav"))

	stats, err := ok.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := model.VerdictStats{Human: 2, Failed: 1, Total: 3}
	if *stats != want {
		t.Fatalf("expected %+v, got %+v", want, *stats)
	}
}

func TestTempFileNaming(t *testing.T) {
	svc, dir := newTestDetection(t, nil)
	path, err := svc.writeTemp([]byte("x"))
	if err != nil {
		t.Fatalf("write temp: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".mp3") {
		t.Fatalf("unexpected temp path %q", path)
	}
	if !strings.Contains(path, "voice-") {
		t.Fatalf("expected voice- prefix, got %q", path)
	}
}
