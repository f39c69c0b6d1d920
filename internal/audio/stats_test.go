package audio

import (
	"math"
	"testing"
)

func TestPopStdDev(t *testing.T) {
	if got := PopStdDev(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := PopStdDev([]float64{42}); got != 0 {
		t.Fatalf("expected 0 for single value, got %v", got)
	}
	if got := PopStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2) > 1e-12 {
		t.Fatalf("expected population std of 2, got %v", got)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	if got := MeanAbsDiff([]float64{3}); got != 0 {
		t.Fatalf("expected 0 for single value, got %v", got)
	}
	if got := MeanAbsDiff([]float64{1, 4, 2, 2}); math.Abs(got-5.0/3) > 1e-12 {
		t.Fatalf("expected 5/3, got %v", got)
	}
}
