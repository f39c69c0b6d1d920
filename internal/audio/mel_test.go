package audio

import (
	"math"
	"testing"
)

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 200, 999, 1000, 2500, 8000} {
		got := melToHz(hzToMel(hz))
		if math.Abs(got-hz) > 1e-6 {
			t.Fatalf("round trip of %v Hz gave %v", hz, got)
		}
	}
	if math.Abs(hzToMel(1000)-15) > 1e-9 {
		t.Fatalf("expected 1 kHz at mel 15, got %v", hzToMel(1000))
	}
}

func TestMelFilterBankCoversSpectrum(t *testing.T) {
	bands := melFilterBank(22050, 2048, 128)
	if len(bands) != 128 {
		t.Fatalf("expected 128 bands, got %d", len(bands))
	}
	prevFirst := -1
	for i, b := range bands {
		if len(b.weights) == 0 {
			continue
		}
		if b.first < prevFirst {
			t.Fatalf("band %d starts before band %d", i, i-1)
		}
		prevFirst = b.first
		for _, w := range b.weights {
			if w < 0 {
				t.Fatalf("band %d has negative weight", i)
			}
		}
	}
	if len(bands[127].weights) == 0 {
		t.Fatalf("expected top band to have weights")
	}
}

func TestPowerToDBClipsToTopDB(t *testing.T) {
	rows := [][]float64{{1, 1e-3}, {1e-12, 100}}
	powerToDB(rows, 80)

	if math.Abs(rows[0][0]) > 1e-9 {
		t.Fatalf("expected 0 dB for unit power, got %v", rows[0][0])
	}
	if math.Abs(rows[1][1]-20) > 1e-9 {
		t.Fatalf("expected 20 dB peak, got %v", rows[1][1])
	}
	if math.Abs(rows[1][0]-(-60)) > 1e-9 {
		t.Fatalf("expected floor at peak-80 dB, got %v", rows[1][0])
	}
}

func TestDCTBasisIsOrthonormal(t *testing.T) {
	basis := dctBasis(13, 128)
	for i := range basis {
		for j := range basis {
			var dot float64
			for k := range basis[i] {
				dot += basis[i][k] * basis[j][k]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-9 {
				t.Fatalf("rows %d and %d: dot %v, expected %v", i, j, dot, want)
			}
		}
	}
}
