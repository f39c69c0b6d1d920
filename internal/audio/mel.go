package audio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above
const (
	melLinearStep = 200.0 / 3
	melLogMinHz   = 1000.0
	melLogMin     = melLogMinHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27.0

// amin is the floor applied before taking logarithms
const amin = 1e-10

func hzToMel(hz float64) float64 {
	if hz >= melLogMinHz {
		return melLogMin + math.Log(hz/melLogMinHz)/melLogStep
	}
	return hz / melLinearStep
}

func melToHz(mel float64) float64 {
	if mel >= melLogMin {
		return melLogMinHz * math.Exp(melLogStep*(mel-melLogMin))
	}
	return mel * melLinearStep
}

// melBand is one triangular filter stored sparsely
type melBand struct {
	first   int
	weights []float64
}

// melFilterBank builds nMels Slaney-normalised triangular filters spanning 0..sr/2
func melFilterBank(sampleRate, nfft, nMels int) []melBand {
	bins := nfft/2 + 1
	fftFreqs := make([]float64, bins)
	floats.Span(fftFreqs, 0, float64(sampleRate)/2)

	melEdges := make([]float64, nMels+2)
	floats.Span(melEdges, hzToMel(0), hzToMel(float64(sampleRate)/2))
	hzEdges := make([]float64, len(melEdges))
	for i, m := range melEdges {
		hzEdges[i] = melToHz(m)
	}

	bands := make([]melBand, nMels)
	for i := 0; i < nMels; i++ {
		lo, mid, hi := hzEdges[i], hzEdges[i+1], hzEdges[i+2]
		enorm := 2.0 / (hi - lo)

		first, last := -1, -1
		w := make([]float64, bins)
		for k, f := range fftFreqs {
			lower := (f - lo) / (mid - lo)
			upper := (hi - f) / (hi - mid)
			v := math.Max(0, math.Min(lower, upper))
			if v > 0 {
				if first < 0 {
					first = k
				}
				last = k
				w[k] = v * enorm
			}
		}
		if first < 0 {
			bands[i] = melBand{}
			continue
		}
		bands[i] = melBand{first: first, weights: w[first : last+1]}
	}
	return bands
}

// apply projects a power spectrum onto the band
func (b melBand) apply(power []float64) float64 {
	var sum float64
	for i, w := range b.weights {
		sum += w * power[b.first+i]
	}
	return sum
}

// powerToDB converts power values in place to decibels (ref 1.0) and clips
// everything more than topDB below the overall maximum
func powerToDB(rows [][]float64, topDB float64) {
	peak := math.Inf(-1)
	for _, row := range rows {
		for i, v := range row {
			row[i] = 10 * math.Log10(math.Max(amin, v))
			peak = math.Max(peak, row[i])
		}
	}
	if topDB <= 0 {
		return
	}
	floor := peak - topDB
	for _, row := range rows {
		for i, v := range row {
			if v < floor {
				row[i] = floor
			}
		}
	}
}

// dctBasis returns the first k rows of an orthonormal DCT-II matrix of size n
func dctBasis(k, n int) [][]float64 {
	basis := make([][]float64, k)
	for i := 0; i < k; i++ {
		scale := math.Sqrt(2.0 / float64(n))
		if i == 0 {
			scale = math.Sqrt(1.0 / float64(n))
		}
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = scale * math.Cos(math.Pi*float64(i)*(2*float64(j)+1)/(2*float64(n)))
		}
		basis[i] = row
	}
	return basis
}
