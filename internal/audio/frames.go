package audio

import "math"

// padCenter pads y by half on both sides so frame t is centred on sample t*hop.
// Zero padding by default, edge replication when edge is set.
func padCenter(y []float64, half int, edge bool) []float64 {
	out := make([]float64, len(y)+2*half)
	copy(out[half:], y)
	if edge && len(y) > 0 {
		first, last := y[0], y[len(y)-1]
		for i := 0; i < half; i++ {
			out[i] = first
			out[len(out)-1-i] = last
		}
	}
	return out
}

// frameCount is the number of full frames that fit in n samples
func frameCount(n, frameLength, hop int) int {
	if n < frameLength {
		return 0
	}
	return 1 + (n-frameLength)/hop
}

// hannWindow returns a periodic Hann window, the form used for spectral analysis
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
