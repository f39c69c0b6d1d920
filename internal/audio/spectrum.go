package audio

import (
	"context"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrogram holds one magnitude spectrum per frame, bins 0..nfft/2
type Spectrogram struct {
	Magnitudes [][]float64
	NFFT       int
	SampleRate int
}

// Bins is the number of frequency bins per frame
func (s *Spectrogram) Bins() int {
	return s.NFFT/2 + 1
}

// BinFrequency returns the centre frequency of bin k in Hz
func (s *Spectrogram) BinFrequency(k int) float64 {
	return float64(k) * float64(s.SampleRate) / float64(s.NFFT)
}

// STFT computes a centred, Hann-windowed short-time magnitude spectrum
func STFT(ctx context.Context, samples []float64, sampleRate, nfft, hop int) (*Spectrogram, error) {
	padded := padCenter(samples, nfft/2, false)
	n := frameCount(len(padded), nfft, hop)

	window := hannWindow(nfft)
	fft := fourier.NewFFT(nfft)
	frame := make([]float64, nfft)
	coeffs := make([]complex128, nfft/2+1)

	mags := make([][]float64, n)
	for t := 0; t < n; t++ {
		// check for cancellation periodically on long clips
		if t%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		start := t * hop
		for i := 0; i < nfft; i++ {
			frame[i] = padded[start+i] * window[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)

		row := make([]float64, len(coeffs))
		for k, c := range coeffs {
			row[k] = cmplx.Abs(c)
		}
		mags[t] = row
	}

	return &Spectrogram{
		Magnitudes: mags,
		NFFT:       nfft,
		SampleRate: sampleRate,
	}, nil
}
