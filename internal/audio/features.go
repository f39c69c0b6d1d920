package audio

import (
	"context"
	"math"
	"voicedetect/internal/config"
	"voicedetect/internal/model"

	"gonum.org/v1/gonum/floats"
)

const (
	// zeroCrossingThreshold is the magnitude at or below which a sample counts as zero
	zeroCrossingThreshold = 1e-10

	// tiny is the smallest normal float64
	tiny = 0x1p-1022
)

// RMS returns the root-mean-square energy of each centred frame
func RMS(samples []float64, frameLength, hop int) []float64 {
	ms := meanSquare(samples, frameLength, hop)
	for i, v := range ms {
		ms[i] = math.Sqrt(v)
	}
	return ms
}

func meanSquare(samples []float64, frameLength, hop int) []float64 {
	padded := padCenter(samples, frameLength/2, false)
	n := frameCount(len(padded), frameLength, hop)

	out := make([]float64, n)
	for t := 0; t < n; t++ {
		frame := padded[t*hop : t*hop+frameLength]
		out[t] = floats.Dot(frame, frame) / float64(frameLength)
	}
	return out
}

// ZeroCrossingRate returns the fraction of sign changes in each centred frame.
// Near-zero samples are treated as zero and zero counts as positive.
func ZeroCrossingRate(samples []float64, frameLength, hop int) []float64 {
	padded := padCenter(samples, frameLength/2, true)
	negative := make([]bool, len(padded))
	for i, v := range padded {
		negative[i] = math.Abs(v) > zeroCrossingThreshold && v < 0
	}

	n := frameCount(len(padded), frameLength, hop)
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		start := t * hop
		crossings := 0
		for i := start + 1; i < start+frameLength; i++ {
			if negative[i] != negative[i-1] {
				crossings++
			}
		}
		out[t] = float64(crossings) / float64(frameLength)
	}
	return out
}

// MFCC returns numMFCC cepstral coefficients per frame (frame-major)
func MFCC(sg *Spectrogram, numMFCC, numMels int, topDB float64) [][]float64 {
	bands := melFilterBank(sg.SampleRate, sg.NFFT, numMels)

	melDB := make([][]float64, len(sg.Magnitudes))
	power := make([]float64, sg.Bins())
	for t, mags := range sg.Magnitudes {
		for k, m := range mags {
			power[k] = m * m
		}
		row := make([]float64, numMels)
		for i, b := range bands {
			row[i] = b.apply(power)
		}
		melDB[t] = row
	}
	powerToDB(melDB, topDB)

	basis := dctBasis(numMFCC, numMels)
	coeffs := make([][]float64, len(melDB))
	for t, row := range melDB {
		c := make([]float64, numMFCC)
		for i, b := range basis {
			c[i] = floats.Dot(b, row)
		}
		coeffs[t] = c
	}
	return coeffs
}

// PitchTrack estimates candidate pitches by picking thresholded spectral peaks
// in [minHz, maxHz) and refining them with parabolic interpolation. The result
// is ordered by frame, then by bin; only positive pitches are returned.
func PitchTrack(sg *Spectrogram, minHz, maxHz, threshold float64) []float64 {
	maxHz = math.Min(maxHz, float64(sg.SampleRate)/2)
	bins := sg.Bins()

	shift := make([]float64, bins)
	masked := make([]float64, bins)
	var pitches []float64

	for _, s := range sg.Magnitudes {
		for k := 1; k < bins-1; k++ {
			avg := 0.5 * (s[k+1] - s[k-1])
			curv := 2*s[k] - s[k+1] - s[k-1]
			if math.Abs(curv) < tiny {
				curv++
			}
			shift[k] = avg / curv
		}
		shift[0], shift[bins-1] = 0, 0

		ref := threshold * floats.Max(s)
		for k, v := range s {
			if v > ref {
				masked[k] = v
			} else {
				masked[k] = 0
			}
		}

		for k := 0; k < bins; k++ {
			f := sg.BinFrequency(k)
			if f < minHz || f >= maxHz {
				continue
			}
			if !isLocalMax(masked, k) {
				continue
			}
			p := (float64(k) + shift[k]) * float64(sg.SampleRate) / float64(sg.NFFT)
			if p > 0 {
				pitches = append(pitches, p)
			}
		}
	}
	return pitches
}

// isLocalMax is strict against the left neighbour and non-strict against the
// right one; the array edges compare against themselves.
func isLocalMax(x []float64, k int) bool {
	left, right := x[k], x[k]
	if k > 0 {
		left = x[k-1]
	}
	if k < len(x)-1 {
		right = x[k+1]
	}
	return x[k] > left && x[k] >= right
}

// SplitNonSilent returns the regions whose frame energy is within topDB of the
// loudest frame
func SplitNonSilent(samples []float64, frameLength, hop int, topDB float64) []model.Segment {
	ms := meanSquare(samples, frameLength, hop)
	if len(ms) == 0 {
		return nil
	}

	ref := 10 * math.Log10(math.Max(amin, floats.Max(ms)))
	loud := make([]bool, len(ms))
	for i, v := range ms {
		loud[i] = 10*math.Log10(math.Max(amin, v))-ref > -topDB
	}

	toSample := func(frame int) int {
		return min(frame*hop, len(samples))
	}

	var segments []model.Segment
	start := -1
	for i, l := range loud {
		switch {
		case l && start < 0:
			start = i
		case !l && start >= 0:
			segments = append(segments, model.Segment{Start: toSample(start), End: toSample(i)})
			start = -1
		}
	}
	if start >= 0 {
		segments = append(segments, model.Segment{Start: toSample(start), End: toSample(len(loud))})
	}
	return segments
}

// ExtractFeatures computes the seven scoring statistics of a signal
func ExtractFeatures(ctx context.Context, sig *model.AudioSignal, cfg config.FeatureConfig) (*model.FeatureSet, error) {
	if sig == nil || len(sig.Samples) == 0 {
		return nil, ErrEmptySignal
	}

	sg, err := STFT(ctx, sig.Samples, sig.SampleRate, cfg.FrameLength, cfg.HopLength)
	if err != nil {
		return nil, err
	}

	pitches := PitchTrack(sg, cfg.PitchMinHz, cfg.PitchMaxHz, cfg.PitchThreshold)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mfcc := MFCC(sg, cfg.NumMFCC, cfg.NumMels, cfg.DBTopClip)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	energy := RMS(sig.Samples, cfg.FrameLength, cfg.HopLength)
	zcr := ZeroCrossingRate(sig.Samples, cfg.FrameLength, cfg.HopLength)
	segments := SplitNonSilent(sig.Samples, cfg.FrameLength, cfg.HopLength, cfg.SilenceTopDB)

	lengths := make([]float64, len(segments))
	for i, s := range segments {
		lengths[i] = float64(s.End - s.Start)
	}

	return &model.FeatureSet{
		PitchStd:        PopStdDev(pitches),
		MFCCStd:         PopStdDev(flatten(mfcc)),
		EnergyStd:       PopStdDev(energy),
		ZCRStd:          PopStdDev(zcr),
		PauseCount:      len(segments),
		PitchSmoothness: MeanAbsDiff(pitches),
		PauseStd:        PopStdDev(lengths),
	}, nil
}

func flatten(rows [][]float64) []float64 {
	var n int
	for _, r := range rows {
		n += len(r)
	}
	out := make([]float64, 0, n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
