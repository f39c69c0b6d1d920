package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"voicedetect/internal/model"

	"github.com/hajimehoshi/go-mp3"
)

var (
	ErrEmptySignal = errors.New("audio contains no samples")
	ErrDecode      = errors.New("failed to decode mp3")
)

// go-mp3 always emits interleaved 16-bit little-endian stereo
const (
	decodedChannels = 2
	bytesPerSample  = 2
	bytesPerFrame   = decodedChannels * bytesPerSample
	int16FullScale  = 32768.0

	// readChunk is how much PCM is decoded between cancellation checks
	readChunk = 64 << 10
)

// DecodeFile decodes an MP3 file into a mono signal at its native sample rate
func DecodeFile(ctx context.Context, path string) (*model.AudioSignal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	return Decode(ctx, f)
}

// Decode reads an MP3 stream and downmixes it to mono samples in [-1, 1].
// Decoding stops early with the context error once ctx is done.
func Decode(ctx context.Context, r io.Reader) (*model.AudioSignal, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	pcm, err := readPCM(ctx, dec)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	samples := downmix(pcm)
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}

	return &model.AudioSignal{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
	}, nil
}

// downmix averages interleaved int16 stereo into mono samples in [-1, 1]
func downmix(pcm []byte) []float64 {
	n := len(pcm) / bytesPerFrame
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		off := i * bytesPerFrame
		left := int16(binary.LittleEndian.Uint16(pcm[off:]))
		right := int16(binary.LittleEndian.Uint16(pcm[off+bytesPerSample:]))
		samples[i] = (float64(left) + float64(right)) / 2 / int16FullScale
	}
	return samples
}

// readPCM drains the decoder in chunks, checking ctx between reads
func readPCM(ctx context.Context, dec *mp3.Decoder) ([]byte, error) {
	var pcm []byte
	if n := dec.Length(); n > 0 {
		pcm = make([]byte, 0, n)
	}

	buf := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := dec.Read(buf)
		pcm = append(pcm, buf[:n]...)
		if err == io.EOF {
			return pcm, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
