package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	wav "github.com/youpy/go-wav"
)

// A parser attempts to turn an uploaded payload into a normalized signal at
// TargetSampleRate. Parsers are tried in order; the first success wins.
type parser struct {
	name string
	fn   func(raw []byte, sampleRateHint int) ([]float64, error)
}

var parsers = []parser{
	{"wav", parseWAV},
	{"pcm16le", parsePCM16},
}

// Normalize converts an uploaded payload into a mono signal at
// TargetSampleRate. It first tries to decode a WAV container, then falls back
// to treating the payload as raw 16-bit little-endian PCM at sampleRateHint.
// Clients can therefore post either well-formed containers or bare PCM
// streams without setting a content type.
func Normalize(raw []byte, sampleRateHint int) (*Buffer, error) {
	if len(raw) < MinRawBytes {
		return nil, fmt.Errorf("%w: audio too short, need at least %d bytes (~0.1s), got %d",
			ErrInvalidAudio, MinRawBytes, len(raw))
	}

	var attempts []string
	for _, p := range parsers {
		samples, err := p.fn(raw, sampleRateHint)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", p.name, err))
			continue
		}
		return &Buffer{samples: samples}, nil
	}

	return nil, fmt.Errorf("%w: could not parse audio bytes (%s)",
		ErrInvalidAudio, strings.Join(attempts, "; "))
}

// parseWAV decodes a WAV container, downmixes to mono by averaging channels
// and resamples to TargetSampleRate when the native rate differs.
func parseWAV(raw []byte, _ int) ([]float64, error) {
	r := wav.NewReader(bytes.NewReader(raw))

	format, err := r.Format()
	if err != nil {
		return nil, err
	}
	if format.NumChannels == 0 || format.SampleRate == 0 {
		return nil, fmt.Errorf("malformed header: %d channels at %d Hz",
			format.NumChannels, format.SampleRate)
	}

	channels := int(format.NumChannels)
	var samples []float64
	for {
		chunk, err := r.ReadSamples(2048)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, s := range chunk {
			sum := 0.0
			for ch := 0; ch < channels; ch++ {
				sum += r.FloatValue(s, uint(ch))
			}
			samples = append(samples, sum/float64(channels))
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("container holds no samples")
	}

	if int(format.SampleRate) != TargetSampleRate {
		samples, err = Resample(samples, int(format.SampleRate), TargetSampleRate)
		if err != nil {
			return nil, err
		}
	}
	return samples, nil
}

// parsePCM16 interprets the payload as raw 16-bit little-endian mono PCM at
// sampleRateHint. Length is validated after resampling so the minimum-duration
// rule applies to the signal the model will actually see.
func parsePCM16(raw []byte, sampleRateHint int) ([]float64, error) {
	if sampleRateHint <= 0 {
		sampleRateHint = TargetSampleRate
	}

	n := len(raw) / 2
	if n == 0 {
		return nil, fmt.Errorf("no complete samples")
	}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768.0
	}

	if sampleRateHint != TargetSampleRate {
		var err error
		samples, err = Resample(samples, sampleRateHint, TargetSampleRate)
		if err != nil {
			return nil, err
		}
	}
	if len(samples) < MinSamples {
		return nil, fmt.Errorf("audio too short, need at least %d samples (~0.1s), got %d",
			MinSamples, len(samples))
	}
	return samples, nil
}
