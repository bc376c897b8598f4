package audio

import "errors"

const (
	// TargetSampleRate is the rate every model in this repo expects.
	TargetSampleRate = 16000

	// MinSamples is the shortest signal worth sending to a model (~0.1s).
	MinSamples = 1600

	// MinRawBytes is the shortest upload worth attempting to decode.
	MinRawBytes = 1600
)

// ErrInvalidAudio marks payloads that could not be decoded into a usable
// signal, or that are too short for inference.
var ErrInvalidAudio = errors.New("invalid audio")

// Buffer is a normalized audio signal: mono, TargetSampleRate, float samples
// in [-1, 1]. Buffers are request-scoped and must not be modified after
// construction.
type Buffer struct {
	samples []float64
}

// Samples returns the underlying sample slice. Callers must treat it as
// read-only.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Duration returns the signal length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(len(b.samples)) / float64(TargetSampleRate)
}
