package audio

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample converts a mono signal from one sample rate to another. The whole
// buffer is processed in one pass; this is not a streaming interface.
func Resample(samples []float64, from, to int) ([]float64, error) {
	if from == to {
		return samples, nil
	}
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("invalid sample rates: %d -> %d", from, to)
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	out, err := r.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resample %d -> %d failed: %w", from, to, err)
	}
	return out, nil
}
