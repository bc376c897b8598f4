package handlers

import (
	"fmt"
	"math"
	"sort"

	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

// Segment is one attributed span of speech, boundaries in milliseconds.
type Segment struct {
	Speaker string `json:"speaker"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// DiarizationResult is the wire shape of a diarization response.
type DiarizationResult struct {
	DurationSec  float64   `json:"duration_sec"`
	SpeakerCount int       `json:"speaker_count"`
	Segments     []Segment `json:"segments"`
}

// shapeDiarization turns raw pipeline output into a deterministic response:
// backend speaker keys are relabeled "S0", "S1", ... in first-seen order,
// boundaries are rounded to milliseconds, and segments are sorted by
// (start_ms, end_ms). Labels are stable within one call only.
func shapeDiarization(turns []model.Turn) DiarizationResult {
	labels := make(map[string]string)
	segments := make([]Segment, 0, len(turns))

	for _, t := range turns {
		label, ok := labels[t.Speaker]
		if !ok {
			label = fmt.Sprintf("S%d", len(labels))
			labels[t.Speaker] = label
		}
		segments = append(segments, Segment{
			Speaker: label,
			StartMS: roundMS(t.Start),
			EndMS:   roundMS(t.End),
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		if segments[i].StartMS != segments[j].StartMS {
			return segments[i].StartMS < segments[j].StartMS
		}
		return segments[i].EndMS < segments[j].EndMS
	})

	var durationSec float64
	if len(segments) > 0 {
		durationSec = float64(segments[len(segments)-1].EndMS) / 1000.0
	}

	return DiarizationResult{
		DurationSec:  durationSec,
		SpeakerCount: len(labels),
		Segments:     segments,
	}
}

// roundMS converts seconds to milliseconds, clamped to >= 0, rounding half
// away from zero.
func roundMS(seconds float64) int64 {
	if seconds < 0 {
		seconds = 0
	}
	return int64(math.Round(seconds * 1000))
}
