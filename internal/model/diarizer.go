package model

import (
	"github.com/codebuildervaibhav/speaker-services/internal/audio"
)

// DefaultDiarizerModel is the pretrained diarization pipeline. It is gated on
// the model hub and needs an access token.
const DefaultDiarizerModel = "pyannote/speaker-diarization-3.1"

// Turn is one raw speaker turn as emitted by the diarization pipeline:
// backend speaker key and boundaries in floating seconds. Turns carry no
// ordering or labeling guarantees; shaping happens at the response layer.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Diarizer partitions a normalized signal into speaker turns.
type Diarizer interface {
	Diarize(buf *audio.Buffer) ([]Turn, error)
}

// pyannoteDiarizer materializes the buffer to a temp WAV file because the
// diarization capability operates on file paths. The file is removed on every
// exit path.
type pyannoteDiarizer struct {
	runner  *Runner
	modelID string
	tempDir string
}

func newDiarizer(runner *Runner, modelID, tempDir string) *pyannoteDiarizer {
	return &pyannoteDiarizer{runner: runner, modelID: modelID, tempDir: tempDir}
}

func (d *pyannoteDiarizer) Diarize(buf *audio.Buffer) ([]Turn, error) {
	f, err := audio.WriteTempWAV(d.tempDir, "diarize", buf)
	if err != nil {
		return nil, err
	}
	defer f.Cleanup()

	var out struct {
		Turns []Turn `json:"turns"`
	}
	if err := d.runner.Run([]string{"diarize", "--model", d.modelID, f.Path}, nil, &out); err != nil {
		return nil, err
	}
	return out.Turns, nil
}
