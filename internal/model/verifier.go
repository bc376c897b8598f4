package model

import (
	"github.com/codebuildervaibhav/speaker-services/internal/audio"
)

// Verifier decides whether two normalized signals carry the same speaker.
type Verifier interface {
	Verify(a, b *audio.Buffer) (score float64, same bool, err error)
}

// ecapaVerifier materializes both buffers to temp WAV files because the
// verification capability operates on file paths. Both files are removed on
// every exit path.
type ecapaVerifier struct {
	runner  *Runner
	modelID string
	tempDir string
}

func newVerifier(runner *Runner, modelID, tempDir string) *ecapaVerifier {
	return &ecapaVerifier{runner: runner, modelID: modelID, tempDir: tempDir}
}

func (v *ecapaVerifier) Verify(a, b *audio.Buffer) (float64, bool, error) {
	fileA, err := audio.WriteTempWAV(v.tempDir, "verify", a)
	if err != nil {
		return 0, false, err
	}
	defer fileA.Cleanup()

	fileB, err := audio.WriteTempWAV(v.tempDir, "verify", b)
	if err != nil {
		return 0, false, err
	}
	defer fileB.Cleanup()

	var out struct {
		Score float64 `json:"score"`
		Same  bool    `json:"same_speaker"`
	}
	if err := v.runner.Run([]string{"verify", "--model", v.modelID, fileA.Path, fileB.Path}, nil, &out); err != nil {
		return 0, false, err
	}
	return out.Score, out.Same, nil
}
