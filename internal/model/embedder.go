package model

import (
	"bytes"
	"fmt"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
)

// EmbeddingDim is the fixed length of an ECAPA-TDNN speaker embedding.
const EmbeddingDim = 192

// DefaultEmbedderModel is the pretrained speaker-embedding model.
const DefaultEmbedderModel = "speechbrain/spkrec-ecapa-voxceleb"

// Embedder computes a fixed-length speaker embedding from a normalized signal.
type Embedder interface {
	Encode(buf *audio.Buffer) ([]float64, error)
}

// ecapaEmbedder streams WAV-encoded audio to the runner over stdin; the
// embedding capability does not need a file on disk.
type ecapaEmbedder struct {
	runner  *Runner
	modelID string
}

func newEmbedder(runner *Runner, modelID string) *ecapaEmbedder {
	return &ecapaEmbedder{runner: runner, modelID: modelID}
}

func (e *ecapaEmbedder) Encode(buf *audio.Buffer) ([]float64, error) {
	wavBytes, err := audio.EncodeWAV(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvocation, err)
	}

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := e.runner.Run([]string{"embed", "--model", e.modelID, "-"}, bytes.NewReader(wavBytes), &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) != EmbeddingDim {
		return nil, fmt.Errorf("%w: expected %d-dim embedding, got %d",
			ErrInvocation, EmbeddingDim, len(out.Embedding))
	}
	return out.Embedding, nil
}
