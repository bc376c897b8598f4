package model

import (
	"fmt"
	"log"
	"sync"
)

// Options configures the registry. Zero values fall back to the default
// pretrained models and an automatic device pick.
type Options struct {
	RunnerPath    string
	Device        string
	TempDir       string
	EmbedderModel string
	DiarizerModel string
}

// Registry owns the model capabilities for one process. It is constructed
// once at startup and injected into handlers. Each capability is built
// lazily, at most once, on first use; concurrent first callers block on the
// mutex and observe the single constructed instance. A failed construction is
// not cached, so a later request retries (e.g. after the operator fixes a
// missing credential).
type Registry struct {
	// Constructor hooks, replaceable before serving begins.
	NewEmbedder func() (Embedder, error)
	NewVerifier func() (Verifier, error)
	NewDiarizer func() (Diarizer, error)

	mu       sync.Mutex
	embedder Embedder
	verifier Verifier
	diarizer Diarizer
}

// NewRegistry builds a registry whose capabilities invoke the external model
// runner. The runner itself is located on first use, not here, so a missing
// runner surfaces as a request error rather than a startup crash.
func NewRegistry(opts Options) *Registry {
	if opts.EmbedderModel == "" {
		opts.EmbedderModel = DefaultEmbedderModel
	}
	if opts.DiarizerModel == "" {
		opts.DiarizerModel = DefaultDiarizerModel
	}

	r := &Registry{}
	r.NewEmbedder = func() (Embedder, error) {
		runner, err := r.buildRunner(opts)
		if err != nil {
			return nil, err
		}
		log.Printf("Loading embedding model %s", opts.EmbedderModel)
		return newEmbedder(runner, opts.EmbedderModel), nil
	}
	r.NewVerifier = func() (Verifier, error) {
		runner, err := r.buildRunner(opts)
		if err != nil {
			return nil, err
		}
		log.Printf("Loading verification model %s", opts.EmbedderModel)
		return newVerifier(runner, opts.EmbedderModel, opts.TempDir), nil
	}
	r.NewDiarizer = func() (Diarizer, error) {
		token := AuthToken()
		if token == "" {
			return nil, fmt.Errorf("%w: missing Hugging Face token, set PYANNOTE_AUTH_TOKEN (or HF_TOKEN)",
				ErrConfiguration)
		}
		runner, err := r.buildRunner(opts)
		if err != nil {
			return nil, err
		}
		log.Printf("Loading diarization pipeline %s", opts.DiarizerModel)
		return newDiarizer(runner.WithEnv("HF_TOKEN="+token), opts.DiarizerModel, opts.TempDir), nil
	}
	return r
}

func (r *Registry) buildRunner(opts Options) (*Runner, error) {
	bin, err := FindRunner(opts.RunnerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return NewRunner(bin, opts.Device), nil
}

// Embedder returns the process-wide embedding capability, constructing it on
// first call.
func (r *Registry) Embedder() (Embedder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.embedder == nil {
		e, err := r.NewEmbedder()
		if err != nil {
			return nil, err
		}
		r.embedder = e
	}
	return r.embedder, nil
}

// Verifier returns the process-wide verification capability, constructing it
// on first call.
func (r *Registry) Verifier() (Verifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.verifier == nil {
		v, err := r.NewVerifier()
		if err != nil {
			return nil, err
		}
		r.verifier = v
	}
	return r.verifier, nil
}

// Diarizer returns the process-wide diarization capability, constructing it
// on first call.
func (r *Registry) Diarizer() (Diarizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.diarizer == nil {
		d, err := r.NewDiarizer()
		if err != nil {
			return nil, err
		}
		r.diarizer = d
	}
	return r.diarizer, nil
}
