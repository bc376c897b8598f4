package model

import (
	"errors"
	"os"
	"strings"
)

// ErrConfiguration marks a missing credential for a downstream model. It is
// surfaced on first use, not at process start.
var ErrConfiguration = errors.New("configuration error")

// tokenEnvVars are checked in order; the first non-empty value wins.
var tokenEnvVars = []string{"PYANNOTE_AUTH_TOKEN", "HF_TOKEN", "HUGGINGFACE_TOKEN"}

// AuthToken returns the Hugging Face access token used to fetch the gated
// diarization model, or "" when none is configured.
func AuthToken() string {
	for _, key := range tokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
