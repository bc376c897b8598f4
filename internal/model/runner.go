package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultRunnerName is the external model runner binary. It wraps the
// pretrained SpeechBrain/pyannote capabilities and speaks JSON on stdout.
const DefaultRunnerName = "speaker-model-runner"

// ErrInvocation marks failures inside the model capability itself.
var ErrInvocation = errors.New("model invocation failed")

// FindRunner locates the model runner binary, checking in this order:
// 1. The explicit path from config, if set
// 2. DefaultRunnerName on $PATH
// 3. SPEAKER_RUNNER_PATH env var (warns and continues if set but not found)
// 4. A bundled runner next to the current binary
func FindRunner(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if path, err := exec.LookPath(DefaultRunnerName); err == nil {
		return path, nil
	}

	if envPath := os.Getenv("SPEAKER_RUNNER_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		log.Printf("WARNING: SPEAKER_RUNNER_PATH set to %q but not found, continuing search", envPath)
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), DefaultRunnerName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s not found in PATH", DefaultRunnerName)
}

// Runner invokes the external model runner. Device selection is the runner's
// concern; it is told once, at construction, which device policy to use.
type Runner struct {
	bin      string
	device   string
	extraEnv []string
}

// NewRunner wraps the runner binary at bin. device is passed through on every
// invocation ("auto" lets the runner pick the fastest available device).
func NewRunner(bin, device string) *Runner {
	if device == "" {
		device = "auto"
	}
	return &Runner{bin: bin, device: device}
}

// WithEnv returns a copy of the runner that sets extra environment variables
// on every invocation, on top of the inherited process environment.
func (r *Runner) WithEnv(kv ...string) *Runner {
	clone := *r
	clone.extraEnv = append(append([]string{}, r.extraEnv...), kv...)
	return &clone
}

// Run executes the runner with the given arguments, optional stdin, and
// decodes its stdout JSON into out.
func (r *Runner) Run(args []string, stdin io.Reader, out any) error {
	cmd := exec.Command(r.bin, append(args, "--device", r.device)...)
	cmd.Stdin = stdin
	cmd.Env = append(os.Environ(), r.extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrInvocation, msg)
	}

	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		return fmt.Errorf("%w: runner returned invalid JSON: %v", ErrInvocation, err)
	}
	return nil
}
