package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	wav "github.com/youpy/go-wav"
)

// TempWAV is a request-scoped WAV file materialized for model capabilities
// that operate on file paths instead of in-memory buffers.
type TempWAV struct {
	Path string
}

// WriteTempWAV writes a buffer to a uniquely named 16-bit mono WAV file under
// dir (os.TempDir when empty). The caller owns the file and must call Cleanup
// when done with it.
func WriteTempWAV(dir, prefix string, buf *Buffer) (*TempWAV, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.wav", prefix, uuid.New().String()))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp wav: %w", err)
	}
	if err := encodeWAV(f, buf); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close temp wav: %w", err)
	}
	return &TempWAV{Path: path}, nil
}

// Cleanup removes the file. Removal errors are ignored: cleanup is
// best-effort and must never mask the primary result or error.
func (t *TempWAV) Cleanup() {
	if t == nil || t.Path == "" {
		return
	}
	os.Remove(t.Path)
}

// EncodeWAV serializes a buffer as a 16-bit mono WAV byte stream, for model
// capabilities that accept audio over stdin.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := encodeWAV(&out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeWAV(w io.Writer, buf *Buffer) error {
	writer := wav.NewWriter(w, uint32(buf.Len()), 1, TargetSampleRate, 16)

	samples := make([]wav.Sample, buf.Len())
	for i, v := range buf.Samples() {
		s := int(math.Round(v * 32767))
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		samples[i].Values[0] = s
	}
	return writer.WriteSamples(samples)
}
