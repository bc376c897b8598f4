// Package logbuf keeps a bounded in-memory tail of process logs, backing the
// /logs endpoint.
package logbuf

import "sync"

const maxLines = 1000

// Buffer is an io.Writer that retains the most recent log lines.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{lines: make([]string, 0, maxLines)}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, string(p))
	if len(b.lines) > maxLines {
		b.lines = b.lines[len(b.lines)-maxLines:]
	}
	return len(p), nil
}

// Lines returns a copy of the retained log lines, oldest first.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
