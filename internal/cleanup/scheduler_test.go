package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestSweepRemovesOnlyStaleWAVs(t *testing.T) {
	dir := t.TempDir()
	staleWAV := filepath.Join(dir, "verify_old.wav")
	freshWAV := filepath.Join(dir, "diarize_new.wav")
	staleTxt := filepath.Join(dir, "notes.txt")

	touch(t, staleWAV, 3*time.Hour)
	touch(t, freshWAV, time.Minute)
	touch(t, staleTxt, 3*time.Hour)

	s := NewScheduler(dir, 30, 2)
	s.sweep()

	_, err := os.Stat(staleWAV)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(freshWAV)
	assert.NoError(t, err)

	// Non-WAV files are not ours to delete.
	_, err = os.Stat(staleTxt)
	assert.NoError(t, err)
}

func TestEnsureTempDirExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "temp")
	require.NoError(t, EnsureTempDirExists(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
