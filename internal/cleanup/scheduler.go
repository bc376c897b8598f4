// Package cleanup sweeps orphaned inference WAV files out of the temp
// directory. Per-request cleanup is best-effort, so a crash mid-request can
// leave files behind; the sweeper is the safety net.
package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scheduler periodically removes stale WAV files from the temp directory.
type Scheduler struct {
	tempDir         string
	intervalMinutes int
	maxAgeHours     int
	stopChan        chan struct{}
}

// NewScheduler creates a sweeper for tempDir.
func NewScheduler(tempDir string, intervalMinutes, maxAgeHours int) *Scheduler {
	return &Scheduler{
		tempDir:         tempDir,
		intervalMinutes: intervalMinutes,
		maxAgeHours:     maxAgeHours,
		stopChan:        make(chan struct{}),
	}
}

// Start runs one sweep immediately, then sweeps on the configured interval.
func (s *Scheduler) Start() {
	s.sweep()

	ticker := time.NewTicker(time.Duration(s.intervalMinutes) * time.Minute)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Temp sweeper started (interval: %dm, max age: %dh)",
		s.intervalMinutes, s.maxAgeHours)
}

// Stop stops the sweeper.
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// sweep removes WAV files older than maxAgeHours. Files of other types are
// left alone; the temp dir may be shared.
func (s *Scheduler) sweep() {
	now := time.Now()
	maxAge := time.Duration(s.maxAgeHours) * time.Hour

	var removed int
	err := filepath.Walk(s.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}
		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to remove stale temp file %s: %v", path, err)
			} else {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Temp sweep error: %v", err)
	}
	if removed > 0 {
		log.Printf("Temp sweep removed %d stale file(s)", removed)
	}
}

// EnsureTempDirExists creates the temp directory if it doesn't exist.
func EnsureTempDirExists(tempDir string) error {
	return os.MkdirAll(tempDir, 0755)
}
