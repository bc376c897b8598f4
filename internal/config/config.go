package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the shared shape of both service configs.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Model struct {
		ID         string `yaml:"id"`
		Device     string `yaml:"device"`
		RunnerPath string `yaml:"runner_path"`
	} `yaml:"model"`

	Storage struct {
		TempDir string `yaml:"temp_dir"`
	} `yaml:"storage"`

	Cleanup struct {
		IntervalMinutes int `yaml:"interval_minutes"`
		MaxAgeHours     int `yaml:"max_age_hours"`
	} `yaml:"cleanup"`

	Limits struct {
		MaxFileSizeMB int `yaml:"max_file_size_mb"`
	} `yaml:"limits"`
}

// Load reads the YAML config at path on top of the given defaults. A missing
// file is not an error; the defaults are returned so the binaries run bare.
// A .env file in the working directory is loaded first so model credentials
// can live outside the config.
func Load(path string, defaults Config) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func baseDefaults() Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Model.Device = "auto"
	cfg.Storage.TempDir = "temp"
	cfg.Cleanup.IntervalMinutes = 30
	cfg.Cleanup.MaxAgeHours = 2
	cfg.Limits.MaxFileSizeMB = 50
	return cfg
}

// EmbedderDefaults returns the defaults for the speaker-embedding service.
func EmbedderDefaults() Config {
	cfg := baseDefaults()
	cfg.Server.Port = 5000
	cfg.Model.ID = "speechbrain/spkrec-ecapa-voxceleb"
	return cfg
}

// DiarizerDefaults returns the defaults for the diarization service.
func DiarizerDefaults() Config {
	cfg := baseDefaults()
	cfg.Server.Port = 5001
	cfg.Model.ID = "pyannote/speaker-diarization-3.1"
	return cfg
}
