// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error kinds.
package config

import "path/filepath"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the CSV data files.
	DataDir string `koanf:"data_dir"`

	// SessionFile, PatientFile and ExerciseFile name the CSV files
	// inside DataDir.
	SessionFile  string `koanf:"session_file"`
	PatientFile  string `koanf:"patient_file"`
	ExerciseFile string `koanf:"exercise_file"`

	// ThresholdsFile optionally points at a YAML file overriding the
	// built-in phase and alert tables. Empty means built-ins only.
	ThresholdsFile string `koanf:"thresholds_file"`

	// MaxPageLimit caps the limit query parameter on list endpoints.
	MaxPageLimit int `koanf:"max_page_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		DataDir:      "data",
		SessionFile:  "sessions.csv",
		PatientFile:  "patients.csv",
		ExerciseFile: "exercises.csv",
		MaxPageLimit: 500,
	}
}

// SessionPath returns the full path of the session log.
func (c *Config) SessionPath() string { return filepath.Join(c.DataDir, c.SessionFile) }

// PatientPath returns the full path of the patient registry.
func (c *Config) PatientPath() string { return filepath.Join(c.DataDir, c.PatientFile) }

// ExercisePath returns the full path of the exercise catalog.
func (c *Config) ExercisePath() string { return filepath.Join(c.DataDir, c.ExerciseFile) }
