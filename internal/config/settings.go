// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-live-config/models"
)

// Settings is the top-level configuration container for the configwatch
// tool. It is populated by merging values from environment variables,
// command-line flags, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Settings struct {
	// Watch holds the file-watching parameters: which files to watch and
	// the timing/size knobs of the pipeline.
	Watch Watch `envPrefix:"WATCH_"`

	// Layers controls the optional non-file configuration layers merged on
	// top of the watched files.
	Layers Layers `envPrefix:"LAYERS_"`
}

// Watch groups the file-watching parameters.
type Watch struct {
	// Files lists required configuration files, comma-separated in the
	// environment. A required file that is missing aborts every refresh.
	// Env: WATCH_FILES
	Files []string `env:"FILES" envSeparator:","`

	// OptionalFiles lists configuration files that may be absent; a missing
	// optional file simply contributes no layer.
	// Env: WATCH_OPTIONAL_FILES
	OptionalFiles []string `env:"OPTIONAL_FILES" envSeparator:","`

	// MaxFileSize is the per-file size guard in bytes.
	// Env: WATCH_MAX_FILE_SIZE
	MaxFileSize int64 `env:"MAX_FILE_SIZE"`

	// PollInterval is the wait between readability checks while a watched
	// file is absent (e.g. "5s").
	// Env: WATCH_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// DebounceWindow is the per-file quiet period (e.g. "1s").
	// Env: WATCH_DEBOUNCE_WINDOW
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW"`

	// AggregationWindow is the service-level quiet period applied to the
	// combined snapshot stream (e.g. "100ms").
	// Env: WATCH_AGGREGATION_WINDOW
	AggregationWindow time.Duration `env:"AGGREGATION_WINDOW"`
}

// Layers controls the optional environment layer of the delivered
// configuration (not to be confused with the env vars configuring the tool
// itself).
type Layers struct {
	// IncludeEnv merges process environment variables over the file layers
	// of every delivered configuration.
	// Env: LAYERS_INCLUDE_ENV
	IncludeEnv bool `env:"INCLUDE_ENV"`

	// EnvPrefix selects which environment variables participate in the
	// environment layer and is stripped from their names.
	// Env: LAYERS_ENV_PREFIX
	EnvPrefix string `env:"ENV_PREFIX"`
}

// FileSpecs converts the configured file lists into watch specifications,
// required files first, preserving declaration order within each list.
// Later files override earlier ones on key collisions, so optional files
// (typically local overrides) come last.
func (s *Settings) FileSpecs() []models.FileSpec {
	specs := make([]models.FileSpec, 0, len(s.Watch.Files)+len(s.Watch.OptionalFiles))
	for _, path := range s.Watch.Files {
		specs = append(specs, models.FileSpec{Path: path})
	}
	for _, path := range s.Watch.OptionalFiles {
		specs = append(specs, models.FileSpec{Path: path, Optional: true})
	}
	return specs
}

// validate checks the merged settings for values the pipeline cannot run
// with.
func (s *Settings) validate() error {
	if len(s.Watch.Files) == 0 && len(s.Watch.OptionalFiles) == 0 {
		return ErrNoFilesConfigured
	}
	if s.Watch.MaxFileSize < 0 {
		return ErrInvalidWatchSettings
	}
	if s.Watch.PollInterval < 0 || s.Watch.DebounceWindow < 0 || s.Watch.AggregationWindow < 0 {
		return ErrInvalidWatchSettings
	}
	if s.Layers.IncludeEnv && s.Layers.EnvPrefix == "" {
		return ErrInvalidLayerSettings
	}
	return nil
}
