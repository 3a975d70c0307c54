// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"strings"
	"time"
)

// fileList accumulates file paths from a repeatable flag.
// It implements the flag.Value interface; each occurrence may itself be a
// comma-separated list.
type fileList []string

// String returns the accumulated paths joined by commas.
func (l *fileList) String() string {
	return strings.Join(*l, ",")
}

// Set appends the paths given in value, splitting on commas and skipping
// empty entries.
func (l *fileList) Set(value string) error {
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-f required configuration file to watch (repeatable, comma lists allowed)
//	-optional-file optional configuration file to watch (repeatable)
//	-max-file-size per-file size guard in bytes
//	-poll-interval wait between checks while a file is absent (e.g., "5s")
//	-debounce-window per-file quiet period (e.g., "1s")
//	-aggregation-window service-level quiet period (e.g., "100ms")
//	-env-layer include the environment layer in delivered configurations
//	-env-prefix prefix selecting environment layer variables
func ParseFlags() *Settings {
	var required, optional fileList
	var maxFileSize int64
	var pollInterval time.Duration
	var debounceWindow time.Duration
	var aggregationWindow time.Duration
	var includeEnv bool
	var envPrefix string

	flag.Var(&required, "f", "Required configuration file to watch")
	flag.Var(&optional, "optional-file", "Optional configuration file to watch")
	flag.Int64Var(&maxFileSize, "max-file-size", 0, "Per-file size guard in bytes")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Poll interval while a file is absent (e.g., 5s)")
	flag.DurationVar(&debounceWindow, "debounce-window", 0, "Per-file debounce quiet period (e.g., 1s)")
	flag.DurationVar(&aggregationWindow, "aggregation-window", 0, "Service-level debounce quiet period (e.g., 100ms)")
	flag.BoolVar(&includeEnv, "env-layer", false, "Include the environment layer in delivered configurations")
	flag.StringVar(&envPrefix, "env-prefix", "", "Prefix selecting environment layer variables")

	flag.Parse()

	return &Settings{
		Watch: Watch{
			Files:             required,
			OptionalFiles:     optional,
			MaxFileSize:       maxFileSize,
			PollInterval:      pollInterval,
			DebounceWindow:    debounceWindow,
			AggregationWindow: aggregationWindow,
		},
		Layers: Layers{
			IncludeEnv: includeEnv,
			EnvPrefix:  envPrefix,
		},
	}
}
