package config

import "errors"

// Validation errors returned by [Settings.validate] when the merged
// settings are incomplete or invalid.
var (
	// ErrNoFilesConfigured indicates that neither required nor optional
	// files were given, leaving the pipeline nothing to watch.
	ErrNoFilesConfigured = errors.New("no configuration files to watch")
	// ErrInvalidWatchSettings indicates a negative size guard or a negative
	// timing parameter.
	ErrInvalidWatchSettings = errors.New("invalid watch settings")
	// ErrInvalidLayerSettings indicates the environment layer was enabled
	// without a variable prefix to select its keys.
	ErrInvalidLayerSettings = errors.New("invalid layer settings")
)
