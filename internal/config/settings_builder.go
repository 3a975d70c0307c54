package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type settingsBuilder struct {
	settings []*Settings
	err      error
}

func newSettingsBuilder() *settingsBuilder {
	return &settingsBuilder{
		settings: make([]*Settings, 0, 3),
	}
}

func (b *settingsBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building settings: %w", b.err)
	}

	settings := new(Settings)
	for _, s := range b.settings {
		if err := mergo.Merge(settings, s); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	return settings, settings.validate()
}

func (b *settingsBuilder) withEnv() *settingsBuilder {
	envSettings := &Settings{}
	if err := parseEnv(envSettings); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.settings = append(b.settings, envSettings)
	return b
}

func (b *settingsBuilder) withFlags() *settingsBuilder {
	b.settings = append(b.settings, ParseFlags())
	return b
}

func (b *settingsBuilder) withDefaults() *settingsBuilder {
	b.settings = append(b.settings, defaultSettings())
	return b
}

// defaultSettings returns the built-in lowest-priority settings layer.
// File lists stay empty: which files to watch is always an explicit choice.
func defaultSettings() *Settings {
	return &Settings{
		Watch: Watch{
			MaxFileSize:       10 * 1024,
			PollInterval:      5 * time.Second,
			DebounceWindow:    time.Second,
			AggregationWindow: 100 * time.Millisecond,
		},
	}
}

// GetSettings assembles the tool settings from environment variables,
// command-line flags, and defaults (in that priority order), then validates
// the result.
func GetSettings() (*Settings, error) {
	return newSettingsBuilder().
		withEnv().
		withFlags().
		withDefaults().
		build()
}
