// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command configwatch watches a set of configuration files and logs every
// assembled configuration update until the process is stopped. It is both a
// demonstration of the library and a handy way to observe what a set of
// layered configuration sources resolves to over time.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/v2"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-live-config/internal/assembler"
	"github.com/MKhiriev/go-live-config/internal/config"
	"github.com/MKhiriev/go-live-config/internal/logger"
	"github.com/MKhiriev/go-live-config/internal/notify"
	"github.com/MKhiriev/go-live-config/internal/service"
	"github.com/MKhiriev/go-live-config/internal/watcher"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("configwatch")
	settings, err := config.GetSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting settings")
	}

	log.Debug().Any("settings", settings).Msg("received settings")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	files := watcher.NewFileWatcher(notify.NewFSNotifier(), watcher.Options{
		MaxFileSize:    settings.Watch.MaxFileSize,
		PollInterval:   settings.Watch.PollInterval,
		DebounceWindow: settings.Watch.DebounceWindow,
	}, log)

	svc := service.New(settings.FileSpecs(), files, service.Options{
		Assembler: assembler.Options{
			IncludeEnv: settings.Layers.IncludeEnv,
			EnvPrefix:  settings.Layers.EnvPrefix,
		},
		AggregationWindow: settings.Watch.AggregationWindow,
	}, log)

	sub := service.Subscribe(svc, func(lookup *koanf.Koanf) (map[string]any, error) {
		return lookup.Raw(), nil
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(ctx)
	})
	g.Go(func() error {
		for cfg := range sub.Updates() {
			log.Info().Int("keys", len(cfg)).Any("configuration", cfg).Msg("configuration updated")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("error running configuration service")
	}

	log.Info().Msg("configwatch shut down gracefully")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
