// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package watcher

import (
	"context"

	"github.com/MKhiriev/go-live-config/internal/stream"
	"github.com/MKhiriev/go-live-config/models"
)

// MultiWatcher combines the state sequences of several watched files into
// one sequence of [models.FilesSnapshot] values. Each file's raw sequence is
// debounced and deduplicated individually before entering combination, so a
// burst of notifications for one file surfaces as a single snapshot update.
type MultiWatcher struct {
	files *FileWatcher
	mode  stream.EmptyMode
}

// NewMultiWatcher builds a MultiWatcher over the given per-file watcher.
func NewMultiWatcher(files *FileWatcher) *MultiWatcher {
	return &MultiWatcher{files: files, mode: stream.EmptyComplete}
}

// Snapshots starts one watch per spec and returns the combined snapshot
// sequence. The first snapshot is emitted only once every file has reported
// at least one state; slot i of every snapshot always corresponds to
// specs[i]. The sequence closes when ctx is cancelled (or immediately after
// one empty snapshot when specs is empty).
func (m *MultiWatcher) Snapshots(ctx context.Context, specs []models.FileSpec) <-chan models.FilesSnapshot {
	debounced := make([]<-chan models.FileState, len(specs))
	for i, spec := range specs {
		raw := m.files.Watch(ctx, spec)
		debounced[i] = stream.Debounce(ctx, raw, m.files.opts.DebounceWindow, models.FileState.Equal)
	}

	combined := stream.CombineLatest(ctx, debounced, m.mode)

	out := make(chan models.FilesSnapshot)
	go func() {
		defer close(out)
		for states := range combined {
			select {
			case out <- models.NewFilesSnapshot(specs, states):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
