// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package watcher produces live sequences of file states: one unbounded
// per-path sequence via [FileWatcher.Watch], and the combined all-files
// snapshot sequence via [MultiWatcher.Snapshots].
package watcher

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-live-config/internal/logger"
	"github.com/MKhiriev/go-live-config/internal/notify"
	"github.com/MKhiriev/go-live-config/models"
)

// Default watching parameters, applied by [Options.withDefaults] for any
// zero-valued field.
const (
	DefaultMaxFileSize     = 10 * 1024
	DefaultPollInterval    = 5 * time.Second
	DefaultFirstRetryDelay = 100 * time.Millisecond
	DefaultDebounceWindow  = time.Second
)

// Options configures per-file watching behavior.
type Options struct {
	// MaxFileSize is the size guard in bytes: files over this size yield
	// a TooLarge state instead of content. A read never buffers more than
	// MaxFileSize+1 bytes.
	MaxFileSize int64

	// PollInterval is how long the watcher waits between readability
	// checks while the file is absent.
	PollInterval time.Duration

	// FirstRetryDelay is the shortened first wait after a file becomes
	// unreadable. It catches the common delete-then-recreate sequence
	// without waiting a full poll interval.
	FirstRetryDelay time.Duration

	// DebounceWindow is the per-file quiet period applied by the
	// multi-file stream before states enter combination.
	DebounceWindow time.Duration
}

// withDefaults fills zero-valued fields with the package defaults.
func (o Options) withDefaults() Options {
	if o.MaxFileSize == 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.FirstRetryDelay == 0 {
		o.FirstRetryDelay = DefaultFirstRetryDelay
	}
	if o.DebounceWindow == 0 {
		o.DebounceWindow = DefaultDebounceWindow
	}
	return o
}

// FileWatcher emits a live, never-restarting sequence of [models.FileState]
// values for individual paths. It combines native change notifications with
// a polling fallback for the periods when a path cannot be watched.
type FileWatcher struct {
	notifier notify.Notifier
	opts     Options
	logger   *logger.Logger
}

// NewFileWatcher constructs a FileWatcher over the given notifier.
// Zero-valued Options fields fall back to the package defaults.
func NewFileWatcher(notifier notify.Notifier, opts Options, log *logger.Logger) *FileWatcher {
	return &FileWatcher{
		notifier: notifier,
		opts:     opts.withDefaults(),
		logger:   log,
	}
}

// Watch starts watching one file and returns its state sequence. The
// sequence never ends on its own: it is closed only when ctx is cancelled.
//
// While the file is readable, the watcher emits the current state and then
// reacts to change notifications: a modification re-reads and re-emits, a
// delete or move tears the notification session down and re-enters the
// readability check. While the file is unreadable, a single Unreadable state
// is emitted for the whole episode (not one per poll) and the watcher polls
// until the file appears: first after FirstRetryDelay, then every
// PollInterval.
func (w *FileWatcher) Watch(ctx context.Context, spec models.FileSpec) <-chan models.FileState {
	out := make(chan models.FileState)

	go func() {
		defer close(out)

		unreadableSent := false
		firstRetry := true

		for ctx.Err() == nil {
			state, exists := w.readFile(spec.Path)
			if exists {
				if !send(ctx, out, state) {
					return
				}
				unreadableSent = false
				firstRetry = true

				if !w.followChanges(ctx, spec.Path, out) {
					return
				}
				continue
			}

			if !unreadableSent {
				if !send(ctx, out, state) {
					return
				}
				unreadableSent = true
			}

			delay := w.opts.PollInterval
			if firstRetry {
				delay = w.opts.FirstRetryDelay
				firstRetry = false
			}
			if !wait(ctx, delay) {
				return
			}
		}
	}()

	return out
}

// followChanges consumes one notification session for path, re-reading and
// re-emitting on every modification. It returns true when the outer watch
// loop should run another iteration (file deleted, moved, or session lost)
// and false when ctx was cancelled. The session is always closed before
// returning.
func (w *FileWatcher) followChanges(ctx context.Context, path string, out chan<- models.FileState) bool {
	session, err := w.notifier.Watch(path)
	if err != nil {
		// No notification channel available: fall back to plain polling.
		w.logger.Debug().Err(err).Str("path", path).Msg("change notification unavailable, polling")
		return wait(ctx, w.opts.PollInterval)
	}
	defer func() { _ = session.Close() }()

	for {
		select {
		case <-ctx.Done():
			return false

		case ev, ok := <-session.Events():
			if !ok {
				return true
			}
			switch ev.Kind {
			case notify.EventModified:
				state, exists := w.readFile(path)
				if !exists {
					return true
				}
				if !send(ctx, out, state) {
					return false
				}
			case notify.EventRemoved, notify.EventRenamed:
				return true
			case notify.EventOther:
				// Nothing to re-read.
			}
		}
	}
}

// readFile classifies the current content of path. The second return value
// reports whether the file could be opened at all; when it is false the
// state is Unreadable and the caller enters the polling path.
//
// Classification is purely size-based: reading stops after MaxFileSize+1
// bytes, and any overflow byte means TooLarge.
func (w *FileWatcher) readFile(path string) (models.FileState, bool) {
	f, err := os.Open(path)
	if err != nil {
		return models.UnreadableState(), false
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, w.opts.MaxFileSize+1))
	if err != nil {
		return models.ReadErrorState(err), true
	}
	if int64(len(data)) > w.opts.MaxFileSize {
		return models.TooLargeState(), true
	}

	return models.DataState(data), true
}

// send delivers one state, aborting on cancellation.
func send(ctx context.Context, out chan<- models.FileState, state models.FileState) bool {
	select {
	case out <- state:
		return true
	case <-ctx.Done():
		return false
	}
}

// wait sleeps for d, aborting early on cancellation.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
