// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// sessionBuffer bounds how many undelivered events a session holds. A full
// buffer drops the newest event: notifications are edge triggers that cause
// a re-read, so a drop during an ongoing burst is recovered by the event
// that ends the burst.
const sessionBuffer = 16

// fsNotifier implements [Notifier] on top of fsnotify, opening one
// fsnotify.Watcher per session so each watched file has an isolated
// subscription lifecycle.
type fsNotifier struct{}

// NewFSNotifier returns the production [Notifier] backed by fsnotify.
func NewFSNotifier() Notifier {
	return &fsNotifier{}
}

// Watch subscribes to change notifications for one concrete file. It fails
// if the underlying watcher cannot be created or the path cannot be added,
// which for a missing file is the normal "currently unreadable" signal.
func (n *fsNotifier) Watch(path string) (Session, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating fsnotify watcher: %w", err)
	}

	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("error watching %q: %w", path, err)
	}

	s := &fsSession{
		watcher: w,
		events:  make(chan Event, sessionBuffer),
	}
	go s.pump()

	return s, nil
}

// fsSession adapts one fsnotify.Watcher to the [Session] interface.
type fsSession struct {
	watcher   *fsnotify.Watcher
	events    chan Event
	closeOnce sync.Once
	closeErr  error
}

// pump translates raw fsnotify events into [Event] values until the
// underlying watcher is closed, then closes the session's event channel.
func (s *fsSession) pump() {
	defer close(s.events)

	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			select {
			case s.events <- Event{Kind: mapOp(ev.Op)}:
			default:
				// Buffer full: drop, the consumer re-reads on the next event.
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			// Watcher errors are not actionable per-file; surface as a
			// generic event so the consumer may re-check the path.
			select {
			case s.events <- Event{Kind: EventOther}:
			default:
			}
		}
	}
}

// Events returns the session's notification channel.
func (s *fsSession) Events() <-chan Event {
	return s.events
}

// Close ends the subscription. Idempotent: only the first call closes the
// underlying watcher.
func (s *fsSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.watcher.Close()
	})
	return s.closeErr
}

// mapOp reduces an fsnotify operation bitmask to the coarser [EventKind]
// the watcher loop reacts to. Remove and Rename take priority over Write
// so a delete inside a combined op re-enters the polling path.
func mapOp(op fsnotify.Op) EventKind {
	switch {
	case op.Has(fsnotify.Remove):
		return EventRemoved
	case op.Has(fsnotify.Rename):
		return EventRenamed
	case op.Has(fsnotify.Write), op.Has(fsnotify.Create):
		return EventModified
	default:
		return EventOther
	}
}
