// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Package notify abstracts the operating-system file-change notification
// primitive behind a small interface so the file watcher can be tested
// without touching the real file system.
//
// The production implementation is backed by fsnotify; see [NewFSNotifier].
package notify

// EventKind classifies a single change notification for a watched file.
type EventKind int

const (
	// EventModified means the file's content changed (including the file
	// being atomically replaced at the same path).
	EventModified EventKind = iota

	// EventRemoved means the watched file itself was deleted.
	EventRemoved

	// EventRenamed means the watched file itself was moved away.
	EventRenamed

	// EventOther covers notifications that require no reaction, such as
	// metadata-only changes.
	EventOther
)

// Event is one change notification delivered by a [Session].
type Event struct {
	// Kind classifies the change.
	Kind EventKind
}

// Session is one live notification subscription for a concrete file.
// Events delivers notifications until Close is called; the channel is closed
// when the session ends. Close is safe to call more than once.
type Session interface {
	Events() <-chan Event
	Close() error
}

// Notifier opens notification sessions for individual files. A Watch error
// is not fatal to callers: the file watcher treats a failed subscription as
// "file currently unreadable" and falls back to polling.
type Notifier interface {
	Watch(path string) (Session, error)
}
