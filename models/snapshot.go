// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FilesSnapshot is a point-in-time view of every watched file: slot i pairs
// Specs[i] with the most recent FileState observed for that path. Slot order
// matches the FileSpec order given at service construction and never changes.
type FilesSnapshot struct {
	// Specs lists the watched files in their fixed declaration order.
	Specs []FileSpec

	// States holds the latest observed state for each spec, index-aligned
	// with Specs.
	States []FileState
}

// NewFilesSnapshot pairs specs with their current states.
// Both slices must be index-aligned; callers guarantee equal length.
func NewFilesSnapshot(specs []FileSpec, states []FileState) FilesSnapshot {
	return FilesSnapshot{Specs: specs, States: states}
}

// Len returns the number of watched-file slots in the snapshot.
func (s FilesSnapshot) Len() int {
	return len(s.Specs)
}
