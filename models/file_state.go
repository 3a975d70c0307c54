// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "bytes"

// FileStateKind discriminates the variants of [FileState].
type FileStateKind int

const (
	// FileStateData means the file was read successfully and its full
	// content is carried in the state.
	FileStateData FileStateKind = iota

	// FileStateTooLarge means the file exists but exceeds the configured
	// maximum size; no content is carried.
	FileStateTooLarge

	// FileStateUnreadable means the file could not be opened at all,
	// typically because it does not exist or permissions deny access.
	FileStateUnreadable

	// FileStateReadError means the file was opened but reading its content
	// failed; the underlying cause is carried in the state.
	FileStateReadError
)

// String returns a short lowercase label for the kind, used in log fields.
func (k FileStateKind) String() string {
	switch k {
	case FileStateData:
		return "data"
	case FileStateTooLarge:
		return "too_large"
	case FileStateUnreadable:
		return "unreadable"
	case FileStateReadError:
		return "read_error"
	default:
		return "unknown"
	}
}

// FileState is the tagged union of observations a file watcher can make
// about a single path. Values are immutable; construct them with
// [DataState], [TooLargeState], [UnreadableState] or [ReadErrorState].
type FileState struct {
	kind  FileStateKind
	data  []byte
	cause error
}

// DataState returns a FileState carrying the full file content.
func DataState(data []byte) FileState {
	return FileState{kind: FileStateData, data: data}
}

// TooLargeState returns a FileState for a file over the size limit.
func TooLargeState() FileState {
	return FileState{kind: FileStateTooLarge}
}

// UnreadableState returns a FileState for a file that cannot be opened.
func UnreadableState() FileState {
	return FileState{kind: FileStateUnreadable}
}

// ReadErrorState returns a FileState for a file that failed mid-read.
func ReadErrorState(cause error) FileState {
	return FileState{kind: FileStateReadError, cause: cause}
}

// Kind returns the variant tag of the state.
func (s FileState) Kind() FileStateKind {
	return s.kind
}

// Data returns the file content for a FileStateData state and nil otherwise.
// The returned slice is a copy; mutating it cannot corrupt the state or its
// equality semantics.
func (s FileState) Data() []byte {
	return bytes.Clone(s.data)
}

// Cause returns the underlying read error for a FileStateReadError state
// and nil otherwise.
func (s FileState) Cause() error {
	return s.cause
}

// Equal reports whether two states represent the same observation.
//
// Data states compare by byte content. ReadError states are always equal to
// each other regardless of cause: the equality is deliberately coarse so that
// repeated read failures (even with a changing cause) deduplicate into a
// single downstream transition. All other kinds compare by tag only.
func (s FileState) Equal(other FileState) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind == FileStateData {
		return bytes.Equal(s.data, other.data)
	}
	return true
}
