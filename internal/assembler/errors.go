// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package assembler

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying why a configuration refresh was discarded.
// Match them with errors.Is against the error returned by
// [Assembler.Assemble].
var (
	// ErrFileTooLarge indicates a watched file over the size guard.
	ErrFileTooLarge = errors.New("configuration file too large")
	// ErrMissingFile indicates an absent file that was not marked optional.
	ErrMissingFile = errors.New("required configuration file is missing")
	// ErrFileRead indicates a file that failed while being read.
	ErrFileRead = errors.New("error reading configuration file")
	// ErrParse indicates a file payload the lookup engine could not parse.
	ErrParse = errors.New("failed to parse configuration")
	// ErrUnknown covers failures outside the known classes.
	ErrUnknown = errors.New("unknown configuration error")
)

// RefreshError describes one discarded refresh cycle: which error class it
// belongs to, the file it concerns (when file-scoped) and the underlying
// cause (when one exists). It unwraps to both the class sentinel and the
// cause, so callers can use errors.Is on either.
type RefreshError struct {
	class error
	Path  string
	Cause error
}

func newRefreshError(class error, path string, cause error) *RefreshError {
	return &RefreshError{class: class, Path: path, Cause: cause}
}

// NewFileTooLarge classifies a refresh aborted by an oversized file.
func NewFileTooLarge(path string) *RefreshError {
	return newRefreshError(ErrFileTooLarge, path, nil)
}

// NewMissingFile classifies a refresh aborted by a missing required file.
func NewMissingFile(path string) *RefreshError {
	return newRefreshError(ErrMissingFile, path, nil)
}

// NewFileReadError classifies a refresh aborted by a failed file read.
func NewFileReadError(path string, cause error) *RefreshError {
	return newRefreshError(ErrFileRead, path, cause)
}

// NewParseError classifies a refresh aborted by an unparsable payload.
func NewParseError(cause error) *RefreshError {
	return newRefreshError(ErrParse, "", cause)
}

// NewUnknownError classifies a refresh aborted by an unexpected failure.
func NewUnknownError(cause error) *RefreshError {
	return newRefreshError(ErrUnknown, "", cause)
}

// Error formats the class, path and cause that are present.
func (e *RefreshError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s", e.class, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.class, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s", e.class, e.Cause)
	default:
		return e.class.Error()
	}
}

// Unwrap exposes the class sentinel and the cause to errors.Is/errors.As.
func (e *RefreshError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.class, e.Cause}
	}
	return []error{e.class}
}
