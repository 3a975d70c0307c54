// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrAlreadyRun is returned by [Service.Run] when the run loop has
	// already been started once. Re-running a service is a usage violation,
	// not a recoverable condition.
	ErrAlreadyRun = errors.New("configuration service has already been run")
)
