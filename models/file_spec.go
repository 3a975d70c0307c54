// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FileSpec identifies one configuration file watched by the service.
// A FileSpec is immutable: the set of watched files is fixed when the
// service is constructed and never changes during its lifetime.
type FileSpec struct {
	// Path is the file-system path of the configuration file.
	Path string `json:"path"`

	// Optional controls how a missing or unreadable file is treated during
	// assembly: when true the file simply contributes no layer, when false
	// it aborts the refresh with a missing-file error.
	Optional bool `json:"optional"`
}
