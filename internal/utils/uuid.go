// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small shared helpers with no domain logic.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces unique identifiers for subscription registrations.
// Generated IDs are UUIDv7 (time-ordered) with a UUIDv4 fallback.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
