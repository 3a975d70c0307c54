// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package stream provides the generic channel combinators the configuration
// pipeline is built from.
//
// Two primitives are exposed:
//   - [CombineLatest] merges N independent input channels into a single
//     channel of "all latest values" slices.
//   - [Debounce] collapses bursts of updates on one channel into the final
//     value of the burst and suppresses consecutive equal values.
//
// Both primitives own the goroutines they spawn and stop them when the given
// context is cancelled; output channels are always closed on termination so
// downstream range loops end cleanly.
package stream
