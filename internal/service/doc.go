// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the configuration fan-out actor.
//
// A [Service] drives the watching pipeline (per-file watchers → per-file
// debounce → combine-latest → aggregation debounce → assembly) and delivers
// every successfully assembled configuration lookup to any number of typed
// subscribers registered via [Subscribe]. Each subscriber supplies its own
// decode function and receives only values that differ from the last value
// it was delivered. A subscriber joining after a valid configuration already
// exists receives that configuration immediately.
//
// All mutable service state — the subscriber registry and the last good
// lookup — is owned by the single goroutine running [Service.Run] and is
// reached only through an internal command channel, never through shared
// locks. When the run loop exits, every subscriber's channel is closed and
// later subscribers receive an already-closed channel.
package service
