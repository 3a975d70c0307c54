// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package stream

import "context"

// EmptyMode controls what CombineLatest does when given zero inputs.
type EmptyMode int

const (
	// EmptyComplete emits a single empty slice and then closes the output.
	// This is the default: a pipeline over zero files still produces one
	// (empty) snapshot so downstream consumers run exactly once.
	EmptyComplete EmptyMode = iota

	// EmptyIndefinite never emits and keeps the output open until the
	// context is cancelled.
	EmptyIndefinite
)

// indexed carries one input's update tagged with its slot index.
type indexed[T any] struct {
	slot   int
	value  T
	closed bool
}

// CombineLatest merges the inputs into a channel of index-aligned slices:
// slot i of every emitted slice holds the most recent value received from
// inputs[i]. Nothing is emitted until every input has produced at least one
// value; after that, every update on any input immediately re-emits the full
// slice. Each emitted slice is a fresh copy, safe to retain.
//
// The output closes when any single input closes, or when ctx is cancelled.
// Either way every internal goroutine is released; inputs still open after
// termination are simply abandoned.
func CombineLatest[T any](ctx context.Context, inputs []<-chan T, mode EmptyMode) <-chan []T {
	out := make(chan []T)

	if len(inputs) == 0 {
		go func() {
			defer close(out)
			if mode == EmptyIndefinite {
				<-ctx.Done()
				return
			}
			select {
			case out <- []T{}:
			case <-ctx.Done():
			}
		}()
		return out
	}

	updates := make(chan indexed[T])
	done := make(chan struct{})
	for i, in := range inputs {
		go forward(ctx, done, i, in, updates)
	}

	go func() {
		defer close(out)
		defer close(done)

		latest := make([]T, len(inputs))
		seen := make([]bool, len(inputs))
		remaining := len(inputs)

		for {
			select {
			case <-ctx.Done():
				return
			case u := <-updates:
				if u.closed {
					return
				}
				latest[u.slot] = u.value
				if !seen[u.slot] {
					seen[u.slot] = true
					remaining--
				}
				if remaining > 0 {
					continue
				}

				snapshot := make([]T, len(latest))
				copy(snapshot, latest)
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// forward pumps one input channel into the shared updates channel, tagging
// every value with the input's slot index. A closed input is reported once
// via the closed marker. The done channel releases sibling forwarders once
// the combine loop has exited, so they never outlive the sequence.
func forward[T any](ctx context.Context, done <-chan struct{}, slot int, in <-chan T, updates chan<- indexed[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case v, ok := <-in:
			if !ok {
				select {
				case updates <- indexed[T]{slot: slot, closed: true}:
				case <-ctx.Done():
				case <-done:
				}
				return
			}
			select {
			case updates <- indexed[T]{slot: slot, value: v}:
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}
}
