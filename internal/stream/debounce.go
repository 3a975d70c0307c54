// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package stream

import (
	"context"
	"time"
)

// Debounce collapses bursts on in: after a value arrives, emission waits for
// a quiet period of window; any value arriving in the meantime replaces the
// pending one and re-arms the timer, so a burst surfaces downstream as only
// its final value. On top of that, a pending value equal (per eq) to the last
// emitted value is suppressed entirely, so consecutive duplicates never reach
// the output. A file being deleted and immediately recreated, for example,
// produces several raw transitions that collapse into at most one.
//
// When in closes, the pending value (if any, and if not a duplicate) is
// flushed before the output closes. Cancelling ctx closes the output without
// flushing.
func Debounce[T any](ctx context.Context, in <-chan T, window time.Duration, eq func(a, b T) bool) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			pending    T
			hasPending bool
			last       T
			hasLast    bool
		)

		timer := time.NewTimer(window)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		emit := func() bool {
			if !hasPending {
				return true
			}
			if hasLast && eq(last, pending) {
				hasPending = false
				return true
			}
			select {
			case out <- pending:
				last, hasLast = pending, true
				hasPending = false
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case v, ok := <-in:
				if !ok {
					emit()
					return
				}
				pending, hasPending = v, true
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(window)

			case <-timer.C:
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
