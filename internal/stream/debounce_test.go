// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func intEq(a, b int) bool { return a == b }

// TestDebounce_CollapsesBurst verifies that several updates inside one quiet
// window surface downstream as only the final value.
func TestDebounce_CollapsesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan int)
	out := Debounce(ctx, in, 100*time.Millisecond, intEq)

	in <- 1
	in <- 2
	in <- 3

	assert.Equal(t, 3, recv(t, out))
	expectSilent(t, out, 150*time.Millisecond)
}

// TestDebounce_SuppressesConsecutiveEquals verifies that a value equal to
// the last emitted one never reaches the output.
func TestDebounce_SuppressesConsecutiveEquals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan int)
	out := Debounce(ctx, in, 20*time.Millisecond, intEq)

	in <- 7
	assert.Equal(t, 7, recv(t, out))

	// Same value again after the window: suppressed.
	in <- 7
	expectSilent(t, out, 100*time.Millisecond)

	// A different value still goes through.
	in <- 8
	assert.Equal(t, 8, recv(t, out))
}

// TestDebounce_SeparatedValuesAllPass verifies that values spaced wider than
// the quiet window each produce an emission.
func TestDebounce_SeparatedValuesAllPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan int)
	out := Debounce(ctx, in, 10*time.Millisecond, intEq)

	for i := 1; i <= 3; i++ {
		in <- i
		assert.Equal(t, i, recv(t, out))
	}
}

// TestDebounce_FlushesPendingOnClose verifies that closing the input flushes
// the pending value before the output closes.
func TestDebounce_FlushesPendingOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan int)
	out := Debounce(ctx, in, time.Hour, intEq)

	in <- 42
	close(in)

	assert.Equal(t, 42, recv(t, out))
	recvClosed(t, out)
}

// TestDebounce_CancelClosesWithoutFlush verifies that cancellation ends the
// output without emitting the pending value.
func TestDebounce_CancelClosesWithoutFlush(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan int)
	out := Debounce(ctx, in, time.Hour, intEq)

	in <- 1
	cancel()

	recvClosed(t, out)
}

// TestDebounce_PropertyBased_NoConsecutiveDuplicates verifies with random
// input sequences that the output never carries two consecutive equal
// values and that every output value appeared in the input.
func TestDebounce_PropertyBased_NoConsecutiveDuplicates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 20).Draw(t, "values")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		in := make(chan int)
		// Zero-ish window: every value's timer fires before the next send.
		out := Debounce(ctx, in, time.Nanosecond, intEq)

		done := make(chan []int)
		go func() {
			var got []int
			for v := range out {
				got = append(got, v)
			}
			done <- got
		}()

		sent := map[int]bool{}
		for _, v := range values {
			in <- v
			sent[v] = true
		}
		close(in)

		got := <-done
		for i := 1; i < len(got); i++ {
			assert.NotEqual(t, got[i-1], got[i], "consecutive duplicate at %d", i)
		}
		for _, v := range got {
			assert.True(t, sent[v], "output value %d never appeared in input", v)
		}
	})
}
