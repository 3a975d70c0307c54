// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWait = 2 * time.Second

// ── helpers ───────────────────────────────────────────────────────────────────

// recv waits for one value with a test-wide timeout.
func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed while a value was expected")
		return v
	case <-time.After(testWait):
		t.Fatal("timed out waiting for a value")
		panic("unreachable")
	}
}

// recvClosed waits for the channel to close without yielding further values.
func recvClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.False(t, ok, "expected closed channel, got value %v", v)
	case <-time.After(testWait):
		t.Fatal("timed out waiting for the channel to close")
	}
}

// expectSilent asserts that no value arrives within d.
func expectSilent[T any](t *testing.T, ch <-chan T, d time.Duration) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("expected no value, got %v", v)
		}
		t.Fatal("expected open channel, got close")
	case <-time.After(d):
	}
}

// ── CombineLatest ─────────────────────────────────────────────────────────────

// TestCombineLatest_WaitsForAllInputs verifies that nothing is emitted until
// every input has produced at least one value.
func TestCombineLatest_WaitsForAllInputs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	b := make(chan int)
	out := CombineLatest(ctx, []<-chan int{a, b}, EmptyComplete)

	a <- 1
	expectSilent(t, out, 50*time.Millisecond)

	b <- 10
	assert.Equal(t, []int{1, 10}, recv(t, out))
}

// TestCombineLatest_ReemitsOnEveryUpdate verifies that once primed, every
// single-input update re-emits the full slice with that slot replaced.
func TestCombineLatest_ReemitsOnEveryUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan string)
	b := make(chan string)
	out := CombineLatest(ctx, []<-chan string{a, b}, EmptyComplete)

	a <- "a1"
	b <- "b1"
	assert.Equal(t, []string{"a1", "b1"}, recv(t, out))

	a <- "a2"
	assert.Equal(t, []string{"a2", "b1"}, recv(t, out))

	b <- "b2"
	assert.Equal(t, []string{"a2", "b2"}, recv(t, out))
}

// TestCombineLatest_EmittedSlicesAreIndependent verifies that a retained
// emission is not mutated by later updates.
func TestCombineLatest_EmittedSlicesAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	out := CombineLatest(ctx, []<-chan int{a}, EmptyComplete)

	a <- 1
	first := recv(t, out)

	a <- 2
	second := recv(t, out)

	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []int{2}, second)
}

// TestCombineLatest_TerminatesWhenAnyInputCloses verifies that a single
// closing input ends the combined sequence.
func TestCombineLatest_TerminatesWhenAnyInputCloses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	b := make(chan int)
	out := CombineLatest(ctx, []<-chan int{a, b}, EmptyComplete)

	a <- 1
	b <- 2
	recv(t, out)

	close(a)
	recvClosed(t, out)
}

// TestCombineLatest_ReleasesSiblingsOnTermination verifies that once one
// closing input has ended the sequence, the forwarders of the remaining
// inputs stop consuming even though the context stays live.
func TestCombineLatest_ReleasesSiblingsOnTermination(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	b := make(chan int)
	out := CombineLatest(ctx, []<-chan int{a, b}, EmptyComplete)

	a <- 1
	b <- 2
	recv(t, out)

	close(a)
	recvClosed(t, out)

	// Give the sibling forwarder a moment to observe termination, then
	// verify the still-open input is abandoned: nothing receives from it.
	time.Sleep(20 * time.Millisecond)
	select {
	case b <- 99:
		t.Fatal("expected the open input to be abandoned after termination")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestCombineLatest_Cancel verifies that cancelling the context closes the
// output even while inputs stay silent.
func TestCombineLatest_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	a := make(chan int)
	out := CombineLatest(ctx, []<-chan int{a}, EmptyComplete)

	cancel()
	recvClosed(t, out)
}

// TestCombineLatest_EmptyComplete verifies the zero-input default mode:
// exactly one empty slice, then termination.
func TestCombineLatest_EmptyComplete(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := CombineLatest[int](ctx, nil, EmptyComplete)

	assert.Empty(t, recv(t, out))
	recvClosed(t, out)
}

// TestCombineLatest_EmptyIndefinite verifies the zero-input indefinite mode:
// no emission and no termination until cancellation.
func TestCombineLatest_EmptyIndefinite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	out := CombineLatest[int](ctx, nil, EmptyIndefinite)

	expectSilent(t, out, 100*time.Millisecond)

	cancel()
	recvClosed(t, out)
}
