// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"reflect"
	"sync"

	"github.com/knadh/koanf/v2"
)

// DecodeFunc turns an assembled configuration lookup into one subscriber's
// target type. Each subscriber supplies its own decoder at subscribe time;
// a typical implementation calls lookup.Unmarshal into a struct.
type DecodeFunc[T any] func(lookup *koanf.Koanf) (T, error)

// Subscription is one subscriber's handle on the configuration stream.
type Subscription[T any] struct {
	updates   chan T
	closeOnce sync.Once
	cancel    func()
}

// Updates returns the subscriber's value channel. The channel never carries
// two consecutive equal values; it is closed when the subscription is
// cancelled or the service finishes. If the consumer is slow, queued values
// are replaced by newer ones so the channel always yields the latest
// configuration.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Cancel abandons the subscription: the registration is destroyed and the
// updates channel is closed. Safe to call more than once, and after the
// service has finished.
func (s *Subscription[T]) Cancel() {
	s.cancel()
}

// terminate closes the updates channel exactly once.
func (s *Subscription[T]) terminate() {
	s.closeOnce.Do(func() {
		close(s.updates)
	})
}

// push enqueues v with latest-wins semantics: a value the consumer has not
// collected yet is replaced rather than waited on, so a slow subscriber can
// never stall the actor.
func (s *Subscription[T]) push(v T) {
	for {
		select {
		case s.updates <- v:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

// Subscribe registers a new typed subscriber with the service. It may be
// called at any time:
//   - before the run loop starts, the registration is queued;
//   - while running, if a valid configuration already exists the subscriber
//     receives its decoded value immediately, without waiting for the next
//     file change;
//   - after the service has finished, the returned subscription's channel is
//     already closed and carries no values.
//
// A decode failure is isolated to this subscriber and this refresh: it is
// logged and skipped, other subscribers and the service are unaffected.
// Deliveries are deduplicated per subscriber under reflect.DeepEqual of the
// decoded value.
func Subscribe[T any](s *Service, decode DecodeFunc[T]) *Subscription[T] {
	sub := &Subscription[T]{updates: make(chan T, 1)}

	reg := &registration{id: s.ids.Generate()}

	var last T
	var hasLast bool
	reg.deliver = func(lookup *koanf.Koanf) {
		value, err := decode(lookup)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("subscription_id", reg.id).
				Msg("subscriber decode failed, skipping delivery")
			return
		}
		if hasLast && reflect.DeepEqual(last, value) {
			return
		}
		last, hasLast = value, true
		sub.push(value)
	}
	reg.terminate = sub.terminate

	sub.cancel = func() {
		s.enqueue(command{
			apply: func() {
				if _, ok := s.registry[reg.id]; !ok {
					return
				}
				delete(s.registry, reg.id)
				reg.terminate()
			},
			abort: sub.terminate,
		})
	}

	s.enqueue(command{
		apply: func() {
			s.registry[reg.id] = reg
			if s.lastGood != nil {
				reg.deliver(s.lastGood)
			}
		},
		abort: sub.terminate,
	})

	return sub
}
