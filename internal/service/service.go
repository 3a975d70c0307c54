// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/knadh/koanf/v2"

	"github.com/MKhiriev/go-live-config/internal/assembler"
	"github.com/MKhiriev/go-live-config/internal/logger"
	"github.com/MKhiriev/go-live-config/internal/stream"
	"github.com/MKhiriev/go-live-config/internal/utils"
	"github.com/MKhiriev/go-live-config/internal/watcher"
	"github.com/MKhiriev/go-live-config/models"
)

// DefaultAggregationWindow is the service-level debounce applied to combined
// snapshots before assembly, collapsing near-simultaneous changes across
// several files into one rebuild.
const DefaultAggregationWindow = 100 * time.Millisecond

// commandBuffer bounds how many subscribe/cancel requests may queue before
// the run loop starts consuming them.
const commandBuffer = 64

// Options configures a [Service].
type Options struct {
	// Assembler selects the optional environment and CLI-flag layers.
	Assembler assembler.Options

	// AggregationWindow is the service-level debounce; zero means
	// [DefaultAggregationWindow].
	AggregationWindow time.Duration
}

// command is one registry mutation crossing into the actor goroutine.
// apply runs inside the run loop; abort runs instead when the service has
// already finished and must be idempotent.
type command struct {
	apply func()
	abort func()
}

// registration is one subscriber as the actor sees it: an opaque deliverer
// and terminator closing over the subscriber's typed state.
type registration struct {
	id        string
	deliver   func(lookup *koanf.Koanf)
	terminate func()
}

// Service is the configuration fan-out actor. Construct it with [New],
// register subscribers with [Subscribe], and drive it with [Service.Run].
type Service struct {
	specs  []models.FileSpec
	multi  *watcher.MultiWatcher
	asm    *assembler.Assembler
	window time.Duration
	logger *logger.Logger
	ids    *utils.UUIDGenerator

	commands chan command
	done     chan struct{}
	started  atomic.Bool

	// Owned exclusively by the Run goroutine.
	registry map[string]*registration
	lastGood *koanf.Koanf
}

// New constructs a Service watching the given files. The spec slice is
// captured as the fixed slot order for the service's whole lifetime.
func New(specs []models.FileSpec, files *watcher.FileWatcher, opts Options, log *logger.Logger) *Service {
	window := opts.AggregationWindow
	if window == 0 {
		window = DefaultAggregationWindow
	}

	return &Service{
		specs:    specs,
		multi:    watcher.NewMultiWatcher(files),
		asm:      assembler.New(opts.Assembler),
		window:   window,
		logger:   log,
		ids:      utils.NewUUIDGenerator(),
		commands: make(chan command, commandBuffer),
		done:     make(chan struct{}),
		registry: make(map[string]*registration),
	}
}

// Run executes the service's single run loop until ctx is cancelled or the
// upstream snapshot sequence terminates. It must be called exactly once; a
// second call returns [ErrAlreadyRun] without touching the pipeline.
//
// On every complete, post-debounce, changed snapshot the service assembles a
// fresh lookup; assembly failures are logged and discard only that refresh,
// leaving the previous good lookup as the subscribers' last delivered state.
// On exit every subscriber is terminated and late subscribers receive an
// already-terminated subscription.
func (s *Service) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}
	defer s.finish()

	snapshots := s.multi.Snapshots(ctx, s.specs)
	refreshes := stream.Debounce(ctx, snapshots, s.window, snapshotsEqual)

	s.logger.Info().Int("files", len(s.specs)).Msg("configuration service started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("configuration service stopping")
			return nil

		case cmd := <-s.commands:
			cmd.apply()

		case snapshot, ok := <-refreshes:
			if !ok {
				s.logger.Info().Msg("snapshot stream ended, configuration service stopping")
				return nil
			}
			s.refresh(snapshot)
		}
	}
}

// refresh assembles one snapshot and fans the result out. Runs only inside
// the actor goroutine.
func (s *Service) refresh(snapshot models.FilesSnapshot) {
	lookup, err := s.asm.Assemble(snapshot)
	if err != nil {
		s.logger.Warn().Err(err).Msg("configuration refresh discarded")
		return
	}

	s.lastGood = lookup
	s.logger.Info().
		Int("files", snapshot.Len()).
		Int("subscribers", len(s.registry)).
		Msg("configuration refreshed")

	for _, reg := range s.registry {
		reg.deliver(lookup)
	}
}

// finish terminates every subscriber and flushes commands that raced with
// shutdown. After finish, enqueue reports the service as finished.
func (s *Service) finish() {
	close(s.done)

	for _, reg := range s.registry {
		reg.terminate()
	}
	s.registry = nil

	for {
		select {
		case cmd := <-s.commands:
			cmd.abort()
		default:
			return
		}
	}
}

// enqueue hands a command to the actor. It returns false when the service
// has finished; in that case (and when the command raced with shutdown and
// may never be applied) the command's abort has been or will be invoked, so
// abort must be idempotent.
func (s *Service) enqueue(cmd command) bool {
	select {
	case s.commands <- cmd:
	case <-s.done:
		cmd.abort()
		return false
	}

	select {
	case <-s.done:
		// Shutdown may have drained the queue before this send landed.
		cmd.abort()
		return false
	default:
		return true
	}
}

// snapshotsEqual compares two snapshots slot-by-slot under FileState
// equality. Used by the aggregation debounce to drop no-op rebuilds.
func snapshotsEqual(a, b models.FilesSnapshot) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.States {
		if !a.States[i].Equal(b.States[i]) {
			return false
		}
	}
	return true
}
