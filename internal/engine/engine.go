// Package engine is the request layer around the pure learning components.
// Every learner action runs under a per-learner lock and inside one store
// transaction: load state, compute, save state and events.
package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/adaptly/internal/apperr"
	"github.com/abhisek/adaptly/internal/clock"
	"github.com/abhisek/adaptly/internal/logging"
	"github.com/abhisek/adaptly/internal/session"
	"github.com/abhisek/adaptly/internal/store"
)

// Options configure a Service. Zero values select defaults.
type Options struct {
	Clock  clock.Clock
	Logger *logging.Logger

	// ExpectedResponseMs is used when an attempt carries no expected latency.
	ExpectedResponseMs int
	// DefaultTimeMinutes fills in a learner's time budget for presentation scoring.
	DefaultTimeMinutes int
	// MessageSeed seeds encouragement messages. Zero seeds from the clock.
	MessageSeed uint64
}

// Service runs learner actions against the store.
type Service struct {
	store *store.Store
	clock clock.Clock
	log   *logging.Logger
	opts  Options

	locks learnerLocks

	randMu sync.Mutex
	rand   *rand.Rand
}

// New creates a Service over st.
func New(st *store.Store, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.ExpectedResponseMs <= 0 {
		opts.ExpectedResponseMs = session.DefaultExpectedResponseMs
	}
	seed := opts.MessageSeed
	if seed == 0 {
		seed = uint64(opts.Clock.Now().UnixNano())
	}
	return &Service{
		store: st,
		clock: opts.Clock,
		log:   opts.Logger,
		opts:  opts,
		rand:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// learnerLocks hands out one mutex per learner id.
type learnerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *learnerLocks) lock(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// withLearner runs fn for learnerID under its lock and in one transaction.
// The learner row is created on first use.
func (s *Service) withLearner(ctx context.Context, learnerID string, fn func(r *store.Repo, now time.Time) error) error {
	if err := requireID("learner id", learnerID); err != nil {
		return err
	}
	unlock := s.locks.lock(learnerID)
	defer unlock()

	now := s.clock.Now()
	return s.store.WithTx(ctx, func(r *store.Repo) error {
		if err := ensureLearner(ctx, r, learnerID, now); err != nil {
			return err
		}
		return fn(r, now)
	})
}

func ensureLearner(ctx context.Context, r *store.Repo, learnerID string, now time.Time) error {
	l, err := r.Learner(ctx, learnerID)
	if err != nil {
		return err
	}
	if l != nil {
		return nil
	}
	return r.SaveLearner(ctx, &store.Learner{ID: learnerID, CreatedAt: now, UpdatedAt: now})
}

// messageRand returns the shared message rand locked for the caller.
func (s *Service) messageRand() (*rand.Rand, func()) {
	s.randMu.Lock()
	return s.rand, s.randMu.Unlock
}

func requireID(field, v string) error {
	if v == "" {
		return apperr.NewInvalidInput(field, v, "must not be empty")
	}
	return nil
}

func requireNonNegative(field string, v int) error {
	if v < 0 {
		return apperr.NewInvalidInput(field, v, "must not be negative")
	}
	return nil
}
