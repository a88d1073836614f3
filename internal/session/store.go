package session

import (
	"context"
	"errors"
	"sync"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
	PhaseTornDown
)

// Backend is the slice of the API client the store depends on.
type Backend interface {
	GetProfile(ctx context.Context) (models.User, error)
	GetEnergyBalance(ctx context.Context) (models.EnergyBalance, error)
}

// Snapshot is an immutable view of the session state handed to readers and
// subscribers.
type Snapshot struct {
	Phase  Phase
	User   models.User
	Energy models.EnergyBalance
}

// Store holds the authenticated user's shared state. It is passed
// explicitly to everything that reads or mutates gamification totals; there
// is no ambient global.
//
// Lifecycle: init → authenticated (token hydrated) → unauthenticated (401
// or logout) → teardown.
type Store struct {
	mu      sync.Mutex
	backend Backend
	phase   Phase
	user    models.User
	energy  models.EnergyBalance
	subs    map[int]func(Snapshot)
	nextSub int

	// refreshes counts authoritative profile refetches, observable by tests
	// asserting the one-refresh-per-mutation contract.
	refreshes int
}

// NewStore creates a session store in the init phase.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		phase:   PhaseInit,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Hydrate moves the store out of init. With a token present it becomes
// authenticated and loads the profile; without one it is unauthenticated.
func (s *Store) Hydrate(ctx context.Context, token string) error {
	s.mu.Lock()
	if token == "" {
		s.phase = PhaseUnauthenticated
		s.mu.Unlock()
		s.notify()
		return nil
	}
	s.phase = PhaseAuthenticated
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Current returns a snapshot of the session state.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Phase: s.phase, User: s.user, Energy: s.energy}
}

// Subscribe registers fn to run after every state change. The returned
// cancel func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// ApplyMutation propagates a status-mutating response into shared state.
// Totals present on the response are merged immediately (latency hide);
// the authoritative profile refetch runs unconditionally afterwards so
// derived fields such as streak stay correct. Callers invoke this exactly
// once per status mutation.
func (s *Store) ApplyMutation(ctx context.Context, delta models.GamificationDelta) error {
	if !delta.Empty() {
		s.mu.Lock()
		if delta.UserTotalPoints != nil {
			s.user.TotalPoints = *delta.UserTotalPoints
		}
		if delta.UserLevel != nil {
			s.user.Level = *delta.UserLevel
		}
		s.mu.Unlock()
		s.notify()
	}
	return s.Refresh(ctx)
}

// Refresh performs the authoritative profile refetch. The energy balance
// follows as a derived effect of the user state changing; mutation handlers
// never call it directly.
func (s *Store) Refresh(ctx context.Context) error {
	user, err := s.backend.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.SetUnauthenticated()
		}
		return err
	}

	s.mu.Lock()
	s.user = user
	s.refreshes++
	s.mu.Unlock()
	s.notify()

	energy, err := s.backend.GetEnergyBalance(ctx)
	if err != nil {
		// Energy is a display aggregate; a failed fetch keeps the stale
		// value rather than failing the refresh.
		logger.Warn("energy balance refetch failed", "error", err)
		return nil
	}
	s.mu.Lock()
	s.energy = energy
	s.mu.Unlock()
	s.notify()
	return nil
}

// Refreshes reports how many authoritative profile refetches have run.
func (s *Store) Refreshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

// SetUnauthenticated transitions to the unauthenticated state, e.g. after a
// 401 or an explicit logout.
func (s *Store) SetUnauthenticated() {
	s.mu.Lock()
	s.phase = PhaseUnauthenticated
	s.user = models.User{}
	s.energy = models.EnergyBalance{}
	s.mu.Unlock()
	s.notify()
}

// Teardown ends the session lifecycle. Further notifications stop.
func (s *Store) Teardown() {
	s.mu.Lock()
	s.phase = PhaseTornDown
	s.subs = make(map[int]func(Snapshot))
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	if s.phase == PhaseTornDown {
		s.mu.Unlock()
		return
	}
	snap := Snapshot{Phase: s.phase, User: s.user, Energy: s.energy}
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
