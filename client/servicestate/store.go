package servicestate

import (
	"context"
	"errors"
	"sync"

	"detailing/models"

	"go.uber.org/zap"
)

// Fetcher loads the catalog. It is satisfied by *client.Client.
type Fetcher interface {
	GetServices(ctx context.Context) ([]models.Service, error)
}

// ErrNoFetcher is returned by Load and Refresh on a store built without a Fetcher.
var ErrNoFetcher = errors.New("servicestate: no fetcher configured")

// Store serializes dispatches onto a State.
type Store struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu    sync.RWMutex
	state State

	loadMu sync.Mutex
	loaded bool
}

// NewStore creates an empty store. fetcher may be nil when only Dispatch is used.
func NewStore(fetcher Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fetcher: fetcher, logger: logger}
}

// Dispatch applies a to the current state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Services: append([]models.Service{}, s.state.Services...), Loaded: s.state.Loaded}
}

// Services returns a copy of the current list.
func (s *Store) Services() []models.Service {
	return s.State().Services
}

// Load fetches the catalog until one fetch succeeds. Later calls return nil
// without fetching; use Refresh to re-fetch.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.loaded {
		return nil
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Refresh fetches the catalog and replaces the list.
func (s *Store) Refresh(ctx context.Context) error {
	if s.fetcher == nil {
		return ErrNoFetcher
	}
	services, err := s.fetcher.GetServices(ctx)
	if err != nil {
		s.logger.Error("servicestate: error fetching services", zap.Error(err))
		return err
	}
	s.Dispatch(Set(services))
	return nil
}
