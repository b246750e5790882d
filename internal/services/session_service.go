package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/repository"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrFavoritesSave = errors.New("failed to save favorites")
)

// FavoritesStore loads and saves the shared favorites set
type FavoritesStore interface {
	Load() (models.Favorites, error)
	Save(models.Favorites) error
}

// SessionService applies UI events to a SessionState.
// Every transition takes a state and returns the next one; the input state is never mutated.
// Transitions that change favorites persist them before returning, and on a
// failed save the previous state is returned with the error.
type SessionService struct {
	store FavoritesStore
}

// NewSessionService creates a new SessionService
func NewSessionService(store FavoritesStore) *SessionService {
	return &SessionService{store: store}
}

// NewSession starts a session with favorites loaded from disk.
// A corrupt favorites file falls back to an empty set and records a warning.
func (s *SessionService) NewSession(ctx context.Context) models.SessionState {
	favs, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, repository.ErrFavoritesCorrupt) {
			log.Errorf("Unexpected favorites load error: %v", err)
		}
		Warnf(ctx, models.WarnFavoritesCorrupt, "즐겨찾기 파일을 읽을 수 없어 빈 목록으로 시작합니다: %v", err)
		favs = models.NewFavorites()
	}
	return models.SessionState{Favorites: favs}
}

// SelectFavorite handles a click on a favorite in the sidebar
func (s *SessionService) SelectFavorite(state models.SessionState, name string) models.SessionState {
	next := copyState(state)
	next.SearchText = name
	next.ActiveCompany = name
	return next
}

// Search handles a submitted search
func (s *SessionService) Search(state models.SessionState, text string) models.SessionState {
	next := copyState(state)
	next.SearchText = text
	next.ActiveCompany = text
	return next
}

// RemoveFavorite drops name from the favorites and persists the set.
// The active company is left unchanged. Removing a name that is not a favorite is a no-op.
func (s *SessionService) RemoveFavorite(state models.SessionState, name string) (models.SessionState, error) {
	if !state.Favorites.Contains(name) {
		return state, nil
	}
	next := copyState(state)
	delete(next.Favorites, name)
	if err := s.save(next.Favorites); err != nil {
		return state, err
	}
	return next, nil
}

// ToggleFavorite adds text to the favorites, or removes it if already present,
// and persists the set. text also becomes the search box contents.
func (s *SessionService) ToggleFavorite(state models.SessionState, text string) (models.SessionState, error) {
	if text == "" {
		return state, ErrEmptyInput
	}
	next := copyState(state)
	next.SearchText = text
	if next.Favorites.Contains(text) {
		delete(next.Favorites, text)
	} else {
		next.Favorites[text] = struct{}{}
	}
	if err := s.save(next.Favorites); err != nil {
		return state, err
	}
	return next, nil
}

func (s *SessionService) save(favs models.Favorites) error {
	if err := s.store.Save(favs); err != nil {
		return fmt.Errorf("%w: %v", ErrFavoritesSave, err)
	}
	return nil
}

func copyState(state models.SessionState) models.SessionState {
	next := state
	if state.Favorites == nil {
		next.Favorites = models.NewFavorites()
	} else {
		next.Favorites = state.Favorites.Clone()
	}
	return next
}

// SessionRegistry keeps one SessionState per connected client.
// Events for one session are applied one at a time; different sessions run concurrently.
// Sessions idle for longer than the TTL are dropped.
type SessionRegistry struct {
	svc *SessionService
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionSlot
}

type sessionSlot struct {
	mu       sync.Mutex
	started  bool
	state    models.SessionState
	lastSeen time.Time
}

// NewSessionRegistry creates a new SessionRegistry
func NewSessionRegistry(svc *SessionService, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		svc:      svc,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*sessionSlot),
	}
}

// Service returns the SessionService the registry applies events with
func (r *SessionRegistry) Service() *SessionService {
	return r.svc
}

// Update applies fn to the session identified by id, starting the session first if needed.
// If fn fails the stored state is left as it was.
func (r *SessionRegistry) Update(ctx context.Context, id string, fn func(models.SessionState) (models.SessionState, error)) (models.SessionState, error) {
	slot := r.slot(id)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if !slot.started {
		slot.state = r.svc.NewSession(ctx)
		slot.started = true
	}
	next, err := fn(slot.state)
	if err != nil {
		return slot.state, err
	}
	slot.state = next
	return next, nil
}

// Get returns the current state of session id, starting it if needed
func (r *SessionRegistry) Get(ctx context.Context, id string) models.SessionState {
	state, _ := r.Update(ctx, id, func(s models.SessionState) (models.SessionState, error) {
		return s, nil
	})
	return state
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) slot(id string) *sessionSlot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, s := range r.sessions {
		if key != id && now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, key)
			log.Debugf("Evicted idle session %s", key)
		}
	}

	s, ok := r.sessions[id]
	if !ok {
		s = &sessionSlot{}
		r.sessions[id] = s
	}
	s.lastSeen = now
	return s
}
