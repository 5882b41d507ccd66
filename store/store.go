// Package store owns the canonical application state for the current
// session: survey points, activities, personnel and user accounts. Local
// mutations commit synchronously; persistence to the master backend is
// best-effort and never rolls a field capture back. User-account writes are
// the one exception: they are persistence-first and fail loudly.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/models"
)

// Store is the session state container. It is owned by the composition root
// and passed by handle; there are no ambient globals.
type Store struct {
	mu sync.Mutex
	gw *gateway.Gateway

	points     []models.SurveyPoint
	activities []models.Activity
	personnel  []models.Personnel
	users      []models.UserAccount
	session    *models.Session

	pending []PendingSync

	onChange func()
	syncWG   sync.WaitGroup

	// injectable for tests
	now func() time.Time
}

// New creates an empty store syncing through gw
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw, now: time.Now}
}

// OnChange registers a single hook invoked after every local mutation, used
// by the live hub to push overlay updates. The hook runs outside the lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetSession records the authenticated subject for this session
func (s *Store) SetSession(session models.Session) {
	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
}

// Session returns the current authenticated subject, if any
func (s *Store) Session() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

// ClearSession drops the authenticated subject
func (s *Store) ClearSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// WaitSync blocks until all in-flight best-effort persistence attempts have
// settled. Called on graceful shutdown and by tests.
func (s *Store) WaitSync() {
	s.syncWG.Wait()
}

// persistAsync schedules a detached fire-and-forget persistence attempt. A
// failure is logged and queued for the background flusher; local state stays
// authoritative either way.
func (s *Store) persistAsync(endpoint string, payload interface{}) {
	if !s.gw.Enabled() {
		zap.S().Debugw("sync disabled, keeping record local", "endpoint", endpoint)
		return
	}
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		if err := s.gw.Send(context.Background(), endpoint, payload); err != nil {
			zap.S().Warnw("best-effort sync failed, record kept locally",
				"endpoint", endpoint,
				"error", err,
			)
			s.enqueuePending(endpoint, payload)
		}
	}()
}
