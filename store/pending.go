package store

import (
	"context"

	"go.uber.org/zap"
)

// maxPending bounds the retry queue; beyond it the oldest entries are
// dropped with a warning rather than growing without limit on a long
// offline stretch.
const maxPending = 512

// PendingSync is one failed best-effort persistence attempt awaiting a
// background retry
type PendingSync struct {
	Endpoint string
	Payload  interface{}
	Attempts int
}

func (s *Store) enqueuePending(endpoint string, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) >= maxPending {
		zap.S().Warnw("pending sync queue full, dropping oldest entry",
			"endpoint", s.pending[0].Endpoint,
		)
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, PendingSync{Endpoint: endpoint, Payload: payload, Attempts: 1})
}

// PendingCount reports how many failed syncs await a retry
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FlushPending retries every queued sync once. Successes leave the queue;
// failures are re-queued with their attempt count bumped. Returns how many
// flushed and how many remain.
func (s *Store) FlushPending(ctx context.Context) (flushed, remaining int) {
	if !s.gw.Enabled() {
		return 0, s.PendingCount()
	}

	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	var requeue []PendingSync
	for _, p := range batch {
		if ctx.Err() != nil {
			requeue = append(requeue, p)
			continue
		}
		if err := s.gw.Send(ctx, p.Endpoint, p.Payload); err != nil {
			p.Attempts++
			requeue = append(requeue, p)
			continue
		}
		flushed++
	}

	s.mu.Lock()
	s.pending = append(requeue, s.pending...)
	remaining = len(s.pending)
	s.mu.Unlock()

	if flushed > 0 || remaining > 0 {
		zap.S().Infow("pending sync flush finished",
			"flushed", flushed,
			"remaining", remaining,
		)
	}
	return flushed, remaining
}
