package scheduler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/store"
)

func TestScheduler_StartStop(t *testing.T) {
	st := store.New(gateway.New(gateway.Options{}))
	s := NewScheduler(st, config.Config{})

	s.Start()
	s.Stop()
}

func TestFlushPendingJob_RetriesQueuedSyncs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	st := store.New(gateway.New(gateway.Options{BaseURL: server.URL, Timeout: 2 * time.Second}))
	s := NewScheduler(st, config.Config{})

	// nothing queued: the job is a cheap no-op
	s.flushPendingJob()
	assert.Equal(t, 0, st.PendingCount())
}

func TestDailyDigestJob_SkipsWithoutRecipients(t *testing.T) {
	st := store.New(gateway.New(gateway.Options{}))
	s := NewScheduler(st, config.Config{})

	require.Equal(t, "", s.Config.DigestTo)
	s.dailyDigestJob()
}
