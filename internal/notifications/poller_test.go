// internal/notifications/poller_test.go
package notifications

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"workersglobe/internal/common/logger"
)

func TestPoller_RefreshesWhileActive(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Write([]byte(feedJSON))
	}))

	poller := NewPoller(svc, logger.NewTestLogger(t), 20*time.Millisecond, func() bool { return true })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return listCalls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func TestPoller_SkipsWithoutSession(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Write([]byte(feedJSON))
	}))

	var active atomic.Bool
	poller := NewPoller(svc, logger.NewTestLogger(t), 10*time.Millisecond, active.Load)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), listCalls.Load())

	// Session appears; polling resumes on the next tick.
	active.Store(true)
	assert.Eventually(t, func() bool {
		return listCalls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}
