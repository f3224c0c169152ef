// internal/notifications/service_test.go
package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workersglobe/internal/api"
	"workersglobe/internal/common/config"
	"workersglobe/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 2000}, logger.NewTestLogger(t))
	return NewService(client, logger.NewTestLogger(t), 10*time.Millisecond), server
}

const feedJSON = `[
	{"id": "n1", "type": "new-application", "title": "New application", "read": false},
	{"id": "n2", "type": "job-selected", "title": "You were selected", "read": false},
	{"id": "n3", "type": "job-completed", "title": "Job completed", "read": true}
]`

// ==========================
// Refresh Tests
// ==========================

func TestService_Refresh_ReplacesFeed(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(feedJSON))
	}))

	require.NoError(t, svc.Refresh(context.Background()))

	feed := svc.Snapshot()
	require.Len(t, feed, 3)
	assert.Equal(t, "n1", feed[0].ID)
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestService_Refresh_KeepsSnapshotOnError(t *testing.T) {
	var fail atomic.Bool
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.Len(t, svc.Snapshot(), 3)

	fail.Store(true)
	require.Error(t, svc.Refresh(ctx))

	// The previous snapshot survives the failed refresh.
	assert.Len(t, svc.Snapshot(), 3)
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestService_Snapshot_IsACopy(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	}))
	require.NoError(t, svc.Refresh(context.Background()))

	feed := svc.Snapshot()
	feed[0].Read = true
	assert.False(t, svc.Snapshot()[0].Read)
}

// ==========================
// Read Transition Tests
// ==========================

func TestService_MarkAsRead(t *testing.T) {
	var markCalls atomic.Int32
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			markCalls.Add(1)
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.Equal(t, 2, svc.UnreadCount())

	require.NoError(t, svc.MarkAsRead(ctx, "n1"))
	assert.Equal(t, 1, svc.UnreadCount())
	assert.True(t, svc.Snapshot()[0].Read)

	// Marking the same notification again does not change the count.
	require.NoError(t, svc.MarkAsRead(ctx, "n1"))
	assert.Equal(t, 1, svc.UnreadCount())
	assert.Equal(t, int32(2), markCalls.Load())
}

func TestService_MarkAsRead_UnknownIDLeavesCount(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.NoError(t, svc.MarkAsRead(ctx, "missing"))
	assert.Equal(t, 2, svc.UnreadCount())
}

func TestService_MarkAllAsRead(t *testing.T) {
	var gotPath string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			gotPath = r.URL.Path
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.NoError(t, svc.MarkAllAsRead(ctx))

	assert.Equal(t, "/notifications/read-all", gotPath)
	assert.Equal(t, 0, svc.UnreadCount())
	for _, n := range svc.Snapshot() {
		assert.True(t, n.Read)
	}
}

func TestService_MarkAsRead_ServerErrorLeavesState(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.Error(t, svc.MarkAsRead(ctx, "n1"))

	assert.False(t, svc.Snapshot()[0].Read)
	assert.Equal(t, 2, svc.UnreadCount())
}

// ==========================
// Scheduling Tests
// ==========================

func TestService_ScheduleRefresh(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Write([]byte(feedJSON))
	}))

	svc.ScheduleRefresh(context.Background())

	assert.Eventually(t, func() bool {
		return listCalls.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, svc.Snapshot(), 3)
}

func TestService_ScheduleRefresh_SkipsCancelledContext(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Write([]byte(feedJSON))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.ScheduleRefresh(ctx)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), listCalls.Load())
}

func TestService_Delete(t *testing.T) {
	var gotMethod, gotPath string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(feedJSON))
	}))

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.Equal(t, 2, svc.UnreadCount())

	require.NoError(t, svc.Delete(ctx, "n1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/notifications/n1", gotPath)

	feed := svc.Snapshot()
	require.Len(t, feed, 2)
	assert.Equal(t, "n2", feed[0].ID)
	assert.Equal(t, 1, svc.UnreadCount())
}

func TestService_Clear(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	}))

	require.NoError(t, svc.Refresh(context.Background()))
	svc.Clear()

	assert.Empty(t, svc.Snapshot())
	assert.Equal(t, 0, svc.UnreadCount())
}
