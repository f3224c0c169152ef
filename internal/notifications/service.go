// internal/notifications/service.go

// Package notifications maintains the in-memory notification feed: a full
// snapshot refreshed from the backend, a derived unread count, and read
// transitions applied optimistically before the server confirms.
package notifications

import (
	"context"
	"sync"
	"time"

	"workersglobe/internal/api"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/common/metrics"
	"workersglobe/internal/models"
)

type Service struct {
	client       *api.Client
	logger       logger.Logger
	refreshDelay time.Duration

	mu            sync.RWMutex
	notifications []models.Notification
	unread        int
}

func NewService(client *api.Client, log logger.Logger, refreshDelay time.Duration) *Service {
	return &Service{
		client:       client,
		logger:       log.WithFields(map[string]interface{}{"component": "notifications"}),
		refreshDelay: refreshDelay,
	}
}

// Snapshot returns a copy of the current feed. Mutating the returned slice
// does not affect the service.
func (s *Service) Snapshot() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the tracked unread count.
func (s *Service) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Refresh replaces the feed with the server's current list and recomputes
// the unread count from it. On failure the previous snapshot stays in
// place so a transient error never blanks the feed.
func (s *Service) Refresh(ctx context.Context) error {
	var fetched []models.Notification
	err := s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathNotifications,
		Operation: "notifications.list",
		Out:       &fetched,
	})
	if err != nil {
		metrics.NotificationRefreshes.WithLabelValues("error").Inc()
		s.logger.Warn("notification refresh failed, keeping previous snapshot", map[string]interface{}{"error": err.Error()})
		return err
	}

	unread := models.CountUnread(fetched)

	s.mu.Lock()
	s.notifications = fetched
	s.unread = unread
	s.mu.Unlock()

	metrics.NotificationRefreshes.WithLabelValues("success").Inc()
	metrics.NotificationsUnread.Set(float64(unread))
	return nil
}

// ScheduleRefresh refreshes the feed after the configured delay. Mutations
// create notifications asynchronously on the backend, so an immediate
// fetch would race the write.
func (s *Service) ScheduleRefresh(ctx context.Context) {
	time.AfterFunc(s.refreshDelay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.Refresh(ctx); err != nil {
			s.logger.Debug("delayed refresh failed", map[string]interface{}{"error": err.Error()})
		}
	})
}

// MarkAsRead marks one notification read on the server and applies the
// transition locally. Calling it again for an already-read notification is
// a no-op for the unread count.
func (s *Service) MarkAsRead(ctx context.Context, notificationID string) error {
	err := s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathNotificationRead(notificationID),
		Operation: "notifications.mark_read",
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			if !s.notifications[i].Read {
				s.notifications[i].Read = true
				if s.unread > 0 {
					s.unread--
				}
			}
			break
		}
	}
	unread := s.unread
	s.mu.Unlock()

	metrics.NotificationsUnread.Set(float64(unread))
	return nil
}

// MarkAllAsRead marks every notification read on the server and zeroes the
// unread count locally.
func (s *Service) MarkAllAsRead(ctx context.Context) error {
	err := s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathNotificationsReadAll,
		Operation: "notifications.mark_all_read",
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unread = 0
	s.mu.Unlock()

	metrics.NotificationsUnread.Set(0)
	return nil
}

// Delete removes one notification on the server and drops it from the
// local feed, adjusting the unread count when it was unread.
func (s *Service) Delete(ctx context.Context, notificationID string) error {
	err := s.client.Do(ctx, &api.Request{
		Method:    "DELETE",
		Path:      api.PathNotifications + "/" + notificationID,
		Operation: "notifications.delete",
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			if !s.notifications[i].Read && s.unread > 0 {
				s.unread--
			}
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			break
		}
	}
	unread := s.unread
	s.mu.Unlock()

	metrics.NotificationsUnread.Set(float64(unread))
	return nil
}

// Clear drops the local feed, for use when the session ends.
func (s *Service) Clear() {
	s.mu.Lock()
	s.notifications = nil
	s.unread = 0
	s.mu.Unlock()
	metrics.NotificationsUnread.Set(0)
}
