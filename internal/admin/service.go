// internal/admin/service.go

// Package admin is the management client. Admin access is gated locally
// against configured credentials; on success a sentinel token is persisted
// and sent on admin requests, with the regular session token as fallback.
package admin

import (
	"context"
	"crypto/subtle"
	"net/url"

	"workersglobe/internal/api"
	"workersglobe/internal/common/config"
	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/models"
	"workersglobe/internal/storage"
)

// SentinelToken marks a locally authenticated admin. The backend's admin
// routes recognize it alongside regular bearer tokens.
const SentinelToken = "admin-authenticated"

// Stats is the aggregate view returned by the admin dashboard endpoint.
type Stats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalProviders     int `json:"totalProviders"`
	TotalSeekers       int `json:"totalSeekers"`
	TotalJobs          int `json:"totalJobs"`
	OpenJobs           int `json:"openJobs"`
	CompletedJobs      int `json:"completedJobs"`
	TotalApplications  int `json:"totalApplications"`
	TotalNotifications int `json:"totalNotifications"`
}

// NotificationStats summarizes the notification feed across all users.
type NotificationStats struct {
	Total  int            `json:"total"`
	Unread int            `json:"unread"`
	ByType map[string]int `json:"byType"`
}

type Service struct {
	client   *api.Client
	store    storage.Store
	logger   logger.Logger
	username string
	password string
}

func NewService(client *api.Client, store storage.Store, cfg config.AdminConfig, log logger.Logger) *Service {
	return &Service{
		client:   client,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "admin"}),
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Login checks the credentials against configuration and persists the
// sentinel token on success. No backend call is involved.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("admin login rejected", map[string]interface{}{"username": username})
		return false, nil
	}

	if err := s.store.Set(ctx, storage.KeyAdminToken, SentinelToken); err != nil {
		return false, err
	}
	s.logger.Info("admin login successful", nil)
	return true, nil
}

// IsAuthenticated reports whether the sentinel token is present.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	val, err := s.store.Get(ctx, storage.KeyAdminToken)
	return err == nil && val == SentinelToken
}

// Logout clears the sentinel token.
func (s *Service) Logout(ctx context.Context) {
	if err := s.store.Delete(ctx, storage.KeyAdminToken); err != nil {
		s.logger.Warn("failed to clear admin token", map[string]interface{}{"error": err.Error()})
	}
}

// token resolves the credential for admin requests: the sentinel when
// present, otherwise the regular session token via the client's source.
func (s *Service) token(ctx context.Context) string {
	val, err := s.store.Get(ctx, storage.KeyAdminToken)
	if err != nil {
		return ""
	}
	return val
}

func (s *Service) requireAuth(ctx context.Context) (string, error) {
	if !s.IsAuthenticated(ctx) {
		return "", apierrors.NewNoSessionError()
	}
	return s.token(ctx), nil
}

// GetStats fetches the dashboard aggregates.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	var stats Stats
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathAdminStats,
		Operation: "admin.stats",
		Token:     token,
		Out:       &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUsers lists all registered users, optionally filtered by user type.
func (s *Service) GetUsers(ctx context.Context, userType models.UserType) ([]models.User, error) {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if userType != "" {
		query.Set("userType", string(userType))
	}
	var users []models.User
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathAdminUsers,
		Operation: "admin.users",
		Query:     query,
		Token:     token,
		Out:       &users,
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, &api.Request{
		Method:    "DELETE",
		Path:      api.PathAdminUser(userID),
		Operation: "admin.delete_user",
		Token:     token,
	})
}

// GetJobs lists all jobs across providers.
func (s *Service) GetJobs(ctx context.Context) ([]models.Job, error) {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathAdminJobs,
		Operation: "admin.jobs",
		Token:     token,
		Out:       &jobs,
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteJob removes a job listing.
func (s *Service) DeleteJob(ctx context.Context, jobID string) error {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, &api.Request{
		Method:    "DELETE",
		Path:      api.PathAdminJob(jobID),
		Operation: "admin.delete_job",
		Token:     token,
	})
}

// GetNotifications lists notifications across all users.
func (s *Service) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathAdminNotifications,
		Operation: "admin.notifications",
		Token:     token,
		Out:       &notifications,
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetNotificationStats fetches aggregate notification counts.
func (s *Service) GetNotificationStats(ctx context.Context) (*NotificationStats, error) {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	var stats NotificationStats
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathAdminNotificationStats,
		Operation: "admin.notification_stats",
		Token:     token,
		Out:       &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteNotification removes one notification.
func (s *Service) DeleteNotification(ctx context.Context, notificationID string) error {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, &api.Request{
		Method:    "DELETE",
		Path:      api.PathAdminNotification(notificationID),
		Operation: "admin.delete_notification",
		Token:     token,
	})
}

// MarkAllNotificationsRead marks every notification in the system read.
func (s *Service) MarkAllNotificationsRead(ctx context.Context) error {
	token, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathAdminNotificationsRead,
		Operation: "admin.mark_all_read",
		Token:     token,
	})
}
