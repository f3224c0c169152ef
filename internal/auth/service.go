// internal/auth/service.go

// Package auth owns the session lifecycle: OTP login, registration,
// logout, profile updates, and restoring a persisted session at startup.
// The Service is the only writer of session state; the API client reads
// the token through the TokenSource interface and everything else reads
// the user snapshot through CurrentUser.
package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"workersglobe/internal/api"
	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/common/validation"
	"workersglobe/internal/models"
	"workersglobe/internal/storage"
)

type Service struct {
	client *api.Client
	store  storage.Store
	logger logger.Logger

	mu      sync.RWMutex
	session *models.Session
}

func NewService(client *api.Client, store storage.Store, log logger.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Token implements api.TokenSource. Empty when logged out, so requests
// after a 401 carry no Authorization header until the next login.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.Valid() {
		return s.session.Token
	}
	return ""
}

// CurrentUser returns the session's user snapshot, or nil when logged out.
func (s *Service) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.Valid() {
		return s.session.User
	}
	return nil
}

func (s *Service) IsProvider() bool {
	u := s.CurrentUser()
	return u != nil && u.IsProvider()
}

func (s *Service) IsSeeker() bool {
	u := s.CurrentUser()
	return u != nil && u.IsSeeker()
}

// HandleUnauthorized is wired into the API client's 401 hook. Requests
// already in flight are not cancelled; they fail on their own when they
// resolve.
func (s *Service) HandleUnauthorized() {
	s.logger.Info("received 401, tearing down session", nil)
	s.Logout(context.Background())
}

// Restore loads the persisted session and revalidates the token with a
// profile fetch. An invalid or expired token clears the session silently.
// Callers block on this before serving anything, so there is never a
// moment where stale credentials are presented as a live session.
func (s *Service) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		if err != storage.ErrNotFound {
			return err
		}
		return nil
	}

	rawUser, err := s.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		if err != storage.ErrNotFound {
			return err
		}
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("persisted user snapshot is corrupt, clearing session", map[string]interface{}{"error": err.Error()})
		s.Logout(ctx)
		return nil
	}

	s.setSession(&models.Session{Token: token, User: &user, CreatedAt: time.Now().UTC()})

	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathProfile,
		Operation: "auth.whoami",
		Token:     token,
	})
	if err != nil {
		// The 401 hook has already cleared state for auth failures; clear
		// again unconditionally so any failure leaves a clean slate.
		s.logger.Info("persisted token failed revalidation", map[string]interface{}{"error": err.Error()})
		s.Logout(ctx)
		return nil
	}

	s.logger.Info("session restored", map[string]interface{}{"userId": user.ID, "userType": user.UserType})
	return nil
}

// Login requests an OTP for the given email. No local state changes; the
// session only exists after LoginWithOTP succeeds.
func (s *Service) Login(ctx context.Context, email string) error {
	err := s.client.Do(ctx, &api.Request{
		Method:    "POST",
		Path:      api.PathSendOTP,
		Operation: "auth.send_otp",
		Body:      map[string]string{"email": email},
	})
	if err != nil {
		if apierrors.IsCode(err, apierrors.ErrCodeNotFound) {
			return apierrors.NewUserNotRegisteredError(email)
		}
		return err
	}
	return nil
}

type verifyOTPResponse struct {
	AccessToken string `json:"access_token"`
}

// LoginWithOTP exchanges the one-time code for a bearer token, fetches the
// full profile, and persists the session. A rejected code returns
// (nil, nil): absence, not an error, matching how callers branch on it.
func (s *Service) LoginWithOTP(ctx context.Context, email, otp string) (*models.User, error) {
	var tokenResp verifyOTPResponse
	err := s.client.Do(ctx, &api.Request{
		Method:    "POST",
		Path:      api.PathVerifyOTP,
		Operation: "auth.verify_otp",
		Body:      map[string]string{"email": email, "otp": otp},
		Out:       &tokenResp,
	})
	if err != nil {
		if isRejectedCredential(err) {
			s.logger.Info("OTP verification rejected", map[string]interface{}{"email": email})
			return nil, nil
		}
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		return nil, nil
	}

	var user models.User
	err = s.client.Do(ctx, &api.Request{
		Method:    "GET",
		Path:      api.PathProfile,
		Operation: "auth.whoami",
		Token:     tokenResp.AccessToken,
		Out:       &user,
	})
	if err != nil {
		return nil, err
	}

	session := &models.Session{Token: tokenResp.AccessToken, User: &user, CreatedAt: time.Now().UTC()}
	s.setSession(session)
	s.persistSession(ctx, session)
	_ = s.store.Delete(ctx, storage.KeyPendingUserType)

	s.logger.Info("login successful", map[string]interface{}{"userId": user.ID, "userType": user.UserType})
	return &user, nil
}

// Register creates an account, then best-effort sends an OTP so the user
// can log in immediately. Registration success does not depend on the OTP
// send succeeding.
func (s *Service) Register(ctx context.Context, reg *models.Registration) (*models.User, error) {
	result, err := validation.ValidateRegistration(reg)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	if !result.Valid {
		return nil, apierrors.NewValidationError(result.FirstMessage())
	}

	var created models.User
	err = s.client.Do(ctx, &api.Request{
		Method:    "POST",
		Path:      api.PathRegister,
		Operation: "auth.register",
		Body:      reg,
		Out:       &created,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Login(ctx, reg.Email); err != nil {
		s.logger.Warn("post-registration OTP send failed", map[string]interface{}{
			"email": reg.Email,
			"error": err.Error(),
		})
	} else if err := s.store.Set(ctx, storage.KeyPendingUserType, string(reg.UserType)); err != nil {
		s.logger.Warn("could not persist pending user type", map[string]interface{}{"error": err.Error()})
	}

	return &created, nil
}

// PendingUserType returns the user type recorded between registration and
// the first OTP login, or empty when none is pending.
func (s *Service) PendingUserType(ctx context.Context) models.UserType {
	val, err := s.store.Get(ctx, storage.KeyPendingUserType)
	if err != nil {
		return ""
	}
	return models.UserType(val)
}

// Logout clears in-memory and persisted session state unconditionally. It
// has no failure mode: store errors are logged and swallowed.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeyToken, storage.KeyCurrentUser, storage.KeyPendingUserType); err != nil {
		s.logger.Warn("failed to clear persisted session", map[string]interface{}{"error": err.Error()})
	}
}

// UpdateProfile sends the editable fields and, on success, replaces both
// the in-memory and persisted user snapshots with the server's response.
func (s *Service) UpdateProfile(ctx context.Context, update *models.ProfileUpdate) (*models.User, error) {
	if !s.hasSession() {
		return nil, apierrors.NewNoSessionError()
	}

	var updated models.User
	err := s.client.Do(ctx, &api.Request{
		Method:    "PUT",
		Path:      api.PathProfile,
		Operation: "auth.update_profile",
		Body:      update,
		Out:       &updated,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.session != nil {
		s.session.User = &updated
	}
	session := s.session
	s.mu.Unlock()

	if session != nil {
		s.persistSession(ctx, session)
	}

	return &updated, nil
}

func (s *Service) hasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Valid()
}

func (s *Service) setSession(session *models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

func (s *Service) persistSession(ctx context.Context, session *models.Session) {
	if err := s.store.Set(ctx, storage.KeyToken, session.Token); err != nil {
		s.logger.Warn("failed to persist token", map[string]interface{}{"error": err.Error()})
	}
	raw, err := json.Marshal(session.User)
	if err != nil {
		s.logger.Warn("failed to encode user snapshot", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.store.Set(ctx, storage.KeyCurrentUser, string(raw)); err != nil {
		s.logger.Warn("failed to persist user snapshot", map[string]interface{}{"error": err.Error()})
	}
}

// isRejectedCredential covers the statuses the backend uses for a bad or
// expired OTP.
func isRejectedCredential(err error) bool {
	code := apierrors.CodeOf(err)
	return code == apierrors.ErrCodeValidationFailed ||
		code == apierrors.ErrCodeSessionExpired ||
		code == apierrors.ErrCodeNotFound
}
