// internal/auth/service_test.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workersglobe/internal/api"
	"workersglobe/internal/common/config"
	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/models"
	"workersglobe/internal/storage"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeBackend struct {
	users       map[string]*models.User // email -> user
	validOTP    string
	issuedToken string
	otpSends    int
	registered  []models.Registration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[string]*models.User{
			"asha@example.com": {
				ID:       "u1",
				Name:     "Asha Kumari",
				Email:    "asha@example.com",
				UserType: models.UserTypeSeeker,
			},
		},
		validOTP:    "123456",
		issuedToken: "token-u1",
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/send-otp", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		if _, ok := b.users[in["email"]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "user not found"})
			return
		}
		b.otpSends++
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		if in["otp"] != b.validOTP {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid otp"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": b.issuedToken})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.issuedToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid token"})
			return
		}
		if r.Method == http.MethodPut {
			var update models.ProfileUpdate
			json.NewDecoder(r.Body).Decode(&update)
			user := *b.users["asha@example.com"]
			if update.WorkingCity != "" {
				user.WorkingCity = update.WorkingCity
			}
			json.NewEncoder(w).Encode(user)
			return
		}
		json.NewEncoder(w).Encode(b.users["asha@example.com"])
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		var reg models.Registration
		json.NewDecoder(r.Body).Decode(&reg)
		b.registered = append(b.registered, reg)
		created := &models.User{ID: "u2", Name: reg.Name, Email: reg.Email, UserType: reg.UserType}
		b.users[reg.Email] = created
		json.NewEncoder(w).Encode(created)
	})
	return mux
}

func newTestService(t *testing.T, backend *fakeBackend) (*Service, *storage.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 2000}, logger.NewTestLogger(t))
	store := storage.NewMemory()
	svc := NewService(client, store, logger.NewTestLogger(t))
	client.SetTokenSource(svc)
	client.SetUnauthorizedHandler(svc.HandleUnauthorized)
	return svc, store
}

func validRegistration() *models.Registration {
	return &models.Registration{
		Name:             "Ravi Sharma",
		Email:            "ravi@example.com",
		Phone:            "9876543210",
		UserType:         models.UserTypeProvider,
		Gender:           "male",
		Age:              30,
		PermanentAddress: "5 Station Road",
		WorkingCity:      "Nagpur",
		Pincode:          "440001",
		Bio:              "Runs a small workshop",
	}
}

// ==========================
// Login Tests
// ==========================

func TestService_Login_SendsOTP(t *testing.T) {
	backend := newFakeBackend()
	svc, _ := newTestService(t, backend)

	require.NoError(t, svc.Login(context.Background(), "asha@example.com"))
	assert.Equal(t, 1, backend.otpSends)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t, newFakeBackend())

	err := svc.Login(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeUserNotRegistered))
}

func TestService_LoginWithOTP_Success(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	user, err := svc.LoginWithOTP(ctx, "asha@example.com", "123456")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	// Session is live and persisted.
	assert.Equal(t, "token-u1", svc.Token())
	assert.True(t, svc.IsSeeker())

	token, err := store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-u1", token)

	rawUser, err := store.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &persisted))
	assert.Equal(t, "u1", persisted.ID)
}

func TestService_LoginWithOTP_RejectedCode(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	user, err := svc.LoginWithOTP(ctx, "asha@example.com", "000000")
	require.NoError(t, err)
	assert.Nil(t, user)

	// No session state was created.
	assert.Empty(t, svc.Token())
	assert.Nil(t, svc.CurrentUser())
	_, getErr := store.Get(ctx, storage.KeyToken)
	assert.Equal(t, storage.ErrNotFound, getErr)
}

// ==========================
// Registration Tests
// ==========================

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	svc, store := newTestService(t, backend)

	created, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "u2", created.ID)

	// Registration triggers an OTP send and records the pending role.
	assert.Equal(t, 1, backend.otpSends)
	pending, err := store.Get(ctx, storage.KeyPendingUserType)
	require.NoError(t, err)
	assert.Equal(t, "provider", pending)
	assert.Equal(t, models.UserTypeProvider, svc.PendingUserType(ctx))

	// Registering does not log the user in.
	assert.Empty(t, svc.Token())
}

func TestService_Register_RejectsInvalidPayload(t *testing.T) {
	backend := newFakeBackend()
	svc, _ := newTestService(t, backend)

	reg := validRegistration()
	reg.Age = 16

	_, err := svc.Register(context.Background(), reg)
	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeValidationFailed))
	assert.Empty(t, backend.registered)
}

// ==========================
// Session Lifecycle Tests
// ==========================

func TestService_Logout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	_, err := svc.LoginWithOTP(ctx, "asha@example.com", "123456")
	require.NoError(t, err)

	svc.Logout(ctx)

	assert.Empty(t, svc.Token())
	assert.Nil(t, svc.CurrentUser())
	for _, key := range []string{storage.KeyToken, storage.KeyCurrentUser, storage.KeyPendingUserType} {
		_, err := store.Get(ctx, key)
		assert.Equal(t, storage.ErrNotFound, err)
	}
}

func TestService_Restore_ValidSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	require.NoError(t, store.Set(ctx, storage.KeyToken, "token-u1"))
	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, `{"id":"u1","userType":"seeker"}`))

	require.NoError(t, svc.Restore(ctx))
	assert.Equal(t, "token-u1", svc.Token())
	assert.True(t, svc.IsSeeker())
}

func TestService_Restore_StaleTokenClearsSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	require.NoError(t, store.Set(ctx, storage.KeyToken, "expired-token"))
	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, `{"id":"u1","userType":"seeker"}`))

	require.NoError(t, svc.Restore(ctx))
	assert.Empty(t, svc.Token())
	assert.Nil(t, svc.CurrentUser())

	_, err := store.Get(ctx, storage.KeyToken)
	assert.Equal(t, storage.ErrNotFound, err)
}

func TestService_Restore_NothingPersisted(t *testing.T) {
	svc, _ := newTestService(t, newFakeBackend())
	require.NoError(t, svc.Restore(context.Background()))
	assert.Empty(t, svc.Token())
}

func TestService_Restore_CorruptSnapshotClearsSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	require.NoError(t, store.Set(ctx, storage.KeyToken, "token-u1"))
	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, "{{{not json"))

	require.NoError(t, svc.Restore(ctx))
	assert.Empty(t, svc.Token())
	_, err := store.Get(ctx, storage.KeyToken)
	assert.Equal(t, storage.ErrNotFound, err)
}

// ==========================
// Profile Update Tests
// ==========================

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, newFakeBackend())

	_, err := svc.LoginWithOTP(ctx, "asha@example.com", "123456")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, &models.ProfileUpdate{WorkingCity: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.WorkingCity)
	assert.Equal(t, "Mumbai", svc.CurrentUser().WorkingCity)

	rawUser, err := store.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &persisted))
	assert.Equal(t, "Mumbai", persisted.WorkingCity)
}

func TestService_UpdateProfile_RequiresSession(t *testing.T) {
	svc, _ := newTestService(t, newFakeBackend())

	_, err := svc.UpdateProfile(context.Background(), &models.ProfileUpdate{WorkingCity: "Mumbai"})
	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeNoSession))
}
