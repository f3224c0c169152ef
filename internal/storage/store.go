// internal/storage/store.go

// Package storage persists the small set of client-side state the web app
// kept in browser storage: the session token and user snapshot, the
// language preference, the admin sentinel token, and the pending user type
// recorded between registration and the first OTP login.
package storage

import "context"

// Well-known keys. The values are strings; structured values (the user
// snapshot) are stored as JSON.
const (
	KeyToken            = "token"
	KeyCurrentUser      = "currentUser"
	KeySelectedLanguage = "selectedLanguage"
	KeyAdminToken       = "adminToken"
	KeyPendingUserType  = "pendingUserType"
)

// ErrNotFound is returned by Get for missing keys.
type notFoundError struct{}

func (notFoundError) Error() string { return "storage: key not found" }

var ErrNotFound error = notFoundError{}

// Store is the durable client-state interface. Implementations must treat
// missing keys as ErrNotFound, not as empty values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
