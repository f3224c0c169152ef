// internal/models/session.go
package models

import "time"

// Session pairs the opaque bearer token with the user snapshot it was
// issued for. Created on OTP verification, cleared on logout or any 401,
// revalidated on startup with a profile fetch.
type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the session carries both a token and a user.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}
