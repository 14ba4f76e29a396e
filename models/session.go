package models

import (
	"time"

	"golang.org/x/oauth2"
)

// UserInfo is the identity profile returned by the Google userinfo endpoint.
// Read-only after session creation.
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Verified bool   `json:"verified_email"`
}

// Session is a short-lived credential bundle created after a successful OAuth
// handshake. The token is owned exclusively by the session and never exposed
// through the API; only the identity info is.
type Session struct {
	ID        string        `json:"id"`
	Token     *oauth2.Token `json:"-"`
	User      UserInfo      `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
}
