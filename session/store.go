// Package session holds short-lived credential bundles keyed by opaque,
// unguessable identifiers. Stores are safe for concurrent use; entries are
// never mutated after creation, only created and removed.
package session

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"mailsift/models"
)

// ErrNotFound is returned by Get when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Store is the session lifecycle abstraction. Create returns the opaque
// session id. Delete is idempotent. Sweep removes expired sessions and
// returns how many were dropped; backends with native expiry may make it a
// no-op.
type Store interface {
	Create(ctx context.Context, token *oauth2.Token, user models.UserInfo) (string, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) int
}
