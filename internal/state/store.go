package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a flow is missing, expired, or was
// already consumed.
var ErrNotFound = errors.New("state: pending flow not found")

// Flow is the server-side record of one in-flight interactive sign-in.
// It exists from the moment the authorization URL is issued until the
// IDP redirects back (or the TTL runs out).
type Flow struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	State        string    `json:"state"`
	Nonce        string    `json:"nonce"`
	CodeVerifier string    `json:"code_verifier"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Store persists pending flows keyed by their OAuth state parameter.
// Consume is a single-use read: a state value can authorize exactly one
// callback, which is the replay protection for the flow.
type Store interface {
	Create(ctx context.Context, f Flow) error
	Consume(ctx context.Context, state string) (*Flow, error)
	Delete(ctx context.Context, state string) error
}
