package oauth

import (
	"context"
	"time"
)

// UserSession is the verified result the identity backend returns for a
// successful credential exchange. It contains facts only.
type UserSession struct {
	UID          string
	IDToken      string
	RefreshToken string
	Expiry       time.Time
}

// Backend is the opaque authentication context a provider can be bound
// to. Implementations own the network exchange with the identity
// service; this layer only shapes requests toward them.
type Backend interface {
	// SignInWithCredential exchanges the credential for a verified user
	// session. Failures are returned as-is and surfaced to callers
	// wrapped in a backend-error.
	SignInWithCredential(ctx context.Context, cred *Credential) (*UserSession, error)
}
