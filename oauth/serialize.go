package oauth

import (
	"encoding/json"
	"fmt"
)

// credentialVersion is the current envelope version. Bump it when the
// wire shape changes and keep decoding the older versions.
const credentialVersion = 1

type tokenEnvelope struct {
	IDToken      string `json:"id_token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RawNonce     string `json:"raw_nonce,omitempty"`
	Secret       string `json:"secret,omitempty"`
	PendingToken string `json:"pending_token,omitempty"`
}

type sessionEnvelope struct {
	SessionID   string `json:"session_id"`
	ResponseURL string `json:"response_url"`
}

type credentialEnvelope struct {
	Version    int              `json:"v"`
	ProviderID string           `json:"provider_id"`
	Kind       Kind             `json:"kind"`
	Token      *tokenEnvelope   `json:"token,omitempty"`
	Session    *sessionEnvelope `json:"session,omitempty"`
}

// MarshalCredential encodes a credential in the versioned envelope.
func MarshalCredential(c *Credential) ([]byte, error) {
	if c == nil {
		return nil, InvalidArgumentf("credential must not be nil")
	}
	env := credentialEnvelope{
		Version:    credentialVersion,
		ProviderID: c.ProviderID,
		Kind:       c.Kind,
	}
	switch {
	case c.Token != nil && c.Session == nil:
		env.Token = &tokenEnvelope{
			IDToken:      c.Token.IDToken,
			AccessToken:  c.Token.AccessToken,
			RawNonce:     c.Token.RawNonce,
			Secret:       c.Token.Secret,
			PendingToken: c.Token.PendingToken,
		}
	case c.Session != nil && c.Token == nil:
		env.Session = &sessionEnvelope{
			SessionID:   c.Session.SessionID,
			ResponseURL: c.Session.ResponseURL,
		}
	default:
		return nil, InvalidArgumentf("credential must carry exactly one of token or session artifacts")
	}
	return json.Marshal(env)
}

// UnmarshalCredential decodes a versioned credential envelope,
// re-checking the disjoint-payload invariant on the way in.
func UnmarshalCredential(data []byte) (*Credential, error) {
	var env credentialEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("oauth: decode credential: %w", err)
	}
	if env.Version != credentialVersion {
		return nil, fmt.Errorf("oauth: unsupported credential version %d", env.Version)
	}
	if env.ProviderID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	switch env.Kind {
	case KindToken:
		if env.Token == nil || env.Session != nil {
			return nil, InvalidArgumentf("token credential must carry token artifacts only")
		}
		return &Credential{
			ProviderID: env.ProviderID,
			Kind:       KindToken,
			Token: &TokenArtifacts{
				IDToken:      env.Token.IDToken,
				AccessToken:  env.Token.AccessToken,
				RawNonce:     env.Token.RawNonce,
				Secret:       env.Token.Secret,
				PendingToken: env.Token.PendingToken,
			},
		}, nil
	case KindSession:
		if env.Session == nil || env.Token != nil {
			return nil, InvalidArgumentf("session credential must carry session artifacts only")
		}
		return NewCredentialWithSession(env.ProviderID, env.Session.SessionID, env.Session.ResponseURL)
	default:
		return nil, InvalidArgumentf("unknown credential kind %q", env.Kind)
	}
}
