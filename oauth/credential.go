package oauth

// Kind discriminates the two credential shapes. A credential holds
// either direct token artifacts or the session/response-URL pair of a
// web-redirect flow, never both.
type Kind string

const (
	KindToken   Kind = "token"
	KindSession Kind = "session"
)

// TokenArtifacts carries the token-based fields of a credential.
// Empty strings mean "not present" for the optional fields.
type TokenArtifacts struct {
	IDToken      string
	AccessToken  string
	RawNonce     string
	Secret       string
	PendingToken string
}

// SessionArtifacts carries the artifacts of a web-redirect sign-in.
type SessionArtifacts struct {
	SessionID   string
	ResponseURL string
}

// Credential is an immutable authentication credential for a single
// provider, handed to the identity backend for the actual exchange.
// Exactly one of Token or Session is non-nil; the constructors are the
// only way to build one, so mixed state is unrepresentable.
type Credential struct {
	ProviderID string
	Kind       Kind
	Token      *TokenArtifacts
	Session    *SessionArtifacts
}

func newTokenCredential(providerID string, t TokenArtifacts) *Credential {
	return &Credential{
		ProviderID: providerID,
		Kind:       KindToken,
		Token:      &t,
	}
}

// NewCredential builds a credential from an ID token. The access token
// is optional and may be empty.
func NewCredential(providerID, idToken, accessToken string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if idToken == "" {
		return nil, InvalidArgumentf("id token must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		IDToken:     idToken,
		AccessToken: accessToken,
	}), nil
}

// NewCredentialWithAccessToken builds a credential for a plain
// access-token flow.
func NewCredentialWithAccessToken(providerID, accessToken string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if accessToken == "" {
		return nil, InvalidArgumentf("access token must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		AccessToken: accessToken,
	}), nil
}

// NewCredentialWithNonce builds a credential binding the ID token to a
// client-generated raw nonce. All three tokens are required.
func NewCredentialWithNonce(providerID, idToken, rawNonce, accessToken string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if idToken == "" {
		return nil, InvalidArgumentf("id token must not be empty")
	}
	if rawNonce == "" {
		return nil, InvalidArgumentf("raw nonce must not be empty")
	}
	if accessToken == "" {
		return nil, InvalidArgumentf("access token must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		IDToken:     idToken,
		AccessToken: accessToken,
		RawNonce:    rawNonce,
	}), nil
}

// NewCredentialWithIDTokenNonce builds a nonce-bound credential when no
// access token was issued (e.g. Sign in with Apple).
func NewCredentialWithIDTokenNonce(providerID, idToken, rawNonce string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if idToken == "" {
		return nil, InvalidArgumentf("id token must not be empty")
	}
	if rawNonce == "" {
		return nil, InvalidArgumentf("raw nonce must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		IDToken:  idToken,
		RawNonce: rawNonce,
	}), nil
}

// NewCredentialWithSecret builds an OAuth 1.0-style token/secret pair
// credential.
func NewCredentialWithSecret(providerID, accessToken, secret string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if accessToken == "" {
		return nil, InvalidArgumentf("access token must not be empty")
	}
	if secret == "" {
		return nil, InvalidArgumentf("secret must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		AccessToken: accessToken,
		Secret:      secret,
	}), nil
}

// NewCredentialWithPendingToken wraps a pending token returned by the
// backend when a sign-in needs a further verification step before the
// final exchange.
func NewCredentialWithPendingToken(providerID, pendingToken string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if pendingToken == "" {
		return nil, InvalidArgumentf("pending token must not be empty")
	}
	return newTokenCredential(providerID, TokenArtifacts{
		PendingToken: pendingToken,
	}), nil
}

// NewCredentialWithSession builds a credential from the artifacts of a
// web-redirect sign-in flow. Token exchange is left to the backend.
func NewCredentialWithSession(providerID, sessionID, responseURL string) (*Credential, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	if sessionID == "" {
		return nil, InvalidArgumentf("session id must not be empty")
	}
	if responseURL == "" {
		return nil, InvalidArgumentf("response url must not be empty")
	}
	return &Credential{
		ProviderID: providerID,
		Kind:       KindSession,
		Session: &SessionArtifacts{
			SessionID:   sessionID,
			ResponseURL: responseURL,
		},
	}, nil
}
