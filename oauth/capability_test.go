package oauth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-sdk/oauth"
)

type stubSignIn struct {
	cred *oauth.Credential
	err  error
}

func (s *stubSignIn) SignIn(_ context.Context, _ *oauth.Provider) *oauth.Future {
	fut := oauth.NewFuture()
	if s.err != nil {
		fut.Reject(s.err)
	} else {
		fut.Resolve(s.cred)
	}
	return fut
}

func TestRegisterInteractive_LastWins(t *testing.T) {
	defer oauth.RegisterInteractive(nil)

	oauth.RegisterInteractive(nil)
	_, ok := oauth.Interactive()
	assert.False(t, ok)

	first := &stubSignIn{}
	second := &stubSignIn{}
	oauth.RegisterInteractive(first)
	oauth.RegisterInteractive(second)

	got, ok := oauth.Interactive()
	require.True(t, ok)
	assert.Same(t, second, got.(*stubSignIn))
}

func TestProvider_SignIn_UsesRegisteredCapability(t *testing.T) {
	defer oauth.RegisterInteractive(nil)

	cred, err := oauth.NewCredentialWithAccessToken("github.com", "at")
	require.NoError(t, err)
	oauth.RegisterInteractive(&stubSignIn{cred: cred})

	p, err := oauth.NewProvider("github.com")
	require.NoError(t, err)

	got, err := p.SignIn(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, cred, got)
}

func TestProvider_SignIn_ExplicitCapabilityWins(t *testing.T) {
	defer oauth.RegisterInteractive(nil)

	regCred, _ := oauth.NewCredentialWithAccessToken("p", "registered")
	expCred, _ := oauth.NewCredentialWithAccessToken("p", "explicit")
	oauth.RegisterInteractive(&stubSignIn{cred: regCred})

	p, err := oauth.NewProvider("p")
	require.NoError(t, err)

	got, err := p.SignIn(context.Background(), &stubSignIn{cred: expCred})
	require.NoError(t, err)
	assert.Same(t, expCred, got)
}

func TestProvider_SignIn_BackendErrorPassesThrough(t *testing.T) {
	cause := oauth.BackendError(assert.AnError)

	p, err := oauth.NewProvider("p")
	require.NoError(t, err)

	_, err = p.SignIn(context.Background(), &stubSignIn{err: cause})
	assert.True(t, oauth.IsBackendError(err))
	assert.ErrorIs(t, err, assert.AnError)
}
