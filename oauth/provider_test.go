package oauth_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"auth-sdk/oauth"
)

func TestNewProvider_EmptyID(t *testing.T) {
	p, err := oauth.NewProvider("")
	assert.Nil(t, p)
	assert.True(t, oauth.IsInvalidArgument(err))
}

func TestNewProvider_FixedAtConstruction(t *testing.T) {
	scopes := []string{"openid", "email"}
	params := map[string]string{"hd": "example.com"}

	p, err := oauth.NewProvider("google.com",
		oauth.WithScopes(scopes...),
		oauth.WithCustomParameters(params),
	)
	require.NoError(t, err)

	// caller mutation after construction must not leak in
	scopes[0] = "mutated"
	params["hd"] = "mutated"

	assert.Equal(t, "google.com", p.ProviderID)
	assert.Equal(t, []string{"openid", "email"}, p.Scopes())
	assert.Equal(t, map[string]string{"hd": "example.com"}, p.CustomParameters())

	// accessor copies must not alias internal state either
	p.Scopes()[0] = "mutated"
	p.CustomParameters()["hd"] = "mutated"
	assert.Equal(t, []string{"openid", "email"}, p.Scopes())
	assert.Equal(t, map[string]string{"hd": "example.com"}, p.CustomParameters())
}

func TestProvider_AuthCodeOptions(t *testing.T) {
	p, err := oauth.NewProvider("apple.com",
		oauth.WithCustomParameters(map[string]string{
			"locale": "en",
			"prompt": "consent",
		}),
	)
	require.NoError(t, err)

	conf := &oauth2.Config{
		ClientID: "cid",
		Endpoint: oauth2.Endpoint{AuthURL: "https://idp.example/auth"},
	}
	u, err := url.Parse(conf.AuthCodeURL("st", p.AuthCodeOptions()...))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "en", q.Get("locale"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "st", q.Get("state"))
}

func TestProvider_SignIn_NoCapability(t *testing.T) {
	oauth.RegisterInteractive(nil)

	p, err := oauth.NewProvider("github.com")
	require.NoError(t, err)

	cred, err := p.SignIn(context.Background(), nil)
	assert.Nil(t, cred)
	assert.ErrorIs(t, err, oauth.ErrNoInteractiveSignIn)
}
