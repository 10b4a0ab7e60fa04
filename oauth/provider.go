package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider describes an OAuth identity provider: which IDP to talk to,
// the scopes to request, and opaque parameters forwarded to its
// authorization endpoint. All fields are fixed at construction.
type Provider struct {
	ProviderID string

	scopes []string
	params map[string]string
	auth   Backend
}

// ProviderOption configures a Provider at construction.
type ProviderOption func(*Provider)

// WithScopes sets the OAuth scopes to request, in order.
func WithScopes(scopes ...string) ProviderOption {
	return func(p *Provider) {
		p.scopes = append([]string(nil), scopes...)
	}
}

// WithCustomParameters sets key/value pairs passed opaquely to the
// IDP's authorization endpoint.
func WithCustomParameters(params map[string]string) ProviderOption {
	return func(p *Provider) {
		p.params = make(map[string]string, len(params))
		for k, v := range params {
			p.params[k] = v
		}
	}
}

// WithBackend associates the backend authentication context used for
// the eventual sign-in round-trip.
func WithBackend(b Backend) ProviderOption {
	return func(p *Provider) {
		p.auth = b
	}
}

// NewProvider builds an immutable provider descriptor.
func NewProvider(providerID string, opts ...ProviderOption) (*Provider, error) {
	if providerID == "" {
		return nil, InvalidArgumentf("provider id must not be empty")
	}
	p := &Provider{ProviderID: providerID}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Scopes returns the requested scopes in declaration order.
func (p *Provider) Scopes() []string {
	return append([]string(nil), p.scopes...)
}

// CustomParameters returns a copy of the authorize-endpoint parameters.
func (p *Provider) CustomParameters() map[string]string {
	out := make(map[string]string, len(p.params))
	for k, v := range p.params {
		out[k] = v
	}
	return out
}

// Backend returns the associated backend auth context, if any.
func (p *Provider) Backend() Backend {
	return p.auth
}

// AuthCodeOptions renders the custom parameters as authorize-URL
// options for oauth2.Config.AuthCodeURL.
func (p *Provider) AuthCodeOptions() []oauth2.AuthCodeOption {
	var opts []oauth2.AuthCodeOption
	for key, value := range p.params {
		opts = append(opts, oauth2.SetAuthURLParam(key, value))
	}
	return opts
}

// SignIn runs the interactive sign-in flow for this provider. The
// explicit capability wins; otherwise the registered one is used. It
// blocks until the flow resolves or ctx is done.
func (p *Provider) SignIn(ctx context.Context, capability InteractiveSignIn) (*Credential, error) {
	if capability == nil {
		reg, ok := Interactive()
		if !ok {
			return nil, ErrNoInteractiveSignIn
		}
		capability = reg
	}
	return capability.SignIn(ctx, p).Await(ctx)
}
