// Package weblink implements the interactive sign-in capability for
// hosts that can serve a loopback HTTP redirect: it sends the user to
// the IDP's authorization endpoint and turns the redirect back into a
// credential, resolving each flow's future exactly once.
package weblink

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"auth-sdk/internal/logger"
	"auth-sdk/internal/random"
	"auth-sdk/internal/state"
	"auth-sdk/oauth"
)

const defaultFlowTTL = 5 * time.Minute

// ProviderConfig holds the relay-side client registration for one IDP.
// Endpoints come either from OIDC discovery (Issuer) or are given
// explicitly.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Issuer       string
	Endpoint     oauth2.Endpoint
	Scopes       []string

	// ExchangeCode makes the callback exchange the authorization code
	// for tokens and resolve a nonce-bound token credential. When false
	// the relay resolves a session/response-URL credential and leaves
	// the exchange to the backend.
	ExchangeCode bool
}

// Config configures a Relay.
type Config struct {
	Addr        string
	RedirectURL string
	FlowTTL     time.Duration

	// Flows defaults to an in-memory store.
	Flows state.Store

	Providers map[string]ProviderConfig

	// OnAuthURL is invoked with the authorization URL of each new flow,
	// so the host can open a browser or print a link.
	OnAuthURL func(url string)
}

type pendingFlow struct {
	provider *oauth.Provider
	future   *oauth.Future
	authURL  string
}

// Relay drives interactive OAuth redirect flows over loopback HTTP.
// It implements oauth.InteractiveSignIn.
type Relay struct {
	cfg    Config
	engine *gin.Engine
	server *http.Server

	mu      sync.Mutex
	pending map[string]*pendingFlow // keyed by OAuth state

	epMu      sync.Mutex
	endpoints map[string]oauth2.Endpoint // keyed by issuer
}

var _ oauth.InteractiveSignIn = (*Relay)(nil)

// New builds a relay. It does not start listening; call Run.
func New(cfg Config) *Relay {
	if cfg.FlowTTL <= 0 {
		cfg.FlowTTL = defaultFlowTTL
	}
	if cfg.Flows == nil {
		cfg.Flows = state.NewMemoryStore()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	r := &Relay{
		cfg:       cfg,
		engine:    engine,
		pending:   make(map[string]*pendingFlow),
		endpoints: make(map[string]oauth2.Endpoint),
	}
	r.registerRoutes()
	return r
}

func (r *Relay) registerRoutes() {
	r.engine.GET("/start", r.start)
	r.engine.GET("/callback", r.callback)
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SignIn begins an interactive flow for the provider. The returned
// future resolves exactly once: with the credential from the IDP
// redirect, with the IDP's error verbatim, or with ctx's error when the
// owning flow cancels.
func (r *Relay) SignIn(ctx context.Context, p *oauth.Provider) *oauth.Future {
	fut := oauth.NewFuture()

	pc, ok := r.cfg.Providers[p.ProviderID]
	if !ok {
		fut.Reject(oauth.InvalidArgumentf("provider %q is not configured on this relay", p.ProviderID))
		return fut
	}

	stateVal, err := random.State()
	if err != nil {
		fut.Reject(oauth.Unknown(err.Error()))
		return fut
	}
	nonce, err := random.Nonce()
	if err != nil {
		fut.Reject(oauth.Unknown(err.Error()))
		return fut
	}
	verifier, challenge, err := random.PKCE()
	if err != nil {
		fut.Reject(oauth.Unknown(err.Error()))
		return fut
	}

	flow := state.Flow{
		ID:           random.FlowID(),
		ProviderID:   p.ProviderID,
		State:        stateVal,
		Nonce:        nonce,
		CodeVerifier: verifier,
		ExpiresAt:    time.Now().Add(r.cfg.FlowTTL),
	}
	if err := r.cfg.Flows.Create(ctx, flow); err != nil {
		fut.Reject(oauth.Unknown(err.Error()))
		return fut
	}

	conf, err := r.oauthConfig(ctx, p, pc)
	if err != nil {
		_ = r.cfg.Flows.Delete(ctx, stateVal)
		fut.Reject(oauth.BackendError(err))
		return fut
	}

	opts := append(p.AuthCodeOptions(),
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	authURL := conf.AuthCodeURL(stateVal, opts...)

	r.mu.Lock()
	r.pending[stateVal] = &pendingFlow{provider: p, future: fut, authURL: authURL}
	r.mu.Unlock()

	logger.Info("interactive sign-in started", map[string]any{
		"provider": p.ProviderID,
		"flow_id":  flow.ID,
	})

	if r.cfg.OnAuthURL != nil {
		r.cfg.OnAuthURL(authURL)
	}

	go func() {
		select {
		case <-ctx.Done():
			if fut.Reject(ctx.Err()) {
				r.forget(stateVal)
				_ = r.cfg.Flows.Delete(context.Background(), stateVal)
			}
		case <-fut.Done():
		}
	}()

	return fut
}

func (r *Relay) forget(stateVal string) {
	r.mu.Lock()
	delete(r.pending, stateVal)
	r.mu.Unlock()
}

// oauthConfig assembles the oauth2 client config for one flow,
// resolving endpoints through OIDC discovery when an issuer is set.
func (r *Relay) oauthConfig(ctx context.Context, p *oauth.Provider, pc ProviderConfig) (*oauth2.Config, error) {
	ep := pc.Endpoint
	if pc.Issuer != "" {
		var err error
		ep, err = r.discoverEndpoint(ctx, pc.Issuer)
		if err != nil {
			return nil, err
		}
	}

	scopes := p.Scopes()
	if len(scopes) == 0 {
		scopes = pc.Scopes
	}

	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  r.cfg.RedirectURL,
		Endpoint:     ep,
		Scopes:       scopes,
	}, nil
}

func (r *Relay) discoverEndpoint(ctx context.Context, issuer string) (oauth2.Endpoint, error) {
	r.epMu.Lock()
	defer r.epMu.Unlock()
	if ep, ok := r.endpoints[issuer]; ok {
		return ep, nil
	}
	op, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, fmt.Errorf("weblink: discover %s: %w", issuer, err)
	}
	ep := op.Endpoint()
	r.endpoints[issuer] = ep
	return ep, nil
}

// start redirects the user agent to the authorization URL of a pending
// flow, for hosts that hand out a local link instead of opening the
// browser directly.
func (r *Relay) start(c *gin.Context) {
	stateVal := c.Query("state")
	if stateVal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state is not provided"})
		return
	}

	r.mu.Lock()
	p, ok := r.pending[stateVal]
	r.mu.Unlock()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flow"})
		return
	}

	c.Redirect(http.StatusFound, p.authURL)
}

func (r *Relay) callback(c *gin.Context) {
	stateVal := c.Query("state")
	if stateVal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state is not provided"})
		return
	}

	flow, err := r.cfg.Flows.Consume(c.Request.Context(), stateVal)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}

	r.mu.Lock()
	p, ok := r.pending[stateVal]
	delete(r.pending, stateVal)
	r.mu.Unlock()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no pending flow for state"})
		return
	}

	errParam := c.Query("error")
	errDesc := c.Query("error_description")

	// IDP declined the flow; pass its error through untouched.
	if errParam != "" {
		logger.Warn("idp callback returned error", map[string]any{
			"provider": flow.ProviderID,
			"error":    errParam,
			"desc":     errDesc,
		})
		p.future.Reject(oauth.BackendError(fmt.Errorf("%s: %s", errParam, errDesc)))
		c.JSON(http.StatusUnauthorized, gin.H{"error": errParam})
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("idp callback missing code and error", nil)
		p.future.Reject(oauth.Unknown("authorization callback carried neither code nor error"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	pc := r.cfg.Providers[flow.ProviderID]
	if !pc.ExchangeCode {
		r.resolveSession(c, p, flow)
		return
	}
	r.resolveExchange(c, p, flow, pc, code)
}

// resolveSession finishes a flow in session mode: the credential
// carries the flow's session ID and the full callback URL, and the
// backend performs the code exchange itself.
func (r *Relay) resolveSession(c *gin.Context, p *pendingFlow, flow *state.Flow) {
	responseURL := r.cfg.RedirectURL + "?" + c.Request.URL.RawQuery

	cred, err := oauth.NewCredentialWithSession(flow.ProviderID, flow.ID, responseURL)
	if err != nil {
		p.future.Reject(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build credential"})
		return
	}

	p.future.Resolve(cred)
	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}

// resolveExchange finishes a flow in exchange mode: trade the code for
// tokens and resolve a nonce-bound token credential. The ID token is
// not verified here; verification belongs to the backend.
func (r *Relay) resolveExchange(c *gin.Context, p *pendingFlow, flow *state.Flow, pc ProviderConfig, code string) {
	ctx := c.Request.Context()

	conf, err := r.oauthConfig(ctx, p.provider, pc)
	if err != nil {
		p.future.Reject(oauth.BackendError(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "endpoint resolution failed"})
		return
	}

	token, err := conf.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", flow.CodeVerifier),
	)
	if err != nil {
		logger.Error("token exchange failed", map[string]any{
			"provider": flow.ProviderID,
			"error":    err.Error(),
		})
		p.future.Reject(oauth.BackendError(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token exchange failed"})
		return
	}

	idToken, _ := token.Extra("id_token").(string)

	var cred *oauth.Credential
	switch {
	case idToken != "" && token.AccessToken != "":
		cred, err = oauth.NewCredentialWithNonce(flow.ProviderID, idToken, flow.Nonce, token.AccessToken)
	case idToken != "":
		cred, err = oauth.NewCredentialWithIDTokenNonce(flow.ProviderID, idToken, flow.Nonce)
	default:
		cred, err = oauth.NewCredentialWithAccessToken(flow.ProviderID, token.AccessToken)
	}
	if err != nil {
		p.future.Reject(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build credential"})
		return
	}

	logger.Info("interactive sign-in resolved", map[string]any{
		"provider": flow.ProviderID,
		"flow_id":  flow.ID,
	})

	p.future.Resolve(cred)
	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}
