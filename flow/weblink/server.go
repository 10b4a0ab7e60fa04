package weblink

import (
	"context"
	"errors"
	"net/http"

	"auth-sdk/internal/logger"
	"auth-sdk/oauth"
)

// Run starts the relay's HTTP listener and blocks until it stops.
func (r *Relay) Run() error {
	r.server = &http.Server{
		Addr:    r.cfg.Addr,
		Handler: r.engine,
	}

	logger.Info("weblink relay listening", map[string]any{
		"addr": r.cfg.Addr,
	})

	err := r.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler exposes the relay's routes, for hosts that mount it on their
// own server instead of calling Run.
func (r *Relay) Handler() http.Handler {
	return r.engine
}

// Shutdown stops the listener and rejects every still-pending flow, so
// no future is ever left unresolved.
func (r *Relay) Shutdown(ctx context.Context) error {
	var err error
	if r.server != nil {
		err = r.server.Shutdown(ctx)
	}

	r.mu.Lock()
	pending := r.pending
	r.pending = make(map[string]*pendingFlow)
	r.mu.Unlock()

	for stateVal, p := range pending {
		p.future.Reject(oauth.Unknown("sign-in relay shut down"))
		_ = r.cfg.Flows.Delete(context.Background(), stateVal)
	}

	return err
}
