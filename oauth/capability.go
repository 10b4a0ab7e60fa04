package oauth

import (
	"context"
	"sync"
)

// InteractiveSignIn is the capability of driving an interactive OAuth
// redirect flow on the host platform. Implementations exist only where
// the host supports one; on other hosts nothing is registered.
//
// SignIn is single-shot: the returned future resolves exactly once,
// with a credential or an error, and backend failures pass through
// verbatim. Cancellation is owned by whatever higher-level flow owns
// the delegate, via ctx.
type InteractiveSignIn interface {
	SignIn(ctx context.Context, p *Provider) *Future
}

var (
	interactiveMu sync.RWMutex
	interactive   InteractiveSignIn
)

// RegisterInteractive installs the host's interactive sign-in
// capability. A later registration replaces an earlier one.
func RegisterInteractive(c InteractiveSignIn) {
	interactiveMu.Lock()
	defer interactiveMu.Unlock()
	interactive = c
}

// Interactive returns the registered capability, if any.
func Interactive() (InteractiveSignIn, bool) {
	interactiveMu.RLock()
	defer interactiveMu.RUnlock()
	return interactive, interactive != nil
}
