package bridge

import (
	"context"

	"github.com/zjrosen/walletbridge/internal/core"
)

// WalletContext is what descendants of the bridge get to see: the manager
// to send commands to, and whether a wallet view exists. It never carries
// the setters.
//
// The value is comparable; two contexts are equal while the manager and the
// flag are unchanged.
type WalletContext struct {
	Manager       Manager
	ModalProvided bool
}

// Context returns the value exposed to descendants.
func (b *Bridge) Context() WalletContext {
	return WalletContext{Manager: b.manager, ModalProvided: b.opts.ModalProvided}
}

type contextKey struct{}

// WithWalletContext returns a copy of ctx carrying wc.
func WithWalletContext(ctx context.Context, wc WalletContext) context.Context {
	return context.WithValue(ctx, contextKey{}, wc)
}

// FromContext returns the WalletContext stored in ctx.
func FromContext(ctx context.Context) (WalletContext, bool) {
	wc, ok := ctx.Value(contextKey{}).(WalletContext)
	return wc, ok
}

// ViewState drives the wallet view.
type ViewState struct {
	IsOpen       bool
	SelectedRepo core.RepositoryRef
}

// ViewState reads the view cells.
func (b *Bridge) ViewState() ViewState {
	return ViewState{
		IsOpen:       b.cells.ViewOpen.Get(),
		SelectedRepo: b.cells.ViewWalletRepo.Get(),
	}
}

// SetViewOpen writes the view-open cell directly. It is the setOpen handed
// to the wallet view and works in any phase.
func (b *Bridge) SetViewOpen(open bool) {
	b.cells.ViewOpen.Set(open)
}
