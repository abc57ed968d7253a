package wallet

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/zjrosen/walletbridge/internal/core"
)

// Repository holds every wallet's connector for one chain.
type Repository struct {
	mgr     *Manager
	chain   core.Chain
	assets  core.AssetList
	wallets []*ChainWallet

	mu      sync.Mutex
	actions core.RepositoryActions
}

// SetActions installs the table the repository pushes view changes through.
func (r *Repository) SetActions(a core.RepositoryActions) {
	r.mu.Lock()
	r.actions = a
	r.mu.Unlock()
}

func (r *Repository) ChainName() string         { return r.chain.ChainName }
func (r *Repository) Chain() core.Chain         { return r.chain }
func (r *Repository) AssetList() core.AssetList { return r.assets }

// Connectors returns the chain wallets in configuration order.
func (r *Repository) Connectors() []*ChainWallet {
	return r.wallets
}

// ConnectorNodes returns the chain wallets as graph nodes.
func (r *Repository) ConnectorNodes() []core.ConnectorNode {
	nodes := make([]core.ConnectorNode, len(r.wallets))
	for i, w := range r.wallets {
		nodes[i] = w
	}
	return nodes
}

// Wallet finds a chain wallet by name.
func (r *Repository) Wallet(name string) (*ChainWallet, bool) {
	for _, w := range r.wallets {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// Current returns the connected wallet, if any.
func (r *Repository) Current() *ChainWallet {
	for _, w := range r.wallets {
		if w.State() == core.StateConnected {
			return w
		}
	}
	return nil
}

// OpenView asks the host to show this repository's wallet list.
func (r *Repository) OpenView() {
	r.mu.Lock()
	actions := r.actions
	r.mu.Unlock()

	actions.EmitViewWalletRepo(r)
	actions.EmitViewOpen(true)
}

// CloseView asks the host to hide the wallet list.
func (r *Repository) CloseView() {
	r.mu.Lock()
	actions := r.actions
	r.mu.Unlock()

	actions.EmitViewOpen(false)
}

// Connect connects walletName, disconnecting any other connected wallet first.
func (r *Repository) Connect(ctx context.Context, walletName string) error {
	w, ok := r.Wallet(walletName)
	if !ok {
		err := fmt.Errorf("%s on %s: %w", walletName, r.ChainName(), core.ErrUnknownWallet)
		r.mgr.logger.Error("connect", "error", err)
		return r.mgr.policy.Handle(err, r.fail)
	}
	if cur := r.Current(); cur != nil && cur != w {
		if err := cur.Disconnect(ctx); err != nil {
			return err
		}
	}
	return w.Connect(ctx)
}

// fail reports a repository-level failure. Repositories have no state
// channel of their own, so it goes out on the manager's.
func (r *Repository) fail(s core.State, msg string) {
	r.mgr.emit(func(a core.ManagerActions) {
		a.EmitState(s)
		a.EmitMessage(msg)
	})
}

// Disconnect disconnects the current wallet, if any.
func (r *Repository) Disconnect(ctx context.Context) error {
	if cur := r.Current(); cur != nil {
		return cur.Disconnect(ctx)
	}
	return nil
}

// RPCEndpoint returns the first RPC endpoint, preferring configured overrides.
func (r *Repository) RPCEndpoint() string {
	if eps, ok := r.overrides(); ok && len(eps.RPC) > 0 {
		return eps.RPC[0]
	}
	if len(r.chain.APIs.RPC) > 0 {
		return r.chain.APIs.RPC[0].Address
	}
	return ""
}

// RESTEndpoint returns the first REST endpoint, preferring overrides.
func (r *Repository) RESTEndpoint() string {
	if eps, ok := r.overrides(); ok && len(eps.REST) > 0 {
		return eps.REST[0]
	}
	if len(r.chain.APIs.REST) > 0 {
		return r.chain.APIs.REST[0].Address
	}
	return ""
}

func (r *Repository) overrides() (core.Endpoints, bool) {
	opts := r.mgr.opts.EndpointOptions
	if opts == nil {
		return core.Endpoints{}, false
	}
	eps, ok := opts.Endpoints[r.chain.ChainName]
	return eps, ok
}

// GasPrice returns the signer override for the chain or the registry's
// average gas price of the first fee token, e.g. "0.025uatom".
func (r *Repository) GasPrice() string {
	if s := r.mgr.opts.SignerOptions; s != nil {
		if gp, ok := s.GasPrice[r.chain.ChainName]; ok {
			return gp
		}
	}
	if len(r.chain.Fees.FeeTokens) == 0 {
		return ""
	}
	ft := r.chain.Fees.FeeTokens[0]
	return strconv.FormatFloat(ft.AverageGasPrice, 'f', -1, 64) + ft.Denom
}
