package wallet

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/tracing"
)

// ChainWallet connects one wallet to one chain. It borrows the client of
// its MainWallet.
type ChainWallet struct {
	main *MainWallet
	repo *Repository

	mu      sync.Mutex
	actions core.ConnectorActions
	state   core.State
	message string
	data    core.Data
}

// SetActions installs the table the wallet pushes its state through.
func (w *ChainWallet) SetActions(a core.ConnectorActions) {
	w.mu.Lock()
	w.actions = a
	w.mu.Unlock()
}

func (w *ChainWallet) Name() string            { return w.main.Name() }
func (w *ChainWallet) PrettyName() string      { return w.main.PrettyName() }
func (w *ChainWallet) ChainName() string       { return w.repo.ChainName() }
func (w *ChainWallet) Main() *MainWallet       { return w.main }
func (w *ChainWallet) Repository() *Repository { return w.repo }

func (w *ChainWallet) State() core.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *ChainWallet) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

func (w *ChainWallet) Data() core.Data {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Connect enables the chain in the wallet and fetches the account. Progress
// is pushed as Connecting then Data and Connected. A failure is pushed as
// Rejected, NotExist or Error and returned only when the manager throws.
func (w *ChainWallet) Connect(ctx context.Context) error {
	mgr := w.repo.mgr
	ctx, span := tracing.Start(ctx, mgr.opts.Tracer, tracing.SpanWalletConnect,
		attribute.String(tracing.AttrChainName, w.ChainName()),
		attribute.String(tracing.AttrWalletName, w.Name()))

	err := w.connect(ctx)
	span.SetAttributes(attribute.String(tracing.AttrWalletState, w.State().String()))
	tracing.End(span, err)
	return mgr.policy.Handle(err, w.fail)
}

func (w *ChainWallet) connect(ctx context.Context) error {
	mgr := w.repo.mgr
	chain := w.repo.Chain()

	w.set(core.StateConnecting, "")
	mgr.logger.Debug("connecting", "chain", chain.ChainName, "wallet", w.Name())

	client, err := w.main.Client()
	if err != nil {
		return err
	}
	if err := client.Enable(ctx, []string{chain.ChainID}); err != nil {
		return fmt.Errorf("enable %s: %w", chain.ChainID, err)
	}
	acct, err := client.Account(ctx, chain.ChainID)
	if err != nil {
		return fmt.Errorf("account %s: %w", chain.ChainID, err)
	}

	username := acct.Username
	if username == "" && mgr.names != nil {
		username, _ = mgr.names.Lookup(acct.Address)
	}
	data := core.Data{
		WalletName: w.Name(),
		ChainName:  chain.ChainName,
		ChainID:    chain.ChainID,
		Address:    acct.Address,
		Username:   username,
		PubKey:     acct.PubKey,
		Algo:       acct.Algo,
	}

	w.mu.Lock()
	w.data = data
	w.state = core.StateConnected
	w.message = ""
	actions := w.actions
	w.mu.Unlock()

	actions.EmitData(data)
	actions.EmitState(core.StateConnected)
	actions.EmitMessage("")

	mgr.sessions.Record(ctx, chain.ChainName, w.Name(), acct.Address)
	w.main.recordConnected(data)
	mgr.logger.Info("connected", "chain", chain.ChainName, "wallet", w.Name(), "address", acct.Address)
	return nil
}

// fail reports a failed connection on this wallet and its main wallet.
func (w *ChainWallet) fail(state core.State, msg string) {
	w.repo.mgr.logger.Warn("connect failed", "chain", w.ChainName(), "wallet", w.Name(), "state", state.String(), "error", msg)
	w.set(state, msg)
	w.main.recordFailure(state, msg)
}

// Disconnect forgets the account and its session.
func (w *ChainWallet) Disconnect(ctx context.Context) error {
	mgr := w.repo.mgr
	_, span := tracing.Start(ctx, mgr.opts.Tracer, tracing.SpanWalletDisconnect,
		attribute.String(tracing.AttrChainName, w.ChainName()),
		attribute.String(tracing.AttrWalletName, w.Name()))
	defer tracing.End(span, nil)

	w.mu.Lock()
	w.data = core.Data{}
	w.state = core.StateDisconnected
	w.message = ""
	actions := w.actions
	w.mu.Unlock()

	actions.EmitData(core.Data{})
	actions.EmitState(core.StateDisconnected)
	actions.EmitMessage("")

	mgr.sessions.Remove(ctx, w.ChainName(), w.Name())
	w.main.recordDisconnected(w.ChainName())
	mgr.logger.Info("disconnected", "chain", w.ChainName(), "wallet", w.Name())
	return nil
}

// set stores and pushes state then message.
func (w *ChainWallet) set(state core.State, msg string) {
	w.mu.Lock()
	w.state = state
	w.message = msg
	actions := w.actions
	w.mu.Unlock()

	actions.EmitState(state)
	actions.EmitMessage(msg)
}
