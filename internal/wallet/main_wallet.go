package wallet

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/tracing"
)

// MainWallet is a manager-level connector. It owns the wallet's client and
// tracks the client session separately from any chain connection.
type MainWallet struct {
	spec   WalletSpec
	logger *core.Logger
	tracer trace.Tracer
	wc     *core.WalletConnectOptions

	mu            sync.Mutex
	actions       core.ConnectorActions
	client        Client
	clientState   core.State
	clientMessage string
	state         core.State
	message       string
	data          core.Data
}

func newMainWallet(spec WalletSpec, opts Options) *MainWallet {
	return &MainWallet{
		spec:   spec,
		logger: opts.Logger,
		tracer: opts.Tracer,
		wc:     opts.WalletConnectOptions,
	}
}

// SetActions installs the table the wallet pushes its aggregate and client
// state through.
func (w *MainWallet) SetActions(a core.ConnectorActions) {
	w.mu.Lock()
	w.actions = a
	w.mu.Unlock()
}

func (w *MainWallet) Name() string       { return w.spec.Name }
func (w *MainWallet) PrettyName() string { return w.spec.Label() }
func (w *MainWallet) Mode() string       { return w.spec.Mode }

func (w *MainWallet) ClientState() core.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clientState
}

func (w *MainWallet) ClientMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clientMessage
}

// State is the aggregate state of the wallet's most recent chain connection.
func (w *MainWallet) State() core.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *MainWallet) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

func (w *MainWallet) Data() core.Data {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Client returns the initialised client or core.ErrClientNotReady.
func (w *MainWallet) Client() (Client, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.client == nil {
		return nil, fmt.Errorf("%s: %w", w.spec.Name, core.ErrClientNotReady)
	}
	return w.client, nil
}

// InitClient creates the wallet client, reporting progress on the client
// channels. Failures are always reported and returned; the manager decides
// whether they matter.
func (w *MainWallet) InitClient(ctx context.Context) (err error) {
	ctx, span := tracing.Start(ctx, w.tracer, tracing.SpanClientInit,
		attribute.String(tracing.AttrWalletName, w.spec.Name))
	defer func() { tracing.End(span, err) }()

	w.setClient(nil, core.StateConnecting, "")

	client, err := w.newClient(ctx)
	if err != nil {
		w.logger.Warn("client init failed", "wallet", w.spec.Name, "error", err)
		w.setClient(nil, core.StateForError(err), err.Error())
		return err
	}

	w.logger.Debug("client ready", "wallet", w.spec.Name)
	w.setClient(client, core.StateConnected, "")
	return nil
}

func (w *MainWallet) newClient(ctx context.Context) (Client, error) {
	if w.spec.Mode == ModeWalletConnect && (w.wc == nil || w.wc.ProjectID == "") {
		return nil, fmt.Errorf("%s: walletconnect project id is required: %w", w.spec.Name, core.ErrNotExist)
	}
	if w.spec.NewClient == nil {
		return nil, fmt.Errorf("%s: %w", w.spec.Name, core.ErrNotExist)
	}
	return w.spec.NewClient(ctx)
}

func (w *MainWallet) setClient(client Client, state core.State, msg string) {
	w.mu.Lock()
	if client != nil {
		w.client = client
	}
	w.clientState = state
	w.clientMessage = msg
	actions := w.actions
	w.mu.Unlock()

	actions.EmitClientState(state)
	actions.EmitClientMessage(msg)
}

// recordConnected makes d the wallet's current connection.
func (w *MainWallet) recordConnected(d core.Data) {
	w.mu.Lock()
	w.state = core.StateConnected
	w.message = ""
	w.data = d
	actions := w.actions
	w.mu.Unlock()

	actions.EmitData(d)
	actions.EmitState(core.StateConnected)
	actions.EmitMessage("")
}

// recordFailure reports a failed chain connection on the aggregate.
func (w *MainWallet) recordFailure(state core.State, msg string) {
	w.mu.Lock()
	w.state = state
	w.message = msg
	actions := w.actions
	w.mu.Unlock()

	actions.EmitState(state)
	actions.EmitMessage(msg)
}

// recordDisconnected clears the aggregate if it points at chainName.
func (w *MainWallet) recordDisconnected(chainName string) {
	w.mu.Lock()
	if w.data.ChainName != chainName {
		w.mu.Unlock()
		return
	}
	w.state = core.StateDisconnected
	w.message = ""
	w.data = core.Data{}
	actions := w.actions
	w.mu.Unlock()

	actions.EmitData(core.Data{})
	actions.EmitState(core.StateDisconnected)
}
