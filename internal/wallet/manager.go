package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/nameservice"
	"github.com/zjrosen/walletbridge/internal/tracing"
)

// clientInitLimit bounds concurrent client initialisation.
const clientInitLimit = 4

// Manager owns the wallet graph. The graph is built once in NewManager and
// does not change afterwards.
type Manager struct {
	opts     Options
	logger   *core.Logger
	policy   core.FailurePolicy
	repos    []*Repository
	mains    []*MainWallet
	sessions *SessionStore
	names    *nameservice.StaticResolver

	mu      sync.Mutex
	actions core.ManagerActions
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager builds the graph: one Repository per chain and, inside each,
// one ChainWallet per wallet, plus one MainWallet per wallet.
func NewManager(opts Options) (*Manager, error) {
	if opts.Logger == nil {
		opts.Logger = core.NopLogger()
	}
	names, err := nameservice.New(opts.DefaultNameService, opts.NameTables)
	if err != nil {
		return nil, err
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = NewSessionStore(opts.SessionOptions)
	}
	m := &Manager{
		opts:     opts,
		logger:   opts.Logger,
		policy:   opts.policy(),
		sessions: sessions,
		names:    names,
	}

	seen := make(map[string]bool)
	for _, spec := range opts.enabledWallets() {
		if spec.Name == "" {
			return nil, errors.New("wallet name is required")
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate wallet %q", spec.Name)
		}
		seen[spec.Name] = true
		m.mains = append(m.mains, newMainWallet(spec, opts))
	}

	chains := make(map[string]bool)
	for _, chain := range opts.Chains {
		if chains[chain.ChainName] {
			return nil, fmt.Errorf("duplicate chain %q", chain.ChainName)
		}
		chains[chain.ChainName] = true

		repo := &Repository{mgr: m, chain: chain, assets: assetsFor(opts.AssetLists, chain.ChainName)}
		for _, main := range m.mains {
			repo.wallets = append(repo.wallets, &ChainWallet{main: main, repo: repo})
		}
		m.repos = append(m.repos, repo)
	}

	m.logger.Debug("manager created", "chains", len(m.repos), "wallets", len(m.mains))
	return m, nil
}

func assetsFor(lists []core.AssetList, chainName string) core.AssetList {
	for _, l := range lists {
		if l.ChainName == chainName {
			return l
		}
	}
	return core.AssetList{ChainName: chainName}
}

// SetActions installs the manager-level table.
func (m *Manager) SetActions(a core.ManagerActions) {
	m.mu.Lock()
	m.actions = a
	m.mu.Unlock()
}

func (m *Manager) emit(fn func(core.ManagerActions)) {
	m.mu.Lock()
	actions := m.actions
	m.mu.Unlock()
	fn(actions)
}

func (m *Manager) Options() Options                  { return m.opts }
func (m *Manager) Logger() *core.Logger              { return m.logger }
func (m *Manager) Policy() core.FailurePolicy        { return m.policy }
func (m *Manager) Sessions() *SessionStore           { return m.sessions }
func (m *Manager) NameService() nameservice.Resolver { return m.names }

// Repositories returns repositories in chain order.
func (m *Manager) Repositories() []*Repository { return m.repos }

// PrimaryConnectors returns the main wallets in configuration order.
func (m *Manager) PrimaryConnectors() []*MainWallet { return m.mains }

// RepositoryNodes returns the repositories as graph nodes.
func (m *Manager) RepositoryNodes() []core.RepositoryNode {
	nodes := make([]core.RepositoryNode, len(m.repos))
	for i, r := range m.repos {
		nodes[i] = r
	}
	return nodes
}

// PrimaryConnectorNodes returns the main wallets as graph nodes.
func (m *Manager) PrimaryConnectorNodes() []core.ConnectorNode {
	nodes := make([]core.ConnectorNode, len(m.mains))
	for i, w := range m.mains {
		nodes[i] = w
	}
	return nodes
}

// Repository finds a repository by chain name.
func (m *Manager) Repository(chainName string) (*Repository, bool) {
	for _, r := range m.repos {
		if r.ChainName() == chainName {
			return r, true
		}
	}
	return nil, false
}

// OpenView opens the wallet list for chainName.
func (m *Manager) OpenView(chainName string) error {
	repo, ok := m.Repository(chainName)
	if !ok {
		return fmt.Errorf("%s: %w", chainName, core.ErrUnknownChain)
	}
	repo.OpenView()
	return nil
}

// OnMounted starts background work: client initialisation, account change
// subscriptions and session restore. It returns immediately.
func (m *Manager) OnMounted() {
	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		cancel()
		m.logger.Warn("manager already mounted")
		return
	}
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.mount(ctx)
	}()
}

func (m *Manager) mount(ctx context.Context) {
	ctx, span := tracing.Start(ctx, m.opts.Tracer, tracing.SpanManagerMount)
	m.logger.Debug("mounting", "wallets", len(m.mains))
	m.emit(func(a core.ManagerActions) { a.EmitState(core.StateConnecting) })

	err := m.initClients(ctx)
	if err == nil && ctx.Err() == nil {
		if m.opts.SubscribeConnectEvents {
			m.subscribe(ctx)
		}
		restored := m.restoreSessions(ctx)
		span.SetAttributes(attribute.Int(tracing.AttrSessions, restored))
	}
	tracing.End(span, err)

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Error("mount failed", "error", err)
		m.emit(func(a core.ManagerActions) {
			a.EmitState(core.StateError)
			a.EmitMessage(err.Error())
		})
		return
	}
	m.emit(func(a core.ManagerActions) {
		a.EmitState(core.StateConnected)
		a.EmitMessage("")
	})
}

// initClients initialises every main wallet concurrently. A missing wallet
// is not a manager failure; it is reported on the wallet's client channels.
func (m *Manager) initClients(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(clientInitLimit)
	for _, w := range m.mains {
		g.Go(func() error {
			err := w.InitClient(ctx)
			if errors.Is(err, core.ErrNotExist) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// subscribe refreshes connected chain wallets whenever their wallet reports
// a key change.
func (m *Manager) subscribe(ctx context.Context) {
	for _, w := range m.mains {
		client, err := w.Client()
		if err != nil {
			continue
		}
		events := client.Events(ctx)
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-events:
					if !ok {
						return
					}
					m.logger.Debug("account changed", "wallet", ev.Payload.WalletName)
					m.refresh(ctx, w.Name())
				}
			}
		}()
	}
}

func (m *Manager) refresh(ctx context.Context, walletName string) {
	for _, repo := range m.repos {
		w, ok := repo.Wallet(walletName)
		if !ok || w.State() != core.StateConnected {
			continue
		}
		if err := w.Connect(ctx); err != nil {
			m.logger.Warn("refresh failed", "chain", repo.ChainName(), "wallet", walletName, "error", err)
		}
	}
}

// restoreSessions reconnects wallets with a live session and returns how
// many were attempted.
func (m *Manager) restoreSessions(ctx context.Context) int {
	n := 0
	for _, sess := range m.sessions.Active(ctx) {
		repo, ok := m.Repository(sess.ChainName)
		if !ok {
			continue
		}
		w, ok := repo.Wallet(sess.WalletName)
		if !ok {
			continue
		}
		n++
		trace.SpanFromContext(ctx).AddEvent(tracing.EventSessionReused, trace.WithAttributes(
			attribute.String(tracing.AttrChainName, sess.ChainName),
			attribute.String(tracing.AttrWalletName, sess.WalletName)))
		m.logger.Debug("restoring session", "chain", sess.ChainName, "wallet", sess.WalletName, "session", sess.ID)
		if err := w.Connect(ctx); err != nil {
			m.logger.Warn("session restore failed", "chain", sess.ChainName, "wallet", sess.WalletName, "error", err)
		}
	}
	return n
}

// OnUnmounted cancels background work and waits for it to finish. Calling
// it before OnMounted is a no-op.
func (m *Manager) OnUnmounted() {
	_, span := tracing.Start(context.Background(), m.opts.Tracer, tracing.SpanManagerUnmount)
	defer tracing.End(span, nil)

	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	m.wg.Wait()
	m.logger.Debug("unmounted")
	_ = m.logger.Sync()
}
