// Package bridge binds a wallet manager graph to reactive cells.
//
// The manager graph is plain mutable state: nodes push updates through
// action tables installed on them. The bridge owns a set of cells and
// installs action tables whose funcs write into those cells. Every install
// starts a new generation, but tables from earlier generations still write to
// the same cells while the bridge is attached, so a node that has not yet been
// handed its new table loses nothing. Detach retires the bridge; from then on
// every table it ever installed is inert.
package bridge

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/walletbridge/internal/cell"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/tracing"
)

// The manager graph as the bridge sees it.
type (
	Manager    = core.ManagerNode
	Repository = core.RepositoryNode
	Connector  = core.ConnectorNode
)

// Options configures a Bridge.
type Options struct {
	// ModalProvided tells descendants whether a wallet view will react to
	// view state changes.
	ModalProvided bool
	Tracer        trace.Tracer
}

// Bridge installs action tables on a manager graph and owns the cells they
// write to.
type Bridge struct {
	manager Manager
	cells   *Cells
	opts    Options

	// A push is accepted if retired was unset when it was checked. The cell
	// write happens after the check with no bridge lock held, so observers
	// may push or Rebind.
	retired    atomic.Bool
	generation atomic.Uint64
	stale      atomic.Uint64

	mu    sync.Mutex
	phase Phase
}

// New creates a bridge for manager with fresh cells. A nil manager gives a
// bridge whose Install and lifecycle hooks do nothing.
func New(manager Manager, opts Options) *Bridge {
	if isNil(manager) {
		manager = nil
	}
	return &Bridge{
		manager: manager,
		cells:   NewCells(),
		opts:    opts,
	}
}

// Cells returns the bridge's cells.
func (b *Bridge) Cells() *Cells {
	return b.cells
}

// Manager returns the graph root.
func (b *Bridge) Manager() Manager {
	return b.manager
}

// Generation returns the current install generation; zero before the first
// Install.
func (b *Bridge) Generation() uint64 {
	return b.generation.Load()
}

// StalePushes counts pushes dropped because they arrived after Detach.
func (b *Bridge) StalePushes() uint64 {
	return b.stale.Load()
}

// Install binds fresh action tables on every node: the manager, each
// repository followed by its connectors, then each primary connector.
// Primary connectors additionally get the client channels. Nil nodes are
// skipped. Install after Detach does nothing.
func (b *Bridge) Install() {
	if b.manager == nil {
		return
	}
	if b.Phase() == Retired {
		log.Warn(log.CatBridge, "install after detach ignored")
		return
	}

	gen := b.generation.Add(1)

	_, span := tracing.Start(context.Background(), b.opts.Tracer, tracing.SpanBridgeInstall,
		attribute.Int64(tracing.AttrGeneration, int64(gen)))
	defer tracing.End(span, nil)

	c := b.cells
	viewOpen := bind(b, gen, ChanViewOpen, c.ViewOpen)
	viewRepo := bind(b, gen, ChanViewWalletRepo, c.ViewWalletRepo)
	data := bind(b, gen, ChanData, c.Data)
	state := bind(b, gen, ChanState, c.State)
	message := bind(b, gen, ChanMessage, c.Message)

	b.manager.SetActions(core.ManagerActions{
		ViewOpen:       viewOpen,
		ViewWalletRepo: viewRepo,
		Data:           data,
		State:          state,
		Message:        message,
	})

	connector := core.ConnectorActions{Data: data, State: state, Message: message}
	var repos, connectors, primaries int
	for _, repo := range b.manager.RepositoryNodes() {
		if isNil(repo) {
			continue
		}
		repos++
		repo.SetActions(core.RepositoryActions{ViewOpen: viewOpen, ViewWalletRepo: viewRepo})
		for _, conn := range repo.ConnectorNodes() {
			if isNil(conn) {
				continue
			}
			connectors++
			conn.SetActions(connector)
		}
	}

	primary := connector
	primary.ClientState = bind(b, gen, ChanClientState, c.ClientState)
	primary.ClientMessage = bind(b, gen, ChanClientMessage, c.ClientMessage)
	for _, conn := range b.manager.PrimaryConnectorNodes() {
		if isNil(conn) {
			continue
		}
		primaries++
		conn.SetActions(primary)
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrRepositories, repos),
		attribute.Int(tracing.AttrConnectors, connectors),
		attribute.Int(tracing.AttrPrimaries, primaries),
	)
	log.Debug(log.CatBridge, "installed action tables",
		"generation", gen, "repositories", repos, "connectors", connectors, "primaries", primaries)
}

// Rebind reinstalls action tables. Call it when the surface consuming the
// cells changes identity.
func (b *Bridge) Rebind() {
	log.Debug(log.CatBridge, "rebind")
	b.Install()
}

// retire turns every installed action table inert.
func (b *Bridge) retire() {
	b.retired.Store(true)
}

// bind returns a setter for c that writes until the bridge is retired. gen
// only labels the log line of a dropped push.
func bind[T any](b *Bridge, gen uint64, ch Channel, c *cell.Cell[T]) func(T) {
	return func(v T) {
		if b.retired.Load() {
			b.stale.Add(1)
			log.Debug(log.CatBridge, "dropped push after detach", "channel", ch, "generation", gen)
			return
		}
		c.Set(v)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
