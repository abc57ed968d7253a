// Package provider hosts a wallet manager inside a Bubble Tea program.
//
// The Model owns a bridge, forwards every cell change into the program as a
// message, renders an optional wallet view over its child, and attaches and
// detaches the bridge with the program's lifetime.
package provider

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/walletbridge/internal/bridge"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/pubsub"
	"github.com/zjrosen/walletbridge/internal/ui/overlay"
)

// notifyBuffer bounds queued cell notifications. Notifications may be
// dropped when full; the cells still hold the latest values.
const notifyBuffer = 64

// ModalProps is what the wallet view is rendered with.
type ModalProps struct {
	IsOpen bool
	// SetOpen writes the view-open cell directly.
	SetOpen    func(bool)
	Repository core.RepositoryRef
	// Context is the host context; it ends when the host closes.
	Context context.Context
}

// ModalRenderer is a wallet view.
type ModalRenderer interface {
	Init() tea.Cmd
	Update(msg tea.Msg, props ModalProps) (ModalRenderer, tea.Cmd)
	// View renders the view box; the host places it over the child.
	View(props ModalProps) string
}

// Options configures a Model.
type Options struct {
	// Modal is the wallet view. Without one nothing reacts to view state
	// and descendants see ModalProvided false.
	Modal ModalRenderer
	// Child builds the content below the host. ctx carries the
	// bridge.WalletContext and ends when the host closes.
	Child func(ctx context.Context) tea.Model
	// Zones resolves mouse regions. When set, View scans the final frame.
	Zones  *zone.Manager
	Tracer trace.Tracer
}

// StateChangedMsg reports that a cell was written.
type StateChangedMsg struct {
	Channel bridge.Channel
	Version uint64
}

type stateChange = pubsub.Event[StateChangedMsg]

// quitMsg asks the host to close and stop the program.
type quitMsg struct{}

// Quit closes the host and then quits the program.
func Quit() tea.Msg {
	return quitMsg{}
}

// Model is the host.
type Model struct {
	bridge   *bridge.Bridge
	modal    ModalRenderer
	child    tea.Model
	ctx      context.Context
	cancel   context.CancelFunc
	broker   *pubsub.Broker[StateChangedMsg]
	listener *pubsub.ContinuousListener[StateChangedMsg]
	unwatch  func()
	zones    *zone.Manager

	width  int
	height int

	closeOnce sync.Once
}

// New builds the host for manager. The bridge is not attached until Init.
func New(manager bridge.Manager, opts Options) *Model {
	b := bridge.New(manager, bridge.Options{
		ModalProvided: opts.Modal != nil,
		Tracer:        opts.Tracer,
	})
	ctx, cancel := context.WithCancel(context.Background())
	ctx = bridge.WithWalletContext(ctx, b.Context())

	broker := pubsub.NewBrokerWithBuffer[StateChangedMsg](notifyBuffer)
	m := &Model{
		bridge:   b,
		modal:    opts.Modal,
		ctx:      ctx,
		cancel:   cancel,
		broker:   broker,
		listener: pubsub.NewContinuousListener(ctx, broker),
		zones:    opts.Zones,
	}
	m.unwatch = b.Cells().Observe(func(ch bridge.Channel, version uint64) {
		broker.Publish(pubsub.CellEvent, StateChangedMsg{Channel: ch, Version: version})
	})
	if opts.Child != nil {
		m.child = opts.Child(ctx)
	}
	return m
}

// Bridge returns the host's bridge.
func (m *Model) Bridge() *bridge.Bridge {
	return m.bridge
}

// Context returns the context handed to the child.
func (m *Model) Context() context.Context {
	return m.ctx
}

// Snapshot copies the current cell values.
func (m *Model) Snapshot() bridge.Snapshot {
	return m.bridge.Cells().Snapshot()
}

func (m *Model) props() ModalProps {
	vs := m.bridge.ViewState()
	return ModalProps{
		IsOpen:     vs.IsOpen,
		SetOpen:    m.bridge.SetViewOpen,
		Repository: vs.SelectedRepo,
		Context:    m.ctx,
	}
}

// Init attaches the bridge, which starts the manager, and begins listening
// for cell changes.
func (m *Model) Init() tea.Cmd {
	m.bridge.Attach()
	cmds := []tea.Cmd{m.listener.Listen()}
	if m.child != nil {
		cmds = append(cmds, m.child.Init())
	}
	if m.modal != nil {
		cmds = append(cmds, m.modal.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quitMsg:
		m.Close()
		return m, tea.Quit

	case stateChange:
		change := msg.Payload
		return m, tea.Batch(m.listener.Listen(), m.broadcast(change))

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg, tea.MouseMsg:
		if m.modal != nil && m.bridge.ViewState().IsOpen {
			return m, m.updateModal(msg)
		}
		return m, m.updateChild(msg)
	}

	return m, m.broadcast(msg)
}

// broadcast sends msg to the child and the wallet view.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	return tea.Batch(m.updateChild(msg), m.updateModal(msg))
}

func (m *Model) updateChild(msg tea.Msg) tea.Cmd {
	if m.child == nil {
		return nil
	}
	var cmd tea.Cmd
	m.child, cmd = m.child.Update(msg)
	return cmd
}

func (m *Model) updateModal(msg tea.Msg) tea.Cmd {
	if m.modal == nil {
		return nil
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg, m.props())
	return cmd
}

func (m *Model) View() string {
	out := m.render()
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

func (m *Model) render() string {
	var bg string
	if m.child != nil {
		bg = m.child.View()
	}
	if m.modal == nil {
		return bg
	}
	props := m.props()
	if !props.IsOpen {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.modal.View(props), bg)
}

// Close detaches the bridge and stops delivering cell changes. It is safe to
// call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.bridge.Detach()
		m.unwatch()
		m.cancel()
		m.broker.Close()
		log.Debug(log.CatBridge, "provider closed")
	})
}
