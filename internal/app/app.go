// Package app contains the dashboard shown inside the provider.
//
// The dashboard lists every chain with its connected wallet and the client
// state of every wallet. It reads the wallet manager from the context the
// provider hands its child, so it works with or without a wallet view.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/walletbridge/internal/bridge"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/keys"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/provider"
	"github.com/zjrosen/walletbridge/internal/pubsub"
	"github.com/zjrosen/walletbridge/internal/registry"
	"github.com/zjrosen/walletbridge/internal/ui/modal"
	"github.com/zjrosen/walletbridge/internal/ui/styles"
	"github.com/zjrosen/walletbridge/internal/ui/walletmodal"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/watcher"
)

const (
	disconnectTag = "disconnect"
	minPanelWidth = 56
)

// Options configures the dashboard.
type Options struct {
	// Watcher reports registry edits. Optional.
	Watcher *watcher.Watcher
	// RegistryDir is re-read when the watcher fires.
	RegistryDir string
}

// actionDoneMsg reports the end of a connect or disconnect started from the
// dashboard.
type actionDoneMsg struct {
	chain  string
	action string
	err    error
}

// Model is the dashboard.
type Model struct {
	ctx     context.Context
	wc      bridge.WalletContext
	manager *wallet.Manager
	opts    Options

	keys    keys.DashboardKeys
	help    help.Model
	confirm *modal.Model

	watcherListener *pubsub.ContinuousListener[watcher.Event]

	cursor  int
	width   int
	height  int
	status  string
	failed  bool
	changes int
}

// New builds the dashboard from the provider context. A context without a
// wallet manager yields an empty dashboard.
func New(ctx context.Context, opts Options) *Model {
	wc, _ := bridge.FromContext(ctx)
	mgr, _ := wc.Manager.(*wallet.Manager)

	m := &Model{
		ctx:     ctx,
		wc:      wc,
		manager: mgr,
		opts:    opts,
		keys:    keys.Dashboard,
		help:    help.New(),
	}
	if opts.Watcher != nil {
		m.watcherListener = pubsub.NewContinuousListener(ctx, opts.Watcher.Broker())
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.watcherListener != nil {
		return m.watcherListener.Listen()
	}
	return nil
}

// Cursor returns the highlighted chain row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Status returns the status line.
func (m *Model) Status() string {
	return m.status
}

// Changes counts the state notifications received.
func (m *Model) Changes() int {
	return m.changes
}

// Confirming reports whether the disconnect dialog is open.
func (m *Model) Confirming() bool {
	return m.confirm != nil
}

func (m *Model) repositories() []*wallet.Repository {
	if m.manager == nil {
		return nil
	}
	return m.manager.Repositories()
}

func (m *Model) selected() *wallet.Repository {
	repos := m.repositories()
	if m.cursor < 0 || m.cursor >= len(repos) {
		return nil
	}
	return repos[m.cursor]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case provider.StateChangedMsg:
		m.changes++
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.confirm != nil {
			m.confirm.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case actionDoneMsg:
		m.setResult(msg)
		return m, nil

	case walletmodal.ConnectDoneMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("%s: %v", msg.Chain, msg.Err), true)
		}
		return m, nil

	case modal.SubmitMsg:
		if msg.Tag != disconnectTag {
			return m, nil
		}
		m.confirm = nil
		return m, m.disconnect()

	case modal.CancelMsg:
		m.confirm = nil
		return m, nil

	case pubsub.Event[watcher.Event]:
		return m, m.handleWatcher(msg.Payload)

	case tea.KeyMsg:
		if m.confirm != nil {
			var cmd tea.Cmd
			*m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return provider.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.repositories())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Disconnect):
		m.askDisconnect()
	}
	return nil
}

// open shows the wallet view for the selected chain, or connects its first
// wallet directly when no view is provided.
func (m *Model) open() tea.Cmd {
	repo := m.selected()
	if repo == nil {
		return nil
	}
	if m.wc.ModalProvided {
		repo.OpenView()
		return nil
	}

	conns := repo.Connectors()
	if len(conns) == 0 {
		m.setStatus("no wallets configured", true)
		return nil
	}
	ctx, name := m.ctx, conns[0].Name()
	log.Debug(log.CatUI, "direct connect", "chain", repo.ChainName(), "wallet", name)
	m.setStatus(fmt.Sprintf("connecting %s on %s", name, repo.ChainName()), false)
	return func() tea.Msg {
		return actionDoneMsg{chain: repo.ChainName(), action: "connect", err: repo.Connect(ctx, name)}
	}
}

func (m *Model) askDisconnect() {
	repo := m.selected()
	if repo == nil {
		return
	}
	cur := repo.Current()
	if cur == nil {
		m.setStatus(fmt.Sprintf("%s: no wallet connected", repo.ChainName()), false)
		return
	}
	dlg := modal.New(modal.Config{
		Title:          "Disconnect wallet",
		Message:        fmt.Sprintf("Disconnect %s from %s?", cur.PrettyName(), chainTitle(repo)),
		ConfirmLabel:   "Disconnect",
		ConfirmVariant: modal.ButtonDanger,
		Tag:            disconnectTag,
	})
	dlg.SetSize(m.width, m.height)
	m.confirm = &dlg
}

func (m *Model) disconnect() tea.Cmd {
	repo := m.selected()
	if repo == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{chain: repo.ChainName(), action: "disconnect", err: repo.Disconnect(ctx)}
	}
}

func (m *Model) setResult(msg actionDoneMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s %s: %v", msg.action, msg.chain, msg.err), true)
		return
	}
	m.setStatus(fmt.Sprintf("%s %s: done", msg.action, msg.chain), false)
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// handleWatcher re-validates the registry directory after an edit.
func (m *Model) handleWatcher(ev watcher.Event) tea.Cmd {
	var next tea.Cmd
	if m.watcherListener != nil {
		next = m.watcherListener.Listen()
	}
	switch ev.Type {
	case watcher.WatcherError:
		m.setStatus(fmt.Sprintf("registry watcher: %v", ev.Error), true)
	case watcher.RegistryChanged:
		if _, err := registry.Load(m.opts.RegistryDir); err != nil {
			m.setStatus(fmt.Sprintf("registry %s invalid: %v", strings.Join(ev.Files, ", "), err), true)
		} else {
			m.setStatus(fmt.Sprintf("registry %s changed, restart to apply", strings.Join(ev.Files, ", ")), false)
		}
	}
	return next
}

func (m *Model) View() string {
	width := max(m.width, minPanelWidth)

	var b strings.Builder
	b.WriteString(styles.Panel("Chains", m.renderChains(), width, m.confirm == nil))
	b.WriteString("\n")
	b.WriteString(styles.Panel("Wallets", m.renderClients(), width, false))
	b.WriteString("\n")
	if m.status != "" {
		style := styles.SecondaryStyle
		if m.failed {
			style = styles.ErrorStyle
		}
		b.WriteString(" " + style.Render(m.status) + "\n")
	}
	b.WriteString(" " + m.help.View(m.keys))

	view := b.String()
	if m.confirm != nil {
		view = m.confirm.Overlay(view)
	}
	return view
}

func (m *Model) renderChains() string {
	repos := m.repositories()
	if len(repos) == 0 {
		return styles.MutedStyle.Render(" No chains configured")
	}

	nameWidth := 0
	for _, r := range repos {
		nameWidth = max(nameWidth, lipgloss.Width(chainTitle(r)))
	}

	rows := make([]string, len(repos))
	for i, r := range repos {
		indicator := "  "
		if i == m.cursor {
			indicator = styles.SelectionIndicatorStyle.Render("> ")
		}
		title := chainTitle(r)
		row := indicator + title + strings.Repeat(" ", nameWidth-lipgloss.Width(title)) + "  " + m.renderRepoState(r)
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// renderRepoState shows the connected wallet, or else the most recent
// non-idle connector state.
func (m *Model) renderRepoState(r *wallet.Repository) string {
	if cur := r.Current(); cur != nil {
		d := cur.Data()
		out := styles.StateBadge(core.StateConnected) + "  " + cur.PrettyName() + "  " +
			styles.SecondaryStyle.Render(walletmodal.ShortAddress(d.Address, 24))
		if d.Username != "" {
			out += " " + styles.MutedStyle.Render(d.Username)
		}
		return out
	}
	for _, w := range r.Connectors() {
		switch s := w.State(); s {
		case core.StateConnecting, core.StateRejected, core.StateError, core.StateNotExist:
			return styles.StateBadge(s) + "  " + w.PrettyName()
		}
	}
	return styles.StateBadge(core.StateDisconnected)
}

func (m *Model) renderClients() string {
	if m.manager == nil {
		return styles.MutedStyle.Render(" No wallet manager")
	}
	mains := m.manager.PrimaryConnectors()
	if len(mains) == 0 {
		return styles.MutedStyle.Render(" No wallets configured")
	}
	rows := make([]string, len(mains))
	for i, w := range mains {
		row := fmt.Sprintf("  %-14s %s", w.PrettyName(), styles.StateBadge(w.ClientState()))
		if msg := w.ClientMessage(); msg != "" {
			row += "  " + styles.MutedStyle.Render(msg)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func chainTitle(r *wallet.Repository) string {
	if p := r.Chain().PrettyName; p != "" {
		return p
	}
	return r.ChainName()
}
