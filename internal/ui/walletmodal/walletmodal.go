// Package walletmodal renders the wallet list for the selected chain.
//
// It is the wallet view a provider.Model shows over its child while the
// view-open cell is true. Rows are the chain's connectors in configuration
// order; enter or a click connects the highlighted wallet.
package walletmodal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/keys"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/provider"
	"github.com/zjrosen/walletbridge/internal/ui/styles"
	"github.com/zjrosen/walletbridge/internal/wallet"
)

const (
	boxWidth     = 52
	addressWidth = 24
)

// ConnectDoneMsg reports the end of a connect or disconnect started from
// the view. State changes arrive separately through the cells.
type ConnectDoneMsg struct {
	Chain  string
	Wallet string
	Err    error
}

// Model is the wallet view.
type Model struct {
	zones   *zone.Manager
	prefix  string
	keys    keys.WalletViewKeys
	help    help.Model
	spinner spinner.Model

	chain   string
	cursor  int
	pending string
	err     string
}

var _ provider.ModalRenderer = (*Model)(nil)

// New creates the view. zones may be nil, which disables mouse selection.
func New(zones *zone.Manager) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)

	m := &Model{
		zones:   zones,
		keys:    keys.WalletView,
		help:    help.New(),
		spinner: sp,
	}
	if zones != nil {
		m.prefix = zones.NewPrefix()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Cursor returns the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Pending returns the wallet whose connect is in flight, if any.
func (m *Model) Pending() string {
	return m.pending
}

// Err returns the last connect error shown in the view.
func (m *Model) Err() string {
	return m.err
}

func (m *Model) Update(msg tea.Msg, props provider.ModalProps) (provider.ModalRenderer, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConnectDoneMsg:
		if msg.Wallet == m.pending {
			m.pending = ""
		}
		m.err = ""
		if msg.Err != nil {
			m.err = msg.Err.Error()
		}
		return m, nil
	}

	if !props.IsOpen {
		return m, nil
	}
	repo, ok := repository(props)
	if !ok {
		if msg, isKey := msg.(tea.KeyMsg); isKey && key.Matches(msg, m.keys.Close) {
			closeView(props)
		}
		return m, nil
	}
	m.sync(repo)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg, props, repo)
	case tea.MouseMsg:
		return m, m.handleMouse(msg, props, repo)
	}
	return m, nil
}

// sync resets the cursor when the view switches to another chain.
func (m *Model) sync(repo *wallet.Repository) {
	if repo.ChainName() != m.chain {
		m.chain = repo.ChainName()
		m.cursor = 0
		m.err = ""
	}
	if n := len(repo.Connectors()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg, props provider.ModalProps, repo *wallet.Repository) tea.Cmd {
	n := len(repo.Connectors())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Connect):
		return m.connect(props, repo)
	case key.Matches(msg, m.keys.Disconnect):
		return m.disconnect(props, repo)
	case key.Matches(msg, m.keys.Close):
		closeView(props)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg, props provider.ModalProps, repo *wallet.Repository) tea.Cmd {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for i := range repo.Connectors() {
		if z := m.zones.Get(m.rowID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m.connect(props, repo)
		}
	}
	return nil
}

func (m *Model) connect(props provider.ModalProps, repo *wallet.Repository) tea.Cmd {
	conns := repo.Connectors()
	if len(conns) == 0 || m.pending != "" {
		return nil
	}
	name := conns[m.cursor].Name()
	m.pending = name
	ctx := hostContext(props)
	log.Debug(log.CatModal, "wallet view connect", "chain", repo.ChainName(), "wallet", name)
	return func() tea.Msg {
		err := repo.Connect(ctx, name)
		return ConnectDoneMsg{Chain: repo.ChainName(), Wallet: name, Err: err}
	}
}

func (m *Model) disconnect(props provider.ModalProps, repo *wallet.Repository) tea.Cmd {
	if repo.Current() == nil {
		return nil
	}
	ctx := hostContext(props)
	return func() tea.Msg {
		err := repo.Disconnect(ctx)
		return ConnectDoneMsg{Chain: repo.ChainName(), Err: err}
	}
}

func (m *Model) View(props provider.ModalProps) string {
	repo, ok := repository(props)
	if !ok {
		return styles.Panel("Wallets", styles.MutedStyle.Render("No chain selected"), boxWidth, true)
	}

	title := repo.Chain().PrettyName
	if title == "" {
		title = repo.ChainName()
	}

	var b strings.Builder
	for i, w := range repo.Connectors() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.mark(i, m.renderRow(i, w)))
	}
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render(truncate.StringWithTail(m.err, boxWidth-4, "…")))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return styles.Panel("Connect to "+title, b.String(), boxWidth, true)
}

func (m *Model) renderRow(i int, w *wallet.ChainWallet) string {
	indicator := "  "
	if i == m.cursor {
		indicator = styles.SelectionIndicatorStyle.Render("> ")
	}

	state := w.State()
	badge := styles.StateBadge(state)
	if state == core.StateConnecting || w.Name() == m.pending {
		badge = m.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.StateColor(core.StateConnecting)).Render("Connecting")
	}

	row := fmt.Sprintf("%s%-14s %s", indicator, w.PrettyName(), badge)
	if d := w.Data(); d.Address != "" {
		row += "\n    " + styles.SecondaryStyle.Render(ShortAddress(d.Address, addressWidth))
		if d.Username != "" {
			row += " " + styles.MutedStyle.Render(d.Username)
		}
	} else if msg := w.Message(); msg != "" && state != core.StateConnected {
		row += "\n    " + styles.MutedStyle.Render(truncate.StringWithTail(msg, boxWidth-8, "…"))
	}
	return row
}

func (m *Model) mark(i int, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(m.rowID(i), s)
}

func (m *Model) rowID(i int) string {
	return fmt.Sprintf("%swallet-row-%d", m.prefix, i)
}

// ShortAddress truncates addr to width cells with a trailing ellipsis.
func ShortAddress(addr string, width int) string {
	if width <= 0 || lipgloss.Width(addr) <= width {
		return addr
	}
	return truncate.StringWithTail(addr, uint(width), "…")
}

func repository(props provider.ModalProps) (*wallet.Repository, bool) {
	repo, ok := props.Repository.(*wallet.Repository)
	return repo, ok && repo != nil
}

func closeView(props provider.ModalProps) {
	if props.SetOpen != nil {
		props.SetOpen(false)
	}
}

func hostContext(props provider.ModalProps) context.Context {
	if props.Context != nil {
		return props.Context
	}
	return context.Background()
}
