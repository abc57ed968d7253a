package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/walletbridge/internal/bridge"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/provider"
	"github.com/zjrosen/walletbridge/internal/pubsub"
	"github.com/zjrosen/walletbridge/internal/registry"
	"github.com/zjrosen/walletbridge/internal/ui/modal"
	"github.com/zjrosen/walletbridge/internal/ui/walletmodal"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/wallet/simulated"
	"github.com/zjrosen/walletbridge/internal/watcher"
)

func newManager(t *testing.T) *wallet.Manager {
	t.Helper()
	prefixes := map[string]string{"cosmoshub-4": "cosmos", "osmosis-1": "osmo"}
	m, err := wallet.NewManager(wallet.Options{
		Chains: []core.Chain{
			{ChainName: "cosmoshub", ChainID: "cosmoshub-4", PrettyName: "Cosmos Hub", Bech32Prefix: "cosmos"},
			{ChainName: "osmosis", ChainID: "osmosis-1", PrettyName: "Osmosis", Bech32Prefix: "osmo"},
		},
		Wallets: []wallet.WalletSpec{
			{Name: "keplr", PrettyName: "Keplr", Mode: wallet.ModeExtension, NewClient: simulated.Factory(simulated.Config{
				WalletName: "keplr", Behaviour: simulated.Approve, Prefixes: prefixes,
			})},
			{Name: "leap", PrettyName: "Leap", Mode: wallet.ModeExtension, NewClient: simulated.Factory(simulated.Config{
				WalletName: "leap", Behaviour: simulated.Missing, Prefixes: prefixes,
			})},
		},
	})
	require.NoError(t, err)
	t.Cleanup(m.OnUnmounted)
	return m
}

func mount(t *testing.T, m *wallet.Manager) {
	t.Helper()
	m.OnMounted()
	require.Eventually(t, func() bool {
		for _, w := range m.PrimaryConnectors() {
			if !w.ClientState().IsTerminal() {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func dashboard(t *testing.T, m *wallet.Manager, modalProvided bool) *Model {
	t.Helper()
	ctx := bridge.WithWalletContext(context.Background(), bridge.WalletContext{Manager: m, ModalProvided: modalProvided})
	return New(ctx, Options{})
}

func press(t *testing.T, d *Model, s string) tea.Cmd {
	t.Helper()
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := d.Update(msg)
	return cmd
}

// feed runs cmd and delivers its message, returning the follow-up command.
func feed(t *testing.T, d *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := d.Update(cmd())
	return next
}

func TestNew_WithoutManager(t *testing.T) {
	d := New(context.Background(), Options{})
	require.Nil(t, press(t, d, "enter"))
	require.Nil(t, press(t, d, "d"))

	out := ansi.Strip(d.View())
	require.Contains(t, out, "No chains configured")
	require.Contains(t, out, "No wallet manager")
}

func TestView_ListsChainsAndClients(t *testing.T) {
	m := newManager(t)
	mount(t, m)
	d := dashboard(t, m, true)

	out := ansi.Strip(d.View())
	require.Contains(t, out, "> Cosmos Hub")
	require.Contains(t, out, "Osmosis")
	require.Contains(t, out, "○ Disconnected")
	require.Contains(t, out, "Keplr")
	require.Contains(t, out, "● Connected")
	require.Contains(t, out, core.StateNotExist.String())
}

func TestUpdate_CursorMoves(t *testing.T) {
	m := newManager(t)
	d := dashboard(t, m, true)

	press(t, d, "k")
	require.Equal(t, 0, d.Cursor())
	press(t, d, "j")
	require.Equal(t, 1, d.Cursor())
	press(t, d, "j")
	require.Equal(t, 1, d.Cursor())
}

func TestUpdate_StateChangesCounted(t *testing.T) {
	d := dashboard(t, newManager(t), true)
	_, cmd := d.Update(provider.StateChangedMsg{Channel: bridge.ChanState, Version: 3})
	require.Nil(t, cmd)
	require.Equal(t, 1, d.Changes())
}

func TestOpen_WithWalletViewPushesViewState(t *testing.T) {
	m := newManager(t)
	d := dashboard(t, m, true)

	var (
		mu     sync.Mutex
		pushes []string
	)
	osmo, _ := m.Repository("osmosis")
	osmo.SetActions(core.RepositoryActions{
		ViewWalletRepo: func(r core.RepositoryRef) {
			mu.Lock()
			pushes = append(pushes, "repo="+r.ChainName())
			mu.Unlock()
		},
		ViewOpen: func(open bool) {
			mu.Lock()
			pushes = append(pushes, "open")
			mu.Unlock()
		},
	})

	press(t, d, "j")
	require.Nil(t, press(t, d, "enter"))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"repo=osmosis", "open"}, pushes)
}

func TestOpen_WithoutWalletViewConnectsFirstWallet(t *testing.T) {
	m := newManager(t)
	mount(t, m)
	d := dashboard(t, m, false)

	cmd := press(t, d, "enter")
	require.Contains(t, d.Status(), "connecting keplr on cosmoshub")
	require.Nil(t, feed(t, d, cmd))

	hub, _ := m.Repository("cosmoshub")
	require.NotNil(t, hub.Current())
	require.Equal(t, "keplr", hub.Current().Name())
	require.Equal(t, "connect cosmoshub: done", d.Status())

	out := ansi.Strip(d.View())
	require.Contains(t, out, "Cosmos Hub")
	require.Contains(t, out, walletmodal.ShortAddress(hub.Current().Data().Address, 24))
}

func TestDisconnect_Confirmed(t *testing.T) {
	m := newManager(t)
	mount(t, m)
	d := dashboard(t, m, false)
	feed(t, d, press(t, d, "enter"))

	require.Nil(t, press(t, d, "d"))
	require.True(t, d.Confirming())
	require.Contains(t, ansi.Strip(d.View()), "Disconnect Keplr from Cosmos Hub?")

	// Keys go to the dialog while it is open.
	require.Nil(t, press(t, d, "j"))
	require.Equal(t, 0, d.Cursor())

	submit := press(t, d, "y")
	require.Equal(t, modal.SubmitMsg{Tag: disconnectTag}, submit())
	disconnect := feed(t, d, submit)
	require.False(t, d.Confirming())
	require.Nil(t, feed(t, d, disconnect))

	hub, _ := m.Repository("cosmoshub")
	require.Nil(t, hub.Current())
	require.Equal(t, "disconnect cosmoshub: done", d.Status())
}

func TestDisconnect_Cancelled(t *testing.T) {
	m := newManager(t)
	mount(t, m)
	d := dashboard(t, m, false)
	feed(t, d, press(t, d, "enter"))

	press(t, d, "d")
	require.Nil(t, feed(t, d, press(t, d, "esc")))
	require.False(t, d.Confirming())

	hub, _ := m.Repository("cosmoshub")
	require.NotNil(t, hub.Current())
}

func TestDisconnect_NothingConnected(t *testing.T) {
	d := dashboard(t, newManager(t), false)
	require.Nil(t, press(t, d, "d"))
	require.False(t, d.Confirming())
	require.Equal(t, "cosmoshub: no wallet connected", d.Status())
}

func TestQuit(t *testing.T) {
	d := dashboard(t, newManager(t), true)
	cmd := press(t, d, "q")
	require.NotNil(t, cmd)
	require.Equal(t, provider.Quit(), cmd())
}

func TestHelpToggles(t *testing.T) {
	d := dashboard(t, newManager(t), true)
	short := ansi.Strip(d.View())
	press(t, d, "?")
	full := ansi.Strip(d.View())
	require.NotEqual(t, short, full)
	require.Contains(t, full, "disconnect")
}

func TestWatcherEvent_ValidatesRegistry(t *testing.T) {
	dir := t.TempDir()
	ctx := bridge.WithWalletContext(context.Background(), bridge.WalletContext{Manager: newManager(t)})
	d := New(ctx, Options{RegistryDir: dir})

	changed := pubsub.Event[watcher.Event]{Payload: watcher.Event{Type: watcher.RegistryChanged, Files: []string{registry.ChainsFile}}}

	_, _ = d.Update(changed)
	require.Equal(t, "registry chains.jsonc changed, restart to apply", d.Status())

	bad := `[{"chain_name": "stargaze"}] // no chain_id`
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.ChainsFile), []byte(bad), 0o644))
	_, _ = d.Update(changed)
	require.Contains(t, d.Status(), "invalid")
	require.Contains(t, d.Status(), "chain_id is required")
}

func TestProgram_ConnectThroughWalletView(t *testing.T) {
	m := newManager(t)
	host := provider.New(m, provider.Options{
		Modal: walletmodal.New(nil),
		Child: func(ctx context.Context) tea.Model { return New(ctx, Options{}) },
	})
	t.Cleanup(host.Close)

	tm := teatest.NewTestModel(t, host, teatest.WithInitialTermSize(100, 30))
	waitFor := func(s string) {
		teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
			return bytes.Contains(b, []byte(s))
		}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(10*time.Millisecond))
	}

	waitFor("Cosmos Hub")
	require.Eventually(t, func() bool {
		return host.Snapshot().State == core.StateConnected
	}, 2*time.Second, 10*time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor("Connect to Cosmos Hub")
	require.True(t, host.Snapshot().ViewOpen)

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	hub, _ := m.Repository("cosmoshub")
	require.Eventually(t, func() bool {
		cur := hub.Current()
		return cur != nil && cur.Name() == "keplr"
	}, 2*time.Second, 10*time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	require.Eventually(t, func() bool {
		return !host.Snapshot().ViewOpen
	}, 2*time.Second, 10*time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(*provider.Model)
	require.True(t, ok)
	require.Equal(t, bridge.Retired, final.Bridge().Phase())
	require.Equal(t, core.StateConnected, final.Snapshot().State)
}
