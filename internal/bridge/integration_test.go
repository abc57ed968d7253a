package bridge_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/walletbridge/internal/bridge"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/wallet/simulated"
)

func TestBridge_WithWalletManager(t *testing.T) {
	mgr, err := wallet.NewManager(wallet.Options{
		Chains: []core.Chain{{ChainName: "osmosis", ChainID: "osmosis-1", Bech32Prefix: "osmo"}},
		Wallets: []wallet.WalletSpec{{
			Name:      "keplr",
			Mode:      wallet.ModeExtension,
			NewClient: simulated.Factory(simulated.Config{WalletName: "keplr", Latency: time.Millisecond}),
		}},
		SubscribeConnectEvents: true,
	})
	require.NoError(t, err)

	b := bridge.New(mgr, bridge.Options{ModalProvided: true})
	cells := b.Cells()
	require.True(t, b.Attach())

	require.Eventually(t, func() bool {
		return cells.ClientState.Get() == core.StateConnected && cells.State.Get() == core.StateConnected
	}, 2*time.Second, 5*time.Millisecond)

	osmo, ok := mgr.Repository("osmosis")
	require.True(t, ok)
	osmo.OpenView()
	vs := b.ViewState()
	require.True(t, vs.IsOpen)
	require.Same(t, osmo, vs.SelectedRepo)

	require.NoError(t, osmo.Connect(context.Background(), "keplr"))
	require.True(t, strings.HasPrefix(cells.Data.Get().Address, "osmo1"))
	require.Equal(t, core.StateConnected, cells.State.Get())

	require.True(t, b.Detach())
	require.False(t, cells.ViewOpen.Get())

	osmo.OpenView()
	require.False(t, cells.ViewOpen.Get())
}
