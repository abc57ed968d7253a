package bridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/walletbridge/internal/core"
)

func TestAttach_MountsOnce(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})

	require.True(t, b.Attach())
	require.False(t, b.Attach())

	mounted, _ := g.manager.counts()
	require.Equal(t, 1, mounted)
	require.Equal(t, Attached, b.Phase())
	require.Equal(t, uint64(1), b.Generation())
}

func TestAttach_ConcurrentCallsMountOnce(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Attach()
		}()
	}
	wg.Wait()

	mounted, _ := g.manager.counts()
	require.Equal(t, 1, mounted)
}

func TestAttach_InstallsBeforeMounting(t *testing.T) {
	g := newGraph()
	New(g.manager, Options{}).Attach()

	entries := g.j.list()
	require.Equal(t, "set:manager", entries[0])
	require.Equal(t, "onMounted", entries[len(entries)-1])
}

// An open view is closed strictly before the manager is torn down.
func TestDetach_ClosesViewBeforeUnmount(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{ModalProvided: true})
	require.True(t, b.Attach())

	r := g.repos[0].table(-1)
	r.EmitViewWalletRepo(g.repos[0])
	r.EmitViewOpen(true)
	require.True(t, b.ViewState().IsOpen)

	cancel := b.Cells().ViewOpen.Observe(func(open bool) {
		if !open {
			g.j.add("isOpen:=false")
		}
	})
	defer cancel()
	g.j.reset()

	require.True(t, b.Detach())
	require.Equal(t, []string{"isOpen:=false", "onUnmounted"}, g.j.list())
	require.False(t, b.ViewState().IsOpen)
	require.Equal(t, Retired, b.Phase())
}

func TestDetach_OnlyAfterAttachAndOnlyOnce(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})

	require.False(t, b.Detach())
	_, unmounted := g.manager.counts()
	require.Zero(t, unmounted)

	b.Attach()
	require.True(t, b.Detach())
	require.False(t, b.Detach())
	_, unmounted = g.manager.counts()
	require.Equal(t, 1, unmounted)
}

func TestDetach_RetiresInstalledTables(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})
	b.Attach()
	table := g.conns[1].table(-1)
	b.Detach()

	table.EmitState(core.StateConnected)
	g.manager.table(-1).EmitViewOpen(true)
	require.Equal(t, core.StateInit, b.Cells().State.Get())
	require.False(t, b.Cells().ViewOpen.Get())
	require.Equal(t, uint64(2), b.StalePushes())
}

// Pushes made by the manager while it tears down still land.
func TestDetach_TeardownPushesLand(t *testing.T) {
	g := newGraph()
	mgr := &unmountPusher{fakeManager: g.manager}
	b := New(mgr, Options{})
	b.Attach()
	b.Detach()

	require.Equal(t, core.StateDisconnected, b.Cells().State.Get())
}

type unmountPusher struct {
	*fakeManager
}

func (u *unmountPusher) OnUnmounted() {
	u.fakeManager.OnUnmounted()
	u.table(-1).EmitState(core.StateDisconnected)
}

func TestAttach_AfterDetachIsIgnored(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})
	b.Attach()
	b.Detach()

	require.False(t, b.Attach())
	mounted, _ := g.manager.counts()
	require.Equal(t, 1, mounted)
	require.Equal(t, Retired, b.Phase())
}

func TestRebind_AfterDetachInstallsNothing(t *testing.T) {
	g := newGraph()
	b := New(g.manager, Options{})
	b.Attach()
	b.Detach()

	b.Rebind()
	b.Install()
	require.Equal(t, 1, g.conns[0].installs())
	require.Equal(t, uint64(1), b.Generation())

	g.conns[0].table(-1).EmitState(core.StateConnected)
	g.primaries[0].table(-1).EmitClientState(core.StateConnected)
	require.NotEqual(t, core.StateConnected, b.Cells().State.Get())
	require.Equal(t, core.StateInit, b.Cells().ClientState.Get())
	require.Equal(t, uint64(2), b.StalePushes())
	require.Equal(t, Retired, b.Phase())
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "detached", Detached.String())
	require.Equal(t, "attached", Attached.String())
	require.Equal(t, "retired", Retired.String())
	require.Equal(t, "unknown", Phase(9).String())
}
