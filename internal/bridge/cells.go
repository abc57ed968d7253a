package bridge

import (
	"github.com/zjrosen/walletbridge/internal/cell"
	"github.com/zjrosen/walletbridge/internal/core"
)

// Channel names a cell.
type Channel string

const (
	ChanViewOpen       Channel = "viewOpen"
	ChanViewWalletRepo Channel = "viewWalletRepo"
	ChanData           Channel = "data"
	ChanState          Channel = "state"
	ChanMessage        Channel = "message"
	ChanClientState    Channel = "clientState"
	ChanClientMessage  Channel = "clientMessage"
)

// Channels lists every channel in a fixed order.
var Channels = []Channel{
	ChanViewOpen, ChanViewWalletRepo, ChanData, ChanState,
	ChanMessage, ChanClientState, ChanClientMessage,
}

// Cells are the reactive slots one bridge writes manager pushes into.
type Cells struct {
	ViewOpen       *cell.Cell[bool]
	ViewWalletRepo *cell.Cell[core.RepositoryRef]
	Data           *cell.Cell[core.Data]
	State          *cell.Cell[core.State]
	Message        *cell.Cell[string]
	ClientState    *cell.Cell[core.State]
	ClientMessage  *cell.Cell[string]
}

// NewCells returns cells at their initial values.
func NewCells() *Cells {
	return &Cells{
		ViewOpen:       cell.New(false),
		ViewWalletRepo: cell.New[core.RepositoryRef](nil),
		Data:           cell.New(core.Data{}),
		State:          cell.New(core.StateInit),
		Message:        cell.New(""),
		ClientState:    cell.New(core.StateInit),
		ClientMessage:  cell.New(""),
	}
}

// Observe registers fn on every cell; fn receives the channel and the
// cell's version after the write. fn runs on the pushing goroutine with no
// bridge lock held. The returned func removes every observer.
func (c *Cells) Observe(fn func(ch Channel, version uint64)) (cancel func()) {
	cancels := []func(){
		observe(c.ViewOpen, ChanViewOpen, fn),
		observe(c.ViewWalletRepo, ChanViewWalletRepo, fn),
		observe(c.Data, ChanData, fn),
		observe(c.State, ChanState, fn),
		observe(c.Message, ChanMessage, fn),
		observe(c.ClientState, ChanClientState, fn),
		observe(c.ClientMessage, ChanClientMessage, fn),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func observe[T any](c *cell.Cell[T], ch Channel, fn func(Channel, uint64)) func() {
	return c.Observe(func(T) { fn(ch, c.Version()) })
}

// Snapshot is a point-in-time copy of every cell.
type Snapshot struct {
	ViewOpen       bool
	ViewWalletRepo core.RepositoryRef
	Data           core.Data
	State          core.State
	Message        string
	ClientState    core.State
	ClientMessage  string
}

// Snapshot reads every cell. Cells are read one at a time, so a snapshot
// taken during concurrent pushes may mix values from before and after.
func (c *Cells) Snapshot() Snapshot {
	return Snapshot{
		ViewOpen:       c.ViewOpen.Get(),
		ViewWalletRepo: c.ViewWalletRepo.Get(),
		Data:           c.Data.Get(),
		State:          c.State.Get(),
		Message:        c.Message.Get(),
		ClientState:    c.ClientState.Get(),
		ClientMessage:  c.ClientMessage.Get(),
	}
}
