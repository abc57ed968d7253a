package wallet

import (
	"context"

	"github.com/zjrosen/walletbridge/internal/pubsub"
)

// Wallet modes.
const (
	ModeExtension     = "extension"
	ModeWalletConnect = "wallet-connect"
	ModeIframe        = "iframe"
)

// Account is what a client reports for one chain.
type Account struct {
	Address  string
	Username string
	PubKey   []byte
	Algo     string
}

// AccountChange is published when the user switches keys in the wallet.
type AccountChange struct {
	WalletName string
}

// Client talks to one wallet implementation.
type Client interface {
	// Enable asks the user to approve access to chainIDs. ErrRejected from
	// core signals a user refusal.
	Enable(ctx context.Context, chainIDs []string) error
	Account(ctx context.Context, chainID string) (Account, error)
	// Events streams key changes until ctx ends.
	Events(ctx context.Context) <-chan pubsub.Event[AccountChange]
}

// ClientFactory creates the client for a wallet. It returns an error wrapping
// core.ErrNotExist when the wallet is not installed.
type ClientFactory func(ctx context.Context) (Client, error)

// WalletSpec describes one configured wallet.
type WalletSpec struct {
	Name       string
	PrettyName string
	Mode       string
	NewClient  ClientFactory
}

// Label returns the pretty name, falling back to the name.
func (s WalletSpec) Label() string {
	if s.PrettyName != "" {
		return s.PrettyName
	}
	return s.Name
}
