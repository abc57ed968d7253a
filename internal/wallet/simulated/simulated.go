// Package simulated provides a deterministic wallet client for the demo and
// for tests. Addresses are derived from a blake3 hash of the wallet name,
// chain ID and key index, so the same inputs always give the same account.
package simulated

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/pubsub"
	"github.com/zjrosen/walletbridge/internal/wallet"
)

// Behaviour selects how the client answers.
type Behaviour string

const (
	Approve Behaviour = "approve"
	Reject  Behaviour = "reject"
	Missing Behaviour = "missing"
	Fail    Behaviour = "fail"
)

// ParseBehaviour accepts a behaviour name; empty means Approve.
func ParseBehaviour(s string) (Behaviour, error) {
	switch b := Behaviour(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return Approve, nil
	case Approve, Reject, Missing, Fail:
		return b, nil
	default:
		return "", fmt.Errorf("unknown wallet behaviour: %q", s)
	}
}

// Config configures a simulated client.
type Config struct {
	WalletName string
	Behaviour  Behaviour
	// Latency is applied to every request.
	Latency time.Duration
	// Prefixes maps chain ID to bech32 prefix. Unknown chains use the chain
	// ID up to its first dash.
	Prefixes map[string]string
}

// Client is a simulated wallet extension.
type Client struct {
	cfg    Config
	events *pubsub.Broker[wallet.AccountChange]

	mu       sync.Mutex
	enabled  map[string]bool
	keyIndex int
}

// New returns a client regardless of behaviour.
func New(cfg Config) *Client {
	if cfg.Behaviour == "" {
		cfg.Behaviour = Approve
	}
	return &Client{
		cfg:     cfg,
		events:  pubsub.NewBrokerWithBuffer[wallet.AccountChange](4),
		enabled: make(map[string]bool),
	}
}

// Factory returns a wallet.ClientFactory. With Missing behaviour the factory
// reports the wallet as not installed.
func Factory(cfg Config) wallet.ClientFactory {
	return func(ctx context.Context) (wallet.Client, error) {
		if err := sleep(ctx, cfg.Latency); err != nil {
			return nil, err
		}
		if cfg.Behaviour == Missing {
			return nil, fmt.Errorf("%s is not installed: %w", cfg.WalletName, core.ErrNotExist)
		}
		return New(cfg), nil
	}
}

// Enable approves, rejects or fails according to the behaviour.
func (c *Client) Enable(ctx context.Context, chainIDs []string) error {
	if err := sleep(ctx, c.cfg.Latency); err != nil {
		return err
	}
	switch c.cfg.Behaviour {
	case Reject:
		return fmt.Errorf("%s: user denied %s: %w", c.cfg.WalletName, strings.Join(chainIDs, ","), core.ErrRejected)
	case Fail:
		return fmt.Errorf("%s: extension error", c.cfg.WalletName)
	case Missing:
		return fmt.Errorf("%s: %w", c.cfg.WalletName, core.ErrNotExist)
	}

	c.mu.Lock()
	for _, id := range chainIDs {
		c.enabled[id] = true
	}
	c.mu.Unlock()
	return nil
}

// Account returns the deterministic account for chainID. The chain must be
// enabled first.
func (c *Client) Account(ctx context.Context, chainID string) (wallet.Account, error) {
	if err := sleep(ctx, c.cfg.Latency); err != nil {
		return wallet.Account{}, err
	}
	c.mu.Lock()
	enabled := c.enabled[chainID]
	index := c.keyIndex
	c.mu.Unlock()
	if !enabled {
		return wallet.Account{}, fmt.Errorf("%s: chain %s not enabled: %w", c.cfg.WalletName, chainID, core.ErrRejected)
	}

	sum := blake3.Sum256([]byte(fmt.Sprintf("%s|%s|%d", c.cfg.WalletName, chainID, index)))
	pub := make([]byte, 0, 33)
	pub = append(pub, 0x02)
	pub = append(pub, sum[:]...)
	return wallet.Account{
		Address: c.prefix(chainID) + "1" + hex.EncodeToString(sum[:20]),
		PubKey:  pub,
		Algo:    "secp256k1",
	}, nil
}

func (c *Client) prefix(chainID string) string {
	if p, ok := c.cfg.Prefixes[chainID]; ok {
		return p
	}
	if i := strings.IndexByte(chainID, '-'); i > 0 {
		return chainID[:i]
	}
	return chainID
}

// Events streams account changes until ctx ends.
func (c *Client) Events(ctx context.Context) <-chan pubsub.Event[wallet.AccountChange] {
	return c.events.Subscribe(ctx)
}

// SwitchAccount moves to the next key and notifies subscribers, waiting for
// each to accept the event.
func (c *Client) SwitchAccount(ctx context.Context) error {
	c.mu.Lock()
	c.keyIndex++
	c.mu.Unlock()
	return c.events.PublishWait(ctx, pubsub.AccountEvent, wallet.AccountChange{WalletName: c.cfg.WalletName})
}

// Close releases subscribers.
func (c *Client) Close() {
	c.events.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
