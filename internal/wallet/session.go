package wallet

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/walletbridge/internal/cachemanager"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
)

// Session remembers that a wallet was connected to a chain.
type Session struct {
	ID         string
	ChainName  string
	WalletName string
	Address    string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

type sessionKey string

func keyFor(chainName, walletName string) sessionKey {
	return sessionKey(chainName + "/" + walletName)
}

// SessionStore keeps sessions for a fixed duration.
type SessionStore struct {
	cache    *cachemanager.InMemoryCacheManager[sessionKey, Session]
	duration time.Duration
	now      func() time.Time
}

// NewSessionStore builds a store from opts; nil opts use the default duration.
// The callback in opts runs for each session that expires, not for sessions
// removed on disconnect.
func NewSessionStore(opts *core.SessionOptions) *SessionStore {
	duration := core.DefaultSessionDuration
	var callback func()
	if opts != nil {
		if opts.Duration > 0 {
			duration = opts.Duration
		}
		callback = opts.Callback
	}

	cache := cachemanager.NewInMemoryCacheManager[sessionKey, Session]("sessions", duration, 0)
	s := &SessionStore{cache: cache, duration: duration, now: time.Now}
	cache.OnEvicted(func(_ sessionKey, sess Session) {
		if callback == nil || s.now().Before(sess.ExpiresAt) {
			return
		}
		log.Debug(log.CatWallet, "session expired", "chain", sess.ChainName, "wallet", sess.WalletName)
		callback()
	})
	return s
}

// Duration returns how long a session lives.
func (s *SessionStore) Duration() time.Duration {
	return s.duration
}

// Record stores a session for a successful connection and returns it.
func (s *SessionStore) Record(ctx context.Context, chainName, walletName, address string) Session {
	now := s.now()
	sess := Session{
		ID:         uuid.NewString(),
		ChainName:  chainName,
		WalletName: walletName,
		Address:    address,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.duration),
	}
	s.cache.Set(ctx, keyFor(chainName, walletName), sess, s.duration)
	return sess
}

// Get returns the live session for chain and wallet.
func (s *SessionStore) Get(ctx context.Context, chainName, walletName string) (Session, bool) {
	return s.cache.Get(ctx, keyFor(chainName, walletName))
}

// Remove forgets the session for chain and wallet.
func (s *SessionStore) Remove(ctx context.Context, chainName, walletName string) {
	_ = s.cache.Delete(ctx, keyFor(chainName, walletName))
}

// Active lists live sessions.
func (s *SessionStore) Active(ctx context.Context) []Session {
	items := s.cache.Items(ctx)
	out := make([]Session, 0, len(items))
	for _, sess := range items {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ChainName < out[j].ChainName
	})
	return out
}

// Expire drops expired sessions, running the expiry callback for each.
func (s *SessionStore) Expire() {
	s.cache.DeleteExpired()
}
