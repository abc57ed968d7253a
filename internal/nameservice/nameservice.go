// Package nameservice resolves human-readable account names to addresses.
package nameservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/walletbridge/internal/cachemanager"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
)

// ErrNotFound is returned when a name has no registered address.
var ErrNotFound = errors.New("name not found")

// DefaultTTL is how long a successful lookup stays cached.
const DefaultTTL = 5 * time.Minute

// Resolver turns a name into an address.
type Resolver interface {
	Service() core.NameServiceName
	Resolve(ctx context.Context, name string) (string, error)
}

type cacheKey string

// StaticResolver resolves names from an in-memory table. Lookups are
// cached so that a table swapped out by Replace is only seen after expiry.
type StaticResolver struct {
	service core.NameServiceName
	table   map[string]string
	cache   cachemanager.CacheManager[cacheKey, string]
	ttl     time.Duration
}

// NewStaticResolver builds a resolver over table. Names are matched
// case-insensitively; for icns the ".cosmos" style suffix is kept as written.
func NewStaticResolver(service core.NameServiceName, table map[string]string, ttl time.Duration) *StaticResolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	normalized := make(map[string]string, len(table))
	for name, addr := range table {
		normalized[normalize(name)] = addr
	}
	return &StaticResolver{
		service: service,
		table:   normalized,
		cache:   cachemanager.NewInMemoryCacheManager[cacheKey, string]("nameservice-"+string(service), ttl, 0),
		ttl:     ttl,
	}
}

func (r *StaticResolver) Service() core.NameServiceName {
	return r.service
}

// Resolve returns the address for name.
func (r *StaticResolver) Resolve(ctx context.Context, name string) (string, error) {
	key := normalize(name)
	if key == "" {
		return "", fmt.Errorf("%s: empty name", r.service)
	}
	if addr, ok := r.cache.Get(ctx, cacheKey(key)); ok {
		return addr, nil
	}
	addr, ok := r.table[key]
	if !ok {
		log.Debug(log.CatCache, "name lookup miss", "service", r.service, "name", key)
		return "", fmt.Errorf("%s %q: %w", r.service, name, ErrNotFound)
	}
	r.cache.Set(ctx, cacheKey(key), addr, r.ttl)
	return addr, nil
}

// Lookup returns the first name in the table mapped to address, used to fill
// the username of a connected account.
func (r *StaticResolver) Lookup(address string) (string, bool) {
	for name, addr := range r.table {
		if addr == address {
			return name, true
		}
	}
	return "", false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds the resolver for service from the configured tables. A missing
// table yields an empty resolver.
func New(service core.NameServiceName, tables map[string]map[string]string) (*StaticResolver, error) {
	svc, err := core.ParseNameService(string(service))
	if err != nil {
		return nil, err
	}
	return NewStaticResolver(svc, tables[string(svc)], DefaultTTL), nil
}
