package core

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel is the manager logger verbosity.
type LogLevel string

const (
	LogTrace LogLevel = "TRACE"
	LogDebug LogLevel = "DEBUG"
	LogInfo  LogLevel = "INFO"
	LogWarn  LogLevel = "WARN"
	LogError LogLevel = "ERROR"
	LogNone  LogLevel = "NONE"
)

// LogLevels lists every accepted level from most to least verbose.
var LogLevels = []LogLevel{LogTrace, LogDebug, LogInfo, LogWarn, LogError, LogNone}

// ParseLogLevel accepts a level name in any case. Empty means WARN.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return LogWarn, nil
	}
	for _, l := range LogLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown log level: %q", s)
}

// NameServiceName identifies a name service.
type NameServiceName string

const (
	NameServiceICNS     NameServiceName = "icns"
	NameServiceStargaze NameServiceName = "stargaze"
)

// ParseNameService validates a name service identifier. Empty means icns.
func ParseNameService(s string) (NameServiceName, error) {
	switch NameServiceName(strings.ToLower(strings.TrimSpace(s))) {
	case "", NameServiceICNS:
		return NameServiceICNS, nil
	case NameServiceStargaze:
		return NameServiceStargaze, nil
	default:
		return "", fmt.Errorf("unknown name service: %q", s)
	}
}

// WalletConnectOptions configures WalletConnect based wallets.
type WalletConnectOptions struct {
	ProjectID string
	RelayURL  string
	Metadata  map[string]string
}

// SignerOptions carries per-chain signing preferences.
type SignerOptions struct {
	GasPrice          map[string]string // chain name -> gas price, e.g. "0.025uatom"
	PreferredSignType string            // "amino" or "direct"
}

// Endpoints lists RPC and REST endpoints for one chain.
type Endpoints struct {
	RPC  []string
	REST []string
}

// EndpointOptions overrides registry endpoints per chain.
type EndpointOptions struct {
	IsLazy    bool
	Endpoints map[string]Endpoints
}

// DefaultSessionDuration is used when SessionOptions is absent.
const DefaultSessionDuration = 30 * time.Minute

// SessionOptions controls how long a connection is remembered.
type SessionOptions struct {
	Duration time.Duration
	// Callback runs when a remembered session expires.
	Callback func()
}
