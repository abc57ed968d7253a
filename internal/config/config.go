// Package config provides configuration types and defaults for walletbridge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/tracing"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/wallet/simulated"
)

// WalletConfig defines one wallet offered on every chain.
type WalletConfig struct {
	Name       string `mapstructure:"name"`
	PrettyName string `mapstructure:"pretty_name"`
	Mode       string `mapstructure:"mode"`      // "extension" (default), "wallet-connect" or "iframe"
	Behaviour  string `mapstructure:"behaviour"` // simulated client: approve (default), reject, missing, fail
	// Latency is added to every simulated request, e.g. "300ms".
	Latency time.Duration `mapstructure:"latency"`
}

// SessionConfig controls how long a connection is remembered.
type SessionConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// EndpointConfig overrides registry endpoints for one chain.
type EndpointConfig struct {
	RPC  []string `mapstructure:"rpc"`
	REST []string `mapstructure:"rest"`
}

// WalletConnectConfig configures wallet-connect mode wallets.
type WalletConnectConfig struct {
	ProjectID string `mapstructure:"project_id"`
	RelayURL  string `mapstructure:"relay_url"`
}

// SignerConfig carries per-chain signing preferences.
type SignerConfig struct {
	GasPrice map[string]string `mapstructure:"gas_price"`
	SignType string            `mapstructure:"sign_type"` // "amino" or "direct"
}

// ThemeConfig overrides accent colors.
type ThemeConfig struct {
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// Config holds all configuration options for walletbridge.
type Config struct {
	// RegistryDir holds chains.jsonc and assetlists.jsonc overriding the
	// built-in registry. Empty uses the built-in registry only.
	RegistryDir string `mapstructure:"registry_dir"`
	// Chains enables a subset of the registry. Empty enables every chain.
	Chains  []string       `mapstructure:"chains"`
	Wallets []WalletConfig `mapstructure:"wallets"`

	ThrowErrors            bool   `mapstructure:"throw_errors"`
	SubscribeConnectEvents bool   `mapstructure:"subscribe_connect_events"`
	DefaultNameService     string `mapstructure:"default_name_service"`
	LogLevel               string `mapstructure:"log_level"`
	DisableIframe          bool   `mapstructure:"disable_iframe"`
	// Modal shows the wallet list over the dashboard. When false the
	// dashboard connects directly.
	Modal bool `mapstructure:"modal"`

	Session       SessionConfig             `mapstructure:"session"`
	Endpoints     map[string]EndpointConfig `mapstructure:"endpoints"`
	WalletConnect WalletConnectConfig       `mapstructure:"wallet_connect"`
	Signer        SignerConfig              `mapstructure:"signer"`
	// Names maps a name service to its name -> address table.
	Names   map[string]map[string]string `mapstructure:"names"`
	Theme   ThemeConfig                  `mapstructure:"theme"`
	Tracing tracing.Config               `mapstructure:"tracing"`
}

// DefaultWallets returns the wallets offered when none are configured.
func DefaultWallets() []WalletConfig {
	return []WalletConfig{
		{Name: "keplr", PrettyName: "Keplr", Mode: wallet.ModeExtension, Behaviour: string(simulated.Approve), Latency: 300 * time.Millisecond},
		{Name: "leap", PrettyName: "Leap", Mode: wallet.ModeExtension, Behaviour: string(simulated.Reject), Latency: 300 * time.Millisecond},
		{Name: "cosmostation", PrettyName: "Cosmostation", Mode: wallet.ModeExtension, Behaviour: string(simulated.Missing)},
	}
}

// DefaultTracesFilePath returns the default trace file location.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".walletbridge", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "walletbridge", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Wallets:                DefaultWallets(),
		SubscribeConnectEvents: true,
		DefaultNameService:     string(core.NameServiceICNS),
		LogLevel:               string(core.LogWarn),
		Modal:                  true,
		Session:                SessionConfig{Duration: core.DefaultSessionDuration},
		Tracing:                tc,
	}
}

// Validate checks enumerations and required fields.
func Validate(c Config) error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := core.ParseNameService(c.DefaultNameService); err != nil {
		return fmt.Errorf("default_name_service: %w", err)
	}
	for svc := range c.Names {
		if _, err := core.ParseNameService(svc); err != nil {
			return fmt.Errorf("names: %w", err)
		}
	}
	if c.Session.Duration < 0 {
		return fmt.Errorf("session.duration must not be negative, got %s", c.Session.Duration)
	}
	if err := ValidateWallets(c.Wallets); err != nil {
		return err
	}
	if c.Signer.SignType != "" && c.Signer.SignType != "amino" && c.Signer.SignType != "direct" {
		return fmt.Errorf("signer.sign_type must be \"amino\" or \"direct\", got %q", c.Signer.SignType)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateWallets checks wallet entries for errors.
func ValidateWallets(wallets []WalletConfig) error {
	seen := make(map[string]bool, len(wallets))
	for i, w := range wallets {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("wallets[%d]: name is required", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("wallets[%d]: duplicate wallet %q", i, w.Name)
		}
		seen[w.Name] = true

		switch w.Mode {
		case "", wallet.ModeExtension, wallet.ModeWalletConnect, wallet.ModeIframe:
		default:
			return fmt.Errorf("wallets[%d]: mode must be %q, %q or %q, got %q",
				i, wallet.ModeExtension, wallet.ModeWalletConnect, wallet.ModeIframe, w.Mode)
		}
		if w.Behaviour != "" {
			if _, err := simulated.ParseBehaviour(w.Behaviour); err != nil {
				return fmt.Errorf("wallets[%d]: %w", i, err)
			}
		}
		if w.Latency < 0 {
			return fmt.Errorf("wallets[%d]: latency must not be negative", i)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" && !slices.Contains(tracing.Exporters, tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# walletbridge configuration

# Directory holding chains.jsonc and assetlists.jsonc. Entries there replace
# built-in chains with the same chain_name.
# registry_dir: ~/.config/walletbridge/registry

# Chains to show (default: every registry chain)
chains:
  - cosmoshub
  - osmosis
  - juno

# Wallets offered on every chain. behaviour drives the simulated client:
# approve, reject, missing or fail.
wallets:
  - name: keplr
    pretty_name: Keplr
    mode: extension
    behaviour: approve
    latency: 300ms
  - name: leap
    pretty_name: Leap
    mode: extension
    behaviour: reject
    latency: 300ms
  - name: cosmostation
    pretty_name: Cosmostation
    mode: extension
    behaviour: missing

# Return connection errors to the caller instead of only reporting them
throw_errors: false

# Refresh connected wallets when the account changes in the wallet
subscribe_connect_events: true

# Name service for usernames: icns or stargaze
default_name_service: icns

# Manager log level: TRACE, DEBUG, INFO, WARN, ERROR or NONE
log_level: WARN

# Hide wallets that run in an iframe
disable_iframe: false

# Show the wallet list when opening a chain. When false the first wallet
# connects directly.
modal: true

session:
  duration: 30m

# Endpoint overrides per chain
# endpoints:
#   cosmoshub:
#     rpc: ["https://rpc.cosmos.network"]
#     rest: ["https://api.cosmos.network"]

# wallet_connect:
#   project_id: ""

# signer:
#   sign_type: direct
#   gas_price:
#     osmosis: 0.0025uosmo

# Static name service tables (name -> address)
# names:
#   icns:
#     alice: cosmos1...

# theme:
#   muted: "#696969"
#   error: "#FF8787"
#   success: "#73F59F"

# Distributed tracing
# tracing:
#   enabled: true
#   exporter: file   # none, file, stdout or otlp
#   file_path: ~/.config/walletbridge/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
