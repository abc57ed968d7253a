package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/wallet"
)

func loadYAML(t *testing.T, src string) (Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(src)))
	return Load(v)
}

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_Values(t *testing.T) {
	d := Defaults()
	require.True(t, d.Modal)
	require.True(t, d.SubscribeConnectEvents)
	require.False(t, d.ThrowErrors)
	require.Equal(t, "icns", d.DefaultNameService)
	require.Equal(t, "WARN", d.LogLevel)
	require.Equal(t, 30*time.Minute, d.Session.Duration)
	require.Len(t, d.Wallets, 3)
	require.False(t, d.Tracing.Enabled)
}

func TestValidate_Enumerations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "LOUD" }, "log_level"},
		{"name service", func(c *Config) { c.DefaultNameService = "ens" }, "default_name_service"},
		{"names table service", func(c *Config) { c.Names = map[string]map[string]string{"ens": {}} }, "names"},
		{"negative session", func(c *Config) { c.Session.Duration = -time.Second }, "session.duration"},
		{"sign type", func(c *Config) { c.Signer.SignType = "ledger" }, "signer.sign_type"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
		{"wallet mode", func(c *Config) { c.Wallets[0].Mode = "usb" }, "mode must be"},
		{"wallet behaviour", func(c *Config) { c.Wallets[0].Behaviour = "maybe" }, "unknown wallet behaviour"},
		{"wallet name", func(c *Config) { c.Wallets[0].Name = " " }, "name is required"},
		{"duplicate wallet", func(c *Config) { c.Wallets[1].Name = c.Wallets[0].Name }, "duplicate wallet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateTracing_RequiredWhenEnabled(t *testing.T) {
	tc := Defaults().Tracing
	tc.Enabled = true
	tc.FilePath = ""
	require.ErrorContains(t, ValidateTracing(tc), "file_path is required")

	tc.Exporter = "otlp"
	tc.OTLPEndpoint = ""
	require.ErrorContains(t, ValidateTracing(tc), "otlp_endpoint is required")

	tc.Enabled = false
	require.NoError(t, ValidateTracing(tc))
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := loadYAML(t, "")
	require.NoError(t, err)
	require.Len(t, cfg.Wallets, 3)
	require.Equal(t, 300*time.Millisecond, cfg.Wallets[0].Latency)
	require.Equal(t, 30*time.Minute, cfg.Session.Duration)
	require.True(t, cfg.Modal)
}

func TestLoad_ConfiguredListsReplaceDefaults(t *testing.T) {
	cfg, err := loadYAML(t, `
chains: [osmosis]
wallets:
  - name: station
    behaviour: fail
modal: false
session:
  duration: 5m
endpoints:
  osmosis:
    rpc: ["https://rpc.osmo.test"]
signer:
  gas_price:
    osmosis: 0.0025uosmo
names:
  icns:
    alice: osmo1alice
`)
	require.NoError(t, err)
	require.Equal(t, []string{"osmosis"}, cfg.Chains)
	require.Equal(t, []WalletConfig{{Name: "station", Behaviour: "fail"}}, cfg.Wallets)
	require.False(t, cfg.Modal)
	require.Equal(t, 5*time.Minute, cfg.Session.Duration)
	require.Equal(t, []string{"https://rpc.osmo.test"}, cfg.Endpoints["osmosis"].RPC)
	require.Equal(t, "0.0025uosmo", cfg.Signer.GasPrice["osmosis"])
	require.Equal(t, "osmo1alice", cfg.Names["icns"]["alice"])
}

func TestLoad_Invalid(t *testing.T) {
	_, err := loadYAML(t, "log_level: chatty\n")
	require.ErrorContains(t, err, "invalid config")
}

func TestLoad_DefaultTemplateParses(t *testing.T) {
	cfg, err := loadYAML(t, DefaultConfigTemplate())
	require.NoError(t, err)
	require.Equal(t, []string{"cosmoshub", "osmosis", "juno"}, cfg.Chains)
	require.Len(t, cfg.Wallets, 3)
	require.Equal(t, "missing", cfg.Wallets[2].Behaviour)
}

func TestLoadRegistry_SelectsChains(t *testing.T) {
	cfg := Defaults()
	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"cosmoshub", "osmosis", "juno"}, reg.Names())

	cfg.Chains = []string{"juno", "cosmoshub"}
	reg, err = cfg.LoadRegistry()
	require.NoError(t, err)
	require.Equal(t, []string{"juno", "cosmoshub"}, reg.Names())

	cfg.Chains = []string{"atlantis"}
	_, err = cfg.LoadRegistry()
	require.ErrorIs(t, err, core.ErrUnknownChain)
}

func TestManagerOptions(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "info"
	cfg.Chains = []string{"cosmoshub", "osmosis"}
	cfg.Endpoints = map[string]EndpointConfig{"osmosis": {RPC: []string{"https://rpc.osmo.test"}}}
	cfg.Signer.GasPrice = map[string]string{"osmosis": "0.0025uosmo"}
	cfg.WalletConnect.ProjectID = "abc"

	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)

	var logs bytes.Buffer
	opts, err := cfg.ManagerOptions(reg, &logs, nil)
	require.NoError(t, err)

	require.Len(t, opts.Chains, 2)
	require.Len(t, opts.Wallets, 3)
	require.Equal(t, wallet.ModeExtension, opts.Wallets[0].Mode)
	require.Equal(t, "Keplr", opts.Wallets[0].Label())
	require.Equal(t, core.LogInfo, opts.Logger.Level())
	require.Equal(t, core.NameServiceICNS, opts.DefaultNameService)
	require.Equal(t, 30*time.Minute, opts.SessionOptions.Duration)
	require.Equal(t, "abc", opts.WalletConnectOptions.ProjectID)
	require.Equal(t, "0.0025uosmo", opts.SignerOptions.GasPrice["osmosis"])
	require.Equal(t, []string{"https://rpc.osmo.test"}, opts.EndpointOptions.Endpoints["osmosis"].RPC)

	m, err := wallet.NewManager(opts)
	require.NoError(t, err)
	require.Len(t, m.Repositories(), 2)

	osmo, ok := m.Repository("osmosis")
	require.True(t, ok)
	require.Equal(t, "https://rpc.osmo.test", osmo.RPCEndpoint())
	require.Equal(t, "0.0025uosmo", osmo.GasPrice())
}

func TestManagerOptions_OptionalBlocksStayNil(t *testing.T) {
	cfg := Defaults()
	reg, err := cfg.LoadRegistry()
	require.NoError(t, err)

	opts, err := cfg.ManagerOptions(reg, nil, nil)
	require.NoError(t, err)
	require.Nil(t, opts.WalletConnectOptions)
	require.Nil(t, opts.SignerOptions)
	require.Nil(t, opts.EndpointOptions)
}

func TestRegistryPath_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := Config{RegistryDir: "~/registry"}
	require.Equal(t, "/home/tester/registry", cfg.RegistryPath())

	cfg.RegistryDir = "/abs/registry"
	require.Equal(t, "/abs/registry", cfg.RegistryPath())
}
