package config

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/paths"
	"github.com/zjrosen/walletbridge/internal/registry"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/wallet/simulated"
)

// RegistryPath expands a leading ~ in RegistryDir.
func (c Config) RegistryPath() string {
	return paths.ExpandHome(c.RegistryDir)
}

// LoadRegistry returns the built-in registry merged with RegistryDir, if
// set, narrowed to Chains.
func (c Config) LoadRegistry() (*registry.Registry, error) {
	var (
		reg *registry.Registry
		err error
	)
	if dir := c.RegistryPath(); dir != "" {
		reg, err = registry.Load(dir)
	} else {
		reg, err = registry.Default()
	}
	if err != nil {
		return nil, err
	}
	return reg.Select(c.Chains)
}

// ManagerOptions builds wallet manager options over reg. Manager log lines
// go to logOut; tracer may be nil.
func (c Config) ManagerOptions(reg *registry.Registry, logOut io.Writer, tracer trace.Tracer) (wallet.Options, error) {
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return wallet.Options{}, err
	}
	ns, err := core.ParseNameService(c.DefaultNameService)
	if err != nil {
		return wallet.Options{}, err
	}

	specs, err := c.walletSpecs(reg)
	if err != nil {
		return wallet.Options{}, err
	}

	opts := wallet.Options{
		Chains:                 reg.Chains,
		AssetLists:             reg.AssetLists,
		Wallets:                specs,
		Logger:                 core.NewLogger(level, logOut),
		ThrowErrors:            c.ThrowErrors,
		SubscribeConnectEvents: c.SubscribeConnectEvents,
		DisableIframe:          c.DisableIframe,
		DefaultNameService:     ns,
		NameTables:             c.Names,
		SessionOptions:         &core.SessionOptions{Duration: c.Session.Duration},
		Tracer:                 tracer,
	}
	if c.WalletConnect.ProjectID != "" {
		opts.WalletConnectOptions = &core.WalletConnectOptions{
			ProjectID: c.WalletConnect.ProjectID,
			RelayURL:  c.WalletConnect.RelayURL,
		}
	}
	if len(c.Signer.GasPrice) > 0 || c.Signer.SignType != "" {
		opts.SignerOptions = &core.SignerOptions{
			GasPrice:          c.Signer.GasPrice,
			PreferredSignType: c.Signer.SignType,
		}
	}
	if len(c.Endpoints) > 0 {
		eps := make(map[string]core.Endpoints, len(c.Endpoints))
		for chain, e := range c.Endpoints {
			eps[chain] = core.Endpoints{RPC: e.RPC, REST: e.REST}
		}
		opts.EndpointOptions = &core.EndpointOptions{Endpoints: eps}
	}
	return opts, nil
}

// walletSpecs builds a simulated client factory per configured wallet.
func (c Config) walletSpecs(reg *registry.Registry) ([]wallet.WalletSpec, error) {
	prefixes := make(map[string]string, len(reg.Chains))
	for _, ch := range reg.Chains {
		if ch.Bech32Prefix != "" {
			prefixes[ch.ChainID] = ch.Bech32Prefix
		}
	}

	specs := make([]wallet.WalletSpec, 0, len(c.Wallets))
	for _, w := range c.Wallets {
		behaviour, err := simulated.ParseBehaviour(w.Behaviour)
		if err != nil {
			return nil, fmt.Errorf("wallet %s: %w", w.Name, err)
		}
		mode := w.Mode
		if mode == "" {
			mode = wallet.ModeExtension
		}
		specs = append(specs, wallet.WalletSpec{
			Name:       w.Name,
			PrettyName: w.PrettyName,
			Mode:       mode,
			NewClient: simulated.Factory(simulated.Config{
				WalletName: w.Name,
				Behaviour:  behaviour,
				Latency:    w.Latency,
				Prefixes:   prefixes,
			}),
		})
	}
	return specs, nil
}
