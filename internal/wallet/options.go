package wallet

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/walletbridge/internal/core"
)

// Options configures a Manager. Nil pointer fields use the defaults.
type Options struct {
	Chains     []core.Chain
	AssetLists []core.AssetList
	Wallets    []WalletSpec
	Logger     *core.Logger

	ThrowErrors            bool
	SubscribeConnectEvents bool
	// DisableIframe drops wallets running in iframe mode.
	DisableIframe      bool
	DefaultNameService core.NameServiceName
	// NameTables maps a name service to its name -> address table.
	NameTables map[string]map[string]string

	WalletConnectOptions *core.WalletConnectOptions
	SignerOptions        *core.SignerOptions
	EndpointOptions      *core.EndpointOptions
	SessionOptions       *core.SessionOptions

	// Sessions lets managers share remembered sessions. When nil a store is
	// built from SessionOptions.
	Sessions *SessionStore

	Tracer trace.Tracer
}

func (o Options) policy() core.FailurePolicy {
	return core.FailurePolicy{Throw: o.ThrowErrors}
}

func (o Options) enabledWallets() []WalletSpec {
	if !o.DisableIframe {
		return o.Wallets
	}
	out := make([]WalletSpec, 0, len(o.Wallets))
	for _, w := range o.Wallets {
		if w.Mode != ModeIframe {
			out = append(out, w)
		}
	}
	return out
}
