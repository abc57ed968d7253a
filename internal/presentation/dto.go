package presentation

import (
	"github.com/zjrosen/walletbridge/internal/core"
)

// ChainDTO represents a registry chain for presentation
type ChainDTO struct {
	ChainName    string   `json:"chain_name"`
	ChainID      string   `json:"chain_id"`
	PrettyName   string   `json:"pretty_name"`
	Bech32Prefix string   `json:"bech32_prefix"`
	NetworkType  string   `json:"network_type,omitempty"`
	Enabled      bool     `json:"enabled"`
	FeeDenoms    []string `json:"fee_denoms"`
	Assets       []string `json:"assets"` // symbols, always present
}

// FromChain converts a registry chain and its asset list to a DTO.
func FromChain(c core.Chain, assets core.AssetList, enabled bool) ChainDTO {
	denoms := make([]string, len(c.Fees.FeeTokens))
	for i, t := range c.Fees.FeeTokens {
		denoms[i] = t.Denom
	}

	symbols := make([]string, 0, len(assets.Assets))
	for _, a := range assets.Assets {
		if a.Symbol != "" {
			symbols = append(symbols, a.Symbol)
		}
	}

	return ChainDTO{
		ChainName:    c.ChainName,
		ChainID:      c.ChainID,
		PrettyName:   c.PrettyName,
		Bech32Prefix: c.Bech32Prefix,
		NetworkType:  c.NetworkType,
		Enabled:      enabled,
		FeeDenoms:    denoms,
		Assets:       symbols,
	}
}
