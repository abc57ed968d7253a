package core

// Chain is a chain registry entry.
type Chain struct {
	ChainName    string   `json:"chain_name"`
	ChainID      string   `json:"chain_id"`
	PrettyName   string   `json:"pretty_name"`
	Bech32Prefix string   `json:"bech32_prefix"`
	Slip44       int      `json:"slip44"`
	Status       string   `json:"status"`
	NetworkType  string   `json:"network_type"`
	Fees         Fees     `json:"fees"`
	APIs         ChainAPI `json:"apis"`
}

// Fees lists accepted fee tokens.
type Fees struct {
	FeeTokens []FeeToken `json:"fee_tokens"`
}

// FeeToken is one fee denomination and its gas prices.
type FeeToken struct {
	Denom            string  `json:"denom"`
	LowGasPrice      float64 `json:"low_gas_price"`
	AverageGasPrice  float64 `json:"average_gas_price"`
	HighGasPrice     float64 `json:"high_gas_price"`
	FixedMinGasPrice float64 `json:"fixed_min_gas_price"`
}

// ChainAPI lists public endpoints from the registry.
type ChainAPI struct {
	RPC  []APIEndpoint `json:"rpc"`
	REST []APIEndpoint `json:"rest"`
}

// APIEndpoint is one public endpoint.
type APIEndpoint struct {
	Address  string `json:"address"`
	Provider string `json:"provider"`
}

// AssetList is the asset registry for one chain.
type AssetList struct {
	ChainName string  `json:"chain_name"`
	Assets    []Asset `json:"assets"`
}

// Asset is one asset of a chain.
type Asset struct {
	Base    string `json:"base"`
	Display string `json:"display"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}
