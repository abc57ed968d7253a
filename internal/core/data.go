package core

// Data is the account snapshot a connector reports once connected.
type Data struct {
	WalletName string
	ChainName  string
	ChainID    string
	Address    string
	Username   string
	PubKey     []byte
	Algo       string
}

// IsZero reports whether d carries no account.
func (d Data) IsZero() bool {
	return d.Address == "" && d.WalletName == "" && d.ChainID == ""
}

// RepositoryRef identifies the repository a wallet view is showing.
type RepositoryRef interface {
	ChainName() string
}
