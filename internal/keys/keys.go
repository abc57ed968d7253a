// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// DashboardKeys are the bindings of the chain dashboard.
type DashboardKeys struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Disconnect key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// WalletViewKeys are the bindings of the wallet selection view.
type WalletViewKeys struct {
	Up         key.Binding
	Down       key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Close      key.Binding
}

// Dashboard holds the dashboard bindings.
var Dashboard = DashboardKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "connect"),
	),
	Disconnect: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "disconnect"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// WalletView holds the wallet view bindings.
var WalletView = WalletViewKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Connect: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "connect"),
	),
	Disconnect: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "disconnect"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "close"),
	),
}

// ShortHelp implements help.KeyMap.
func (k DashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Disconnect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k DashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Open, k.Disconnect},
		{k.Help, k.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k WalletViewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Disconnect, k.Close}
}

// FullHelp implements help.KeyMap.
func (k WalletViewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Connect, k.Disconnect, k.Close}}
}
