// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/walletbridge/internal/core"
)

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Connection state colors
	StateIdleColor       = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"}
	StateConnectingColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	StateConnectedColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StateRejectedColor   = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}
	StateErrorColor      = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StateMissingColor    = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDangerBgColor         = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDangerFocusBgColor    = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}

	// Overlay
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)
	TitleStyle              = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
	MutedStyle              = lipgloss.NewStyle().Foreground(TextMutedColor)
	SecondaryStyle          = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ErrorStyle              = lipgloss.NewStyle().Foreground(StateErrorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonSecondaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DangerButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonDangerBgColor)

	DangerButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonDangerFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)
)

// StateColor returns the color for a connection state.
func StateColor(s core.State) lipgloss.TerminalColor {
	switch s {
	case core.StateConnecting:
		return StateConnectingColor
	case core.StateConnected:
		return StateConnectedColor
	case core.StateRejected:
		return StateRejectedColor
	case core.StateError:
		return StateErrorColor
	case core.StateNotExist:
		return StateMissingColor
	default:
		return StateIdleColor
	}
}

// StateBadge renders a state as a colored label, e.g. "● Connected".
func StateBadge(s core.State) string {
	glyph := "○"
	if s == core.StateConnected {
		glyph = "●"
	}
	return lipgloss.NewStyle().Foreground(StateColor(s)).Render(glyph + " " + s.String())
}

// ApplyTheme overrides the accent colors. Empty strings keep the defaults.
func ApplyTheme(muted, errorColor, success string) {
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		MutedStyle = MutedStyle.Foreground(TextMutedColor)
	}
	if errorColor != "" {
		StateErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
		ErrorStyle = ErrorStyle.Foreground(StateErrorColor)
	}
	if success != "" {
		StateConnectedColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
	}
}
