// Package modal provides a confirmation dialog.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/walletbridge/internal/ui/overlay"
	"github.com/zjrosen/walletbridge/internal/ui/styles"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonDanger
)

// Config controls modal appearance.
type Config struct {
	Title          string
	Message        string
	ConfirmLabel   string // defaults to "Confirm"
	ConfirmVariant ButtonVariant
	MinWidth       int // 0 = 40
	// Tag is echoed in SubmitMsg and CancelMsg so the owner can tell
	// dialogs apart.
	Tag string
}

// SubmitMsg is sent when the user confirms.
type SubmitMsg struct {
	Tag string
}

// CancelMsg is sent when the user cancels with esc or the Cancel button.
type CancelMsg struct {
	Tag string
}

// Field identifies the focused button.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

// Model is the dialog state.
type Model struct {
	config  Config
	focused Field
	width   int
	height  int
}

// New creates a dialog focused on Confirm.
func New(cfg Config) Model {
	return Model{config: cfg, focused: FieldConfirm}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys and window size.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "left", "right", "h", "l":
			m.focused = 1 - m.focused
		case "y":
			return m, m.submit()
		case "n", "esc":
			return m, m.cancel()
		case "enter":
			if m.focused == FieldCancel {
				return m, m.cancel()
			}
			return m, m.submit()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	tag := m.config.Tag
	return func() tea.Msg { return SubmitMsg{Tag: tag} }
}

func (m Model) cancel() tea.Cmd {
	tag := m.config.Tag
	return func() tea.Msg { return CancelMsg{Tag: tag} }
}

// View renders the dialog box.
func (m Model) View() string {
	contentWidth := 40
	if m.config.MinWidth > contentWidth {
		contentWidth = m.config.MinWidth
	}
	if w := lipgloss.Width(m.config.Title); w > contentWidth {
		contentWidth = w
	}
	boxWidth := contentWidth + 2

	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		content.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth).
			Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var out strings.Builder
	out.WriteString(styles.TitleStyle.PaddingLeft(1).Render(m.config.Title))
	out.WriteString("\n")
	out.WriteString(divider)
	out.WriteString("\n")
	out.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(out.String())
}

func (m Model) renderButtons() string {
	confirm := styles.PrimaryButtonStyle
	if m.focused == FieldConfirm {
		confirm = styles.PrimaryButtonFocusedStyle
	}
	if m.config.ConfirmVariant == ButtonDanger {
		confirm = styles.DangerButtonStyle
		if m.focused == FieldConfirm {
			confirm = styles.DangerButtonFocusedStyle
		}
	}
	cancel := styles.SecondaryButtonStyle
	if m.focused == FieldCancel {
		cancel = styles.SecondaryButtonFocusedStyle
	}

	label := m.config.ConfirmLabel
	if label == "" {
		label = "Confirm"
	}
	return confirm.Render(label) + "  " + cancel.Render("Cancel")
}

// Overlay renders the dialog centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize sets the viewport used by Overlay.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Field {
	return m.focused
}

// Tag returns the dialog tag.
func (m Model) Tag() string {
	return m.config.Tag
}
