package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_FocusesConfirm(t *testing.T) {
	m := New(Config{Title: "Disconnect"})
	require.Equal(t, FieldConfirm, m.Focused())
}

func TestUpdate_EnterOnConfirmSubmits(t *testing.T) {
	m := New(Config{Title: "Disconnect", Tag: "osmosis"})
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.Equal(t, SubmitMsg{Tag: "osmosis"}, cmd())
}

func TestUpdate_TabThenEnterCancels(t *testing.T) {
	m := New(Config{Title: "Disconnect", Tag: "osmosis"})
	m, _ = m.Update(keyMsg("tab"))
	require.Equal(t, FieldCancel, m.Focused())

	_, cmd := m.Update(keyMsg("enter"))
	require.Equal(t, CancelMsg{Tag: "osmosis"}, cmd())
}

func TestUpdate_Shortcuts(t *testing.T) {
	m := New(Config{Tag: "x"})

	_, cmd := m.Update(keyMsg("y"))
	require.Equal(t, SubmitMsg{Tag: "x"}, cmd())

	_, cmd = m.Update(keyMsg("n"))
	require.Equal(t, CancelMsg{Tag: "x"}, cmd())

	_, cmd = m.Update(keyMsg("esc"))
	require.Equal(t, CancelMsg{Tag: "x"}, cmd())

	_, cmd = m.Update(keyMsg("q"))
	require.Nil(t, cmd)
}

func TestView_ShowsTitleMessageAndButtons(t *testing.T) {
	m := New(Config{
		Title:          "Disconnect wallet",
		Message:        "Disconnect keplr from osmosis?",
		ConfirmLabel:   "Disconnect",
		ConfirmVariant: ButtonDanger,
	})
	out := ansi.Strip(m.View())

	require.Contains(t, out, "Disconnect wallet")
	require.Contains(t, out, "Disconnect keplr from osmosis?")
	require.Contains(t, out, "Disconnect")
	require.Contains(t, out, "Cancel")
}

func TestOverlay_CentersOnBackground(t *testing.T) {
	m := New(Config{Title: "T"})
	m.SetSize(80, 20)
	out := m.Overlay("background")
	require.Contains(t, ansi.Strip(out), "background")
	require.Contains(t, ansi.Strip(out), "Confirm")
}
