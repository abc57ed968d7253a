package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 5, Height: 3}, "XX", "AAAAA\nAAAAA\nAAAAA")
	require.Equal(t, []string{"AAAAA", "AXXAA", "AAAAA"}, strings.Split(out, "\n"))
}

func TestPlace_TopAndBottomWithPadding(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA"

	top := strings.Split(Place(Config{Width: 5, Height: 4, Position: Top, PadY: 1}, "XX", bg), "\n")
	require.Equal(t, "AAAAA", top[0])
	require.Equal(t, "AXXAA", top[1])

	bottom := strings.Split(Place(Config{Width: 5, Height: 4, Position: Bottom}, "XX", bg), "\n")
	require.Equal(t, "AXXAA", bottom[3])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 4, Height: 3}, "X", "AB")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "AB", lines[0])
	require.Equal(t, " X  ", lines[1])
}

func TestPlace_ClipsWideForeground(t *testing.T) {
	out := Place(Config{Width: 3, Height: 2}, "XXXXX", "AAA\nAAA")
	lines := strings.Split(out, "\n")
	require.Equal(t, "XXX", lines[0])
	require.Equal(t, "AAA", lines[1])
}

func TestPlace_KeepsStyledBackground(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	bg := style.Render("AAAAAA")
	out := Place(Config{Width: 6, Height: 1}, "XX", bg)
	require.Equal(t, "AAXXAA", ansi.Strip(out))
}
