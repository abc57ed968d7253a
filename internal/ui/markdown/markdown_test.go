package markdown

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestStyleFor_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, StylePlain, StyleFor(&buf))
}

func TestRender_Plain(t *testing.T) {
	r, err := New(40, "")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())
	require.Equal(t, StylePlain, r.Style())

	out, err := r.Render("# Osmosis\n\n- **Chain ID:** `osmosis-1`\n")
	require.NoError(t, err)
	require.Equal(t, out, ansi.Strip(out))
	require.Contains(t, out, "Osmosis")
	require.Contains(t, out, "osmosis-1")
}

func TestRender_DarkStyle(t *testing.T) {
	r, err := New(40, StyleDark)
	require.NoError(t, err)

	out, err := r.Render("**bold**")
	require.NoError(t, err)
	require.Contains(t, ansi.Strip(out), "bold")
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(40, "no-such-style")
	require.Error(t, err)
}
