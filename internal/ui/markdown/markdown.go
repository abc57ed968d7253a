// Package markdown renders chain descriptions as styled terminal output.
package markdown

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Glamour style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// noMarginStyle removes document margins from the base style.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with the settings used by the CLI.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// StyleFor picks a glamour style for out. Writers that are not color
// terminals get the plain style so piped output carries no escape codes.
func StyleFor(out io.Writer) string {
	o := termenv.NewOutput(out)
	if o.Profile == termenv.Ascii {
		return StylePlain
	}
	if o.HasDarkBackground() {
		return StyleDark
	}
	return StyleLight
}

// New creates a renderer that wraps at width using the named glamour style.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StylePlain
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name in use.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
