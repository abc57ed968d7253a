package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel renders content in a rounded box with title set into the top
// border: ╭─ Title ───╮. Lines wider than the box are truncated.
func Panel(title, content string, width int, focused bool) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(color)

	label := ""
	if title != "" {
		label = " " + ansi.Truncate(title, inner-3, "…") + " "
	}
	fill := inner - 1 - ansi.StringWidth(label)
	if fill < 0 {
		fill = 0
	}
	top := border.Render("╭─") + TitleStyle.Render(label) + border.Render(strings.Repeat("─", fill)+"╮")

	var b strings.Builder
	b.WriteString(top)
	for _, line := range strings.Split(content, "\n") {
		line = ansi.Truncate(line, inner, "")
		pad := inner - ansi.StringWidth(line)
		b.WriteString("\n")
		b.WriteString(border.Render("│"))
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(border.Render("│"))
	}
	b.WriteString("\n")
	b.WriteString(border.Render("╰" + strings.Repeat("─", inner) + "╯"))
	return b.String()
}
