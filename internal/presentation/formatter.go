package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/walletbridge/internal/core"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatChains formats a list of chains as JSON
func (f *Formatter) FormatChains(chains []ChainDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(chains)
}

// FormatChainTable writes chains as aligned columns. Pretty names may hold
// wide characters, so widths are measured in terminal cells.
func (f *Formatter) FormatChainTable(chains []ChainDTO) error {
	header := []string{"", "NAME", "CHAIN ID", "PRETTY NAME", "PREFIX"}
	rows := make([][]string, 0, len(chains))
	for _, c := range chains {
		mark := " "
		if c.Enabled {
			mark = "*"
		}
		rows = append(rows, []string{mark, c.ChainName, c.ChainID, c.PrettyName, c.Bech32Prefix})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range append([][]string{header}, rows...) {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(f.writer, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// ChainMarkdown describes a chain and its assets as markdown.
func ChainMarkdown(c core.Chain, assets core.AssetList) string {
	var b strings.Builder
	title := c.PrettyName
	if title == "" {
		title = c.ChainName
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Name:** `%s`\n", c.ChainName)
	fmt.Fprintf(&b, "- **Chain ID:** `%s`\n", c.ChainID)
	fmt.Fprintf(&b, "- **Address prefix:** `%s`\n", c.Bech32Prefix)
	if c.NetworkType != "" {
		fmt.Fprintf(&b, "- **Network:** %s\n", c.NetworkType)
	}
	if c.Slip44 != 0 {
		fmt.Fprintf(&b, "- **SLIP-44:** %d\n", c.Slip44)
	}

	if len(c.Fees.FeeTokens) > 0 {
		b.WriteString("\n## Fees\n\n| Denom | Low | Average | High |\n|---|---|---|---|\n")
		for _, t := range c.Fees.FeeTokens {
			fmt.Fprintf(&b, "| %s | %g | %g | %g |\n", t.Denom, t.LowGasPrice, t.AverageGasPrice, t.HighGasPrice)
		}
	}

	endpoints := func(heading string, eps []core.APIEndpoint) {
		if len(eps) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", heading)
		for _, e := range eps {
			if e.Provider != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", e.Address, e.Provider)
			} else {
				fmt.Fprintf(&b, "- %s\n", e.Address)
			}
		}
	}
	endpoints("RPC", c.APIs.RPC)
	endpoints("REST", c.APIs.REST)

	if len(assets.Assets) > 0 {
		b.WriteString("\n## Assets\n\n| Symbol | Name | Base |\n|---|---|---|\n")
		for _, a := range assets.Assets {
			fmt.Fprintf(&b, "| %s | %s | `%s` |\n", a.Symbol, a.Name, a.Base)
		}
	}
	return b.String()
}
