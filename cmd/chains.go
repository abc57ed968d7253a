package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zjrosen/walletbridge/internal/config"
	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/presentation"
	"github.com/zjrosen/walletbridge/internal/registry"
	"github.com/zjrosen/walletbridge/internal/ui/markdown"
)

var (
	chainsJSON bool
	showWidth  int
	showStyle  string
)

var chainsListCmd = &cobra.Command{
	Use:   "chains:list",
	Short: "List chains known to the registry",
	Long: `List every chain in the registry. Chains enabled in the config are
marked with *. When the config lists no chains, every chain is enabled.

Examples:
  walletbridge chains:list
  walletbridge chains:list --json | jq '.[] | select(.enabled) | .chain_id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, reg, err := loadFullRegistry()
		if err != nil {
			return err
		}
		dtos := make([]presentation.ChainDTO, len(reg.Chains))
		for i, ch := range reg.Chains {
			assets, _ := reg.AssetList(ch.ChainName)
			dtos[i] = presentation.FromChain(ch, assets, chainEnabled(c, ch.ChainName))
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if chainsJSON {
			return formatter.FormatChains(dtos)
		}
		return formatter.FormatChainTable(dtos)
	},
}

var chainsShowCmd = &cobra.Command{
	Use:   "chains:show <chain>",
	Short: "Describe one chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, reg, err := loadFullRegistry()
		if err != nil {
			return err
		}
		ch, ok := reg.Chain(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrUnknownChain, args[0])
		}
		assets, _ := reg.AssetList(ch.ChainName)

		style := showStyle
		if style == "" {
			style = markdown.StyleFor(cmd.OutOrStdout())
		}
		r, err := markdown.New(showWidth, style)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(presentation.ChainMarkdown(ch, assets))
		if err != nil {
			return fmt.Errorf("rendering %s: %w", ch.ChainName, err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var chainsEnableCmd = &cobra.Command{
	Use:   "chains:enable <chain>...",
	Short: "Add chains to the config",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, reg, err := loadFullRegistry()
		if err != nil {
			return err
		}
		chains := slices.Clone(c.Chains)
		for _, name := range args {
			if _, ok := reg.Chain(name); !ok {
				return fmt.Errorf("%w: %s", core.ErrUnknownChain, name)
			}
			if !slices.Contains(chains, name) {
				chains = append(chains, name)
			}
		}
		return saveChains(cmd, chains)
	},
}

var chainsDisableCmd = &cobra.Command{
	Use:   "chains:disable <chain>...",
	Short: "Remove chains from the config",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, reg, err := loadFullRegistry()
		if err != nil {
			return err
		}
		chains := slices.Clone(c.Chains)
		if len(chains) == 0 {
			// An empty list means every chain; make it explicit first.
			chains = reg.Names()
		}
		chains = slices.DeleteFunc(chains, func(name string) bool {
			return slices.Contains(args, name)
		})
		if len(chains) == 0 {
			return fmt.Errorf("at least one chain must stay enabled")
		}
		return saveChains(cmd, chains)
	},
}

func init() {
	chainsListCmd.Flags().BoolVar(&chainsJSON, "json", false, "Print chains as JSON")
	chainsShowCmd.Flags().IntVarP(&showWidth, "width", "w", 80, "Word wrap width")
	chainsShowCmd.Flags().StringVar(&showStyle, "style", "", "Glamour style: dark, light or notty (default: detect)")
	rootCmd.AddCommand(chainsListCmd, chainsShowCmd, chainsEnableCmd, chainsDisableCmd)
}

// loadFullRegistry returns the config and the whole registry, not narrowed
// to the configured chains.
func loadFullRegistry() (config.Config, *registry.Registry, error) {
	if cfgErr != nil {
		return config.Config{}, nil, cfgErr
	}
	reg, err := registry.Load(cfg.RegistryPath())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading chain registry: %w", err)
	}
	return cfg, reg, nil
}

func chainEnabled(c config.Config, name string) bool {
	return len(c.Chains) == 0 || slices.Contains(c.Chains, name)
}

func saveChains(cmd *cobra.Command, chains []string) error {
	path := configPath()
	if err := config.SaveChains(path, chains); err != nil {
		return fmt.Errorf("saving chains: %w", err)
	}
	cfg.Chains = chains
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "chains: %v (saved to %s)\n", chains, path)
	return err
}
