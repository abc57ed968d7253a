package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/walletbridge/internal/registry"
	"github.com/zjrosen/walletbridge/internal/watcher"
)

var registryWatch bool

var registryValidateCmd = &cobra.Command{
	Use:   "registry:validate [dir]",
	Short: "Check chains.jsonc and assetlists.jsonc",
	Long: `Parse and validate a registry directory merged over the built-in
chains. The directory defaults to registry_dir from the config.

With --watch the directory is validated again after every edit until
interrupted.

Examples:
  walletbridge registry:validate ./registry
  walletbridge registry:validate --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		switch {
		case len(args) == 1:
			dir = args[0]
		case cfgErr != nil:
			return cfgErr
		default:
			dir = cfg.RegistryPath()
		}
		if dir == "" {
			return errors.New("no registry directory: pass one or set registry_dir")
		}

		out := cmd.OutOrStdout()
		err := validateRegistry(out, dir)
		if !registryWatch {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchRegistry(ctx, out, dir)
	},
}

func init() {
	registryValidateCmd.Flags().BoolVarP(&registryWatch, "watch", "w", false, "Validate again whenever the files change")
	rootCmd.AddCommand(registryValidateCmd)
}

func validateRegistry(out io.Writer, dir string) error {
	reg, err := registry.Load(dir)
	if err != nil {
		_, _ = fmt.Fprintf(out, "%s: invalid\n", dir)
		return err
	}
	_, err = fmt.Fprintf(out, "%s: ok (%d chains, %d asset lists)\n", dir, len(reg.Chains), len(reg.AssetLists))
	return err
}

// watchRegistry reports validation results after each edit until ctx ends.
func watchRegistry(ctx context.Context, out io.Writer, dir string) error {
	w, err := watcher.New(watcher.DefaultConfig(dir))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	events := w.Broker().Subscribe(ctx)
	if err := w.Start(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Payload.Type {
			case watcher.WatcherError:
				_, _ = fmt.Fprintf(out, "watch error: %v\n", ev.Payload.Error)
			case watcher.RegistryChanged:
				_, _ = fmt.Fprintf(out, "changed: %s\n", strings.Join(ev.Payload.Files, ", "))
				if err := validateRegistry(out, dir); err != nil {
					_, _ = fmt.Fprintf(out, "  %v\n", err)
				}
			}
		}
	}
}
