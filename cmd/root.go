package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/walletbridge/internal/app"
	"github.com/zjrosen/walletbridge/internal/config"
	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/paths"
	"github.com/zjrosen/walletbridge/internal/provider"
	"github.com/zjrosen/walletbridge/internal/tracing"
	"github.com/zjrosen/walletbridge/internal/ui/styles"
	"github.com/zjrosen/walletbridge/internal/ui/walletmodal"
	"github.com/zjrosen/walletbridge/internal/wallet"
	"github.com/zjrosen/walletbridge/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the view.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "walletbridge",
	Short: "Connect wallets to Cosmos chains from the terminal",
	Long: `A terminal user interface that connects wallets to Cosmos chains.

Chains come from the built-in chain registry, optionally extended by a
registry directory. Select a chain and press enter to pick a wallet.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .walletbridge/config.yaml, then ~/.config/walletbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also WALLETBRIDGE_DEBUG=1; file from WALLETBRIDGE_LOG, default debug.log)")
	rootCmd.PersistentFlags().StringP("registry", "r", "",
		"directory with chains.jsonc and assetlists.jsonc")
	rootCmd.Flags().Bool("no-modal", false,
		"connect the first wallet directly instead of showing the wallet list")
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)
	_ = v.BindPFlag("registry_dir", rootCmd.PersistentFlags().Lookup("registry"))

	// Config lookup order:
	// 1. --config
	// 2. .walletbridge/config.yaml (current directory)
	// 3. ~/.config/walletbridge/config.yaml (user config)
	path := cfgFile
	if path == "" {
		found, ok := paths.FindConfig(".")
		if !ok {
			// No config file anywhere: write the commented default for the
			// user and carry on with defaults if that fails.
			found = paths.UserConfigFile()
			if err := config.WriteDefaultConfig(found); err != nil {
				found = ""
			}
		}
		path = found
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Load(v)
}

// configPath returns the file the running config was read from.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return paths.UserConfigFile()
}

// initLogging enables the debug log when requested and returns its cleanup.
func initLogging() (func(), error) {
	if !debugFlag && os.Getenv("WALLETBRIDGE_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("WALLETBRIDGE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if !debugFlag {
		// WALLETBRIDGE_DEBUG alone follows log_level; --debug logs everything.
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
	}
	log.Info(log.CatConfig, "walletbridge starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	cleanupLog, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanupLog()

	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	reg, err := cfg.LoadRegistry()
	if err != nil {
		return fmt.Errorf("loading chain registry: %w", err)
	}
	opts, err := cfg.ManagerOptions(reg, log.Writer(), tp.Tracer())
	if err != nil {
		return err
	}
	mgr, err := wallet.NewManager(opts)
	if err != nil {
		return fmt.Errorf("building wallet manager: %w", err)
	}

	// Watcher errors are not fatal; the dashboard works without it.
	registryDir := cfg.RegistryPath()
	var w *watcher.Watcher
	if registryDir != "" {
		w, err = startWatcher(registryDir)
		if err != nil {
			log.Warn(log.CatRegistry, "registry watcher disabled", "dir", registryDir, "error", err)
		}
	}

	zones := zone.New()
	defer zones.Close()

	hostOpts := provider.Options{
		Child: func(ctx context.Context) tea.Model {
			return app.New(ctx, app.Options{Watcher: w, RegistryDir: registryDir})
		},
		Zones:  zones,
		Tracer: tp.Tracer(),
	}
	noModal, _ := cmd.Flags().GetBool("no-modal")
	if cfg.Modal && !noModal {
		hostOpts.Modal = walletmodal.New(zones)
	}
	host := provider.New(mgr, hostOpts)

	p := tea.NewProgram(
		host,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	host.Close()
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// startWatcher watches dir for registry edits. It returns a nil watcher on
// error.
func startWatcher(dir string) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.DefaultConfig(dir))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
