package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"snipman/internal/config"
	"snipman/internal/state"
	"snipman/internal/store"
)

// Version is set at build time
var Version = "0.1.0"

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds the snipman command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "snipman",
		Short: "snipman - keep, search and copy your shell command snippets",
		Long: `snipman keeps a list of command snippets with descriptions and optional
categories. Run it without arguments to browse and search them in the
terminal, or use the subcommands to manage the list from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("store", "", "snippet store backend: toml or sqlite")
	flags.String("store-path", "", "snippet store location (default depends on the backend)")
	flags.String("log-file", "", "log file location")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	local := cmd.Flags()
	local.Duration("tick-interval", 0, "redraw interval while idle")
	local.Bool("seed", false, "add example snippets when the store is empty")
	local.Bool("autosave", true, "save after every change")

	cmd.AddCommand(
		newAddCmd(opts),
		newRemoveCmd(opts),
		newEditCmd(opts),
		newListCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and applies env and flag overrides
func (o *rootOptions) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	svc := config.NewConfigService(o.configPath)
	if err := svc.BindFlags(flags); err != nil {
		return nil, err
	}

	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = svc.LoadFromPath(o.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openState opens the configured store and loads its snippets
func openState(ctx context.Context, cfg *config.Config) (store.Store, *state.AppState, error) {
	s, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	appState, err := store.LoadState(ctx, s)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return s, appState, nil
}

// Execute runs the command line with a context cancelled on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of snipman",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snipman version %s\n", Version)
		},
	}
}
