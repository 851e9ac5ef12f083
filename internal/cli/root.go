package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/iaww/iaww-server-go/internal/config"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/match"
	"github.com/iaww/iaww-server-go/internal/metrics"
	"github.com/iaww/iaww-server-go/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iaww",
		Short: "It's a Wonderful World rules engine",
		Long: `Runs and inspects It's a Wonderful World matches against the configured store.

Examples:
  iaww simulate --players Alice,Bob,Carol --seed 42
  iaww list
  iaww status <game-id> --viewer <player-id>
  iaww scores <game-id>
  iaww deck --seed 7 --size 20
  iaww replay <game-id> --dir replays`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file (default ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewScoresCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewDeckCommand())
	rootCmd.AddCommand(NewReplayCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is everything a command needs, built from configuration.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     store.Store
	collector *metrics.Collector
	manager   *match.Manager
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var recorder metrics.Recorder = metrics.Nop{}
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector, err = metrics.NewCollector(cfg.Metrics.Namespace)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		recorder = collector
	}

	engine := game.NewEngine(logger, cfg.Rules.Ruleset())
	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     s,
		collector: collector,
		manager:   match.NewManager(engine, s, recorder, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// withApp builds the app for the duration of one command.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}
