package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/match"
	"github.com/iaww/iaww-server-go/internal/metrics"
	"github.com/spf13/cobra"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		players     []string
		seed        uint64
		showMetrics bool
		replayDir   string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a full match with the built-in policy",
		Long: `Creates a match for the given players, starts it with a deck generated from
the seed and plays every seat until the game is over. The match is kept in
the configured store.`,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if len(players) == 0 {
				return fmt.Errorf("at least one player is required")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			// The metrics flag enables collection for this run only.
			if showMetrics && a.collector == nil {
				collector, err := metrics.NewCollector(a.cfg.Metrics.Namespace)
				if err != nil {
					return err
				}
				a.collector = collector
				a.manager = match.NewManager(a.manager.Engine(), a.store, collector, a.logger)
			}

			var recorder *match.ReplayRecorder
			if replayDir != "" {
				recorder = match.NewReplayRecorder(a.logger, replayDir)
				a.manager.RecordReplays(recorder)
			}

			g, err := a.manager.Create(ctx, players[0], players[1:]...)
			if err != nil {
				return fmt.Errorf("failed to create match: %w", err)
			}
			if err := a.manager.Start(ctx, g.ID, seed); err != nil {
				return fmt.Errorf("failed to start match: %w", err)
			}
			if _, err := match.NewAutoplayer(a.manager, a.logger).Play(ctx, g.ID); err != nil {
				return err
			}

			st, err := a.manager.Status(ctx, g.ID, uuid.Nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Game %s finished (seed %d)\n\n", g.ID, seed)
			printScores(out, st)

			if recorder != nil {
				if err := recorder.SaveReplay(g.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Replay saved to %s\n", replayDir)
			}

			if showMetrics && a.collector != nil {
				fmt.Fprintln(out)
				return a.collector.WriteText(out)
			}
			return nil
		}),
	}

	cmd.Flags().StringSliceVar(&players, "players", []string{"Alice", "Bob", "Carol"},
		"Comma-separated player names, host first")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Deck generator seed")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print collected metrics after the match")
	cmd.Flags().StringVar(&replayDir, "replay-dir", "", "Save a replay of the match into this directory")

	return cmd
}
