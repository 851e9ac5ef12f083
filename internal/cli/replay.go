package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/match"
	"github.com/spf13/cobra"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	var (
		dir  string
		from int
	)

	cmd := &cobra.Command{
		Use:   "replay <game-id>",
		Short: "Step through a saved replay",
		Long:  `Prints one line per recorded action of a replay saved by simulate --replay-dir.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			replay, err := match.LoadReplayFromFile(dir, id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tAction\tRound\tPhase\tStep\tChecksum")
			fmt.Fprintln(w, "─\t──────\t─────\t─────\t────\t────────")
			for i := max(from, 0); i < replay.Size(); i++ {
				frame := replay.FrameAt(i)
				g, err := frame.Game()
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				step := "-"
				if r, ok := g.ProductionStep(); ok {
					step = r.String()
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
					i, frame.Action, g.CurrentRound, g.CurrentPhase, step, game.Checksum(g)[:12])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "replays", "Directory holding saved replays")
	cmd.Flags().IntVar(&from, "from", 0, "First frame to print")

	return cmd
}
