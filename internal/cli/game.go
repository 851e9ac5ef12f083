package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var (
		viewer string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "status <game-id>",
		Short: "Show a stored match",
		Long: `Shows a stored match as seen by one player. Without --viewer every hand is
hidden.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			viewerID := uuid.Nil
			if viewer != "" {
				if viewerID, err = parseID("viewer", viewer); err != nil {
					return err
				}
			}

			st, err := a.manager.Status(cmd.Context(), id, viewerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			printStatus(out, st)
			return nil
		}),
	}

	cmd.Flags().StringVar(&viewer, "viewer", "", "Player ID whose hand is shown")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as JSON")

	return cmd
}

// NewScoresCommand creates the scores command
func NewScoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores <game-id>",
		Short: "Show the final scores of a finished match",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			if _, err := a.manager.Scores(cmd.Context(), id); err != nil {
				return err
			}
			st, err := a.manager.Status(cmd.Context(), id, uuid.Nil)
			if err != nil {
				return err
			}
			printScores(cmd.OutOrStdout(), st)
			return nil
		}),
	}

	return cmd
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored matches, most recent first",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			summaries, err := a.manager.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No matches stored")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tState\tPhase\tRound\tPlayers\tUpdated")
			fmt.Fprintln(w, "──\t─────\t─────\t─────\t───────\t───────")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					s.ID, s.State, s.Phase, s.Round, s.Players,
					s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		}),
	}

	return cmd
}

func parseID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", what, s, err)
	}
	return id, nil
}

func printStatus(out io.Writer, st *game.GameStatus) {
	fmt.Fprintf(out, "Game:      %s\n", st.GameID)
	fmt.Fprintf(out, "State:     %s\n", st.State)
	fmt.Fprintf(out, "Phase:     %s\n", st.Phase)
	fmt.Fprintf(out, "Round:     %d\n", st.Round)
	if st.ProductionStep != nil {
		fmt.Fprintf(out, "Step:      %s\n", *st.ProductionStep)
	}
	fmt.Fprintf(out, "Direction: %s\n", st.DraftDirection)
	fmt.Fprintf(out, "Deck:      %d cards\n\n", st.DeckSize)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Player\tHand\tDrafted\tBuilding\tEmpire\tResources\tReady")
	fmt.Fprintln(w, "──────\t────\t───────\t────────\t──────\t─────────\t─────")
	for _, p := range st.Players {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%t\n",
			p.Name, p.HandCount, len(p.DraftingArea), len(p.ConstructionArea),
			len(p.Empire), p.Resources.Amounts(), p.IsReady)
	}
	_ = w.Flush()

	if st.Viewer != nil && len(st.Viewer.Hand) > 0 {
		fmt.Fprintf(out, "\nHand of %s:\n", st.Viewer.Name)
		printCards(out, st.Viewer.Hand)
	}
}

func printScores(out io.Writer, st *game.GameStatus) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Player\tScore\tCards\tCombo\tGenerals\tFinanciers\tEmpire")
	fmt.Fprintln(w, "──────\t─────\t─────\t─────\t────────\t──────────\t──────")
	for _, p := range st.Players {
		var s game.Score
		if p.Score != nil {
			s = *p.Score
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			p.Name, st.FinalScores[p.ID], s.Gross, s.Combo, s.General, s.Financier, len(p.Empire))
	}
	_ = w.Flush()

	winner := "none (tie)"
	if st.WinnerID != nil {
		for _, p := range st.Players {
			if p.ID == *st.WinnerID {
				winner = p.Name
			}
		}
	}
	fmt.Fprintf(out, "\nWinner: %s\n", winner)
}
