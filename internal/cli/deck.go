package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/game/deck"
	"github.com/spf13/cobra"
)

// NewDeckCommand creates the deck command
func NewDeckCommand() *cobra.Command {
	var (
		seed uint64
		size int
	)

	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Print a generated development deck",
		Long: `Prints the deck a match started with the same seed would use. The size
defaults to the configured deck size.`,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if size <= 0 {
				size = a.cfg.Rules.DeckSize
			}
			cards := deck.NewGenerator(seed).Generate(size)
			printCards(cmd.OutOrStdout(), cards)
			return nil
		}),
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "Deck generator seed")
	cmd.Flags().IntVar(&size, "size", 0, "Number of cards")

	return cmd
}

func printCards(out io.Writer, cards []*game.Card) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tType\tCost\tProduction\tVP\tRecycle\tAbility")
	fmt.Fprintln(w, "────\t────\t────\t──────────\t──\t───────\t───────")
	for _, c := range cards {
		ability := "-"
		if c.SpecialAbility != game.AbilityNone {
			ability = c.SpecialAbility.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Name, c.Type, c.ConstructionCost, c.Production,
			c.VictoryPoints, c.RecyclingBonus.Symbol(), ability)
	}
	_ = w.Flush()
}
