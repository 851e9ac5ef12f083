package game

import (
	"fmt"
	"testing"

	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(zaptest.NewLogger(t), Ruleset{HandSize: 2})
}

func testCard(name string, cardType CardType, cost, production string) *Card {
	card := NewCard(name, cardType)
	card.ConstructionCost = resources.MustParseAmounts(cost)
	card.Production = resources.MustParseAmounts(production)
	card.VictoryPoints = 1
	return card
}

// fillerDeck returns n cards costing one Materials and producing one Energy.
func fillerDeck(n int) []*Card {
	deck := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, testCard(fmt.Sprintf("Card %d", i), CardType(i%NumCardTypes), "{M}", "{E}"))
	}
	return deck
}

func startedGame(t *testing.T, e *Engine, deck []*Card, names ...string) *Game {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Alice", "Bob"}
	}
	g, err := e.NewGame(names[0], names[1:]...)
	require.NoError(t, err)
	require.NoError(t, e.StartGame(g, deck))
	return g
}

// draftAll drafts the first card of every hand until the draft ends.
func draftAll(t *testing.T, e *Engine, g *Game) {
	t.Helper()
	for guard := 0; g.CurrentPhase == rules.PhaseDraft; guard++ {
		require.Less(t, guard, 1000, "draft did not terminate")
		for _, p := range g.Players {
			if g.CurrentPhase != rules.PhaseDraft {
				break
			}
			if p.HasDraftedThisRound || len(p.Hand) == 0 {
				continue
			}
			require.NoError(t, e.DraftCard(g, p.ID, p.Hand[0].ID))
		}
	}
}

// planningGame returns a two-player game that has finished its first draft.
func planningGame(t *testing.T, e *Engine, deck []*Card) *Game {
	t.Helper()
	g := startedGame(t, e, deck)
	draftAll(t, e, g)
	require.Equal(t, rules.PhasePlanning, g.CurrentPhase)
	return g
}

// discardDrafted clears every drafting area so players may get ready.
func discardDrafted(t *testing.T, e *Engine, g *Game) {
	t.Helper()
	for _, p := range g.Players {
		for len(p.DraftingArea) > 0 {
			_, err := e.DiscardCard(g, p.ID, p.DraftingArea[0].ID)
			require.NoError(t, err)
		}
	}
}

func readyAll(t *testing.T, e *Engine, g *Game) RoundResult {
	t.Helper()
	var result RoundResult
	for _, p := range g.Players {
		var err error
		result, err = e.SetPlayerReady(g, p.ID)
		require.NoError(t, err)
	}
	return result
}
