package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredCard(cardType CardType, vp, combo, general, financier int) *Card {
	card := testCard("Scored", cardType, "{M}", "{M}")
	card.VictoryPoints = vp
	card.ComboVictoryPoints = combo
	card.GeneralBonus = general
	card.FinancierBonus = financier
	return card
}

func TestScoreBreakdown(t *testing.T) {
	p := NewPlayer("Alice")
	p.Empire = append(p.Empire,
		scoredCard(CardTypeStructure, 3, 2, 1, 0),
		scoredCard(CardTypeStructure, 2, 1, 0, 1),
		scoredCard(CardTypeStructure, 1, 0, 0, 0),
		scoredCard(CardTypeVehicle, 4, 2, 1, 1),
	)
	p.Characters.Add(resources.General, 2)
	p.Characters.Add(resources.Financier, 1)

	s := ScoreBreakdown(p)
	assert.Equal(t, 10, s.Gross)
	// Three structures: (2+1+0) x 2. The lone vehicle adds nothing.
	assert.Equal(t, 6, s.Combo)
	assert.Equal(t, 4, s.General)
	assert.Equal(t, 3, s.Financier)
	assert.Equal(t, 23, s.Total())

	assert.Zero(t, ScoreBreakdown(NewPlayer("Empty")).Total())
}

func TestDetermineWinner(t *testing.T) {
	t.Run("highest score", func(t *testing.T) {
		a, b := NewPlayer("A"), NewPlayer("B")
		a.Empire = append(a.Empire, scoredCard(CardTypeStructure, 5, 0, 0, 0))
		b.Empire = append(b.Empire, scoredCard(CardTypeStructure, 3, 0, 0, 0))
		winner := winnerOf(a, b)
		require.NotNil(t, winner)
		assert.Equal(t, a.ID, *winner)
	})

	t.Run("tie broken by empire size", func(t *testing.T) {
		a, b := NewPlayer("A"), NewPlayer("B")
		a.Empire = append(a.Empire, scoredCard(CardTypeStructure, 4, 0, 0, 0))
		b.Empire = append(b.Empire,
			scoredCard(CardTypeStructure, 2, 0, 0, 0),
			scoredCard(CardTypeVehicle, 2, 0, 0, 0))
		winner := winnerOf(a, b)
		require.NotNil(t, winner)
		assert.Equal(t, b.ID, *winner)
	})

	t.Run("tie broken by character tokens", func(t *testing.T) {
		a, b := NewPlayer("A"), NewPlayer("B")
		a.Empire = append(a.Empire, scoredCard(CardTypeStructure, 3, 0, 0, 0))
		a.Characters.Add(resources.General, 1)
		b.Empire = append(b.Empire, scoredCard(CardTypeStructure, 4, 0, 0, 0))
		winner := winnerOf(a, b)
		require.NotNil(t, winner)
		assert.Equal(t, a.ID, *winner)
	})

	t.Run("unresolved tie", func(t *testing.T) {
		a, b := NewPlayer("A"), NewPlayer("B")
		a.Empire = append(a.Empire, scoredCard(CardTypeStructure, 3, 0, 0, 0))
		a.Characters.Add(resources.Financier, 1)
		b.Empire = append(b.Empire, scoredCard(CardTypeVehicle, 3, 0, 0, 0))
		b.Characters.Add(resources.General, 1)
		assert.Nil(t, winnerOf(a, b))
	})

	t.Run("tiebreak ignores players already behind", func(t *testing.T) {
		a, b, c := NewPlayer("A"), NewPlayer("B"), NewPlayer("C")
		a.Empire = append(a.Empire, scoredCard(CardTypeStructure, 3, 0, 0, 0))
		b.Empire = append(b.Empire, scoredCard(CardTypeStructure, 3, 0, 0, 0))
		c.Empire = append(c.Empire,
			scoredCard(CardTypeStructure, 1, 0, 0, 0),
			scoredCard(CardTypeVehicle, 1, 0, 0, 0),
			scoredCard(CardTypeResearch, 0, 0, 0, 0))
		assert.Nil(t, winnerOf(a, b, c))
	})
}

func winnerOf(players ...*Player) *uuid.UUID {
	scores := make(map[uuid.UUID]int, len(players))
	for _, p := range players {
		scores[p.ID] = ScoreBreakdown(p).Total()
	}
	return determineWinner(players, scores)
}

func TestCalculateFinalScores(t *testing.T) {
	e := newTestEngine(t)
	g := startedGame(t, e, fillerDeck(10))
	alice, bob := g.Players[0], g.Players[1]
	alice.Empire = append(alice.Empire, scoredCard(CardTypeStructure, 5, 0, 0, 0))
	bob.Empire = append(bob.Empire, scoredCard(CardTypeStructure, 2, 0, 0, 0))

	_, err := e.CalculateFinalScores(g)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, g.FinalScores)

	g.State = rules.GameStateFinished
	g.CurrentPhase = rules.PhaseGameOver
	scores, err := e.CalculateFinalScores(g)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{alice.ID: 5, bob.ID: 2}, scores)
	require.NotNil(t, g.WinnerID)
	assert.Equal(t, alice.ID, *g.WinnerID)

	// Figures are fixed once computed.
	bob.Empire = append(bob.Empire, scoredCard(CardTypeVehicle, 9, 0, 0, 0))
	scores[alice.ID] = 0
	again, err := e.CalculateFinalScores(g)
	require.NoError(t, err)
	assert.Equal(t, 5, again[alice.ID])
	assert.Equal(t, 2, again[bob.ID])
	assert.Equal(t, alice.ID, *g.WinnerID)
}
