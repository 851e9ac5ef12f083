package game

import (
	"testing"

	"github.com/iaww/iaww-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(nil, Ruleset{HandSize: 3})
	assert.Equal(t, 3, e.Rules().HandSize)
	assert.Equal(t, 150, e.Rules().DeckSize)
	assert.Equal(t, 4, e.Rules().Rounds)
	assert.Equal(t, 5, e.Rules().KrystalliumRate)
}

func TestNewGame(t *testing.T) {
	e := newTestEngine(t)

	g, err := e.NewGame("Alice", "Bob", "Carol")
	require.NoError(t, err)
	require.Len(t, g.Players, 3)
	assert.Equal(t, g.Players[0].ID, g.HostID)
	assert.Equal(t, "Alice", g.Host().Name)
	assert.Equal(t, rules.GameStateLobby, g.State)
	assert.Equal(t, rules.PhaseDraft, g.CurrentPhase)
	assert.Equal(t, 1, g.CurrentRound)
	assert.Equal(t, rules.Clockwise, g.CurrentDraftDirection)

	_, err = e.NewGame("Alone")
	assert.ErrorIs(t, err, ErrRuleViolation)

	_, err = e.NewGame("A", "B", "C", "D", "E", "F")
	assert.ErrorIs(t, err, ErrRuleViolation)

	_, err = e.NewGame("A", " ")
	assert.ErrorIs(t, err, ErrRuleViolation)
}

func TestStartGame_DealsHands(t *testing.T) {
	e := NewEngine(zaptest.NewLogger(t), DefaultRuleset())
	deck := fillerDeck(150)
	g := startedGame(t, e, deck, "Alice", "Bob", "Carol")

	assert.Equal(t, rules.GameStateInProgress, g.State)
	for _, p := range g.Players {
		assert.Len(t, p.Hand, 7)
	}
	assert.Len(t, g.DevelopmentDeck, 150-21)
	assert.Equal(t, 150, g.CardCount())

	err := e.StartGame(g, fillerDeck(10))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDealHands_ExtraCardDraw(t *testing.T) {
	e := newTestEngine(t)
	g := startedGame(t, e, fillerDeck(20))
	alice, bob := g.Players[0], g.Players[1]

	drawer := testCard("Time Machine", CardTypeDiscovery, "{S}", "{S}")
	drawer.SpecialAbility = AbilityExtraCardDraw
	alice.Empire = append(alice.Empire, drawer)
	alice.Hand = alice.Hand[:0]
	bob.Hand = bob.Hand[:0]

	e.DealHands(g)
	assert.Len(t, alice.Hand, 3)
	assert.Len(t, bob.Hand, 2)
}

func TestDealHands_DeckExhausted(t *testing.T) {
	e := newTestEngine(t)
	g := startedGame(t, e, fillerDeck(3))

	assert.Len(t, g.Players[0].Hand, 2)
	assert.Len(t, g.Players[1].Hand, 1)
	assert.Empty(t, g.DevelopmentDeck)
}
