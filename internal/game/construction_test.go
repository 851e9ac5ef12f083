package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// buildable returns Alice and her first drafted card with the given cost,
// already moved to the construction area.
func buildable(t *testing.T, e *Engine, g *Game, cost string) (*Player, *Card) {
	t.Helper()
	alice := g.Players[0]
	card := alice.DraftingArea[0]
	card.ConstructionCost = resources.MustParseAmounts(cost)
	require.NoError(t, e.MoveToConstruction(g, alice.ID, card.ID))
	return alice, card
}

func TestAddResourceToCard_CompletesCard(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice, card := buildable(t, e, g, "{M2}{E}")
	alice.Resources = resources.NewPool(resources.MustParseAmounts("{M3}{E}"))
	total := g.CardCount()

	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Energy))
	assert.Contains(t, alice.ConstructionArea, card, "partial investment keeps the card under construction")
	assert.False(t, card.IsConstructed(0))

	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials))
	assert.NotContains(t, alice.ConstructionArea, card)
	assert.Contains(t, alice.Empire, card)
	assert.Equal(t, 2, card.Invested(resources.Materials))
	assert.Equal(t, 1, alice.Resources.Get(resources.Materials))
	assert.Zero(t, alice.Resources.Get(resources.Energy))
	assert.Equal(t, total, g.CardCount())
}

func TestAddResourceToCard_Rejections(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice, card := buildable(t, e, g, "{M}{E2}")
	alice.Resources = resources.NewPool(resources.MustParseAmounts("{M2}{S}"))

	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials))

	cases := []struct {
		name     string
		playerID uuid.UUID
		cardID   uuid.UUID
		resource resources.ResourceType
		want     error
	}{
		{"not in cost", alice.ID, card.ID, resources.Science, ErrRuleViolation},
		{"fully invested", alice.ID, card.ID, resources.Materials, ErrRuleViolation},
		{"none held", alice.ID, card.ID, resources.Energy, resources.ErrInsufficient},
		{"unknown card", alice.ID, uuid.New(), resources.Energy, ErrNotFound},
		{"unknown player", uuid.New(), card.ID, resources.Energy, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := Checksum(g)
			err := e.AddResourceToCard(g, tc.playerID, tc.cardID, tc.resource)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, Checksum(g))
		})
	}

	_, err := e.DiscardCard(g, alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddResourceToCard_InsufficientIsRuleViolation(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice, card := buildable(t, e, g, "{G}")

	err := e.AddResourceToCard(g, alice.ID, card.ID, resources.Gold)
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.ErrorIs(t, err, resources.ErrInsufficient)
	assert.Zero(t, card.Invested(resources.Gold))
}

func TestConstruction_RequiresPlanning(t *testing.T) {
	e := newTestEngine(t)
	g := startedGame(t, e, fillerDeck(10))
	alice := g.Players[0]
	card := alice.Hand[0]

	assert.ErrorIs(t, e.MoveToConstruction(g, alice.ID, card.ID), ErrInvalidState)
	assert.ErrorIs(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials), ErrInvalidState)
	_, err := e.DiscardCard(g, alice.ID, card.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.SetPlayerReady(g, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDiscardCard_GrantsRecyclingBonus(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice := g.Players[0]
	card := alice.DraftingArea[0]
	card.RecyclingBonus = resources.Science
	total := g.CardCount()

	bonus, err := e.DiscardCard(g, alice.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, resources.Amounts{resources.Science: 1}, bonus)
	assert.Equal(t, 1, alice.Resources.Get(resources.Science))
	assert.NotContains(t, alice.DraftingArea, card)
	assert.Contains(t, g.DiscardPile, card)
	assert.Equal(t, total, g.CardCount())

	_, err = e.DiscardCard(g, alice.ID, card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveToConstruction(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice := g.Players[0]
	card := alice.DraftingArea[0]
	total := g.CardCount()

	require.NoError(t, e.MoveToConstruction(g, alice.ID, card.ID))
	assert.Contains(t, alice.ConstructionArea, card)
	assert.NotContains(t, alice.DraftingArea, card)
	assert.Equal(t, total, g.CardCount())

	assert.ErrorIs(t, e.MoveToConstruction(g, alice.ID, card.ID), ErrNotFound)
}

func TestMoveToConstruction_FreeCardIsBuilt(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice, card := buildable(t, e, g, "")

	assert.Contains(t, alice.Empire, card)
}

func TestReducedConstructionCost(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice := g.Players[0]

	reducer := testCard("Research Lab", CardTypeResearch, "{S}", "{S}")
	reducer.SpecialAbility = AbilityReducedConstructionCost
	alice.Empire = append(alice.Empire, reducer)

	_, card := buildable(t, e, g, "{M3}{E}")
	assert.Equal(t, resources.MustParseAmounts("{M2}{E}"), card.EffectiveCost(alice.CostReduction()))

	alice.Resources = resources.NewPool(resources.MustParseAmounts("{M3}{E}"))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials))
	err := e.AddResourceToCard(g, alice.ID, card.ID, resources.Materials)
	assert.ErrorIs(t, err, ErrRuleViolation, "reduced entry is already satisfied")

	require.NoError(t, e.AddResourceToCard(g, alice.ID, card.ID, resources.Energy))
	assert.Contains(t, alice.Empire, card)
}

func TestReducedConstructionCost_SettlesConstructionArea(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice := g.Players[0]
	waiting, reducer := alice.DraftingArea[0], alice.DraftingArea[1]

	waiting.ConstructionCost = resources.MustParseAmounts("{G2}")
	reducer.ConstructionCost = resources.MustParseAmounts("{E}")
	reducer.SpecialAbility = AbilityReducedConstructionCost
	alice.Resources = resources.NewPool(resources.MustParseAmounts("{G}{E}"))

	require.NoError(t, e.MoveToConstruction(g, alice.ID, waiting.ID))
	require.NoError(t, e.MoveToConstruction(g, alice.ID, reducer.ID))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, waiting.ID, resources.Gold))
	assert.Contains(t, alice.ConstructionArea, waiting)

	require.NoError(t, e.AddResourceToCard(g, alice.ID, reducer.ID, resources.Energy))
	assert.Contains(t, alice.Empire, reducer)
	assert.Contains(t, alice.Empire, waiting, "one gold now covers the reduced cost")
	assert.Empty(t, alice.ConstructionArea)
}

func TestReducedConstructionCost_SettlesEveryPaidOffCard(t *testing.T) {
	e := NewEngine(zaptest.NewLogger(t), Ruleset{HandSize: 3})
	g := planningGame(t, e, fillerDeck(12))
	alice := g.Players[0]
	require.Len(t, alice.DraftingArea, 3)
	first, second, reducer := alice.DraftingArea[0], alice.DraftingArea[1], alice.DraftingArea[2]

	first.ConstructionCost = resources.MustParseAmounts("{S2}")
	second.ConstructionCost = resources.MustParseAmounts("{G2}")
	reducer.ConstructionCost = resources.MustParseAmounts("{E}")
	reducer.SpecialAbility = AbilityReducedConstructionCost
	alice.Resources = resources.NewPool(resources.MustParseAmounts("{S}{G}{E}"))

	for _, card := range []*Card{first, second, reducer} {
		require.NoError(t, e.MoveToConstruction(g, alice.ID, card.ID))
	}
	require.NoError(t, e.AddResourceToCard(g, alice.ID, first.ID, resources.Science))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, second.ID, resources.Gold))
	require.NoError(t, e.AddResourceToCard(g, alice.ID, reducer.ID, resources.Energy))

	assert.Len(t, alice.Empire, 3)
	assert.Empty(t, alice.ConstructionArea)
}

func TestSetPlayerReady_Planning(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	alice, bob := g.Players[0], g.Players[1]

	_, err := e.SetPlayerReady(g, alice.ID)
	assert.ErrorIs(t, err, ErrRuleViolation, "drafted cards must be routed first")
	assert.False(t, alice.IsReady)

	discardDrafted(t, e, g)

	result, err := e.SetPlayerReady(g, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, Continuing, result.Outcome)
	assert.True(t, alice.IsReady)
	assert.Equal(t, rules.PhasePlanning, g.CurrentPhase)

	// Ready twice is harmless.
	_, err = e.SetPlayerReady(g, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, rules.PhasePlanning, g.CurrentPhase)

	_, err = e.SetPlayerReady(g, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	result, err = e.SetPlayerReady(g, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, Continuing, result.Outcome)
	assert.Equal(t, rules.PhaseProduction, g.CurrentPhase)
	step, ok := g.ProductionStep()
	require.True(t, ok)
	assert.Equal(t, resources.Materials, step)
}

func TestEndPlanning_ConvertsExcessResources(t *testing.T) {
	e := newTestEngine(t)
	g := planningGame(t, e, fillerDeck(10))
	discardDrafted(t, e, g)
	alice := g.Players[0]

	// Discards granted recycling bonuses; start from a known pool.
	alice.Resources = resources.NewPool(resources.MustParseAmounts("{M3}{E4}{K}"))
	alice.DiscardedResourcePool = 2

	readyAll(t, e, g)

	// 2 carried + 7 discarded = 9: one Krystallium, four carried over.
	assert.Equal(t, 2, alice.Resources.Get(resources.Krystallium))
	assert.Equal(t, 4, alice.DiscardedResourcePool)
	for _, r := range resources.BaseTypes() {
		assert.Zero(t, alice.Resources.Get(r), r.String())
	}
}
