package rules

import (
	"encoding/json"
	"testing"

	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTransitions(t *testing.T) {
	assert.True(t, CanTransition(PhaseDraft, PhasePlanning))
	assert.True(t, CanTransition(PhasePlanning, PhaseProduction))
	assert.True(t, CanTransition(PhaseProduction, PhaseDraft))
	assert.True(t, CanTransition(PhaseProduction, PhaseGameOver))

	assert.False(t, CanTransition(PhaseDraft, PhaseProduction))
	assert.False(t, CanTransition(PhasePlanning, PhaseDraft))
	assert.False(t, CanTransition(PhaseGameOver, PhaseDraft))
}

func TestDraftDirection(t *testing.T) {
	assert.Equal(t, Counterclockwise, Clockwise.Flip())
	assert.Equal(t, Clockwise, Counterclockwise.Flip())

	// Three seats
	assert.Equal(t, 1, Clockwise.Next(0, 3))
	assert.Equal(t, 0, Clockwise.Next(2, 3))
	assert.Equal(t, 2, Counterclockwise.Next(0, 3))
	assert.Equal(t, 1, Counterclockwise.Next(2, 3))
}

func TestEnumText(t *testing.T) {
	data, err := json.Marshal(struct {
		Phase     Phase
		State     GameState
		Direction DraftDirection
	}{PhaseProduction, GameStateFinished, Counterclockwise})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Phase":"PRODUCTION","State":"FINISHED","Direction":"COUNTERCLOCKWISE"}`, string(data))

	var p Phase
	require.NoError(t, p.UnmarshalText([]byte("game_over")))
	assert.Equal(t, PhaseGameOver, p)
	assert.Error(t, p.UnmarshalText([]byte("combat")))

	assert.Equal(t, "PHASE_9", Phase(9).String())
}

func TestProductionSequence(t *testing.T) {
	sequence := ProductionSequence()
	require.Len(t, sequence, 5)
	assert.Equal(t, resources.Materials, FirstProductionStep())

	step := FirstProductionStep()
	visited := []resources.ResourceType{step}
	for {
		next, ok := NextProductionStep(step)
		if !ok {
			break
		}
		visited = append(visited, next)
		step = next
	}
	assert.Equal(t, sequence, visited)

	_, ok := NextProductionStep(resources.Krystallium)
	assert.False(t, ok, "premium currency is never a production step")
}

func TestConversions(t *testing.T) {
	table := Conversions()
	require.Len(t, table, 3)
	assert.Equal(t, Conversion{resources.Materials, resources.Krystallium, 3}, table[0])
	assert.Equal(t, Conversion{resources.Energy, resources.Science, 2}, table[1])
	assert.Equal(t, Conversion{resources.Gold, resources.Exploration, 2}, table[2])
}
