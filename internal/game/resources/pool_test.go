package resources

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Add(t *testing.T) {
	var pool Pool

	pool.Add(Materials, 2)
	assert.Equal(t, 2, pool.Get(Materials))

	pool.Add(Energy, 1)
	assert.Equal(t, 1, pool.Get(Energy))

	// Non-positive amounts are ignored
	pool.Add(Energy, -4)
	pool.Add(Energy, 0)
	assert.Equal(t, 1, pool.Get(Energy))
	assert.Equal(t, 3, pool.Total())
}

func TestPool_Spend(t *testing.T) {
	var pool Pool
	pool.Add(Gold, 3)

	require.NoError(t, pool.Spend(Gold, 2))
	assert.Equal(t, 1, pool.Get(Gold))

	err := pool.Spend(Gold, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficient))
	assert.Equal(t, 1, pool.Get(Gold), "failed spend must not change the pool")

	require.NoError(t, pool.Spend(Gold, 1))
	assert.Equal(t, 0, pool.Get(Gold))

	err = pool.Spend(Gold, 1)
	assert.ErrorIs(t, err, ErrInsufficient)
	assert.Equal(t, 0, pool.Get(Gold))
}

func TestPool_Convert(t *testing.T) {
	tests := []struct {
		name      string
		from, to  ResourceType
		rate      int
		before    int
		gained    int
		remaining int
	}{
		{"materials to krystallium", Materials, Krystallium, 3, 7, 2, 1},
		{"energy to science exact", Energy, Science, 2, 4, 2, 0},
		{"gold to exploration below rate", Gold, Exploration, 2, 1, 0, 1},
		{"nothing to convert", Materials, Krystallium, 3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pool Pool
			pool.Add(tt.from, tt.before)

			gained := pool.Convert(tt.from, tt.to, tt.rate)
			assert.Equal(t, tt.gained, gained)
			assert.Equal(t, tt.remaining, pool.Get(tt.from))
			assert.Equal(t, tt.before%tt.rate, pool.Get(tt.from))
			assert.Equal(t, tt.gained, pool.Get(tt.to))
		})
	}
}

func TestPool_Take(t *testing.T) {
	pool := NewPool(Amounts{Science: 4, Exploration: 1})

	assert.Equal(t, 4, pool.Take(Science))
	assert.Equal(t, 0, pool.Get(Science))
	assert.Equal(t, 1, pool.Total())
}

func TestPool_JSONHasEveryResource(t *testing.T) {
	pool := NewPool(Amounts{Energy: 2})

	data, err := json.Marshal(pool)
	require.NoError(t, err)

	var raw map[string]int
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, NumResources)
	assert.Equal(t, 2, raw["ENERGY"])
	assert.Equal(t, 0, raw["KRYSTALLIUM"])

	var decoded Pool
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pool, decoded)
}

func TestPool_UnmarshalRejectsNegative(t *testing.T) {
	var pool Pool
	err := json.Unmarshal([]byte(`{"GOLD":-1}`), &pool)
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	var tokens Tokens
	tokens.Add(General, 2)
	tokens.Add(Financier, 1)
	tokens.Add(Financier, -3)

	assert.Equal(t, 2, tokens.Get(General))
	assert.Equal(t, 1, tokens.Get(Financier))
	assert.Equal(t, 3, tokens.Total())

	data, err := json.Marshal(tokens)
	require.NoError(t, err)
	assert.JSONEq(t, `{"GENERAL":2,"FINANCIER":1}`, string(data))
}
