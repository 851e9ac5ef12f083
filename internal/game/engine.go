package game

import (
	"time"

	"go.uber.org/zap"
)

// Ruleset holds the numeric parameters of a match.
type Ruleset struct {
	DeckSize        int
	HandSize        int
	Rounds          int
	MinPlayers      int
	MaxPlayers      int
	KrystalliumRate int // discarded units per Krystallium at the end of planning
}

// DefaultRuleset returns the reference parameters.
func DefaultRuleset() Ruleset {
	return Ruleset{
		DeckSize:        150,
		HandSize:        7,
		Rounds:          4,
		MinPlayers:      2,
		MaxPlayers:      5,
		KrystalliumRate: 5,
	}
}

// Engine applies rule operations to Game aggregates. It holds no game state
// and may be shared across goroutines; callers serialize access per game.
type Engine struct {
	logger *zap.Logger
	rules  Ruleset
	now    func() time.Time
}

// NewEngine creates an engine. Zero fields in rules fall back to the defaults.
func NewEngine(logger *zap.Logger, rules Ruleset) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultRuleset()
	if rules.DeckSize <= 0 {
		rules.DeckSize = defaults.DeckSize
	}
	if rules.HandSize <= 0 {
		rules.HandSize = defaults.HandSize
	}
	if rules.Rounds <= 0 {
		rules.Rounds = defaults.Rounds
	}
	if rules.MinPlayers <= 0 {
		rules.MinPlayers = defaults.MinPlayers
	}
	if rules.MaxPlayers <= 0 {
		rules.MaxPlayers = defaults.MaxPlayers
	}
	if rules.KrystalliumRate <= 0 {
		rules.KrystalliumRate = defaults.KrystalliumRate
	}
	return &Engine{
		logger: logger,
		rules:  rules,
		now:    time.Now,
	}
}

// Rules returns the engine's ruleset.
func (e *Engine) Rules() Ruleset {
	return e.rules
}

func (e *Engine) touch(g *Game) {
	g.UpdatedAt = e.now()
}

func gameField(g *Game) zap.Field {
	return zap.String("game_id", g.ID.String())
}
