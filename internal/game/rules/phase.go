package rules

import (
	"fmt"
	"strings"
)

// Phase represents the phases of a round.
type Phase int

const (
	PhaseDraft Phase = iota
	PhasePlanning
	PhaseProduction
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseDraft:      "DRAFT",
	PhasePlanning:   "PLANNING",
	PhaseProduction: "PRODUCTION",
	PhaseGameOver:   "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	v, err := parseName(phaseNames, string(text))
	if err != nil {
		return fmt.Errorf("unknown phase: %w", err)
	}
	*p = v
	return nil
}

// phaseTransitions lists the legal successor of each phase. Production may
// also loop back to Draft when another round follows.
var phaseTransitions = map[Phase][]Phase{
	PhaseDraft:      {PhasePlanning},
	PhasePlanning:   {PhaseProduction},
	PhaseProduction: {PhaseDraft, PhaseGameOver},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to Phase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GameState is the lifecycle gate of a game.
type GameState int

const (
	GameStateLobby GameState = iota
	GameStateInProgress
	GameStateFinished
)

var gameStateNames = map[GameState]string{
	GameStateLobby:      "LOBBY",
	GameStateInProgress: "IN_PROGRESS",
	GameStateFinished:   "FINISHED",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameState) UnmarshalText(text []byte) error {
	v, err := parseName(gameStateNames, string(text))
	if err != nil {
		return fmt.Errorf("unknown game state: %w", err)
	}
	*s = v
	return nil
}

// DraftDirection is the direction hands travel when passed.
type DraftDirection int

const (
	Clockwise DraftDirection = iota
	Counterclockwise
)

var directionNames = map[DraftDirection]string{
	Clockwise:        "CLOCKWISE",
	Counterclockwise: "COUNTERCLOCKWISE",
}

func (d DraftDirection) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DIRECTION_%d", int(d))
}

func (d DraftDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DraftDirection) UnmarshalText(text []byte) error {
	v, err := parseName(directionNames, string(text))
	if err != nil {
		return fmt.Errorf("unknown draft direction: %w", err)
	}
	*d = v
	return nil
}

// Flip returns the opposite direction.
func (d DraftDirection) Flip() DraftDirection {
	if d == Clockwise {
		return Counterclockwise
	}
	return Clockwise
}

// Next returns the index of the seat that receives the hand held at index i
// among n seats.
func (d DraftDirection) Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	if d == Counterclockwise {
		return (i - 1 + n) % n
	}
	return (i + 1) % n
}

func parseName[T comparable](names map[T]string, s string) (T, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%q", s)
}
