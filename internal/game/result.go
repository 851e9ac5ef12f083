package game

import "fmt"

// RoundOutcome tells the caller what a ready signal set in motion.
type RoundOutcome int

const (
	// Continuing means the game stays in the current round.
	Continuing RoundOutcome = iota
	// RoundStarted means production finished and a new round was dealt.
	RoundStarted
	// GameOver means the final round finished and scores are available.
	GameOver
)

var roundOutcomeNames = map[RoundOutcome]string{
	Continuing:   "CONTINUING",
	RoundStarted: "ROUND_STARTED",
	GameOver:     "GAME_OVER",
}

func (o RoundOutcome) String() string {
	if name, ok := roundOutcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OUTCOME_%d", int(o))
}

func (o RoundOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// RoundResult is returned by SetPlayerReady. Round is the new round number
// for RoundStarted and the last played round for GameOver.
type RoundResult struct {
	Outcome RoundOutcome `json:"outcome"`
	Round   int          `json:"round,omitempty"`
}

func (r RoundResult) String() string {
	switch r.Outcome {
	case RoundStarted:
		return fmt.Sprintf("round %d started", r.Round)
	case GameOver:
		return fmt.Sprintf("game over after round %d", r.Round)
	default:
		return "continuing"
	}
}
