package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
)

// Game is the aggregate every engine operation transforms. It is the sole
// source of truth for a match; callers must serialize mutations per game.
type Game struct {
	ID                    uuid.UUID               `json:"id"`
	Players               []*Player               `json:"players"`
	HostID                uuid.UUID               `json:"host_id"`
	CurrentRound          int                     `json:"current_round"`
	CurrentPhase          rules.Phase             `json:"current_phase"`
	State                 rules.GameState         `json:"state"`
	DevelopmentDeck       []*Card                 `json:"development_deck"`
	DiscardPile           []*Card                 `json:"discard_pile"`
	PlayersDrafted        map[uuid.UUID]bool      `json:"players_drafted"`
	ShouldPassHands       bool                    `json:"should_pass_hands"`
	CurrentDraftDirection rules.DraftDirection    `json:"current_draft_direction"`
	CurrentProductionStep *resources.ResourceType `json:"current_production_step,omitempty"`
	WinnerID              *uuid.UUID              `json:"winner_id,omitempty"`
	FinalScores           map[uuid.UUID]int       `json:"final_scores,omitempty"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
}

func newGame(now time.Time) *Game {
	return &Game{
		ID:                    uuid.New(),
		Players:               make([]*Player, 0),
		CurrentRound:          1,
		CurrentPhase:          rules.PhaseDraft,
		State:                 rules.GameStateLobby,
		DevelopmentDeck:       make([]*Card, 0),
		DiscardPile:           make([]*Card, 0),
		PlayersDrafted:        make(map[uuid.UUID]bool),
		CurrentDraftDirection: rules.Clockwise,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Player returns the player with the given ID.
func (g *Game) Player(playerID uuid.UUID) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, &NotFoundError{Kind: "player", ID: playerID.String(), Where: "game " + g.ID.String()}
}

// Host returns the hosting player, nil if the host is not seated.
func (g *Game) Host() *Player {
	p, err := g.Player(g.HostID)
	if err != nil {
		return nil
	}
	return p
}

// AllReady reports whether every player has signalled ready.
func (g *Game) AllReady() bool {
	for _, p := range g.Players {
		if !p.IsReady {
			return false
		}
	}
	return len(g.Players) > 0
}

// AllHandsEmpty reports whether every hand has been drafted out.
func (g *Game) AllHandsEmpty() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// allDrafted reports whether every player has drafted since the last pass.
// A player left with an empty hand has nothing to draft and does not hold
// up the pass.
func (g *Game) allDrafted() bool {
	for _, p := range g.Players {
		if !g.PlayersDrafted[p.ID] && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// CardCount returns every card in play plus the undrawn deck and the
// recycled cards. It is constant across draft and construction operations.
func (g *Game) CardCount() int {
	total := len(g.DevelopmentDeck) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += p.CardCount()
	}
	return total
}

// ProductionStep returns the active production step, if any.
func (g *Game) ProductionStep() (resources.ResourceType, bool) {
	if g.CurrentProductionStep == nil {
		return 0, false
	}
	return *g.CurrentProductionStep, true
}

func (g *Game) setProductionStep(r resources.ResourceType) {
	step := r
	g.CurrentProductionStep = &step
}

func (g *Game) clearDrafted() {
	g.PlayersDrafted = make(map[uuid.UUID]bool)
	for _, p := range g.Players {
		p.HasDraftedThisRound = false
	}
}

// normalize restores invariants JSON decoding cannot express, such as
// non-nil collections.
func (g *Game) normalize() {
	if g.Players == nil {
		g.Players = make([]*Player, 0)
	}
	if g.DevelopmentDeck == nil {
		g.DevelopmentDeck = make([]*Card, 0)
	}
	if g.DiscardPile == nil {
		g.DiscardPile = make([]*Card, 0)
	}
	if g.PlayersDrafted == nil {
		g.PlayersDrafted = make(map[uuid.UUID]bool)
	}
	for _, p := range g.Players {
		p.normalize()
	}
	for _, card := range g.DevelopmentDeck {
		card.normalize()
	}
	for _, card := range g.DiscardPile {
		card.normalize()
	}
}
