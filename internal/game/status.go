package game

import (
	"maps"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
)

// PlayerStatus is one player as seen by a viewer. Hand is nil for everyone
// but the viewer; HandCount is always set.
type PlayerStatus struct {
	ID                    uuid.UUID        `json:"id"`
	Name                  string           `json:"name"`
	Hand                  []*Card          `json:"hand,omitempty"`
	HandCount             int              `json:"hand_count"`
	DraftingArea          []*Card          `json:"drafting_area"`
	ConstructionArea      []*Card          `json:"construction_area"`
	Empire                []*Card          `json:"empire"`
	Resources             resources.Pool   `json:"resources"`
	Characters            resources.Tokens `json:"characters"`
	DiscardedResourcePool int              `json:"discarded_resource_pool"`
	IsReady               bool             `json:"is_ready"`
	HasDraftedThisRound   bool             `json:"has_drafted_this_round"`
	Score                 *Score           `json:"score,omitempty"`
}

// GameStatus is a read-only projection of a game for one viewer.
type GameStatus struct {
	GameID         uuid.UUID               `json:"game_id"`
	State          rules.GameState         `json:"state"`
	Phase          rules.Phase             `json:"phase"`
	Round          int                     `json:"round"`
	ProductionStep *resources.ResourceType `json:"production_step,omitempty"`
	DraftDirection rules.DraftDirection    `json:"draft_direction"`
	HostID         uuid.UUID               `json:"host_id"`
	DeckSize       int                     `json:"deck_size"`
	Viewer         *PlayerStatus           `json:"viewer,omitempty"`
	Players        []PlayerStatus          `json:"players"`
	FinalScores    map[uuid.UUID]int       `json:"final_scores,omitempty"`
	WinnerID       *uuid.UUID              `json:"winner_id,omitempty"`
}

// Status projects the game for viewerID. Every other player's hand is
// hidden. uuid.Nil yields a spectator view with all hands hidden.
func Status(g *Game, viewerID uuid.UUID) (*GameStatus, error) {
	if viewerID != uuid.Nil {
		if _, err := g.Player(viewerID); err != nil {
			return nil, err
		}
	}

	finished := g.State == rules.GameStateFinished
	st := &GameStatus{
		GameID:         g.ID,
		State:          g.State,
		Phase:          g.CurrentPhase,
		Round:          g.CurrentRound,
		DraftDirection: g.CurrentDraftDirection,
		HostID:         g.HostID,
		DeckSize:       len(g.DevelopmentDeck),
		Players:        make([]PlayerStatus, 0, len(g.Players)),
	}
	if step, ok := g.ProductionStep(); ok {
		st.ProductionStep = &step
	}

	for _, p := range g.Players {
		ps := projectPlayer(p, p.ID == viewerID, finished)
		st.Players = append(st.Players, ps)
		if p.ID == viewerID {
			viewer := ps
			st.Viewer = &viewer
		}
	}

	if finished {
		st.FinalScores = maps.Clone(g.FinalScores)
		if g.WinnerID != nil {
			winner := *g.WinnerID
			st.WinnerID = &winner
		}
	}
	return st, nil
}

func projectPlayer(p *Player, reveal, finished bool) PlayerStatus {
	ps := PlayerStatus{
		ID:                    p.ID,
		Name:                  p.Name,
		HandCount:             len(p.Hand),
		DraftingArea:          cloneCards(p.DraftingArea),
		ConstructionArea:      cloneCards(p.ConstructionArea),
		Empire:                cloneCards(p.Empire),
		Resources:             p.Resources,
		Characters:            p.Characters,
		DiscardedResourcePool: p.DiscardedResourcePool,
		IsReady:               p.IsReady,
		HasDraftedThisRound:   p.HasDraftedThisRound,
	}
	if reveal {
		ps.Hand = cloneCards(p.Hand)
	}
	if finished {
		score := ScoreBreakdown(p)
		ps.Score = &score
	}
	return ps
}
