package match

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// maxMoves bounds a single Play call.
const maxMoves = 100000

type moveKind int

const (
	moveDraft moveKind = iota
	moveConstruct
	moveDiscard
	moveInvest
	moveReady
)

var moveNames = map[moveKind]string{
	moveDraft:     "draft",
	moveConstruct: "construct",
	moveDiscard:   "discard",
	moveInvest:    "invest",
	moveReady:     "ready",
}

func (k moveKind) String() string {
	return moveNames[k]
}

type move struct {
	kind     moveKind
	playerID uuid.UUID
	cardID   uuid.UUID
	resource resources.ResourceType
}

// Autoplayer plays every seat of a game with a fixed policy: draft the first
// card in hand, build a drafted card when the pool already covers it and
// recycle it otherwise, invest whatever fits, then get ready.
type Autoplayer struct {
	manager *Manager
	logger  *zap.Logger
}

// NewAutoplayer creates an autoplayer acting through m.
func NewAutoplayer(m *Manager, logger *zap.Logger) *Autoplayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autoplayer{manager: m, logger: logger}
}

// Play drives a started game to the end and returns the final scores.
func (a *Autoplayer) Play(ctx context.Context, id uuid.UUID) (map[uuid.UUID]int, error) {
	for n := 0; n < maxMoves; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g, err := a.manager.load(ctx, id)
		if err != nil {
			return nil, err
		}
		switch g.State {
		case rules.GameStateFinished:
			a.logger.Info("autoplay finished",
				zap.String("game_id", id.String()),
				zap.Int("moves", n),
			)
			return a.manager.Scores(ctx, id)
		case rules.GameStateLobby:
			return nil, fmt.Errorf("autoplay: game %s has not started", id)
		}

		mv, ok := nextMove(g)
		if !ok {
			return nil, fmt.Errorf("autoplay: no move available in %s of round %d", g.CurrentPhase, g.CurrentRound)
		}
		if err := a.apply(ctx, id, mv); err != nil {
			return nil, fmt.Errorf("autoplay %s: %w", mv.kind, err)
		}
	}
	return nil, fmt.Errorf("autoplay: game %s did not finish within %d moves", id, maxMoves)
}

func (a *Autoplayer) apply(ctx context.Context, id uuid.UUID, mv move) error {
	player := PlayerAction{GameID: id, PlayerID: mv.playerID}
	card := CardAction{PlayerAction: player, CardID: mv.cardID}

	a.logger.Debug("autoplay move",
		zap.String("game_id", id.String()),
		zap.Stringer("move", mv.kind),
		zap.String("player_id", mv.playerID.String()),
	)

	switch mv.kind {
	case moveDraft:
		return a.manager.Draft(ctx, card)
	case moveConstruct:
		return a.manager.MoveToConstruction(ctx, card)
	case moveDiscard:
		_, err := a.manager.Discard(ctx, card)
		return err
	case moveInvest:
		return a.manager.AddResource(ctx, InvestAction{CardAction: card, Resource: mv.resource.Symbol()})
	default:
		_, err := a.manager.SetReady(ctx, player)
		return err
	}
}

// nextMove picks the first pending move in seating order.
func nextMove(g *game.Game) (move, bool) {
	for _, p := range g.Players {
		var (
			mv move
			ok bool
		)
		switch g.CurrentPhase {
		case rules.PhaseDraft:
			mv, ok = draftMove(p)
		case rules.PhasePlanning:
			mv, ok = planningMove(p)
		case rules.PhaseProduction:
			mv, ok = readyMove(p)
		}
		if ok {
			return mv, true
		}
	}
	return move{}, false
}

func draftMove(p *game.Player) (move, bool) {
	if p.HasDraftedThisRound || len(p.Hand) == 0 {
		return move{}, false
	}
	return move{kind: moveDraft, playerID: p.ID, cardID: p.Hand[0].ID}, true
}

func planningMove(p *game.Player) (move, bool) {
	reduction := p.CostReduction()

	if len(p.DraftingArea) > 0 {
		card := p.DraftingArea[0]
		kind := moveDiscard
		if affordable(p, card.RemainingCost(reduction)) {
			kind = moveConstruct
		}
		return move{kind: kind, playerID: p.ID, cardID: card.ID}, true
	}

	for _, card := range p.ConstructionArea {
		remaining := card.RemainingCost(reduction)
		for _, r := range remaining.Types() {
			if p.Resources.Get(r) > 0 {
				return move{kind: moveInvest, playerID: p.ID, cardID: card.ID, resource: r}, true
			}
		}
	}

	return readyMove(p)
}

func readyMove(p *game.Player) (move, bool) {
	if p.IsReady {
		return move{}, false
	}
	return move{kind: moveReady, playerID: p.ID}, true
}

func affordable(p *game.Player, cost resources.Amounts) bool {
	for _, r := range cost.Types() {
		if p.Resources.Get(r) < cost.Get(r) {
			return false
		}
	}
	return true
}
