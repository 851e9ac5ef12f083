package game

import (
	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// requirePhase checks the lifecycle gate first, then the phase.
func requirePhase(op string, g *Game, phase rules.Phase) error {
	if g.State != rules.GameStateInProgress {
		return stateErrorf(op, "game is %s, want %s", g.State, rules.GameStateInProgress)
	}
	if g.CurrentPhase != phase {
		return stateErrorf(op, "phase is %s, want %s", g.CurrentPhase, phase)
	}
	return nil
}

// DraftCard moves a card from the player's hand to their drafting area.
// Once every player has drafted, hands pass along the current direction;
// once every hand is empty, the game moves on to planning.
func (e *Engine) DraftCard(g *Game, playerID, cardID uuid.UUID) error {
	const op = "draft card"

	if err := requirePhase(op, g, rules.PhaseDraft); err != nil {
		return err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	if p.HasDraftedThisRound || g.PlayersDrafted[p.ID] {
		return stateErrorf(op, "player %s already drafted from this hand", p.Name)
	}
	if _, err := p.Card(ZoneHand, cardID); err != nil {
		return err
	}

	card := p.moveCard(cardID, ZoneHand, ZoneDrafting)
	p.HasDraftedThisRound = true
	g.PlayersDrafted[p.ID] = true
	g.ShouldPassHands = g.allDrafted()

	e.logger.Debug("card drafted",
		gameField(g),
		zap.String("player", p.Name),
		zap.String("card", card.Name),
	)

	if g.ShouldPassHands {
		e.passHands(g)
	}
	if g.AllHandsEmpty() {
		e.endDraft(g)
	}
	e.touch(g)
	return nil
}

// passHands gives each player's hand to the neighbour along the current
// draft direction and opens the next pick.
func (e *Engine) passHands(g *Game) {
	n := len(g.Players)
	passed := make([][]*Card, n)
	for i, p := range g.Players {
		passed[g.CurrentDraftDirection.Next(i, n)] = p.Hand
	}
	for i, p := range g.Players {
		p.Hand = passed[i]
		if p.Hand == nil {
			p.Hand = make([]*Card, 0)
		}
	}
	g.clearDrafted()
	g.ShouldPassHands = false

	e.logger.Debug("hands passed",
		gameField(g),
		zap.Stringer("direction", g.CurrentDraftDirection),
	)
}

func (e *Engine) endDraft(g *Game) {
	g.CurrentPhase = rules.PhasePlanning
	g.clearDrafted()
	for _, p := range g.Players {
		p.IsReady = false
	}

	e.logger.Info("draft finished",
		gameField(g),
		zap.Int("round", g.CurrentRound),
	)
}
