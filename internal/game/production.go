package game

import (
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// ProductionTotal returns what a player's empire yields of r in one step,
// counting double-production cards twice.
func ProductionTotal(p *Player, r resources.ResourceType) int {
	total := 0
	for _, card := range p.Empire {
		total += card.ProductionOf(r)
	}
	return total
}

// produceStep credits every player with the active step's production and
// clears the ready flags for the step.
func (e *Engine) produceStep(g *Game) {
	step, ok := g.ProductionStep()
	if !ok {
		return
	}
	for _, p := range g.Players {
		p.Resources.Add(step, ProductionTotal(p, step))
		p.IsReady = false
	}

	e.logger.Debug("production step",
		gameField(g),
		zap.Stringer("resource", step),
	)
}

// advanceProduction moves to the next production step, or finishes the
// round once the sequence is exhausted.
func (e *Engine) advanceProduction(g *Game) RoundResult {
	step, _ := g.ProductionStep()
	if next, ok := rules.NextProductionStep(step); ok {
		g.setProductionStep(next)
		e.produceStep(g)
		return RoundResult{Outcome: Continuing, Round: g.CurrentRound}
	}
	return e.finishProduction(g)
}

// finishProduction applies end-of-round abilities, then either ends the game
// or deals the next round.
func (e *Engine) finishProduction(g *Game) RoundResult {
	for _, p := range g.Players {
		applyVictoryPointBonus(p)
		applyResourceConversion(p)
	}

	played := g.CurrentRound
	g.CurrentRound++
	g.CurrentDraftDirection = g.CurrentDraftDirection.Flip()
	g.CurrentProductionStep = nil

	if g.CurrentRound > e.rules.Rounds {
		e.endGame(g)
		return RoundResult{Outcome: GameOver, Round: played}
	}
	e.startRound(g)
	return RoundResult{Outcome: RoundStarted, Round: g.CurrentRound}
}

// applyVictoryPointBonus raises each bearing card's victory points by one per
// five resources the player holds.
func applyVictoryPointBonus(p *Player) {
	bonus := p.Resources.Total() / 5
	if bonus == 0 {
		return
	}
	for _, card := range p.Empire {
		if card.SpecialAbility == AbilityVictoryPointBonus {
			card.VictoryPoints += bonus
		}
	}
}

// applyResourceConversion runs the conversion table once per bearing card.
func applyResourceConversion(p *Player) {
	for n := p.CountAbility(AbilityResourceConversion); n > 0; n-- {
		for _, c := range rules.Conversions() {
			p.Resources.Convert(c.From, c.To, c.Rate)
		}
	}
}

func (e *Engine) startRound(g *Game) {
	g.CurrentPhase = rules.PhaseDraft
	g.clearDrafted()
	g.ShouldPassHands = false
	for _, p := range g.Players {
		p.IsReady = false
	}
	e.DealHands(g)

	e.logger.Info("round started",
		gameField(g),
		zap.Int("round", g.CurrentRound),
		zap.Stringer("direction", g.CurrentDraftDirection),
		zap.Int("deck_remaining", len(g.DevelopmentDeck)),
	)
}

func (e *Engine) endGame(g *Game) {
	g.CurrentPhase = rules.PhaseGameOver
	g.State = rules.GameStateFinished
	for _, p := range g.Players {
		p.IsReady = false
	}
	e.settleScores(g)

	fields := []zap.Field{gameField(g), zap.Any("scores", g.FinalScores)}
	if g.WinnerID != nil {
		fields = append(fields, zap.String("winner_id", g.WinnerID.String()))
	}
	e.logger.Info("game over", fields...)
}
