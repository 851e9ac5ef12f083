package game

import (
	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// AddResourceToCard invests one unit of r from the player's pool into a card
// in their construction area. A card whose cost is met moves to the empire.
func (e *Engine) AddResourceToCard(g *Game, playerID, cardID uuid.UUID, r resources.ResourceType) error {
	const op = "add resource"

	if err := requirePhase(op, g, rules.PhasePlanning); err != nil {
		return err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	card, err := p.Card(ZoneConstruction, cardID)
	if err != nil {
		return err
	}
	if !r.Valid() {
		return ruleErrorf(op, "invalid resource type %d", int(r))
	}

	reduction := p.CostReduction()
	need := card.EffectiveCost(reduction).Get(r)
	if need == 0 {
		return ruleErrorf(op, "%s is not part of the cost of %s", r, card.Name)
	}
	if card.Invested(r) >= need {
		return ruleErrorf(op, "%s already fully invested in %s", r, card.Name)
	}
	if err := p.Resources.Spend(r, 1); err != nil {
		return &RuleError{Op: op, Reason: "cannot pay for " + card.Name, Err: err}
	}
	card.InvestedResources[r]++

	e.logger.Debug("resource invested",
		gameField(g),
		zap.String("player", p.Name),
		zap.String("card", card.Name),
		zap.Stringer("resource", r),
		zap.Stringer("remaining", card.RemainingCost(reduction)),
	)

	if card.IsConstructed(reduction) {
		e.completeCard(g, p, card)
	}
	e.touch(g)
	return nil
}

// DiscardCard recycles a drafted card for one unit of its recycling bonus.
// The granted bonus is returned for display.
func (e *Engine) DiscardCard(g *Game, playerID, cardID uuid.UUID) (resources.Amounts, error) {
	const op = "discard card"

	if err := requirePhase(op, g, rules.PhasePlanning); err != nil {
		return nil, err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return nil, err
	}
	if _, err := p.Card(ZoneDrafting, cardID); err != nil {
		return nil, err
	}

	card := p.removeCard(cardID, ZoneDrafting)
	g.DiscardPile = append(g.DiscardPile, card)
	bonus := resources.Amounts{card.RecyclingBonus: 1}
	p.Resources.Add(card.RecyclingBonus, 1)

	e.logger.Debug("card discarded",
		gameField(g),
		zap.String("player", p.Name),
		zap.String("card", card.Name),
		zap.Stringer("bonus", bonus),
	)
	e.touch(g)
	return bonus, nil
}

// MoveToConstruction moves a drafted card into the construction area. A card
// whose effective cost is already met goes straight on to the empire.
func (e *Engine) MoveToConstruction(g *Game, playerID, cardID uuid.UUID) error {
	const op = "move to construction"

	if err := requirePhase(op, g, rules.PhasePlanning); err != nil {
		return err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	if _, err := p.Card(ZoneDrafting, cardID); err != nil {
		return err
	}

	card := p.moveCard(cardID, ZoneDrafting, ZoneConstruction)

	e.logger.Debug("card moved to construction",
		gameField(g),
		zap.String("player", p.Name),
		zap.String("card", card.Name),
	)

	if card.IsConstructed(p.CostReduction()) {
		e.completeCard(g, p, card)
	}
	e.touch(g)
	return nil
}

// completeCard moves a finished card to the empire. A cost-reducing card
// lowers the effective cost of everything still under construction, which
// may finish further cards.
func (e *Engine) completeCard(g *Game, p *Player, card *Card) {
	p.moveCard(card.ID, ZoneConstruction, ZoneEmpire)

	e.logger.Info("card constructed",
		gameField(g),
		zap.String("player", p.Name),
		zap.String("card", card.Name),
		zap.Stringer("ability", card.SpecialAbility),
	)

	if card.SpecialAbility == AbilityReducedConstructionCost {
		e.settleConstruction(g, p)
	}
}

// settleConstruction completes every card the current reduction has paid off.
func (e *Engine) settleConstruction(g *Game, p *Player) {
	for {
		reduction := p.CostReduction()
		var done *Card
		for _, card := range p.ConstructionArea {
			if card.IsConstructed(reduction) {
				done = card
				break
			}
		}
		if done == nil {
			return
		}
		e.completeCard(g, p, done)
	}
}

// SetPlayerReady records that a player has finished acting in the current
// planning phase or production step. The last player to get ready advances
// the game; the result reports whether that started a new round or ended
// the game. Getting ready twice is a no-op.
func (e *Engine) SetPlayerReady(g *Game, playerID uuid.UUID) (RoundResult, error) {
	const op = "set ready"

	continuing := RoundResult{Outcome: Continuing, Round: g.CurrentRound}
	if g.State != rules.GameStateInProgress {
		return continuing, stateErrorf(op, "game is %s, want %s", g.State, rules.GameStateInProgress)
	}
	p, err := g.Player(playerID)
	if err != nil {
		return continuing, err
	}

	switch g.CurrentPhase {
	case rules.PhasePlanning:
		if n := len(p.DraftingArea); n > 0 {
			return continuing, ruleErrorf(op, "%s still has %d drafted cards to build or discard", p.Name, n)
		}
	case rules.PhaseProduction:
	default:
		return continuing, stateErrorf(op, "phase is %s, want %s or %s",
			g.CurrentPhase, rules.PhasePlanning, rules.PhaseProduction)
	}

	if p.IsReady {
		return continuing, nil
	}
	p.IsReady = true
	e.touch(g)

	e.logger.Debug("player ready",
		gameField(g),
		zap.String("player", p.Name),
		zap.Stringer("phase", g.CurrentPhase),
	)

	if !g.AllReady() {
		return continuing, nil
	}
	if g.CurrentPhase == rules.PhasePlanning {
		e.endPlanning(g)
		return RoundResult{Outcome: Continuing, Round: g.CurrentRound}, nil
	}
	return e.advanceProduction(g), nil
}

// endPlanning converts every player's leftover base resources into the
// discarded pool, exchanges the pool for Krystallium and runs the first
// production step.
func (e *Engine) endPlanning(g *Game) {
	rate := e.rules.KrystalliumRate
	for _, p := range g.Players {
		pool := p.DiscardedResourcePool
		for _, r := range resources.BaseTypes() {
			pool += p.Resources.Take(r)
		}
		gained := pool / rate
		p.Resources.Add(resources.Krystallium, gained)
		p.DiscardedResourcePool = pool % rate

		if gained > 0 {
			e.logger.Debug("excess resources converted",
				gameField(g),
				zap.String("player", p.Name),
				zap.Int("krystallium", gained),
				zap.Int("carried", p.DiscardedResourcePool),
			)
		}
	}

	g.CurrentPhase = rules.PhaseProduction
	g.setProductionStep(rules.FirstProductionStep())

	e.logger.Info("planning finished",
		gameField(g),
		zap.Int("round", g.CurrentRound),
	)
	e.produceStep(g)
}
