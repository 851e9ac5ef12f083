package game

import (
	"strings"

	"github.com/iaww/iaww-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// NewGame creates a lobby game. The host takes the first seat and the other
// names follow in seating order.
func (e *Engine) NewGame(hostName string, otherNames ...string) (*Game, error) {
	const op = "new game"

	names := append([]string{hostName}, otherNames...)
	if err := e.checkPlayerCount(op, len(names)); err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, ruleErrorf(op, "player name must not be empty")
		}
	}

	g := newGame(e.now())
	for _, name := range names {
		g.Players = append(g.Players, NewPlayer(name))
	}
	g.HostID = g.Players[0].ID

	e.logger.Debug("game created",
		gameField(g),
		zap.Strings("players", names),
	)
	return g, nil
}

// StartGame installs a shuffled deck, deals the first hands and opens the
// draft of round one.
func (e *Engine) StartGame(g *Game, deck []*Card) error {
	const op = "start game"

	if g.State != rules.GameStateLobby {
		return stateErrorf(op, "game is %s, want %s", g.State, rules.GameStateLobby)
	}
	if err := e.checkPlayerCount(op, len(g.Players)); err != nil {
		return err
	}

	g.DevelopmentDeck = make([]*Card, 0, len(deck))
	for _, card := range deck {
		card.normalize()
		g.DevelopmentDeck = append(g.DevelopmentDeck, card)
	}
	g.CurrentRound = 1
	g.CurrentPhase = rules.PhaseDraft
	g.CurrentDraftDirection = rules.Clockwise
	g.CurrentProductionStep = nil
	g.State = rules.GameStateInProgress
	g.clearDrafted()
	for _, p := range g.Players {
		p.IsReady = false
	}

	e.DealHands(g)
	e.touch(g)

	e.logger.Info("game started",
		gameField(g),
		zap.Int("players", len(g.Players)),
		zap.Int("deck_size", len(deck)),
	)
	return nil
}

// DealHands gives every player HandSize cards plus one per extra-card-draw
// card in their empire, taken from the top of the deck. Dealing stops
// quietly once the deck runs out.
func (e *Engine) DealHands(g *Game) {
	for _, p := range g.Players {
		want := e.rules.HandSize + p.CountAbility(AbilityExtraCardDraw)
		n := min(want, len(g.DevelopmentDeck))
		p.Hand = append(p.Hand, g.DevelopmentDeck[:n]...)
		g.DevelopmentDeck = g.DevelopmentDeck[n:]

		if n < want {
			e.logger.Warn("deck exhausted while dealing",
				gameField(g),
				zap.String("player_id", p.ID.String()),
				zap.Int("wanted", want),
				zap.Int("dealt", n),
			)
		}
	}
}

func (e *Engine) checkPlayerCount(op string, n int) error {
	if n < e.rules.MinPlayers || n > e.rules.MaxPlayers {
		return ruleErrorf(op, "need %d to %d players, got %d", e.rules.MinPlayers, e.rules.MaxPlayers, n)
	}
	return nil
}
