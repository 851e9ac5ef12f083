package game

import (
	"maps"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/game/rules"
)

// Score is a player's final victory points split by source.
type Score struct {
	Gross     int `json:"gross"`
	Combo     int `json:"combo"`
	General   int `json:"general"`
	Financier int `json:"financier"`
}

// Total returns the sum of every part.
func (s Score) Total() int {
	return s.Gross + s.Combo + s.General + s.Financier
}

// ScoreBreakdown computes a player's victory points from their empire and
// character tokens.
func ScoreBreakdown(p *Player) Score {
	var typeCounts [NumCardTypes]int
	for _, card := range p.Empire {
		if card.Type >= 0 && int(card.Type) < NumCardTypes {
			typeCounts[card.Type]++
		}
	}

	s := Score{
		General:   p.Characters.Get(resources.General),
		Financier: p.Characters.Get(resources.Financier),
	}
	for _, card := range p.Empire {
		s.Gross += card.VictoryPoints
		if card.Type >= 0 && int(card.Type) < NumCardTypes {
			s.Combo += card.ComboVictoryPoints * (typeCounts[card.Type] - 1)
		}
		s.General += card.CharacterBonus(resources.General)
		s.Financier += card.CharacterBonus(resources.Financier)
	}
	return s
}

// CalculateFinalScores returns every player's final score. Scores are fixed
// when the game finishes; later calls return a copy of the same figures.
func (e *Engine) CalculateFinalScores(g *Game) (map[uuid.UUID]int, error) {
	const op = "calculate final scores"

	if g.State != rules.GameStateFinished {
		return nil, stateErrorf(op, "game is %s, want %s", g.State, rules.GameStateFinished)
	}
	if g.FinalScores == nil {
		e.settleScores(g)
		e.touch(g)
	}
	return maps.Clone(g.FinalScores), nil
}

func (e *Engine) settleScores(g *Game) {
	if g.FinalScores != nil {
		return
	}
	scores := make(map[uuid.UUID]int, len(g.Players))
	for _, p := range g.Players {
		scores[p.ID] = ScoreBreakdown(p).Total()
	}
	g.FinalScores = scores
	g.WinnerID = determineWinner(g.Players, scores)
}

// determineWinner picks the highest score. Ties go to the most empire cards,
// then to the most character tokens; a tie past both leaves no winner.
func determineWinner(players []*Player, scores map[uuid.UUID]int) *uuid.UUID {
	contenders := players
	for _, key := range []func(*Player) int{
		func(p *Player) int { return scores[p.ID] },
		func(p *Player) int { return len(p.Empire) },
		func(p *Player) int { return p.Characters.Total() },
	} {
		contenders = leaders(contenders, key)
		if len(contenders) == 1 {
			id := contenders[0].ID
			return &id
		}
	}
	return nil
}

func leaders(players []*Player, key func(*Player) int) []*Player {
	var best []*Player
	top := 0
	for _, p := range players {
		v := key(p)
		switch {
		case len(best) == 0 || v > top:
			best = []*Player{p}
			top = v
		case v == top:
			best = append(best, p)
		}
	}
	return best
}
