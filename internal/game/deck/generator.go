package deck

import (
	"math/rand/v2"
	"time"

	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/game/resources"
)

// Templates are the card names cycled through when building a deck.
var Templates = []string{
	"Recycling Plant",
	"Wind Turbines",
	"Research Lab",
	"Financial District",
	"Space Station",
	"Hydroelectric Dam",
	"Quantum Computer",
	"Stock Exchange",
	"Mars Colony",
	"Fusion Reactor",
	"AI Research Center",
	"Orbital Hotel",
	"Underwater City",
	"Time Machine",
	"Antimatter Factory",
}

// abilityChance is the share of cards that carry a special ability, in percent.
const abilityChance = 20

// Generator builds shuffled decks from an explicit random source. Two
// generators created with the same seed produce identical decks apart from
// card IDs.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomGenerator returns a generator seeded from the clock.
func NewRandomGenerator() *Generator {
	return NewGenerator(uint64(time.Now().UnixNano()))
}

// Generate builds a deck of size cards and shuffles it.
func (gen *Generator) Generate(size int) []*game.Card {
	cards := make([]*game.Card, 0, max(size, 0))
	for i := 0; i < size; i++ {
		cards = append(cards, gen.card(i))
	}
	gen.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

func (gen *Generator) card(i int) *game.Card {
	card := game.NewCard(Templates[i%len(Templates)], game.CardType(i%game.NumCardTypes))
	card.ConstructionCost = gen.amounts(1, 3, resources.All())
	card.Production = gen.amounts(1, 2, resources.BaseTypes())
	card.RecyclingBonus = gen.baseType()
	card.VictoryPoints = gen.between(1, 5)
	card.ComboVictoryPoints = gen.between(0, 2)
	card.GeneralBonus = gen.between(0, 1)
	card.FinancierBonus = gen.between(0, 1)
	if gen.rng.IntN(100) < abilityChance {
		card.SpecialAbility = game.SpecialAbility(gen.between(1, game.NumAbilities-1))
	}
	return card
}

// amounts picks between lo and hi distinct resources from types, each worth
// one to three units. Costs may ask for Krystallium; production never yields it.
func (gen *Generator) amounts(lo, hi int, types []resources.ResourceType) resources.Amounts {
	out := make(resources.Amounts)
	for _, i := range gen.rng.Perm(len(types))[:gen.between(lo, hi)] {
		out[types[i]] = gen.between(1, 3)
	}
	return out
}

func (gen *Generator) baseType() resources.ResourceType {
	base := resources.BaseTypes()
	return base[gen.rng.IntN(len(base))]
}

// between returns a uniform value in [lo, hi].
func (gen *Generator) between(lo, hi int) int {
	return lo + gen.rng.IntN(hi-lo+1)
}
