package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
)

// CardType is the category of a development card. Same-type cards score combo points.
type CardType int

const (
	CardTypeStructure CardType = iota
	CardTypeVehicle
	CardTypeResearch
	CardTypeProject
	CardTypeDiscovery
)

// NumCardTypes is the number of card categories.
const NumCardTypes = 5

var cardTypeNames = map[CardType]string{
	CardTypeStructure: "STRUCTURE",
	CardTypeVehicle:   "VEHICLE",
	CardTypeResearch:  "RESEARCH",
	CardTypeProject:   "PROJECT",
	CardTypeDiscovery: "DISCOVERY",
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CARD_TYPE_%d", int(t))
}

func (t CardType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CardType) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	for v, name := range cardTypeNames {
		if name == s {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown card type: %q", s)
}

// SpecialAbility is the optional ability printed on a card.
type SpecialAbility int

const (
	AbilityNone SpecialAbility = iota
	AbilityDoubleProduction
	AbilityExtraCardDraw
	AbilityResourceConversion
	AbilityVictoryPointBonus
	AbilityReducedConstructionCost
)

// NumAbilities counts every ability value, AbilityNone included.
const NumAbilities = 6

var abilityNames = map[SpecialAbility]string{
	AbilityNone:                    "NONE",
	AbilityDoubleProduction:        "DOUBLE_PRODUCTION",
	AbilityExtraCardDraw:           "EXTRA_CARD_DRAW",
	AbilityResourceConversion:      "RESOURCE_CONVERSION",
	AbilityVictoryPointBonus:       "VICTORY_POINT_BONUS",
	AbilityReducedConstructionCost: "REDUCED_CONSTRUCTION_COST",
}

func (a SpecialAbility) String() string {
	if name, ok := abilityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ABILITY_%d", int(a))
}

func (a SpecialAbility) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *SpecialAbility) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	for v, name := range abilityNames {
		if name == s {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("unknown special ability: %q", s)
}

// Card is a development card. Everything except InvestedResources (and the
// victory points raised by a victory-point-bonus ability) is fixed when the
// deck is generated.
type Card struct {
	ID                 uuid.UUID              `json:"id"`
	Name               string                 `json:"name"`
	Type               CardType               `json:"type"`
	ConstructionCost   resources.Amounts      `json:"construction_cost"`
	Production         resources.Amounts      `json:"production"`
	VictoryPoints      int                    `json:"victory_points"`
	ComboVictoryPoints int                    `json:"combo_victory_points"`
	GeneralBonus       int                    `json:"general_bonus"`
	FinancierBonus     int                    `json:"financier_bonus"`
	RecyclingBonus     resources.ResourceType `json:"recycling_bonus"`
	SpecialAbility     SpecialAbility         `json:"special_ability"`
	InvestedResources  resources.Amounts      `json:"invested_resources"`
}

// NewCard creates a card with a fresh ID and empty cost, production and investment.
func NewCard(name string, cardType CardType) *Card {
	return &Card{
		ID:                uuid.New(),
		Name:              name,
		Type:              cardType,
		ConstructionCost:  make(resources.Amounts),
		Production:        make(resources.Amounts),
		InvestedResources: make(resources.Amounts),
	}
}

// EffectiveCost is the construction cost after removing reduction units.
func (c *Card) EffectiveCost(reduction int) resources.Amounts {
	if reduction <= 0 {
		return c.ConstructionCost.Copy()
	}
	return c.ConstructionCost.Reduce(reduction)
}

// Invested returns the units of r contributed so far.
func (c *Card) Invested(r resources.ResourceType) int {
	return c.InvestedResources[r]
}

// RemainingCost returns what is still missing before the card is constructed.
func (c *Card) RemainingCost(reduction int) resources.Amounts {
	remaining := make(resources.Amounts)
	for r, need := range c.EffectiveCost(reduction) {
		if missing := need - c.InvestedResources[r]; missing > 0 {
			remaining[r] = missing
		}
	}
	return remaining
}

// IsConstructed reports whether every resource of the effective cost is fully invested.
func (c *Card) IsConstructed(reduction int) bool {
	return len(c.RemainingCost(reduction)) == 0
}

// ProductionOf returns what the card yields of r in a production step.
func (c *Card) ProductionOf(r resources.ResourceType) int {
	n := c.Production[r]
	if c.SpecialAbility == AbilityDoubleProduction {
		n *= 2
	}
	return n
}

// CharacterBonus returns the card's victory-point bonus for a character role.
func (c *Card) CharacterBonus(role resources.CharacterType) int {
	switch role {
	case resources.General:
		return c.GeneralBonus
	case resources.Financier:
		return c.FinancierBonus
	default:
		return 0
	}
}

func (c *Card) String() string {
	return fmt.Sprintf("%s(%s %s cost=%s prod=%s vp=%d)",
		c.Name, c.ID, c.Type, c.ConstructionCost, c.Production, c.VictoryPoints)
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	out := *c
	out.ConstructionCost = c.ConstructionCost.Copy()
	out.Production = c.Production.Copy()
	out.InvestedResources = c.InvestedResources.Copy()
	return &out
}

func cloneCards(cards []*Card) []*Card {
	out := make([]*Card, len(cards))
	for i, card := range cards {
		out[i] = card.Clone()
	}
	return out
}

// normalize fills maps left nil by decoding.
func (c *Card) normalize() {
	if c.ConstructionCost == nil {
		c.ConstructionCost = make(resources.Amounts)
	}
	if c.Production == nil {
		c.Production = make(resources.Amounts)
	}
	if c.InvestedResources == nil {
		c.InvestedResources = make(resources.Amounts)
	}
}
