package game

import (
	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
)

// Zone identifies one of a player's card collections.
type Zone int

const (
	ZoneHand Zone = iota
	ZoneDrafting
	ZoneConstruction
	ZoneEmpire
)

var zoneNames = map[Zone]string{
	ZoneHand:         "hand",
	ZoneDrafting:     "drafting area",
	ZoneConstruction: "construction area",
	ZoneEmpire:       "empire",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return "unknown zone"
}

// Player is a participant and everything they own.
type Player struct {
	ID                    uuid.UUID        `json:"id"`
	Name                  string           `json:"name"`
	Hand                  []*Card          `json:"hand"`
	DraftingArea          []*Card          `json:"drafting_area"`
	ConstructionArea      []*Card          `json:"construction_area"`
	Empire                []*Card          `json:"empire"`
	Resources             resources.Pool   `json:"resources"`
	Characters            resources.Tokens `json:"characters"`
	DiscardedResourcePool int              `json:"discarded_resource_pool"`
	IsReady               bool             `json:"is_ready"`
	HasDraftedThisRound   bool             `json:"has_drafted_this_round"`
}

// NewPlayer creates a player with a fresh ID and empty zones.
func NewPlayer(name string) *Player {
	return &Player{
		ID:               uuid.New(),
		Name:             name,
		Hand:             make([]*Card, 0),
		DraftingArea:     make([]*Card, 0),
		ConstructionArea: make([]*Card, 0),
		Empire:           make([]*Card, 0),
	}
}

func (p *Player) zone(z Zone) *[]*Card {
	switch z {
	case ZoneHand:
		return &p.Hand
	case ZoneDrafting:
		return &p.DraftingArea
	case ZoneConstruction:
		return &p.ConstructionArea
	case ZoneEmpire:
		return &p.Empire
	default:
		return nil
	}
}

// Card finds a card in one of the player's zones.
func (p *Player) Card(z Zone, cardID uuid.UUID) (*Card, error) {
	cards := p.zone(z)
	if cards != nil {
		for _, card := range *cards {
			if card.ID == cardID {
				return card, nil
			}
		}
	}
	return nil, &NotFoundError{Kind: "card", ID: cardID.String(), Where: "player's " + z.String()}
}

// moveCard relocates a card between two of the player's zones.
// The caller has already checked that the card is in from.
func (p *Player) moveCard(cardID uuid.UUID, from, to Zone) *Card {
	src := p.zone(from)
	for i, card := range *src {
		if card.ID != cardID {
			continue
		}
		*src = append((*src)[:i:i], (*src)[i+1:]...)
		if to >= 0 {
			dst := p.zone(to)
			*dst = append(*dst, card)
		}
		return card
	}
	return nil
}

// removeCard takes a card out of a zone without placing it anywhere.
func (p *Player) removeCard(cardID uuid.UUID, from Zone) *Card {
	return p.moveCard(cardID, from, -1)
}

// CountAbility counts empire cards bearing ability.
func (p *Player) CountAbility(ability SpecialAbility) int {
	n := 0
	for _, card := range p.Empire {
		if card.SpecialAbility == ability {
			n++
		}
	}
	return n
}

// CostReduction is the number of cost units removed from cards under
// construction, one per reduced-construction-cost card in the empire.
func (p *Player) CostReduction() int {
	return p.CountAbility(AbilityReducedConstructionCost)
}

// CardCount returns the number of cards the player holds across every zone.
func (p *Player) CardCount() int {
	return len(p.Hand) + len(p.DraftingArea) + len(p.ConstructionArea) + len(p.Empire)
}

func (p *Player) normalize() {
	for _, z := range []Zone{ZoneHand, ZoneDrafting, ZoneConstruction, ZoneEmpire} {
		cards := p.zone(z)
		if *cards == nil {
			*cards = make([]*Card, 0)
		}
		for _, card := range *cards {
			card.normalize()
		}
	}
}
