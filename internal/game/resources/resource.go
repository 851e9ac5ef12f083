package resources

import (
	"fmt"
	"strings"
)

// ResourceType represents a type of resource. Values are ordinals into Pool.
type ResourceType int

const (
	Materials ResourceType = iota
	Energy
	Science
	Gold
	Exploration
	Krystallium // premium currency, obtained only through conversion
)

// NumResources is the number of resource types, premium currency included.
const NumResources = 6

var resourceNames = [NumResources]string{
	Materials:   "MATERIALS",
	Energy:      "ENERGY",
	Science:     "SCIENCE",
	Gold:        "GOLD",
	Exploration: "EXPLORATION",
	Krystallium: "KRYSTALLIUM",
}

// resourceSymbols are the single-letter symbols used in cost notation.
var resourceSymbols = [NumResources]string{
	Materials:   "M",
	Energy:      "E",
	Science:     "S",
	Gold:        "G",
	Exploration: "X",
	Krystallium: "K",
}

// All returns every resource type in canonical order.
func All() []ResourceType {
	return []ResourceType{Materials, Energy, Science, Gold, Exploration, Krystallium}
}

// BaseTypes returns the five produced resource types in canonical order.
func BaseTypes() []ResourceType {
	return []ResourceType{Materials, Energy, Science, Gold, Exploration}
}

// Valid reports whether r is a known resource type.
func (r ResourceType) Valid() bool {
	return r >= Materials && r <= Krystallium
}

// IsPremium reports whether r is the premium currency.
func (r ResourceType) IsPremium() bool {
	return r == Krystallium
}

func (r ResourceType) String() string {
	if r.Valid() {
		return resourceNames[r]
	}
	return fmt.Sprintf("RESOURCE_%d", int(r))
}

// Symbol returns the cost-notation symbol for r.
func (r ResourceType) Symbol() string {
	if r.Valid() {
		return resourceSymbols[r]
	}
	return "?"
}

// MarshalText encodes the resource by name so it can key JSON objects.
func (r ResourceType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid resource type %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a resource name.
func (r *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseResourceType parses a resource name or symbol, case-insensitively.
func ParseResourceType(s string) (ResourceType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range resourceNames {
		if s == name || s == resourceSymbols[i] {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource type: %q", s)
}

// CharacterType represents a character token role.
type CharacterType int

const (
	General CharacterType = iota
	Financier
)

// NumCharacters is the number of character roles.
const NumCharacters = 2

var characterNames = [NumCharacters]string{
	General:   "GENERAL",
	Financier: "FINANCIER",
}

// Characters returns every character role.
func Characters() []CharacterType {
	return []CharacterType{General, Financier}
}

func (c CharacterType) Valid() bool {
	return c >= General && c <= Financier
}

func (c CharacterType) String() string {
	if c.Valid() {
		return characterNames[c]
	}
	return fmt.Sprintf("CHARACTER_%d", int(c))
}

func (c CharacterType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid character type %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *CharacterType) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	for i, name := range characterNames {
		if s == name {
			*c = CharacterType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown character type: %q", s)
}
