package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficient is returned when a pool holds fewer units than requested.
var ErrInsufficient = errors.New("insufficient resources")

// Pool holds a player's resource counters, one slot per resource type.
// The zero value is an empty pool. Counters never go below zero.
type Pool [NumResources]int

// NewPool creates a pool from a sparse set of amounts.
func NewPool(amounts Amounts) Pool {
	var p Pool
	for r, n := range amounts {
		p.Add(r, n)
	}
	return p
}

// Add adds units of a resource. Non-positive amounts and unknown types are ignored.
func (p *Pool) Add(r ResourceType, amount int) {
	if amount <= 0 || !r.Valid() {
		return
	}
	p[r] += amount
}

// Spend removes units of a resource.
// Returns ErrInsufficient and leaves the pool untouched if not enough are held.
func (p *Pool) Spend(r ResourceType, amount int) error {
	if amount <= 0 {
		return nil
	}
	if !r.Valid() {
		return fmt.Errorf("invalid resource type %d", int(r))
	}
	if p[r] < amount {
		return fmt.Errorf("%w: need %d %s, have %d", ErrInsufficient, amount, r, p[r])
	}
	p[r] -= amount
	return nil
}

// Get returns the amount held of a resource.
func (p *Pool) Get(r ResourceType) int {
	if !r.Valid() {
		return 0
	}
	return p[r]
}

// Take removes and returns every unit of a resource.
func (p *Pool) Take(r ResourceType) int {
	if !r.Valid() {
		return 0
	}
	n := p[r]
	p[r] = 0
	return n
}

// Total returns the number of units held across all resource types.
func (p *Pool) Total() int {
	total := 0
	for _, n := range p {
		total += n
	}
	return total
}

// Convert exchanges whole multiples of rate units of from for one unit of to each.
// Returns the number of units of to gained; the remainder of from is kept.
func (p *Pool) Convert(from, to ResourceType, rate int) int {
	if rate <= 0 || !from.Valid() || !to.Valid() {
		return 0
	}
	gained := p[from] / rate
	if gained == 0 {
		return 0
	}
	p[from] -= gained * rate
	p[to] += gained
	return gained
}

// Clear empties the pool.
func (p *Pool) Clear() {
	*p = Pool{}
}

// Amounts returns the non-zero counters as a sparse mapping.
func (p Pool) Amounts() Amounts {
	out := make(Amounts)
	for i, n := range p {
		if n != 0 {
			out[ResourceType(i)] = n
		}
	}
	return out
}

func (p Pool) String() string {
	parts := make([]string, 0, NumResources)
	for i, n := range p {
		parts = append(parts, fmt.Sprintf("%s=%d", ResourceType(i), n))
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes the pool as an object keyed by resource name with every type present.
func (p Pool) MarshalJSON() ([]byte, error) {
	m := make(map[ResourceType]int, NumResources)
	for i, n := range p {
		m[ResourceType(i)] = n
	}
	return json.Marshal(m)
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	var m map[ResourceType]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Pool
	for r, n := range m {
		if n < 0 {
			return fmt.Errorf("negative amount %d for %s", n, r)
		}
		out[r] = n
	}
	*p = out
	return nil
}

// Tokens holds a player's character tokens, one slot per role.
type Tokens [NumCharacters]int

// Add adds tokens of a role. Non-positive amounts are ignored.
func (t *Tokens) Add(c CharacterType, amount int) {
	if amount <= 0 || !c.Valid() {
		return
	}
	t[c] += amount
}

func (t *Tokens) Get(c CharacterType) int {
	if !c.Valid() {
		return 0
	}
	return t[c]
}

// Total returns the combined token count across both roles.
func (t *Tokens) Total() int {
	return t[General] + t[Financier]
}

func (t Tokens) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[CharacterType]int{
		General:   t[General],
		Financier: t[Financier],
	})
}

func (t *Tokens) UnmarshalJSON(data []byte) error {
	var m map[CharacterType]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Tokens
	for c, n := range m {
		out[c] = n
	}
	*t = out
	return nil
}
