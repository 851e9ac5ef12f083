package resources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Amounts is a sparse mapping from resource type to a quantity. It describes
// construction costs, production yields and recycling bonuses.
type Amounts map[ResourceType]int

var symbolPattern = regexp.MustCompile(`\{([^}]*)\}`)

// ParseAmounts parses cost notation such as "{M}{M}{E}" or "{M2}{E}".
// Symbols: M materials, E energy, S science, G gold, X exploration, K krystallium.
// An optional count may follow the symbol.
func ParseAmounts(s string) (Amounts, error) {
	out := make(Amounts)
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("invalid resource notation: %q", s)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		if symbol == "" {
			return nil, fmt.Errorf("empty resource symbol in %q", s)
		}

		r, err := ParseResourceType(symbol[:1])
		if err != nil {
			return nil, fmt.Errorf("unknown resource symbol: {%s}", symbol)
		}

		count := 1
		if len(symbol) > 1 {
			count, err = strconv.Atoi(symbol[1:])
			if err != nil || count <= 0 {
				return nil, fmt.Errorf("invalid count in symbol: {%s}", symbol)
			}
		}
		out[r] += count
	}

	return out, nil
}

// MustParseAmounts is like ParseAmounts but panics on error. Intended for
// fixed tables and tests.
func MustParseAmounts(s string) Amounts {
	a, err := ParseAmounts(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Get returns the amount for r, zero if absent.
func (a Amounts) Get(r ResourceType) int {
	return a[r]
}

// Has reports whether r appears with a positive amount.
func (a Amounts) Has(r ResourceType) bool {
	return a[r] > 0
}

// Total returns the sum of all amounts.
func (a Amounts) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// Types returns the resource types present, in canonical order.
func (a Amounts) Types() []ResourceType {
	types := make([]ResourceType, 0, len(a))
	for _, r := range All() {
		if a[r] > 0 {
			types = append(types, r)
		}
	}
	return types
}

// Copy returns an independent copy.
func (a Amounts) Copy() Amounts {
	out := make(Amounts, len(a))
	for r, n := range a {
		out[r] = n
	}
	return out
}

// String renders the amounts in cost notation, canonical order.
func (a Amounts) String() string {
	var b strings.Builder
	for _, r := range a.Types() {
		if a[r] == 1 {
			fmt.Fprintf(&b, "{%s}", r.Symbol())
		} else {
			fmt.Fprintf(&b, "{%s%d}", r.Symbol(), a[r])
		}
	}
	return b.String()
}

// Reduce removes n units from the amounts one at a time, always from the
// currently largest entry (ties go to the earlier resource in canonical
// order). No entry drops below one unit. The receiver is not modified.
func (a Amounts) Reduce(n int) Amounts {
	out := a.Copy()
	for ; n > 0; n-- {
		best := ResourceType(-1)
		for _, r := range out.Types() {
			if out[r] <= 1 {
				continue
			}
			if best < 0 || out[r] > out[best] {
				best = r
			}
		}
		if best < 0 {
			break
		}
		out[best]--
	}
	return out
}
