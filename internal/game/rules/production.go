package rules

import "github.com/iaww/iaww-server-go/internal/game/resources"

// productionSequence is the fixed order in which resources are produced.
// The premium currency is never produced directly.
var productionSequence = []resources.ResourceType{
	resources.Materials,
	resources.Energy,
	resources.Science,
	resources.Gold,
	resources.Exploration,
}

// ProductionSequence returns a copy of the production step order.
func ProductionSequence() []resources.ResourceType {
	sequence := make([]resources.ResourceType, len(productionSequence))
	copy(sequence, productionSequence)
	return sequence
}

// FirstProductionStep returns the resource produced in the first step.
func FirstProductionStep() resources.ResourceType {
	return productionSequence[0]
}

// NextProductionStep returns the step after current. ok is false once the
// sequence is exhausted or current is not a production step.
func NextProductionStep(current resources.ResourceType) (next resources.ResourceType, ok bool) {
	for i, step := range productionSequence {
		if step != current {
			continue
		}
		if i+1 < len(productionSequence) {
			return productionSequence[i+1], true
		}
		return 0, false
	}
	return 0, false
}

// Conversion is a fixed exchange rate applied by resource-conversion abilities.
type Conversion struct {
	From resources.ResourceType
	To   resources.ResourceType
	Rate int
}

// conversions are applied in this order.
var conversions = []Conversion{
	{From: resources.Materials, To: resources.Krystallium, Rate: 3},
	{From: resources.Energy, To: resources.Science, Rate: 2},
	{From: resources.Gold, To: resources.Exploration, Rate: 2},
}

// Conversions returns the resource-conversion table.
func Conversions() []Conversion {
	out := make([]Conversion, len(conversions))
	copy(out, conversions)
	return out
}
