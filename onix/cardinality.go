package onix

import (
	"maps"
	"slices"

	"github.com/beevik/etree"
)

// Occurs limits how many times a child element may appear in a product. Zero
// means no limit.
type Occurs struct {
	Min int
	Max int
}

// Cardinality lists occurrence rules checked once when a product is created.
var Cardinality = map[string]Occurs{
	"ProductIdentifier": {Min: 1},
}

// CheckCardinality verifies direct children of root against rules, names are
// checked in sorted order and the first violation is returned.
func CheckCardinality(root *etree.Element, rules map[string]Occurs) error {
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		rule := rules[name]
		if rule.Min == 0 && rule.Max == 0 {
			continue
		}
		count := len(root.SelectElements(name))
		if rule.Min > 0 && count < rule.Min {
			return &StructuralError{Element: name, Min: rule.Min, Max: rule.Max, Count: count}
		}
		if rule.Max > 0 && count > rule.Max {
			return &StructuralError{Element: name, Min: rule.Min, Max: rule.Max, Count: count}
		}
	}
	return nil
}
