package filterator

import (
	"github.com/roach88/filterator/internal/attrpath"
	"github.com/roach88/filterator/internal/constraint"
)

// Lookup is one keyword filter such as {Key: "age__gte", Value: 18}.
type Lookup = constraint.Lookup

// Lookups is an ordered set of keyword filters combined with AND.
// A nil Lookups applies no keyword filters.
type Lookups = constraint.Lookups

// Operator is a comparison keyword such as "gte" or "istartswith".
type Operator = constraint.Operator

// FieldGetter lets an item expose its attributes without reflection.
// GetField returns false when the item has no attribute called name.
type FieldGetter = attrpath.Getter

// Where starts a Lookups with key and value. Chain further keys with And:
//
//	filterator.Where("sex", "F").And("age__lt", 10)
func Where(key string, value any) Lookups {
	return constraint.Where(key, value)
}

// Operators returns the supported operator keywords.
func Operators() []Operator {
	return constraint.Operators()
}
