package constraint

import "strings"

// Lookup is one keyword filter: a key such as "age__gte" and its expected value.
type Lookup struct {
	Key   string
	Value any
}

// Lookups is an ordered set of keyword filters combined with AND.
//
// Order is preserved so constraints are evaluated in the order given.
// Later duplicates do not replace earlier ones; both apply.
type Lookups []Lookup

// L is a shorthand for Lookup{Key: key, Value: value}.
func L(key string, value any) Lookup {
	return Lookup{Key: key, Value: value}
}

// Where starts a Lookups with a single key.
func Where(key string, value any) Lookups {
	return Lookups{{Key: key, Value: value}}
}

// And returns a copy of ls with key appended. ls is not modified.
func (ls Lookups) And(key string, value any) Lookups {
	out := make(Lookups, len(ls), len(ls)+1)
	copy(out, ls)
	return append(out, Lookup{Key: key, Value: value})
}

// Keys returns the lookup keys in order.
func (ls Lookups) Keys() []string {
	keys := make([]string, len(ls))
	for i, l := range ls {
		keys[i] = l.Key
	}
	return keys
}

// String renders the lookups as "k=v, k2=v2".
func (ls Lookups) String() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.Key + "=" + formatValue(l.Value)
	}
	return strings.Join(parts, ", ")
}
