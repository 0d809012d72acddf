package constraint

import (
	"strings"

	"github.com/roach88/filterator/internal/attrpath"
)

// ParseKey splits key into an attribute path and an operator.
//
// The key is split on its last separator. When the suffix is a supported
// keyword the prefix is the path; otherwise the whole key is the path and
// the operator is Exact. This is how "vehicle__type" (nested attribute) is
// told apart from "age__gte" (attribute + operator).
func ParseKey(key string) (string, Operator) {
	idx := strings.LastIndex(key, attrpath.Separator)
	if idx < 0 {
		return key, Exact
	}
	if op, ok := ParseOperator(key[idx+len(attrpath.Separator):]); ok {
		return key[:idx], op
	}
	return key, Exact
}

// Build creates the constraint described by a filter key and its expected value.
func Build(key string, value any) (*Field, error) {
	path, op := ParseKey(key)
	return New(path, op, value)
}

// BuildAll builds one constraint per lookup, in order.
// Returns the first construction error; no partial result is returned.
func BuildAll(lookups Lookups) ([]Constraint, error) {
	out := make([]Constraint, 0, len(lookups))
	for _, l := range lookups {
		c, err := Build(l.Key, l.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
