// Package constraint turns keyword filter keys into evaluable predicates.
//
// A key such as "age__gte" names an attribute path ("age") and an operator
// keyword ("gte"). Build splits the key, picks the operator and validates
// the expected value. Keys whose final segment is not a keyword are whole
// paths compared with Exact, so "vehicle__type" means the nested attribute.
//
// SEALED INTERFACE:
//
// Constraint is sealed with a marker method. Only Field, Predicate, All and
// Not implement it:
//
//	switch c := c.(type) {
//	case *Field:     // path + operator + expected value
//	case Predicate:  // caller-supplied func(any) bool
//	case All:        // conjunction, vacuously true
//	case Not:        // negation
//	}
//
// Construction never touches items. Fits never mutates the item or the
// constraint, so one constraint may be evaluated from several goroutines.
package constraint
