package constraint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/filterator/internal/attrpath"
	"github.com/roach88/filterator/internal/ir"
)

// Constraint is a predicate over a single item.
//
// This is a sealed interface - only types in this package implement it.
type Constraint interface {
	// Fits reports whether item satisfies the constraint.
	Fits(item any) (bool, error)

	constraintNode()
}

// Field compares the value at Path against Value using Op.
//
// Semantics:
//
//	resolve(item, Path) <Op> Value
//
// Fields are built with New or Build and are immutable afterwards.
type Field struct {
	path    string
	op      Operator
	value   any
	pattern *regexp.Regexp
}

func (*Field) constraintNode() {}

// New creates a Field for path, op and value.
//
// Fails with UNSUPPORTED_OPERATOR when op is not a supported keyword, and
// with INVALID_VALUE when value cannot serve op: string operators need a
// string, regex needs a compilable pattern, isnull needs a bool and count
// needs an integer.
func New(path string, op Operator, value any) (*Field, error) {
	if _, err := attrpath.Split(path); err != nil {
		return nil, err
	}
	if !op.Valid() {
		return nil, ir.NewUnsupportedOperatorError(path, string(op))
	}

	f := &Field{path: path, op: op, value: value}

	if op.stringValued() {
		s, err := ir.AsString(value)
		if err != nil {
			return nil, ir.NewInvalidValueError(path, string(op), "%s expects a string, got %T", op, value)
		}
		if op == Regex {
			re, err := compileAnchored(s)
			if err != nil {
				return nil, &ir.Error{
					Code:     ir.ErrCodeInvalidValue,
					Message:  fmt.Sprintf("invalid pattern %q", s),
					Path:     path,
					Operator: string(op),
					Cause:    err,
				}
			}
			f.pattern = re
		}
	}

	switch op {
	case IsNull:
		if _, ok := value.(bool); !ok {
			return nil, ir.NewInvalidValueError(path, string(op), "isnull expects a bool, got %T", value)
		}
	case Count:
		if !ir.IsInteger(value) {
			return nil, ir.NewInvalidValueError(path, string(op), "count expects an integer, got %T", value)
		}
	}

	return f, nil
}

// compileAnchored compiles pattern so it only matches at the start of the
// value. The pattern is validated on its own first so an unbalanced ")"
// cannot close the anchoring group.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// Path returns the attribute path.
func (f *Field) Path() string { return f.path }

// Operator returns the comparison keyword.
func (f *Field) Operator() Operator { return f.op }

// Value returns the expected value.
func (f *Field) Value() any { return f.value }

// String renders the constraint as a key=value lookup.
func (f *Field) String() string {
	if f.op == Exact {
		return f.path + "=" + formatValue(f.value)
	}
	return f.path + attrpath.Separator + string(f.op) + "=" + formatValue(f.value)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

// Fits resolves Path on item and applies the operator.
func (f *Field) Fits(item any) (bool, error) {
	actual, err := attrpath.Resolve(item, f.path)
	if err != nil {
		return false, err
	}

	ok, err := f.apply(actual)
	if err != nil {
		return false, ir.WithPath(err, f.path)
	}
	return ok, nil
}

func (f *Field) apply(actual any) (bool, error) {
	switch f.op {
	case Exact:
		return ir.Equal(actual, f.value), nil
	case Contains:
		return ir.Contains(actual, f.value)
	case Gt, Gte, Lt, Lte:
		c, err := ir.Compare(actual, f.value)
		if err != nil {
			return false, err
		}
		return compareHolds(f.op, c), nil
	case IsNull:
		return ir.Truthy(actual) == f.value.(bool), nil
	case Count:
		n, err := ir.Len(actual)
		if err != nil {
			return false, err
		}
		return ir.Equal(n, f.value), nil
	case IExact, StartsWith, IStartsWith, EndsWith, IEndsWith, Regex:
		return f.applyString(actual)
	}
	return false, ir.NewUnsupportedOperatorError(f.path, string(f.op))
}

func (f *Field) applyString(actual any) (bool, error) {
	s, err := ir.AsString(actual)
	if err != nil {
		return false, err
	}
	if f.op == Regex {
		return f.pattern.MatchString(s), nil
	}

	expected, _ := ir.AsString(f.value)
	if f.op.caseInsensitive() {
		s, expected = ir.Fold(s), ir.Fold(expected)
	}

	switch f.op {
	case IExact:
		return s == expected, nil
	case StartsWith, IStartsWith:
		return strings.HasPrefix(s, expected), nil
	default:
		return strings.HasSuffix(s, expected), nil
	}
}

func compareHolds(op Operator, c int) bool {
	switch op {
	case Gt:
		return c > 0
	case Gte:
		return c >= 0
	case Lt:
		return c < 0
	default:
		return c <= 0
	}
}

// Predicate adapts a caller-supplied function to a Constraint.
// It is not tied to an attribute path.
type Predicate func(item any) bool

func (Predicate) constraintNode() {}

// Fits calls the function.
func (p Predicate) Fits(item any) (bool, error) {
	return p(item), nil
}

// All is a conjunction of constraints.
//
// Semantics:
//   - evaluates constraints in order and stops at the first false or error
//   - returns true for an empty slice (vacuous truth)
type All []Constraint

func (All) constraintNode() {}

// Fits reports whether every constraint fits item.
func (a All) Fits(item any) (bool, error) {
	for _, c := range a {
		ok, err := c.Fits(item)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Not negates a constraint. Errors pass through unchanged.
type Not struct {
	Constraint Constraint
}

func (Not) constraintNode() {}

// Fits reports whether the wrapped constraint does not fit item.
func (n Not) Fits(item any) (bool, error) {
	ok, err := n.Constraint.Fits(item)
	if err != nil {
		return false, err
	}
	return !ok, nil
}
