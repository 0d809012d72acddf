package constraint

// Operator is a comparison keyword accepted after the final "__" of a key.
type Operator string

const (
	Exact       Operator = "exact"
	IExact      Operator = "iexact"
	Contains    Operator = "contains"
	StartsWith  Operator = "startswith"
	IStartsWith Operator = "istartswith"
	EndsWith    Operator = "endswith"
	IEndsWith   Operator = "iendswith"
	Regex       Operator = "regex"
	Gt          Operator = "gt"
	Gte         Operator = "gte"
	Lt          Operator = "lt"
	Lte         Operator = "lte"
	IsNull      Operator = "isnull"
	Count       Operator = "count"
)

// operators lists every supported keyword in documentation order.
var operators = []Operator{
	Exact, IExact, Contains,
	StartsWith, IStartsWith, EndsWith, IEndsWith,
	Regex,
	Gt, Gte, Lt, Lte,
	IsNull, Count,
}

// Operators returns the supported keywords.
func Operators() []Operator {
	out := make([]Operator, len(operators))
	copy(out, operators)
	return out
}

// ParseOperator returns the Operator for keyword.
func ParseOperator(keyword string) (Operator, bool) {
	for _, op := range operators {
		if string(op) == keyword {
			return op, true
		}
	}
	return "", false
}

// Valid reports whether op is a supported keyword.
func (op Operator) Valid() bool {
	_, ok := ParseOperator(string(op))
	return ok
}

// caseInsensitive reports whether op folds case before comparing.
func (op Operator) caseInsensitive() bool {
	return op == IExact || op == IStartsWith || op == IEndsWith
}

// stringValued reports whether op requires a string expected value.
func (op Operator) stringValued() bool {
	switch op {
	case IExact, StartsWith, IStartsWith, EndsWith, IEndsWith, Regex:
		return true
	}
	return false
}

// Describe returns a one-line description of op's semantics.
func (op Operator) Describe() string {
	switch op {
	case Exact:
		return "value equals expected (default when no keyword is given)"
	case IExact:
		return "case-insensitive string equality"
	case Contains:
		return "substring, element or key membership"
	case StartsWith:
		return "string starts with expected"
	case IStartsWith:
		return "case-insensitive prefix match"
	case EndsWith:
		return "string ends with expected"
	case IEndsWith:
		return "case-insensitive suffix match"
	case Regex:
		return "string matches pattern from its start"
	case Gt:
		return "value > expected"
	case Gte:
		return "value >= expected"
	case Lt:
		return "value < expected"
	case Lte:
		return "value <= expected"
	case IsNull:
		return "truthiness of value equals expected bool"
	case Count:
		return "length of value equals expected integer"
	}
	return "unsupported"
}
