package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperator(t *testing.T) {
	for _, op := range Operators() {
		got, ok := ParseOperator(string(op))
		assert.True(t, ok, op)
		assert.Equal(t, op, got)
		assert.True(t, op.Valid())
		assert.NotEqual(t, "unsupported", op.Describe())
	}

	_, ok := ParseOperator("in")
	assert.False(t, ok)
	_, ok = ParseOperator("GT")
	assert.False(t, ok, "keywords are case-sensitive")
	assert.False(t, Operator("between").Valid())
}

func TestOperators_ReturnsCopy(t *testing.T) {
	ops := Operators()
	ops[0] = "mutated"
	assert.Equal(t, Exact, Operators()[0])
	assert.Len(t, Operators(), 14)
}
