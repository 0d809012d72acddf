package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTraceIDGenerator(t *testing.T) {
	gen := NewFixedTraceIDGenerator("trace-1")
	assert.Equal(t, "trace-1", gen.Generate())
	assert.Equal(t, "trace-1", gen.Generate())

	assert.Equal(t, "test-trace-default", NewFixedTraceIDGenerator("").Generate())
}
