// Package testutil holds helpers shared by tests.
package testutil

// FixedTraceIDGenerator generates the same trace id every time.
//
// This enables byte-identical JSON output in CLI tests.
//
// Thread-safety: FixedTraceIDGenerator is stateless and safe for concurrent use.
type FixedTraceIDGenerator struct {
	id string
}

// NewFixedTraceIDGenerator creates a generator returning id.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceIDGenerator(id string) *FixedTraceIDGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceIDGenerator{id: id}
}

// Generate returns the fixed trace id.
//
// Implements cli.TraceIDGenerator.
func (g *FixedTraceIDGenerator) Generate() string {
	return g.id
}
