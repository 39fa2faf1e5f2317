package testutil

// FixedRunGenerator generates the same run token every time.
//
// This enables deterministic scenario execution and golden snapshot
// comparison: the same script with the same FixedRunGenerator produces
// byte-identical traces.
//
// Unlike engine.FixedGenerator which returns tokens in sequence and panics
// when exhausted, this generator always returns the same token. Useful
// when every run in a test should share one token regardless of how many
// times the engine refreshes it.
//
// Thread-safety: FixedRunGenerator is stateless and safe for concurrent use.
type FixedRunGenerator struct {
	token string
}

// NewFixedRunGenerator creates a new fixed run token generator.
//
// The token is typically set in the scenario YAML:
//
//	run_token: "test-run-00000000-0000-0000-0000-000000000001"
//
// If token is empty, Generate() returns "test-run-default".
func NewFixedRunGenerator(token string) *FixedRunGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedRunGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements engine.RunTokenGenerator.
func (g *FixedRunGenerator) Generate() string {
	return g.token
}
