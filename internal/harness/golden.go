package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sigil-lang/sigil/internal/engine"
	"github.com/sigil-lang/sigil/internal/ir"
)

// TraceSnapshot captures the structural trace of a scenario execution for
// golden comparison. Hashes and timestamps are deliberately excluded: the
// snapshot pins down which lines ran and in what order, not content that
// hash tests already cover.
type TraceSnapshot struct {
	ScenarioName string
	RunToken     string
	Outcomes     []engine.LineOutcome
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical
// JSON serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	outcomes := make([]any, len(s.Outcomes))
	for i, o := range s.Outcomes {
		entry := map[string]any{
			"line":     o.Line,
			"seq":      o.Seq,
			"executed": o.Executed,
		}
		if o.Err != "" {
			entry["error"] = o.Err
		}
		outcomes[i] = entry
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"outcomes":      outcomes,
	}
	if s.RunToken != "" {
		result["run_token"] = s.RunToken
	}
	return result
}

// RunWithGolden executes a scenario and compares the trace against a golden
// file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, scenario.RunToken, result)
}

// AssertGolden compares a result's trace against a golden file. Useful when
// the scenario has already run and the result needs a golden comparison
// without re-running.
func AssertGolden(t *testing.T, scenarioName, runToken string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		RunToken:     runToken,
		Outcomes:     result.Outcomes,
	}

	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
