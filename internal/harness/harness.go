package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sigil-lang/sigil/internal/engine"
	"github.com/sigil-lang/sigil/internal/ledger"
	"github.com/sigil-lang/sigil/internal/registry"
	"github.com/sigil-lang/sigil/internal/testutil"
)

// referenceTime is the fixed wall clock for every scenario run. Timestamps
// in traces and exports are identical across runs.
var referenceTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every assertion held.
	Pass bool `json:"pass"`

	// Outcomes are the per-line results in script order.
	Outcomes []engine.LineOutcome `json:"outcomes"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// CounterValue is the counter after the run.
	CounterValue int64 `json:"counter_value"`

	// EntityCount is the registry size after the run.
	EntityCount int `json:"entity_count"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh registry in a private temp directory
// and an in-memory event ledger, with a fixed wall clock and run token.
// Execution flow:
//  1. Create isolated registry, ledger, and export directory
//  2. Execute the script line by line
//  3. Evaluate assertions against the outcomes and final state
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "sigil-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	reg, err := registry.Load(filepath.Join(dir, "entities.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	ldg, err := ledger.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory ledger: %w", err)
	}
	defer ldg.Close()

	ctx := context.Background()
	counter := ledger.NewCounter(ctx, ldg)

	eng := engine.New(reg, counter,
		engine.WithExportDir(dir),
		engine.WithNow(func() time.Time { return referenceTime }),
		engine.WithTokenGenerator(testutil.NewFixedRunGenerator(scenario.RunToken)),
	)

	result := NewResult()
	result.Outcomes = eng.RunScript(ctx, scenario.Script)
	result.CounterValue = counter.Value()
	result.EntityCount = reg.Len()

	actx := &AssertionContext{
		Registry: reg,
		Counter:  counter,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}
