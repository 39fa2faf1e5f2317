package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sigil-lang/sigil/internal/engine"
	"github.com/sigil-lang/sigil/internal/ledger"
	"github.com/sigil-lang/sigil/internal/registry"
)

// AssertionContext carries the collaborators assertions may inspect after
// a scenario run.
type AssertionContext struct {
	Registry *registry.Registry
	Counter  *ledger.Counter
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string               // Assertion type for categorization
	Expected string               // Human-readable expected outcome
	Actual   string               // Human-readable actual outcome
	Outcomes []engine.LineOutcome // Full outcome list for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nOutcomes:\n")
	for i, o := range e.Outcomes {
		fmt.Fprintf(&buf, "  [%d] executed=%t %s\n", i, o.Executed, o.Line)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and collects failure messages.
// All assertions are evaluated even after a failure, so one run reports
// every broken expectation at once.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for _, assertion := range assertions {
		if err := evaluateAssertion(result, assertion, actx); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluateAssertion(result *Result, assertion Assertion, actx *AssertionContext) error {
	switch assertion.Type {
	case AssertLineExecuted:
		return assertLineExecuted(result, assertion)
	case AssertEntityExists:
		return assertEntityExists(result, assertion, actx)
	case AssertEntityAbsent:
		return assertEntityAbsent(result, assertion, actx)
	case AssertEntityCount:
		return assertEntityCount(result, assertion, actx)
	case AssertCounterValue:
		return assertCounterValue(result, assertion, actx)
	default:
		// Unknown types are rejected at load time; reaching this means the
		// scenario bypassed LoadScenario.
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

// assertLineExecuted checks one outcome's executed flag by index.
func assertLineExecuted(result *Result, assertion Assertion) error {
	if assertion.Line >= len(result.Outcomes) {
		return &AssertionError{
			Type:     AssertLineExecuted,
			Expected: fmt.Sprintf("outcome at index %d", assertion.Line),
			Actual:   fmt.Sprintf("only %d outcomes", len(result.Outcomes)),
			Outcomes: result.Outcomes,
		}
	}

	outcome := result.Outcomes[assertion.Line]
	if outcome.Executed != assertion.Executed {
		return &AssertionError{
			Type:     AssertLineExecuted,
			Expected: fmt.Sprintf("line %d executed=%t", assertion.Line, assertion.Executed),
			Actual:   fmt.Sprintf("executed=%t (error=%q)", outcome.Executed, outcome.Err),
			Outcomes: result.Outcomes,
		}
	}
	return nil
}

// assertEntityExists checks an entity is registered, with optional kind,
// verified flag, and component subset checks.
func assertEntityExists(result *Result, assertion Assertion, actx *AssertionContext) error {
	rec, ok := actx.Registry.Get(assertion.Entity)
	if !ok {
		return &AssertionError{
			Type:     AssertEntityExists,
			Expected: fmt.Sprintf("entity %q registered", assertion.Entity),
			Actual:   "not found in registry",
			Outcomes: result.Outcomes,
		}
	}

	if assertion.Kind != "" && string(rec.Kind) != assertion.Kind {
		return &AssertionError{
			Type:     AssertEntityExists,
			Expected: fmt.Sprintf("entity %q kind %s", assertion.Entity, assertion.Kind),
			Actual:   string(rec.Kind),
			Outcomes: result.Outcomes,
		}
	}

	if assertion.Verified != nil && rec.Verified != *assertion.Verified {
		return &AssertionError{
			Type:     AssertEntityExists,
			Expected: fmt.Sprintf("entity %q verified=%t", assertion.Entity, *assertion.Verified),
			Actual:   fmt.Sprintf("verified=%t", rec.Verified),
			Outcomes: result.Outcomes,
		}
	}

	for _, want := range assertion.Components {
		if !slices.Contains(rec.Components, want) {
			return &AssertionError{
				Type:     AssertEntityExists,
				Expected: fmt.Sprintf("entity %q component %q", assertion.Entity, want),
				Actual:   fmt.Sprintf("components [%s]", strings.Join(rec.Components, ", ")),
				Outcomes: result.Outcomes,
			}
		}
	}

	return nil
}

// assertEntityAbsent checks no entity is registered under the name.
func assertEntityAbsent(result *Result, assertion Assertion, actx *AssertionContext) error {
	if rec, ok := actx.Registry.Get(assertion.Entity); ok {
		return &AssertionError{
			Type:     AssertEntityAbsent,
			Expected: fmt.Sprintf("no entity %q", assertion.Entity),
			Actual:   fmt.Sprintf("registered as %s", rec.Kind),
			Outcomes: result.Outcomes,
		}
	}
	return nil
}

// assertEntityCount checks the registry size.
func assertEntityCount(result *Result, assertion Assertion, actx *AssertionContext) error {
	if actx.Registry.Len() != assertion.Count {
		return &AssertionError{
			Type:     AssertEntityCount,
			Expected: fmt.Sprintf("%d entities", assertion.Count),
			Actual:   fmt.Sprintf("%d entities", actx.Registry.Len()),
			Outcomes: result.Outcomes,
		}
	}
	return nil
}

// assertCounterValue checks the final counter value.
func assertCounterValue(result *Result, assertion Assertion, actx *AssertionContext) error {
	if actx.Counter.Value() != assertion.Value {
		return &AssertionError{
			Type:     AssertCounterValue,
			Expected: fmt.Sprintf("counter value %d", assertion.Value),
			Actual:   fmt.Sprintf("counter value %d", actx.Counter.Value()),
			Outcomes: result.Outcomes,
		}
	}
	return nil
}
