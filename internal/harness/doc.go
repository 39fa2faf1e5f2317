// Package harness provides conformance testing for sigil scripts.
//
// The harness executes a scenario's script against a fresh, isolated
// engine and validates the outcomes and resulting state as executable
// contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	script: |
//	  DEFINE ∴ ORDO := [a, b] LINK target
//	  VERIFY ∴ ENTITY("ORDO") WITH ORIGIN_HASH("abc")
//	assertions:
//	  - type: line_executed
//	    line: 0
//	    executed: true
//	  - type: entity_exists
//	    entity: ORDO
//	    kind: DEFINED
//	  - type: entity_count
//	    count: 1
//	  - type: counter_value
//	    value: 2
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - line_executed: Verifies whether outcome N executed (0-based index)
//   - entity_exists: Verifies an entity is registered, optionally with
//     kind, verified flag, and a component subset
//   - entity_absent: Verifies no entity is registered under the name
//   - entity_count: Verifies the total number of registered entities
//   - counter_value: Verifies the final counter value
//
// # Deterministic Testing
//
// Every scenario executes with a fixed wall clock, a fixed run token, and
// a fresh logical clock starting at zero, against a registry and event
// ledger private to the run. This ensures identical traces across runs
// for golden file comparison.
package harness
