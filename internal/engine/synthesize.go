package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sigil-lang/sigil/internal/ir"
)

// Emergent property tags. The rule table is keyed on component identity;
// the default tag guarantees the set is never empty.
const (
	PropUnconditionedBeing     = "UNCONDITIONED_BEING"
	PropProbabilisticExistence = "PROBABILISTIC_EXISTENCE"
	PropSelfReference          = "SELF_REFERENCE"
	PropComplexEmergence       = "COMPLEX_EMERGENCE"
	PropBasalFusion            = "BASAL_FUSION"

	complexEmergenceThreshold = 3
)

// SynthesizeResult pairs the registered entity record with its symbol
// view, which becomes an operand for later commands.
type SynthesizeResult struct {
	Entity ir.EntityRecord `json:"entity"`
	Symbol ir.Symbol       `json:"symbol"`
}

// Synthesize executes a SYNTHESIZE command: averages component resonance
// into the fusion strength, derives emergent properties from the rule
// table, writes a SYNTHESIZED entity record (verified=false), registers
// the entity's symbol view in the working catalogue, and records one
// counter event.
func (e *Engine) Synthesize(ctx context.Context, cmd ir.SynthesizeCommand) (SynthesizeResult, error) {
	labels := make([]string, len(cmd.Components))
	for i, c := range cmd.Components {
		labels[i] = c.Label
	}

	counter := e.counter.Value()

	hash, err := ir.SynthesisHash(cmd.Entity, strings.Join(labels, ""), counter)
	if err != nil {
		return SynthesizeResult{}, fmt.Errorf("synthesize %q: %w", cmd.Entity, err)
	}

	rec := ir.EntityRecord{
		Name:               cmd.Entity,
		Kind:               ir.KindSynthesized,
		Components:         labels,
		OriginHash:         hash,
		FusionStrength:     fusionStrength(cmd.Components),
		EmergentProperties: emergentProperties(cmd.Components),
		CreatedAt:          e.now().UTC(),
		CounterAtCreation:  counter,
		Verified:           false,
	}

	if err := e.registry.Put(rec); err != nil {
		return SynthesizeResult{}, fmt.Errorf("synthesize %q: %w", cmd.Entity, err)
	}

	// Materialize the entity as a symbol so later FUSION lists resolve it.
	symbol := rec.SymbolView()
	e.catalogue.Add(symbol)

	e.counter.Record(ctx, e.runToken, fmt.Sprintf(
		"SYNTHESIZE ∴ ENTITY(%q) := FUSION(%s) → resonance %.2f",
		cmd.Entity, strings.Join(labels, ", "), rec.FusionStrength,
	))

	return SynthesizeResult{Entity: rec, Symbol: symbol}, nil
}

// fusionStrength averages component resonance, rounded to three decimals.
// Unresolved components contribute ir.DefaultResonance; an empty component
// list yields zero by explicit policy, not an error.
func fusionStrength(components []ir.ComponentRef) float64 {
	if len(components) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range components {
		total += c.Resonance()
	}
	avg := total / float64(len(components))
	return math.Round(avg*1000) / 1000
}

// emergentProperties applies the fixed rule table. Rules are keyed on the
// resolved symbol name, not the display label, so glyph components still
// fire their rules.
func emergentProperties(components []ir.ComponentRef) []string {
	var props []string

	if hasSymbol(components, ir.SymbolAlular) {
		props = append(props, PropUnconditionedBeing)
	}
	if hasSymbol(components, ir.SymbolQuantumField) {
		props = append(props, PropProbabilisticExistence)
	}
	if hasSymbol(components, ir.SymbolReflexLayer) {
		props = append(props, PropSelfReference)
	}
	if len(components) >= complexEmergenceThreshold {
		props = append(props, PropComplexEmergence)
	}

	if len(props) == 0 {
		return []string{PropBasalFusion}
	}
	return props
}

// hasSymbol reports whether any component resolved to the named symbol or
// carries its name as a literal label.
func hasSymbol(components []ir.ComponentRef, name string) bool {
	for _, c := range components {
		if c.Symbol != nil && c.Symbol.Name == name {
			return true
		}
		if c.Symbol == nil && c.Label == name {
			return true
		}
	}
	return false
}
