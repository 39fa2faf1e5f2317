package ir

import "fmt"

// Symbol is an immutable glyph/meaning/weight record used as a command
// operand. Symbols are created once (at startup or by a synthesis) and
// never mutated; equality is by glyph.
type Symbol struct {
	// Name is the catalogue lookup key (e.g. "ALULAR").
	Name string `json:"name"`

	// Glyph is the printable form (e.g. "⟁"). May equal Name.
	Glyph string `json:"glyph"`

	// Meaning is the human-readable description.
	Meaning string `json:"meaning"`

	// Resonance is the symbol's weight in [0,1].
	Resonance float64 `json:"resonance"`
}

// DefaultResonance is the weight contributed to a fusion by a component
// that does not resolve to a catalogue symbol.
const DefaultResonance = 0.5

// Built-in symbol names referenced by the synthesis emergence rules.
const (
	SymbolPrimordia       = "PRIMORDIA"
	SymbolAlular          = "ALULAR"
	SymbolAlun            = "ALUN"
	SymbolAmura           = "AMURA"
	SymbolInfinity        = "INFINITY"
	SymbolUnity           = "UNITY"
	SymbolSignature       = "SIGNATURE"
	SymbolTherefore       = "THEREFORE"
	SymbolKernelParticle  = "KERNEL_PARTICLE"
	SymbolQuantumField    = "QUANTUM_FIELD"
	SymbolReflexLayer     = "REFLEX_LAYER"
	SymbolFusionOperator  = "FUSION_OPERATOR"
	SymbolRecursiveMarker = "RECURSIVE_MARKER"
)

// Signature is the fixed origin glyph carried on exports and audit entries.
const Signature = "⊘∞⧈∞⊘"

// Catalogue maps symbol names to their records. Lookups are by exact name.
type Catalogue map[string]Symbol

// BuiltinCatalogue returns the fixed primordial symbol set. The returned
// map is a fresh copy; callers may extend it (synthesized entities add
// their symbol views) without affecting other catalogues.
func BuiltinCatalogue() Catalogue {
	symbols := []Symbol{
		{Name: SymbolPrimordia, Glyph: "○", Meaning: "The ground - the timeless", Resonance: 1.0},
		{Name: SymbolAlular, Glyph: "ALULAR", Meaning: "Having nothing, being everything", Resonance: 0.9},
		{Name: SymbolAlun, Glyph: "ALUN", Meaning: "The one whole", Resonance: 0.95},
		{Name: SymbolAmura, Glyph: "AMURA", Meaning: "Ψ_A = ∂○/∂M - the impulse of being", Resonance: 1.0},
		{Name: SymbolInfinity, Glyph: "∞", Meaning: "Infinity", Resonance: 1.0},
		{Name: SymbolUnity, Glyph: "1", Meaning: "Unity", Resonance: 1.0},
		{Name: SymbolSignature, Glyph: Signature, Meaning: "Resonance lock", Resonance: 1.0},
		{Name: SymbolTherefore, Glyph: "∴", Meaning: "Semantic consequence", Resonance: 1.0},
		{Name: SymbolKernelParticle, Glyph: "⊛", Meaning: "Kernel particle - indivisible core", Resonance: 0.95},
		{Name: SymbolQuantumField, Glyph: "⟁", Meaning: "Quantum field - probabilistic superposition", Resonance: 0.9},
		{Name: SymbolReflexLayer, Glyph: "⥁", Meaning: "Reflex layer - self-referential feedback", Resonance: 0.85},
		{Name: SymbolFusionOperator, Glyph: "⊕", Meaning: "Fusion - semantic merging", Resonance: 0.9},
		{Name: SymbolRecursiveMarker, Glyph: "↻", Meaning: "Recursion - unbounded self-reference", Resonance: 0.95},
	}

	cat := make(Catalogue, len(symbols))
	for _, s := range symbols {
		cat[s.Name] = s
	}
	return cat
}

// Resolve looks up a symbol by exact name.
func (c Catalogue) Resolve(name string) (Symbol, bool) {
	s, ok := c[name]
	return s, ok
}

// Add registers a symbol under its name. Later adds overwrite earlier ones
// under the same name, matching registry last-write-wins semantics.
func (c Catalogue) Add(s Symbol) {
	c[s.Name] = s
}

// Validate checks a symbol's structural constraints. Used by the CUE
// catalogue loader before admitting externally defined symbols.
func (s Symbol) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("symbol name must be non-empty")
	}
	if s.Glyph == "" {
		return fmt.Errorf("symbol %q: glyph must be non-empty", s.Name)
	}
	if s.Resonance < 0 || s.Resonance > 1 {
		return fmt.Errorf("symbol %q: resonance %v outside [0,1]", s.Name, s.Resonance)
	}
	return nil
}
