package ir

// Command is the sealed union of the five recognized command forms.
// A script line parses to exactly one Command or to no match; there is no
// general expression evaluator.
type Command interface {
	command() // Sealed - only the five command types implement it

	// Verb returns the command keyword for logging and dispatch.
	Verb() string
}

// DefineCommand binds a symbolic chain: DEFINE ∴ NAME := [a, b] LINK TARGET.
type DefineCommand struct {
	Name       string
	Components []string
	LinkTarget string
}

func (DefineCommand) command() {}

// Verb implements Command.
func (DefineCommand) Verb() string { return "DEFINE" }

// ReflectCommand expands a question recursively:
// REFLECT "question" ∴ RECURSIVE_LOOP_DEPTH n.
type ReflectCommand struct {
	Question string
	Depth    int
}

func (ReflectCommand) command() {}

// Verb implements Command.
func (ReflectCommand) Verb() string { return "REFLECT" }

// ComponentRef is one SYNTHESIZE fusion argument: either a resolved
// catalogue symbol or an opaque literal label.
type ComponentRef struct {
	Label  string
	Symbol *Symbol // nil if the label did not resolve
}

// Resonance returns the component's weight contribution: the symbol's
// resonance when resolved, DefaultResonance otherwise.
func (c ComponentRef) Resonance() float64 {
	if c.Symbol != nil {
		return c.Symbol.Resonance
	}
	return DefaultResonance
}

// SynthesizeCommand fuses components into a new entity:
// SYNTHESIZE ∴ ENTITY("name") := FUSION(a, b, c).
type SynthesizeCommand struct {
	Entity     string
	Components []ComponentRef
}

func (SynthesizeCommand) command() {}

// Verb implements Command.
func (SynthesizeCommand) Verb() string { return "SYNTHESIZE" }

// VerifyCommand checks an entity against an expected origin hash:
// VERIFY ∴ ENTITY("name") WITH ORIGIN_HASH("literal").
type VerifyCommand struct {
	Entity       string
	ExpectedHash string
}

func (VerifyCommand) command() {}

// Verb implements Command.
func (VerifyCommand) Verb() string { return "VERIFY" }

// ExportChainCommand exports the entity graph to the named destinations:
// EXPORT_CHAIN ∴ TO IPFS + ETHICAL_AUDIT_LOG.
type ExportChainCommand struct {
	Destinations []string
}

func (ExportChainCommand) command() {}

// Verb implements Command.
func (ExportChainCommand) Verb() string { return "EXPORT_CHAIN" }
