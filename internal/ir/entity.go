package ir

import (
	"strconv"
	"time"
)

// EntityKind discriminates how an entity entered the registry.
type EntityKind string

const (
	// KindDefined marks entities created by a DEFINE command.
	KindDefined EntityKind = "DEFINED"

	// KindSynthesized marks entities created by a SYNTHESIZE command.
	KindSynthesized EntityKind = "SYNTHESIZED"
)

// EntityRecord is a named, content-addressed record in the entity registry.
// The name is unique within the registry; later writes under the same name
// overwrite earlier ones (last-write-wins, no merge). Only Verify mutates a
// record in place, and only to set Verified/VerifiedAt.
type EntityRecord struct {
	Name       string     `json:"name"`
	Kind       EntityKind `json:"kind"`
	Components []string   `json:"components"`

	// LinkedTo is the DEFINE link target; empty for synthesized entities.
	LinkedTo string `json:"linked_to,omitempty"`

	// OriginHash is derived deterministically at creation time; see
	// DefineHash and SynthesisHash for the two derivations.
	OriginHash string `json:"origin_hash"`

	// FusionStrength is the mean component resonance; synthesized only.
	FusionStrength float64 `json:"fusion_strength,omitempty"`

	// EmergentProperties is never empty for synthesized entities.
	EmergentProperties []string `json:"emergent_properties,omitempty"`

	CreatedAt         time.Time `json:"created_at"`
	CounterAtCreation int64     `json:"counter_at_creation"`

	// Verified starts false and is set true only by a successful VERIFY;
	// once true it is never reset by any other command.
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// SymbolView materializes a synthesized entity as a catalogue symbol so it
// can serve as an operand in later commands. The meaning summarizes the
// first three component labels; the weight is the fusion strength.
func (e EntityRecord) SymbolView() Symbol {
	summary := ""
	for i, c := range e.Components {
		if i == 3 {
			break
		}
		if i > 0 {
			summary += ", "
		}
		summary += c
	}
	return Symbol{
		Name:      e.Name,
		Glyph:     e.Name,
		Meaning:   "Synthesized entity from " + summary,
		Resonance: e.FusionStrength,
	}
}

// CanonicalView renders the record as a canonical-JSON-safe Object.
// Fractional fields become fixed-point strings (three decimals, matching
// the rounding applied at synthesis time) and timestamps become RFC 3339
// strings, because canonical JSON forbids floats and null.
func (e EntityRecord) CanonicalView() Object {
	obj := Object{
		"name":                String(e.Name),
		"kind":                String(string(e.Kind)),
		"components":          StringsToArray(e.Components),
		"linked_to":           String(e.LinkedTo),
		"origin_hash":         String(e.OriginHash),
		"fusion_strength":     String(strconv.FormatFloat(e.FusionStrength, 'f', 3, 64)),
		"emergent_properties": StringsToArray(e.EmergentProperties),
		"created_at":          String(e.CreatedAt.UTC().Format(time.RFC3339Nano)),
		"counter_at_creation": Int(e.CounterAtCreation),
		"verified":            Bool(e.Verified),
	}
	if e.VerifiedAt != nil {
		obj["verified_at"] = String(e.VerifiedAt.UTC().Format(time.RFC3339Nano))
	}
	return obj
}
