package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sigil-lang/sigil/internal/ir"
)

// MatchType classifies a hash comparison outcome.
type MatchType string

const (
	// MatchExact means the expected hash equals the stored hash.
	MatchExact MatchType = "EXACT"

	// MatchPartial means the expected value is a substring, prefix, or
	// suffix of the stored hash. Partial matches are accepted as proof of
	// identity - a deliberately weak policy preserved from the source
	// semantics (tolerance for truncated hash citations).
	MatchPartial MatchType = "PARTIAL"

	// MatchNone means no overlap.
	MatchNone MatchType = "NONE"
)

// VerifyResult reports one verification attempt. A missing entity is a
// normal negative result, not an error.
type VerifyResult struct {
	Verified     bool       `json:"verified"`
	Reason       string     `json:"reason,omitempty"`
	EntityName   string     `json:"entity_name"`
	ExpectedHash string     `json:"expected_hash,omitempty"`
	ActualHash   string     `json:"actual_hash,omitempty"`
	MatchType    MatchType  `json:"match_type,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

// Verify executes a VERIFY command: looks up the entity, compares its
// stored origin hash against the expected literal, and marks the entity
// verified on an EXACT or PARTIAL match. Once verified, an entity is never
// reset to unverified by a later mismatch. Records one counter event
// describing the outcome.
func (e *Engine) Verify(ctx context.Context, cmd ir.VerifyCommand) (VerifyResult, error) {
	rec, ok := e.registry.Get(cmd.Entity)
	if !ok {
		result := VerifyResult{
			Verified:   false,
			Reason:     fmt.Sprintf("entity %q not found in registry", cmd.Entity),
			EntityName: cmd.Entity,
		}
		e.counter.Record(ctx, e.runToken, fmt.Sprintf(
			"VERIFY ∴ ENTITY(%q) WITH ORIGIN_HASH → NOT FOUND", cmd.Entity,
		))
		return result, nil
	}

	match := matchHash(rec.OriginHash, cmd.ExpectedHash)
	now := e.now().UTC()

	result := VerifyResult{
		Verified:     match != MatchNone,
		EntityName:   cmd.Entity,
		ExpectedHash: cmd.ExpectedHash,
		ActualHash:   rec.OriginHash,
		MatchType:    match,
		Timestamp:    &now,
	}

	if result.Verified {
		rec.Verified = true
		rec.VerifiedAt = &now
		if err := e.registry.Put(rec); err != nil {
			return VerifyResult{}, fmt.Errorf("verify %q: %w", cmd.Entity, err)
		}
	}

	outcome := "NOT VERIFIED"
	if result.Verified {
		outcome = "VERIFIED"
	}
	e.counter.Record(ctx, e.runToken, fmt.Sprintf(
		"VERIFY ∴ ENTITY(%q) WITH ORIGIN_HASH → %s (%s)", cmd.Entity, outcome, match,
	))

	return result, nil
}

// matchHash applies the three comparison rules in order: exact equality,
// then substring/prefix/suffix containment, then none.
func matchHash(actual, expected string) MatchType {
	if actual == expected {
		return MatchExact
	}
	if strings.Contains(actual, expected) ||
		strings.HasPrefix(actual, expected) ||
		strings.HasSuffix(actual, expected) {
		return MatchPartial
	}
	return MatchNone
}
