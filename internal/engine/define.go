package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigil-lang/sigil/internal/ir"
)

// Define executes a DEFINE command: derives the origin hash over the
// canonical concatenation of name, components, and link target, writes a
// DEFINED entity record, and records one counter event.
//
// The counter value hashed into the record is the value BEFORE the event
// for this definition is recorded, so re-deriving the hash from the stored
// record always succeeds.
//
// The only error condition is a registry write failure, which propagates:
// persistence is this executor's sole side effect of record.
func (e *Engine) Define(ctx context.Context, cmd ir.DefineCommand) (ir.EntityRecord, error) {
	counter := e.counter.Value()

	hash, err := ir.DefineHash(cmd.Name, cmd.Components, cmd.LinkTarget, counter)
	if err != nil {
		return ir.EntityRecord{}, fmt.Errorf("define %q: %w", cmd.Name, err)
	}

	rec := ir.EntityRecord{
		Name:              cmd.Name,
		Kind:              ir.KindDefined,
		Components:        cmd.Components,
		LinkedTo:          cmd.LinkTarget,
		OriginHash:        hash,
		CreatedAt:         e.now().UTC(),
		CounterAtCreation: counter,
	}

	if err := e.registry.Put(rec); err != nil {
		return ir.EntityRecord{}, fmt.Errorf("define %q: %w", cmd.Name, err)
	}

	e.counter.Record(ctx, e.runToken, fmt.Sprintf(
		"DEFINE ∴ %s := [%s] LINK %s",
		cmd.Name, strings.Join(cmd.Components, ", "), cmd.LinkTarget,
	))

	return rec, nil
}
