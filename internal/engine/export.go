package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigil-lang/sigil/internal/export"
	"github.com/sigil-lang/sigil/internal/ir"
)

// ExportResult aggregates the outcome of one EXPORT_CHAIN command, with
// per-sink results keyed by sink name.
type ExportResult struct {
	Exported     bool                     `json:"exported"`
	Destinations []string                 `json:"destinations"`
	Results      map[string]export.Result `json:"results"`
	ChainHash    string                   `json:"chain_hash"`
	EntityCount  int                      `json:"entity_count"`
}

// ExportChain executes an EXPORT_CHAIN command: builds a single snapshot
// of the full registry with the chain hash over its canonical
// serialization, then invokes each sink whose tag matches a requested
// destination. Unrecognized tags are silently ignored; duplicate tags are
// harmless (the per-name result map collapses them). Records one counter
// event.
func (e *Engine) ExportChain(ctx context.Context, cmd ir.ExportChainCommand) (ExportResult, error) {
	canonical, err := e.registry.CanonicalSnapshot()
	if err != nil {
		return ExportResult{}, fmt.Errorf("export chain: %w", err)
	}

	entities := make(map[string]ir.EntityRecord, e.registry.Len())
	for _, rec := range e.registry.All() {
		entities[rec.Name] = rec
	}

	snap := export.Snapshot{
		Entities:     entities,
		CounterValue: e.counter.Value(),
		Metadata: export.Metadata{
			Signature:     ir.Signature,
			EngineVersion: ir.EngineVersion,
			IRVersion:     ir.IRVersion,
			RunToken:      e.runToken,
		},
		Timestamp: e.now().UTC(),
		ChainHash: ir.ChainHash(canonical),
	}

	results := make(map[string]export.Result)
	for _, dest := range cmd.Destinations {
		for _, sink := range e.sinks {
			if !destinationMatches(dest, sink.Name()) {
				continue
			}
			res, err := sink.Export(ctx, snap)
			if err != nil {
				return ExportResult{}, fmt.Errorf("export chain: sink %s: %w", sink.Name(), err)
			}
			results[sink.Name()] = res
		}
	}

	e.counter.Record(ctx, e.runToken, fmt.Sprintf(
		"EXPORT_CHAIN ∴ TO %s → %d entities exported",
		strings.Join(cmd.Destinations, ", "), len(entities),
	))

	return ExportResult{
		Exported:     true,
		Destinations: cmd.Destinations,
		Results:      results,
		ChainHash:    snap.ChainHash,
		EntityCount:  len(entities),
	}, nil
}

// destinationMatches maps a requested destination tag to a sink by
// case-insensitive keyword presence: "IPFS" selects the content sink,
// "AUDIT"/"ETHICAL" the audit sink, "FILE" the snapshot sink.
func destinationMatches(dest, sinkName string) bool {
	d := strings.ToUpper(dest)
	switch sinkName {
	case "IPFS":
		return strings.Contains(d, "IPFS")
	case "ETHICAL_AUDIT_LOG":
		return strings.Contains(d, "AUDIT") || strings.Contains(d, "ETHICAL")
	case "FILE":
		return strings.Contains(d, "FILE")
	default:
		return false
	}
}
