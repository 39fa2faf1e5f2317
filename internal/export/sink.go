// Package export provides the pluggable destinations for EXPORT_CHAIN.
//
// Sinks are boundary collaborators: they receive a fully built snapshot
// and write it somewhere. None of them publishes to a real distributed
// network - the content-addressed sink is an explicit local stand-in.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/sigil-lang/sigil/internal/ir"
)

// Fixed artifact names within the export directory. The base directory is
// injectable; the names are not.
const (
	StagingFileName  = "sigil_ipfs_staging.json"
	AuditLogFileName = "sigil_audit_log.jsonl"
	snapshotPrefix   = "sigil_chain_export_"
)

// Metadata is the fixed block attached to every export snapshot.
type Metadata struct {
	Signature     string `json:"signature"`
	EngineVersion string `json:"engine_version"`
	IRVersion     string `json:"ir_version"`
	RunToken      string `json:"run_token"`
}

// Snapshot is one export of the accumulated entity graph: the full
// registry contents, the counter value, the metadata block, and the chain
// hash over the canonically serialized registry.
type Snapshot struct {
	Entities     map[string]ir.EntityRecord `json:"entities"`
	CounterValue int64                      `json:"counter_value"`
	Metadata     Metadata                   `json:"metadata"`
	Timestamp    time.Time                  `json:"timestamp"`
	ChainHash    string                     `json:"chain_hash"`
}

// Result describes one sink's outcome, keyed by sink name in the
// aggregated export result.
type Result struct {
	Status    string `json:"status"`
	Path      string `json:"path,omitempty"`
	ContentID string `json:"content_id,omitempty"`
	EntryHash string `json:"entry_hash,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Sink is one export destination.
type Sink interface {
	// Name keys this sink's Result in the aggregated export output.
	Name() string

	// Export writes the snapshot to the destination.
	Export(ctx context.Context, snap Snapshot) (Result, error)
}

// shortHash returns the first 16 hex characters of the SHA-256 of data,
// used as a compact fingerprint on audit entries.
func shortHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
