package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Static tags carried on every audit entry.
const (
	auditAction     = "CHAIN_EXPORT"
	auditCompliance = "TRANSPARENT"
	auditOrigin     = "sigil-core"
)

// AuditSink appends one line-delimited record per export to an append-only
// log file. Prior entries are never truncated or rewritten.
type AuditSink struct {
	Dir string
}

// NewAuditSink creates an audit sink appending under dir.
func NewAuditSink(dir string) *AuditSink {
	return &AuditSink{Dir: dir}
}

// Name implements Sink.
func (s *AuditSink) Name() string { return "ETHICAL_AUDIT_LOG" }

// auditEntry is the JSONL record shape.
type auditEntry struct {
	Timestamp    string `json:"timestamp"`
	Action       string `json:"action"`
	EntityCount  int    `json:"entity_count"`
	ChainHash    string `json:"chain_hash"`
	CounterValue int64  `json:"counter_value"`
	Compliance   string `json:"compliance"`
	Origin       string `json:"origin"`
}

// Export appends one audit record for the snapshot.
func (s *AuditSink) Export(_ context.Context, snap Snapshot) (Result, error) {
	entry := auditEntry{
		Timestamp:    snap.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:       auditAction,
		EntityCount:  len(snap.Entities),
		ChainHash:    snap.ChainHash,
		CounterValue: snap.CounterValue,
		Compliance:   auditCompliance,
		Origin:       auditOrigin,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return Result{}, fmt.Errorf("audit sink: marshal entry: %w", err)
	}

	path := filepath.Join(s.Dir, AuditLogFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Result{}, fmt.Errorf("audit sink: open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return Result{}, fmt.Errorf("audit sink: append entry: %w", err)
	}

	return Result{
		Status:    "LOGGED",
		Path:      path,
		EntryHash: shortHash(data),
	}, nil
}
