package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotSink writes the full export snapshot to a timestamp-named file:
// one file per export call, never overwritten. The nanosecond suffix keeps
// two exports within the same second from colliding.
type SnapshotSink struct {
	Dir string
}

// NewSnapshotSink creates a snapshot sink writing under dir.
func NewSnapshotSink(dir string) *SnapshotSink {
	return &SnapshotSink{Dir: dir}
}

// Name implements Sink.
func (s *SnapshotSink) Name() string { return "FILE" }

// Export writes one fresh snapshot artifact.
func (s *SnapshotSink) Export(_ context.Context, snap Snapshot) (Result, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("snapshot sink: marshal snapshot: %w", err)
	}

	ts := snap.Timestamp.UTC()
	name := fmt.Sprintf("%s%s_%09d.json", snapshotPrefix, ts.Format("20060102_150405"), ts.Nanosecond())
	path := filepath.Join(s.Dir, name)

	// O_EXCL: a snapshot file is never rewritten.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Result{}, fmt.Errorf("snapshot sink: create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return Result{}, fmt.Errorf("snapshot sink: write %s: %w", name, err)
	}

	return Result{
		Status: "EXPORTED",
		Path:   path,
	}, nil
}
