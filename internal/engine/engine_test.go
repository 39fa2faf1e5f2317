package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sigil-lang/sigil/internal/ledger"
	"github.com/sigil-lang/sigil/internal/registry"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// memLedger is an in-memory EventLedger so tests can exercise counter
// advancement without a database file.
type memLedger struct {
	events []string
}

func (m *memLedger) Count(ctx context.Context) (int64, error) {
	return int64(len(m.events)), nil
}

func (m *memLedger) Append(ctx context.Context, runToken, description string) error {
	m.events = append(m.events, description)
	return nil
}

// newTestEngine builds an engine over a temp-dir registry with an
// in-memory counter, a fixed wall clock, and predetermined run tokens.
// Export sinks are rooted in the same temp dir.
func newTestEngine(t *testing.T, tokens ...string) *Engine {
	t.Helper()
	return newTestEngineAt(t, t.TempDir(), tokens...)
}

func newTestEngineAt(t *testing.T, dir string, tokens ...string) *Engine {
	t.Helper()

	reg, err := registry.Load(filepath.Join(dir, "registry.json"))
	require.NoError(t, err)

	return newTestEngineWithLedger(t, dir, reg, &memLedger{}, tokens...)
}

func newTestEngineWithLedger(t *testing.T, dir string, reg *registry.Registry, l ledger.EventLedger, tokens ...string) *Engine {
	t.Helper()

	counter := ledger.NewCounter(context.Background(), l)

	if len(tokens) == 0 {
		tokens = []string{"run-0", "run-1", "run-2", "run-3"}
	}

	return New(reg, counter,
		WithExportDir(dir),
		WithNow(func() time.Time { return fixedNow }),
		WithTokenGenerator(NewFixedGenerator(tokens...)),
	)
}

func TestStatusReflectsState(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	before := e.Status()
	require.Equal(t, 0, before.EntityCount)
	require.EqualValues(t, 0, before.CounterValue)
	require.Equal(t, "⊘∞⧈∞⊘", before.Signature)

	_, err := e.Define(ctx, defineCmd("ORDO", []string{"a"}, "b"))
	require.NoError(t, err)

	after := e.Status()
	require.Equal(t, 1, after.EntityCount)
	require.EqualValues(t, 1, after.CounterValue)
	require.Equal(t, before.CatalogueSize, after.CatalogueSize)
}
