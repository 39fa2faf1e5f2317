package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigil-lang/sigil/internal/export"
	"github.com/sigil-lang/sigil/internal/ir"
)

func TestExportChainDispatchesByDestination(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Define(ctx, defineCmd("ORDO", []string{"a"}, "b"))
	require.NoError(t, err)

	res, err := e.ExportChain(ctx, ir.ExportChainCommand{
		Destinations: []string{"IPFS", "ETHICAL_AUDIT_LOG"},
	})
	require.NoError(t, err)

	assert.True(t, res.Exported)
	assert.Equal(t, 1, res.EntityCount)
	assert.Len(t, res.Results, 2)
	assert.Contains(t, res.Results, "IPFS")
	assert.Contains(t, res.Results, "ETHICAL_AUDIT_LOG")
	assert.NotContains(t, res.Results, "FILE")

	ipfs := res.Results["IPFS"]
	assert.Equal(t, "COMPUTED", ipfs.Status)
	assert.True(t, len(ipfs.ContentID) == 46)
	assert.Equal(t, "Qm", ipfs.ContentID[:2])

	audit := res.Results["ETHICAL_AUDIT_LOG"]
	assert.Equal(t, "LOGGED", audit.Status)
}

func TestExportChainUnrecognizedDestinationIgnored(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.ExportChain(context.Background(), ir.ExportChainCommand{
		Destinations: []string{"CARRIER_PIGEON"},
	})
	require.NoError(t, err)

	assert.True(t, res.Exported)
	assert.Empty(t, res.Results)
}

func TestExportChainEmptyRegistry(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngineAt(t, dir)

	res, err := e.ExportChain(context.Background(), ir.ExportChainCommand{
		Destinations: []string{"FILE"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.EntityCount)
	assert.Len(t, res.ChainHash, 64)

	file := res.Results["FILE"]
	assert.Equal(t, "EXPORTED", file.Status)
	_, statErr := os.Stat(file.Path)
	assert.NoError(t, statErr)
	assert.Equal(t, dir, filepath.Dir(file.Path))
}

func TestChainHashChangesOnlyWithRegistry(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Define(ctx, defineCmd("ORDO", []string{"a"}, "b"))
	require.NoError(t, err)

	first, err := e.ExportChain(ctx, ir.ExportChainCommand{Destinations: []string{"IPFS"}})
	require.NoError(t, err)

	// Reflection does not touch the registry; the hash must hold.
	_, err = e.Reflect(ctx, ir.ReflectCommand{Question: "q", Depth: 2})
	require.NoError(t, err)

	second, err := e.ExportChain(ctx, ir.ExportChainCommand{Destinations: []string{"IPFS"}})
	require.NoError(t, err)
	assert.Equal(t, first.ChainHash, second.ChainHash)

	_, err = e.Define(ctx, defineCmd("NOVA", []string{"c"}, "d"))
	require.NoError(t, err)

	third, err := e.ExportChain(ctx, ir.ExportChainCommand{Destinations: []string{"IPFS"}})
	require.NoError(t, err)
	assert.NotEqual(t, first.ChainHash, third.ChainHash)
}

func TestExportChainSinkFailurePropagates(t *testing.T) {
	e := newTestEngine(t)
	e.sinks = []export.Sink{export.NewSnapshotSink(filepath.Join(t.TempDir(), "missing"))}

	_, err := e.ExportChain(context.Background(), ir.ExportChainCommand{
		Destinations: []string{"FILE"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILE")
}
