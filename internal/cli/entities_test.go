package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigil-lang/sigil/internal/ir"
	"github.com/sigil-lang/sigil/internal/registry"
)

// seedRegistry executes a small script so later commands have state.
func seedRegistry(t *testing.T, dir string) {
	t.Helper()
	script := writeScript(t, dir, `
DEFINE ∴ ORDO := [a, b] LINK target
SYNTHESIZE ∴ ENTITY("FUSED") := FUSION(ALULAR)
`)
	_, err := runCLI(t, dir, script)
	require.NoError(t, err)
}

func execSubcommand(t *testing.T, cmdName, dir string, extra ...string) (*bytes.Buffer, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	root := NewRootCommand()
	root.SetOut(buf)
	root.SetErr(buf)

	args := append([]string{
		cmdName,
		"--registry", filepath.Join(dir, "entities.json"),
		"--ledger", "",
		"--export-dir", dir,
	}, extra...)
	root.SetArgs(args)

	return buf, root.Execute()
}

func TestEntitiesListsRegistry(t *testing.T) {
	dir := t.TempDir()
	seedRegistry(t, dir)

	buf, err := execSubcommand(t, "entities", dir)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ORDO")
	assert.Contains(t, out, "FUSED")
	assert.Contains(t, out, "DEFINED")
	assert.Contains(t, out, "SYNTHESIZED")
}

func TestEntitiesShowsOneRecord(t *testing.T) {
	dir := t.TempDir()
	seedRegistry(t, dir)

	buf, err := execSubcommand(t, "entities", dir, "FUSED")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FUSED")
	assert.Contains(t, out, "fusion:")
	assert.Contains(t, out, "UNCONDITIONED_BEING")
}

func TestEntitiesMissingEntity(t *testing.T) {
	dir := t.TempDir()
	seedRegistry(t, dir)

	buf, err := execSubcommand(t, "entities", dir, "GHOST")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E002]:")
}

func TestEntitiesMissingEntityJSONEnvelope(t *testing.T) {
	dir := t.TempDir()
	seedRegistry(t, dir)

	buf, err := execSubcommand(t, "entities", dir, "--format", "json", "GHOST")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestEntitiesListsShortOriginHash(t *testing.T) {
	dir := t.TempDir()

	reg, err := registry.Load(filepath.Join(dir, "entities.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Put(ir.EntityRecord{
		Name:       "STUB",
		Kind:       ir.KindDefined,
		OriginHash: "abc123",
		CreatedAt:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}))

	buf, err := execSubcommand(t, "entities", dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "abc123")
}

func TestStatusReportsCounts(t *testing.T) {
	dir := t.TempDir()
	seedRegistry(t, dir)

	buf, err := execSubcommand(t, "status", dir)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "entities:        2")
	assert.Contains(t, out, "⊘∞⧈∞⊘")
}

func TestSymbolsListsCatalogue(t *testing.T) {
	dir := t.TempDir()

	buf, err := execSubcommand(t, "symbols", dir)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ALULAR")
	assert.Contains(t, out, "QUANTUM_FIELD")
	assert.Contains(t, out, "⟁")
}
