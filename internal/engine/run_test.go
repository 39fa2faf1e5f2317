package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigil-lang/sigil/internal/ir"
)

const ritualScript = `
# Primordial definitions
DEFINE ∴ ORDO_ACHERON := [Ψ_Δ, ⊕_Λ] LINK ALULA_PRIME

REFLECT ∴ "What is the nature of structured frequency?" DEPTH 4

SYNTHESIZE ∴ ENTITY("KERNEL_FIELD") := FUSION(ALULAR, QUANTUM_FIELD)
EXPORT_CHAIN ∴ TO [IPFS, ETHICAL_AUDIT_LOG]
`

func TestRunScriptExecutesEachLine(t *testing.T) {
	e := newTestEngine(t)

	outcomes := e.RunScript(context.Background(), ritualScript)
	require.Len(t, outcomes, 4)

	for _, o := range outcomes {
		assert.True(t, o.Executed, "line %q", o.Line)
		assert.Empty(t, o.Err)
		assert.NotNil(t, o.Result)
	}

	// Blank lines and comments produce no outcome at all.
	assert.Equal(t, "DEFINE ∴ ORDO_ACHERON := [Ψ_Δ, ⊕_Λ] LINK ALULA_PRIME", outcomes[0].Line)

	rec, ok := outcomes[0].Result.(ir.EntityRecord)
	require.True(t, ok)
	assert.Equal(t, "ORDO_ACHERON", rec.Name)

	refl, ok := outcomes[1].Result.(ReflectResult)
	require.True(t, ok)
	assert.Equal(t, 4, refl.Depth)

	syn, ok := outcomes[2].Result.(SynthesizeResult)
	require.True(t, ok)
	assert.Equal(t, "KERNEL_FIELD", syn.Entity.Name)
	assert.InDelta(t, 0.9, syn.Entity.FusionStrength, 1e-9)

	exp, ok := outcomes[3].Result.(ExportResult)
	require.True(t, ok)
	assert.Equal(t, 2, exp.EntityCount)
	assert.Len(t, exp.Results, 2)
}

func TestRunScriptSequencesOutcomes(t *testing.T) {
	e := newTestEngine(t)

	outcomes := e.RunScript(context.Background(), ritualScript)
	require.Len(t, outcomes, 4)
	for i := 1; i < len(outcomes); i++ {
		assert.Greater(t, outcomes[i].Seq, outcomes[i-1].Seq)
	}
}

func TestRunScriptUnparseableLineNotExecuted(t *testing.T) {
	e := newTestEngine(t)

	script := "DEFINE ∴ A := [x] LINK y\nNOT A COMMAND AT ALL\nDEFINE ∴ B := [x] LINK y"
	outcomes := e.RunScript(context.Background(), script)
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Executed)
	assert.False(t, outcomes[1].Executed)
	assert.Empty(t, outcomes[1].Err)
	// Execution continues past the bad line.
	assert.True(t, outcomes[2].Executed)
	assert.Equal(t, 2, e.Status().EntityCount)
}

func TestRunScriptFreshTokenPerRun(t *testing.T) {
	e := newTestEngine(t, "boot", "first", "second")

	e.RunScript(context.Background(), "DEFINE ∴ A := [x] LINK y")
	assert.Equal(t, "first", e.RunToken())

	e.RunScript(context.Background(), "DEFINE ∴ B := [x] LINK y")
	assert.Equal(t, "second", e.RunToken())
}

func TestRunScriptDefineThenVerify(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	outcomes := e.RunScript(ctx, "DEFINE ∴ ORDO := [a, b] LINK target")
	require.Len(t, outcomes, 1)
	rec := outcomes[0].Result.(ir.EntityRecord)

	verify := `VERIFY ∴ ENTITY("ORDO") WITH ORIGIN_HASH("` + rec.OriginHash[:16] + `")`
	outcomes = e.RunScript(ctx, verify)
	require.Len(t, outcomes, 1)
	require.True(t, outcomes[0].Executed)

	res := outcomes[0].Result.(VerifyResult)
	assert.True(t, res.Verified)
	assert.Equal(t, MatchPartial, res.MatchType)
}

func TestRunScriptEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	assert.Empty(t, e.RunScript(context.Background(), ""))
	assert.Empty(t, e.RunScript(context.Background(), "\n\n# only comments\n"))
}
