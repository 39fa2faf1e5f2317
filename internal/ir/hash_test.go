package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineHashDeterminism(t *testing.T) {
	components := []string{"kernel_particle", "reflex_layer"}

	h1, err := DefineHash("ALUN", components, "PRIMORDIA", 42)
	require.NoError(t, err)

	h2, err := DefineHash("ALUN", components, "PRIMORDIA", 42)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "DefineHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestDefineHashChangesWithInput(t *testing.T) {
	base := MustDefineHash("A", []string{"x"}, "B", 1)

	assert.NotEqual(t, base, MustDefineHash("A2", []string{"x"}, "B", 1), "name should affect hash")
	assert.NotEqual(t, base, MustDefineHash("A", []string{"y"}, "B", 1), "components should affect hash")
	assert.NotEqual(t, base, MustDefineHash("A", []string{"x"}, "C", 1), "link target should affect hash")
	assert.NotEqual(t, base, MustDefineHash("A", []string{"x"}, "B", 2), "counter should affect hash")
}

func TestDefineHashComponentOrderSensitive(t *testing.T) {
	h1 := MustDefineHash("A", []string{"x", "y"}, "B", 1)
	h2 := MustDefineHash("A", []string{"y", "x"}, "B", 1)

	assert.NotEqual(t, h1, h2, "component order is part of identity")
}

func TestDefineHashEmptyLinkTarget(t *testing.T) {
	h, err := DefineHash("A", []string{"x"}, "", 1)
	require.NoError(t, err)
	assert.Len(t, h, 64)
}

func TestSynthesisHashDeterminism(t *testing.T) {
	h1, err := SynthesisHash("EIRADUS", "ALULAR⟁⥁", 7)
	require.NoError(t, err)

	h2, err := SynthesisHash("EIRADUS", "ALULAR⟁⥁", 7)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestSynthesisHashDiffersFromDefineHash(t *testing.T) {
	// Same logical inputs through the two derivations must not collide.
	defined := MustDefineHash("A", []string{"x"}, "", 1)
	synthesized := MustSynthesisHash("A", "x", 1)

	assert.NotEqual(t, defined, synthesized)
}

func TestReflectionHash(t *testing.T) {
	h1, err := ReflectionHash("What lies beneath?", 3, 3)
	require.NoError(t, err)

	h2, err := ReflectionHash("What lies beneath?", 3, 3)
	require.NoError(t, err)

	h3, err := ReflectionHash("What lies beneath?", 4, 4)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3, "depth should affect hash")
	assert.Len(t, h1, 64)
}

func TestChainHashStableUnderSameBytes(t *testing.T) {
	data := []byte(`{"A":{"name":"A"}}`)

	assert.Equal(t, ChainHash(data), ChainHash(data))
	assert.NotEqual(t, ChainHash(data), ChainHash([]byte(`{"A":{"name":"A2"}}`)))
}

func TestHashDomainsAreSeparated(t *testing.T) {
	// Identical payloads under different domains must differ.
	payload := []byte(`{}`)
	assert.NotEqual(t, hashWithDomain(DomainEntity, payload), hashWithDomain(DomainChain, payload))
	assert.NotEqual(t, hashWithDomain(DomainEntity, payload), hashWithDomain(DomainReflection, payload))
}

func TestHashIsLowercaseHex(t *testing.T) {
	h := MustDefineHash("A", nil, "", 0)
	assert.Equal(t, strings.ToLower(h), h)
	for _, r := range h {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}
