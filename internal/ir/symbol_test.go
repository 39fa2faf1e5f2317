package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogueResolvesByExactName(t *testing.T) {
	cat := BuiltinCatalogue()

	alular, ok := cat.Resolve(SymbolAlular)
	require.True(t, ok)
	assert.Equal(t, "ALULAR", alular.Glyph)
	assert.InDelta(t, 0.9, alular.Resonance, 1e-9)

	_, ok = cat.Resolve("alular")
	assert.False(t, ok, "resolution is case-sensitive exact match")

	_, ok = cat.Resolve("NO_SUCH_SYMBOL")
	assert.False(t, ok)
}

func TestBuiltinCatalogueWeightsInRange(t *testing.T) {
	for name, sym := range BuiltinCatalogue() {
		assert.GreaterOrEqual(t, sym.Resonance, 0.0, "symbol %s", name)
		assert.LessOrEqual(t, sym.Resonance, 1.0, "symbol %s", name)
		assert.NoError(t, sym.Validate())
	}
}

func TestBuiltinCatalogueIsFreshCopy(t *testing.T) {
	a := BuiltinCatalogue()
	b := BuiltinCatalogue()

	a.Add(Symbol{Name: "EXTRA", Glyph: "+", Meaning: "added", Resonance: 0.5})

	_, ok := b.Resolve("EXTRA")
	assert.False(t, ok, "catalogues must not share state")
}

func TestCatalogueAddOverwrites(t *testing.T) {
	cat := BuiltinCatalogue()
	cat.Add(Symbol{Name: SymbolAlular, Glyph: "ALULAR", Meaning: "rebound", Resonance: 0.1})

	got, ok := cat.Resolve(SymbolAlular)
	require.True(t, ok)
	assert.Equal(t, "rebound", got.Meaning)
}

func TestSymbolValidate(t *testing.T) {
	tests := []struct {
		name    string
		sym     Symbol
		wantErr bool
	}{
		{"valid", Symbol{Name: "X", Glyph: "x", Meaning: "m", Resonance: 0.5}, false},
		{"zero resonance", Symbol{Name: "X", Glyph: "x", Resonance: 0}, false},
		{"full resonance", Symbol{Name: "X", Glyph: "x", Resonance: 1}, false},
		{"empty name", Symbol{Glyph: "x", Resonance: 0.5}, true},
		{"empty glyph", Symbol{Name: "X", Resonance: 0.5}, true},
		{"negative resonance", Symbol{Name: "X", Glyph: "x", Resonance: -0.1}, true},
		{"resonance above one", Symbol{Name: "X", Glyph: "x", Resonance: 1.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sym.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
