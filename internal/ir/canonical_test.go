package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	obj := Object{
		"zebra": String("z"),
		"alpha": String("a"),
		"mid":   Int(1),
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","mid":1,"zebra":"z"}`, string(out))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical(String("<a> & </a>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a> & </a>"`, string(out))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(3.14)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"weight": 0.5})
	assert.Error(t, err)
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)
}

func TestMarshalCanonicalArrayPreservesOrder(t *testing.T) {
	arr := Array{String("b"), String("a"), Int(3)}

	out, err := MarshalCanonical(arr)
	require.NoError(t, err)
	assert.Equal(t, `["b","a",3]`, string(out))
}

func TestMarshalCanonicalStringSlices(t *testing.T) {
	out, err := MarshalCanonical([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, `["x","y"]`, string(out))
}

func TestMarshalCanonicalUnicodeGlyphs(t *testing.T) {
	// Glyphs appear verbatim, not as \u escapes.
	out, err := MarshalCanonical(String("⊘∞⧈∞⊘"))
	require.NoError(t, err)
	assert.Equal(t, "\"⊘∞⧈∞⊘\"", string(out))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	// U+2028/U+2029 must appear as literal characters per RFC 8785.
	out, err := MarshalCanonical(String("a b c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(out))
}

func TestMarshalCanonicalEscapedBackslashU2028(t *testing.T) {
	// A literal backslash followed by "u2028" text must stay escaped.
	out, err := MarshalCanonical(String(`\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(out))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "é" as e + combining acute must normalize to the composed form.
	decomposed := "é"
	composed := "é"

	out1, err := MarshalCanonical(String(decomposed))
	require.NoError(t, err)
	out2, err := MarshalCanonical(String(composed))
	require.NoError(t, err)

	assert.Equal(t, out2, out1, "NFC normalization must unify the forms")
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+1D306 (surrogate pair in UTF-16) sorts after U+FF5E under UTF-16
	// code unit order, though UTF-8 byte order would disagree for some
	// pairs; the classic RFC 8785 example.
	obj := Object{
		"":     Int(1),
		"～":     Int(2),
		"\U0001d306": Int(3),
	}

	keys := obj.SortedKeys()
	assert.Equal(t, []string{"", "\U0001d306", "～"}, keys)
}

func TestMarshalCanonicalNestedObjects(t *testing.T) {
	obj := Object{
		"outer": Object{
			"b": Int(2),
			"a": Int(1),
		},
		"list": Array{Object{"k": String("v")}},
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"list":[{"k":"v"}],"outer":{"a":1,"b":2}}`, string(out))
}
