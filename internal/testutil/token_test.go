package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunGenerator(t *testing.T) {
	g := NewFixedRunGenerator("run-abc")
	assert.Equal(t, "run-abc", g.Generate())
	assert.Equal(t, "run-abc", g.Generate())
}

func TestFixedRunGeneratorDefault(t *testing.T) {
	g := NewFixedRunGenerator("")
	assert.Equal(t, "test-run-default", g.Generate())
}
