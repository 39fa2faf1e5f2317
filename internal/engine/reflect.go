package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sigil-lang/sigil/internal/ir"
)

// Reflection depth is clamped to [MinReflectDepth, MaxReflectDepth]. The
// upper bound is a hard design choice bounding recursive expansion cost;
// it is never configurable past 10.
const (
	MinReflectDepth = 1
	MaxReflectDepth = 10
)

// ReflectionLevel is one step of the recursive expansion. Level i's output
// is a pure function of level i-1's output and the per-level template.
type ReflectionLevel struct {
	Level             int     `json:"level"`
	Input             string  `json:"input"`
	Output            string  `json:"output"`
	ResonanceStrength float64 `json:"resonance_strength"`
}

// ReflectResult aggregates a full reflection chain.
type ReflectResult struct {
	Question       string            `json:"question"`
	Depth          int               `json:"depth"`
	Reflections    []ReflectionLevel `json:"reflections"`
	FinalInsight   string            `json:"final_insight"`
	TotalResonance float64           `json:"total_resonance"`
	Hash           string            `json:"hash"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Reflect executes a REFLECT command. The requested depth is clamped to
// [1,10]; each level's resonance strength is 1.0 - 0.1*(level-1), which
// never goes negative under the clamp. Pure function of its inputs except
// for the counter event - no registry interaction.
func (e *Engine) Reflect(ctx context.Context, cmd ir.ReflectCommand) (ReflectResult, error) {
	depth := min(max(cmd.Depth, MinReflectDepth), MaxReflectDepth)

	levels := make([]ReflectionLevel, 0, depth)
	current := cmd.Question
	total := 0.0

	for i := 1; i <= depth; i++ {
		strength := 1.0 - 0.1*float64(i-1)
		level := ReflectionLevel{
			Level:             i,
			Input:             current,
			Output:            reflectOnce(current, i),
			ResonanceStrength: strength,
		}
		levels = append(levels, level)
		current = level.Output
		total += strength
	}

	hash, err := ir.ReflectionHash(cmd.Question, depth, len(levels))
	if err != nil {
		return ReflectResult{}, fmt.Errorf("reflect: %w", err)
	}

	result := ReflectResult{
		Question:       cmd.Question,
		Depth:          depth,
		Reflections:    levels,
		FinalInsight:   levels[len(levels)-1].Output,
		TotalResonance: total,
		Hash:           hash,
		Timestamp:      e.now().UTC(),
	}

	e.counter.Record(ctx, e.runToken, fmt.Sprintf(
		"REFLECT ∴ %q DEPTH %d → resonance %.2f",
		truncate(cmd.Question, 50), depth, total,
	))

	return result, nil
}

// reflectOnce applies the fixed per-level transformation template. Five
// distinct templates cover levels 1-5; deeper levels fall back to a
// generic meta-reflection referencing the level number and a truncated
// view of the input.
func reflectOnce(input string, level int) string {
	switch level {
	case 1:
		return fmt.Sprintf("○ Ground: %s → what lies beneath?", input)
	case 2:
		return fmt.Sprintf("↻ Recursion: if %s, what does that imply for its being?", input)
	case 3:
		return fmt.Sprintf("∞ Infinity: %s viewed from an eternal perspective...", input)
	case 4:
		return fmt.Sprintf("⊕ Fusion: how does %s bind with ALULAR?", input)
	case 5:
		return fmt.Sprintf("Ψ_A Impulse: %s as an expression of fundamental being", input)
	default:
		return fmt.Sprintf("Depth %d: meta-reflection over %s...", level, truncate(input, 30))
	}
}

// truncate returns at most n runes of s. Rune-based so multi-byte glyphs
// are never split.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
