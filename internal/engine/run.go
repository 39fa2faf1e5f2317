package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigil-lang/sigil/internal/ir"
	"github.com/sigil-lang/sigil/internal/parse"
)

// CommentMarker starts a skipped line.
const CommentMarker = "#"

// LineOutcome is one script line's result. Outcomes are ordered by input
// line order; Seq carries the logical clock stamp.
type LineOutcome struct {
	Line     string `json:"line"`
	Seq      int64  `json:"seq"`
	Executed bool   `json:"executed"`
	Result   any    `json:"result,omitempty"`
	Err      string `json:"error,omitempty"`
}

// RunScript executes a multi-line script, one command per line. Blank
// lines and comment lines are skipped entirely (no outcome). Every other
// line yields exactly one outcome:
//
//   - parse mismatch: executed=false, no error - the line is recorded as
//     not executed and the script continues
//   - execution fault: executed=false with the error message recorded
//   - success: executed=true with the command's result record
//
// No error is fatal to the overall script; the aggregate result always
// reflects all lines attempted. Each run is stamped with a fresh run
// token.
func (e *Engine) RunScript(ctx context.Context, script string) []LineOutcome {
	e.runToken = e.tokens.Generate()

	var outcomes []LineOutcome
	for _, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, CommentMarker) {
			continue
		}

		outcome := LineOutcome{Line: line, Seq: e.clock.Next()}

		cmd, ok := parse.Line(line, e.catalogue)
		if !ok {
			outcomes = append(outcomes, outcome)
			continue
		}

		result, err := e.Execute(ctx, cmd)
		if err != nil {
			outcome.Err = err.Error()
		} else {
			outcome.Executed = true
			outcome.Result = result
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// RunToken returns the token stamped on the most recent run.
func (e *Engine) RunToken() string {
	return e.runToken
}

// Execute dispatches one parsed command to its executor. The operation
// set is closed: the five command forms and nothing else.
func (e *Engine) Execute(ctx context.Context, cmd ir.Command) (any, error) {
	switch c := cmd.(type) {
	case ir.DefineCommand:
		return e.Define(ctx, c)
	case ir.ReflectCommand:
		return e.Reflect(ctx, c)
	case ir.SynthesizeCommand:
		return e.Synthesize(ctx, c)
	case ir.VerifyCommand:
		return e.Verify(ctx, c)
	case ir.ExportChainCommand:
		return e.ExportChain(ctx, c)
	default:
		return nil, fmt.Errorf("unknown command type %T", cmd)
	}
}
