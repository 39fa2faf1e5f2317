package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigil-lang/sigil/internal/engine"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Store StoreOptions
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script-file>",
		Short: "Execute a sigil script",
		Long: `Execute a line-oriented sigil script against the persistent registry.

Each non-blank, non-comment line is parsed as one command (DEFINE, REFLECT,
SYNTHESIZE, VERIFY, EXPORT_CHAIN) and executed in order. A line that fails
to parse or execute does not stop the script; its outcome is reported and
execution continues.

Example:
  sigil run ritual.sgl
  sigil run --registry /tmp/entities.json --ledger /tmp/sigil.db ritual.sgl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, args[0])
		},
	}

	addStoreFlags(cmd, &opts.Store)

	return cmd
}

func runScript(cmd *cobra.Command, opts *RunOptions, scriptPath string) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return outputCommandError(formatter, ErrCodeNotFound,
			fmt.Sprintf("failed to read script: %v", err), err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Info("opening stores",
		"registry", opts.Store.RegistryPath, "ledger", opts.Store.LedgerPath)
	sess, err := openSession(ctx, &opts.Store)
	if err != nil {
		return outputSessionError(formatter, err)
	}
	defer sess.close()

	slog.Info("executing script", "path", scriptPath, "run_token", sess.engine.RunToken())
	outcomes := sess.engine.RunScript(ctx, string(script))

	failed := 0
	for _, o := range outcomes {
		if o.Err != "" {
			failed++
		}
	}

	if opts.Format == "json" {
		if failed > 0 {
			return outputScriptFailure(formatter, outcomes, failed)
		}
		return formatter.Success(outcomes)
	}

	printOutcomes(formatter, outcomes)
	if failed > 0 {
		return outputScriptFailure(formatter, outcomes, failed)
	}
	return nil
}

// outputScriptFailure emits the error envelope for a run with failed lines.
// In JSON mode the envelope replaces the success payload, so the per-line
// outcomes ride along as details.
func outputScriptFailure(f *OutputFormatter, outcomes []engine.LineOutcome, failed int) error {
	message := fmt.Sprintf("%d of %d lines failed", failed, len(outcomes))
	var details any
	if f.Format == "json" {
		details = outcomes
	}
	_ = f.Error(ErrCodeScriptFailed, message, details)
	return WrapCodedError(ExitFailure, ErrCodeScriptFailed, message, nil)
}

// printOutcomes renders the per-line results as human-readable text.
func printOutcomes(f *OutputFormatter, outcomes []engine.LineOutcome) {
	for _, o := range outcomes {
		marker := "✓"
		switch {
		case o.Err != "":
			marker = "✗"
		case !o.Executed:
			marker = "·"
		}
		fmt.Fprintf(f.Writer, "%s [%d] %s\n", marker, o.Seq, o.Line)
		if o.Err != "" {
			fmt.Fprintf(f.Writer, "    error: %s\n", o.Err)
		}
		if f.Verbose && o.Result != nil {
			fmt.Fprintf(f.Writer, "    %s\n", summarize(o.Result))
		}
	}
}

// summarize renders one command result on a single line.
func summarize(result any) string {
	switch r := result.(type) {
	case interface{ String() string }:
		return r.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%+v", r))
	}
}
