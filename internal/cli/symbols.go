package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sigil-lang/sigil/internal/ir"
)

// SymbolsOptions holds flags for the symbols command.
type SymbolsOptions struct {
	*RootOptions
	Store StoreOptions
}

// NewSymbolsCommand creates the symbols command.
func NewSymbolsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SymbolsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "symbols",
		Short:         "List the symbol catalogue",
		Long:          "List the built-in symbol catalogue plus any CUE-defined extensions, sorted by name.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSymbols(cmd, opts)
		},
	}

	addStoreFlags(cmd, &opts.Store)

	return cmd
}

func listSymbols(cmd *cobra.Command, opts *SymbolsOptions) error {
	configureLogging(opts.Verbose)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := openSession(ctx, &opts.Store)
	if err != nil {
		return outputSessionError(formatter, err)
	}
	defer sess.close()

	catalogue := sess.engine.Catalogue()
	symbols := make([]ir.Symbol, 0, len(catalogue))
	for _, s := range catalogue {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Name < symbols[j].Name })

	if opts.Format == "json" {
		return formatter.Success(symbols)
	}

	for _, s := range symbols {
		fmt.Fprintf(formatter.Writer, "%-20s %-8s %.2f  %s\n", s.Name, s.Glyph, s.Resonance, s.Meaning)
	}
	return nil
}
