package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigil-lang/sigil/internal/engine"
	"github.com/sigil-lang/sigil/internal/ir"
	"github.com/sigil-lang/sigil/internal/ledger"
	"github.com/sigil-lang/sigil/internal/registry"
)

// StoreOptions holds the persistence flags shared by every subcommand that
// touches engine state.
type StoreOptions struct {
	RegistryPath string
	LedgerPath   string
	ExportDir    string
	SymbolsDir   string
}

// defaults for the persistence flags.
const (
	DefaultRegistryPath = "sigil_entities.json"
	DefaultLedgerPath   = "sigil.db"
)

// session bundles the opened collaborators for one command invocation.
type session struct {
	engine *engine.Engine
	ledger *ledger.Ledger
}

// close releases the session's resources.
func (s *session) close() {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Close(); err != nil {
		slog.Error("error closing ledger", "error", err)
	}
}

// openSession loads the registry, opens the event ledger, optionally
// extends the symbol catalogue from CUE files, and assembles the engine.
//
// A ledger open failure is not fatal: the counter degrades to in-memory
// and the command proceeds, logging the degradation. Registry and
// catalogue failures are command errors.
func openSession(ctx context.Context, opts *StoreOptions) (*session, error) {
	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, WrapCodedError(ExitCommandError, ErrCodeRegistry, "failed to load registry", err)
	}

	var ldg *ledger.Ledger
	if opts.LedgerPath != "" {
		ldg, err = ledger.Open(opts.LedgerPath)
		if err != nil {
			slog.Warn("event ledger unavailable, counter runs in-memory",
				"path", opts.LedgerPath, "error", err)
			ldg = nil
		}
	}

	// NewCounter tolerates a nil ledger; *Ledger must not be passed as a
	// typed nil interface.
	var backing ledger.EventLedger
	if ldg != nil {
		backing = ldg
	}
	counter := ledger.NewCounter(ctx, backing)

	catalogue := ir.BuiltinCatalogue()
	if opts.SymbolsDir != "" {
		symbols, err := LoadSymbols(opts.SymbolsDir)
		if err != nil {
			if ldg != nil {
				_ = ldg.Close()
			}
			return nil, WrapCodedError(ExitCommandError, ErrCodeCatalogue, "failed to load symbol catalogue", err)
		}
		for _, s := range symbols {
			catalogue.Add(s)
		}
		slog.Debug("catalogue extended", "dir", opts.SymbolsDir, "symbols", len(symbols))
	}

	engineOpts := []engine.Option{engine.WithCatalogue(catalogue)}
	if opts.ExportDir != "" {
		engineOpts = append(engineOpts, engine.WithExportDir(opts.ExportDir))
	}

	return &session{
		engine: engine.New(reg, counter, engineOpts...),
		ledger: ldg,
	}, nil
}

// configureLogging installs the process-wide text handler on stderr.
// Verbose lowers the level to debug.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// addStoreFlags registers the shared persistence flags on a command.
func addStoreFlags(cmd *cobra.Command, opts *StoreOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.RegistryPath, "registry", DefaultRegistryPath, "path to the entity registry JSON document")
	f.StringVar(&opts.LedgerPath, "ledger", DefaultLedgerPath, "path to the SQLite event ledger (empty disables counting)")
	f.StringVar(&opts.ExportDir, "export-dir", ".", "directory for export artifacts")
	f.StringVar(&opts.SymbolsDir, "symbols", "", "directory of CUE files extending the symbol catalogue")
}
