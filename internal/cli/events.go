package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigil-lang/sigil/internal/ledger"
)

// EventsOptions holds flags for the events command.
type EventsOptions struct {
	*RootOptions
	LedgerPath string
	Limit      int
}

// NewEventsCommand creates the events command.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "events",
		Short:         "Show recent ledger events",
		Long:          "Show the most recent counter events from the SQLite event ledger, newest first.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listEvents(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.LedgerPath, "ledger", DefaultLedgerPath, "path to the SQLite event ledger")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of events to show")

	return cmd
}

func listEvents(cmd *cobra.Command, opts *EventsOptions) error {
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

	ldg, err := ledger.Open(opts.LedgerPath)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger,
			fmt.Sprintf("failed to open ledger: %v", err), err)
	}
	defer ldg.Close()

	events, err := ldg.Recent(ctx, opts.Limit)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger,
			fmt.Sprintf("failed to read events: %v", err), err)
	}

	if opts.Format == "json" {
		return formatter.Success(events)
	}

	for _, e := range events {
		fmt.Fprintf(formatter.Writer, "%6d  %s  %s  %s\n", e.Seq, e.CreatedAt, e.RunToken, e.Description)
	}
	return nil
}
