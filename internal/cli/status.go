package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Store StoreOptions
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show engine state",
		Long:          "Show the counter value, entity count, and catalogue size of the configured stores. Display-only.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(cmd, opts)
		},
	}

	addStoreFlags(cmd, &opts.Store)

	return cmd
}

func showStatus(cmd *cobra.Command, opts *StatusOptions) error {
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

	status := sess.engine.Status()

	if opts.Format == "json" {
		return formatter.Success(status)
	}

	fmt.Fprintf(formatter.Writer, "signature:       %s\n", status.Signature)
	fmt.Fprintf(formatter.Writer, "engine version:  %s\n", status.EngineVersion)
	fmt.Fprintf(formatter.Writer, "counter value:   %d\n", status.CounterValue)
	fmt.Fprintf(formatter.Writer, "entities:        %d\n", status.EntityCount)
	fmt.Fprintf(formatter.Writer, "symbols:         %d\n", status.CatalogueSize)
	return nil
}
