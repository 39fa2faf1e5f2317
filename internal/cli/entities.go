package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigil-lang/sigil/internal/ir"
	"github.com/sigil-lang/sigil/internal/registry"
)

// EntitiesOptions holds flags for the entities command.
type EntitiesOptions struct {
	*RootOptions
	Store StoreOptions
}

// NewEntitiesCommand creates the entities command.
func NewEntitiesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntitiesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "entities [name]",
		Short: "Inspect the entity registry",
		Long: `List all registered entities, or show the full record for one entity.

Listing is sorted by name. A missing entity is a command error.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return showEntities(cmd, opts, name)
		},
	}

	addStoreFlags(cmd, &opts.Store)

	return cmd
}

func showEntities(cmd *cobra.Command, opts *EntitiesOptions, name string) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := registry.Load(opts.Store.RegistryPath)
	if err != nil {
		return outputCommandError(formatter, ErrCodeRegistry,
			fmt.Sprintf("failed to load registry: %v", err), err)
	}

	if name != "" {
		rec, ok := reg.Get(name)
		if !ok {
			return outputCommandError(formatter, ErrCodeNotFound,
				fmt.Sprintf("entity %q not found", name), nil)
		}
		if opts.Format == "json" {
			return formatter.Success(rec)
		}
		printEntity(formatter, rec)
		return nil
	}

	records := reg.All()
	if opts.Format == "json" {
		return formatter.Success(records)
	}

	for _, rec := range records {
		verified := " "
		if rec.Verified {
			verified = "✓"
		}
		fmt.Fprintf(formatter.Writer, "%s %-24s %-12s %s\n",
			verified, rec.Name, rec.Kind, shortHash(rec.OriginHash))
	}
	return nil
}

// shortHash truncates a hash for listing. Hand-edited registry documents
// may hold hashes shorter than the display width.
func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}

func printEntity(f *OutputFormatter, rec ir.EntityRecord) {
	fmt.Fprintf(f.Writer, "name:        %s\n", rec.Name)
	fmt.Fprintf(f.Writer, "kind:        %s\n", rec.Kind)
	fmt.Fprintf(f.Writer, "components:  [%s]\n", strings.Join(rec.Components, ", "))
	if rec.LinkedTo != "" {
		fmt.Fprintf(f.Writer, "linked to:   %s\n", rec.LinkedTo)
	}
	fmt.Fprintf(f.Writer, "origin hash: %s\n", rec.OriginHash)
	if rec.Kind == ir.KindSynthesized {
		fmt.Fprintf(f.Writer, "fusion:      %.3f\n", rec.FusionStrength)
		fmt.Fprintf(f.Writer, "properties:  [%s]\n", strings.Join(rec.EmergentProperties, ", "))
	}
	fmt.Fprintf(f.Writer, "created at:  %s\n", rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(f.Writer, "counter:     %d\n", rec.CounterAtCreation)
	if rec.Verified && rec.VerifiedAt != nil {
		fmt.Fprintf(f.Writer, "verified at: %s\n", rec.VerifiedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
}
