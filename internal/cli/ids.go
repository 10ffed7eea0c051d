package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/annotizer/internal/ident"
)

// NewIDOptions holds flags for the new-id command.
type NewIDOptions struct {
	*RootOptions
	Count int
	V7    bool
}

// IDCheck is one check-id verdict.
type IDCheck struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewNewIDCommand creates the new-id command.
func NewNewIDCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewIDOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new-id",
		Short: "Generate namespace identifiers",
		Long: `Generate fresh identifiers for new projects, one per line.

Random (version 4) identifiers are the default; --v7 or id_version: 7 in the
config produces time-ordered ones.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewID(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "number of identifiers")
	cmd.Flags().BoolVar(&opts.V7, "v7", false, "generate time-ordered (version 7) identifiers")

	return cmd
}

func runNewID(opts *NewIDOptions, cmd *cobra.Command) error {
	printer := opts.printer(cmd)

	if opts.Count < 1 {
		_ = printer.Error(ErrCodeGeneric, fmt.Sprintf("count must be at least 1, got %d", opts.Count), nil)
		return NewExitError(ExitCommandError, "invalid count")
	}

	gen := opts.Config.Generator()
	if opts.V7 {
		gen = ident.TimeOrderedGenerator{}
	}

	ids := make([]string, opts.Count)
	for i := range ids {
		ids[i] = gen.Generate().String()
	}

	if printer.JSON() {
		return printer.Success(map[string]any{"ids": ids})
	}
	return printer.Success(strings.Join(ids, "\n") + "\n")
}

// NewCheckIDCommand creates the check-id command.
func NewCheckIDCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-id <id>...",
		Short: "Validate namespace identifiers",
		Long: `Check that each argument is a canonical UUID usable as a namespace identifier.

Exit codes:
  0 - All identifiers valid
  2 - At least one identifier is malformed (INVALID_IDENTIFIER_FORMAT)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckID(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runCheckID(opts *RootOptions, args []string, cmd *cobra.Command) error {
	printer := opts.printer(cmd)

	checks := make([]IDCheck, 0, len(args))
	invalid := 0
	for _, arg := range args {
		id, err := ident.Parse(arg)
		if err != nil {
			invalid++
			checks = append(checks, IDCheck{Input: arg, Error: err.Error()})
			continue
		}
		checks = append(checks, IDCheck{Input: arg, Valid: true, Canonical: id.String()})
	}

	if printer.JSON() {
		if invalid > 0 {
			if err := printer.Error(ident.ErrInvalidIdentifierFormat.Error(),
				fmt.Sprintf("%d invalid identifier(s)", invalid), checks); err != nil {
				return err
			}
			return NewExitError(ExitCommandError, fmt.Sprintf("%d invalid identifier(s)", invalid))
		}
		return printer.Success(checks)
	}

	var b strings.Builder
	for _, c := range checks {
		if c.Valid {
			fmt.Fprintf(&b, "✓ %s\n", c.Canonical)
		} else {
			fmt.Fprintf(&b, "✗ %s\n", c.Error)
		}
	}
	if err := printer.Success(b.String()); err != nil {
		return err
	}

	if invalid > 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%d invalid identifier(s)", invalid))
	}
	return nil
}

// outputIdentifierError reports a malformed identifier flag.
func outputIdentifierError(printer *Printer, err error) error {
	_ = printer.Error(ident.ErrInvalidIdentifierFormat.Error(), err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid identifier", err)
}
