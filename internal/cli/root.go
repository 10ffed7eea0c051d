package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/annotizer/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Strict     bool
	ConfigFile string

	// Config is the merged configuration, filled in before any subcommand runs.
	Config config.Config

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the annotizer CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "annotizer",
		Short: "annotizer - namespaced callable annotations",
		Long: `Attach parameter and return metadata to callables under UUID namespaces,
so independent projects can annotate the same function without collisions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "warn about parameter names a signature does not declare")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .annotizer.yaml)")

	// Add subcommands
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewNewIDCommand(opts))
	cmd.AddCommand(NewCheckIDCommand(opts))
	cmd.AddCommand(NewSignaturesCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// load merges config file, environment and flags into opts, then builds
// the logger. Flags win when set explicitly.
func (o *RootOptions) load(cmd *cobra.Command) error {
	v, err := config.NewViper(o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading configuration", err)
	}

	flags := cmd.Root().PersistentFlags()
	for _, name := range []string{"format", "verbose", "strict"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("binding flag %s", name), err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Config = cfg
	o.Format = cfg.Format
	o.Verbose = cfg.Verbose
	o.Strict = cfg.Strict
	o.Logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	return nil
}

// newLogger writes warnings to w, or everything down to debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *RootOptions) printer(cmd *cobra.Command) *Printer {
	return &Printer{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
