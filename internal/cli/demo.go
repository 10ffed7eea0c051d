package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/annotizer/internal/annotate"
	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/render"
	"github.com/roach88/annotizer/internal/signature"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	IDA  string
	IDB  string
	Call bool
}

// DemoResult is the JSON payload of the demo command.
type DemoResult struct {
	Namespaces  map[string]string `json:"namespaces"`
	Annotations map[string]any    `json:"annotations"`
	Digest      string            `json:"digest"`
}

// demoSignatures knows the demo callable without reading source files, so
// the demo works from an installed binary.
var demoSignatures = func() *signature.Registry {
	r := signature.NewRegistry()
	r.MustRegister(demoFunc, "a", "b", "c")
	return r
}()

// demoOut receives demoFunc's output while the command runs.
var demoOut io.Writer = io.Discard

func demoFunc(a, b, c string) {
	fmt.Fprintf(demoOut, "a = %s, b = %s, c = %s\n", a, b, c)
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Annotate one function from two namespaces",
		Long: `Decorate func(a, b, c) with parameter and return documentation from two
independent namespaces, A and B, then print the resulting annotations.

Identifiers default to demo.id_a / demo.id_b from configuration, or fresh
ones when unset.

Examples:
  annotizer demo
  annotizer demo --id-a 11111111-1111-4111-8111-111111111111
  annotizer demo --call --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IDA, "id-a", "", "identifier for namespace A")
	cmd.Flags().StringVar(&opts.IDB, "id-b", "", "identifier for namespace B")
	cmd.Flags().BoolVar(&opts.Call, "call", false, "call the decorated function afterwards")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	printer := opts.printer(cmd)
	gen := opts.Config.Generator()

	idA, err := demoID(opts.IDA, opts.Config.Demo.IDA, gen)
	if err != nil {
		return outputIdentifierError(printer, err)
	}
	idB, err := demoID(opts.IDB, opts.Config.Demo.IDB, gen)
	if err != nil {
		return outputIdentifierError(printer, err)
	}

	nsOpts := []annotate.Option{annotate.WithLogger(opts.logger()), annotate.WithStrict(opts.Strict)}
	anA := annotate.NewNamespace(idA, nsOpts...)
	anB := annotate.NewNamespace(idB, nsOpts...)

	fn, err := annotate.Wrap(demoFunc, demoSignatures)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving demo signature", err)
	}

	// Listed outermost first, the way stacked decorators read.
	annotate.Decorate(fn, annotate.Stack(
		anA.Parameters(map[string]any{"a": "a", "b": "b", "c": "c"}),
		anB.Parameters(map[string]any{"a": "A", "b": "B", "c": "C"}),
		anA.Return("Doesn't return anything of value"),
		anB.Return("Does not return a value"),
	))
	printer.Logf("Decorated %s with namespaces %s and %s", fn.Signature().Name, idA, idB)

	store := fn.Annotations()
	aliases := render.Aliases{idA: "A", idB: "B"}

	if printer.JSON() {
		digest, err := render.StoreDigest(store)
		if err != nil {
			return WrapExitError(ExitCommandError, "digesting annotations", err)
		}
		return printer.Success(DemoResult{
			Namespaces:  map[string]string{"A": idA.String(), "B": idB.String()},
			Annotations: render.Tree(store, aliases),
			Digest:      digest,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A = %s\nB = %s\n\n", idA, idB)
	b.WriteString(render.Text(store, aliases))
	if err := printer.Success(b.String()); err != nil {
		return err
	}

	if opts.Call {
		demoOut = cmd.OutOrStdout()
		defer func() { demoOut = io.Discard }()
		fmt.Fprintln(demoOut)
		fn.Fn("1", "2", "3")
	}
	return nil
}

// demoID picks the flag value, then the configured value, then a fresh one.
func demoID(flag, configured string, gen ident.Generator) (ident.ID, error) {
	switch {
	case flag != "":
		return ident.Parse(flag)
	case configured != "":
		return ident.Parse(configured)
	default:
		return gen.Generate(), nil
	}
}
