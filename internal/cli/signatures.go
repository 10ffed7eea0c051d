package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/annotizer/internal/signature"
)

// SignaturesResult is the JSON payload of the signatures command.
type SignaturesResult struct {
	Files      int              `json:"files"`
	Signatures []signature.View `json:"signatures"`
}

// NewSignaturesCommand creates the signatures command.
func NewSignaturesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures <path>...",
		Short: "Validate and list CUE signature declarations",
		Long: `Load signature declarations from CUE files (directories are searched
recursively) and list them in declaration order.

Each file declares callables under a top-level "signature" struct:

  signature: {
    render: {
      params: ["a", "b", "c"]
      results: 1
    }
  }`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignatures(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runSignatures(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	printer := opts.printer(cmd)

	result, err := LoadSignatures(paths)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			_ = printer.Error(loadErr.Code, loadErr.Error(), nil)
		} else {
			_ = printer.Error(ErrCodeGeneric, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "loading signatures", err)
	}

	printer.Logf("Loaded %d CUE file(s)", result.FileCount)

	if printer.JSON() {
		return printer.Success(SignaturesResult{Files: result.FileCount, Signatures: result.Views})
	}

	var b strings.Builder
	for _, view := range result.Views {
		params := strings.Join(view.Params, ", ")
		if view.Variadic && len(view.Params) > 0 {
			params += "..."
		}
		fmt.Fprintf(&b, "%s(%s) results=%d\n", view.Name, params, view.Results)
	}
	fmt.Fprintf(&b, "✓ %d signature(s) in %d file(s)\n", len(result.Views), result.FileCount)
	return printer.Success(b.String())
}
