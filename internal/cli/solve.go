package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/raster"
	"github.com/matzehuels/inscribe/pkg/search"
)

// solveFlags holds the flags shared by solve and render.
type solveFlags struct {
	unrestricted bool
	both         bool
	workers      int
	policy       string
	noCache      bool
	refresh      bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.unrestricted, "unrestricted", false, "ignore containment: largest rectangle over all vertex pairs")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "goroutines testing candidates (default from config)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "right-edge policy: half-open or inclusive (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// solveOptions merges the config file's [search] section with the flags that
// were set explicitly.
func (c *CLI) solveOptions(cmd *cobra.Command, f *solveFlags) (pipeline.Options, error) {
	opts := c.baseOptions()
	opts.Variant = pipeline.VariantRestricted
	opts.Refresh = f.refresh

	switch {
	case f.both:
		opts.Variant = pipeline.VariantBoth
	case f.unrestricted:
		opts.Variant = pipeline.VariantUnrestricted
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	if cmd.Flags().Changed("policy") {
		p, err := raster.ParsePolicy(f.policy)
		if err != nil {
			return opts, err
		}
		opts.Policy = p
	}
	return opts, opts.ValidateAndSetDefaults()
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		f           solveFlags
		jsonOut     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Print the area of the largest rectangle anchored at two vertices",
		Long: `Solve reads a vertex file (one "x,y" per line, in boundary order) and prints
the area of the largest axis-aligned rectangle that has two polygon vertices
as opposite corners and lies entirely inside the polygon.

Areas count grid cells inclusively: the rectangle with corners (2,3) and
(9,5) has area 8*3 = 24.`,
		Example: `  # Largest contained rectangle
  inscribe solve input.txt

  # Largest rectangle over all vertex pairs, then the contained one
  inscribe solve input.txt --both

  # Full result document
  inscribe solve input.txt --json --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := errors.ValidateInputPath(path); err != nil {
				return err
			}

			opts, err := c.solveOptions(cmd, &f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var res *pipeline.Result
			switch {
			case interactive:
				res, err = runInteractive(ctx, runner, path, opts)
			case !jsonOut && isTerminal(statusOut):
				res, err = solveWithSpinner(ctx, runner, path, opts)
			default:
				res, err = runner.SolveFile(ctx, path, opts)
			}
			if err != nil {
				return err
			}

			switch {
			case jsonOut:
				return writeJSON(c.Out, res)
			case interactive:
				fmt.Fprintln(c.Out, resultTable(res))
				printStats(res)
				printNextStep("Draw it", "inscribe render "+path)
				return nil
			default:
				return writeAreas(c.Out, res)
			}
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.both, "both", false, "print the unrestricted area, then the restricted area")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show live search progress")
	cmd.MarkFlagsMutuallyExclusive("unrestricted", "both")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")

	return cmd
}

// solveWithSpinner runs the solve behind a spinner that counts checked
// candidates.
func solveWithSpinner(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Solving "+path+"...")
	opts.OnProgress = func(p search.Progress) {
		spinner.SetMessage(fmt.Sprintf("Checked %d of %d candidates (area %d)", p.Checked, p.Total, p.Area))
	}
	spinner.Start()
	res, err := runner.SolveFile(ctx, path, opts)
	spinner.Stop()
	return res, err
}

// writeAreas prints one area per line: the unrestricted area first when
// both were computed.
func writeAreas(w io.Writer, res *pipeline.Result) error {
	for _, a := range []*pipeline.Answer{res.Unrestricted, res.Restricted} {
		if a == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, a.Area); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
