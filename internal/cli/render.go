package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	inio "github.com/matzehuels/inscribe/pkg/io"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/render"
	"github.com/matzehuels/inscribe/pkg/render/png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string // output file path; derived from the input for binary formats
	format      string // text, dot, svg or png
	labels      bool   // label vertices with their coordinates (dot, svg)
	size        int    // longer side in pixels (png)
	polygonOnly bool   // skip the solve and draw the polygon alone
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f solveFlags
	opts := renderOpts{
		format: render.FormatText,
		size:   png.DefaultMaxSize,
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw the polygon with its largest rectangle",
		Long: `Render solves the vertex file and draws the polygon together with the winning
rectangle. Formats:

  text  one character per lattice point: # boundary, o interior, X rectangle
  dot   Graphviz source with pinned vertex positions
  svg   the dot graph laid out by Graphviz
  png   filled raster image`,
		Example: `  inscribe render input.txt
  inscribe render input.txt -f svg -o input.svg --labels
  inscribe render input.txt -f png --unrestricted`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateInputPath(args[0]); err != nil {
				return err
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			opts.format = strings.ToLower(opts.format)
			return c.runRender(cmd, args[0], &f, &opts)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for text and dot, <input>.<format> otherwise)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label vertices with their coordinates (dot, svg)")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "longer image side in pixels (png)")
	cmd.Flags().BoolVar(&opts.polygonOnly, "polygon-only", false, "draw the polygon without solving")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, f *solveFlags, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := inio.LoadFile(path)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if !opts.polygonOnly {
		sopts, err := c.solveOptions(cmd, f)
		if err != nil {
			return err
		}
		runner, err := c.newRunner(ctx, f.noCache)
		if err != nil {
			return err
		}
		defer runner.Close()

		res, err = runner.Solve(ctx, p, sopts)
		switch {
		case errors.Is(err, errors.ErrCodeNoContainedRectangle):
			printWarning("No contained rectangle; drawing the polygon alone")
		case err != nil:
			return err
		}
	}

	data, err := pipeline.Render(ctx, p, res, pipeline.RenderOptions{
		Format: opts.format,
		Labels: opts.labels,
		Size:   opts.size,
	})
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" && (opts.format == render.FormatSVG || opts.format == render.FormatPNG) {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}

	if out == "" {
		if opts.format == render.FormatText && isTerminal(c.Out) {
			_, err = fmt.Fprint(c.Out, colorizeGrid(data))
		} else {
			_, err = c.Out.Write(data)
		}
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	prog.done("Rendered " + opts.format)
	if res != nil {
		if best := res.Best(); best != nil {
			printSuccess("Area %s", StyleNumber.Render(fmt.Sprint(best.Area)))
		}
	}
	printFile(out)
	return nil
}
