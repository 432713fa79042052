package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/pkg/pipeline"
)

// generateCommand creates the generate command, the main text-to-visual entry point.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		literal    string
		kind       string
		formatsStr string
		output     string
		width      int
		height     int
		noRedact   bool
		noCache    bool
		refresh    bool
		openAfter  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Compile text into a diagram",
		Long: `Compile plain text into a flowchart, relation diagram, or bar chart.

The input is read from the given file, or from stdin when the file is
omitted or "-". The visual kind is detected from the text unless --kind
forces one.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			text := literal
			if text == "" {
				var err error
				text, err = readInput(input)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}
			loggerFromContext(cmd.Context()).Debugf("Read %d bytes from %s", len(text), inputArg(input))

			opts := pipeline.Options{
				Text:    text,
				Kind:    kind,
				Formats: parseFormats(formatsStr),
				Width:   width,
				Height:  height,
				Redact:  !noRedact,
				Refresh: refresh,
			}
			return c.runGenerate(cmd.Context(), input, output, opts, noCache, openAfter)
		},
	}

	cmd.Flags().StringVarP(&literal, "text", "t", "", "literal input text (instead of a file)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "auto", "visual kind: auto (default), flowchart, diagram, chart")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, dot, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple), '-' for stdout")
	cmd.Flags().IntVar(&width, "width", 0, "override canvas width")
	cmd.Flags().IntVar(&height, "height", 0, "override canvas height")
	cmd.Flags().BoolVar(&noRedact, "no-redact", false, "keep secrets and emails in the input as-is")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompile even when a cached model exists")
	cmd.Flags().BoolVar(&openAfter, "open", false, "open the first written file in the default viewer")

	return cmd
}

// runGenerate executes the pipeline and writes the rendered artifacts.
func (c *CLI) runGenerate(ctx context.Context, input, output string, opts pipeline.Options, noCache, openAfter bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Compiling...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	printSuccess("Generated %s", res.Kind)
	printStats(res.Stats.NodeCount+res.Stats.SeriesCount, res.Stats.EdgeCount, res.CacheInfo.ModelHit && res.CacheInfo.RenderHit)

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	if openAfter && len(paths) > 0 {
		if err := openFile(paths[0]); err != nil {
			printWarning("Could not open %s: %v", paths[0], err)
		}
	}
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source file path, used to derive the default output path
	output    string // explicit output path, "-" for stdout
}

// writeArtifacts writes each rendered format to disk and returns the written
// paths. A single format goes to the output path as given (or stdout with
// "-"); multiple formats share a base path and get one file per format
// extension.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 {
		format := p.formats[0]
		if p.output == "-" {
			_, err := os.Stdout.Write(p.artifacts[format])
			return nil, err
		}
		path := p.output
		if path == "" {
			path = basePath("", p.input) + "." + format
		}
		if err := writeArtifactFile(path, p.artifacts[format]); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + format
		if err := writeArtifactFile(path, p.artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeArtifactFile writes data to path, creating parent directories as needed.
func writeArtifactFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// openFile opens path with the platform's default viewer.
func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; stdin input falls
// back to "visual". A known format extension on output is stripped so that
// per-format extensions can be appended.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return "visual"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
