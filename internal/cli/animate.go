package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/pipeline"
	"github.com/matzehuels/svgreveal/pkg/reveal"
	"github.com/matzehuels/svgreveal/pkg/source"
)

// stdio is the file name that stands for standard input or output.
const stdio = source.Stdin

// animateOpts holds the flags of the animate command.
type animateOpts struct {
	animationFlags

	output        string
	outDir        string
	sequentialIDs bool
	noCache       bool
	refresh       bool
	playback      string
	jobs          int
}

// animateCommand creates the animate command.
func (c *CLI) animateCommand() *cobra.Command {
	opts := animateOpts{}

	cmd := &cobra.Command{
		Use:   "animate FILE...",
		Short: "Add reveal animations to SVG files",
		Long: `Add reveal animations to SVG files.

Each shape gets its own @keyframes rule and an inline style that starts it
hidden. Shapes start one after another, 0.1s apart, in document order.

With a single input and no -o, the result is written to standard output.
Several inputs are written next to the originals as NAME.animated.svg, or
into --out-dir. Use "-" to read from standard input. Inputs may also be
http(s) URLs; downloads are cached for a day.`,
		Example: `  svgreveal animate logo.svg > logo.animated.svg
  svgreveal animate --duration 2 --count 1 --rect-mode fade-in -o out.svg in.svg
  svgreveal animate --config reveal.toml --out-dir dist/ icons/*.svg
  svgreveal animate https://example.com/logo.svg -o logo.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnimate(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input only; \"-\" for stdout)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "directory for animated files")
	cmd.Flags().BoolVar(&opts.sequentialIDs, "sequential-ids", false, "number keyframes 1, 2, 3... for reproducible output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVar(&opts.playback, "playback", "", "playback state to apply after animating (play, pause, reset)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of files processed in parallel")
	_ = cmd.RegisterFlagCompletionFunc("playback", completeWords(actions...))

	return cmd
}

// job is one input file and where its result goes.
type job struct {
	input  string
	output string
}

func (c *CLI) runAnimate(cmd *cobra.Command, args []string, opts animateOpts) error {
	revealOpts, err := opts.options(cmd)
	if err != nil {
		return err
	}
	popts := pipeline.Options{
		Reveal:        revealOpts,
		SequentialIDs: opts.sequentialIDs,
		Refresh:       opts.refresh,
	}
	if opts.playback != "" {
		a, err := reveal.ParseAction(opts.playback)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --playback")
		}
		popts.Playback = a
	}

	jobs, err := planJobs(args, opts.output, opts.outDir)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	toStdout := len(jobs) == 1 && jobs[0].output == stdio
	if toStdout {
		stdout = os.Stderr
		defer func() { stdout = os.Stdout }()
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	loader := c.newLoader(runner.Cache, opts.refresh)
	prog := newProgress(c.Logger)
	if err := c.animateAll(cmd.Context(), runner, loader, jobs, popts, opts.jobs); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Animated %d document(s)", len(jobs)))

	if !toStdout && len(jobs) == 1 {
		printNextStep("Inspect timings", fmt.Sprintf("%s timings %s", appName, jobs[0].output))
	}
	return nil
}

// animateAll processes jobs with at most limit running at once. The first
// failure cancels the jobs that have not started yet.
func (c *CLI) animateAll(ctx context.Context, runner *pipeline.Runner, loader *source.Loader, jobs []job, opts pipeline.Options, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	// Status lines from different files must not interleave mid-line.
	var mu sync.Mutex
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := animateFile(ctx, runner, loader, j, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				printError("%s: %s", j.input, errors.UserMessage(err))
				return fmt.Errorf("%s: %w", j.input, err)
			}
			if j.output != stdio {
				printSuccess("Animated %s", j.input)
				printFile(j.output)
				printStats(res.Stats.Elements, res.Stats.Rules, res.CacheHit)
			}
			return nil
		})
	}
	return g.Wait()
}

func animateFile(ctx context.Context, runner *pipeline.Runner, loader *source.Loader, j job, opts pipeline.Options) (*pipeline.Result, error) {
	data, err := loader.Load(ctx, j.input)
	if err != nil {
		return nil, err
	}
	res, err := runner.Animate(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	if err := writeOutput(j.output, res.SVG); err != nil {
		return nil, err
	}
	return res, nil
}

// planJobs decides where each input is written.
func planJobs(inputs []string, output, outDir string) ([]job, error) {
	if output != "" && len(inputs) > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "-o can only be used with a single input; use --out-dir")
	}
	if output != "" && outDir != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "-o and --out-dir are mutually exclusive")
	}

	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if in == stdio && len(inputs) > 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "standard input can only be used as the only input")
		}

		out := output
		switch {
		case out != "":
		case outDir != "":
			name := outputName(in)
			if err := errors.ValidateOutputName(name); err != nil {
				return nil, err
			}
			out = filepath.Join(outDir, name)
		case len(inputs) == 1:
			out = stdio
		case source.IsRemote(in):
			out = outputName(in)
		default:
			out = filepath.Join(filepath.Dir(in), outputName(in))
		}

		if prev, ok := seen[out]; ok && out != stdio {
			return nil, errors.New(errors.ErrCodeInvalidPath, "%s and %s would both be written to %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, job{input: in, output: out})
	}
	return jobs, nil
}

// outputName derives the animated file name from an input path or URL.
func outputName(input string) string {
	if input == stdio {
		return "stdin" + outputSuffix
	}
	base := filepath.Base(input)
	if source.IsRemote(input) {
		base = "download"
		if u, err := url.Parse(input); err == nil {
			if b := path.Base(u.Path); b != "/" && b != "." {
				base = b
			}
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

func writeOutput(path string, data []byte) error {
	if path == stdio {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
