package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/pipeline"
	"github.com/matzehuels/svgreveal/pkg/reveal"
	"github.com/matzehuels/svgreveal/pkg/timeline"
)

const iconInfinite = "∞"

// timingRow is one animated shape in the timings table.
type timingRow struct {
	Shape    string
	Mode     reveal.RenderMode
	Name     string
	Delay    time.Duration
	Duration time.Duration
	Count    int
	End      time.Duration
	Infinite bool
}

// timingsCommand creates the command that shows when each shape animates.
func (c *CLI) timingsCommand() *cobra.Command {
	var (
		flags   animationFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "timings FILE",
		Short: "Show when each shape starts and finishes",
		Long: `Animate FILE with the given options and print, per shape, the keyframes
name, delay, duration, iteration count and the time the animation ends.
Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			data, err := c.newLoader(runner.Cache, false).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			res, err := runner.Animate(cmd.Context(), data, pipeline.Options{Reveal: opts, SequentialIDs: true})
			if err != nil {
				return err
			}
			rows, err := collectTimings(res)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				printInfo("No shapes to animate in %s", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTimings(rows))
			printDetail("Last finite animation ends at %s", formatSeconds(lastEnd(rows)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// collectTimings reads the animation shorthand back from every animated shape.
func collectTimings(res *pipeline.Result) ([]timingRow, error) {
	doc, err := dom.Parse(bytes.NewReader(res.SVG))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "re-read animated document")
	}
	modes := make(map[string]reveal.RenderMode, len(res.Records))
	for _, rec := range res.Records {
		modes[rec.Name] = rec.Mode
	}

	var rows []timingRow
	for _, el := range doc.Root.QueryAll(dom.ShapeTags...) {
		sh, err := timeline.ParseShorthand(el.Style().GetPropertyValue(reveal.PropAnimation.String()))
		if err != nil {
			continue
		}
		end, finite := sh.End()
		rows = append(rows, timingRow{
			Shape:    describe(el),
			Mode:     modes[sh.Name],
			Name:     sh.Name,
			Delay:    sh.Delay,
			Duration: sh.Duration,
			Count:    sh.Count,
			End:      end,
			Infinite: !finite,
		})
	}
	return rows, nil
}

// describe names an element the way a CSS selector would.
func describe(el *dom.Element) string {
	if id := el.ID(); id != "" {
		return el.Tag() + "#" + id
	}
	return el.Tag()
}

func lastEnd(rows []timingRow) time.Duration {
	var last time.Duration
	for _, r := range rows {
		if !r.Infinite && r.End > last {
			last = r.End
		}
	}
	return last
}

func renderTimings(rows []timingRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		count, end := strconv.Itoa(r.Count), formatSeconds(r.End)
		if r.Infinite {
			count, end = iconInfinite, iconInfinite
		}
		data[i] = []string{
			strconv.Itoa(i + 1),
			r.Shape,
			string(r.Mode),
			r.Name,
			formatSeconds(r.Delay),
			formatSeconds(r.Duration),
			count,
			end,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Shape", "Mode", "Keyframes", "Delay", "Duration", "Count", "Ends").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader
			}
			switch col {
			case 0:
				return StyleDim
			case 4, 5, 6, 7:
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
