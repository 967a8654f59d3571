package cli

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/reveal"
	"github.com/matzehuels/svgreveal/pkg/timeline"
)

const (
	// frameInterval is how often the player advances its clock.
	frameInterval = 50 * time.Millisecond

	// barWidth is the width of a progress bar in cells.
	barWidth = 24
)

var (
	styleBarFull  = lipgloss.NewStyle().Foreground(colorCyan)
	styleBarEmpty = lipgloss.NewStyle().Foreground(colorDim)
)

// playCommand creates the interactive terminal player.
func (c *CLI) playCommand() *cobra.Command {
	var flags animationFlags

	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play the animations of an SVG file in the terminal",
		Long: `Animate FILE and play it on a virtual clock, showing the progress of every
shape. Keys: space pauses and resumes, r resets, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			cc, err := newCache(false)
			if err != nil {
				return err
			}
			defer cc.Close()
			data, err := c.newLoader(cc, false).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := newPlayModel(data, opts, c.Logger.WithPrefix("play"), time.Now())
			if err != nil {
				return err
			}
			// Log lines would tear the full-screen view.
			c.Logger.SetLevel(LogWarn)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// tickMsg advances the player clock to the given wall time.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel is the bubbletea model of the terminal player.
type playModel struct {
	doc       *dom.Document
	clock     *timeline.Clock
	animator  *reveal.Animator
	shapes    []*dom.Element
	paused    bool
	completed int
	last      time.Time
}

func newPlayModel(svg []byte, opts *reveal.Options, logger *log.Logger, now time.Time) (*playModel, error) {
	if err := errors.ValidateSVGInput(svg); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse document")
	}

	m := &playModel{doc: doc, clock: timeline.NewClock(doc.Root), last: now}
	m.animator = reveal.New(
		reveal.WithIDs(&reveal.SequentialIDs{}),
		reveal.WithScheduler(m.clock),
		reveal.WithLogger(logger),
	)

	var o reveal.Options
	if opts != nil {
		o = *opts
	}
	o.OnComplete = func() { m.completed++ }
	records := m.animator.Animate(doc.Root, &o)
	m.clock.Advance(0)

	for _, el := range doc.Root.QueryAll(dom.ShapeTags...) {
		if _, ok := m.clock.Progress(el); ok {
			m.shapes = append(m.shapes, el)
		}
	}
	logger.Debug("player ready", "records", len(records), "shapes", len(m.shapes))
	return m, nil
}

func (m *playModel) Init() tea.Cmd {
	return tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if d := now.Sub(m.last); d > 0 {
			m.clock.Advance(d)
		}
		m.last = now
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			action := reveal.ActionPlay
			if m.paused {
				action = reveal.ActionPause
			}
			m.animator.Control(m.doc.Root, action)
			m.clock.Advance(0)
		case "r":
			m.animator.Control(m.doc.Root, reveal.ActionReset)
			m.clock.Advance(0)
		}
	}
	return m, nil
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("svgreveal player"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("t=%s  completed %d/%d", formatSeconds(m.clock.Now().Truncate(10*time.Millisecond)), m.completed, len(m.shapes))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause/resume  r reset  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.shapes))
	for i, el := range m.shapes {
		st, ok := m.clock.Progress(el)
		if !ok {
			// Cleared by a reset that has not been restored yet.
			rows = append(rows, []string{fmt.Sprint(i + 1), describe(el), "", progressBar(0), ""})
			continue
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			describe(el),
			st.Name,
			progressBar(st.Fraction),
			status(st),
		})
	}

	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Shape", "Keyframes", "Progress", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader
			}
			return lipgloss.NewStyle()
		}).
		Render())
	b.WriteString("\n")
	return b.String()
}

func progressBar(fraction float64) string {
	full := int(fraction * barWidth)
	full = max(0, min(full, barWidth))
	return styleBarFull.Render(strings.Repeat("█", full)) +
		styleBarEmpty.Render(strings.Repeat("░", barWidth-full)) +
		fmt.Sprintf(" %3d%%", int(fraction*100))
}

func status(st timeline.State) string {
	switch {
	case st.Ended:
		return StyleSuccess.Render(iconSuccess + " done")
	case st.Paused:
		return StyleWarning.Render("paused")
	default:
		return StyleDim.Render(fmt.Sprintf("iteration %d", st.Iteration+1))
	}
}
