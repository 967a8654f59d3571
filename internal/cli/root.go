package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "svgreveal draws SVG shapes in with CSS keyframe animations",
		Long: `svgreveal adds reveal animations to SVG documents. Every path, line,
polyline, polygon, rect, circle and ellipse gets its own @keyframes rule and
an inline style that starts it hidden, so the drawing appears stroke by stroke
when the document is opened in a browser.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.keyframesCommand())
	root.AddCommand(c.timingsCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
