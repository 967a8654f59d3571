package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/reveal"
)

// keyframesCommand creates the command that prints a single synthesized rule.
func (c *CLI) keyframesCommand() *cobra.Command {
	var (
		shape  string
		mode   string
		length float64
		id     string
	)

	cmd := &cobra.Command{
		Use:   "keyframes",
		Short: "Print the @keyframes rule for a shape",
		Example: `  svgreveal keyframes --length 120
  svgreveal keyframes --shape rect --mode fade-in --id logo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var class reveal.ShapeClass
			switch shape {
			case "generic", "path":
				class = reveal.ClassGeneric
			case "rect":
				class = reveal.ClassRect
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown --shape %q: want rect or generic", shape)
			}

			m := class.DefaultMode()
			if mode != "" {
				m = reveal.RenderMode(mode)
			}
			if length <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--length must be positive")
			}
			if err := errors.ValidateKeyframeID(id); err != nil {
				return err
			}

			rule := reveal.Synthesize(class, m, length, id)
			if rule == "" {
				return errors.New(errors.ErrCodeInvalidMode, "mode %q is not supported for %s shapes (want %v)", m, class, class.Modes())
			}
			fmt.Fprintln(cmd.OutOrStdout(), rule)
			return nil
		},
	}

	cmd.Flags().StringVar(&shape, "shape", "generic", "shape class (rect or generic)")
	cmd.Flags().StringVar(&mode, "mode", "", "render mode (default depends on --shape)")
	cmd.Flags().Float64Var(&length, "length", 100, "contour length of the shape")
	cmd.Flags().StringVar(&id, "id", "1", "keyframe identifier")

	return cmd
}
