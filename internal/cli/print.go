// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"

	"github.com/creachadair/jview/render/textview"
	"github.com/creachadair/jview/tree"
	"github.com/spf13/cobra"
)

func (c *CLI) printCommand() *cobra.Command {
	var (
		sf     stateFlags
		color  string
		indent int
	)
	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print the visible tree as text",
		Long: `Print renders the nodes of the document that are visible in the initial
expansion state as indented text, one node per line.

By default containers above the configured depth are expanded. Use --all to
expand everything, and --expand to open the containers selected by a
JSONPath expression, for example --expand '$..items'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("color") {
				color = c.cfg.Color
			}
			if !cmd.Flags().Changed("indent") {
				indent = c.cfg.Indent
			}
			r, err := textRenderer(color, indent)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			root, err := c.readInput(cmd, args)
			if isInputError(err) {
				r.RenderError(out, err)
				if isNotice(err) {
					return nil
				}
				return ErrInputRejected
			} else if err != nil {
				return err
			}
			st, err := sf.state(cmd, root, c.cfg.ExpandDepth)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("expansion state", "expanded", st.Len())
			return r.Render(out, tree.Visible(root, st))
		},
	}
	sf.bind(cmd, c.cfg.ExpandDepth)
	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always, or never")
	cmd.Flags().IntVar(&indent, "indent", 2, "spaces per nesting level")
	return cmd
}

// textRenderer returns a text renderer for the given color mode.
func textRenderer(color string, indent int) (textview.Renderer, error) {
	r := textview.Renderer{Indent: indent}
	switch color {
	case "auto":
	case "always":
		r.ForceColor = true
	case "never":
		r.Plain = true
	default:
		return r, fmt.Errorf("invalid --color %q (want auto, always, or never)", color)
	}
	return r, nil
}
