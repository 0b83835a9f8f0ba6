// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/creachadair/jview/render/htmlview"
	"github.com/creachadair/jview/tree"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *CLI) htmlCommand() *cobra.Command {
	var (
		sf     stateFlags
		output string
		page   bool
		title  string
		minify bool
	)
	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Render the visible tree as HTML",
		Long: `Html renders the nodes of the document that are visible in the initial
expansion state as HTML markup. By default it writes a fragment suitable for
embedding; use --page to write a complete styled document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFromContext(cmd.Context())
			r := htmlview.Renderer{
				IndentPx: c.cfg.HTMLIndentPx,
				Minify:   c.cfg.MinifyHTML,
			}
			if cmd.Flags().Changed("minify") {
				r.Minify = minify
			}

			var body bytes.Buffer
			var rejected bool
			root, err := c.readInput(cmd, args)
			if isInputError(err) {
				if err := r.RenderError(&body, err); err != nil {
					return err
				}
				rejected = !isNotice(err)
			} else if err != nil {
				return err
			} else {
				st, err := sf.state(cmd, root, c.cfg.ExpandDepth)
				if err != nil {
					return err
				}
				if err := r.Render(&body, tree.Visible(root, st)); err != nil {
					return err
				}
			}

			data := body.Bytes()
			if page {
				var doc bytes.Buffer
				if err := r.Page(&doc, title, data); err != nil {
					return err
				}
				data = doc.Bytes()
			}
			if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
				return err
			}
			log.Debug("wrote html", "output", outputName(output), "size", humanize.Bytes(uint64(len(data))))
			if rejected {
				return ErrInputRejected
			}
			return nil
		},
	}
	sf.bind(cmd, c.cfg.ExpandDepth)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to this `file` (default stdout)")
	cmd.Flags().BoolVar(&page, "page", false, "write a complete HTML document")
	cmd.Flags().StringVar(&title, "title", "JSON", "document title for --page")
	cmd.Flags().BoolVar(&minify, "minify", false, "minify the generated markup")
	return cmd
}

// writeOutput writes data to the named file, or to w if name is "" or "-".
func writeOutput(w io.Writer, name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(name, data, 0644)
}

func outputName(name string) string {
	if name == "" || name == "-" {
		return "stdout"
	}
	return name
}
