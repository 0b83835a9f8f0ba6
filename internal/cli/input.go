// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jview/jpath"
	"github.com/creachadair/jview/tree"
	"github.com/creachadair/jview/value"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// readInput reads the document named by args, or standard input if args is
// empty or names "-", parses it, and applies the --select path.
func (c *CLI) readInput(cmd *cobra.Command, args []string) (value.Value, error) {
	log := loggerFromContext(cmd.Context())

	name := "-"
	if len(args) != 0 {
		name = args[0]
	}
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		name = "stdin"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	log.Debug("read input", "source", name, "size", humanize.Bytes(uint64(len(data))))

	pt := newProgress(log)
	v, err := tree.Parser{AllowJWCC: c.jwcc}.Parse(data)
	if err != nil {
		return nil, err
	}
	pt.done("parsed input", "kind", value.KindOf(v))

	if c.selectPath != "" {
		v, err = c.selectInput(v)
		if err != nil {
			return nil, err
		}
		log.Debug("selected input", "path", c.selectPath, "kind", value.KindOf(v))
	}
	return v, nil
}

// selectInput returns the sub-document of v selected by the --select path.
// The caller must have parsed the whole input into v.
func (c *CLI) selectInput(v value.Value) (value.Value, error) {
	res := gjson.Get(v.JSON(), c.selectPath)
	if !res.Exists() {
		return nil, fmt.Errorf("select %q: no matching value", c.selectPath)
	}
	return tree.Parse(res.Raw)
}

// isNotice reports whether err describes missing or empty input, which is
// shown as a notice rather than a failure.
func isNotice(err error) bool {
	return errors.Is(err, tree.ErrNoData) || errors.Is(err, tree.ErrEmptyInput)
}

// isInputError reports whether err is one of the input errors reported by
// tree.Parser, which commands describe in their output.
func isInputError(err error) bool {
	return isNotice(err) || errors.Is(err, tree.ErrMalformed) || errors.Is(err, tree.ErrInvalidType)
}

// stateFlags are the flags that choose the initial expansion state.
type stateFlags struct {
	depth  int
	all    bool
	expand []string
}

func (s *stateFlags) bind(cmd *cobra.Command, defaultDepth int) {
	fs := cmd.Flags()
	fs.IntVar(&s.depth, "depth", defaultDepth, "expand containers above this depth (-1 for all)")
	fs.BoolVar(&s.all, "all", false, "expand every container")
	fs.StringArrayVar(&s.expand, "expand", nil, "also expand containers matching this JSONPath `expr` (repeatable)")
}

// state returns the expansion state for root selected by the flags. If the
// --depth flag was not set, the depth comes from the config.
func (s *stateFlags) state(cmd *cobra.Command, root value.Value, cfgDepth int) (tree.State, error) {
	depth := cfgDepth
	if cmd.Flags().Changed("depth") {
		depth = s.depth
	}
	if s.all {
		depth = -1
	}
	st := tree.ExpandDepth(root, depth)
	for _, src := range s.expand {
		expr, err := jpath.Parse(src)
		if err != nil {
			return tree.State{}, fmt.Errorf("--expand %q: %w", src, err)
		}
		st = st.ExpandMatching(root, expr)
	}
	return st, nil
}
