// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the jview command-line interface.
//
// The commands read a JSON document from a file or standard input, project
// it through an expansion state, and present the visible nodes:
//
//   - print: render the visible tree as indented text
//   - html: render the visible tree as HTML markup
//   - serve: browse the document in a local web page
//   - explore: browse the document in an interactive terminal view
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed to commands through context.Context.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jview/internal/config"
	"github.com/spf13/cobra"
)

const appName = "jview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrInputRejected is reported by a command that has already described an
// input error in its output.
var ErrInputRejected = errors.New("input rejected")

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	jwcc       bool
	selectPath string
	cfg        *config.Config
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), cfg: config.Default()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "View JSON documents as expandable trees",
		Long:         `Jview renders a JSON document as a tree whose containers can be expanded and collapsed, as text, as HTML, in a local web page, or interactively in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("loaded config", "indent", cfg.Indent, "color", cfg.Color, "depth", cfg.ExpandDepth)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file path (default "+defaultConfigHint()+")")
	pf.BoolVar(&c.jwcc, "jwcc", false, "accept comments and trailing commas in the input")
	pf.StringVar(&c.selectPath, "select", "", "view only the part of the input selected by this gjson `path`")

	root.AddCommand(c.printCommand())
	root.AddCommand(c.htmlCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())

	return root
}

func defaultConfigHint() string {
	if p, err := config.Path(); err == nil {
		return p
	}
	return "$XDG_CONFIG_HOME/" + config.DirName + "/" + config.FileName
}
