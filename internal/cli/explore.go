// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jview/render/textview"
	"github.com/creachadair/jview/tree"
	"github.com/creachadair/jview/value"
	"github.com/spf13/cobra"
)

func (c *CLI) exploreCommand() *cobra.Command {
	var sf stateFlags
	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the document interactively",
		Long: `Explore shows the document as an expandable tree in the terminal.

Move with the arrow keys or j/k, toggle the selected container with enter or
space, expand or collapse everything with E and C, and copy the JSONPath of
the selected node to the clipboard with y.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			st, err := sf.state(cmd, root, c.cfg.ExpandDepth)
			if err != nil {
				return err
			}
			m := newExplorer(root, st, textview.Renderer{
				Indent:     c.cfg.Indent,
				Plain:      c.cfg.Color == "never",
				ForceColor: c.cfg.Color != "never",
			})
			m.copy = clipboard.WriteAll
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	sf.bind(cmd, c.cfg.ExpandDepth)
	return cmd
}

type keyMap struct {
	Up, Down, Toggle    key.Binding
	ExpandAll, Collapse key.Binding
	First, Last         key.Binding
	Copy, Quit          key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Toggle, k.ExpandAll, k.Collapse},
		{k.Copy, k.Quit},
	}
}

var defaultKeys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	ExpandAll: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
	Collapse:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
	First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	exploreSelected = lipgloss.NewStyle().Reverse(true)
	exploreStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// explorer is the bubbletea model for the interactive tree view.
type explorer struct {
	root   value.Value
	state  tree.State
	nodes  []tree.Node // visible in state
	cursor int         // index of the selected node
	offset int         // index of the first node on screen
	height int         // number of node lines on screen
	status string

	keys keyMap
	help help.Model
	text textview.Renderer
	copy func(string) error
}

func newExplorer(root value.Value, st tree.State, text textview.Renderer) *explorer {
	m := &explorer{
		root:   root,
		state:  st,
		height: 20,
		keys:   defaultKeys,
		help:   help.New(),
		text:   text,
		copy:   func(string) error { return nil },
	}
	m.refresh()
	return m
}

func (m *explorer) Init() tea.Cmd { return nil }

func (m *explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-3, 1)
		m.help.Width = msg.Width
		m.scroll()

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(m.cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m.move(m.cursor + 1)
		case key.Matches(msg, m.keys.First):
			m.move(0)
		case key.Matches(msg, m.keys.Last):
			m.move(len(m.nodes) - 1)
		case key.Matches(msg, m.keys.Toggle):
			if n := m.selected(); n.Expandable {
				m.setState(m.state.Toggle(n.Path))
			}
		case key.Matches(msg, m.keys.ExpandAll):
			m.setState(tree.ExpandAll(m.root))
		case key.Matches(msg, m.keys.Collapse):
			m.setState(tree.CollapseAll())
		case key.Matches(msg, m.keys.Copy):
			jp := m.selected().Path.JSONPath()
			if err := m.copy(jp); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied " + jp
			}
		}
	}
	return m, nil
}

func (m *explorer) View() string {
	var sb strings.Builder
	end := min(m.offset+m.height, len(m.nodes))
	for i := m.offset; i < end; i++ {
		line := m.text.Line(m.nodes[i])
		if i == m.cursor {
			line = exploreSelected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(exploreStatus.Render(m.statusLine()))
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m *explorer) statusLine() string {
	if m.status != "" {
		return m.status
	}
	return fmt.Sprintf("%s  [%d/%d]", m.selected().Path, m.cursor+1, len(m.nodes))
}

func (m *explorer) selected() tree.Node { return m.nodes[m.cursor] }

// setState replaces the expansion state, keeping the selected path if it is
// still visible and otherwise selecting its nearest visible ancestor.
func (m *explorer) setState(st tree.State) {
	cur := m.selected().Path
	m.state = st
	m.refresh()
	for p := cur; ; p = p.Parent() {
		if i := slices.IndexFunc(m.nodes, func(n tree.Node) bool { return n.Path.Equal(p) }); i >= 0 {
			m.move(i)
			return
		}
		if p.IsRoot() {
			break
		}
	}
	m.move(0)
}

func (m *explorer) refresh() {
	m.nodes = slices.Collect(tree.Visible(m.root, m.state))
	m.cursor = min(m.cursor, len(m.nodes)-1)
}

// move selects the node at index i, clamped to the visible nodes, and
// scrolls to keep it on screen.
func (m *explorer) move(i int) {
	m.cursor = max(0, min(i, len(m.nodes)-1))
	m.scroll()
}

func (m *explorer) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}
