package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/binmode-transcoder/binmode"
)

type styleSet struct {
	title    lipgloss.Style
	node     lipgloss.Style
	typ      lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
	warn     lipgloss.Style
}

func newStyles(cfg inspectConfig) styleSet {
	return styleSet{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.Selected)).
			Background(lipgloss.Color(cfg.Theme.Title)).
			Padding(0, 1),
		node: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Node)),
		typ: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Type)),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Selected)).
			Background(lipgloss.Color(cfg.Theme.Title)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Help)),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Error)),
	}
}

// node is one entry of the browsable value tree.
type node struct {
	name     string
	kind     string
	detail   string
	children []*node
}

func buildTree(msg *binmode.Message) []*node {
	switch msg.Type {
	case binmode.MessageCall:
		roots := []*node{{name: "methodName", kind: "string", detail: fmt.Sprintf("%q", msg.Method)}}
		for i, p := range msg.Params {
			roots = append(roots, valueNode(fmt.Sprintf("param[%d]", i), p))
		}
		return roots
	case binmode.MessageFault:
		return []*node{valueNode("fault", msg.Fault)}
	default:
		return []*node{valueNode("result", msg.Result)}
	}
}

func valueNode(name string, v binmode.Value) *node {
	n := &node{name: name, kind: v.Kind.String()}
	switch v.Kind {
	case binmode.KindInteger:
		n.detail = fmt.Sprintf("%d", v.Int)
	case binmode.KindBoolean:
		n.detail = fmt.Sprintf("%t", v.Bool)
	case binmode.KindDouble, binmode.KindDateTime:
		n.detail = v.Str
	case binmode.KindString:
		n.detail = fmt.Sprintf("%q", v.Str)
	case binmode.KindBase64:
		n.detail = fmt.Sprintf("%d bytes", len(v.Bytes))
	case binmode.KindArray:
		n.detail = fmt.Sprintf("%d items", len(v.Items))
		for i, item := range v.Items {
			n.children = append(n.children, valueNode(fmt.Sprintf("[%d]", i), item))
		}
	case binmode.KindStruct:
		n.detail = fmt.Sprintf("%d members", len(v.Members))
		for _, m := range v.Members {
			n.children = append(n.children, valueNode(m.Name, m.Value))
		}
	}
	return n
}

type row struct {
	n     *node
	depth int
}

type inspectModel struct {
	styles    styleSet
	collapsed map[*node]bool
	filename  string
	status    string
	roots     []*node
	rows      []row
	search    textinput.Model
	selected  int
	trailing  int
	indent    int
	searching bool
}

func newInspectModel(cfg inspectConfig, filename string, msg *binmode.Message) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "node name"
	ti.Prompt = "/"
	ti.Width = 32

	m := &inspectModel{
		styles:    newStyles(cfg),
		collapsed: make(map[*node]bool),
		filename:  filename,
		roots:     buildTree(msg),
		search:    ti,
		trailing:  msg.Trailing,
		indent:    cfg.IndentWidth,
	}
	m.reflow()
	return m
}

// reflow rebuilds the visible row list from the tree and the collapse
// state.
func (m *inspectModel) reflow() {
	m.rows = m.rows[:0]
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		m.rows = append(m.rows, row{n: n, depth: depth})
		if m.collapsed[n] {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, r := range m.roots {
		walk(r, 0)
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter":
			m.searching = false
			m.jumpTo(m.search.Value())
			m.search.Blur()
		case "esc":
			m.searching = false
			m.search.Blur()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case "g":
		m.selected = 0

	case "G":
		m.selected = len(m.rows) - 1

	case "enter", " ":
		n := m.rows[m.selected].n
		if len(n.children) > 0 {
			m.collapsed[n] = !m.collapsed[n]
			m.reflow()
		}

	case "/":
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
		m.status = ""
	}

	return m, nil
}

// jumpTo selects the next row after the current one whose name
// contains query, wrapping around.
func (m *inspectModel) jumpTo(query string) {
	if query == "" {
		return
	}
	for i := 1; i <= len(m.rows); i++ {
		idx := (m.selected + i) % len(m.rows)
		if strings.Contains(m.rows[idx].n.name, query) {
			m.selected = idx
			m.status = ""
			return
		}
	}
	m.status = fmt.Sprintf("no node matching %q", query)
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Binmode Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if m.trailing > 0 {
		b.WriteString(" ")
		b.WriteString(m.styles.warn.Render(fmt.Sprintf("(%d trailing bytes)", m.trailing)))
	}
	b.WriteString("\n\n")

	for i, r := range m.rows {
		line := m.formatRow(r)
		if i == m.selected {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
	} else if m.status != "" {
		b.WriteString(m.styles.warn.Render(m.status))
	} else {
		b.WriteString(m.styles.help.Render("↑/↓ move • enter fold • / find • q quit"))
	}

	return b.String()
}

func (m *inspectModel) formatRow(r row) string {
	pad := strings.Repeat(" ", r.depth*m.indent)
	marker := ""
	if len(r.n.children) > 0 {
		marker = "▾ "
		if m.collapsed[r.n] {
			marker = "▸ "
		}
	}
	line := pad + marker + m.styles.node.Render(r.n.name) + ": " + m.styles.typ.Render(r.n.kind)
	if r.n.detail != "" {
		line += " = " + r.n.detail
	}
	return line
}

func runInteractive(cfg inspectConfig, filename string, msg *binmode.Message) error {
	p := tea.NewProgram(newInspectModel(cfg, filename, msg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
