package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/modelviewer/pkg/model"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeModel - Interactive model browser
// =============================================================================

type treeRow struct {
	el    *model.Element
	depth int
}

// TreeModel is the bubbletea model for browsing a resource's containment tree.
type TreeModel struct {
	Title  string
	Roots  []*model.Element
	Cursor int
	Height int
	Offset int

	expanded map[*model.Element]bool
	rows     []treeRow
}

// NewTreeModel creates a browser with the top-level elements expanded.
func NewTreeModel(title string, roots []*model.Element) TreeModel {
	m := TreeModel{
		Title:    title,
		Roots:    roots,
		Height:   15,
		expanded: make(map[*model.Element]bool),
	}
	for _, r := range roots {
		m.expanded[r] = true
	}
	m.rows = m.flatten()
	return m
}

func (m TreeModel) flatten() []treeRow {
	var rows []treeRow
	var visit func(e *model.Element, depth int)
	visit = func(e *model.Element, depth int) {
		rows = append(rows, treeRow{el: e, depth: depth})
		if !m.expanded[e] {
			return
		}
		for _, c := range e.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range m.Roots {
		visit(r, 0)
	}
	return rows
}

// Selected returns the element under the cursor, or nil for an empty tree.
func (m TreeModel) Selected() *model.Element {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.Cursor].el
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "enter", " ", "right", "l":
			if e := m.Selected(); e != nil && len(e.Children) > 0 {
				m.expanded[e] = !m.expanded[e]
				m.rows = m.flatten()
			}
		case "left", "h":
			e := m.Selected()
			switch {
			case e == nil:
			case m.expanded[e] && len(e.Children) > 0:
				m.expanded[e] = false
				m.rows = m.flatten()
			case e.Parent != nil:
				m.Cursor = m.indexOf(e.Parent)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	m.scroll()
	return m, nil
}

func (m TreeModel) indexOf(e *model.Element) int {
	for i, r := range m.rows {
		if r.el == e {
			return i
		}
	}
	return m.Cursor
}

func (m *TreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ expand  ← collapse  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(treeDimStyle.Render("(empty model)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		style := treeNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = treeSelectedStyle
		}
		marker := "  "
		if len(r.el.Children) > 0 {
			marker = "+ "
			if m.expanded[r.el] {
				marker = "- "
			}
		}
		b.WriteString(cursor + strings.Repeat("  ", r.depth) + marker)
		b.WriteString(style.Render(r.el.Label()))
		b.WriteString(" " + treeDimStyle.Render(r.el.Kind))
		b.WriteString("\n")
	}

	if e := m.Selected(); e != nil {
		b.WriteString("\n")
		b.WriteString(detailTable(e))
		b.WriteString("\n")
	}
	return b.String()
}

// detailTable lists the ID, attributes, and references of e.
func detailTable(e *model.Element) string {
	rows := [][]string{{"id", e.ID}}
	for _, k := range e.AttributeKeys() {
		rows = append(rows, []string{k, e.Attributes[k]})
	}
	for _, ref := range e.References {
		rows = append(rows, []string{ref.Name, iconArrow + " " + ref.Target})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Feature", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}
