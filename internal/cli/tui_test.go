package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/modelviewer/pkg/model"
)

func loadTree(t *testing.T) TreeModel {
	t.Helper()
	rs := model.NewResourceSet()
	t.Cleanup(func() { _ = rs.Unload() })
	res, err := rs.Load(context.Background(), orderModel, model.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return NewTreeModel("OrderModel", res.Contents())
}

func press(m TreeModel, msg tea.KeyMsg) (TreeModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(TreeModel), cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestTreeModelExpandCollapse(t *testing.T) {
	m := loadTree(t)
	if len(m.rows) != 4 {
		t.Fatalf("initial rows = %d, want 4 (model and its direct children)", len(m.rows))
	}

	m, _ = press(m, keyDown)
	if got := m.Selected().Name; got != "Order" {
		t.Fatalf("selected %q, want Order", got)
	}

	m, _ = press(m, keyEnter)
	if len(m.rows) != 6 {
		t.Errorf("rows after expand = %d, want 6", len(m.rows))
	}

	m, _ = press(m, keyLeft)
	if len(m.rows) != 4 {
		t.Errorf("rows after collapse = %d, want 4", len(m.rows))
	}

	m, _ = press(m, keyLeft)
	if got := m.Selected().Name; got != "Shop" {
		t.Errorf("left on a collapsed element should select its parent, got %q", got)
	}
}

func TestTreeModelCursorBounds(t *testing.T) {
	m := loadTree(t)
	for range 10 {
		m, _ = press(m, keyDown)
	}
	if m.Cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want %d", m.Cursor, len(m.rows)-1)
	}
}

func TestTreeModelQuit(t *testing.T) {
	_, cmd := press(loadTree(t), keyQuit)
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestTreeModelView(t *testing.T) {
	m := loadTree(t)
	m, _ = press(m, keyDown)
	view := m.View()
	for _, want := range []string{"OrderModel", "Order", "Customer", "Feature", "id", "order"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTreeModelEmpty(t *testing.T) {
	m := NewTreeModel("Empty", nil)
	if m.Selected() != nil {
		t.Error("empty tree has no selection")
	}
	m, _ = press(m, keyEnter)
	if !strings.Contains(m.View(), "(empty model)") {
		t.Error("empty view should say so")
	}
}
