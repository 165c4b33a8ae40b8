// Package form is the full-screen terminal form for the calculator, built on
// Bubble Tea.
//
// The form owns no arithmetic. Every keystroke in an open cell is passed to
// calc.Calculator.EditField and the whole table is re-rendered from
// Ingredients and Totals.
package form

import (
	"strconv"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dstockto/dough/calc"
	"github.com/dstockto/dough/models"
)

type column int

const (
	colName column = iota
	colWeight
	colPercentage
	numColumns
)

func (c column) field() calc.Field {
	switch c {
	case colName:
		return calc.FieldName
	case colPercentage:
		return calc.FieldPercentage
	}
	return calc.FieldWeight
}

// Model is the Bubble Tea model for the form.
type Model struct {
	calc    *calc.Calculator
	input   textinput.Model
	row     int
	col     column
	editing bool
	status  string
	width   int
}

// New creates a form over c with the cursor on the flour weight.
func New(c *calc.Calculator) Model {
	ti := textinput.New()
	// Plain prompt keeps textinput's width math right.
	ti.Prompt = ""
	ti.CharLimit = 40
	ti.Width = 20
	ti.TextStyle = editStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))

	return Model{
		calc:  c,
		input: ti,
		col:   colWeight,
	}
}

// Run starts the form and blocks until the user quits.
func Run(c *calc.Calculator) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Editing reports whether a cell editor is open.
func (m Model) Editing() bool { return m.editing }

// Cursor returns the focused row index and field.
func (m Model) Cursor() (int, calc.Field) { return m.row, m.col.field() }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Baker's percentage calculator")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		return m.stopEditing(), nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m = m.stopEditing()
		return m.updateBrowsing(msg)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if in, ok := m.current(); ok {
			m.calc.EditField(in.Id, m.col.field(), after)
		}
	}
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	case "left", "h", "shift+tab":
		m.moveCol(-1)
	case "right", "l", "tab":
		m.moveCol(1)
	case "enter", "e":
		return m.startEditing(true)
	case "a", "+":
		m.calc.AddIngredient()
		m.row = m.calc.Len() - 1
		m.col = colName
		return m.startEditing(false)
	case "d", "delete", "-":
		m.removeCurrent()
	default:
		// typing a number over a numeric cell replaces its value
		if msg.Type == tea.KeyRunes && m.col != colName && startsNumber(msg.Runes) {
			mm, cmd := m.startEditing(false)
			next := mm.(Model)
			if !next.editing {
				return next, cmd
			}
			edited, cmd2 := next.updateEditing(msg)
			return edited, tea.Batch(cmd, cmd2)
		}
	}

	return m, nil
}

func startsNumber(r []rune) bool {
	return len(r) > 0 && (unicode.IsDigit(r[0]) || r[0] == '.')
}

// startEditing opens the editor on the focused cell, seeded with its current
// value when keep is true.
func (m Model) startEditing(keep bool) (tea.Model, tea.Cmd) {
	in, ok := m.current()
	if !ok || !editable(in, m.col) {
		m.status = "this cell cannot be edited"
		return m, nil
	}

	value := ""
	if keep {
		value = cellText(in, m.col)
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.editing = true
	if m.col == colName {
		m.input.Placeholder = "Add name"
	} else {
		m.input.Placeholder = "0"
	}

	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) stopEditing() Model {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m *Model) removeCurrent() {
	in, ok := m.current()
	if !ok {
		return
	}
	if !in.IsCustom {
		m.status = in.DisplayName() + " cannot be removed"
		return
	}
	m.calc.RemoveIngredient(in.Id)
	if m.row >= m.calc.Len() {
		m.row = m.calc.Len() - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	m.fixCol()
}

func (m *Model) moveRow(delta int) {
	n := m.calc.Len()
	if n == 0 {
		return
	}
	m.row += delta
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= n {
		m.row = n - 1
	}
	m.fixCol()
}

// moveCol steps to the next editable column in the given direction, wrapping.
func (m *Model) moveCol(delta int) {
	in, ok := m.current()
	if !ok {
		return
	}
	for i := 0; i < int(numColumns); i++ {
		m.col = column((int(m.col) + delta + int(numColumns)) % int(numColumns))
		if editable(in, m.col) {
			return
		}
	}
}

// fixCol moves off a column the focused row does not allow editing.
func (m *Model) fixCol() {
	if in, ok := m.current(); ok && !editable(in, m.col) {
		m.col = colWeight
	}
}

func (m Model) current() (models.Ingredient, bool) {
	list := m.calc.Ingredients()
	if m.row < 0 || m.row >= len(list) {
		return models.Ingredient{}, false
	}
	return list[m.row], true
}

// editable reports whether a cell takes input. Built-in names are fixed labels
// and the flour percentage is pinned at 100.
func editable(in models.Ingredient, col column) bool {
	switch col {
	case colName:
		return in.IsCustom
	case colPercentage:
		return !in.IsBase
	}
	return true
}

func cellText(in models.Ingredient, col column) string {
	switch col {
	case colName:
		return in.Name
	case colPercentage:
		return strconv.FormatFloat(in.Percentage, 'f', -1, 64)
	}
	return strconv.FormatFloat(in.Weight, 'f', -1, 64)
}
