package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dstockto/dough/models"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#312c2a")).
			Background(lipgloss.Color("#f1e2c7")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#312c2a")).
			Background(lipgloss.Color("#f1e2c7"))

	editStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#312c2a")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)

const (
	nameWidth   = 22
	amountWidth = 12
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("+ Baker's percentage calculator"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(pad("Ingredient", nameWidth) + pad("Weight (g)", amountWidth) + pad("Percentage (%)", amountWidth)))
	b.WriteByte('\n')

	for i, in := range m.calc.Ingredients() {
		b.WriteString(m.renderRow(i, in))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	b.WriteByte('\n')

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) renderRow(i int, in models.Ingredient) string {
	cells := make([]string, 0, numColumns)
	for col := colName; col < numColumns; col++ {
		width := amountWidth
		if col == colName {
			width = nameWidth
		}

		focused := i == m.row && col == m.col
		if focused && m.editing {
			cells = append(cells, pad(m.input.View(), width))
			continue
		}

		text := displayText(in, col)
		switch {
		case focused:
			cells = append(cells, focusStyle.Render(pad(text, width-1))+" ")
		case !editable(in, col) && col != colName:
			cells = append(cells, disabledStyle.Render(pad(text, width)))
		default:
			cells = append(cells, cellStyle.Render(pad(text, width)))
		}
	}
	return strings.Join(cells, "")
}

func (m Model) renderFooter() string {
	t := m.calc.Totals()
	hydration := lipgloss.NewStyle().
		Foreground(lipgloss.Color(models.HydrationColor(t.Hydration).Hex())).
		Background(lipgloss.Color("#312c2a")).
		Render(fmt.Sprintf("%.1f%%", t.Hydration))

	line := fmt.Sprintf("Total weight %.0f g   Hydration ", t.TotalWeight)
	width := nameWidth + 2*amountWidth
	if m.width > 0 && m.width < width {
		width = m.width
	}
	return footerStyle.Width(width).Render(line + hydration)
}

func (m Model) helpText() string {
	if m.editing {
		return "enter/esc done • tab next cell • ctrl+c quit"
	}
	return "↑/↓ row • ←/→ cell • enter edit • a add • d remove • q quit"
}

func displayText(in models.Ingredient, col column) string {
	switch col {
	case colName:
		name := in.DisplayName()
		if len(name) > nameWidth-2 {
			name = name[:nameWidth-5] + "..."
		}
		return name
	case colPercentage:
		return fmt.Sprintf("%.1f", in.Percentage)
	}
	return fmt.Sprintf("%.1f", in.Weight)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
