package main

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#4ECDC4")
	subtleColor = lipgloss.Color("#666666")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(subtleColor)
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

// row alinea columnas de ancho fijo; la primera a la izquierda, el resto a la derecha.
func row(widths []int, cols ...string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		st := lipgloss.NewStyle().Width(widths[i])
		if i > 0 {
			st = st.Align(lipgloss.Right)
		}
		cells[i] = st.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
