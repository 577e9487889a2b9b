package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/page"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("10"))
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

var headers = []string{"ID", "KIND", "X", "Y", "W", "H", "ATTRS"}

// entityRows 每个实体一行，属性按键排序
func entityRows(c *layout.Components) [][]string {
	rows := make([][]string, 0, c.Len())
	for _, e := range c.Entities() {
		attrs := make([]string, 0, len(e.Keys()))
		for _, k := range e.Keys() {
			v, _ := e.Attr(k)
			attrs = append(attrs, k+"="+v.String())
		}
		rows = append(rows, []string{
			e.ID,
			string(e.Kind),
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			strconv.Itoa(e.Width),
			strconv.Itoa(e.Height),
			strings.Join(attrs, " "),
		})
	}
	return rows
}

// renderPage 页面摘要和实体表格
func renderPage(name string, p *page.Page) string {
	cols, rows := p.GridSize()
	cw, ch := p.CellSize()
	title := titleStyle.Render(fmt.Sprintf("%s: %dx%d cells of %dx%d px, %d entities, focus %q",
		name, cols, rows, cw, ch, p.Components().Len(), p.Selected()))

	data := entityRows(p.Components())
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(data) && data[row][0] == p.Selected() {
				return selectedStyle
			}
			return cellStyle
		})
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}
