package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

// linesPerItem is the number of terminal lines each sender occupies.
const linesPerItem = 1

type senderItem struct {
	name     string
	messages int
}

// renderList renders the left panel: the sender selector with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		return m.st.dim.
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No senders")
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, m.formatItem(it, width, i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats one selector line:
//
//	> Alice             123
func (m model) formatItem(it senderItem, width int, selected bool) string {
	count := fmt.Sprintf("%d", it.messages)
	nameMax := width - 2 - len(count) - 1
	if nameMax < 1 {
		nameMax = 1
	}
	name := it.name
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "…")
	}
	name = runewidth.FillRight(name, nameMax)

	switch {
	case selected:
		name = m.st.listSelected.Render(name)
	case it.name == stats.Overall:
		name = m.st.overall.Render(name)
	default:
		name = m.st.listNormal.Render(name)
	}

	prefix := "  "
	if selected {
		prefix = m.st.listSelected.Render("> ")
	}
	return prefix + name + " " + m.st.listCount.Render(count)
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

// filterItems returns the items whose name contains filter, case-insensitively.
// Overall always stays first.
func filterItems(all []senderItem, filter string) []senderItem {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return all
	}
	var out []senderItem
	for _, it := range all {
		if it.name == stats.Overall || strings.Contains(strings.ToLower(it.name), filter) {
			out = append(out, it)
		}
	}
	return out
}
