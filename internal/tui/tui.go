// Package tui is the interactive terminal dashboard: a sender selector on
// the left and the rendered report of the selected sender on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

type Options struct {
	Title  string // shown in the status bar, usually the export's file name
	Sender string // initially selected sender; "" = Overall
	Stats  stats.Options
	Theme  config.Theme
}

type model struct {
	table       *parse.Table
	opts        Options
	st          styles
	all         []senderItem
	items       []senderItem
	cursor      int
	listOffset  int
	filter      string
	filterInput textinput.Model
	report      viewport.Model
	reportKey   string // "sender:width" of the content on screen
	width       int
	height      int
	ready       bool
	quitting    bool
}

func initialModel(t *parse.Table, opts Options) model {
	st := newStyles(opts.Theme)

	ti := textinput.New()
	ti.Placeholder = "Filter senders..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = st.inputPrompt
	ti.TextStyle = st.input
	ti.CharLimit = 128

	all := []senderItem{{name: stats.Overall, messages: t.Len()}}
	counts := make(map[string]int)
	for _, c := range stats.SenderCounts(t) {
		counts[c.Sender] = c.Messages
	}
	for _, s := range t.Senders() {
		all = append(all, senderItem{name: s, messages: counts[s]})
	}

	m := model{
		table:       t,
		opts:        opts,
		st:          st,
		all:         all,
		items:       all,
		filterInput: ti,
		report:      viewport.New(0, 0),
	}
	for i, it := range all {
		if it.name == opts.Sender {
			m.cursor = i
		}
	}
	return m
}

// Run starts the dashboard and blocks until it exits.
func Run(t *parse.Table, opts Options) error {
	p := tea.NewProgram(initialModel(t, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.report = m.newViewport(m.reportWidth(), m.panelHeight())
		m.reportKey = ""
		m.adjustListScroll(m.panelHeight())
		cmds = append(cmds, m.loadCurrentReport())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Prev):
			cmd := m.moveCursor(m.cursor - 1)
			return m, cmd

		case key.Matches(msg, keys.Next):
			cmd := m.moveCursor(m.cursor + 1)
			return m, cmd

		case key.Matches(msg, keys.Overall):
			cmd := m.moveCursor(0)
			return m, cmd

		case key.Matches(msg, keys.Last):
			cmd := m.moveCursor(len(m.items) - 1)
			return m, cmd

		case key.Matches(msg, keys.Clear):
			m.filterInput.SetValue("")
			m.applyFilter("")
			return m, m.loadCurrentReport()

		case key.Matches(msg, keys.ReportUp):
			m.report.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ReportDn):
			m.report.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ReportPgU):
			m.report.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.ReportPgD):
			m.report.LineDown(m.panelHeight())
			return m, nil
		}

		// remaining keys edit the sender filter
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if f := m.filterInput.Value(); f != m.filter {
			m.applyFilter(f)
			cmds = append(cmds, m.loadCurrentReport())
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.items) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			maxOffset := len(m.items) - m.panelHeight()/linesPerItem
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx < len(m.items) {
				cmd := m.moveCursor(itemIdx)
				return m, cmd
			}
			return m, nil

		case region == regionReport && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.report, vpCmd = m.report.Update(msg)
			return m, vpCmd
		}
		return m, nil

	case reportRenderedMsg:
		k := reportCacheKey(msg.sender, msg.width)
		if k != m.wantKey() {
			return m, nil // stale render
		}
		m.report.SetContent(msg.content)
		m.report.GotoTop()
		m.reportKey = k
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// moveCursor selects item i, clamped to the list, and requests its report.
func (m *model) moveCursor(i int) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	i = max(0, min(i, len(m.items)-1))
	if i == m.cursor {
		return nil
	}
	m.cursor = i
	m.adjustListScroll(m.panelHeight())
	return m.loadCurrentReport()
}

// applyFilter narrows the selector to senders matching f, keeping the
// current sender selected when it survives the filter.
func (m *model) applyFilter(f string) {
	selected := m.selected()
	m.filter = f
	m.items = filterItems(m.all, f)
	m.cursor = 0
	m.listOffset = 0
	for i, it := range m.items {
		if it.name == selected {
			m.cursor = i
			break
		}
	}
	m.adjustListScroll(m.panelHeight())
}

func (m model) selected() string {
	if m.cursor < len(m.items) {
		return m.items[m.cursor].name
	}
	return stats.Overall
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	reportW := m.reportWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := m.st.panelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.report.Width = reportW
	m.report.Height = panelH
	reportPanel := m.st.activeBorder.
		Width(reportW).
		Height(panelH).
		Render(m.report.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, reportPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 28
	}
	// 30% for the selector, minus border padding
	w := m.width*30/100 - 4
	if w < 16 {
		w = 16
	}
	return w
}

func (m model) reportWidth() int {
	if m.width <= 0 {
		return 72
	}
	w := m.width*70/100 - 4
	if w < 40 {
		w = 40
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionReport
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionReport, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	if m.opts.Title != "" {
		parts = append(parts, m.opts.Title)
	}
	parts = append(parts, fmt.Sprintf("%d messages", m.table.Len()))
	parts = append(parts, fmt.Sprintf("%d senders", len(m.all)-1))
	parts = append(parts, "up/dn select")
	parts = append(parts, "type to filter, C-l clear")
	parts = append(parts, "C-u/C-d report")
	parts = append(parts, "Esc quit")
	return m.st.statusBar.Render(strings.Join(parts, " | "))
}

func (m model) renderOptions() render.Options {
	return render.Options{
		Width:    m.report.Width,
		Theme:    m.opts.Theme,
		MaxDaily: 31,
	}
}

func (m model) wantKey() string {
	return reportCacheKey(m.selected(), m.report.Width)
}

func (m model) loadCurrentReport() tea.Cmd {
	if len(m.items) == 0 || m.wantKey() == m.reportKey {
		return nil
	}
	return loadReportCmd(m.table, m.selected(), m.opts.Stats, m.renderOptions())
}

func reportCacheKey(sender string, width int) string {
	return fmt.Sprintf("%s:%d", sender, width)
}
