package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

// reportRenderedMsg is sent when an async report render completes.
type reportRenderedMsg struct {
	sender  string
	width   int
	content string
}

// loadReportCmd returns a tea.Cmd that computes and renders the report of
// sender off the update loop.
func loadReportCmd(t *parse.Table, sender string, sopts stats.Options, ropts render.Options) tea.Cmd {
	return func() tea.Msg {
		report := stats.Build(t, stats.ForSender(sender), sopts)
		return reportRenderedMsg{
			sender:  sender,
			width:   ropts.Width,
			content: render.RenderReport(report, ropts),
		}
	}
}

// newViewport creates the report viewport; the border is drawn by View.
func (m model) newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
