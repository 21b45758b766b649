package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
)

type styles struct {
	input        lipgloss.Style
	inputPrompt  lipgloss.Style
	listSelected lipgloss.Style
	listNormal   lipgloss.Style
	listCount    lipgloss.Style
	overall      lipgloss.Style
	panelBorder  lipgloss.Style
	activeBorder lipgloss.Style
	statusBar    lipgloss.Style
	dim          lipgloss.Style
}

func newStyles(th config.Theme) styles {
	primary := lipgloss.Color(th.Primary)
	secondary := lipgloss.Color(th.Secondary)
	dim := lipgloss.Color(th.Dim)
	highlight := lipgloss.Color(th.Highlight)
	border := lipgloss.Color(th.Border)

	return styles{
		input: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		inputPrompt: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		listSelected: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),
		listNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		listCount: lipgloss.NewStyle().
			Foreground(dim),
		overall: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		panelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		activeBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),
		statusBar: lipgloss.NewStyle().
			Foreground(dim).
			Padding(0, 1),
		dim: lipgloss.NewStyle().
			Foreground(dim),
	}
}
