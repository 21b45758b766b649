package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
)

// shades are the heatmap glyphs, from empty to busiest.
var shades = []string{"··", "░░", "▒▒", "▓▓", "██"}

type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	bar       lipgloss.Style
	highlight lipgloss.Style
	sender    lipgloss.Style
	system    lipgloss.Style
	hit       lipgloss.Style
	keyword   lipgloss.Style
	heat      []lipgloss.Style
}

func newStyles(th config.Theme) styles {
	if len(th.Heat) == 0 {
		th = config.DefaultTheme()
	}
	s := styles{
		title:     lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color(th.Highlight)).Bold(true),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim)),
		bar:       lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary)),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(th.Highlight)).Bold(true),
		sender:    lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true),
		system:    lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim)).Italic(true),
		hit:       lipgloss.NewStyle().Background(lipgloss.Color(th.Highlight)).Foreground(lipgloss.Color("0")),
		keyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	for _, c := range th.Heat {
		s.heat = append(s.heat, lipgloss.NewStyle().Foreground(lipgloss.Color(c)))
	}
	return s
}
