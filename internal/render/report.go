// Package render draws reports and conversation windows as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

type Options struct {
	Width    int          // total width; 0 = 80
	Theme    config.Theme // zero value = default palette
	MaxDaily int          // most recent days shown in the daily timeline; 0 = all
	MaxEmoji int          // 0 = 10
}

const (
	defaultWidth    = 80
	defaultMaxEmoji = 10
	labelWidth      = 16
	countWidth      = 8
)

type row struct {
	label string
	count int
	extra string
}

type reportWriter struct {
	b     strings.Builder
	st    styles
	width int
}

// RenderReport renders every section of r, top to bottom.
func RenderReport(r stats.Report, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.MaxEmoji <= 0 {
		opts.MaxEmoji = defaultMaxEmoji
	}
	w := &reportWriter{st: newStyles(opts.Theme), width: opts.Width}

	w.section("TOP STATISTICS · " + r.User)
	w.kv("Total Messages", humanize.Comma(int64(r.Summary.Messages)))
	w.kv("Total Words", humanize.Comma(int64(r.Summary.Words)))
	w.kv("Media Shared", humanize.Comma(int64(r.Summary.Media)))
	w.kv("Links Shared", humanize.Comma(int64(r.Summary.Links)))

	if r.Summary.Messages == 0 {
		w.line("")
		w.line(w.st.dim.Render("  No messages for this selection."))
		return w.b.String()
	}

	w.section("MONTHLY TIMELINE")
	w.bars(timelineRows(r.Monthly))

	w.section("DAILY TIMELINE")
	daily := r.Daily
	if opts.MaxDaily > 0 && len(daily) > opts.MaxDaily {
		w.line(w.st.dim.Render(fmt.Sprintf("  ... %d earlier days", len(daily)-opts.MaxDaily)))
		daily = daily[len(daily)-opts.MaxDaily:]
	}
	w.bars(timelineRows(daily))

	w.section("ACTIVITY MAP")
	if best, ok := stats.Busiest(r.Weekdays); ok {
		w.kv("Most busy day", fmt.Sprintf("%s (%s)", best.Name, humanize.Comma(int64(best.Count))))
	}
	w.bars(categoryRows(r.Weekdays))
	w.line("")
	if best, ok := stats.Busiest(r.Months); ok {
		w.kv("Most busy month", fmt.Sprintf("%s (%s)", best.Name, humanize.Comma(int64(best.Count))))
	}
	w.bars(categoryRows(r.Months))

	w.section("WEEKLY ACTIVITY HEATMAP")
	w.heatmap(r.Heatmap)

	if r.Ranking != nil {
		w.section("MOST BUSY USERS")
		share := make(map[string]float64, len(r.Ranking.Shares))
		for _, s := range r.Ranking.Shares {
			share[s.Sender] = s.Percent
		}
		var rows []row
		for _, c := range r.Ranking.Top {
			rows = append(rows, row{c.Sender, c.Messages, fmt.Sprintf("%6.2f%%", share[c.Sender])})
		}
		w.bars(rows)
	}

	w.section("MOST COMMON WORDS")
	if len(r.CommonWords) == 0 {
		w.line(w.st.dim.Render("  (none)"))
	}
	var words []row
	for _, c := range r.CommonWords {
		words = append(words, row{label: c.Word, count: c.Count})
	}
	w.bars(words)

	w.section("EMOJI ANALYSIS")
	if len(r.Emoji) == 0 {
		w.line(w.st.dim.Render("  (none)"))
	}
	emoji := r.Emoji
	if len(emoji) > opts.MaxEmoji {
		emoji = emoji[:opts.MaxEmoji]
	}
	var emojiRows []row
	for _, e := range emoji {
		emojiRows = append(emojiRows, row{label: e.Emoji, count: e.Count})
	}
	w.bars(emojiRows)

	return w.b.String()
}

func timelineRows(points []stats.TimelinePoint) []row {
	rows := make([]row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row{label: p.Time, count: p.Messages})
	}
	return rows
}

func categoryRows(counts []stats.CategoryCount) []row {
	rows := make([]row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, row{label: c.Name, count: c.Count})
	}
	return rows
}

func (w *reportWriter) line(s string) {
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

func (w *reportWriter) section(title string) {
	if w.b.Len() > 0 {
		w.line("")
	}
	w.line(w.st.title.Render(title))
	w.line(w.st.dim.Render(strings.Repeat("─", min(w.width, runewidth.StringWidth(title)+4))))
}

func (w *reportWriter) kv(key, value string) {
	w.line("  " + w.st.label.Render(fitLabel(key, labelWidth)) + " " + w.st.value.Render(value))
}

// bars draws one horizontal bar per row, scaled to the largest count.
func (w *reportWriter) bars(rows []row) {
	maxCount := 0
	for _, r := range rows {
		if r.count > maxCount {
			maxCount = r.count
		}
	}
	extraW := 0
	for _, r := range rows {
		extraW = max(extraW, runewidth.StringWidth(r.extra))
	}
	barMax := w.width - 2 - labelWidth - 1 - countWidth - 1
	if extraW > 0 {
		barMax -= extraW + 1
	}
	if barMax < 1 {
		barMax = 1
	}

	for _, r := range rows {
		n := 0
		if maxCount > 0 {
			n = r.count * barMax / maxCount
		}
		if n == 0 && r.count > 0 {
			n = 1
		}
		bar := w.st.bar.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barMax-n)
		s := "  " + w.st.label.Render(fitLabel(r.label, labelWidth)) + " " + bar + " " +
			w.st.value.Render(fmt.Sprintf("%*s", countWidth, humanize.Comma(int64(r.count))))
		if r.extra != "" {
			s += " " + w.st.dim.Render(r.extra)
		}
		w.line(strings.TrimRight(s, " "))
	}
}

func (w *reportWriter) heatmap(h stats.Heatmap) {
	if len(h.Columns) == 0 {
		return
	}
	header := "  " + strings.Repeat(" ", 10)
	for _, c := range h.Columns {
		header += c[:2] + " "
	}
	w.line(w.st.dim.Render(strings.TrimRight(header, " ")))

	peak := h.Max()
	for i, name := range h.Rows {
		var cells []string
		for _, n := range h.Cells[i] {
			cells = append(cells, w.heatCell(n, peak))
		}
		w.line("  " + w.st.label.Render(fitLabel(name, 10)) + strings.Join(cells, " "))
	}
	w.line(w.st.dim.Render(fmt.Sprintf("  peak %s messages per cell, %d-hour buckets", humanize.Comma(int64(peak)), h.BucketHours)))
}

// heatCell picks a glyph and color proportional to n/peak; any non-zero
// count gets at least the lightest shade.
func (w *reportWriter) heatCell(n, peak int) string {
	if n == 0 || peak == 0 {
		return w.st.dim.Render(shades[0])
	}
	level := 1 + (n*(len(shades)-1)-1)/peak
	if level >= len(shades) {
		level = len(shades) - 1
	}
	color := level * (len(w.st.heat) - 1) / (len(shades) - 1)
	return w.st.heat[color].Render(shades[level])
}

// fitLabel pads or truncates s to exactly width terminal columns.
func fitLabel(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
