package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
)

type ConversationOptions struct {
	Title   string
	HitSeq  int
	Context int    // messages before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
	Theme   config.Theme
}

// ftsOperators are FTS5 operators that should not be highlighted as keywords.
var ftsOperators = map[string]bool{
	"AND": true, "OR": true, "NOT": true,
}

// highlightKeywords wraps case-insensitive matches of query terms with style.
func highlightKeywords(text, query string, style func(string) string) string {
	if query == "" {
		return text
	}
	var filtered []string
	for _, t := range strings.Fields(query) {
		t = strings.Trim(t, `"`)
		if t != "" && !ftsOperators[t] {
			filtered = append(filtered, t)
		}
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			rest := strings.ToLower(text[i:])
			if len(rest) != len(text[i:]) {
				break // case mapping changed byte lengths
			}
			idx := strings.Index(rest, lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := style(orig)
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderConversation renders the messages around opts.HitSeq and returns the
// content and the 0-based line of the hit header (-1 if no hit).
func RenderConversation(db *index.DB, opts ConversationOptions) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}
	st := newStyles(opts.Theme)

	rows, hitIdx, startPos, totalCount, err := db.GetWindow(opts.HitSeq, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty chat)", -1, nil
	}

	skipAfter := totalCount - startPos - len(rows)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := st.dim.Render(strings.Repeat("-", 50))

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	title := opts.Title
	if title == "" {
		title = "chat"
	}
	writeLine(st.dim.Render(fmt.Sprintf("--- %s [%d messages] ---", title, totalCount)))

	if startPos > 0 {
		writeLine(st.dim.Render(fmt.Sprintf("... (%d messages before) ...", startPos)))
	}

	for i, m := range rows {
		isHit := i == hitIdx

		if i > 0 {
			writeLine(separator)
		}
		if isHit {
			hitLine = lineCount
		}

		label := m.Sender
		labelStyle := st.sender
		if m.System {
			label = "SYSTEM"
			labelStyle = st.system
		}

		if isHit {
			writeLine(st.hit.Render(fmt.Sprintf(">> %s > %s <<", label, m.Ts)))
		} else {
			writeLine(labelStyle.Render(label) + " " + st.dim.Render(m.Ts))
		}

		text := m.Body
		if m.Media {
			text = st.dim.Render(text)
		} else {
			text = highlightKeywords(text, opts.Query, func(s string) string { return st.keyword.Render(s) })
		}
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
		writeLine("")
	}

	if skipAfter > 0 {
		writeLine(st.dim.Render(fmt.Sprintf("... (%d messages after) ...", skipAfter)))
	}

	return b.String(), hitLine, nil
}
