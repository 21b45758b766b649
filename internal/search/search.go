// Package search finds messages in an index.
package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
)

type Result struct {
	Seq     int     `json:"seq" db:"seq"`
	Ts      string  `json:"ts" db:"ts"`
	Sender  string  `json:"sender" db:"sender"`
	Line    int     `json:"line" db:"line"`
	Snippet string  `json:"snippet" db:"snip"`
	Rank    float64 `json:"rank" db:"rank"`
}

type Options struct {
	Query  string
	Sender string // "" = all senders
	Limit  int
}

// Snippet markers around a match.
const (
	MarkStart = ">>>"
	MarkEnd   = "<<<"
)

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// ftsOperators pass through to FTS5 unquoted.
var ftsOperators = map[string]bool{"AND": true, "OR": true, "NOT": true}

// ftsQuery quotes every term so that punctuation in chat text ("don't",
// "10:30") is matched literally instead of being parsed as FTS5 syntax.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		if ftsOperators[t] {
			continue
		}
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match, or lower-casing changed byte offsets: return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		MarkStart + string(runes[runePos:runePos+len(qRunes)]) + MarkEnd +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search returns the best matching messages, best first.
func Search(db *index.DB, opts Options) ([]Result, error) {
	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Query == "" {
		return []Result{}, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []interface{}{ftsQuery(opts.Query)}

	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	query := fmt.Sprintf(`
		SELECT
			m.seq,
			m.ts,
			m.sender,
			m.line,
			snippet(messages_fts, 0, '%s', '%s', '...', 16) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.seq
		WHERE %s
		ORDER BY rank, m.seq
		LIMIT ?
	`, MarkStart, MarkEnd, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	results := []Result{}
	if err := db.Raw().Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	return results, nil
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.body LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	query := fmt.Sprintf(`
		SELECT m.seq, m.ts, m.sender, m.line, m.body
		FROM messages m
		WHERE %s
		ORDER BY m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Queryx(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		var body string
		if err := rows.Scan(&r.Seq, &r.Ts, &r.Sender, &r.Line, &body); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(body, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}
