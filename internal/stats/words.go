package stats

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCloud is the input of a word-cloud rendering: the filtered text and
// its word frequencies.
type WordCloud struct {
	Text        string      `json:"text"`
	Frequencies []WordCount `json:"frequencies"`
}

// Tokens returns the lower-cased words of f's rows in message order. System
// events, media placeholders and stop words are left out.
func Tokens(t *parse.Table, f Filter, stop StopWords) []string {
	lower := cases.Lower(language.Und)
	tokens := []string{}
	for _, m := range f.Apply(t) {
		if m.System || m.Media {
			continue
		}
		for _, w := range strings.Fields(lower.String(m.Body)) {
			if stop.Contains(w) {
				continue
			}
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// MostCommonWords returns the n most frequent tokens. Words with equal
// counts keep the order they first appear in. n < 0 returns every word.
func MostCommonWords(t *parse.Table, f Filter, stop StopWords, n int) []WordCount {
	counts := countWords(Tokens(t, f, stop))
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// WordCloudInput collects the text a word cloud is drawn from.
func WordCloudInput(t *parse.Table, f Filter, stop StopWords) WordCloud {
	tokens := Tokens(t, f, stop)
	return WordCloud{
		Text:        strings.Join(tokens, " "),
		Frequencies: countWords(tokens),
	}
}

func countWords(tokens []string) []WordCount {
	idx := make(map[string]int)
	counts := []WordCount{}
	for _, w := range tokens {
		i, ok := idx[w]
		if !ok {
			i = len(counts)
			idx[w] = i
			counts = append(counts, WordCount{Word: w})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
