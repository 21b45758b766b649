package stats

import (
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

type Summary struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// linkRe finds links with or without a scheme, also when they are wrapped in
// punctuation ("(www.a.com)", "<https://b.org>", "see:https://c.io").
var linkRe = xurls.Relaxed()

// FetchStats counts messages, words, media and links. Media placeholders are
// not message text, so they contribute to neither the word nor the link count.
func FetchStats(t *parse.Table, f Filter) Summary {
	var s Summary
	for _, m := range f.Apply(t) {
		s.Messages++
		if m.Media {
			s.Media++
			continue
		}
		s.Words += len(strings.Fields(m.Body))
		s.Links += len(linkRe.FindAllString(m.Body, -1))
	}
	return s
}
