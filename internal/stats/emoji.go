package stats

import (
	"sort"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiFrequency counts emoji across f's rows, most used first. An emoji is
// one grapheme cluster, so skin-tone variants, flags and ZWJ sequences count
// once each.
func EmojiFrequency(t *parse.Table, f Filter) []EmojiCount {
	idx := make(map[string]int)
	counts := []EmojiCount{}
	for _, m := range f.Apply(t) {
		if m.Media {
			continue
		}
		g := uniseg.NewGraphemes(m.Body)
		for g.Next() {
			cluster := g.Str()
			if !isEmoji(cluster) {
				continue
			}
			i, ok := idx[cluster]
			if !ok {
				i = len(counts)
				idx[cluster] = i
				counts = append(counts, EmojiCount{Emoji: cluster})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// isEmoji reports whether cluster is an emoji of the Unicode emoji list,
// in any qualification. Text symbols such as ★ or ✓ are not.
func isEmoji(cluster string) bool {
	if cluster == "" || utf8.RuneCountInString(cluster) == 1 && cluster[0] < utf8.RuneSelf {
		return false
	}
	_, err := gomoji.GetInfo(cluster)
	return err == nil
}
