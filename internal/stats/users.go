package stats

import (
	"math"
	"sort"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

type SenderCount struct {
	Sender   string `json:"sender"`
	Messages int    `json:"messages"`
}

type SenderShare struct {
	Sender  string  `json:"sender"`
	Percent float64 `json:"percent"`
}

// Ranking is the most-busy-user view: the top senders plus every sender's
// share of all messages.
type Ranking struct {
	Top    []SenderCount `json:"top"`
	Shares []SenderShare `json:"shares"`
}

// SenderCounts counts messages per sender, the sentinel included, busiest
// first. Senders with equal counts keep the order they first appear in.
func SenderCounts(t *parse.Table) []SenderCount {
	idx := make(map[string]int)
	counts := []SenderCount{}
	var all Filter
	for _, m := range all.Apply(t) {
		i, ok := idx[m.Sender]
		if !ok {
			i = len(counts)
			idx[m.Sender] = i
			counts = append(counts, SenderCount{Sender: m.Sender})
		}
		counts[i].Messages++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Messages > counts[j].Messages
	})
	return counts
}

// MostBusyUsers ranks senders over the whole table. It has no filter: a
// ranking of one sender is meaningless.
func MostBusyUsers(t *parse.Table, n int) Ranking {
	counts := SenderCounts(t)

	top := counts
	if n >= 0 && len(top) > n {
		top = top[:n]
	}

	total := t.Len()
	shares := make([]SenderShare, 0, len(counts))
	for _, c := range counts {
		shares = append(shares, SenderShare{
			Sender:  c.Sender,
			Percent: math.Round(float64(c.Messages)*10000/float64(total)) / 100,
		})
	}

	return Ranking{Top: append([]SenderCount{}, top...), Shares: shares}
}
