// Package stats computes the dashboard statistics of a parsed chat. Every
// function is a pure function of a table and a filter; nothing here mutates
// the table.
package stats

import "github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"

// Overall is the selector label meaning "every sender".
const Overall = "Overall"

// Filter selects the rows an aggregation runs over.
type Filter struct {
	Sender string // "" or Overall = all senders
}

func ForSender(sender string) Filter {
	return Filter{Sender: sender}
}

func (f Filter) IsOverall() bool {
	return f.Sender == "" || f.Sender == Overall
}

func (f Filter) Match(m parse.Message) bool {
	return f.IsOverall() || m.Sender == f.Sender
}

// Apply returns the rows of t matching f. The result must be treated as
// read-only: for Overall it shares t's backing array.
func (f Filter) Apply(t *parse.Table) []parse.Message {
	if t.Len() == 0 {
		return nil
	}
	if f.IsOverall() {
		return t.Messages
	}
	var rows []parse.Message
	for _, m := range t.Messages {
		if m.Sender == f.Sender {
			rows = append(rows, m)
		}
	}
	return rows
}

// Label is the selector text for f.
func (f Filter) Label() string {
	if f.IsOverall() {
		return Overall
	}
	return f.Sender
}

// SelectorOptions lists the choices of a sender selector: Overall first,
// then the human senders in sorted order.
func SelectorOptions(t *parse.Table) []string {
	return append([]string{Overall}, t.Senders()...)
}
