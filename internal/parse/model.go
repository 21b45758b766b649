package parse

import (
	"sort"
	"time"
)

const (
	DefaultSentinel         = "group_notification"
	DefaultMediaPlaceholder = "<Media omitted>"
)

type Message struct {
	Seq    int // 0-based position in the export
	Line   int // line in the export where the message starts
	Time   time.Time
	Sender string
	Body   string
	Media  bool // body is the media placeholder
	System bool // sender is the sentinel

	// calendar columns derived from Time
	Year      int
	Month     time.Month
	MonthName string
	Day       int
	Date      string // YYYY-MM-DD
	Weekday   time.Weekday
	DayName   string
	Hour      int
	Minute    int
}

// Table is the parsed chat. It is built once by Parse and only read afterwards.
type Table struct {
	Messages []Message
	Warnings []string

	sentinel string
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Messages)
}

// Sentinel returns the pseudo-sender assigned to system events.
func (t *Table) Sentinel() string {
	if t == nil || t.sentinel == "" {
		return DefaultSentinel
	}
	return t.sentinel
}

// Senders returns the distinct human senders, sorted.
func (t *Table) Senders() []string {
	if t == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	senders := []string{}
	for _, m := range t.Messages {
		if m.System {
			continue
		}
		if _, ok := seen[m.Sender]; ok {
			continue
		}
		seen[m.Sender] = struct{}{}
		senders = append(senders, m.Sender)
	}
	sort.Strings(senders)
	return senders
}

// Span returns the first and last message times.
func (t *Table) Span() (first, last time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Messages[0].Time, t.Messages[len(t.Messages)-1].Time, true
}

func newMessage(seq, line int, ts time.Time, sender, body string, opts Options) Message {
	return Message{
		Seq:       seq,
		Line:      line,
		Time:      ts,
		Sender:    sender,
		Body:      body,
		Media:     body == opts.MediaPlaceholder,
		System:    sender == opts.Sentinel,
		Year:      ts.Year(),
		Month:     ts.Month(),
		MonthName: ts.Month().String(),
		Day:       ts.Day(),
		Date:      ts.Format("2006-01-02"),
		Weekday:   ts.Weekday(),
		DayName:   ts.Weekday().String(),
		Hour:      ts.Hour(),
		Minute:    ts.Minute(),
	}
}
