// Package parse turns an exported WhatsApp chat into an ordered table of
// messages.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// ErrLineTooLong is returned for an export with a line over maxLineSize,
// which no chat export produces.
var ErrLineTooLong = errors.New("line too long")

type DateOrder string

const (
	DayMonthYear DateOrder = "dmy"
	MonthDayYear DateOrder = "mdy"
)

type Options struct {
	DateOrder        DateOrder
	MediaPlaceholder string
	Sentinel         string
}

func (o Options) withDefaults() Options {
	if o.DateOrder == "" {
		o.DateOrder = DayMonthYear
	}
	if o.MediaPlaceholder == "" {
		o.MediaPlaceholder = DefaultMediaPlaceholder
	}
	if o.Sentinel == "" {
		o.Sentinel = DefaultSentinel
	}
	return o
}

// ParseError reports a line whose leading stamp looks like a message header
// but does not name a real date or time.
type ParseError struct {
	Line  int
	Stamp string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: bad timestamp %q: %v", e.Line, e.Stamp, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// stampRe matches the header of a message line:
//
//	12/5/23, 4:30 PM - Alice: Hello there
//	12/05/2023, 16:30 - Alice: Hello there
//
// Newer exports put a narrow no-break space before AM/PM.
var stampRe = regexp.MustCompile(
	`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4}),[ \x{202F}\x{00A0}](\d{1,2}):(\d{2})(?:[ \x{202F}\x{00A0}]?([AaPp])\.?[Mm]\.?)? - `,
)

// senderSep separates the sender from the body.
const senderSep = ": "

// Parse parses a whole export held in memory.
func Parse(text string, opts Options) (*Table, error) {
	return ParseReader(strings.NewReader(text), opts)
}

// ParseReader parses an export line by line. Lines that do not start with a
// timestamp continue the previous message. Empty input yields an empty table;
// input without any message header yields an empty table and a warning.
func ParseReader(r io.Reader, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	table := &Table{Messages: []Message{}, sentinel: opts.Sentinel}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		cur      *Message
		body     strings.Builder
		lineNum  int
		orphans  int
		nonBlank int
	)

	flush := func() {
		if cur == nil {
			return
		}
		text := strings.TrimRight(body.String(), "\n")
		*cur = newMessage(cur.Seq, cur.Line, cur.Time, cur.Sender, text, opts)
		table.Messages = append(table.Messages, *cur)
		cur = nil
		body.Reset()
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimLeft(line, "\u200e\u200f")
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}

		loc := stampRe.FindStringSubmatchIndex(line)
		if loc == nil {
			if cur == nil {
				if strings.TrimSpace(line) != "" {
					orphans++
				}
				continue
			}
			body.WriteString("\n")
			body.WriteString(line)
			continue
		}

		flush()

		ts, err := stampTime(line, loc, opts.DateOrder)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Stamp: strings.TrimSuffix(line[:loc[1]], " - "), Err: err}
		}

		sender, text := splitSender(line[loc[1]:], opts.Sentinel)
		cur = &Message{
			Seq:    len(table.Messages),
			Line:   lineNum,
			Time:   ts,
			Sender: sender,
		}
		body.WriteString(text)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d is longer than %d bytes", ErrLineTooLong, lineNum+1, maxLineSize)
		}
		return nil, fmt.Errorf("read export: %w", err)
	}
	flush()

	switch {
	case len(table.Messages) == 0 && nonBlank > 0:
		table.Warnings = append(table.Warnings,
			fmt.Sprintf("no messages found in %d non-empty lines; is this a WhatsApp chat export?", nonBlank))
	case orphans > 0:
		table.Warnings = append(table.Warnings,
			fmt.Sprintf("skipped %d lines before the first message", orphans))
	}

	return table, nil
}

func splitSender(rest, sentinel string) (string, string) {
	if i := strings.Index(rest, senderSep); i > 0 {
		return rest[:i], rest[i+len(senderSep):]
	}
	return sentinel, rest
}

func stampTime(line string, loc []int, order DateOrder) (time.Time, error) {
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return line[loc[2*n]:loc[2*n+1]]
	}

	first, _ := strconv.Atoi(group(1))
	second, _ := strconv.Atoi(group(2))
	year, _ := strconv.Atoi(group(3))
	hour, _ := strconv.Atoi(group(4))
	minute, _ := strconv.Atoi(group(5))
	marker := strings.ToUpper(group(6))

	day, month := first, second
	if order == MonthDayYear {
		day, month = second, first
	}
	if len(group(3)) == 2 {
		year += 2000
	}

	if marker != "" {
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("hour %d out of range for 12-hour clock", hour)
		}
		hour %= 12
		if marker == "P" {
			hour += 12
		}
	} else if hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return time.Time{}, fmt.Errorf("minute %d out of range", minute)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if day < 1 || ts.Day() != day {
		return time.Time{}, fmt.Errorf("day %d out of range for %s %d", day, time.Month(month), year)
	}
	return ts, nil
}
