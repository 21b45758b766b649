package parse

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_UserMessage(t *testing.T) {
	table, err := Parse("12/5/23, 4:30 PM - Alice: Hello there", Options{})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	m := table.Messages[0]
	require.Equal(t, time.Date(2023, time.May, 12, 16, 30, 0, 0, time.UTC), m.Time)
	require.Equal(t, "Alice", m.Sender)
	require.Equal(t, "Hello there", m.Body)
	require.False(t, m.Media)
	require.False(t, m.System)
	require.Equal(t, 0, m.Seq)
	require.Equal(t, 1, m.Line)

	require.Equal(t, 2023, m.Year)
	require.Equal(t, time.May, m.Month)
	require.Equal(t, "May", m.MonthName)
	require.Equal(t, 12, m.Day)
	require.Equal(t, "2023-05-12", m.Date)
	require.Equal(t, "Friday", m.DayName)
	require.Equal(t, 16, m.Hour)
	require.Equal(t, 30, m.Minute)
}

func TestParse_SystemMessage(t *testing.T) {
	table, err := Parse("12/5/23, 4:31 PM - Messages and calls are end-to-end encrypted.", Options{})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	m := table.Messages[0]
	require.Equal(t, DefaultSentinel, m.Sender)
	require.True(t, m.System)
	require.False(t, m.Media)
	require.Equal(t, "Messages and calls are end-to-end encrypted.", m.Body)
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   \n"} {
		table, err := Parse(in, Options{})
		require.NoError(t, err)
		require.Equal(t, 0, table.Len())
		require.Empty(t, table.Warnings)
		require.NotNil(t, table.Messages)
	}
}

func TestParse_NotAnExport(t *testing.T) {
	table, err := Parse("hello\nthis is not a chat\n", Options{})
	require.NoError(t, err)
	require.Equal(t, 0, table.Len())
	require.Len(t, table.Warnings, 1)
	require.Contains(t, table.Warnings[0], "no messages found")
}

func TestParse_LeadingGarbage(t *testing.T) {
	in := "header line\n12/5/23, 4:30 PM - Alice: hi"
	table, err := Parse(in, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	require.Equal(t, 2, table.Messages[0].Line)
	require.Equal(t, []string{"skipped 1 lines before the first message"}, table.Warnings)
}

func TestParse_MultiLine(t *testing.T) {
	in := strings.Join([]string{
		"12/5/23, 4:30 PM - Alice: first line",
		"second line",
		"",
		"12/5/23, 4:31 PM - Bob: reply",
		"",
	}, "\n")
	table, err := Parse(in, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	require.Equal(t, "first line\nsecond line", table.Messages[0].Body)
	require.Equal(t, "reply", table.Messages[1].Body)
	require.Equal(t, 4, table.Messages[1].Line)
	require.Equal(t, 1, table.Messages[1].Seq)
}

func TestParse_Media(t *testing.T) {
	in := "12/5/23, 4:30 PM - Alice: <Media omitted>\r\n12/5/23, 4:32 PM - Bob: <attached>"
	table, err := Parse(in, Options{})
	require.NoError(t, err)
	require.True(t, table.Messages[0].Media)
	require.False(t, table.Messages[1].Media)

	table, err = Parse(in, Options{MediaPlaceholder: "<attached>"})
	require.NoError(t, err)
	require.False(t, table.Messages[0].Media)
	require.True(t, table.Messages[1].Media)
}

func TestParse_Clock(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		order DateOrder
		want  time.Time
	}{
		{"midnight", "1/1/24, 12:05 AM - A: x", "", time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)},
		{"noon", "1/1/24, 12:05 PM - A: x", "", time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)},
		{"lowercase marker", "1/1/24, 9:05 pm - A: x", "", time.Date(2024, 1, 1, 21, 5, 0, 0, time.UTC)},
		{"24 hour", "12/05/2023, 16:30 - A: x", "", time.Date(2023, 5, 12, 16, 30, 0, 0, time.UTC)},
		{"narrow nbsp", "12/5/23, 4:30\u202fPM - A: x", "", time.Date(2023, 5, 12, 16, 30, 0, 0, time.UTC)},
		{"month first", "5/12/23, 4:30 PM - A: x", MonthDayYear, time.Date(2023, 5, 12, 16, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.line, Options{DateOrder: tt.order})
			require.NoError(t, err)
			require.Equal(t, 1, table.Len())
			require.Equal(t, tt.want, table.Messages[0].Time)
		})
	}
}

func TestParse_BadTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"no such day", "31/2/23, 4:30 PM - Alice: x", 1},
		{"hour past 12 with marker", "1/2/23, 13:30 PM - Alice: x", 1},
		{"hour past 23", "1/2/23, 24:30 - Alice: x", 1},
		{"minute", "1/2/23, 4:75 PM - Alice: x", 1},
		{"month", "1/13/23, 4:30 PM - Alice: x", 1},
		{"later line", "1/2/23, 4:30 PM - Alice: x\n0/2/23, 4:30 PM - Alice: y", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.in, Options{})
			require.Nil(t, table)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParse_LineTooLong(t *testing.T) {
	in := "12/5/23, 4:30 PM - Alice: hi\n" + strings.Repeat("a", maxLineSize+1) + "\n"

	table, err := Parse(in, Options{})
	require.Nil(t, table)
	require.ErrorIs(t, err, ErrLineTooLong)
	require.Contains(t, err.Error(), "line 2")
}

func TestParse_OrderAndSenders(t *testing.T) {
	in := strings.Join([]string{
		"\ufeff12/5/23, 4:30 PM - Messages and calls are end-to-end encrypted.",
		"12/5/23, 4:30 PM - Zoe: hi",
		"12/5/23, 4:31 PM - Alice: hey",
		"13/5/23, 9:00 AM - Zoe: morning",
		"1/6/23, 10:00 PM - Bob: late",
	}, "\n")
	table, err := Parse(in, Options{})
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	for i := 1; i < table.Len(); i++ {
		require.Equal(t, i, table.Messages[i].Seq)
		require.False(t, table.Messages[i].Time.Before(table.Messages[i-1].Time))
	}
	require.Equal(t, []string{"Alice", "Bob", "Zoe"}, table.Senders())

	first, last, ok := table.Span()
	require.True(t, ok)
	require.Equal(t, "2023-05-12", first.Format("2006-01-02"))
	require.Equal(t, "2023-06-01", last.Format("2006-01-02"))
}

func TestParse_CustomSentinel(t *testing.T) {
	table, err := Parse("12/5/23, 4:31 PM - You created group \"x\"", Options{Sentinel: "system"})
	require.NoError(t, err)
	require.Equal(t, "system", table.Messages[0].Sender)
	require.Equal(t, "system", table.Sentinel())
	require.Empty(t, table.Senders())
}

func TestTable_Nil(t *testing.T) {
	var table *Table
	require.Equal(t, 0, table.Len())
	require.Empty(t, table.Senders())
	require.Equal(t, DefaultSentinel, table.Sentinel())
}
