package stats

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// CategoryCount is the message count of one fixed category (a weekday or a
// month name).
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Weekdays is the row order of weekday maps and the heatmap.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var monthNames = func() []string {
	names := make([]string, 12)
	for i := range names {
		names[i] = time.Month(i + 1).String()
	}
	return names
}()

// WeekActivity counts messages per weekday, Monday to Sunday. All seven days
// are present, with zero counts where nothing was sent.
func WeekActivity(t *parse.Table, f Filter) []CategoryCount {
	var counts [7]int
	for _, m := range f.Apply(t) {
		counts[m.Weekday]++
	}
	out := make([]CategoryCount, 0, len(Weekdays))
	for _, d := range Weekdays {
		out = append(out, CategoryCount{Name: d.String(), Count: counts[d]})
	}
	return out
}

// MonthActivity counts messages per month name, January to December,
// across all years.
func MonthActivity(t *parse.Table, f Filter) []CategoryCount {
	var counts [12]int
	for _, m := range f.Apply(t) {
		counts[m.Month-1]++
	}
	out := make([]CategoryCount, 0, 12)
	for i, name := range monthNames {
		out = append(out, CategoryCount{Name: name, Count: counts[i]})
	}
	return out
}

// Busiest returns the category with the highest count, the earliest one on
// ties. ok is false when every count is zero.
func Busiest(counts []CategoryCount) (best CategoryCount, ok bool) {
	for _, c := range counts {
		if c.Count > best.Count {
			best = c
			ok = true
		}
	}
	return best, ok
}

// Heatmap is a weekday x hour-bucket matrix of message counts.
type Heatmap struct {
	BucketHours int      `json:"bucket_hours"`
	Rows        []string `json:"rows"`    // weekday names, Monday first
	Columns     []string `json:"columns"` // period labels, "00-01" ...
	Cells       [][]int  `json:"cells"`   // Cells[row][column]
}

// ActivityHeatmap buckets messages by weekday and hour. bucketHours must
// divide 24; anything else falls back to one-hour buckets.
func ActivityHeatmap(t *parse.Table, f Filter, bucketHours int) Heatmap {
	if bucketHours <= 0 || 24%bucketHours != 0 {
		bucketHours = 1
	}
	cols := 24 / bucketHours

	h := Heatmap{
		BucketHours: bucketHours,
		Rows:        make([]string, len(Weekdays)),
		Columns:     make([]string, cols),
		Cells:       make([][]int, len(Weekdays)),
	}
	row := make(map[time.Weekday]int, len(Weekdays))
	for i, d := range Weekdays {
		h.Rows[i] = d.String()
		h.Cells[i] = make([]int, cols)
		row[d] = i
	}
	for c := range h.Columns {
		h.Columns[c] = PeriodLabel(c*bucketHours, bucketHours)
	}

	for _, m := range f.Apply(t) {
		h.Cells[row[m.Weekday]][m.Hour/bucketHours]++
	}
	return h
}

// PeriodLabel names the bucket starting at hour: "09-10", "23-00".
func PeriodLabel(hour, width int) string {
	return fmt.Sprintf("%02d-%02d", hour, (hour+width)%24)
}

func (h Heatmap) Total() int {
	n := 0
	for _, r := range h.Cells {
		for _, c := range r {
			n += c
		}
	}
	return n
}

func (h Heatmap) Max() int {
	n := 0
	for _, r := range h.Cells {
		for _, c := range r {
			if c > n {
				n = c
			}
		}
	}
	return n
}
