package stats

import (
	"fmt"
	"sort"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// TimelinePoint is one labelled point of a timeline series.
type TimelinePoint struct {
	Time     string `json:"time"`
	Messages int    `json:"messages"`
}

// MonthlyTimeline counts messages per calendar month, oldest first. Labels
// look like "May-2023".
func MonthlyTimeline(t *parse.Table, f Filter) []TimelinePoint {
	counts := make(map[int]int)
	for _, m := range f.Apply(t) {
		counts[m.Year*12+int(m.Month)-1]++
	}

	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	points := make([]TimelinePoint, 0, len(keys))
	for _, k := range keys {
		year, month := k/12, k%12+1
		points = append(points, TimelinePoint{
			Time:     fmt.Sprintf("%s-%d", monthNames[month-1], year),
			Messages: counts[k],
		})
	}
	return points
}

// DailyTimeline counts messages per calendar date, oldest first.
func DailyTimeline(t *parse.Table, f Filter) []TimelinePoint {
	counts := make(map[string]int)
	for _, m := range f.Apply(t) {
		counts[m.Date]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates) // YYYY-MM-DD sorts chronologically

	points := make([]TimelinePoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, TimelinePoint{Time: d, Messages: counts[d]})
	}
	return points
}
