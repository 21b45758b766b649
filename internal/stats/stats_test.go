package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

const chat = `12/5/23, 4:30 PM - Messages and calls are end-to-end encrypted.
12/5/23, 4:31 PM - Alice: Hello there 😀😀
12/5/23, 4:32 PM - Bob: hi Alice check https://example.com
13/5/23, 9:05 AM - Alice: <Media omitted>
13/5/23, 11:15 PM - Bob: 👍🏽 good night
1/6/23, 8:00 AM - Alice: pizza pizza www.food.com
2/1/24, 10:00 AM - Carol: Pizza tonight? 🇮🇳
`

func fixture(t *testing.T) *parse.Table {
	t.Helper()
	table, err := parse.Parse(chat, parse.Options{})
	require.NoError(t, err)
	require.Equal(t, 7, table.Len())
	return table
}

func TestFilter(t *testing.T) {
	table := fixture(t)

	require.True(t, Filter{}.IsOverall())
	require.True(t, ForSender(Overall).IsOverall())
	require.Len(t, ForSender(Overall).Apply(table), 7)
	require.Len(t, ForSender("Alice").Apply(table), 3)
	require.Empty(t, ForSender("Zed").Apply(table))
	require.Equal(t, "Alice", ForSender("Alice").Label())
	require.Equal(t, Overall, Filter{}.Label())

	require.Equal(t, []string{Overall, "Alice", "Bob", "Carol"}, SelectorOptions(table))
}

func TestFetchStats(t *testing.T) {
	table := fixture(t)

	require.Equal(t, Summary{Messages: 7, Words: 22, Media: 1, Links: 2}, FetchStats(table, Filter{}))
	require.Equal(t, Summary{Messages: 3, Words: 6, Media: 1, Links: 1}, FetchStats(table, ForSender("Alice")))
	require.Equal(t, Summary{}, FetchStats(table, ForSender("Zed")))
}

func TestTimelines(t *testing.T) {
	table := fixture(t)

	require.Equal(t, []TimelinePoint{
		{Time: "May-2023", Messages: 5},
		{Time: "June-2023", Messages: 1},
		{Time: "January-2024", Messages: 1},
	}, MonthlyTimeline(table, Filter{}))

	require.Equal(t, []TimelinePoint{
		{Time: "2023-05-12", Messages: 3},
		{Time: "2023-05-13", Messages: 2},
		{Time: "2023-06-01", Messages: 1},
		{Time: "2024-01-02", Messages: 1},
	}, DailyTimeline(table, Filter{}))

	require.Equal(t, []TimelinePoint{
		{Time: "2023-05-12", Messages: 1},
		{Time: "2023-05-13", Messages: 1},
	}, DailyTimeline(table, ForSender("Bob")))
}

func TestActivityMaps(t *testing.T) {
	table := fixture(t)

	week := WeekActivity(table, Filter{})
	require.Equal(t, []CategoryCount{
		{"Monday", 0}, {"Tuesday", 1}, {"Wednesday", 0}, {"Thursday", 1},
		{"Friday", 3}, {"Saturday", 2}, {"Sunday", 0},
	}, week)

	best, ok := Busiest(week)
	require.True(t, ok)
	require.Equal(t, "Friday", best.Name)

	months := MonthActivity(table, Filter{})
	require.Len(t, months, 12)
	require.Equal(t, CategoryCount{"January", 1}, months[0])
	require.Equal(t, CategoryCount{"May", 5}, months[4])
	require.Equal(t, CategoryCount{"June", 1}, months[5])

	_, ok = Busiest(MonthActivity(table, ForSender("Zed")))
	require.False(t, ok)
}

func TestActivityHeatmap(t *testing.T) {
	table := fixture(t)

	h := ActivityHeatmap(table, Filter{}, 1)
	require.Equal(t, 1, h.BucketHours)
	require.Len(t, h.Rows, 7)
	require.Len(t, h.Columns, 24)
	require.Equal(t, "Monday", h.Rows[0])
	require.Equal(t, "00-01", h.Columns[0])
	require.Equal(t, "23-00", h.Columns[23])
	require.Equal(t, 3, h.Cells[4][16]) // Friday 16-17
	require.Equal(t, 1, h.Cells[5][9])  // Saturday 09-10
	require.Equal(t, 1, h.Cells[5][23])
	require.Equal(t, 1, h.Cells[3][8])
	require.Equal(t, 1, h.Cells[1][10])
	require.Equal(t, 7, h.Total())
	require.Equal(t, 3, h.Max())

	h2 := ActivityHeatmap(table, Filter{}, 2)
	require.Len(t, h2.Columns, 12)
	require.Equal(t, "16-18", h2.Columns[8])
	require.Equal(t, "22-00", h2.Columns[11])
	require.Equal(t, 3, h2.Cells[4][8])

	require.Equal(t, 1, ActivityHeatmap(table, Filter{}, 5).BucketHours)
}

func TestMostBusyUsers(t *testing.T) {
	table := fixture(t)

	r := MostBusyUsers(table, 2)
	require.Equal(t, []SenderCount{{"Alice", 3}, {"Bob", 2}}, r.Top)
	require.Equal(t, []SenderShare{
		{"Alice", 42.86},
		{"Bob", 28.57},
		{parse.DefaultSentinel, 14.29},
		{"Carol", 14.29},
	}, r.Shares)
}

func TestWords(t *testing.T) {
	table := fixture(t)

	require.Equal(t, []WordCount{{"pizza", 3}, {"hello", 1}, {"😀😀", 1}},
		MostCommonWords(table, Filter{}, DefaultStopWords(), 3))

	require.Equal(t, []WordCount{{"pizza", 2}, {"hello", 1}},
		MostCommonWords(table, ForSender("Alice"), DefaultStopWords(), 2))

	cloud := WordCloudInput(table, ForSender("Carol"), DefaultStopWords())
	require.Equal(t, "pizza tonight? 🇮🇳", cloud.Text)
	require.Len(t, cloud.Frequencies, 3)

	for _, w := range Tokens(table, Filter{}, DefaultStopWords()) {
		require.NotEqual(t, "there", w)
		require.NotContains(t, w, "encrypted")
	}
}

func TestLoadStopWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("# extra\nPizza\n\n"), 0o644))

	stop, err := LoadStopWords(path)
	require.NoError(t, err)
	require.True(t, stop.Contains("pizza"))
	require.True(t, stop.Contains("the"))

	words := MostCommonWords(fixture(t), Filter{}, stop, -1)
	for _, w := range words {
		require.NotEqual(t, "pizza", w.Word)
	}

	_, err = LoadStopWords(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestEmojiFrequency(t *testing.T) {
	table := fixture(t)

	require.Equal(t, []EmojiCount{{"😀", 2}, {"👍🏽", 1}, {"🇮🇳", 1}}, EmojiFrequency(table, Filter{}))
	require.Equal(t, []EmojiCount{{"😀", 2}}, EmojiFrequency(table, ForSender("Alice")))
	require.Empty(t, EmojiFrequency(table, ForSender("Zed")))
}

func TestEmojiFrequency_Symbols(t *testing.T) {
	table, err := parse.Parse("12/5/23, 4:31 PM - Alice: ★ ✓ ⌘ ▶️ ◀️ Ⓜ️ ▶️\n", parse.Options{})
	require.NoError(t, err)

	require.Equal(t, []EmojiCount{{"▶️", 2}, {"◀️", 1}, {"Ⓜ️", 1}}, EmojiFrequency(table, Filter{}))
}

func TestFetchStats_WrappedLinks(t *testing.T) {
	table, err := parse.Parse("12/5/23, 4:31 PM - Alice: see:https://a.com (www.b.com) <https://c.org> https://d.io\n", parse.Options{})
	require.NoError(t, err)

	require.Equal(t, Summary{Messages: 1, Words: 4, Links: 4}, FetchStats(table, Filter{}))
}

func TestSenderCounts(t *testing.T) {
	table := fixture(t)

	require.Equal(t, []SenderCount{
		{"Alice", 3},
		{"Bob", 2},
		{parse.DefaultSentinel, 1},
		{"Carol", 1},
	}, SenderCounts(table))
}

func TestIsEmoji(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"😂", true},
		{"❤️", true},
		{"👨‍👩‍👧", true},
		{"1️⃣", true},
		{"©️", true},
		{"▶️", true},
		{"Ⓜ️", true},
		{"★", false},
		{"✓", false},
		{"⌘", false},
		{"#", false},
		{"1", false},
		{"a", false},
		{"é", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, isEmoji(tt.in), tt.in)
	}
}

func TestTotalsAgree(t *testing.T) {
	table := fixture(t)

	sum := func(points []TimelinePoint) int {
		n := 0
		for _, p := range points {
			n += p.Messages
		}
		return n
	}

	perSender := make(map[string]int)
	for _, c := range SenderCounts(table) {
		perSender[c.Sender] = c.Messages
	}

	for _, name := range append(SelectorOptions(table), "Zed") {
		f := ForSender(name)
		total := FetchStats(table, f).Messages

		require.Equal(t, total, sum(MonthlyTimeline(table, f)), name)
		require.Equal(t, total, sum(DailyTimeline(table, f)), name)

		week := 0
		for _, c := range WeekActivity(table, f) {
			week += c.Count
		}
		require.Equal(t, total, week, name)
		require.Equal(t, total, ActivityHeatmap(table, f, 2).Total(), name)

		if !f.IsOverall() {
			require.Equal(t, perSender[name], total, name)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	table := fixture(t)
	opts := Options{BucketHours: 1, TopUsers: 5, TopWords: 20, StopWords: DefaultStopWords()}

	for _, name := range SelectorOptions(table) {
		a := Build(table, ForSender(name), opts)
		b := Build(table, ForSender(name), opts)
		require.Equal(t, a, b)

		ja, err := json.Marshal(a)
		require.NoError(t, err)
		jb, err := json.Marshal(b)
		require.NoError(t, err)
		require.Equal(t, ja, jb)
	}

	require.NotNil(t, Build(table, Filter{}, opts).Ranking)
	require.Nil(t, Build(table, ForSender("Alice"), opts).Ranking)
}

func TestBuild_Empty(t *testing.T) {
	empty, err := parse.Parse("", parse.Options{})
	require.NoError(t, err)

	for _, f := range []Filter{{}, ForSender("Alice")} {
		r := Build(empty, f, Options{})
		require.Equal(t, Summary{}, r.Summary)
		require.Empty(t, r.Monthly)
		require.Empty(t, r.Daily)
		require.Empty(t, r.CommonWords)
		require.Empty(t, r.Emoji)
		require.Empty(t, r.WordCloud.Text)
		require.Equal(t, 0, r.Heatmap.Total())
		for _, c := range r.Weekdays {
			require.Zero(t, c.Count)
		}

		out, err := json.Marshal(r)
		require.NoError(t, err)
		require.False(t, strings.Contains(string(out), "null"), string(out))
	}

	r := MostBusyUsers(empty, 5)
	require.Empty(t, r.Top)
	require.Empty(t, r.Shares)
}
