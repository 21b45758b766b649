package stats

import "github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"

type Options struct {
	BucketHours int
	TopUsers    int
	TopWords    int
	StopWords   StopWords
}

// Report is every dashboard statistic for one filter.
type Report struct {
	User        string          `json:"user"`
	Summary     Summary         `json:"summary"`
	Monthly     []TimelinePoint `json:"monthly_timeline"`
	Daily       []TimelinePoint `json:"daily_timeline"`
	Weekdays    []CategoryCount `json:"week_activity"`
	Months      []CategoryCount `json:"month_activity"`
	Heatmap     Heatmap         `json:"activity_heatmap"`
	Ranking     *Ranking        `json:"most_busy_users,omitempty"` // Overall only
	CommonWords []WordCount     `json:"most_common_words"`
	WordCloud   WordCloud       `json:"word_cloud"`
	Emoji       []EmojiCount    `json:"emoji"`
}

func Build(t *parse.Table, f Filter, opts Options) Report {
	if opts.StopWords == nil {
		opts.StopWords = DefaultStopWords()
	}
	if opts.TopWords == 0 {
		opts.TopWords = 20
	}
	if opts.TopUsers == 0 {
		opts.TopUsers = 5
	}

	r := Report{
		User:        f.Label(),
		Summary:     FetchStats(t, f),
		Monthly:     MonthlyTimeline(t, f),
		Daily:       DailyTimeline(t, f),
		Weekdays:    WeekActivity(t, f),
		Months:      MonthActivity(t, f),
		Heatmap:     ActivityHeatmap(t, f, opts.BucketHours),
		CommonWords: MostCommonWords(t, f, opts.StopWords, opts.TopWords),
		WordCloud:   WordCloudInput(t, f, opts.StopWords),
		Emoji:       EmojiFrequency(t, f),
	}
	if f.IsOverall() {
		ranking := MostBusyUsers(t, opts.TopUsers)
		r.Ranking = &ranking
	}
	return r
}
