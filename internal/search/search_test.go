package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

const chat = `12/5/23, 4:30 PM - Messages and calls are end-to-end encrypted.
12/5/23, 4:31 PM - Alice: pizza tonight?
12/5/23, 4:32 PM - Bob: don't like pizza
12/5/23, 4:33 PM - Bob: 我们去吃饭吧
13/5/23, 9:05 AM - Alice: fine, sushi then
`

func openIndex(t *testing.T) *index.DB {
	t.Helper()
	table, err := parse.Parse(chat, parse.Options{})
	require.NoError(t, err)
	db, err := index.Build(table)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSearch_FTS(t *testing.T) {
	db := openIndex(t)

	results, err := Search(db, Options{Query: "pizza"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Contains(t, r.Snippet, MarkStart+"pizza"+MarkEnd)
	}

	results, err = Search(db, Options{Query: "pizza", Sender: "Bob"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Seq)
	require.Equal(t, 3, results[0].Line)
	require.Equal(t, "Bob", results[0].Sender)
	require.Equal(t, "2023-05-12 16:32", results[0].Ts)
}

func TestSearch_Punctuation(t *testing.T) {
	db := openIndex(t)

	results, err := Search(db, Options{Query: "don't"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Bob", results[0].Sender)
}

func TestSearch_CJK(t *testing.T) {
	db := openIndex(t)

	results, err := Search(db, Options{Query: "吃饭"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 3, results[0].Seq)
	require.Contains(t, results[0].Snippet, MarkStart+"吃饭"+MarkEnd)
}

func TestSearch_NoResults(t *testing.T) {
	db := openIndex(t)

	results, err := Search(db, Options{Query: "burrito"})
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = Search(db, Options{Query: "  "})
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = Search(db, Options{Query: "pizza", Sender: "Zed"})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearch_Limit(t *testing.T) {
	db := openIndex(t)

	results, err := Search(db, Options{Query: "pizza", Limit: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestFTSQuery(t *testing.T) {
	require.Equal(t, `"pizza" OR "sushi"`, ftsQuery("pizza OR sushi"))
	require.Equal(t, `"say" """hi"""`, ftsQuery(`say "hi"`))
	require.Equal(t, `"don't"`, ftsQuery("don't"))
}

func TestMakeSnippet(t *testing.T) {
	require.Equal(t, "...lo >>>pizza<<< to...", makeSnippet("hello pizza tonight", "pizza", 3))
	require.Equal(t, ">>>Pizza<<<", makeSnippet("Pizza", "pizza", 3))
	require.Equal(t, "abcdef...", makeSnippet("abcdefghij", "zz", 3))
}
