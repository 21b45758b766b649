package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

func table(t *testing.T, n int) *parse.Table {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "12/5/23, 4:%02d PM - Alice: message number %d\n", i, i)
	}
	tbl, err := parse.Parse(b.String(), parse.Options{})
	require.NoError(t, err)
	require.Equal(t, n, tbl.Len())
	return tbl
}

func TestBuild(t *testing.T) {
	db, err := Build(table(t, 10))
	require.NoError(t, err)
	defer db.Close()

	n, err := db.MessageCount()
	require.NoError(t, err)
	require.Equal(t, 10, n)

	fts, err := db.FTSCount()
	require.NoError(t, err)
	require.Equal(t, n, fts)

	m, err := db.GetMessage(3)
	require.NoError(t, err)
	require.Equal(t, "Alice", m.Sender)
	require.Equal(t, "message number 3", m.Body)
	require.Equal(t, "2023-05-12 16:03", m.Ts)
	require.Equal(t, 4, m.Line)
	require.False(t, m.Media)

	_, err = db.GetMessage(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Replaces(t *testing.T) {
	db, err := Build(table(t, 10))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Load(table(t, 3)))
	n, err := db.MessageCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	fts, err := db.FTSCount()
	require.NoError(t, err)
	require.Equal(t, 3, fts)

	require.NoError(t, db.Load(nil))
	n, err = db.MessageCount()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGetWindow(t *testing.T) {
	db, err := Build(table(t, 10))
	require.NoError(t, err)
	defer db.Close()

	tests := []struct {
		name      string
		hit, ctx  int
		wantSeqs  []int
		wantHit   int
		wantStart int
	}{
		{"middle", 5, 2, []int{3, 4, 5, 6, 7}, 2, 3},
		{"start", 0, 2, []int{0, 1, 2}, 0, 0},
		{"end", 9, 2, []int{7, 8, 9}, 2, 7},
		{"no hit", -1, 2, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, -1, 0},
		{"unknown", 99, 2, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, hitIdx, start, total, err := db.GetWindow(tt.hit, tt.ctx)
			require.NoError(t, err)
			require.Equal(t, 10, total)
			require.Equal(t, tt.wantHit, hitIdx)
			require.Equal(t, tt.wantStart, start)

			var seqs []int
			for _, r := range rows {
				seqs = append(seqs, r.Seq)
			}
			require.Equal(t, tt.wantSeqs, seqs)
		})
	}
}
