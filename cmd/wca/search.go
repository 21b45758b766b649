package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/search"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, search.MarkStart, sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, search.MarkEnd, sColorReset)
	return snippet
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func searchCmd() *cobra.Command {
	var user string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Full-text search over the messages of a chat export",
		Long: `Search the messages of a chat export using FTS5. Output is TSV for fzf:
  seq, line, time, sender, snippet

Recommended shell function (add to .zshrc):
  wcaf() {
    local f="$1"; shift
    wca search "$f" "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview "wca preview '$f' --hit {1} --context 5 --query {q}" \
      --preview-window=right:60%:wrap \
      --bind "enter:execute(wca open '$f' --hit {1})"
  }`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			if stats.ForSender(user).IsOverall() {
				user = ""
			}

			results, err := search.Search(db, search.Options{
				Query:  args[1],
				Sender: user,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				// first two fields (seq, line) stay plain for fzf {1} {2}
				fmt.Printf("%d\t%d\t%s%s%s\t%s%s%s\t%s\n",
					r.Seq,
					r.Line,
					sColorDim, r.Ts, sColorReset,
					sColorBlue, oneLine(r.Sender), sColorReset,
					colorizeSnippet(oneLine(r.Snippet)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Only messages of this sender")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
