package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

func usersCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "users <file>",
		Short: "List senders with their message counts and share of the chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadChat(args[0])
			if err != nil {
				return err
			}
			if top <= 0 {
				top = cfg.TopUsers
			}

			ranking := stats.MostBusyUsers(t, top)
			if len(ranking.Shares) == 0 {
				fmt.Println("No messages.")
				return nil
			}

			counts := make(map[string]int)
			nameW := len("SENDER")
			for _, c := range stats.SenderCounts(t) {
				counts[c.Sender] = c.Messages
				nameW = max(nameW, runewidth.StringWidth(c.Sender))
			}

			fmt.Printf("%s  %10s  %7s\n", runewidth.FillRight("SENDER", nameW), "MESSAGES", "PERCENT")
			for _, s := range ranking.Shares {
				fmt.Printf("%s  %10s  %6.2f%%\n",
					runewidth.FillRight(s.Sender, nameW),
					humanize.Comma(int64(counts[s.Sender])),
					s.Percent)
			}

			fmt.Println()
			fmt.Printf("Most busy (top %d):", top)
			for i, c := range ranking.Top {
				sep := ","
				if i == 0 {
					sep = ""
				}
				fmt.Printf("%s %s", sep, c.Sender)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of most busy users (default from config)")

	return cmd
}
