package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func previewCmd() *cobra.Command {
	var hitSeq int
	var context, width int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Preview the conversation around a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			out, _, err := render.RenderConversation(db, render.ConversationOptions{
				Title:   filepath.Base(args[0]),
				HitSeq:  hitSeq,
				Context: context,
				Width:   width,
				Query:   query,
				Theme:   cfg.Theme,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message seq to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
