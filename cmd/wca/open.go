package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/open"
)

func openCmd() *cobra.Command {
	var hitSeq int

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open the chat export in $EDITOR at a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadIndex(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			return open.Message(db, args[0], hitSeq)
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message seq to jump to")

	return cmd
}
