package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [file]",
		Short: "Self-check: verify config, stop words, FTS5, and optionally an export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			if home, err := os.UserHomeDir(); err == nil {
				p := config.Path(home)
				if _, err := os.Stat(p); err != nil {
					fmt.Printf("  File: %s (not found, using defaults)\n", p)
				} else {
					fmt.Printf("  File: %s (OK)\n", p)
				}
			}
			fmt.Printf("  Date order: %s\n", cfg.DateOrder)
			fmt.Printf("  Heatmap bucket: %dh\n", cfg.HeatmapBucketHours)
			fmt.Printf("  Listen: %s (max upload %d MB, %d sessions, ttl %s)\n",
				cfg.ListenAddr, cfg.MaxUploadMB, cfg.SessionLimit, cfg.SessionTTL)

			fmt.Println("\n=== Stop words ===")
			sopts, err := cfg.StatsOptions()
			if err != nil {
				fmt.Printf("  error: %v\n", err)
			} else {
				fmt.Printf("  Built-in: %d\n", len(stats.DefaultStopWords()))
				if cfg.StopwordsPath != "" {
					fmt.Printf("  With %s: %d\n", cfg.StopwordsPath, len(sopts.StopWords))
				}
			}

			fmt.Println("\n=== FTS5 ===")
			checkFTS()

			if len(args) == 1 {
				fmt.Println("\n=== Export ===")
				return checkExport(args[0])
			}
			return nil
		},
	}
}

func checkFTS() {
	probe, err := parse.Parse("1/1/24, 10:00 - doctor: fts probe\n", parse.Options{})
	if err != nil {
		fmt.Printf("  probe error: %v\n", err)
		return
	}
	db, err := index.Build(probe)
	if err != nil {
		fmt.Printf("  FTS5 error: %v\n", err)
		return
	}
	defer db.Close()

	msgs, err := db.MessageCount()
	if err != nil {
		fmt.Printf("  count error: %v\n", err)
		return
	}
	fts, err := db.FTSCount()
	if err != nil {
		fmt.Printf("  FTS5 error: %v\n", err)
		return
	}
	if fts == msgs {
		fmt.Println("  Status: OK (synced)")
	} else {
		fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", msgs, fts)
	}
}

func checkExport(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  %s (NOT FOUND)\n", path)
		return nil
	}
	fmt.Printf("  File: %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))

	t, err := loadChat(path)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return nil
	}

	fmt.Printf("  Messages: %s\n", humanize.Comma(int64(t.Len())))
	fmt.Printf("  Senders:  %d\n", len(t.Senders()))
	if first, last, ok := t.Span(); ok {
		fmt.Printf("  Span:     %s .. %s\n", first.Format(index.TimeLayout), last.Format(index.TimeLayout))
	}
	for _, w := range t.Warnings {
		fmt.Printf("  Warning:  %s\n", w)
	}
	return nil
}
