package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/tui"
)

func statsCmd() *cobra.Command {
	var user string
	var asJSON, plain bool
	var width, days int

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show the statistics of a chat export",
		Long: `Show every statistic of a chat export for everyone or for --user.

On a terminal this opens an interactive dashboard with a sender selector;
--plain prints the report instead and --json prints it as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadChat(args[0])
			if err != nil {
				return err
			}

			sopts, err := cfg.StatsOptions()
			if err != nil {
				return err
			}

			if user != "" && !stats.ForSender(user).IsOverall() && !slices.Contains(t.Senders(), user) {
				return fmt.Errorf("no sender %q in %s", user, filepath.Base(args[0]))
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(stats.Build(t, stats.ForSender(user), sopts))
			}

			isTerm := term.IsTerminal(int(os.Stdout.Fd()))
			if isTerm && !plain {
				return tui.Run(t, tui.Options{
					Title:  filepath.Base(args[0]),
					Sender: user,
					Stats:  sopts,
					Theme:  cfg.Theme,
				})
			}

			if width == 0 {
				width = 80
				if isTerm {
					if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
						width = w
					}
				}
			}

			report := stats.Build(t, stats.ForSender(user), sopts)
			fmt.Print(render.RenderReport(report, render.Options{
				Width:    width,
				Theme:    cfg.Theme,
				MaxDaily: days,
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Sender to analyze (default Overall)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the report instead of opening the dashboard")
	cmd.Flags().IntVar(&width, "width", 0, "Report width (default terminal width or 80)")
	cmd.Flags().IntVar(&days, "days", 0, "Most recent days in the daily timeline (0 = all)")

	return cmd
}
