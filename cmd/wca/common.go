package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/source"
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg *config.Config

func setup(configPath string) error {
	var c *config.Config
	var err error
	if configPath == "" {
		c, err = config.Load()
	} else {
		var home string
		if home, err = os.UserHomeDir(); err != nil {
			return err
		}
		c, err = config.LoadFrom(configPath, home)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logging.Setup(os.Stderr, c.LogLevel, c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg = c
	return nil
}

// loadChat reads and parses the export at path.
func loadChat(path string) (*parse.Table, error) {
	start := time.Now()

	text, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	t, err := parse.Parse(text, cfg.ParseOptions())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for _, w := range t.Warnings {
		slog.Warn("Parse warning", "file", path, "warning", w)
	}
	slog.Debug("Chat loaded",
		"file", path,
		"messages", t.Len(),
		"senders", len(t.Senders()),
		"duration_ms", time.Since(start).Milliseconds())
	return t, nil
}

// loadIndex parses the export at path and indexes its messages.
func loadIndex(path string) (*parse.Table, *index.DB, error) {
	t, err := loadChat(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := index.Build(t)
	if err != nil {
		return nil, nil, err
	}
	return t, db, nil
}
