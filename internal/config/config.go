package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

// ErrValidation is wrapped by every error returned for a config that decoded
// fine but holds values outside their allowed range.
var ErrValidation = errors.New("invalid config")

type Config struct {
	DateOrder        string `toml:"date_order"         validate:"oneof=dmy mdy"`
	MediaPlaceholder string `toml:"media_placeholder"  validate:"required"`
	Sentinel         string `toml:"sentinel"           validate:"required"`

	TopUsers           int    `toml:"top_users"            validate:"min=1,max=100"`
	TopWords           int    `toml:"top_words"            validate:"min=1,max=500"`
	HeatmapBucketHours int    `toml:"heatmap_bucket_hours" validate:"oneof=1 2"`
	StopwordsPath      string `toml:"stopwords_path"`

	ListenAddr   string        `toml:"listen_addr"    validate:"required"`
	MaxUploadMB  int64         `toml:"max_upload_mb"  validate:"min=1,max=1024"`
	SessionLimit int           `toml:"session_limit"  validate:"min=1"`
	SessionTTL   time.Duration `toml:"session_ttl"    validate:"min=1m"`

	LogLevel  string `toml:"log_level"  validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" validate:"oneof=text json"`

	Theme Theme `toml:"theme"`
}

// Theme is the palette handed to the text and terminal renderers.
// Values are lipgloss colors: ANSI 0-255 codes or "#rrggbb".
type Theme struct {
	Primary   string   `toml:"primary"   validate:"required"`
	Secondary string   `toml:"secondary" validate:"required"`
	Dim       string   `toml:"dim"       validate:"required"`
	Highlight string   `toml:"highlight" validate:"required"`
	Border    string   `toml:"border"    validate:"required"`
	Heat      []string `toml:"heat"      validate:"min=2,dive,required"`
}

func DefaultTheme() Theme {
	return Theme{
		Primary:   "12",
		Secondary: "10",
		Dim:       "240",
		Highlight: "11",
		Border:    "238",
		Heat:      []string{"236", "22", "28", "34", "40", "46"},
	}
}

func Default(home string) *Config {
	return &Config{
		DateOrder:          "dmy",
		MediaPlaceholder:   "<Media omitted>",
		Sentinel:           "group_notification",
		TopUsers:           5,
		TopWords:           20,
		HeatmapBucketHours: 1,
		ListenAddr:         "127.0.0.1:8501",
		MaxUploadMB:        32,
		SessionLimit:       64,
		SessionTTL:         time.Hour,
		LogLevel:           "info",
		LogFormat:          "text",
		Theme:              DefaultTheme(),
	}
}

// Path returns the location of the config file under home.
func Path(home string) string {
	return filepath.Join(home, ".config", "wca", "config.toml")
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(Path(home), home)
}

// LoadFrom reads cfgPath over the defaults. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.StopwordsPath = expandHome(cfg.StopwordsPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (value %v)", ErrValidation, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *Config) ParseOptions() parse.Options {
	return parse.Options{
		DateOrder:        parse.DateOrder(c.DateOrder),
		MediaPlaceholder: c.MediaPlaceholder,
		Sentinel:         c.Sentinel,
	}
}

// StatsOptions returns the aggregation options, loading the extra stop words
// from StopwordsPath when set.
func (c *Config) StatsOptions() (stats.Options, error) {
	stop, err := stats.LoadStopWords(c.StopwordsPath)
	if err != nil {
		return stats.Options{}, err
	}
	return stats.Options{
		BucketHours: c.HeatmapBucketHours,
		TopUsers:    c.TopUsers,
		TopWords:    c.TopWords,
		StopWords:   stop,
	}, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
