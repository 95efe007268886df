package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"NewsScanner/internal/domain"
)

const (
	defaultTimezone = "UTC"
	ConfigPathEnv   = "NEWS_SCANNER_CONFIG"

	sourceURLEnv      = "NEWS_SCANNER_SOURCE_URL"
	outputPathEnv     = "NEWS_SCANNER_OUTPUT_PATH"
	nerEndpointEnv    = "NEWS_SCANNER_NER_ENDPOINT"
	nerAPIKeyEnv      = "NEWS_SCANNER_NER_API_KEY"
	archiveDSNEnv     = "NEWS_SCANNER_ARCHIVE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Recognizer kinds accepted in ner.kind.
const (
	RecognizerRules = "rules"
	RecognizerHTTP  = "http"
)

// Config holds high-level settings required across the application.
type Config struct {
	Source        SourceConfig       `yaml:"source"`
	Companies     []string           `yaml:"companies"`
	Output        OutputConfig       `yaml:"output"`
	Window        WindowConfig       `yaml:"window"`
	NER           NERConfig          `yaml:"ner"`
	Archive       ArchiveConfig      `yaml:"archive"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// SourceConfig describes the listing page and how to pick articles out of it.
type SourceConfig struct {
	URL            string          `yaml:"url"`
	Extractor      string          `yaml:"extractor"`
	UserAgent      string          `yaml:"userAgent"`
	TimeoutSeconds int             `yaml:"timeoutSeconds"`
	Selectors      SelectorsConfig `yaml:"selectors"`
	DateLayouts    []string        `yaml:"dateLayouts"`
}

// SelectorsConfig holds CSS selectors relative to the article container.
type SelectorsConfig struct {
	Item    string `yaml:"item"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Date    string `yaml:"date"`
}

// OutputConfig points at the CSV file produced by a run.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// WindowConfig defines the trailing date window of accepted articles.
type WindowConfig struct {
	Days     int            `yaml:"days"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the window timezone string to a time.Location.
func (w WindowConfig) Location() *time.Location {
	if w.location != nil {
		return w.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NERConfig selects and tunes the entity recognizer.
type NERConfig struct {
	Kind      string           `yaml:"kind"`
	Endpoint  string           `yaml:"endpoint"`
	APIKey    string           `yaml:"apiKey"`
	Workers   int              `yaml:"workers"`
	Gazetteer []GazetteerEntry `yaml:"gazetteer"`
}

// GazetteerEntry is a known phrase the rule recognizer labels directly.
type GazetteerEntry struct {
	Text     string   `yaml:"text"`
	Label    string   `yaml:"label"`
	Variants []string `yaml:"variants"`
}

// ArchiveConfig enables the SQLite history of runs when DSN is set.
type ArchiveConfig struct {
	DSN string `yaml:"dsn"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines how often schedule mode repeats the pipeline.
type SchedulerConfig struct {
	Interval string `yaml:"interval"`
}

// IntervalDuration parses Interval, defaulting to one day.
func (s SchedulerConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(s.Interval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration from path (or $NEWS_SCANNER_CONFIG when path is
// empty) over the defaults and applies environment overrides. It does not validate.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(bytes.NewReader(raw), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(sourceURLEnv); v != "" {
		c.Source.URL = v
	}

	if v := os.Getenv(outputPathEnv); v != "" {
		c.Output.Path = v
	}

	if v := os.Getenv(nerEndpointEnv); v != "" {
		c.NER.Endpoint = v
	}

	if v := os.Getenv(nerAPIKeyEnv); v != "" {
		c.NER.APIKey = v
	}

	if v := os.Getenv(archiveDSNEnv); v != "" {
		c.Archive.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Window.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Window.location = loc
}

// Validate rejects configurations that cannot produce a meaningful run. It is
// called before anything is fetched.
func (c Config) Validate() error {
	if len(c.Companies) == 0 {
		return &domain.InvalidConfigError{Field: "companies", Reason: "watch-list is empty"}
	}
	for i, company := range c.Companies {
		if len(strings.Fields(company)) == 0 {
			return &domain.InvalidConfigError{
				Field:  fmt.Sprintf("companies[%d]", i),
				Reason: "company name has no tokens",
			}
		}
	}
	if strings.TrimSpace(c.Source.URL) == "" {
		return &domain.InvalidConfigError{Field: "source.url", Reason: "must be set"}
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return &domain.InvalidConfigError{Field: "output.path", Reason: "must be set"}
	}
	if c.Window.Days < 0 {
		return &domain.InvalidConfigError{Field: "window.days", Reason: "must be >= 0"}
	}
	switch c.NER.Kind {
	case RecognizerRules:
	case RecognizerHTTP:
		if c.NER.Endpoint == "" {
			return &domain.InvalidConfigError{Field: "ner.endpoint", Reason: "required for http recognizer"}
		}
	default:
		return &domain.InvalidConfigError{Field: "ner.kind", Reason: fmt.Sprintf("unknown recognizer %q", c.NER.Kind)}
	}
	if c.NER.Workers < 1 {
		return &domain.InvalidConfigError{Field: "ner.workers", Reason: "must be >= 1"}
	}
	for i, entry := range c.NER.Gazetteer {
		if strings.TrimSpace(entry.Text) == "" || entry.Label == "" {
			return &domain.InvalidConfigError{
				Field:  fmt.Sprintf("ner.gazetteer[%d]", i),
				Reason: "text and label are required",
			}
		}
	}
	return nil
}

// Timeout converts source.timeoutSeconds to a duration.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Source: SourceConfig{
			URL:            "https://www.prnewswire.com",
			Extractor:      "article-list",
			UserAgent:      "NewsScanner/1.0",
			TimeoutSeconds: 20,
			Selectors: SelectorsConfig{
				Item:    "article",
				Title:   "h3",
				Summary: "p",
				Date:    "time",
			},
			DateLayouts: []string{
				time.RFC3339,
				"2006-01-02",
				"Jan 2, 2006",
				"January 2, 2006",
				"2 Jan 2006",
				"Jan 2, 2006, 15:04 MST",
			},
		},
		Companies: []string{"IBM Systems", "Google", "Meta", "MarketsandMarkets", "wipro"},
		Output:    OutputConfig{Path: "news_data.csv"},
		Window:    WindowConfig{Days: 1, Timezone: defaultTimezone, location: tz},
		NER: NERConfig{
			Kind:    RecognizerRules,
			Workers: 4,
		},
		Scheduler: SchedulerConfig{Interval: "24h"},
		Logging:   LoggingConfig{Level: "info"},
	}
}
