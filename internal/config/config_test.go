package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://www.prnewswire.com", cfg.Source.URL)
	assert.Equal(t, []string{"IBM Systems", "Google", "Meta", "MarketsandMarkets", "wipro"}, cfg.Companies)
	assert.Equal(t, "news_data.csv", cfg.Output.Path)
	assert.Equal(t, 1, cfg.Window.Days)
	assert.Equal(t, "UTC", cfg.Window.Location().String())
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.IntervalDuration())
	assert.Equal(t, "article", cfg.Source.Selectors.Item)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  url: https://news.example.org
companies: ["Acme Corp", "Globex"]
window:
  days: 3
  timezone: Europe/Berlin
ner:
  workers: 2
  gazetteer:
    - text: Acme Corp
      label: ORG
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://news.example.org", cfg.Source.URL)
	assert.Equal(t, "h3", cfg.Source.Selectors.Title, "untouched nested defaults survive")
	assert.Equal(t, []string{"Acme Corp", "Globex"}, cfg.Companies)
	assert.Equal(t, 3, cfg.Window.Days)
	assert.Equal(t, "Europe/Berlin", cfg.Window.Location().String())
	assert.Equal(t, 2, cfg.NER.Workers)
	assert.Equal(t, RecognizerRules, cfg.NER.Kind)
	require.Len(t, cfg.NER.Gazetteer, 1)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "sourse:\n  url: x\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(sourceURLEnv, "https://env.example.org")
	t.Setenv(outputPathEnv, "/tmp/out.csv")
	t.Setenv(telegramTokenEnv, "token")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.org", cfg.Source.URL)
	assert.Equal(t, "/tmp/out.csv", cfg.Output.Path)
	assert.Equal(t, "token", cfg.Notifications.Telegram.BotToken)
}

func TestUnknownTimezoneFallsBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, "window:\n  timezone: Mars/Olympus\n"))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Window.Location().String())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty watch-list", func(c *Config) { c.Companies = nil }, "companies"},
		{"blank company", func(c *Config) { c.Companies = []string{"Google", "   "} }, "companies[1]"},
		{"no url", func(c *Config) { c.Source.URL = "" }, "source.url"},
		{"no output", func(c *Config) { c.Output.Path = " " }, "output.path"},
		{"negative window", func(c *Config) { c.Window.Days = -1 }, "window.days"},
		{"unknown recognizer", func(c *Config) { c.NER.Kind = "spacy" }, "ner.kind"},
		{"http without endpoint", func(c *Config) { c.NER.Kind = RecognizerHTTP }, "ner.endpoint"},
		{"no workers", func(c *Config) { c.NER.Workers = 0 }, "ner.workers"},
		{"bad gazetteer", func(c *Config) { c.NER.Gazetteer = []GazetteerEntry{{Text: "x"}} }, "ner.gazetteer[0]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, domain.ErrInvalidConfig)

			var ice *domain.InvalidConfigError
			require.ErrorAs(t, err, &ice)
			assert.Equal(t, tc.field, ice.Field)
		})
	}
}

func TestIntervalDurationFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 24*time.Hour, SchedulerConfig{Interval: "soon"}.IntervalDuration())
	assert.Equal(t, time.Hour, SchedulerConfig{Interval: "1h"}.IntervalDuration())
	assert.Equal(t, 20*time.Second, SourceConfig{}.Timeout())
}
