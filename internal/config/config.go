package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"news_builder/internal/models"
)

const (
	ParserPattern = "pattern"
	ParserRSS     = "rss"
)

// Config хранит список лент и параметры сборки news.json.
type Config struct {
	Feeds             []models.FeedSource `json:"feeds"`
	OutputPath        string              `json:"output_path"`
	MaxItems          int                 `json:"max_items"`
	HoursWindow       int                 `json:"hours_window"`
	UserAgent         string              `json:"user_agent"`
	Accept            string              `json:"accept"`
	MirrorBase        string              `json:"mirror_base"`
	DefaultSource     string              `json:"default_source"`
	RequestTimeout    int                 `json:"request_timeout"`
	RequestIntervalMs int                 `json:"request_interval_ms"`
	Parser            string              `json:"parser"`
	MetricsFile       string              `json:"metrics_file"`
	DatabaseURL       string              `json:"database_url"`
}

// Default возвращает конфигурацию, с которой задача работает без файла настроек.
func Default() *Config {
	return &Config{
		Feeds: []models.FeedSource{
			{
				Category: "Socorrismo",
				URL: googleNewsQuery(
					`socorrismo OR "salvamento acuático" OR "rescate acuático" OR lifeguard OR "seguridad acuática"`,
				),
			},
			{
				Category: "Deporte",
				URL:      googleNewsQuery(`deporte OR natación OR triatlón OR "aguas abiertas"`),
			},
		},
		OutputPath:     "./assets/news.json",
		MaxItems:       12,
		HoursWindow:    168,
		UserAgent:      "ElitePRO-News-Bot/1.0",
		Accept:         "application/rss+xml, application/xml;q=0.9,*/*;q=0.8",
		MirrorBase:     "https://r.jina.ai/",
		DefaultSource:  "Google News",
		RequestTimeout: 30,
		Parser:         ParserPattern,
	}
}

func googleNewsQuery(q string) string {
	return "https://news.google.com/rss/search?q=" + url.QueryEscape(q) + "&hl=es&gl=ES&ceid=ES:es"
}

// Window возвращает окно актуальности новостей.
func (cfg *Config) Window() time.Duration {
	return time.Duration(cfg.HoursWindow) * time.Hour
}

// Timeout возвращает таймаут одного HTTP-запроса.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.RequestTimeout) * time.Second
}

// RequestInterval возвращает минимальную паузу между исходящими запросами.
func (cfg *Config) RequestInterval() time.Duration {
	return time.Duration(cfg.RequestIntervalMs) * time.Millisecond
}

// Validate проверяет, что все ленты и зеркало — валидные URL, а числовые параметры положительны.
func (cfg *Config) Validate() error {
	if len(cfg.Feeds) == 0 {
		return errors.New("at least one feed is required")
	}
	for _, f := range cfg.Feeds {
		if f.Category == "" {
			return fmt.Errorf("feed %s has no category", f.URL)
		}
		if _, err := url.ParseRequestURI(f.URL); err != nil {
			return fmt.Errorf("invalid RSS URL: %s", f.URL)
		}
	}
	if _, err := url.ParseRequestURI(cfg.MirrorBase); err != nil {
		return fmt.Errorf("invalid mirror URL: %s", cfg.MirrorBase)
	}
	if cfg.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	if cfg.MaxItems < 1 {
		return errors.New("max items must be ≥ 1")
	}
	if cfg.HoursWindow < 1 {
		return errors.New("hours window must be ≥ 1")
	}
	if cfg.RequestTimeout < 1 {
		return errors.New("request timeout must be ≥ 1 second")
	}
	if cfg.RequestIntervalMs < 0 {
		return errors.New("request interval must not be negative")
	}
	switch cfg.Parser {
	case ParserPattern, ParserRSS:
	default:
		return fmt.Errorf("unknown parser %q", cfg.Parser)
	}
	return nil
}

// LoadConfig читает JSON-файл по пути path поверх значений по умолчанию.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
