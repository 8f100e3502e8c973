package config

import (
	"time"

	"golang-jobs-scryper/pkg/config"
)

// Source holds configuration for the careers-search API client.
type Source struct {
	BaseURL             string        `mapstructure:"base_url"`
	ApplyBaseURL        string        `mapstructure:"apply_base_url"`
	Locale              string        `mapstructure:"locale"`
	Location            string        `mapstructure:"location"`
	Professions         []string      `mapstructure:"professions"`
	Disciplines         []string      `mapstructure:"disciplines"`
	RoleTypes           []string      `mapstructure:"role_types"`
	EmploymentTypes     []string      `mapstructure:"employment_types"`
	PageSize            int           `mapstructure:"page_size"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	Feeds               []string      `mapstructure:"feeds"`
}

// Retry holds the retry policy for webhook delivery.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	Factor      float64       `mapstructure:"factor"`
}

// Notifier holds configuration for the chat webhook notifier.
type Notifier struct {
	WebhookURL        string        `mapstructure:"webhook_url"`
	HoursBack         float64       `mapstructure:"hours_back"`
	Title             string        `mapstructure:"title"`
	ImageURL          string        `mapstructure:"image_url"`
	InterMessageDelay time.Duration `mapstructure:"inter_message_delay"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	Retry             Retry         `mapstructure:"retry"`
}

// Telegram holds configuration for the Telegram digest/alert channel.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Output holds configuration for the CSV exporter.
type Output struct {
	File string `mapstructure:"file"`
}

// Watch holds configuration for scheduled watch mode.
type Watch struct {
	Schedule string        `mapstructure:"schedule"`
	Pages    int           `mapstructure:"pages"`
	DedupTTL time.Duration `mapstructure:"dedup_ttl"`
}

// Config holds the full configuration for the scraper.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	Source   Source        `mapstructure:"source"`
	Output   Output        `mapstructure:"output"`
	Notifier Notifier      `mapstructure:"notifier"`
	Telegram Telegram      `mapstructure:"telegram"`
	Watch    Watch         `mapstructure:"watch"`
}

// Load loads the scraper configuration from the given path and applies
// defaults for values the file leaves unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Source.PageSize <= 0 {
		c.Source.PageSize = 20
	}
	if c.Source.MaxRequestPerMinute <= 0 {
		c.Source.MaxRequestPerMinute = 30
	}
	if c.Source.RequestTimeout <= 0 {
		c.Source.RequestTimeout = 30 * time.Second
	}
	if c.Notifier.HoursBack <= 0 {
		c.Notifier.HoursBack = 4
	}
	if c.Notifier.Title == "" {
		c.Notifier.Title = "New Jobs Alert"
	}
	if c.Notifier.InterMessageDelay <= 0 {
		c.Notifier.InterMessageDelay = 3 * time.Second
	}
	if c.Notifier.RequestTimeout <= 0 {
		c.Notifier.RequestTimeout = 30 * time.Second
	}
	if c.Notifier.Retry.MaxAttempts <= 0 {
		c.Notifier.Retry.MaxAttempts = 3
	}
	if c.Notifier.Retry.BaseDelay <= 0 {
		c.Notifier.Retry.BaseDelay = 2 * time.Second
	}
	if c.Notifier.Retry.Factor <= 0 {
		c.Notifier.Retry.Factor = 2
	}
	if c.Output.File == "" {
		c.Output.File = "jobs.csv"
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = "0 */4 * * *"
	}
	if c.Watch.Pages <= 0 {
		c.Watch.Pages = 1
	}
	if c.Watch.DedupTTL <= 0 {
		c.Watch.DedupTTL = 72 * time.Hour
	}
}
