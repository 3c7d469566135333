package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Player   PlayerConfig   `yaml:"player"`
	Storage  StorageConfig  `yaml:"storage"`
	Notifier NotifierConfig `yaml:"notifier"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type FeedsConfig struct {
	EnabledSources []string      `yaml:"enabled_sources"`
	Interval       time.Duration `yaml:"interval"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	ChannelsURL    string        `yaml:"channels_url"`
	Manual         SourceConfig  `yaml:"manual"`
	StreamTP       SourceConfig  `yaml:"streamtp"`
	LA14HD         SourceConfig  `yaml:"la14hd"`
	Github         SourceConfig  `yaml:"github"`
	Scrape         ScrapeConfig  `yaml:"scrape"`
}

type SourceConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ScrapeConfig struct {
	PageURL string        `yaml:"page_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type PlayerConfig struct {
	DefaultName string `yaml:"default_name"`
	DefaultLogo string `yaml:"default_logo"`
}

type StorageConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type NotifierConfig struct {
	TelegramBotToken string        `yaml:"telegram_bot_token"`
	TelegramChatID   int64         `yaml:"telegram_chat_id"`
	MinSendInterval  time.Duration `yaml:"min_send_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
