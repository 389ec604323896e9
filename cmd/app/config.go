package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	LogLevel   string `yaml:"logLevel"`
	CDNBaseURL string `yaml:"cdnBaseUrl"`

	Notify   NotifyConfig    `yaml:"notify"`
	Accounts []AccountConfig `yaml:"accounts"`
}

type NotifyConfig struct {
	WebhookURL string         `yaml:"webhookUrl"`
	Telegram   TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatId"`
}

// AccountConfig carries ready-to-use credentials: the cookie is a
// decrypted session string produced by the account store.
type AccountConfig struct {
	Nickname   string   `yaml:"nickname"`
	Username   string   `yaml:"username"`
	Cookie     string   `yaml:"cookie"`
	Games      []string `yaml:"games"`
	WebhookURL string   `yaml:"webhookUrl"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.SetDefault("logLevel", "info")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
