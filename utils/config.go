package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort            = "8501"
	DefaultChatAPIEndpoint = "http://localhost:8000/chat"
	DefaultCacheDir        = "cache"
	DefaultMaxVideoSizeGB  = 5
	DefaultExportDir       = "exports"
)

type Config struct {
	Port               string
	ChatAPIEndpoint    string
	ChatAPITimeout     time.Duration
	CacheDir           string
	MaxVideoSizeGB     int
	ExportDir          string
	TranslateSource    string
	TranslateTarget    string
	SessionIdleTimeout time.Duration
}

// LoadConfig reads .env files (missing ones are fine) and then the process
// environment. Variables already set in the environment win over .env values.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		PrintInfo("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("chat_api_endpoint", DefaultChatAPIEndpoint)
	v.SetDefault("chat_api_timeout", "0s")
	v.SetDefault("cache_dir", DefaultCacheDir)
	v.SetDefault("max_video_size_gb", DefaultMaxVideoSizeGB)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("translate_source", "th")
	v.SetDefault("translate_target", "en")
	v.SetDefault("session_idle_timeout", "2h")

	config := &Config{
		Port:               strings.TrimPrefix(v.GetString("port"), ":"),
		ChatAPIEndpoint:    strings.TrimSpace(v.GetString("chat_api_endpoint")),
		ChatAPITimeout:     v.GetDuration("chat_api_timeout"),
		CacheDir:           v.GetString("cache_dir"),
		MaxVideoSizeGB:     v.GetInt("max_video_size_gb"),
		ExportDir:          v.GetString("export_dir"),
		TranslateSource:    v.GetString("translate_source"),
		TranslateTarget:    v.GetString("translate_target"),
		SessionIdleTimeout: v.GetDuration("session_idle_timeout"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	u, err := url.Parse(c.ChatAPIEndpoint)
	if err != nil {
		return fmt.Errorf("invalid CHAT_API_ENDPOINT: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid CHAT_API_ENDPOINT '%s': want an http(s) URL", c.ChatAPIEndpoint)
	}

	if c.CacheDir == "" {
		return fmt.Errorf("CACHE_DIR must not be empty")
	}
	if c.ChatAPITimeout < 0 {
		return fmt.Errorf("CHAT_API_TIMEOUT must not be negative")
	}
	return nil
}
