package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		Path     string `yaml:"path"`
		Encoding string `yaml:"encoding"`
	} `yaml:"questions"`
	Telegram struct {
		Token       string `yaml:"token"`
		AdminChatID int64  `yaml:"admin_chat_id"`
	} `yaml:"telegram"`
	VK struct {
		Token   string `yaml:"token"`
		GroupID int    `yaml:"group_id"`
	} `yaml:"vk"`
}

// Load reads YAML config from path. Secrets may instead come from the
// environment (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, VK_TOKEN, REDIS_PASSWORD),
// which overrides the file.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.AdminChatID = id
		}
	}
	if v := os.Getenv("VK_TOKEN"); v != "" {
		cfg.VK.Token = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
