package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/efrenfb/telegram-inbox-bot/internal/shared/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// DefaultMaxUploadBytes is the upload size cap applied when the config
// does not override it (20 MiB, the Bot API download limit).
const DefaultMaxUploadBytes = 20 * 1024 * 1024

type Config struct {
	TelegramBotToken string `koanf:"telegram_bot_token"`
	TelegramAPIURL   string `koanf:"telegram_api_url"`
	AdminUserID      int64  `koanf:"admin_user_id"`
	AutoForward      bool   `koanf:"auto_forward"`
	DownloadPath     string `koanf:"download_path"`
	KeywordsPath     string `koanf:"keywords_path"`
	MaxUploadBytes   int64  `koanf:"max_upload_bytes"`
	HTTPPort         string `koanf:"http_port"`
	AppEnv           AppEnv `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("telegram_api_url") {
		k.Set("telegram_api_url", "https://api.telegram.org")
	}
	if !k.Exists("download_path") {
		k.Set("download_path", "./downloads")
	}
	if !k.Exists("keywords_path") {
		k.Set("keywords_path", "keywords.json")
	}
	if !k.Exists("max_upload_bytes") {
		k.Set("max_upload_bytes", DefaultMaxUploadBytes)
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Coerce values that may arrive as strings from env vars
	cfg.AdminUserID = k.Int64("admin_user_id")
	cfg.MaxUploadBytes = k.Int64("max_upload_bytes")
	cfg.AutoForward = ParseForwardFlag(k.Get("auto_forward"))

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	// Validate required fields
	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}

	return &cfg, nil
}

// ParseForwardFlag interprets the auto_forward value from any config source.
// Unset means enabled; strings accept 1/true/yes/on in any case.
func ParseForwardFlag(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	default:
		return true
	}
}
