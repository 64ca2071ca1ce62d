package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	KrakenURL     string
	KrakenKeyFile string
	KrakenTimeout time.Duration
	QuoteAsset    string
	HTTPHost      string
	HTTPPort      string
	AdminAPIKey   string
	LogLevel      slog.Level
	LogFormat     string
	LogFile       string

	ExportInterval         time.Duration
	ExportSheetID          string
	ExportSheetCredentials string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		KrakenURL:     envOrDefault("KRAKEN_API_URL", "https://api.kraken.com"),
		KrakenKeyFile: envOrDefault("KRAKEN_KEY_FILE", "kraken.key"),
		KrakenTimeout: envOrDefaultDuration("KRAKEN_TIMEOUT", 30*time.Second),
		QuoteAsset:    envOrDefault("QUOTE_ASSET", "ZUSD"),
		HTTPHost:      envOrDefault("HTTP_HOST", "127.0.0.1"),
		HTTPPort:      envOrDefault("HTTP_PORT", "8501"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		LogLevel:      envOrDefaultLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat:     envOrDefault("LOG_FORMAT", "text"),
		LogFile:       os.Getenv("LOG_FILE"),

		ExportInterval:         envOrDefaultDuration("EXPORT_INTERVAL", 0),
		ExportSheetID:          os.Getenv("EXPORT_SHEET_ID"),
		ExportSheetCredentials: os.Getenv("EXPORT_SHEET_CREDENTIALS"),
	}
}

// LoadDotEnv loads variables from path into the environment. A missing file is not an error;
// variables already set win over the file.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return c.HTTPHost + ":" + c.HTTPPort
}

// NewLogger builds the process logger. When LogFile is set, output goes to a rotating file
// instead of stderr.
func (c Config) NewLogger(stderr io.Writer) *slog.Logger {
	out := stderr
	if c.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}

	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return level
	}
	return defaultVal
}
