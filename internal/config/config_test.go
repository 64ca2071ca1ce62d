package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"KRAKEN_API_URL", "KRAKEN_KEY_FILE", "KRAKEN_TIMEOUT", "QUOTE_ASSET", "HTTP_HOST", "HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "ADMIN_API_KEY", "EXPORT_INTERVAL", "EXPORT_SHEET_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.KrakenURL != "https://api.kraken.com" {
		t.Errorf("KrakenURL = %q, want default", cfg.KrakenURL)
	}
	if cfg.KrakenKeyFile != "kraken.key" {
		t.Errorf("KrakenKeyFile = %q, want kraken.key", cfg.KrakenKeyFile)
	}
	if cfg.KrakenTimeout != 30*time.Second {
		t.Errorf("KrakenTimeout = %v, want 30s", cfg.KrakenTimeout)
	}
	if cfg.QuoteAsset != "ZUSD" {
		t.Errorf("QuoteAsset = %q, want ZUSD", cfg.QuoteAsset)
	}
	if cfg.Addr() != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8501", cfg.Addr())
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.AdminAPIKey != "" {
		t.Errorf("AdminAPIKey = %q, want empty", cfg.AdminAPIKey)
	}
	if cfg.ExportInterval != 0 {
		t.Errorf("ExportInterval = %v, want 0 (disabled)", cfg.ExportInterval)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KRAKEN_API_URL", "http://localhost:9999")
	t.Setenv("KRAKEN_KEY_FILE", "/etc/kraken/key")
	t.Setenv("KRAKEN_TIMEOUT", "5s")
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_INTERVAL", "15m")
	t.Setenv("EXPORT_SHEET_ID", "sheet-123")

	cfg := Load()

	if cfg.ExportInterval != 15*time.Minute || cfg.ExportSheetID != "sheet-123" {
		t.Errorf("export = %v/%q, want 15m/sheet-123", cfg.ExportInterval, cfg.ExportSheetID)
	}

	if cfg.KrakenURL != "http://localhost:9999" {
		t.Errorf("KrakenURL = %q, want override", cfg.KrakenURL)
	}
	if cfg.KrakenKeyFile != "/etc/kraken/key" {
		t.Errorf("KrakenKeyFile = %q, want override", cfg.KrakenKeyFile)
	}
	if cfg.KrakenTimeout != 5*time.Second {
		t.Errorf("KrakenTimeout = %v, want 5s", cfg.KrakenTimeout)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9090", cfg.Addr())
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("KRAKEN_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg := Load()

	if cfg.KrakenTimeout != 30*time.Second {
		t.Errorf("KrakenTimeout = %v, want default 30s on invalid input", cfg.KrakenTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want default INFO on invalid input", cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QUOTE_ASSET=ZEUR\nHTTP_PORT=7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUOTE_ASSET", "")
	os.Unsetenv("QUOTE_ASSET")
	t.Setenv("HTTP_PORT", "8000")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := Load()
	if cfg.QuoteAsset != "ZEUR" {
		t.Errorf("QuoteAsset = %q, want ZEUR from .env", cfg.QuoteAsset)
	}
	if cfg.HTTPPort != "8000" {
		t.Errorf("HTTPPort = %q, want 8000 (environment wins over .env)", cfg.HTTPPort)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: slog.LevelInfo, LogFormat: "json"}

	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "asset", "XXBT")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"asset":"XXBT"`) {
		t.Errorf("unexpected JSON log output: %s", out)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "krakenboard.log")
	cfg := Config{LogLevel: slog.LevelInfo, LogFile: path}

	cfg.NewLogger(os.Stderr).Info("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want record", data)
	}
}
