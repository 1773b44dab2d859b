// Package config loads service settings from defaults, an optional TOML file,
// an optional .env file and the process environment, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all FAM settings.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Email   EmailConfig   `toml:"email"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string `toml:"port"`
}

// StorageConfig holds the Azure Storage endpoints and resource names.
type StorageConfig struct {
	BlobServiceURL      string `toml:"blob_service_url,omitempty"`
	QueueServiceURL     string `toml:"queue_service_url,omitempty"`
	TableServiceURL     string `toml:"table_service_url,omitempty"`
	StatementsContainer string `toml:"statements_container"`
	StatementQueue      string `toml:"statement_queue"`
	NoticeQueue         string `toml:"notice_queue"`
	ContactsTable       string `toml:"contacts_table"`
}

// EmailConfig holds Azure Communication Services settings.
type EmailConfig struct {
	Endpoint    string `toml:"endpoint,omitempty"`
	SenderEmail string `toml:"sender_email,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Storage: StorageConfig{
			StatementsContainer: "statements",
			StatementQueue:      "statement-jobs",
			NoticeQueue:         "budget-notices",
			ContactsTable:       "GuardianContacts",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path names an optional TOML file; a missing
// file is not an error. A .env file in the working directory is loaded when present.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("FUNCTIONS_CUSTOMHANDLER_PORT", cfg.Server.Port)

	cfg.Storage.BlobServiceURL = getEnv("BLOB_SERVICE_URL", cfg.Storage.BlobServiceURL)
	cfg.Storage.QueueServiceURL = getEnv("QUEUE_SERVICE_URL", cfg.Storage.QueueServiceURL)
	cfg.Storage.TableServiceURL = getEnv("TABLE_SERVICE_URL", cfg.Storage.TableServiceURL)
	cfg.Storage.StatementsContainer = getEnv("STATEMENTS_CONTAINER", cfg.Storage.StatementsContainer)
	cfg.Storage.StatementQueue = getEnv("STATEMENT_QUEUE", cfg.Storage.StatementQueue)
	cfg.Storage.NoticeQueue = getEnv("NOTICE_QUEUE", cfg.Storage.NoticeQueue)
	cfg.Storage.ContactsTable = getEnv("CONTACTS_TABLE", cfg.Storage.ContactsTable)

	cfg.Email.Endpoint = getEnv("COMMUNICATION_SERVICES_ENDPOINT", cfg.Email.Endpoint)
	cfg.Email.SenderEmail = getEnv("SENDER_EMAIL", cfg.Email.SenderEmail)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
