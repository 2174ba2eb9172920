package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Airtable AirtableConfig
	Email    EmailConfig
	NATS     NATSConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type AirtableConfig struct {
	APIKey        string
	BaseID        string
	BaseURL       string // overridable for tests
	GuestsTable   string
	FamiliesTable string
}

type EmailConfig struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
	DevMode       bool // print emails to logs instead of sending
}

type NATSConfig struct {
	URL string // empty disables event publishing
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Airtable: AirtableConfig{
			APIKey:        getEnv("AIRTABLE_API_KEY", ""),
			BaseID:        getEnv("AIRTABLE_BASE_ID", ""),
			BaseURL:       getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
			GuestsTable:   getEnv("AIRTABLE_GUESTS_TABLE", "Guests"),
			FamiliesTable: getEnv("AIRTABLE_FAMILIES_TABLE", "Families"),
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "Wedding RSVP"),
			FromEmail:     getEnv("MAIL_FROM_EMAIL", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
