// Package config reads service settings from the environment, optionally
// preloaded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Admin holds the single admin credential and session settings.
type Admin struct {
	Email         string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
}

// GenAI configures the generative content assistant.
type GenAI struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
	Retries    int
}

// Config is the full service configuration.
type Config struct {
	Port            string
	LogLevel        string
	Location        *time.Location
	Storage         string
	DefaultCapacity int
	Database        Database
	Admin           Admin
	GenAI           GenAI
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	tz := getEnv("TIMEZONE", "Europe/Istanbul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("timezone %q: %w", tz, err)
	}

	storage := strings.ToLower(getEnv("STORAGE", StorageMemory))
	if storage != StorageMemory && storage != StoragePostgres {
		return Config{}, fmt.Errorf("unknown storage %q (want %s or %s)", storage, StorageMemory, StoragePostgres)
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Location:        loc,
		Storage:         storage,
		DefaultCapacity: getInt("DEFAULT_CAPACITY", 50),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "urge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Admin: Admin{
			Email:         strings.ToLower(getEnv("ADMIN_EMAIL", "admin@itso.org.tr")),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SessionTTL:    time.Duration(getInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		GenAI: GenAI{
			APIKey:     getEnv("GENAI_API_KEY", ""),
			BaseURL:    getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			TextModel:  getEnv("GENAI_TEXT_MODEL", "gemini-2.5-flash"),
			ImageModel: getEnv("GENAI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			Timeout:    time.Duration(getInt("GENAI_TIMEOUT_SECONDS", 30)) * time.Second,
			Retries:    getInt("GENAI_RETRIES", 0),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
