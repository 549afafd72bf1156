package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the gateway settings read from the environment.
type Config struct {
	Addr            string
	OllamaURL       string
	Model           string
	CallTimeout     time.Duration
	ProbeTimeout    time.Duration
	PersonalityPath string
	NATSURL         string
	LogLevel        string
	LogFormat       string
	GinMode         string
}

// Default returns the settings used when nothing is set
func Default() Config {
	return Config{
		Addr:         ":8000",
		OllamaURL:    "http://localhost:11434",
		Model:        "llama3.1:8b",
		CallTimeout:  60 * time.Second,
		ProbeTimeout: 5 * time.Second,
		LogLevel:     "info",
		LogFormat:    "json",
		GinMode:      "release",
	}
}

// LoadDotEnv reads the given .env files (".env" when none are named) into the
// process environment. Variables already set are not overridden. A missing
// file is reported through the returned bool rather than an error.
func LoadDotEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return false, nil
	}
	if err := godotenv.Load(present...); err != nil {
		return false, fmt.Errorf("load env files: %w", err)
	}
	return true, nil
}

// FromEnv overlays environment variables on top of Default.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %s", key, v)
		}
		*dst = d
		return nil
	}

	str("JARVIS_ADDR", &cfg.Addr)
	str("OLLAMA_URL", &cfg.OllamaURL)
	str("OLLAMA_MODEL", &cfg.Model)
	str("JARVIS_PERSONALITY_PATH", &cfg.PersonalityPath)
	str("NATS_URL", &cfg.NATSURL)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("GIN_MODE", &cfg.GinMode)

	if err := dur("OLLAMA_TIMEOUT", &cfg.CallTimeout); err != nil {
		return cfg, err
	}
	if err := dur("OLLAMA_PROBE_TIMEOUT", &cfg.ProbeTimeout); err != nil {
		return cfg, err
	}
	return cfg, nil
}
