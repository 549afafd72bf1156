package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PersonalityFileName is the file searched for at each default location.
const PersonalityFileName = "jarvis_personality.json"

// DefaultPersonalityPaths lists where the personality file is looked up, in order:
// project root, service root, then the working directory.
func DefaultPersonalityPaths() []string {
	return []string{
		filepath.Join("..", "..", PersonalityFileName),
		filepath.Join("..", PersonalityFileName),
		PersonalityFileName,
	}
}

type lookupOutcome int

const (
	lookupNotFound lookupOutcome = iota
	lookupFound
	lookupInvalid
)

// PersonalityLoad is the result of LoadPersonality.
type PersonalityLoad struct {
	Config PersonalityConfig
	// Source is the file the config came from, empty when defaults were used.
	Source string
}

// FromFile reports whether the personality was read from disk.
func (l PersonalityLoad) FromFile() bool {
	return l.Source != ""
}

// LoadPersonality resolves the personality config from the first candidate path
// that exists. A candidate that exists but cannot be decoded ends the search with
// the built-in default; later candidates are not consulted. It never fails.
func LoadPersonality(logger *zap.Logger, paths ...string) PersonalityLoad {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(paths) == 0 {
		paths = DefaultPersonalityPaths()
	}

	for _, path := range paths {
		cfg, outcome, err := resolveCandidate(path)
		switch outcome {
		case lookupNotFound:
			continue
		case lookupInvalid:
			logger.Error("Failed to load personality config, using defaults",
				zap.String("path", path), zap.Error(err))
			return PersonalityLoad{Config: DefaultPersonality()}
		case lookupFound:
			logger.Info("Loaded personality config",
				zap.String("path", path), zap.String("name", cfg.Name()))
			return PersonalityLoad{Config: cfg, Source: path}
		}
	}

	logger.Warn("Personality config file not found, using defaults", zap.Strings("searched", paths))
	return PersonalityLoad{Config: DefaultPersonality()}
}

func resolveCandidate(path string) (PersonalityConfig, lookupOutcome, error) {
	if path == "" {
		return PersonalityConfig{}, lookupNotFound, nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return PersonalityConfig{}, lookupNotFound, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return PersonalityConfig{}, lookupInvalid, fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := decodePersonality(path, data)
	if err != nil {
		return PersonalityConfig{}, lookupInvalid, err
	}
	return cfg.withDefaults(), lookupFound, nil
}

func decodePersonality(path string, data []byte) (PersonalityConfig, error) {
	var cfg PersonalityConfig
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, errors.New("personality file is empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode yaml personality: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode json personality: %w", err)
		}
	}
	return cfg, nil
}
