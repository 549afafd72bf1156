package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NethermindEth/jarvis-gateway/config"
)

var (
	verbose  bool
	envFiles []string

	appConfig config.Config
	logger    = zap.NewNop()
)

// BindGlobalFlags registers the flags shared by every command.
func BindGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default: .env)")
}

// Setup loads .env and the environment, then builds the logger.
func Setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadDotEnv(envFiles...)
	if err != nil {
		return err
	}

	appConfig, err = config.FromEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	built, err := newLogger(appConfig.LogLevel, appConfig.LogFormat, verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = built
	if !loaded {
		logger.Debug(".env file not found, using process environment")
	}
	return nil
}

// Teardown flushes buffered log entries.
func Teardown(cmd *cobra.Command, args []string) {
	_ = logger.Sync()
}

func newLogger(level, format string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
