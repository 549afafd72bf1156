package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/jarvis-gateway/ai"
	"github.com/NethermindEth/jarvis-gateway/api"
	"github.com/NethermindEth/jarvis-gateway/api/handlers"
	"github.com/NethermindEth/jarvis-gateway/communication"
	"github.com/NethermindEth/jarvis-gateway/config"
	"github.com/NethermindEth/jarvis-gateway/core"
)

var (
	serveAddr        string
	serveOllamaURL   string
	serveModel       string
	servePersonality string
	serveNATSURL     string
)

// ServeCmd runs the HTTP gateway
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway",
	Long:  `Start the HTTP gateway. Flags override the matching environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := applyServeFlags(cmd, appConfig)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	ServeCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (env JARVIS_ADDR, default :8000)")
	ServeCmd.Flags().StringVar(&serveOllamaURL, "ollama-url", "", "Ollama base URL (env OLLAMA_URL)")
	ServeCmd.Flags().StringVar(&serveModel, "model", "", "Model name (env OLLAMA_MODEL)")
	ServeCmd.Flags().StringVar(&servePersonality, "personality", "", "Personality file tried before the default locations")
	ServeCmd.Flags().StringVar(&serveNATSURL, "nats-url", "", "Publish events to this NATS server (env NATS_URL)")
}

func applyServeFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = serveAddr
	}
	if flags.Changed("ollama-url") {
		cfg.OllamaURL = serveOllamaURL
	}
	if flags.Changed("model") {
		cfg.Model = serveModel
	}
	if flags.Changed("personality") {
		cfg.PersonalityPath = servePersonality
	}
	if flags.Changed("nats-url") {
		cfg.NATSURL = serveNATSURL
	}
	return cfg
}

// personalityPaths puts an explicitly configured file ahead of the defaults.
func personalityPaths(explicit string) []string {
	paths := core.DefaultPersonalityPaths()
	if explicit == "" {
		return paths
	}
	return append([]string{explicit}, paths...)
}

func serve(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.GinMode)

	personality := core.LoadPersonality(logger.Named("personality"), personalityPaths(cfg.PersonalityPath)...)

	service := ai.NewService(ctx, personality, ai.Options{
		Model:        cfg.Model,
		Endpoint:     cfg.OllamaURL,
		ProbeTimeout: cfg.ProbeTimeout,
		CallTimeout:  cfg.CallTimeout,
		Logger:       logger.Named("ai"),
	})

	eventsLogger := logger.Named("events")
	hub := communication.NewHub(eventsLogger)
	sinks := []communication.Publisher{hub}
	if cfg.NATSURL != "" {
		publisher, err := communication.NewNATSPublisher(cfg.NATSURL, eventsLogger)
		if err != nil {
			logger.Warn("NATS unavailable, events go to websocket clients only", zap.Error(err))
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}
	events := communication.NewFanout(eventsLogger, sinks...)

	h := handlers.New(service, events, hub, logger.Named("api"))
	router := api.NewRouter(h, logger.Named("http"))
	server := api.NewServer(cfg.Addr, router, logger.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return server.StartServer(gctx)
	})
	return g.Wait()
}
