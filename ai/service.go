package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NethermindEth/jarvis-gateway/core"
	"github.com/NethermindEth/jarvis-gateway/metrics"
)

const (
	// DefaultProbeTimeout bounds the liveness check made at construction.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultCallTimeout bounds every probe, completion and model listing after startup.
	DefaultCallTimeout = 60 * time.Second
)

// Options configures NewService.
type Options struct {
	Model        string
	Endpoint     string
	ProbeTimeout time.Duration
	CallTimeout  time.Duration
	Logger       *zap.Logger
	// Runtime overrides the Ollama runtime built from Endpoint.
	Runtime Runtime
	// HTTPClient is handed to the Ollama runtime when Runtime is nil.
	HTTPClient *http.Client
}

// Service answers chat messages with the model runtime when it responds and
// with an echo of the message otherwise. It holds no mutable state after
// construction and is safe for concurrent use.
type Service struct {
	personality core.PersonalityLoad
	runtime     Runtime // nil when the runtime was unreachable at startup
	model       string
	endpoint    string
	callTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewService probes the runtime once with a bounded timeout. When the probe
// fails the service runs in echo-only mode for the rest of the process.
func NewService(ctx context.Context, personality core.PersonalityLoad, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultOllamaURL
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}

	s := &Service{
		personality: personality,
		model:       opts.Model,
		endpoint:    opts.Endpoint,
		callTimeout: opts.CallTimeout,
		logger:      logger,
		now:         time.Now,
	}

	runtime := opts.Runtime
	if runtime == nil {
		runtime = NewOllamaRuntime(opts.Endpoint, opts.HTTPClient)
	}

	probeCtx, cancel := context.WithTimeout(ctx, opts.ProbeTimeout)
	defer cancel()
	if _, err := listModels(probeCtx, runtime); err != nil {
		logger.Warn("Model runtime not available, running in echo mode",
			zap.String("endpoint", s.endpoint), zap.Error(err))
		return s
	}

	s.runtime = runtime
	logger.Info("Model runtime client initialized",
		zap.String("endpoint", s.endpoint),
		zap.String("model", s.model),
		zap.String("personality", personality.Config.Name()))
	return s
}

// Personality returns the loaded personality config.
func (s *Service) Personality() core.PersonalityConfig {
	return s.personality.Config
}

// Model returns the configured model identifier.
func (s *Service) Model() string {
	return s.model
}

// IsAvailable probes the runtime on every call. Without a runtime handle it
// returns false without touching the network.
func (s *Service) IsAvailable(ctx context.Context) bool {
	if s.runtime == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if _, err := listModels(ctx, s.runtime); err != nil {
		metrics.RuntimeProbes.WithLabelValues("error").Inc()
		s.logger.Warn("AI service not available", zap.Error(err))
		return false
	}
	metrics.RuntimeProbes.WithLabelValues("ok").Inc()
	return true
}

// listModels calls rt.ListModels and reports a panic as an error.
func listModels(ctx context.Context, rt Runtime) (models []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			models, err = nil, fmt.Errorf("runtime panic: %v", r)
		}
	}()
	return rt.ListModels(ctx)
}

// generation is the outcome of one attempt at a model completion.
type generation struct {
	content string
	err     error
}

func (g generation) succeeded() bool {
	return g.err == nil && g.content != ""
}

// GenerateResponse answers message. It always returns a result; runtime
// failures only show up as ModeEcho.
func (s *Service) GenerateResponse(ctx context.Context, message string) core.ChatResult {
	name := s.personality.Config.Name()

	if s.runtime != nil {
		outcome := s.attemptGeneration(ctx, message)
		if outcome.succeeded() {
			metrics.ChatResponses.WithLabelValues(string(core.ModeAI)).Inc()
			return core.ChatResult{
				Response:    outcome.content,
				Mode:        core.ModeAI,
				Model:       s.model,
				Personality: name,
				Timestamp:   s.now(),
			}
		}
		if outcome.err != nil {
			s.logger.Error("AI generation failed, falling back to echo", zap.Error(outcome.err))
		} else {
			s.logger.Warn("AI generation returned empty content, falling back to echo")
		}
	}

	metrics.ChatResponses.WithLabelValues(string(core.ModeEcho)).Inc()
	return core.ChatResult{
		Response:    fmt.Sprintf("Echo from %s: %s", name, message),
		Mode:        core.ModeEcho,
		Model:       core.FallbackModel,
		Personality: name,
		Timestamp:   s.now(),
	}
}

func (s *Service) attemptGeneration(ctx context.Context, message string) (outcome generation) {
	defer func() {
		if r := recover(); r != nil {
			outcome = generation{err: fmt.Errorf("runtime panic: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	messages := []Message{
		{Role: RoleSystem, Content: core.BuildSystemPrompt(s.personality.Config)},
		{Role: RoleUser, Content: message},
	}
	content, err := s.runtime.Chat(ctx, s.model, messages)
	return generation{content: content, err: err}
}

// GetStatus reports the live runtime state. Model enumeration is best effort;
// when it fails AvailableModels is left empty.
func (s *Service) GetStatus(ctx context.Context) core.ServiceStatus {
	available := s.IsAvailable(ctx)
	cfg := s.personality.Config

	status := core.ServiceStatus{
		AIAvailable:     available,
		Model:           core.UnavailableModel,
		Mode:            core.ModeEcho,
		RuntimeEndpoint: s.endpoint,
		Personality: core.PersonalityStatus{
			Name:         cfg.Name(),
			DisplayName:  cfg.DisplayName(),
			ConfigLoaded: s.personality.FromFile(),
		},
	}
	if !available {
		return status
	}

	status.Model = s.model
	status.Mode = core.ModeAI

	listCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	models, err := listModels(listCtx, s.runtime)
	if err != nil {
		s.logger.Debug("Listing models failed", zap.Error(err))
		return status
	}
	status.AvailableModels = models
	return status
}
