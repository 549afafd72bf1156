package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/NethermindEth/jarvis-gateway/core"
	"github.com/NethermindEth/jarvis-gateway/metrics"
)

var errRefused = errors.New("connection refused")

func newTestService(t *testing.T, rt *mockRuntime, personality core.PersonalityConfig) *Service {
	t.Helper()
	return NewService(context.Background(), core.PersonalityLoad{Config: personality}, Options{
		Model:    "llama3.1:8b",
		Endpoint: "http://ollama.test:11434",
		Logger:   zaptest.NewLogger(t),
		Runtime:  rt,
	})
}

func unreachable() *mockRuntime {
	return &mockRuntime{listResults: []listResult{{err: errRefused}}}
}

func TestNewService_UnreachableRuntimeStartsInEchoMode(t *testing.T) {
	rt := unreachable()
	svc := newTestService(t, rt, core.DefaultPersonality())

	assert.Nil(t, svc.runtime)
	list, chat := rt.calls()
	assert.Equal(t, 1, list, "startup probe")
	assert.Zero(t, chat)
}

func TestIsAvailable_NoHandleSkipsNetwork(t *testing.T) {
	rt := unreachable()
	svc := newTestService(t, rt, core.DefaultPersonality())

	for i := 0; i < 3; i++ {
		assert.False(t, svc.IsAvailable(context.Background()))
	}
	list, _ := rt.calls()
	assert.Equal(t, 1, list, "only the startup probe touched the runtime")
}

func TestIsAvailable_ProbesEveryCall(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{
		{models: []string{"llama3.1:8b"}},
		{models: []string{"llama3.1:8b"}},
		{err: errRefused},
		{models: []string{"llama3.1:8b"}},
	}}
	svc := newTestService(t, rt, core.DefaultPersonality())

	assert.True(t, svc.IsAvailable(context.Background()))
	assert.False(t, svc.IsAvailable(context.Background()))
	assert.True(t, svc.IsAvailable(context.Background()))

	list, _ := rt.calls()
	assert.Equal(t, 4, list)
}

func TestGenerateResponse_EchoWhenUnavailable(t *testing.T) {
	svc := newTestService(t, unreachable(), core.DefaultPersonality())

	before := testutil.ToFloat64(metrics.ChatResponses.WithLabelValues("echo"))
	result := svc.GenerateResponse(context.Background(), "X")

	assert.Equal(t, core.ModeEcho, result.Mode)
	assert.Equal(t, "Echo from Jarvis: X", result.Response)
	assert.Equal(t, core.FallbackModel, result.Model)
	assert.Equal(t, "Jarvis", result.Personality)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ChatResponses.WithLabelValues("echo")))
}

func TestGenerateResponse_EchoUsesConfiguredName(t *testing.T) {
	cfg := core.DefaultPersonality()
	cfg.Identity.Name = "Friday"
	svc := newTestService(t, unreachable(), cfg)

	result := svc.GenerateResponse(context.Background(), "Hello")
	assert.Equal(t, "Echo from Friday: Hello", result.Response)
	assert.Equal(t, "Friday", result.Personality)
}

func TestGenerateResponse_AI(t *testing.T) {
	cfg := core.DefaultPersonality()
	cfg.Personality.Tone = "formal"
	rt := &mockRuntime{reply: "At your service."}
	svc := newTestService(t, rt, cfg)

	result := svc.GenerateResponse(context.Background(), "Status report")

	assert.Equal(t, core.ModeAI, result.Mode)
	assert.Equal(t, "At your service.", result.Response)
	assert.Equal(t, "llama3.1:8b", result.Model)
	assert.Equal(t, "Jarvis", result.Personality)

	require.Len(t, rt.lastMessages, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: core.BuildSystemPrompt(cfg)}, rt.lastMessages[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "Status report"}, rt.lastMessages[1])
	assert.Equal(t, "llama3.1:8b", rt.lastModel)
}

func TestGenerateResponse_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		rt   *mockRuntime
	}{
		{name: "chat error", rt: &mockRuntime{chatErr: errors.New("model not found")}},
		{name: "empty content", rt: &mockRuntime{reply: ""}},
		{name: "panic", rt: &mockRuntime{panicOnChat: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.rt, core.DefaultPersonality())

			result := svc.GenerateResponse(context.Background(), "ping")

			assert.Equal(t, core.ModeEcho, result.Mode)
			assert.Equal(t, "Echo from Jarvis: ping", result.Response)
			assert.Equal(t, core.FallbackModel, result.Model)
			_, chat := tt.rt.calls()
			assert.Equal(t, 1, chat)
		})
	}
}

func TestGenerateResponse_TimestampAtConstruction(t *testing.T) {
	svc := newTestService(t, unreachable(), core.DefaultPersonality())
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	assert.Equal(t, fixed, svc.GenerateResponse(context.Background(), "x").Timestamp)
}

func TestGenerateResponse_Concurrent(t *testing.T) {
	rt := &mockRuntime{reply: "ok"}
	svc := newTestService(t, rt, core.DefaultPersonality())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := svc.GenerateResponse(context.Background(), "hi")
			assert.Equal(t, core.ModeAI, result.Mode)
			assert.True(t, svc.IsAvailable(context.Background()))
		}()
	}
	wg.Wait()

	_, chat := rt.calls()
	assert.Equal(t, 50, chat)
}

func TestGetStatus_Unavailable(t *testing.T) {
	svc := newTestService(t, unreachable(), core.DefaultPersonality())

	status := svc.GetStatus(context.Background())

	assert.False(t, status.AIAvailable)
	assert.Equal(t, core.UnavailableModel, status.Model)
	assert.Equal(t, core.ModeEcho, status.Mode)
	assert.Equal(t, "http://ollama.test:11434", status.RuntimeEndpoint)
	assert.Equal(t, "Jarvis", status.Personality.Name)
	assert.Equal(t, "J.A.R.V.I.S.", status.Personality.DisplayName)
	assert.False(t, status.Personality.ConfigLoaded)
	assert.Nil(t, status.AvailableModels)
}

func TestGetStatus_AvailableListsModels(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{
		{models: []string{"llama3.1:8b", "mistral:7b"}},
	}}
	svc := NewService(context.Background(),
		core.PersonalityLoad{Config: core.DefaultPersonality(), Source: "jarvis_personality.json"},
		Options{Model: "llama3.1:8b", Runtime: rt, Logger: zaptest.NewLogger(t)})

	status := svc.GetStatus(context.Background())

	assert.True(t, status.AIAvailable)
	assert.Equal(t, "llama3.1:8b", status.Model)
	assert.Equal(t, core.ModeAI, status.Mode)
	assert.Equal(t, DefaultOllamaURL, status.RuntimeEndpoint)
	assert.True(t, status.Personality.ConfigLoaded)
	assert.Equal(t, []string{"llama3.1:8b", "mistral:7b"}, status.AvailableModels)
}

func TestGetStatus_ModelListingFailureIsSwallowed(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{
		{models: []string{"llama3.1:8b"}}, // startup
		{models: []string{"llama3.1:8b"}}, // availability probe
		{err: errors.New("decode failure")},
	}}
	svc := newTestService(t, rt, core.DefaultPersonality())

	status := svc.GetStatus(context.Background())

	assert.True(t, status.AIAvailable)
	assert.Equal(t, core.ModeAI, status.Mode)
	assert.Nil(t, status.AvailableModels)
}

func TestNewService_PanickingRuntimeStartsInEchoMode(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{{panics: true}}}

	var svc *Service
	require.NotPanics(t, func() { svc = newTestService(t, rt, core.DefaultPersonality()) })
	assert.Nil(t, svc.runtime)
	assert.Equal(t, core.ModeEcho, svc.GenerateResponse(context.Background(), "hi").Mode)
}

func TestGetStatus_PanickingRuntimeReportsUnavailable(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{
		{models: []string{"llama3.1:8b"}}, // startup
		{panics: true},
	}}
	svc := newTestService(t, rt, core.DefaultPersonality())

	var status core.ServiceStatus
	require.NotPanics(t, func() { status = svc.GetStatus(context.Background()) })
	assert.False(t, status.AIAvailable)
	assert.Equal(t, core.ModeEcho, status.Mode)
	assert.Equal(t, core.UnavailableModel, status.Model)
}

func TestGetStatus_PanickingModelListingIsSwallowed(t *testing.T) {
	rt := &mockRuntime{listResults: []listResult{
		{models: []string{"llama3.1:8b"}}, // startup
		{models: []string{"llama3.1:8b"}}, // availability probe
		{panics: true},
	}}
	svc := newTestService(t, rt, core.DefaultPersonality())

	var status core.ServiceStatus
	require.NotPanics(t, func() { status = svc.GetStatus(context.Background()) })
	assert.True(t, status.AIAvailable)
	assert.Nil(t, status.AvailableModels)
}

func TestIsAvailable_RespectsCallTimeout(t *testing.T) {
	rt := &blockingRuntime{}
	svc := &Service{
		runtime:     rt,
		callTimeout: 20 * time.Millisecond,
		logger:      zaptest.NewLogger(t),
		now:         time.Now,
	}

	start := time.Now()
	assert.False(t, svc.IsAvailable(context.Background()))
	assert.Less(t, time.Since(start), 2*time.Second)
}

// blockingRuntime waits for the context before failing.
type blockingRuntime struct{}

func (blockingRuntime) ListModels(ctx context.Context) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingRuntime) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
