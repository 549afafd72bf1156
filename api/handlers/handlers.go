package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NethermindEth/jarvis-gateway/communication"
	"github.com/NethermindEth/jarvis-gateway/core"
)

const (
	// Version is reported by the info, health and status endpoints.
	Version     = "1.1.0"
	ServiceName = "jarvis-backend"

	testPrompt = "Hello, are you working?"
)

// ResponseService is the chat backend the handlers delegate to.
type ResponseService interface {
	IsAvailable(ctx context.Context) bool
	GenerateResponse(ctx context.Context, message string) core.ChatResult
	GetStatus(ctx context.Context) core.ServiceStatus
}

// EventBroadcaster receives an event for every chat reply.
type EventBroadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// Handler serves the gateway's HTTP endpoints.
type Handler struct {
	service ResponseService
	events  EventBroadcaster
	hub     *communication.Hub
	logger  *zap.Logger
}

// New builds a Handler. events and hub may be nil.
func New(service ResponseService, events EventBroadcaster, hub *communication.Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, events: events, hub: hub, logger: logger}
}

// ChatResponse is the body returned by POST /api/chat
type ChatResponse struct {
	Response  string    `json:"response"`
	Mode      core.Mode `json:"mode"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// Root - static service info
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Jarvis AI Assistant Backend",
		"status":   "running",
		"version":  Version,
		"features": []string{"chat", "ai_integration", "fallback_mode"},
		"docs":     "/docs",
	})
}

// Health - liveness plus the live runtime status
func (h *Handler) Health(c *gin.Context) {
	status := h.service.GetStatus(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        ServiceName,
		"version":        Version,
		"ai_integration": status,
		"timestamp":      time.Now(),
	})
}

// Chat - answers one message, with the model runtime or the echo fallback
func (h *Handler) Chat(c *gin.Context) {
	var req core.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat message: " + err.Error()})
		return
	}

	h.logger.Info("Chat request", zap.String("content", *req.Content), zap.String("request_id", c.GetString(RequestIDKey)))

	result := h.service.GenerateResponse(c.Request.Context(), *req.Content)
	if h.events != nil {
		h.events.Broadcast(communication.EventChatResponse, result)
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response:  result.Response,
		Mode:      result.Mode,
		Model:     result.Model,
		Timestamp: result.Timestamp,
	})
}

// Status - backend status with feature flags
func (h *Handler) Status(c *gin.Context) {
	status := h.service.GetStatus(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"backend":    "running",
		"version":    Version,
		"ai_service": status,
		"features": gin.H{
			"chat":           true,
			"ai_integration": status.AIAvailable,
			"fallback_mode":  true,
			"health_check":   true,
		},
	})
}

// AIStatus - the runtime status on its own
func (h *Handler) AIStatus(c *gin.Context) {
	status := h.service.GetStatus(c.Request.Context())
	if h.events != nil {
		h.events.Broadcast(communication.EventRuntimeStatus, status)
	}
	c.JSON(http.StatusOK, status)
}

// AITest - round-trips a canned message through the runtime.
// test_successful is true only when the reply came from the model; an echo
// fallback after a passing availability check reports false.
func (h *Handler) AITest(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.service.IsAvailable(ctx) {
		c.JSON(http.StatusOK, gin.H{
			"ai_available":    false,
			"test_successful": false,
			"message":         "AI service not available - using fallback mode",
		})
		return
	}

	result := h.service.GenerateResponse(ctx, testPrompt)
	c.JSON(http.StatusOK, gin.H{
		"ai_available":    true,
		"test_successful": result.Mode == core.ModeAI,
		"test_response":   result,
	})
}
