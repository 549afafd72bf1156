package core

import "time"

// Mode tells whether a reply came from the model runtime or the echo fallback
type Mode string

const (
	ModeAI   Mode = "ai"
	ModeEcho Mode = "echo"
)

// FallbackModel is reported as the model for echo replies.
const FallbackModel = "fallback"

// UnavailableModel is reported as the model in status when the runtime is down.
const UnavailableModel = "unavailable"

// ChatRequest is the body of POST /api/chat. Content is a pointer so that an
// empty string is accepted while a missing field is rejected.
type ChatRequest struct {
	Content *string `json:"content" binding:"required"`
}

// ChatResult is produced fresh for every chat message
type ChatResult struct {
	Response    string    `json:"response"`
	Mode        Mode      `json:"mode"`
	Model       string    `json:"model"`
	Personality string    `json:"personality"`
	Timestamp   time.Time `json:"timestamp"`
}

// PersonalityStatus summarizes the loaded personality.
type PersonalityStatus struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	ConfigLoaded bool   `json:"config_loaded"`
}

// ServiceStatus reflects the live state of the model runtime at call time.
type ServiceStatus struct {
	AIAvailable     bool              `json:"ai_available"`
	Model           string            `json:"model"`
	Mode            Mode              `json:"mode"`
	RuntimeEndpoint string            `json:"runtime_endpoint"`
	Personality     PersonalityStatus `json:"personality"`
	AvailableModels []string          `json:"available_models,omitempty"`
}
