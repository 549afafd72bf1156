package core

const (
	// DefaultAssistantName is used when the personality file has no identity.name.
	DefaultAssistantName = "Jarvis"
	// DefaultDisplayName is reported in status when identity.display_name is unset.
	DefaultDisplayName = "AI Assistant"
	// DefaultBasePersonality is the compiled-in base prompt for the default personality.
	DefaultBasePersonality = "You are Jarvis, an AI assistant inspired by Tony Stark's AI. Be helpful, intelligent, and slightly witty."
	// FallbackBasePersonality starts the system prompt when base_personality is missing.
	FallbackBasePersonality = "You are Jarvis, an AI assistant. Be helpful and intelligent."
)

// Identity names the assistant
type Identity struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Traits describes how the assistant sounds
type Traits struct {
	BasePersonality string `json:"base_personality,omitempty" yaml:"base_personality,omitempty"`
	Tone            string `json:"tone,omitempty" yaml:"tone,omitempty"`
	HumorLevel      string `json:"humor_level,omitempty" yaml:"humor_level,omitempty"`
	Confidence      string `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Behavior describes how the assistant answers
type Behavior struct {
	ResponseStyle  string `json:"response_style,omitempty" yaml:"response_style,omitempty"`
	ProblemSolving string `json:"problem_solving,omitempty" yaml:"problem_solving,omitempty"`
}

// InteractionStyle describes how the assistant explains things
type InteractionStyle struct {
	ExplanationMethod string `json:"explanation_method,omitempty" yaml:"explanation_method,omitempty"`
}

// PersonalityConfig defines the assistant's identity and conversational style.
// It is loaded once at startup and treated as read-only afterwards.
type PersonalityConfig struct {
	Identity         Identity         `json:"identity" yaml:"identity"`
	Personality      Traits           `json:"personality" yaml:"personality"`
	Behavior         Behavior         `json:"behavior" yaml:"behavior"`
	InteractionStyle InteractionStyle `json:"interaction_style" yaml:"interaction_style"`
}

// DefaultPersonality returns the built-in personality used when no file is usable
func DefaultPersonality() PersonalityConfig {
	return PersonalityConfig{
		Identity: Identity{
			Name:        DefaultAssistantName,
			DisplayName: "J.A.R.V.I.S.",
			Role:        "AI Assistant",
		},
		Personality: Traits{
			BasePersonality: DefaultBasePersonality,
		},
	}
}

// withDefaults fills the fields every personality must carry.
func (p PersonalityConfig) withDefaults() PersonalityConfig {
	if p.Identity.Name == "" {
		p.Identity.Name = DefaultAssistantName
	}
	if p.Personality.BasePersonality == "" {
		p.Personality.BasePersonality = FallbackBasePersonality
	}
	return p
}

// Name returns the assistant name used in echo replies and results.
func (p PersonalityConfig) Name() string {
	if p.Identity.Name == "" {
		return DefaultAssistantName
	}
	return p.Identity.Name
}

// DisplayName returns identity.display_name or DefaultDisplayName.
func (p PersonalityConfig) DisplayName() string {
	if p.Identity.DisplayName == "" {
		return DefaultDisplayName
	}
	return p.Identity.DisplayName
}
