package core

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt assembles the system prompt sent ahead of every user message.
// Only non-empty fields contribute a clause, always in the same order.
func BuildSystemPrompt(cfg PersonalityConfig) string {
	var b strings.Builder

	base := cfg.Personality.BasePersonality
	if base == "" {
		base = FallbackBasePersonality
	}
	b.WriteString(base)

	clause := func(format, value string) {
		if value == "" {
			return
		}
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf(format, value))
	}

	clause("Your tone should be %s.", cfg.Personality.Tone)
	clause("Use %s.", cfg.Personality.HumorLevel)
	clause("Be %s.", cfg.Personality.Confidence)
	clause("Keep responses %s.", cfg.Behavior.ResponseStyle)
	clause("Approach problems in an %s way.", cfg.Behavior.ProblemSolving)
	clause("When explaining complex topics, %s.", cfg.InteractionStyle.ExplanationMethod)

	return b.String()
}
