package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/jarvis-gateway/core"
)

var promptPersonality string

// PromptCmd prints the system prompt built from the resolved personality
var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the assembled system prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit := appConfig.PersonalityPath
		if cmd.Flags().Changed("personality") {
			explicit = promptPersonality
		}

		load := core.LoadPersonality(logger.Named("personality"), personalityPaths(explicit)...)
		source := load.Source
		if source == "" {
			source = "built-in default"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s (%s)\n", load.Config.DisplayName(), source)
		fmt.Fprintln(out, core.BuildSystemPrompt(load.Config))
		return nil
	},
}

func init() {
	PromptCmd.Flags().StringVar(&promptPersonality, "personality", "", "Personality file tried before the default locations")
}
