package main

import (
	"fmt"
	"os"

	"github.com/NethermindEth/jarvis-gateway/cmd/jarvis/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jarvis",
	Short: "Jarvis AI assistant gateway",
	Long: `HTTP gateway exposing a chat API backed by a local Ollama runtime,
falling back to echo replies when the runtime is unreachable.`,
	SilenceUsage:      true,
	PersistentPreRunE: commands.Setup,
	PersistentPostRun: commands.Teardown,
}

func init() {
	commands.BindGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.PromptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
