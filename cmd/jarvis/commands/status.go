package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/jarvis-gateway/core"
)

var (
	statusAPIURL  string
	statusRawJSON bool
)

// StatusCmd queries a running gateway for the runtime status
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show model runtime status",
	Long:  `Query /api/ai/status on a running gateway and print the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		body, err := fetchStatus(ctx, http.DefaultClient, statusAPIURL)
		if err != nil {
			return err
		}
		if statusRawJSON {
			var out bytes.Buffer
			if err := json.Indent(&out, body, "", "  "); err != nil {
				return fmt.Errorf("format status: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		}

		var status core.ServiceStatus
		if err := json.Unmarshal(body, &status); err != nil {
			return fmt.Errorf("parse status: %w", err)
		}
		printStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

func init() {
	StatusCmd.Flags().StringVar(&statusAPIURL, "api-url", "http://localhost:8000", "Gateway URL")
	StatusCmd.Flags().BoolVar(&statusRawJSON, "json", false, "Print the raw JSON response")
}

func fetchStatus(ctx context.Context, client *http.Client, apiURL string) ([]byte, error) {
	url := strings.TrimRight(apiURL, "/") + "/api/ai/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request failed (%d): %s", resp.StatusCode, body)
	}
	return body, nil
}

func printStatus(w io.Writer, status core.ServiceStatus) {
	fmt.Fprintf(w, "Assistant:  %s (%s)\n", status.Personality.DisplayName, status.Personality.Name)
	fmt.Fprintf(w, "Runtime:    %s\n", status.RuntimeEndpoint)
	fmt.Fprintf(w, "Available:  %t\n", status.AIAvailable)
	fmt.Fprintf(w, "Mode:       %s\n", status.Mode)
	fmt.Fprintf(w, "Model:      %s\n", status.Model)
	if len(status.AvailableModels) > 0 {
		fmt.Fprintf(w, "Installed:  %s\n", strings.Join(status.AvailableModels, ", "))
	}
}
