package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend health",
	Long:  "Check whether the NEXUS backend and its model runtime are reachable.",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Backend:  %s\n", cfg.APIBaseURL)

	status, err := client.Health(cmd.Context())
	if err != nil {
		fmt.Println("Status:   unreachable")
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Printf("Status:   %s\n", status.Status)
	fmt.Printf("Nexus:    %s\n", status.Nexus)
	if status.ModelRuntimeOnline() {
		fmt.Println("Ollama:   connected")
	} else {
		fmt.Println("Ollama:   disconnected")
	}
	return nil
}
