package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a one-shot message to NEXUS",
	Long: `Send a single message and print the reply.

Examples:
  nexus ask "what's on my plate today"
  nexus ask --task-type research_heavy "compare sqlite and duckdb"
  nexus ask --session 1b2f "and what about the second option?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askTaskType string
	askSession  string
)

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askTaskType, "task-type", "", "Routing hint (general, research_heavy, career_analysis, code_review_deep)")
	askCmd.Flags().StringVar(&askSession, "session", "", "Continue an existing session by ID")
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	result, err := client.Chat(cmd.Context(), message, askSession, askTaskType)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	if result.Agent != "" {
		fmt.Printf("[%s]\n", strings.ToUpper(string(result.Agent)))
	}
	fmt.Println(result.Response)
	if result.SessionID != "" {
		fmt.Printf("\nsession: %s\n", result.SessionID)
	}
	return nil
}
