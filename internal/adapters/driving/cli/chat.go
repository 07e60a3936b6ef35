package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var chatProfileID string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the numerology assistant a question",
	Long: `Sends a single question to the configured LLM with a numerology system prompt.
Use --profile to give the assistant a saved profile's report as context.

Configure a provider first with 'numen settings llm'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatProfileID, "profile", "", "saved profile to discuss")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil || !chatService.Available() {
		return errors.New("chat is not configured, run 'numen settings llm' first")
	}

	reply, err := chatService.Ask(cmd.Context(), domain.ChatRequest{
		ProfileID: chatProfileID,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: strings.Join(args, " ")},
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrChatUnavailable) {
			return domain.ErrChatUnavailable
		}
		return fmt.Errorf("chat failed: %w", err)
	}

	cmd.Println(reply.Content)
	return nil
}
