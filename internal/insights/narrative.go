package insights

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/techtitanians/sentiboard/internal/clients"
)

const (
	narrativeModel         = openai.GPT4oMini
	narrativeRetryAttempts = 3
	narrativeSystemPrompt  = "You are an analyst. Given sentiment analysis batch statistics, " +
		"write a short plain-language summary (3-4 sentences) of what the batch shows. " +
		"Do not invent numbers that are not in the input."
)

// ErrNoAPIKey marks the narrative as unavailable because no OpenAI key is
// configured. Callers should fall back to Summary.Lines.
var ErrNoAPIKey = errors.New("insights: OPENAI_API_KEY is not set")

// Narrative asks the chat model to turn the summary statistics into a short
// prose paragraph. The narrative is optional: without an API key it returns
// ErrNoAPIKey instead of touching the client, which panics on a missing key.
func Narrative(ctx context.Context, summary Summary) (string, error) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return "", ErrNoAPIKey
	}
	return generateNarrative(ctx, clients.GetOpenAIClient().Client, summary)
}

func generateNarrative(ctx context.Context, client *openai.Client, summary Summary) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: narrativeSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: summary.String()},
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < narrativeRetryAttempts; i++ {
		start := time.Now()
		resp, completionErr = client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    narrativeModel,
			Messages: messages,
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[Insights] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return "", completionErr
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
