package llm

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/haradakit/companion/agent/contract"
)

// newOllamaClient builds an OpenAI SDK client against the local Ollama
// OpenAI-compatible endpoint. Ollama ignores the API key but the SDK
// requires one.
func newOllamaClient(cfg Config) *openaisdk.Client {
	client := openaisdk.NewClient(
		option.WithBaseURL(strings.TrimRight(cfg.OllamaHost, "/")+"/v1"),
		option.WithAPIKey("ollama"),
	)
	return &client
}

func (r *Router) chatOllama(ctx context.Context, model string, messages []contractx.ChatMessage, systemPrompt string) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    model,
		Messages: make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(messages)+1),
	}
	params.Messages = append(params.Messages, openaisdk.SystemMessage(systemPrompt))
	for _, m := range messages {
		switch m.Role {
		case contractx.RoleAssistant:
			params.Messages = append(params.Messages, openaisdk.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openaisdk.UserMessage(m.Content))
		}
	}

	completion, err := r.ollama.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: ollama: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: ollama: response has no choices", contractx.ErrModelInvoke)
	}
	return completion.Choices[0].Message.Content, nil
}
