// Package llm routes chat requests to the configured model providers and
// runs the bounded tool-calling protocol loop.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/haradakit/companion/agent/contract"
)

// Provider names recognized by the router.
const (
	ProviderRedpill = "redpill"
	ProviderOllama  = "ollama"
)

const defaultMaxToolRounds = 10

// roundsExhaustedFallback is returned when the tool loop runs out of
// rounds without ever seeing assistant text.
const roundsExhaustedFallback = "I'm sorry, I couldn't finish working through that. Could you try asking again?"

// ModelRef selects a provider and model for one request.
type ModelRef struct {
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
}

// Router sends chat requests to the provider a ModelRef names. RedPill
// speaks the raw chat-completion wire format and supports tool calling;
// Ollama is plain chat through its OpenAI-compatible endpoint.
type Router struct {
	cfg        Config
	httpClient *http.Client
	ollama     *openaisdk.Client
	maxRounds  int
}

// RouterOption customizes a Router.
type RouterOption func(*Router)

// WithHTTPClient overrides the HTTP client used for RedPill requests.
func WithHTTPClient(client *http.Client) RouterOption {
	return func(r *Router) {
		if client != nil {
			r.httpClient = client
		}
	}
}

func NewRouter(cfg Config, opts ...RouterOption) *Router {
	r := &Router{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		ollama:     newOllamaClient(cfg),
		maxRounds:  cfg.MaxToolRounds,
	}
	if r.maxRounds <= 0 {
		r.maxRounds = defaultMaxToolRounds
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Chat sends a plain completion request and returns the assistant text.
func (r *Router) Chat(ctx context.Context, ref ModelRef, messages []contractx.ChatMessage, systemPrompt string) (string, error) {
	switch ref.Provider {
	case ProviderOllama:
		return r.chatOllama(ctx, ref.Model, messages, systemPrompt)
	case ProviderRedpill:
		choice, err := r.completeChat(ctx, chatRequest{
			Model:    ref.Model,
			Messages: withSystem(systemPrompt, messages),
		})
		if err != nil {
			return "", err
		}
		return choice.Message.Content, nil
	default:
		return "", fmt.Errorf("%w: %q", contractx.ErrUnknownProvider, ref.Provider)
	}
}

// ChatWithTools runs the tool-calling loop against RedPill: declare the
// tools, execute whatever calls come back, feed the results in as tool
// messages, and repeat until the model settles on text. A finish reason
// of "stop" ends the loop even if the response also lists tool calls.
// Providers without tool support degrade to a plain Chat. Transport
// errors propagate to the caller.
func (r *Router) ChatWithTools(
	ctx context.Context,
	ref ModelRef,
	messages []contractx.ChatMessage,
	systemPrompt string,
	tools []contractx.ToolDecl,
	executor contractx.ToolExecutor,
) (string, error) {
	if ref.Provider != ProviderRedpill {
		return r.Chat(ctx, ref, messages, systemPrompt)
	}

	working := withSystem(systemPrompt, messages)
	declared := wireTools(tools)
	lastText := ""

	for round := 0; round < r.maxRounds; round++ {
		choice, err := r.completeChat(ctx, chatRequest{
			Model:    ref.Model,
			Messages: working,
			Tools:    declared,
		})
		if err != nil {
			return "", err
		}

		if choice.Message.Content != "" {
			lastText = choice.Message.Content
		}
		if choice.FinishReason == contractx.FinishStop || len(choice.Message.ToolCalls) == 0 {
			return choice.Message.Content, nil
		}

		assistant := choice.Message
		assistant.Role = contractx.RoleAssistant
		working = append(working, assistant)

		for _, call := range assistant.ToolCalls {
			args := parseToolArguments(call.Function.Arguments)
			result := executor.Execute(ctx, call.Function.Name, args)
			working = append(working, contractx.ChatMessage{
				Role:       contractx.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	log.Warn().Int("rounds", r.maxRounds).Str("model", ref.Model).Msg("tool round budget exhausted")
	if lastText != "" {
		return lastText, nil
	}
	return roundsExhaustedFallback, nil
}

// parseToolArguments decodes a tool call's argument payload. Anything that
// is not a JSON object degrades to an empty argument set so a confused
// model still gets a tool error message instead of crashing the loop.
func parseToolArguments(raw string) map[string]any {
	args := map[string]any{}
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		log.Warn().Str("arguments", raw).Msg("malformed tool arguments, using empty set")
		return map[string]any{}
	}
	return args
}

func withSystem(systemPrompt string, messages []contractx.ChatMessage) []contractx.ChatMessage {
	out := make([]contractx.ChatMessage, 0, len(messages)+1)
	out = append(out, contractx.ChatMessage{Role: contractx.RoleSystem, Content: systemPrompt})
	return append(out, messages...)
}
