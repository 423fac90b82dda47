package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	contractx "github.com/haradakit/companion/agent/contract"
)

const maxResponseSizeBytes = 2 << 20

// wireTool is a tool declaration in chat-completion wire form.
type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type chatRequest struct {
	Model    string                  `json:"model"`
	Messages []contractx.ChatMessage `json:"messages"`
	Tools    []wireTool              `json:"tools,omitempty"`
}

type chatChoice struct {
	Message      contractx.ChatMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func wireTools(decls []contractx.ToolDecl) []wireTool {
	if len(decls) == 0 {
		return nil
	}
	out := make([]wireTool, 0, len(decls))
	for _, d := range decls {
		out = append(out, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters.AsJSONObject(),
			},
		})
	}
	return out
}

// completeChat posts one chat-completion request to the RedPill endpoint
// and returns the first choice. Any transport or status failure is wrapped
// in ErrModelInvoke and surfaces to the caller unretried.
func (r *Router) completeChat(ctx context.Context, req chatRequest) (chatChoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return chatChoice{}, fmt.Errorf("%w: encode request: %v", contractx.ErrModelInvoke, err)
	}

	url := strings.TrimRight(r.cfg.RedpillBaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return chatChoice{}, fmt.Errorf("%w: build request: %v", contractx.ErrModelInvoke, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.RedpillAPIKey)

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return chatChoice{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return chatChoice{}, fmt.Errorf("%w: read response: %v", contractx.ErrModelInvoke, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return chatChoice{}, fmt.Errorf("%w: status %d: %s", contractx.ErrModelInvoke, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return chatChoice{}, fmt.Errorf("%w: decode response: %v", contractx.ErrModelInvoke, err)
	}
	if len(parsed.Choices) == 0 {
		return chatChoice{}, fmt.Errorf("%w: response has no choices", contractx.ErrModelInvoke)
	}
	return parsed.Choices[0], nil
}
