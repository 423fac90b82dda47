package contract

// Message roles as used on the chat-completion wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// FinishStop is the provider finish signal that terminates a tool round,
// even when the same response also carries tool calls.
const FinishStop = "stop"

// ChatMessage is one turn in a provider conversation. Assistant turns may
// carry pending tool calls; tool turns carry the originating call id.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a provider-requested tool invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function ToolCallFunc `json:"function"`
}

// ToolCallFunc carries the requested tool name and its raw argument
// payload. Arguments may arrive as a JSON object string or as junk; the
// protocol engine degrades junk to an empty argument set.
type ToolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDecl declares one tool to the chat provider.
type ToolDecl struct {
	Name        string
	Description string
	Parameters  ParamSchema
}

// ParamSchema is the named-parameter schema of a tool.
type ParamSchema struct {
	Properties map[string]ParamSpec
	Required   []string
}

// ParamSpec describes a single named parameter.
type ParamSpec struct {
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	Enum        []string   `json:"enum,omitempty"`
	Items       *ParamSpec `json:"items,omitempty"`
}

// AsJSONObject renders the schema in the {type: object, properties,
// required} shape the provider wire format expects. Required is always
// emitted, empty when the tool takes no mandatory parameters.
func (s ParamSchema) AsJSONObject() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, spec := range s.Properties {
		props[name] = spec
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
