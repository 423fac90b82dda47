package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	contractx "github.com/haradakit/companion/agent/contract"
	conversationx "github.com/haradakit/companion/agent/conversation"
	llmx "github.com/haradakit/companion/agent/llm"
	personax "github.com/haradakit/companion/agent/persona"
)

type routerCall struct {
	ref      llmx.ModelRef
	messages []contractx.ChatMessage
	prompt   string
	withTool bool
}

type fakeRouter struct {
	reply string
	err   error
	calls []routerCall
}

func (f *fakeRouter) Chat(_ context.Context, ref llmx.ModelRef, messages []contractx.ChatMessage, prompt string) (string, error) {
	f.calls = append(f.calls, routerCall{ref: ref, messages: messages, prompt: prompt})
	return f.reply, f.err
}

func (f *fakeRouter) ChatWithTools(_ context.Context, ref llmx.ModelRef, messages []contractx.ChatMessage, prompt string, _ []contractx.ToolDecl, _ contractx.ToolExecutor) (string, error) {
	f.calls = append(f.calls, routerCall{ref: ref, messages: messages, prompt: prompt, withTool: true})
	return f.reply, f.err
}

type fakeTools struct{}

func (fakeTools) Execute(_ context.Context, name string, _ map[string]any) string {
	return "ran " + name
}

const personasYAML = `
default_persona: harada
personas:
  harada:
    name: Harada Coach
    system_prompt: You are a goal-tracking coach.
    llm:
      provider: redpill
      model: default-model
    enable_tools: true
    tools: harada
  assistant:
    name: Assistant
    system_prompt: You are helpful.
    llm:
      provider: ollama
      model: llama3.2
`

const modelsYAML = `
default_model: default-model
models:
  - id: default-model
    name: Default
    provider: redpill
  - id: override-model
    name: Override
    provider: redpill
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestService(t *testing.T, router ChatRouter) (*Service, *personax.Manager, *personax.Catalog) {
	t.Helper()
	dir := t.TempDir()

	personas, err := personax.NewManager(writeFile(t, dir, "personas.yaml", personasYAML))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	models, err := personax.NewCatalog(
		writeFile(t, dir, "models.yaml", modelsYAML),
		filepath.Join(dir, "model-override"),
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	svc, err := New(router, personas, models, fakeTools{}, nil, nil, conversationx.New())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc, personas, models
}

func TestNewRequiresRouter(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil, nil, nil, nil, nil, nil); err == nil {
		t.Fatal("New() error = nil, want router requirement")
	}
}

func TestHandleUtteranceUsesToolPath(t *testing.T) {
	t.Parallel()

	router := &fakeRouter{reply: "Checked off your run."}
	svc, _, _ := newTestService(t, router)

	got, err := svc.HandleUtterance(context.Background(), "check my run")
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if got != "Checked off your run." {
		t.Fatalf("HandleUtterance() = %q", got)
	}

	if len(router.calls) != 1 || !router.calls[0].withTool {
		t.Fatalf("router calls = %+v, want one tool-augmented call", router.calls)
	}
	if router.calls[0].prompt != "You are a goal-tracking coach." {
		t.Fatalf("prompt = %q", router.calls[0].prompt)
	}

	msgs := svc.Conversation().Messages()
	if len(msgs) != 2 {
		t.Fatalf("history = %d messages, want 2", len(msgs))
	}
	if msgs[1].Role != contractx.RoleAssistant || msgs[1].Content != "Checked off your run." {
		t.Fatalf("history[1] = %+v", msgs[1])
	}
}

func TestHandleUtteranceUsesModelOverride(t *testing.T) {
	t.Parallel()

	router := &fakeRouter{reply: "ok"}
	svc, _, models := newTestService(t, router)

	if _, err := models.Set("override-model"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := svc.HandleUtterance(context.Background(), "hello"); err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if got := router.calls[0].ref.Model; got != "override-model" {
		t.Fatalf("model = %q, want override-model", got)
	}
	if got := router.calls[0].ref.Provider; got != llmx.ProviderRedpill {
		t.Fatalf("provider = %q, want persona provider", got)
	}
}

func TestHandleUtterancePlainPersona(t *testing.T) {
	t.Parallel()

	router := &fakeRouter{reply: "Hi!"}
	svc, personas, _ := newTestService(t, router)

	if _, err := personas.Switch("assistant"); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}

	if _, err := svc.HandleUtterance(context.Background(), "hello"); err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	call := router.calls[0]
	if call.withTool {
		t.Fatal("router call used tools, want plain chat")
	}
	if call.ref.Provider != llmx.ProviderOllama || call.ref.Model != "llama3.2" {
		t.Fatalf("ref = %+v, want persona llm", call.ref)
	}
}

func TestHandleUtteranceErrorKeepsUserTurn(t *testing.T) {
	t.Parallel()

	router := &fakeRouter{err: errors.New("boom")}
	svc, _, _ := newTestService(t, router)

	if _, err := svc.HandleUtterance(context.Background(), "hello"); err == nil {
		t.Fatal("HandleUtterance() error = nil, want propagated failure")
	}

	msgs := svc.Conversation().Messages()
	if len(msgs) != 1 || msgs[0].Role != contractx.RoleUser {
		t.Fatalf("history = %+v, want only the user turn", msgs)
	}
}
