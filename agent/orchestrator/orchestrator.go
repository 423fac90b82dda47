// Package orchestrator wires the conversation, personas, tool dispatcher,
// and model router into a single utterance-handling service.
package orchestrator

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	contractx "github.com/haradakit/companion/agent/contract"
	conversationx "github.com/haradakit/companion/agent/conversation"
	haradax "github.com/haradakit/companion/agent/harada"
	llmx "github.com/haradakit/companion/agent/llm"
	personax "github.com/haradakit/companion/agent/persona"
)

// toolsHarada is the persona tools value that enables the goal-tracking
// dispatcher.
const toolsHarada = "harada"

// ChatRouter is the slice of the model router the service needs.
type ChatRouter interface {
	Chat(ctx context.Context, ref llmx.ModelRef, messages []contractx.ChatMessage, systemPrompt string) (string, error)
	ChatWithTools(ctx context.Context, ref llmx.ModelRef, messages []contractx.ChatMessage, systemPrompt string, tools []contractx.ToolDecl, executor contractx.ToolExecutor) (string, error)
}

// Service drives one exchange end to end: record the user turn, pick the
// persona's path (tool-augmented or plain chat), record the reply, and
// refresh the overlay snapshot.
type Service struct {
	router    ChatRouter
	personas  *personax.Manager
	models    *personax.Catalog
	tools     contractx.ToolExecutor
	decls     []contractx.ToolDecl
	projector *haradax.Projector
	conv      *conversationx.Conversation
}

func New(
	router ChatRouter,
	personas *personax.Manager,
	models *personax.Catalog,
	tools contractx.ToolExecutor,
	decls []contractx.ToolDecl,
	projector *haradax.Projector,
	conv *conversationx.Conversation,
) (*Service, error) {
	if router == nil {
		return nil, errors.New("chat router is required")
	}
	if personas == nil {
		return nil, errors.New("persona manager is required")
	}
	if models == nil {
		return nil, errors.New("model catalog is required")
	}
	if tools == nil {
		return nil, errors.New("tool executor is required")
	}
	if conv == nil {
		conv = conversationx.New()
	}

	return &Service{
		router:    router,
		personas:  personas,
		models:    models,
		tools:     tools,
		decls:     decls,
		projector: projector,
		conv:      conv,
	}, nil
}

// Conversation exposes the dialogue state machine for the caller to drive.
func (s *Service) Conversation() *conversationx.Conversation {
	return s.conv
}

// HandleUtterance processes one user turn and returns the assistant reply.
// Provider and transport errors propagate; the user turn stays in history
// either way so a retry carries the context forward.
func (s *Service) HandleUtterance(ctx context.Context, text string) (string, error) {
	s.conv.AddUserMessage(text)

	p := s.personas.Current()
	log.Debug().
		Str("persona", s.personas.CurrentID()).
		Bool("tools", p.EnableTools).
		Msg("handling utterance")

	var reply string
	var err error
	if p.EnableTools && p.Tools == toolsHarada {
		// The model catalog's current selection overrides the persona
		// default for tool-augmented chat.
		ref := llmx.ModelRef{Provider: p.LLM.Provider, Model: s.models.Current()}
		reply, err = s.router.ChatWithTools(ctx, ref, s.conv.Messages(), p.SystemPrompt, s.decls, s.tools)
	} else {
		reply, err = s.router.Chat(ctx, p.LLM, s.conv.Messages(), p.SystemPrompt)
	}
	if err != nil {
		return "", err
	}

	s.conv.AddAssistantMessage(reply)

	if s.projector != nil && p.EnableTools && p.Tools == toolsHarada {
		if err := s.projector.Refresh(ctx, text, reply); err != nil {
			log.Warn().Err(err).Msg("overlay refresh failed")
		}
	}

	return reply, nil
}
