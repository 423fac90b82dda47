// Package conversation tracks the dialogue lifecycle and the rolling
// message history fed to the model.
package conversation

import (
	contractx "github.com/haradakit/companion/agent/contract"
)

// State is the current phase of the dialogue loop.
type State int

const (
	StateIdle State = iota
	StateListening
	StateThinking
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateThinking:
		return "thinking"
	case StateSpeaking:
		return "speaking"
	default:
		return "unknown"
	}
}

// maxHistoryPairs caps the history at the last N user/assistant turn pairs.
const maxHistoryPairs = 10

// Conversation holds the dialogue state, the pending transcript, and the
// trimmed message history. It is not safe for concurrent use.
type Conversation struct {
	state      State
	transcript string
	messages   []contractx.ChatMessage
}

func New() *Conversation {
	return &Conversation{state: StateIdle}
}

func (c *Conversation) State() State { return c.state }

// Toggle advances the lifecycle: idle starts listening and clears any
// stale transcript, listening moves to thinking only once a transcript
// has been captured. Other states are left unchanged.
func (c *Conversation) Toggle() State {
	switch c.state {
	case StateIdle:
		c.state = StateListening
		c.transcript = ""
	case StateListening:
		if c.transcript != "" {
			c.state = StateThinking
		}
	}
	return c.state
}

// Stop aborts the exchange and returns to idle, discarding the transcript.
func (c *Conversation) Stop() State {
	c.state = StateIdle
	c.transcript = ""
	return c.state
}

// SetState forces a phase transition, used when playback begins.
func (c *Conversation) SetState(s State) { c.state = s }

func (c *Conversation) SetTranscript(text string) { c.transcript = text }

func (c *Conversation) Transcript() string { return c.transcript }

// AddUserMessage appends a user turn and trims the history.
func (c *Conversation) AddUserMessage(content string) {
	c.messages = append(c.messages, contractx.ChatMessage{Role: contractx.RoleUser, Content: content})
	c.trim()
}

// AddAssistantMessage appends an assistant turn and trims the history.
func (c *Conversation) AddAssistantMessage(content string) {
	c.messages = append(c.messages, contractx.ChatMessage{Role: contractx.RoleAssistant, Content: content})
	c.trim()
}

func (c *Conversation) trim() {
	max := maxHistoryPairs * 2
	if len(c.messages) > max {
		c.messages = c.messages[len(c.messages)-max:]
	}
}

// Messages returns a copy of the current history.
func (c *Conversation) Messages() []contractx.ChatMessage {
	out := make([]contractx.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// ClearHistory drops all messages but keeps the current state.
func (c *Conversation) ClearHistory() {
	c.messages = nil
}
