// Package persona loads the conversation personas and the model catalog
// from YAML and tracks the active selections.
package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	contractx "github.com/haradakit/companion/agent/contract"
	llmx "github.com/haradakit/companion/agent/llm"
)

// Config locates the persona and model definition files.
type Config struct {
	PersonasFile      string `envconfig:"PERSONAS_FILE" split_words:"true" default:"personas.yaml"`
	ModelsFile        string `envconfig:"MODELS_FILE" split_words:"true" default:"models.yaml"`
	ModelOverrideFile string `envconfig:"MODEL_OVERRIDE_FILE" split_words:"true" default:".pi/model-override"`
}

// Persona is one conversational character: its prompt, its default model,
// and whether it drives the tool dispatcher.
type Persona struct {
	Name         string        `yaml:"name"`
	SystemPrompt string        `yaml:"system_prompt"`
	LLM          llmx.ModelRef `yaml:"llm"`
	EnableTools  bool          `yaml:"enable_tools"`
	Tools        string        `yaml:"tools"`
	Voice        string        `yaml:"voice"`
}

type personaFile struct {
	DefaultPersona string             `yaml:"default_persona"`
	Personas       map[string]Persona `yaml:"personas"`
}

// Manager holds the loaded personas and the active selection.
type Manager struct {
	personas  map[string]Persona
	currentID string
}

// NewManager loads the persona definitions from path.
func NewManager(path string) (*Manager, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}

	var file personaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse personas file: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("personas file %s defines no personas", path)
	}

	defaultID := file.DefaultPersona
	if defaultID == "" {
		defaultID = "assistant"
	}
	if _, ok := file.Personas[defaultID]; !ok {
		return nil, fmt.Errorf("%w: default persona %q", contractx.ErrPersonaNotFound, defaultID)
	}

	return &Manager{personas: file.Personas, currentID: defaultID}, nil
}

// Current returns the active persona.
func (m *Manager) Current() Persona {
	return m.personas[m.currentID]
}

// CurrentID returns the active persona's id.
func (m *Manager) CurrentID() string {
	return m.currentID
}

// Switch activates the persona with the given id.
func (m *Manager) Switch(id string) (Persona, error) {
	p, ok := m.personas[id]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", contractx.ErrPersonaNotFound, id)
	}
	m.currentID = id
	return p, nil
}

// List returns all persona ids.
func (m *Manager) List() []string {
	ids := make([]string, 0, len(m.personas))
	for id := range m.personas {
		ids = append(ids, id)
	}
	return ids
}
