package persona

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	contractx "github.com/haradakit/companion/agent/contract"
)

// ModelInfo describes one selectable chat model.
type ModelInfo struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Provider string   `yaml:"provider"`
	Features []string `yaml:"features"`
}

type modelFile struct {
	DefaultModel string      `yaml:"default_model"`
	Models       []ModelInfo `yaml:"models"`
}

// Catalog holds the selectable models and a file-backed override of the
// default. The override survives restarts so a model picked once stays
// picked until reset.
type Catalog struct {
	defaultModel string
	models       map[string]ModelInfo
	order        []string
	overridePath string
}

// NewCatalog loads model definitions from path; overridePath is the file
// consulted for a persisted selection.
func NewCatalog(path, overridePath string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}

	var file modelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse models file: %w", err)
	}

	c := &Catalog{
		defaultModel: file.DefaultModel,
		models:       make(map[string]ModelInfo, len(file.Models)),
		overridePath: overridePath,
	}
	if c.defaultModel == "" {
		c.defaultModel = "deepseek/deepseek-v3.2"
	}
	for _, m := range file.Models {
		c.models[m.ID] = m
		c.order = append(c.order, m.ID)
	}
	return c, nil
}

// Current returns the override model when one is set and still known,
// otherwise the default.
func (c *Catalog) Current() string {
	raw, err := os.ReadFile(c.overridePath)
	if err == nil {
		id := strings.TrimSpace(string(raw))
		if _, ok := c.models[id]; ok && id != "" {
			return id
		}
	}
	return c.defaultModel
}

// Set persists id as the override.
func (c *Catalog) Set(id string) (ModelInfo, error) {
	info, ok := c.models[id]
	if !ok {
		return ModelInfo{}, fmt.Errorf("%w: %q", contractx.ErrModelNotFound, id)
	}
	if err := os.WriteFile(c.overridePath, []byte(id), 0o644); err != nil {
		return ModelInfo{}, fmt.Errorf("write model override: %w", err)
	}
	return info, nil
}

// Reset removes the override, returning to the default model.
func (c *Catalog) Reset() error {
	err := os.Remove(c.overridePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear model override: %w", err)
	}
	return nil
}

// Info returns the model with the given id.
func (c *Catalog) Info(id string) (ModelInfo, bool) {
	info, ok := c.models[id]
	return info, ok
}

// List returns all models in file order.
func (c *Catalog) List() []ModelInfo {
	out := make([]ModelInfo, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.models[id])
	}
	return out
}

// Format renders the catalog grouped by provider, marking the current
// selection with an asterisk.
func (c *Catalog) Format() string {
	current := c.Current()

	byProvider := map[string][]ModelInfo{}
	for _, id := range c.order {
		m := c.models[id]
		provider := m.Provider
		if provider == "" {
			provider = "unknown"
		}
		byProvider[provider] = append(byProvider[provider], m)
	}

	providers := make([]string, 0, len(byProvider))
	for p := range byProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	var lines []string
	for _, provider := range providers {
		lines = append(lines, "\n"+strings.ToUpper(provider)+":")
		for _, m := range byProvider[provider] {
			marker := ""
			if m.ID == current {
				marker = " *"
			}
			lines = append(lines, "  "+m.ID+marker)
			lines = append(lines, fmt.Sprintf("    %s [%s]", m.Name, strings.Join(m.Features, ", ")))
		}
	}
	lines = append(lines, "\n* = current model")
	return strings.Join(lines, "\n")
}
