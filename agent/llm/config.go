package llm

import "time"

// Config carries provider endpoints and the tool loop budget.
type Config struct {
	RedpillBaseURL string        `envconfig:"REDPILL_BASE_URL" split_words:"true" default:"https://api.redpill.ai/v1"`
	RedpillAPIKey  string        `envconfig:"REDPILL_API_KEY" split_words:"true"`
	OllamaHost     string        `envconfig:"OLLAMA_HOST" split_words:"true" default:"http://localhost:11434"`
	Timeout        time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"120s"`
	MaxToolRounds  int           `envconfig:"MAX_TOOL_ROUNDS" split_words:"true" default:"10"`
}
