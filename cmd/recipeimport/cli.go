package main

import "time"

// CLI defines the command-line interface structure for Kong.
// Every flag can also be set from the environment.
type CLI struct {
	Addr          string `default:":8787" env:"RECIPEIMPORT_ADDR" help:"Address to serve the import endpoint on"`
	MetricsAddr   string `env:"RECIPEIMPORT_METRICS_ADDR" help:"Address to serve Prometheus metrics on (disabled if empty)"`
	AllowedOrigin string `default:"https://marijep.github.io" env:"ALLOWED_ORIGIN" help:"Only origin allowed to call the endpoint"`

	Provider       string        `enum:"anthropic,gemini,openai" default:"anthropic" env:"RECIPEIMPORT_PROVIDER" help:"Extraction service (${enum})"`
	Model          string        `env:"RECIPEIMPORT_MODEL" help:"Model identifier (provider default if empty)"`
	MaxTokens      int64         `default:"1500" help:"Maximum reply length in tokens"`
	FetchTimeout   time.Duration `default:"10s" help:"Timeout for fetching a recipe page"`
	ExtractTimeout time.Duration `default:"60s" help:"Timeout for one extraction call"`
	Strict         bool          `help:"Reject replies that are not valid recipes instead of passing them through"`

	LogLevel  string `enum:"debug,info,warn,error" default:"info" env:"RECIPEIMPORT_LOG_LEVEL" help:"Log level (${enum})"`
	LogFormat string `enum:"json,text" default:"json" help:"Log format (${enum})"`
	LogFile   string `env:"RECIPEIMPORT_LOG_FILE" help:"Also write logs to this file, rotated by size"`

	AnthropicAPIKey  string `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`
	AnthropicBaseURL string `name:"anthropic-base-url" env:"ANTHROPIC_BASE_URL" help:"Override the Anthropic API base URL"`
	GeminiAPIKey     string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey     string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIBaseURL    string `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"Override the OpenAI API base URL (compatible endpoints)"`
}
