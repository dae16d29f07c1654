package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings carries every credential the external adapters need. It is loaded
// once at startup and passed by value to constructors; nothing mutates it
// afterwards.
type Settings struct {
	// FirecrawlAPIKey authenticates search and scrape calls.
	FirecrawlAPIKey string
	// FirecrawlBaseURL overrides the hosted endpoint (mainly for tests).
	FirecrawlBaseURL string

	// GitHubToken authenticates the OpenAI-compatible GitHub Models endpoint.
	GitHubToken string
	// GoogleAPIKey authenticates Gemini.
	GoogleAPIKey string
	// AnthropicAPIKey authenticates Claude models.
	AnthropicAPIKey string
	// OllamaHost points at a local Ollama server; empty means the default.
	OllamaHost string
}

// Load reads an optional .env file and then the process environment. A missing
// .env file is not an error.
func Load() Settings {
	_ = godotenv.Load()

	return Settings{
		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlBaseURL: os.Getenv("FIRECRAWL_BASE_URL"),
		GitHubToken:      envOr("GITHUB_API_TOKEN", "GITHUB_TOKEN"),
		GoogleAPIKey:     envOr("GOOGLE_API_KEY", "GOOGLE_AI_STUDIO_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:       os.Getenv("OLLAMA_HOST"),
	}
}

// envOr returns the primary variable, falling back to the secondary name.
func envOr(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}
