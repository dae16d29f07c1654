package config

import "testing"

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-key")
	t.Setenv("FIRECRAWL_BASE_URL", "http://localhost:3002")
	t.Setenv("GITHUB_API_TOKEN", "gh-primary")
	t.Setenv("GOOGLE_API_KEY", "g-primary")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OLLAMA_HOST", "http://localhost:11434")

	s := Load()
	if s.FirecrawlAPIKey != "fc-key" || s.FirecrawlBaseURL != "http://localhost:3002" {
		t.Fatalf("firecrawl settings = %+v", s)
	}
	if s.GitHubToken != "gh-primary" {
		t.Fatalf("github token = %q", s.GitHubToken)
	}
	if s.GoogleAPIKey != "g-primary" {
		t.Fatalf("google key = %q", s.GoogleAPIKey)
	}
	if s.AnthropicAPIKey != "a-key" || s.OllamaHost != "http://localhost:11434" {
		t.Fatalf("settings = %+v", s)
	}
}

func TestLoadFallsBackToSecondaryNames(t *testing.T) {
	t.Setenv("GITHUB_API_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "gh-fallback")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_AI_STUDIO_KEY", "g-fallback")

	s := Load()
	if s.GitHubToken != "gh-fallback" {
		t.Fatalf("github token = %q, want fallback", s.GitHubToken)
	}
	if s.GoogleAPIKey != "g-fallback" {
		t.Fatalf("google key = %q, want fallback", s.GoogleAPIKey)
	}
}

func TestPrimaryNameWinsOverFallback(t *testing.T) {
	t.Setenv("GITHUB_API_TOKEN", "primary")
	t.Setenv("GITHUB_TOKEN", "fallback")

	if s := Load(); s.GitHubToken != "primary" {
		t.Fatalf("github token = %q, want primary", s.GitHubToken)
	}
}
