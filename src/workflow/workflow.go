package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Protocol-Lattice/toolscout/src/firecrawl"
	"github.com/Protocol-Lattice/toolscout/src/models"
)

// Searcher is the slice of the search/scrape service the engine needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]firecrawl.WebResult, error)
	Scrape(ctx context.Context, url string) (*firecrawl.Document, error)
}

const (
	// searchSuffix widens a tool query toward comparison articles.
	searchSuffix = " tools comparision best alternatives"

	maxArticleChars      = 1500
	maxAnalysisChars     = 2500
	maxExtractedTools    = 5
	defaultSearchResults = 3

	apologyMessage    = "I hit an internal error. Please rephrase."
	noResearchMessage = "No companies researched yet."
)

// Engine drives the decision-execution loop: it asks the model for exactly
// one action per turn, executes it, and feeds the updated state back in.
type Engine struct {
	model  models.Agent
	search Searcher
	out    io.Writer
	logger zerolog.Logger
}

type Option func(*Engine)

// WithOutput redirects user-facing console output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithLogger attaches a structured logger for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger.With().Str("component", "workflow").Logger() }
}

func New(model models.Agent, search Searcher, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, errors.New("workflow requires a language model")
	}
	if search == nil {
		return nil, errors.New("workflow requires a search client")
	}
	e := &Engine{
		model:  model,
		search: search,
		out:    os.Stdout,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// PromptFunc blocks for the next line of user input.
type PromptFunc func() (string, error)

var exitWords = map[string]struct{}{"exit": {}, "quit": {}, "bye": {}}

// IsExitWord reports whether the input is one of the exit keywords.
func IsExitWord(input string) bool {
	_, ok := exitWords[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// Run drives one conversation to completion. Between autonomous steps the
// loop is in one of two states: executing the next decision, or blocked on
// prompt for new user text. Exit keywords end the conversation without
// another model call.
func (e *Engine) Run(ctx context.Context, initialMessage string, prompt PromptFunc) *AgentState {
	state := NewState(initialMessage)

	fmt.Fprintln(e.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(e.out, "🤖 Developer Tools Agent")
	fmt.Fprintln(e.out, strings.Repeat("=", 60))

	for !state.ConversationComplete {
		e.Step(ctx, state)

		if state.AwaitingUserInput && !state.ConversationComplete {
			input, err := prompt()
			if err != nil {
				e.logger.Debug().Err(err).Msg("input closed, ending conversation")
				state.ConversationComplete = true
				break
			}
			input = strings.TrimSpace(input)
			if IsExitWord(input) {
				fmt.Fprintln(e.out, "\n🤖 Agent: Goodbye!")
				state.ConversationComplete = true
				break
			}
			state.AppendTurn(RoleUser, input)
			state.AwaitingUserInput = false
		}
	}
	return state
}

// Step executes one decision. Every failure — schema violation, unknown
// decision kind, handler error — is absorbed here: the state is preserved,
// one apology turn is appended, and control returns to the user. The
// conversation never terminates involuntarily on an internal error.
func (e *Engine) Step(ctx context.Context, state *AgentState) {
	if state.ConversationComplete {
		return
	}
	if err := e.step(ctx, state); err != nil {
		e.logger.Error().Err(err).Msg("decision step failed")
		fmt.Fprintf(e.out, "\n⚠️ Agent error: %v\n", err)
		state.AppendTurn(RoleAssistant, apologyMessage)
		state.AwaitingUserInput = true
	}
}

func (e *Engine) step(ctx context.Context, state *AgentState) error {
	input := e.buildModelInput(state)

	var decision AgentDecision
	if err := e.model.GenerateStructured(ctx, input, decisionSchema, &decision); err != nil {
		return fmt.Errorf("decide next action: %w", err)
	}
	if err := decision.Validate(); err != nil {
		return err
	}
	e.logger.Debug().Str("decision", string(decision.DecisionType)).Msg("dispatching")

	switch decision.DecisionType {
	case DecisionRespond, DecisionAskQuestion:
		e.handleRespond(state, *decision.Message)
	case DecisionSearchTools:
		return e.handleSearchTools(ctx, state, decision.SearchTools)
	case DecisionResearchCompany:
		e.handleResearchCompany(ctx, state, decision.ResearchCompany)
	case DecisionAnalyzeCompanies:
		return e.handleAnalyzeCompanies(ctx, state)
	case DecisionEnd:
		fmt.Fprintln(e.out, "\n🤖 Agent: Ending conversation.")
		state.ConversationComplete = true
	}
	return nil
}

// buildModelInput maps the history to role-tagged messages. Tool turns are
// surfaced as system-level notes since the chat APIs have no first-class
// tool-result role here, and a synthesized context summary closes the input.
func (e *Engine) buildModelInput(state *AgentState) []models.ChatMessage {
	input := make([]models.ChatMessage, 0, len(state.ConversationHistory)+2)
	input = append(input, models.ChatMessage{Role: models.RoleSystem, Content: agentSystemPrompt})

	for _, msg := range state.ConversationHistory {
		switch msg.Role {
		case RoleUser:
			input = append(input, models.ChatMessage{Role: models.RoleUser, Content: msg.Content})
		case RoleAssistant:
			input = append(input, models.ChatMessage{Role: models.RoleAssistant, Content: msg.Content})
		case RoleTool:
			input = append(input, models.ChatMessage{Role: models.RoleSystem, Content: "[Tool Result] " + msg.Content})
		}
	}

	input = append(input, models.ChatMessage{
		Role:    models.RoleSystem,
		Content: "Current Context:\n" + contextSummary(state),
	})
	return input
}

// contextSummary tells the model what has already happened and hints at the
// natural next step, so it avoids redundant work.
func contextSummary(state *AgentState) string {
	var sections []string

	if len(state.ExtractedTools) > 0 {
		head := state.ExtractedTools
		if len(head) > maxExtractedTools {
			head = head[:maxExtractedTools]
		}
		sections = append(sections, fmt.Sprintf(
			"Extracted Tools: %s \n→ Next step: Research these tools using 'research_company'",
			strings.Join(head, ", ")))
	}

	if len(state.ResearchedCompanies) > 0 {
		names := make([]string, 0, len(state.ResearchedCompanies))
		for _, c := range state.ResearchedCompanies {
			names = append(names, c.Name)
		}
		next := "Research more companies"
		if len(state.ResearchedCompanies) >= 2 {
			next = "Analyze if enough data"
		}
		sections = append(sections, fmt.Sprintf(
			"Researched Companies: %s \n→ Next step: %s",
			strings.Join(names, ", "), next))
	}

	if state.Analysis != "" {
		sections = append(sections, "Analysis Complete: Yes")
	}

	if len(sections) == 0 {
		return "No previous actions taken"
	}
	return strings.Join(sections, "\n")
}

// ------------------------------------------------------------------
// Action handlers
// ------------------------------------------------------------------

func (e *Engine) handleRespond(state *AgentState, message string) {
	fmt.Fprintf(e.out, "\n🤖 Agent: %s\n", message)
	state.AppendTurn(RoleAssistant, message)
	state.AwaitingUserInput = true
}

func (e *Engine) handleSearchTools(ctx context.Context, state *AgentState, call *SearchToolsCall) error {
	fmt.Fprintf(e.out, "\n🔧 Agent searching tools: %s\n", call.Query)

	tools, err := e.searchTools(ctx, call.Query, call.NumResults)
	if err != nil {
		return err
	}
	state.ExtractedTools = append(state.ExtractedTools, tools...)
	state.AppendTurn(RoleTool, "Found tools: "+strings.Join(tools, ", "))
	return nil
}

func (e *Engine) handleResearchCompany(ctx context.Context, state *AgentState, call *ResearchCompanyCall) {
	names := call.CompanyNames
	if len(names) == 1 {
		fmt.Fprintf(e.out, "\n🔬 Agent researching: %s\n", names[0])
	} else {
		fmt.Fprintf(e.out, "\n🔬 Agent researching %d companies: %s\n", len(names), strings.Join(names, ", "))
	}

	researched := 0
	for _, name := range names {
		fmt.Fprintf(e.out, "\n  → Researching %s...\n", name)
		if company := e.researchCompany(ctx, name); company != nil {
			state.ResearchedCompanies = append(state.ResearchedCompanies, *company)
			researched++
		}
	}

	state.AppendTurn(RoleTool, fmt.Sprintf(
		"Researched %d/%d companies: %s", researched, len(names), strings.Join(names, ", ")))
}

func (e *Engine) handleAnalyzeCompanies(ctx context.Context, state *AgentState) error {
	fmt.Fprintln(e.out, "\n📊 Agent analyzing companies")

	analysis, err := e.analyzeCompanies(ctx, state)
	if err != nil {
		return err
	}
	state.Analysis = analysis
	state.AppendTurn(RoleTool, "Analysis complete")

	fmt.Fprintf(e.out, "\n🤖 Agent: %s\n", analysis)
	state.AppendTurn(RoleAssistant, analysis)
	state.AwaitingUserInput = true
	return nil
}

// ------------------------------------------------------------------
// Tools
// ------------------------------------------------------------------

// searchTools finds comparison articles, scrapes them, and asks the model for
// up to five concrete tool names. Extraction failures yield an empty list, not
// an error: the conversation continues with no new candidates.
func (e *Engine) searchTools(ctx context.Context, query string, numResults int) ([]string, error) {
	if numResults <= 0 {
		numResults = defaultSearchResults
	}

	started := time.Now()
	results, err := e.search.Search(ctx, query+searchSuffix, numResults)
	if err != nil {
		return nil, fmt.Errorf("article search: %w", err)
	}
	e.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("elapsed", time.Since(started)).
		Msg("article search done")

	var content strings.Builder
	for _, result := range results {
		url := result.ResolveURL()
		if url == "" {
			continue
		}
		page, err := e.search.Scrape(ctx, url)
		if err != nil {
			e.logger.Warn().Err(err).Str("url", url).Msg("scrape failed")
			continue
		}
		if page == nil || page.Markdown == "" {
			continue
		}
		content.WriteString(truncate(page.Markdown, maxArticleChars))
		content.WriteString("\n\n")
	}

	extraction := []models.ChatMessage{
		{Role: models.RoleSystem, Content: toolExtractionSystem},
		{Role: models.RoleUser, Content: toolExtractionUser(query, content.String())},
	}
	response, err := e.model.Generate(ctx, extraction)
	if err != nil {
		e.logger.Warn().Err(err).Msg("tool extraction failed")
		return nil, nil
	}

	tools := parseToolNames(response)
	fmt.Fprintf(e.out, "✅ Found %d tools: %s\n", len(tools), strings.Join(tools, ", "))
	return tools, nil
}

// researchCompany resolves one tool's official site and analyzes it. A missing
// result or URL is a normal miss, not an error; a failed analysis still yields
// a record with default fields.
func (e *Engine) researchCompany(ctx context.Context, name string) *CompanyInfo {
	results, err := e.search.Search(ctx, name+" official site", 1)
	if err != nil {
		e.logger.Warn().Err(err).Str("company", name).Msg("official site search failed")
		fmt.Fprintf(e.out, "⚠️ No results found for %s\n", name)
		return nil
	}
	if len(results) == 0 {
		fmt.Fprintf(e.out, "⚠️ No results found for %s\n", name)
		return nil
	}

	url := results[0].ResolveURL()
	if url == "" {
		fmt.Fprintf(e.out, "⚠️ No URL found for %s\n", name)
		return nil
	}

	company := &CompanyInfo{Name: name, Website: url}

	page, err := e.search.Scrape(ctx, url)
	if err != nil {
		e.logger.Warn().Err(err).Str("url", url).Msg("scrape failed")
	}
	if err == nil && page != nil && page.Markdown != "" {
		analysis := e.analyzeCompanyContent(ctx, name, page.Markdown)
		company.PricingModel = analysis.PricingModel
		company.IsOpenSource = analysis.IsOpenSource
		company.TechStack = analysis.TechStack
		company.Description = analysis.Description
		company.APIAvailable = analysis.APIAvailable
		company.LanguageSupport = analysis.LanguageSupport
		company.IntegrationCapabilities = analysis.IntegrationCapabilities
	}

	fmt.Fprintf(e.out, "✅ Researched %s\n", name)
	return company
}

// analyzeCompanyContent runs the structured page analysis, substituting a
// default record when the call fails so one bad page never aborts a batch.
func (e *Engine) analyzeCompanyContent(ctx context.Context, name, content string) CompanyAnalysis {
	input := []models.ChatMessage{
		{Role: models.RoleSystem, Content: toolAnalysisSystem},
		{Role: models.RoleUser, Content: toolAnalysisUser(name, content)},
	}

	var analysis CompanyAnalysis
	if err := e.model.GenerateStructured(ctx, input, analysisSchema, &analysis); err != nil {
		e.logger.Warn().Err(err).Str("company", name).Msg("analysis failed")
		return CompanyAnalysis{
			PricingModel:            "Unknown",
			Description:             "Analysis failed",
			TechStack:               []string{},
			LanguageSupport:         []string{},
			IntegrationCapabilities: []string{},
		}
	}
	return analysis
}

// analyzeCompanies generates the final recommendation text. With nothing
// researched it returns the sentinel message without a model call.
func (e *Engine) analyzeCompanies(ctx context.Context, state *AgentState) (string, error) {
	if len(state.ResearchedCompanies) == 0 {
		return noResearchMessage, nil
	}

	records := make([]string, 0, len(state.ResearchedCompanies))
	for _, company := range state.ResearchedCompanies {
		data, err := json.Marshal(company)
		if err != nil {
			return "", fmt.Errorf("serialize company %q: %w", company.Name, err)
		}
		records = append(records, string(data))
	}

	input := []models.ChatMessage{
		{Role: models.RoleSystem, Content: recommendationsSystem},
		{Role: models.RoleUser, Content: recommendationsUser(state.CurrentQuery, strings.Join(records, ", "))},
	}
	return e.model.Generate(ctx, input)
}

// ------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------

func parseToolNames(response string) []string {
	var names []string
	for _, line := range strings.Split(response, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
		if len(names) == maxExtractedTools {
			break
		}
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
