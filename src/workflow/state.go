package workflow

import (
	"fmt"
	"strings"
	"time"
)

// Role tags one conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one conversation turn. Turns are immutable once appended; the
// history is the full audit trail for the session.
type Message struct {
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	ToolCalls []map[string]any `json:"tool_calls,omitempty"`
}

// CompanyAnalysis is the structured model output for one researched tool.
// Tri-state flags are nil when the page left the question open.
type CompanyAnalysis struct {
	PricingModel            string   `json:"pricing_model"`
	IsOpenSource            *bool    `json:"is_open_source"`
	TechStack               []string `json:"tech_stack"`
	Description             string   `json:"description"`
	APIAvailable            *bool    `json:"api_available"`
	LanguageSupport         []string `json:"language_support"`
	IntegrationCapabilities []string `json:"integration_capabilities"`
}

// CompanyInfo is a fully researched tool record. Records are never updated in
// place; researching the same tool twice produces two entries.
type CompanyInfo struct {
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	Website                 string   `json:"website"`
	PricingModel            string   `json:"pricing_model,omitempty"`
	IsOpenSource            *bool    `json:"is_open_source,omitempty"`
	TechStack               []string `json:"tech_stack,omitempty"`
	Competitors             []string `json:"competitors,omitempty"`
	APIAvailable            *bool    `json:"api_available,omitempty"`
	LanguageSupport         []string `json:"language_support,omitempty"`
	IntegrationCapabilities []string `json:"integration_capabilities,omitempty"`
}

// DecisionType discriminates the agent's per-turn action.
type DecisionType string

const (
	DecisionRespond          DecisionType = "respond"
	DecisionAskQuestion      DecisionType = "ask_question"
	DecisionSearchTools      DecisionType = "search_tools"
	DecisionResearchCompany  DecisionType = "research_company"
	DecisionAnalyzeCompanies DecisionType = "analyze_companies"
	DecisionEnd              DecisionType = "end"
)

type SearchToolsCall struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results,omitempty"`
	Reasoning  string `json:"reasoning,omitempty"`
}

type ResearchCompanyCall struct {
	CompanyNames []string `json:"company_names"`
	Reasoning    string   `json:"reasoning,omitempty"`
}

type AnalyzeCompaniesCall struct {
	Reasoning string `json:"reasoning,omitempty"`
}

type EndConversationCall struct {
	Reasoning string `json:"reasoning,omitempty"`
}

// AgentDecision is the model's single chosen action for a turn. Exactly one
// payload must be populated, selected by DecisionType; Validate enforces the
// pairing so dispatch never has to guess.
type AgentDecision struct {
	DecisionType DecisionType `json:"decision_type"`

	// Used for respond / ask_question.
	Message *string `json:"message,omitempty"`

	SearchTools      *SearchToolsCall      `json:"search_tools,omitempty"`
	ResearchCompany  *ResearchCompanyCall  `json:"research_company,omitempty"`
	AnalyzeCompanies *AnalyzeCompaniesCall `json:"analyze_companies,omitempty"`
	End              *EndConversationCall  `json:"end,omitempty"`
}

// Validate checks that the payload matching the discriminant is present. A
// mismatch is a handled failure at the decision boundary, not a crash.
func (d *AgentDecision) Validate() error {
	switch d.DecisionType {
	case DecisionRespond, DecisionAskQuestion:
		if d.Message == nil || strings.TrimSpace(*d.Message) == "" {
			return fmt.Errorf("decision %q missing message", d.DecisionType)
		}
	case DecisionSearchTools:
		if d.SearchTools == nil || strings.TrimSpace(d.SearchTools.Query) == "" {
			return fmt.Errorf("decision %q missing search_tools payload", d.DecisionType)
		}
	case DecisionResearchCompany:
		if d.ResearchCompany == nil || len(d.ResearchCompany.CompanyNames) == 0 {
			return fmt.Errorf("decision %q missing research_company payload", d.DecisionType)
		}
	case DecisionAnalyzeCompanies:
		if d.AnalyzeCompanies == nil {
			return fmt.Errorf("decision %q missing analyze_companies payload", d.DecisionType)
		}
	case DecisionEnd:
		if d.End == nil {
			return fmt.Errorf("decision %q missing end payload", d.DecisionType)
		}
	default:
		return fmt.Errorf("unknown decision_type %q", d.DecisionType)
	}
	return nil
}

// AgentState is the aggregate root for one conversation. All mutation happens
// through the engine and its handlers.
type AgentState struct {
	ConversationHistory []Message
	CurrentQuery        string

	// ExtractedTools accumulates candidate names from every search; repeats
	// are kept on purpose.
	ExtractedTools      []string
	ResearchedCompanies []CompanyInfo

	Analysis string

	AwaitingUserInput    bool
	ConversationComplete bool
}

// NewState opens a conversation with the user's first message.
func NewState(initialMessage string) *AgentState {
	state := &AgentState{CurrentQuery: initialMessage}
	state.AppendTurn(RoleUser, initialMessage)
	return state
}

// AppendTurn records one immutable conversation turn.
func (s *AgentState) AppendTurn(role Role, content string) {
	s.ConversationHistory = append(s.ConversationHistory, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
