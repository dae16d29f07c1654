// toolscout — conversational agent for discovering and comparing developer
// tools. The agent decides one action per turn (respond, clarify, search,
// research, analyze, end) and chains tool actions autonomously between user
// prompts.
//
// Examples:
//
//	export GITHUB_API_TOKEN=... FIRECRAWL_API_KEY=...
//	go run ./cmd/toolscout
//
//	export GOOGLE_API_KEY=...
//	go run ./cmd/toolscout -provider gemini -model gemini-2.5-flash
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Protocol-Lattice/toolscout/src/config"
	"github.com/Protocol-Lattice/toolscout/src/firecrawl"
	"github.com/Protocol-Lattice/toolscout/src/models"
	"github.com/Protocol-Lattice/toolscout/src/workflow"
)

var (
	flagProvider = flag.String("provider", "openai", "LLM provider: openai|gemini|anthropic|ollama|dummy")
	flagModel    = flag.String("model", "gpt-4o", "Model ID for the selected provider")
	flagVerbose  = flag.Bool("verbose", false, "Enable debug logging to stderr")
)

func main() {
	flag.Parse()

	settings := config.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *flagVerbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.WarnLevel)
	}

	ctx := context.Background()

	model, err := models.NewLLMProvider(ctx, strings.ToLower(*flagProvider), *flagModel, settings)
	if err != nil {
		fail(err)
	}
	search := firecrawl.NewClient(settings.FirecrawlBaseURL, settings.FirecrawlAPIKey, logger)

	engine, err := workflow.New(model, search, workflow.WithLogger(logger))
	if err != nil {
		fail(err)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("🚀 Developer Tools Research Agent")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("\nI'm here to help you find and evaluate developer tools!")
	fmt.Println("Just tell me what you're looking for, and I'll guide you through.")
	fmt.Println("\nType 'exit' or 'quit' to end the conversation.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	readLine := func() (string, error) {
		fmt.Print("\n👤 You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	for {
		fmt.Print("👤 You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break // stdin closed
		}
		query := strings.TrimSpace(line)
		if workflow.IsExitWord(query) {
			fmt.Println("\n👋 Goodbye! Come back anytime you need tool recommendations.")
			fmt.Println()
			break
		}
		if query == "" {
			continue
		}

		finalState := engine.Run(ctx, query, readLine)

		printSummary(finalState)

		fmt.Println("\n" + strings.Repeat("=", 70))
		fmt.Println("🔄 Ready for your next question!")
		fmt.Println(strings.Repeat("=", 70))
		fmt.Println()
	}
}

// printSummary renders the end-of-run research summary and stored
// recommendation, if any research happened.
func printSummary(state *workflow.AgentState) {
	if len(state.ResearchedCompanies) == 0 {
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📋 RESEARCH SUMMARY")
	fmt.Println(strings.Repeat("=", 70))

	for i, company := range state.ResearchedCompanies {
		fmt.Printf("\n%d. 🏢 %s\n", i+1, company.Name)
		fmt.Printf("   🌐 %s\n", company.Website)
		fmt.Printf("   💰 Pricing: %s\n", company.PricingModel)
		fmt.Printf("   📖 Open Source: %s\n", triState(company.IsOpenSource))

		if len(company.TechStack) > 0 {
			fmt.Printf("   🛠️  Tech: %s\n", joinHead(company.TechStack, 5))
		}
		if len(company.LanguageSupport) > 0 {
			fmt.Printf("   💻 Languages: %s\n", joinHead(company.LanguageSupport, 5))
		}
		if company.APIAvailable != nil && *company.APIAvailable {
			fmt.Println("   🔌 API: ✅ Available")
		}
		if len(company.IntegrationCapabilities) > 0 {
			fmt.Printf("   🔗 Integrations: %s\n", joinHead(company.IntegrationCapabilities, 4))
		}
	}

	if state.Analysis != "" {
		fmt.Println("\n" + strings.Repeat("-", 70))
		fmt.Println("💡 RECOMMENDATION")
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(state.Analysis)
	}
}

func triState(flag *bool) string {
	switch {
	case flag == nil:
		return "Unknown"
	case *flag:
		return "Yes"
	default:
		return "No"
	}
}

func joinHead(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
