package workflow

import (
	"encoding/json"

	"github.com/Protocol-Lattice/toolscout/src/models"
)

// decisionSchema constrains the per-turn action to exactly one of the six
// decision kinds. Payload pairing is still re-checked by Validate: schema
// enforcement is best-effort on some providers.
var decisionSchema = models.Schema{
	Name: "agent_decision",
	Raw: json.RawMessage(`{
  "type": "object",
  "properties": {
    "decision_type": {
      "type": "string",
      "enum": ["respond", "ask_question", "search_tools", "research_company", "analyze_companies", "end"]
    },
    "message": {"type": ["string", "null"]},
    "search_tools": {
      "type": ["object", "null"],
      "properties": {
        "query": {"type": "string"},
        "num_results": {"type": "integer"},
        "reasoning": {"type": "string"}
      },
      "required": ["query"],
      "additionalProperties": false
    },
    "research_company": {
      "type": ["object", "null"],
      "properties": {
        "company_names": {"type": "array", "items": {"type": "string"}},
        "reasoning": {"type": "string"}
      },
      "required": ["company_names"],
      "additionalProperties": false
    },
    "analyze_companies": {
      "type": ["object", "null"],
      "properties": {
        "reasoning": {"type": "string"}
      },
      "additionalProperties": false
    },
    "end": {
      "type": ["object", "null"],
      "properties": {
        "reasoning": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "required": ["decision_type"],
  "additionalProperties": false
}`),
}

// analysisSchema shapes the per-company page analysis.
var analysisSchema = models.Schema{
	Name: "company_analysis",
	Raw: json.RawMessage(`{
  "type": "object",
  "properties": {
    "pricing_model": {"type": "string"},
    "is_open_source": {"type": ["boolean", "null"]},
    "tech_stack": {"type": "array", "items": {"type": "string"}},
    "description": {"type": "string"},
    "api_available": {"type": ["boolean", "null"]},
    "language_support": {"type": "array", "items": {"type": "string"}},
    "integration_capabilities": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["pricing_model"],
  "additionalProperties": false
}`),
}
