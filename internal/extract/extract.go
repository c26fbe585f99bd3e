// Package extract turns raw posting text into structured business
// signals using an LLM. The extractor never fails a posting: responses
// that cannot be parsed produce an all-empty record, which downstream
// scoring treats as "nothing stated".
package extract

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/llm"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

const extractPrompt = `You are analyzing a craigslist job posting to extract business signals for B2B lead qualification.

Read the posting and extract what it actually states. Use null for anything not stated. Do not guess.

Posting Title: %s
Posting Body:
%s

Respond with ONLY this JSON:
{
    "company": {
        "name": "company name or null",
        "location": "city/area or null",
        "contact": "phone/email or null",
        "posting_date": "date or null"
    },
    "job": {
        "title": "job title or null",
        "positions_count": "number of openings, e.g. 5 or \"5+\" or null",
        "employment_type": "full-time/part-time/contract or null",
        "compensation": "pay as stated or null",
        "experience_level": "entry/experienced/manager or null",
        "benefits": ["listed benefits"]
    },
    "business_signals": {
        "industry": "Construction/Trades" | "Manufacturing" | "Restaurant/Hospitality" | "Trucking/Logistics" | "Landscaping/Seasonal" | "Retail" | "Healthcare" | "Professional Services" | "Other",
        "business_model": ["project-based", "seasonal", "volume-driven", "service-based", "recurring"],
        "multiple_positions": true/false,
        "growth_language": true/false,
        "manager_roles": true/false,
        "salary_50k_plus": true/false,
        "benefits_mentioned": true/false,
        "professionalism_score": 1-10
    },
    "red_flags": {
        "recruiting_agency": true/false,
        "mlm_language": true/false,
        "no_company_name": true/false,
        "vague_description": true/false,
        "commission_only": true/false,
        "excessive_urgency": true/false,
        "total_red_flags": 0-6
    }
}

growth_language: phrases like "growing", "expanding", "new location". mlm_language: "be your own boss", "unlimited earning potential". excessive_urgency: "start today", "immediate start" pressure.`

const maxBodyChars = 4000

// Extractor extracts structured signals from posting text.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an extractor over the given provider.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract runs the extraction prompt for one posting. A nil error
// with an all-empty record means the LLM response was unusable.
func (e *Extractor) Extract(ctx context.Context, title, body string) (*signals.Extraction, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no LLM provider available for extraction")
	}

	if body == "" {
		body = title
	}
	body = truncateBody(body)

	prompt := fmt.Sprintf(extractPrompt, title, body)
	responseText, err := e.provider.Generate(ctx, prompt, 1024)
	if err != nil {
		return nil, err
	}

	return ParseExtraction(responseText, title), nil
}

// ParseExtraction decodes an LLM response into an extraction record.
// Unusable responses degrade to the zero record rather than failing.
func ParseExtraction(responseText, title string) *signals.Extraction {
	var ext signals.Extraction
	if err := llm.DecodeResponse(responseText, &ext); err != nil {
		log.Printf("Unusable extraction response for %q: %v", title, err)
		return &signals.Extraction{}
	}
	return &ext
}

// truncateBody cuts long bodies at maxBodyChars, backing up to a rune
// boundary so the prompt never carries a split UTF-8 sequence.
func truncateBody(body string) string {
	if len(body) <= maxBodyChars {
		return body
	}
	cut := maxBodyChars
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
