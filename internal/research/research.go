// Package research enriches a lead with company facts the posting
// itself cannot provide: legitimacy, rough headcount, ownership, and
// likely decision makers. Research is best-effort; a failed or
// disabled lookup yields the all-unknown placeholder, never an error
// that blocks scoring.
package research

import (
	"context"
	"fmt"
	"log"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/llm"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

const researchPrompt = `You are researching a small business to qualify it as a B2B sales lead.

Company: %s
Location: %s
Industry: %s

From what the name, location, and industry imply, assess the company. Be conservative: when you cannot tell, say "unknown". A company is illegitimate only when the name itself signals a scam or staffing front.

Respond with ONLY this JSON:
{
    "verified_legitimate": true/false,
    "employee_count_estimate": "<20" | "20-50" | "50-100" | "100-200" | "200+" | "unknown",
    "ownership_type": "local" | "regional" | "national chain" | "unknown",
    "decision_makers": ["likely titles, e.g. Owner, Operations Manager"]
}`

// Researcher looks up company facts for a lead.
type Researcher interface {
	Research(ctx context.Context, companyName, location, industry string) (signals.Research, error)
}

// LLMResearcher asks an LLM for a conservative company assessment.
type LLMResearcher struct {
	provider llm.Provider
}

// NewLLMResearcher creates a researcher over the given provider.
func NewLLMResearcher(provider llm.Provider) *LLMResearcher {
	return &LLMResearcher{provider: provider}
}

// Research runs the research prompt. Postings without a company name
// get the unknown placeholder immediately.
func (r *LLMResearcher) Research(ctx context.Context, companyName, location, industry string) (signals.Research, error) {
	if companyName == "" {
		return signals.UnknownResearch(), nil
	}
	if r.provider == nil {
		return signals.UnknownResearch(), fmt.Errorf("no LLM provider available for research")
	}

	prompt := fmt.Sprintf(researchPrompt, companyName, location, industry)
	responseText, err := r.provider.Generate(ctx, prompt, 512)
	if err != nil {
		return signals.UnknownResearch(), err
	}

	return ParseResearch(responseText, companyName), nil
}

// ParseResearch decodes an LLM response into a research record,
// falling back to the unknown placeholder on unusable output.
func ParseResearch(responseText, companyName string) signals.Research {
	res := signals.UnknownResearch()
	if err := llm.DecodeResponse(responseText, &res); err != nil {
		log.Printf("Unusable research response for %q: %v", companyName, err)
		return signals.UnknownResearch()
	}
	if res.EmployeeCountEstimate == "" {
		res.EmployeeCountEstimate = "unknown"
	}
	if res.OwnershipType == "" {
		res.OwnershipType = string(signals.OwnershipUnknown)
	}
	return res
}

// StaticResearcher always returns the unknown placeholder. It backs
// runs with research disabled and dry runs.
type StaticResearcher struct{}

// Research returns the all-unknown placeholder.
func (StaticResearcher) Research(_ context.Context, _, _, _ string) (signals.Research, error) {
	return signals.UnknownResearch(), nil
}
