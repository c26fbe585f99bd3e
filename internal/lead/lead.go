// Package lead assembles the immutable lead record: one analysis pass
// over one posting, keyed by a generated identifier and a creation
// timestamp. The analysis payload itself is fully deterministic; only
// the envelope carries the ID and timestamp.
package lead

import (
	"time"

	"github.com/google/uuid"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/needs"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/outreach"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/scoring"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// Outcome statuses for the tracking stub.
const (
	StatusNew          = "new"
	StatusDisqualified = "disqualified"
)

// OutcomeTracking is the stub downstream CRM sync fills in later.
type OutcomeTracking struct {
	Status                string  `json:"status"`
	ConversionProbability float64 `json:"conversion_probability"`
}

// Analysis is the deterministic payload for one lead: identical
// inputs always marshal to identical bytes. Disqualified leads carry
// only the scoring result and the outcome stub.
type Analysis struct {
	LeadScoring       scoring.Result              `json:"lead_scoring"`
	NeedsAnalysis     *needs.Analysis             `json:"needs_analysis,omitempty"`
	ValuePropositions []outreach.ValueProposition `json:"value_propositions,omitempty"`
	CallScript        *outreach.CallScript        `json:"call_script,omitempty"`
	MLFeatures        *MLFeatures                 `json:"ml_features,omitempty"`
	OutcomeTracking   OutcomeTracking             `json:"outcome_tracking"`
}

// Record is the envelope stored and exported for one analyzed
// posting. It is created once and never mutated.
type Record struct {
	LeadID      string `json:"lead_id"`
	CreatedAt   string `json:"created_at"`
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Location    string `json:"location"`
	Analysis
}

// Analyze runs the scoring pipeline over a normalized lead:
// disqualification filter, category scorers and tier, needs analysis,
// then the outreach composer. Disqualification short-circuits
// everything downstream.
func Analyze(l signals.Lead) Analysis {
	score := scoring.Score(l)
	if score.Disqualified {
		return Analysis{
			LeadScoring: score,
			OutcomeTracking: OutcomeTracking{
				Status:                StatusDisqualified,
				ConversionProbability: 0.0,
			},
		}
	}

	analysis := needs.Analyze(l)
	props := outreach.ValuePropositions(l)
	script := outreach.BuildCallScript(l, analysis, props)

	return Analysis{
		LeadScoring:       score,
		NeedsAnalysis:     &analysis,
		ValuePropositions: props,
		CallScript:        &script,
		MLFeatures:        buildFeatures(l, score, analysis),
		OutcomeTracking: OutcomeTracking{
			Status:                StatusNew,
			ConversionProbability: conversionProbability(score.FinalScore),
		},
	}
}

// New normalizes a raw extraction plus research record, analyzes it,
// and wraps the result in a fresh envelope.
func New(ext *signals.Extraction, res *signals.Research) *Record {
	l := signals.Normalize(ext, res)
	return &Record{
		LeadID:      uuid.NewString(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		CompanyName: l.CompanyName,
		JobTitle:    l.JobTitle,
		Location:    l.Location,
		Analysis:    Analyze(l),
	}
}

// conversionProbability is a naive prior derived from the final
// score; outcome tracking replaces it once real outcomes exist.
func conversionProbability(finalScore int) float64 {
	return round2(float64(finalScore) / 30.0)
}
