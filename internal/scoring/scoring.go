// Package scoring converts normalized posting signals into a
// deterministic lead-qualification score. Every function here is pure:
// the same lead always produces the same result, category scores are
// independently capped, and the final score is the exact sum of the
// categories unless a disqualification rule zeroes it first.
package scoring

// CategoryScores holds the four additive category results.
type CategoryScores struct {
	CompanyScale    int `json:"company_scale"`
	ForecastingPain int `json:"forecasting_pain"`
	Accessibility   int `json:"accessibility"`
	DataQuality     int `json:"data_quality"`
}

// Total sums the categories.
func (c CategoryScores) Total() int {
	return c.CompanyScale + c.ForecastingPain + c.Accessibility + c.DataQuality
}

// Recommendation is the outreach action for a tier.
type Recommendation string

const (
	RecommendPursue  Recommendation = "PURSUE"
	RecommendMonitor Recommendation = "MONITOR"
	RecommendReject  Recommendation = "REJECT"
)

// Result is the full scoring outcome for one lead.
type Result struct {
	Disqualified           bool           `json:"disqualified"`
	DisqualificationReason *string        `json:"disqualification_reason"`
	CategoryScores         CategoryScores `json:"category_scores"`
	FinalScore             int            `json:"final_score"`
	Tier                   Tier           `json:"tier"`
	TierLabel              string         `json:"tier_label"`
	Recommendation         Recommendation `json:"recommendation"`
}
