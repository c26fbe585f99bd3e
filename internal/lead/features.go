package lead

import (
	"math"
	"sort"
	"strings"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/needs"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/scoring"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// MLFeatures is the fixed-schema numeric/categorical encoding exported
// for downstream model training. Field names and value ranges are a
// stable contract with existing consumers.
type MLFeatures struct {
	IndustryCode       string  `json:"industry_code"`
	BusinessModelCode  string  `json:"business_model_code"`
	CompanySizeBucket  string  `json:"company_size_bucket"`
	PainSeverityScore  float64 `json:"pain_severity_score"`
	AccessibilityScore float64 `json:"accessibility_score"`
	DataQualityScore   float64 `json:"data_quality_score"`
}

var severityScores = map[needs.Severity]float64{
	needs.SeverityLow:    0.33,
	needs.SeverityMedium: 0.66,
	needs.SeverityHigh:   1.0,
}

func buildFeatures(l signals.Lead, score scoring.Result, analysis needs.Analysis) *MLFeatures {
	return &MLFeatures{
		IndustryCode:       industryCode(l.Industry),
		BusinessModelCode:  businessModelCode(l.Models),
		CompanySizeBucket:  companySizeBucket(l.EmployeeEstimate),
		PainSeverityScore:  severityScores[analysis.EstimatedPainSeverity],
		AccessibilityScore: ratio(score.CategoryScores.Accessibility, scoring.AccessibilityCap),
		DataQualityScore:   float64(l.Professionalism) / 10.0,
	}
}

// industryCode lowercases the industry and replaces separators:
// "Construction/Trades" -> "construction_trades".
func industryCode(ind signals.Industry) string {
	code := strings.ToLower(string(ind))
	for _, sep := range []string{"/", " ", "-"} {
		code = strings.ReplaceAll(code, sep, "_")
	}
	return code
}

// businessModelCode joins the sorted model set, or "unknown" when the
// posting showed none.
func businessModelCode(models signals.ModelSet) string {
	if len(models) == 0 {
		return "unknown"
	}
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}

// companySizeBucket coarsens the research estimate. Checks run in
// order micro -> small -> medium, so "<20" lands in micro even though
// it also contains "20".
func companySizeBucket(estimate string) string {
	switch {
	case estimate == "unknown" || estimate == "":
		return "unknown"
	case strings.Contains(estimate, "<"):
		return "micro"
	case strings.Contains(estimate, "20") || strings.Contains(estimate, "50"):
		return "small"
	case strings.Contains(estimate, "100") || strings.Contains(estimate, "200") || strings.Contains(estimate, "+"):
		return "medium"
	default:
		return "unknown"
	}
}

func ratio(score, limit int) float64 {
	return math.Min(float64(score)/float64(limit), 1.0)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
