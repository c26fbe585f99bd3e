// Package needs maps industry and business-model signals onto the
// known workforce-forecasting pain points Forecasta can speak to.
// The mapping is a fixed rule table evaluated in declared order, so
// the same lead always yields the same ranked pain points.
package needs

import (
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// Severity estimates how acutely the lead feels its forecasting pain.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// maxPrimaryPainPoints bounds how many matched templates are kept.
const maxPrimaryPainPoints = 3

// PainPoint is one templated operational problem.
type PainPoint struct {
	PainCategory          string `json:"pain_category"`
	SpecificChallenge     string `json:"specific_challenge"`
	BusinessImpact        string `json:"business_impact"`
	CurrentApproachLikely string `json:"current_approach_likely"`
	ForecastaSolution     string `json:"forecasta_solution"`
}

// Analysis is the full needs assessment for one lead.
type Analysis struct {
	PrimaryPainPoints          []PainPoint `json:"primary_pain_points"`
	ForecastTypesNeeded        []string    `json:"forecast_types_needed"`
	ForecastHorizonRecommended string      `json:"forecast_horizon_recommended"`
	EstimatedPainSeverity      Severity    `json:"estimated_pain_severity"`
}

type painRule struct {
	matches       func(signals.Lead) bool
	point         PainPoint
	forecastTypes []string
}

// painRules is evaluated top to bottom; the first three matches become
// the primary pain points, so the declared order is the ranking.
var painRules = []painRule{
	{
		matches: func(l signals.Lead) bool {
			return l.Models.Has(signals.ModelProjectBased) || l.Industry == signals.IndustryConstruction
		},
		point: PainPoint{
			PainCategory:          "Project Pipeline Uncertainty",
			SpecificChallenge:     "Crew sizes swing with every project win or loss, and bids are priced before labor availability is known",
			BusinessImpact:        "Overstaffed between projects, scrambling for qualified workers when a bid lands",
			CurrentApproachLikely: "Gut-feel headcount planning and last-minute temp labor",
			ForecastaSolution:     "Project-pipeline labor forecasts that translate the bid calendar into crew requirements weeks ahead",
		},
		forecastTypes: []string{"labor_demand", "project_pipeline"},
	},
	{
		matches: func(l signals.Lead) bool {
			return l.Models.Has(signals.ModelSeasonal)
		},
		point: PainPoint{
			PainCategory:          "Seasonal Demand Swings",
			SpecificChallenge:     "Workload rises and falls with the season but hiring lead time does not",
			BusinessImpact:        "Peak-season revenue lost to understaffing, shoulder-season margin lost to idle payroll",
			CurrentApproachLikely: "Repeating last year's staffing calendar and hoping this year matches",
			ForecastaSolution:     "Seasonal demand curves built from the company's own history plus regional indicators",
		},
		forecastTypes: []string{"seasonal_demand", "staffing_level"},
	},
	{
		matches: func(l signals.Lead) bool {
			return l.Models.Has(signals.ModelVolumeDriven) ||
				l.Industry == signals.IndustryManufacturing ||
				l.Industry == signals.IndustryRestaurant
		},
		point: PainPoint{
			PainCategory:          "Volume-Driven Scheduling",
			SpecificChallenge:     "Daily throughput varies faster than shift schedules can be rewritten",
			BusinessImpact:        "Overtime spikes on busy days, paid idle time on slow ones",
			CurrentApproachLikely: "Static shift templates adjusted reactively by a floor manager",
			ForecastaSolution:     "Short-horizon volume forecasts that size each shift before the schedule is posted",
		},
		forecastTypes: []string{"order_volume", "shift_demand"},
	},
	{
		matches: func(l signals.Lead) bool {
			return l.Industry == signals.IndustryTrucking
		},
		point: PainPoint{
			PainCategory:          "Freight and Route Variability",
			SpecificChallenge:     "Load volume and lane mix shift weekly while driver capacity is fixed weeks in advance",
			BusinessImpact:        "Turned-down freight when short on drivers, deadhead miles and idle tractors when long",
			CurrentApproachLikely: "Dispatcher intuition and a whiteboard",
			ForecastaSolution:     "Lane-level freight volume forecasts matched against driver availability",
		},
		forecastTypes: []string{"freight_volume", "driver_capacity"},
	},
	{
		matches: func(l signals.Lead) bool {
			return l.GrowthLanguage
		},
		point: PainPoint{
			PainCategory:          "Growth Outpacing Planning",
			SpecificChallenge:     "Expansion decisions are being made faster than workforce plans can keep up",
			BusinessImpact:        "New locations or contracts launch understaffed, burning out the existing team",
			CurrentApproachLikely: "Hiring reactively after growth commitments are already signed",
			ForecastaSolution:     "Headcount growth forecasts tied to the expansion plan, so hiring starts before the gap opens",
		},
		forecastTypes: []string{"headcount_growth"},
	},
}

// genericPainPoint is substituted when no rule matches, so the
// analysis is never empty.
var genericPainPoint = PainPoint{
	PainCategory:          "General Workforce Planning",
	SpecificChallenge:     "Staffing decisions are made without a forward view of demand",
	BusinessImpact:        "Labor costs drift out of line with actual workload",
	CurrentApproachLikely: "Spreadsheets and manager judgment",
	ForecastaSolution:     "Baseline demand and staffing-level forecasts to put numbers behind headcount decisions",
}

// Analyze runs the pain-point rule table against a normalized lead.
func Analyze(l signals.Lead) Analysis {
	var points []PainPoint
	var types []string
	matched := 0
	for _, r := range painRules {
		if !r.matches(l) {
			continue
		}
		matched++
		if len(points) < maxPrimaryPainPoints {
			points = append(points, r.point)
			types = appendMissing(types, r.forecastTypes)
		}
	}

	if len(points) == 0 {
		points = []PainPoint{genericPainPoint}
		types = []string{"staffing_level"}
	}

	horizon := "30-90 days"
	if l.Models.Has(signals.ModelSeasonal) {
		horizon = "quarterly"
	}

	return Analysis{
		PrimaryPainPoints:          points,
		ForecastTypesNeeded:        types,
		ForecastHorizonRecommended: horizon,
		EstimatedPainSeverity:      severity(l, matched),
	}
}

// severity is evaluated in priority order: the HIGH condition wins
// over the low-match-count check.
func severity(l signals.Lead, matched int) Severity {
	switch {
	case l.MultiplePositions && l.GrowthLanguage:
		return SeverityHigh
	case matched <= 1:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

func appendMissing(dst []string, add []string) []string {
	for _, a := range add {
		found := false
		for _, d := range dst {
			if d == a {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, a)
		}
	}
	return dst
}
