package scoring

import (
	"strings"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// Category caps. Final scores always land in [0, 30].
const (
	CompanyScaleCap    = 9
	ForecastingPainCap = 12
	AccessibilityCap   = 7
	DataQualityCap     = 2
)

// scoreCompanyScale rewards signs the company is big enough to have a
// real workforce-planning problem. The two employee-size bonuses are
// mutually exclusive: the 20/50/100 pattern is checked first and the
// 200/+ pattern only fires when it missed.
func scoreCompanyScale(l signals.Lead) int {
	score := 0
	if l.MultiplePositions {
		score += 3
	}
	if l.Salary50kPlus {
		score += 2
	}
	if l.ManagerRoles {
		score += 2
	}
	if l.BenefitsMentioned {
		score += 2
	}
	if containsAny(l.EmployeeEstimate, "20", "50", "100") {
		score += 2
	} else if containsAny(l.EmployeeEstimate, "200", "+") {
		score++
	}
	return clamp(score, CompanyScaleCap)
}

// scoreForecastingPain rewards business models whose labor demand is
// hard to predict. All applicable bonuses accumulate up to the cap.
func scoreForecastingPain(l signals.Lead) int {
	score := 0
	if l.Models.Has(signals.ModelSeasonal) || l.Industry == signals.IndustryConstruction {
		score += 5
	}
	if l.Models.Has(signals.ModelProjectBased) {
		score += 5
	}
	if l.Models.Has(signals.ModelVolumeDriven) ||
		l.Industry == signals.IndustryManufacturing ||
		l.Industry == signals.IndustryRestaurant {
		score += 4
	}
	if l.GrowthLanguage {
		score += 3
	}
	if l.PositionsCount != nil && *l.PositionsCount >= 5 {
		score += 3
	}
	return clamp(score, ForecastingPainCap)
}

// scoreAccessibility rewards leads where we can actually reach a
// decision maker. The employee-size substring set here ("<", "20",
// "50") deliberately differs from the one in scoreCompanyScale; the
// asymmetry is preserved from the original rule tables rather than
// unified, since the intent behind it was never confirmed.
func scoreAccessibility(l signals.Lead) int {
	score := 0
	if l.Ownership == signals.OwnershipLocal || l.Ownership == signals.OwnershipRegional {
		score += 3
	}
	if l.EmployeeEstimate != "unknown" && containsAny(l.EmployeeEstimate, "<", "20", "50") {
		score += 2
	}
	if len(l.DecisionMakers) > 0 {
		score += 2
	}
	if !l.RedFlags.RecruitingAgency {
		score++
	}
	return clamp(score, AccessibilityCap)
}

// scoreDataQuality scores how trustworthy the extraction itself is.
// The normalizer maps an absent professionalism score to the neutral
// 5, which lands in the mid band; only a verified-low score (<5)
// earns a zero.
func scoreDataQuality(l signals.Lead) int {
	score := 0
	switch {
	case l.Professionalism >= 7:
		score = 2
	case l.Professionalism >= 5:
		score = 1
	}
	return clamp(score, DataQualityCap)
}

// Score runs the full rule set for one normalized lead: the
// disqualification filter first, then the four category scorers and
// tier assignment.
func Score(l signals.Lead) Result {
	if reason, ok := Disqualify(l); ok {
		return Result{
			Disqualified:           true,
			DisqualificationReason: &reason,
			FinalScore:             0,
			Tier:                   Tier5,
			TierLabel:              tierBands[len(tierBands)-1].label,
			Recommendation:         RecommendReject,
		}
	}

	categories := CategoryScores{
		CompanyScale:    scoreCompanyScale(l),
		ForecastingPain: scoreForecastingPain(l),
		Accessibility:   scoreAccessibility(l),
		DataQuality:     scoreDataQuality(l),
	}
	final := categories.Total()
	band := assignTier(final)

	return Result{
		CategoryScores: categories,
		FinalScore:     final,
		Tier:           band.tier,
		TierLabel:      band.label,
		Recommendation: band.recommendation,
	}
}

// clamp bounds a category score to [0, limit]. The current rule sums
// cannot go negative and most cannot exceed their cap, but the bound
// is an invariant of the contract, not an observation about the rules.
func clamp(score, limit int) int {
	if score < 0 {
		return 0
	}
	if score > limit {
		return limit
	}
	return score
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
