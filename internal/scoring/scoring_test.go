package scoring

import (
	"testing"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

func intptr(n int) *int { return &n }

// strongLead is the reference high-signal lead: every company-scale
// signal set, seasonal construction work, local ownership, reachable
// decision maker.
func strongLead() signals.Lead {
	return signals.Lead{
		CompanyName:       "Acme Paving",
		JobTitle:          "Construction Crew Lead",
		PositionsCount:    intptr(6),
		Industry:          signals.IndustryConstruction,
		Models:            signals.ModelSet{signals.ModelSeasonal},
		MultiplePositions: true,
		GrowthLanguage:    true,
		ManagerRoles:      true,
		Salary50kPlus:     true,
		BenefitsMentioned: true,
		Professionalism:   8,
		Verified:          true,
		EmployeeEstimate:  "50-100",
		Ownership:         signals.OwnershipLocal,
		DecisionMakers:    []string{"Jordan Smith"},
	}
}

// unknownLead mirrors what Normalize produces for a completely
// unparseable posting.
func unknownLead() signals.Lead {
	return signals.Lead{
		Industry:         signals.IndustryOther,
		Professionalism:  signals.DefaultProfessionalism,
		Verified:         true,
		EmployeeEstimate: "unknown",
		Ownership:        signals.OwnershipUnknown,
	}
}

func TestScoreStrongLead(t *testing.T) {
	res := Score(strongLead())

	if res.Disqualified {
		t.Fatalf("strong lead unexpectedly disqualified: %v", res.DisqualificationReason)
	}
	cs := res.CategoryScores
	if cs.CompanyScale != 9 {
		t.Errorf("company scale: expected 9 (capped from 11), got %d", cs.CompanyScale)
	}
	// seasonal/construction +5, growth +3, positions>=5 +3
	if cs.ForecastingPain != 11 {
		t.Errorf("forecasting pain: expected 11, got %d", cs.ForecastingPain)
	}
	// local +3, "50" estimate +2, decision maker +2, not agency +1 = 8 -> 7
	if cs.Accessibility != 7 {
		t.Errorf("accessibility: expected 7 (capped from 8), got %d", cs.Accessibility)
	}
	if cs.DataQuality != 2 {
		t.Errorf("data quality: expected 2, got %d", cs.DataQuality)
	}
	if res.FinalScore != 29 {
		t.Errorf("final score: expected 29, got %d", res.FinalScore)
	}
	if res.Tier != Tier1 || res.Recommendation != RecommendPursue {
		t.Errorf("expected TIER 1/PURSUE, got %s/%s", res.Tier, res.Recommendation)
	}
}

func TestScoreAllUnknownLead(t *testing.T) {
	res := Score(unknownLead())

	if res.Disqualified {
		t.Fatalf("unknown lead must not be disqualified: %v", res.DisqualificationReason)
	}
	cs := res.CategoryScores
	if cs.CompanyScale != 0 {
		t.Errorf("company scale: expected 0, got %d", cs.CompanyScale)
	}
	if cs.ForecastingPain != 0 {
		t.Errorf("forecasting pain: expected 0, got %d", cs.ForecastingPain)
	}
	// only the not-an-agency point survives
	if cs.Accessibility != 1 {
		t.Errorf("accessibility: expected 1, got %d", cs.Accessibility)
	}
	// neutral professionalism 5 lands in the mid band
	if cs.DataQuality != 1 {
		t.Errorf("data quality: expected 1, got %d", cs.DataQuality)
	}
	if res.FinalScore != 2 || res.Tier != Tier5 || res.Recommendation != RecommendReject {
		t.Errorf("expected 2 / TIER 5 / REJECT, got %d / %s / %s", res.FinalScore, res.Tier, res.Recommendation)
	}
}

func TestDisqualificationZeroesEverything(t *testing.T) {
	l := strongLead()
	l.RedFlags.TotalRedFlags = 2

	res := Score(l)
	if !res.Disqualified {
		t.Fatal("expected disqualification")
	}
	if res.DisqualificationReason == nil || *res.DisqualificationReason != "2 or more red flags detected" {
		t.Errorf("unexpected reason: %v", res.DisqualificationReason)
	}
	if res.FinalScore != 0 {
		t.Errorf("disqualified final score must be 0, got %d", res.FinalScore)
	}
	if res.Tier != Tier5 {
		t.Errorf("disqualified tier must be TIER 5, got %s", res.Tier)
	}
	if (res.CategoryScores != CategoryScores{}) {
		t.Errorf("disqualified categories must be zero, got %+v", res.CategoryScores)
	}
}

func TestDisqualificationRulePriority(t *testing.T) {
	// Red flags and recruiting agency both apply: rule 1 must win.
	l := strongLead()
	l.RedFlags.RecruitingAgency = true
	l.RedFlags.TotalRedFlags = 2

	reason, ok := Disqualify(l)
	if !ok {
		t.Fatal("expected disqualification")
	}
	if reason != "2 or more red flags detected" {
		t.Errorf("first-match-wins violated, got %q", reason)
	}
}

func TestDisqualificationRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*signals.Lead)
		reason string
	}{
		{
			"unverified",
			func(l *signals.Lead) { l.Verified = false },
			"Company could not be verified as legitimate",
		},
		{
			"recruiting agency",
			func(l *signals.Lead) {
				l.RedFlags.RecruitingAgency = true
				l.RedFlags.TotalRedFlags = 1
			},
			"Posting is from recruiting agency, not direct employer",
		},
		{
			"national chain",
			func(l *signals.Lead) { l.Ownership = signals.OwnershipNationalChain },
			"National chain company (not ideal target)",
		},
		{
			"mlm",
			func(l *signals.Lead) {
				l.RedFlags.MLMLanguage = true
				l.RedFlags.TotalRedFlags = 1
			},
			"MLM/commission-only language detected",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := strongLead()
			tc.mutate(&l)
			reason, ok := Disqualify(l)
			if !ok {
				t.Fatal("expected disqualification")
			}
			if reason != tc.reason {
				t.Errorf("expected %q, got %q", tc.reason, reason)
			}
		})
	}
}

func TestEmployeeSizeBonusesAreMutuallyExclusive(t *testing.T) {
	l := unknownLead()

	l.EmployeeEstimate = "200+"
	if got := scoreCompanyScale(l); got != 1 {
		t.Errorf(`"200+": expected 1, got %d`, got)
	}

	// "50-200" matches both pattern sets; only the first may fire.
	l.EmployeeEstimate = "50-200"
	if got := scoreCompanyScale(l); got != 2 {
		t.Errorf(`"50-200": expected 2, got %d`, got)
	}

	l.EmployeeEstimate = "unknown"
	if got := scoreCompanyScale(l); got != 0 {
		t.Errorf(`"unknown": expected 0, got %d`, got)
	}
}

func TestAccessibilityEstimateExcludesUnknown(t *testing.T) {
	// "unknown" must not earn the size bonus even though the substring
	// check alone would be indifferent to it.
	l := unknownLead()
	l.EmployeeEstimate = "unknown"
	if got := scoreAccessibility(l); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}

	l.EmployeeEstimate = "<20"
	if got := scoreAccessibility(l); got != 3 {
		t.Errorf("expected 3 (size bonus + not agency), got %d", got)
	}
}

func TestDataQualityBands(t *testing.T) {
	for prof, want := range map[int]int{10: 2, 7: 2, 6: 1, 5: 1, 4: 0, 1: 0} {
		l := unknownLead()
		l.Professionalism = prof
		if got := scoreDataQuality(l); got != want {
			t.Errorf("professionalism %d: expected %d, got %d", prof, want, got)
		}
	}
}

func TestTierPartitionIsTotalAndExclusive(t *testing.T) {
	expect := func(score int) Tier {
		switch {
		case score >= 20:
			return Tier1
		case score >= 15:
			return Tier2
		case score >= 10:
			return Tier3
		case score >= 5:
			return Tier4
		default:
			return Tier5
		}
	}
	for score := 0; score <= 30; score++ {
		band := assignTier(score)
		if band.tier != expect(score) {
			t.Errorf("score %d: expected %s, got %s", score, expect(score), band.tier)
		}
	}
}

// TestCategoryBoundsOverInputSpace sweeps a broad grid of the
// boolean/enum input space and asserts every invariant that must hold
// for all inputs: category caps, sum identity, tier membership.
func TestCategoryBoundsOverInputSpace(t *testing.T) {
	bools := []bool{false, true}
	industries := []signals.Industry{
		signals.IndustryConstruction, signals.IndustryManufacturing,
		signals.IndustryRestaurant, signals.IndustryTrucking, signals.IndustryOther,
	}
	modelSets := []signals.ModelSet{
		nil,
		{signals.ModelSeasonal},
		{signals.ModelProjectBased, signals.ModelVolumeDriven},
		{signals.ModelSeasonal, signals.ModelProjectBased, signals.ModelVolumeDriven, signals.ModelServiceBased, signals.ModelRecurring},
	}
	estimates := []string{"unknown", "<20", "20-50", "50-100", "100-200", "200+"}
	ownerships := []signals.OwnershipType{
		signals.OwnershipLocal, signals.OwnershipRegional,
		signals.OwnershipNationalChain, signals.OwnershipUnknown,
	}
	positions := []*int{nil, intptr(1), intptr(5), intptr(40)}

	checked := 0
	for _, multi := range bools {
		for _, growth := range bools {
			for _, mgr := range bools {
				for _, salary := range bools {
					for _, ind := range industries {
						for _, models := range modelSets {
							for _, est := range estimates {
								for _, own := range ownerships {
									for _, pos := range positions {
										l := signals.Lead{
											Industry:          ind,
											Models:            models,
											MultiplePositions: multi,
											GrowthLanguage:    growth,
											ManagerRoles:      mgr,
											Salary50kPlus:     salary,
											BenefitsMentioned: multi,
											Professionalism:   5,
											Verified:          true,
											EmployeeEstimate:  est,
											Ownership:         own,
											PositionsCount:    pos,
										}
										assertInvariants(t, Score(l))
										checked++
									}
								}
							}
						}
					}
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("no combinations checked")
	}
}

func assertInvariants(t *testing.T, res Result) {
	t.Helper()
	cs := res.CategoryScores
	checks := []struct {
		name  string
		score int
		limit int
	}{
		{"company_scale", cs.CompanyScale, CompanyScaleCap},
		{"forecasting_pain", cs.ForecastingPain, ForecastingPainCap},
		{"accessibility", cs.Accessibility, AccessibilityCap},
		{"data_quality", cs.DataQuality, DataQualityCap},
	}
	for _, c := range checks {
		if c.score < 0 || c.score > c.limit {
			t.Fatalf("%s out of bounds: %d (cap %d)", c.name, c.score, c.limit)
		}
	}
	if res.Disqualified {
		if res.FinalScore != 0 {
			t.Fatalf("disqualified with non-zero final score %d", res.FinalScore)
		}
		return
	}
	if res.FinalScore != cs.Total() {
		t.Fatalf("final score %d != category sum %d", res.FinalScore, cs.Total())
	}
	if res.FinalScore < 0 || res.FinalScore > 30 {
		t.Fatalf("final score out of range: %d", res.FinalScore)
	}
	if assignTier(res.FinalScore).tier != res.Tier {
		t.Fatalf("tier %s inconsistent with score %d", res.Tier, res.FinalScore)
	}
}
