package signals

import (
	"regexp"
	"strconv"
	"strings"
)

// Neutral professionalism assigned when the extractor gave no score.
// Mid-range so missing data is never penalized harder than it is
// rewarded.
const DefaultProfessionalism = 5

// Lead is the canonical, fully-defaulted scoring input. Every field
// is safe to read: string fields are non-nil, enums are validated,
// and the only remaining nullable is PositionsCount, whose absence is
// meaningful to the scorers.
type Lead struct {
	CompanyName     string
	Location        string
	Contact         string
	PostingDate     string
	JobTitle        string
	PositionsCount  *int
	EmploymentType  string
	Compensation    string
	ExperienceLevel string
	Benefits        []string

	Industry          Industry
	Models            ModelSet
	MultiplePositions bool
	GrowthLanguage    bool
	ManagerRoles      bool
	Salary50kPlus     bool
	BenefitsMentioned bool
	Professionalism   int

	RedFlags RedFlags

	Verified         bool
	EmployeeEstimate string
	Ownership        OwnershipType
	DecisionMakers   []string
}

var intPattern = regexp.MustCompile(`\d+`)

// firstInt extracts the first integer from free text ("5+" -> 5,
// "3-5 openings" -> 3). Returns nil when no digits are present.
func firstInt(text string) *int {
	m := intPattern.FindString(text)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// Normalize coerces a raw extraction and research record into a Lead.
// It never fails: nil inputs and missing fields become the documented
// defaults, so a completely unparseable posting normalizes to an
// all-unknown lead rather than an error.
func Normalize(ext *Extraction, res *Research) Lead {
	if ext == nil {
		ext = &Extraction{}
	}
	if res == nil {
		unknown := UnknownResearch()
		res = &unknown
	}

	lead := Lead{
		CompanyName:     deref(ext.Company.Name),
		Location:        deref(ext.Company.Location),
		Contact:         deref(ext.Company.Contact),
		PostingDate:     deref(ext.Company.PostingDate),
		JobTitle:        deref(ext.Job.Title),
		PositionsCount:  firstInt(ext.Job.PositionsCount.Raw),
		EmploymentType:  deref(ext.Job.EmploymentType),
		Compensation:    deref(ext.Job.Compensation),
		ExperienceLevel: deref(ext.Job.ExperienceLevel),
		Benefits:        ext.Job.Benefits,

		Industry:          normalizeIndustry(ext.BusinessSignals.Industry),
		Models:            normalizeModels(ext.BusinessSignals.BusinessModel),
		MultiplePositions: ext.BusinessSignals.MultiplePositions,
		GrowthLanguage:    ext.BusinessSignals.GrowthLanguage,
		ManagerRoles:      ext.BusinessSignals.ManagerRoles,
		Salary50kPlus:     ext.BusinessSignals.Salary50kPlus,
		BenefitsMentioned: ext.BusinessSignals.BenefitsMentioned,
		Professionalism:   normalizeProfessionalism(ext.BusinessSignals.ProfessionalismScore),

		RedFlags: normalizeRedFlags(ext.RedFlags),

		Verified:         res.VerifiedLegitimate,
		EmployeeEstimate: normalizeEstimate(res.EmployeeCountEstimate),
		Ownership:        normalizeOwnership(res.OwnershipType),
		DecisionMakers:   res.DecisionMakers,
	}
	return lead
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func normalizeIndustry(raw string) Industry {
	raw = strings.TrimSpace(raw)
	for _, ind := range Industries {
		if strings.EqualFold(raw, string(ind)) {
			return ind
		}
	}
	return IndustryOther
}

func normalizeModels(raw []string) ModelSet {
	known := []BusinessModel{
		ModelProjectBased, ModelSeasonal, ModelVolumeDriven,
		ModelServiceBased, ModelRecurring,
	}
	var set ModelSet
	for _, r := range raw {
		r = strings.TrimSpace(r)
		for _, m := range known {
			if strings.EqualFold(r, string(m)) && !set.Has(m) {
				set = append(set, m)
			}
		}
	}
	return set
}

func normalizeProfessionalism(score *int) int {
	if score == nil {
		return DefaultProfessionalism
	}
	n := *score
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return n
}

// normalizeRedFlags keeps the extractor's stated total unless it
// undercounts the individual flags, in which case the flags win.
func normalizeRedFlags(r RedFlags) RedFlags {
	if set := r.Set(); r.TotalRedFlags < set {
		r.TotalRedFlags = set
	}
	return r
}

func normalizeEstimate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "unknown"
	}
	return raw
}

func normalizeOwnership(raw string) OwnershipType {
	raw = strings.TrimSpace(raw)
	for _, o := range []OwnershipType{OwnershipLocal, OwnershipRegional, OwnershipNationalChain} {
		if strings.EqualFold(raw, string(o)) {
			return o
		}
	}
	return OwnershipUnknown
}
