package signals

import (
	"encoding/json"
	"strings"
)

// Industry classifies the posting company's line of business.
type Industry string

const (
	IndustryConstruction  Industry = "Construction/Trades"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryRestaurant    Industry = "Restaurant/Hospitality"
	IndustryTrucking      Industry = "Trucking/Logistics"
	IndustryLandscaping   Industry = "Landscaping/Seasonal"
	IndustryRetail        Industry = "Retail"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryProfessional  Industry = "Professional Services"
	IndustryOther         Industry = "Other"
)

// Industries lists every recognized industry value.
var Industries = []Industry{
	IndustryConstruction,
	IndustryManufacturing,
	IndustryRestaurant,
	IndustryTrucking,
	IndustryLandscaping,
	IndustryRetail,
	IndustryHealthcare,
	IndustryProfessional,
	IndustryOther,
}

// BusinessModel describes how the company generates revenue.
type BusinessModel string

const (
	ModelProjectBased BusinessModel = "project-based"
	ModelSeasonal     BusinessModel = "seasonal"
	ModelVolumeDriven BusinessModel = "volume-driven"
	ModelServiceBased BusinessModel = "service-based"
	ModelRecurring    BusinessModel = "recurring"
)

// ModelSet is the set of business models detected in a posting.
type ModelSet []BusinessModel

// Has reports whether the set contains m.
func (s ModelSet) Has(m BusinessModel) bool {
	for _, v := range s {
		if v == m {
			return true
		}
	}
	return false
}

// OwnershipType classifies company ownership from research.
type OwnershipType string

const (
	OwnershipLocal         OwnershipType = "local"
	OwnershipRegional      OwnershipType = "regional"
	OwnershipNationalChain OwnershipType = "national chain"
	OwnershipUnknown       OwnershipType = "unknown"
)

// Count tolerates the variant typing the extractor produces for
// positions_count: a JSON number, a free-text string like "5+" or
// "3-5 openings", or null.
type Count struct {
	Raw string
}

// UnmarshalJSON accepts numbers, strings, and null.
func (c *Count) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		c.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		c.Raw = n.String()
		return nil
	}
	// Wrong-typed values degrade to "not stated" instead of failing.
	c.Raw = ""
	return nil
}

// MarshalJSON emits the parsed integer when one exists, else null.
func (c Count) MarshalJSON() ([]byte, error) {
	if n := firstInt(c.Raw); n != nil {
		return json.Marshal(*n)
	}
	return []byte("null"), nil
}

// Company holds the company fields from a posting extraction.
// All fields are nullable: the extractor returns what it can find.
type Company struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Contact     *string `json:"contact"`
	PostingDate *string `json:"posting_date"`
}

// Job holds the job fields from a posting extraction.
type Job struct {
	Title           *string  `json:"title"`
	PositionsCount  Count    `json:"positions_count"`
	EmploymentType  *string  `json:"employment_type"`
	Compensation    *string  `json:"compensation"`
	ExperienceLevel *string  `json:"experience_level"`
	Benefits        []string `json:"benefits"`
}

// BusinessSignals holds the qualitative signals the extractor reads
// out of the posting text.
type BusinessSignals struct {
	Industry             string   `json:"industry"`
	BusinessModel        []string `json:"business_model"`
	MultiplePositions    bool     `json:"multiple_positions"`
	GrowthLanguage       bool     `json:"growth_language"`
	ManagerRoles         bool     `json:"manager_roles"`
	Salary50kPlus        bool     `json:"salary_50k_plus"`
	BenefitsMentioned    bool     `json:"benefits_mentioned"`
	ProfessionalismScore *int     `json:"professionalism_score"`
}

// RedFlags holds the hard warning signs the extractor looks for.
type RedFlags struct {
	RecruitingAgency bool `json:"recruiting_agency"`
	MLMLanguage      bool `json:"mlm_language"`
	NoCompanyName    bool `json:"no_company_name"`
	VagueDescription bool `json:"vague_description"`
	CommissionOnly   bool `json:"commission_only"`
	ExcessiveUrgency bool `json:"excessive_urgency"`
	TotalRedFlags    int  `json:"total_red_flags"`
}

// Set returns how many individual flags are raised.
func (r RedFlags) Set() int {
	n := 0
	for _, b := range []bool{
		r.RecruitingAgency, r.MLMLanguage, r.NoCompanyName,
		r.VagueDescription, r.CommissionOnly, r.ExcessiveUrgency,
	} {
		if b {
			n++
		}
	}
	return n
}

// Extraction is the raw structured record produced by the LLM
// extractor for one posting. Any field may be missing or null.
type Extraction struct {
	Company         Company         `json:"company"`
	Job             Job             `json:"job"`
	BusinessSignals BusinessSignals `json:"business_signals"`
	RedFlags        RedFlags        `json:"red_flags"`
}

// Research is the company enrichment record. A researcher that finds
// nothing returns the placeholder from UnknownResearch.
type Research struct {
	VerifiedLegitimate    bool     `json:"verified_legitimate"`
	EmployeeCountEstimate string   `json:"employee_count_estimate"`
	OwnershipType         string   `json:"ownership_type"`
	DecisionMakers        []string `json:"decision_makers"`
}

// UnknownResearch is the all-unknown placeholder used when company
// research is disabled or failed. Verification defaults to true so an
// absent lookup never disqualifies a lead on its own.
func UnknownResearch() Research {
	return Research{
		VerifiedLegitimate:    true,
		EmployeeCountEstimate: "unknown",
		OwnershipType:         string(OwnershipUnknown),
	}
}
