package scoring

import (
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// disqualificationRule pairs a predicate with the reason reported when
// it fires.
type disqualificationRule struct {
	applies func(signals.Lead) bool
	reason  string
}

// disqualificationRules is evaluated in declared order and the first
// match wins. Several rules can apply to the same lead (a recruiting
// agency posting often also carries two red flags), so the order is
// part of the contract, not an accident of source layout.
var disqualificationRules = []disqualificationRule{
	{
		applies: func(l signals.Lead) bool { return l.RedFlags.TotalRedFlags >= 2 },
		reason:  "2 or more red flags detected",
	},
	{
		applies: func(l signals.Lead) bool { return !l.Verified },
		reason:  "Company could not be verified as legitimate",
	},
	{
		applies: func(l signals.Lead) bool { return l.RedFlags.RecruitingAgency },
		reason:  "Posting is from recruiting agency, not direct employer",
	},
	{
		applies: func(l signals.Lead) bool { return l.Ownership == signals.OwnershipNationalChain },
		reason:  "National chain company (not ideal target)",
	},
	{
		applies: func(l signals.Lead) bool { return l.RedFlags.MLMLanguage },
		reason:  "MLM/commission-only language detected",
	},
}

// Disqualify returns the reason for the first matching hard-exclusion
// rule, or ok=false when the lead survives all of them.
func Disqualify(l signals.Lead) (reason string, ok bool) {
	for _, r := range disqualificationRules {
		if r.applies(l) {
			return r.reason, true
		}
	}
	return "", false
}
