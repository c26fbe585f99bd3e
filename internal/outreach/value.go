// Package outreach turns a scored lead and its needs analysis into
// the canned messaging artifacts the sales side consumes: value
// propositions, a diagnosis question, and a filled call script.
// Everything here is template selection and substitution; identical
// inputs always produce identical text.
package outreach

import (
	"fmt"
	"strings"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// ValueProposition is one rendered pitch variant.
type ValueProposition struct {
	Version           string `json:"version"`
	Text              string `json:"text"`
	PainAddressed     string `json:"pain_addressed"`
	OutcomeEmphasized string `json:"outcome_emphasized"`
}

type valueTemplate struct {
	// text takes the company display name as its only argument.
	text              string
	painAddressed     string
	outcomeEmphasized string
}

var valueTemplates = map[signals.Industry]valueTemplate{
	signals.IndustryConstruction: {
		text:              "Forecasta gives %s a forward view of crew demand across the project pipeline, so hiring starts before the next bid lands instead of after",
		painAddressed:     "project-driven crew swings",
		outcomeEmphasized: "crews sized to the pipeline",
	},
	signals.IndustryManufacturing: {
		text:              "Forecasta forecasts production volume for %s weeks ahead, so shift staffing follows real demand instead of last month's schedule",
		painAddressed:     "volume-driven shift churn",
		outcomeEmphasized: "overtime cut without missed output",
	},
	signals.IndustryRestaurant: {
		text:              "Forecasta predicts covers and rush periods for %s, so the floor is staffed to demand instead of to a fixed template",
		painAddressed:     "unpredictable service rushes",
		outcomeEmphasized: "labor cost matched to covers",
	},
	signals.IndustryTrucking: {
		text:              "Forecasta projects freight volume by lane for %s, so driver capacity is committed where loads will actually be",
		painAddressed:     "freight and lane variability",
		outcomeEmphasized: "fewer turned-down loads and deadhead miles",
	},
	signals.IndustryLandscaping: {
		text:              "Forecasta builds %s a seasonal staffing curve from its own history, so spring crews are hired before the season breaks",
		painAddressed:     "seasonal hiring lag",
		outcomeEmphasized: "peak season fully crewed",
	},
	signals.IndustryRetail: {
		text:              "Forecasta forecasts store traffic and order volume for %s, so floor hours flex with demand instead of the same roster every week",
		painAddressed:     "traffic-driven staffing misses",
		outcomeEmphasized: "hours spent where customers are",
	},
}

var genericValueTemplate = valueTemplate{
	text:              "Forecasta gives %s a forward view of workload and staffing needs, so headcount decisions are made with numbers instead of guesswork",
	painAddressed:     "workforce planning without a forward view",
	outcomeEmphasized: "labor cost aligned to actual demand",
}

// ValuePropositions renders the full and short pitch variants for a
// lead. The short variant cuts the template at its first clause
// boundary.
func ValuePropositions(l signals.Lead) []ValueProposition {
	tmpl, ok := valueTemplates[l.Industry]
	if !ok {
		tmpl = genericValueTemplate
	}

	full := fmt.Sprintf(tmpl.text, companyDisplay(l))
	return []ValueProposition{
		{
			Version:           "full",
			Text:              full,
			PainAddressed:     tmpl.painAddressed,
			OutcomeEmphasized: tmpl.outcomeEmphasized,
		},
		{
			Version:           "short",
			Text:              shortVersion(full),
			PainAddressed:     tmpl.painAddressed,
			OutcomeEmphasized: tmpl.outcomeEmphasized,
		},
	}
}

// shortVersion truncates at the first clause boundary (comma or
// semicolon). Templates without one are already short.
func shortVersion(text string) string {
	if i := strings.IndexAny(text, ",;"); i > 0 {
		return strings.TrimSpace(text[:i])
	}
	return text
}

func companyDisplay(l signals.Lead) string {
	if l.CompanyName != "" {
		return l.CompanyName
	}
	return "your team"
}
