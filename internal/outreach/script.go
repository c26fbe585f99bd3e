package outreach

import (
	"fmt"
	"strings"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/needs"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// CallScript is the filled cold-call template for one lead.
type CallScript struct {
	TargetContact     string `json:"target_contact"`
	PatternInterrupt  string `json:"pattern_interrupt"`
	DiagnosisQuestion string `json:"diagnosis_question"`
	ValueStatement    string `json:"value_statement"`
	MeetingAsk        string `json:"meeting_ask"`
}

const meetingAsk = "Would you be open to a 15-minute call this week to see what your numbers would look like?"

type diagnosisRule struct {
	matches  func(painCategory string, l signals.Lead) bool
	question string
}

// diagnosisRules is a fixed priority chain over the top pain
// category's wording, with an industry fallback for trucking before
// the generic question.
var diagnosisRules = []diagnosisRule{
	{
		matches: func(c string, _ signals.Lead) bool {
			return strings.Contains(c, "Project")
		},
		question: "When you win a new project, how far in advance do you usually know what crew you'll need — and how often does the answer arrive too late?",
	},
	{
		matches: func(c string, _ signals.Lead) bool {
			return strings.Contains(c, "Seasonal")
		},
		question: "How do you decide when to start seasonal hiring — and how did that timing work out for you last year?",
	},
	{
		matches: func(c string, _ signals.Lead) bool {
			return strings.Contains(c, "Volume") || strings.Contains(c, "Demand")
		},
		question: "How do you set next week's schedule when this week's volume surprised you?",
	},
	{
		matches: func(_ string, l signals.Lead) bool {
			return l.Industry == signals.IndustryTrucking
		},
		question: "How often do you turn down freight because the drivers aren't where the loads are?",
	},
}

const genericDiagnosisQuestion = "How do you currently decide how many people you'll need a month or two from now?"

// DiagnosisQuestion picks the discovery question for the lead's top
// pain point, first match in declared order winning.
func DiagnosisQuestion(l signals.Lead, analysis needs.Analysis) string {
	category := ""
	if len(analysis.PrimaryPainPoints) > 0 {
		category = analysis.PrimaryPainPoints[0].PainCategory
	}
	for _, r := range diagnosisRules {
		if r.matches(category, l) {
			return r.question
		}
	}
	return genericDiagnosisQuestion
}

// BuildCallScript assembles the cold-call script from the lead, its
// needs analysis, and the already-rendered value propositions.
func BuildCallScript(l signals.Lead, analysis needs.Analysis, props []ValueProposition) CallScript {
	return CallScript{
		TargetContact:     targetContact(l),
		PatternInterrupt:  patternInterrupt(l),
		DiagnosisQuestion: DiagnosisQuestion(l, analysis),
		ValueStatement:    valueStatement(props),
		MeetingAsk:        meetingAsk,
	}
}

// targetContact names who to ask for. A posting for a manager role
// means the caller should go over it to the owner; otherwise the
// default operations contact applies.
func targetContact(l signals.Lead) string {
	if strings.Contains(strings.ToLower(l.JobTitle), "manager") {
		return "Owner or General Manager"
	}
	return "Operations Manager or Owner"
}

// patternInterrupt opens the call with the posting itself, using the
// positions count when one was stated and correct singular/plural
// grammar either way.
func patternInterrupt(l signals.Lead) string {
	title := l.JobTitle
	if title == "" {
		title = "new staff"
	}
	if l.PositionsCount != nil && *l.PositionsCount > 1 {
		return fmt.Sprintf(
			"I noticed you're hiring %d %s positions right now — usually that many openings at once means the workload got ahead of the roster.",
			*l.PositionsCount, title,
		)
	}
	return fmt.Sprintf(
		"I noticed you're hiring a %s right now — that usually means the workload is shifting under you.",
		title,
	)
}

func valueStatement(props []ValueProposition) string {
	if len(props) == 0 {
		return fmt.Sprintf(genericValueTemplate.text, "your team") + "."
	}
	return props[0].Text + "."
}
