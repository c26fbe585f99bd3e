package signals

import (
	"encoding/json"
	"testing"
)

func ptr(s string) *string { return &s }

func intptr(n int) *int { return &n }

func TestNormalizeNilInputsYieldAllUnknownLead(t *testing.T) {
	l := Normalize(nil, nil)

	if l.Industry != IndustryOther {
		t.Errorf("expected industry Other, got %q", l.Industry)
	}
	if len(l.Models) != 0 {
		t.Errorf("expected empty model set, got %v", l.Models)
	}
	if l.Professionalism != DefaultProfessionalism {
		t.Errorf("expected default professionalism %d, got %d", DefaultProfessionalism, l.Professionalism)
	}
	if l.EmployeeEstimate != "unknown" {
		t.Errorf("expected unknown estimate, got %q", l.EmployeeEstimate)
	}
	if l.Ownership != OwnershipUnknown {
		t.Errorf("expected unknown ownership, got %q", l.Ownership)
	}
	if !l.Verified {
		t.Error("absent research must not mark the lead unverified")
	}
	if l.PositionsCount != nil {
		t.Errorf("expected nil positions count, got %d", *l.PositionsCount)
	}
}

func TestNormalizeValidatesEnums(t *testing.T) {
	ext := &Extraction{
		BusinessSignals: BusinessSignals{
			Industry:      "construction/trades",
			BusinessModel: []string{"Seasonal", "made-up-model", "seasonal"},
		},
	}
	res := &Research{OwnershipType: "Franchise empire", EmployeeCountEstimate: "  "}

	l := Normalize(ext, res)

	if l.Industry != IndustryConstruction {
		t.Errorf("case-insensitive industry match failed, got %q", l.Industry)
	}
	if len(l.Models) != 1 || !l.Models.Has(ModelSeasonal) {
		t.Errorf("expected deduped {seasonal}, got %v", l.Models)
	}
	if l.Ownership != OwnershipUnknown {
		t.Errorf("unrecognized ownership should normalize to unknown, got %q", l.Ownership)
	}
	if l.EmployeeEstimate != "unknown" {
		t.Errorf("blank estimate should normalize to unknown, got %q", l.EmployeeEstimate)
	}
}

func TestNormalizePositionsCountFromFreeText(t *testing.T) {
	cases := []struct {
		raw  string
		want *int
	}{
		{"5", intptr(5)},
		{"5+", intptr(5)},
		{"3-5 openings", intptr(3)},
		{"several", nil},
		{"", nil},
	}
	for _, tc := range cases {
		ext := &Extraction{Job: Job{PositionsCount: Count{Raw: tc.raw}}}
		got := Normalize(ext, nil).PositionsCount
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("raw %q: expected nil, got %d", tc.raw, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("raw %q: expected %d, got %v", tc.raw, *tc.want, got)
		}
	}
}

func TestCountUnmarshalVariants(t *testing.T) {
	cases := []struct {
		json string
		want string
	}{
		{`{"positions_count": 5}`, "5"},
		{`{"positions_count": "5+"}`, "5+"},
		{`{"positions_count": null}`, ""},
		{`{"positions_count": [3]}`, ""},
		{`{}`, ""},
	}
	for _, tc := range cases {
		var job Job
		if err := json.Unmarshal([]byte(tc.json), &job); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.json, err)
		}
		if job.PositionsCount.Raw != tc.want {
			t.Errorf("%s: expected raw %q, got %q", tc.json, tc.want, job.PositionsCount.Raw)
		}
	}
}

func TestNormalizeRedFlagTotalNeverUndercounts(t *testing.T) {
	ext := &Extraction{
		RedFlags: RedFlags{MLMLanguage: true, CommissionOnly: true, TotalRedFlags: 0},
	}
	l := Normalize(ext, nil)
	if l.RedFlags.TotalRedFlags != 2 {
		t.Errorf("expected reconciled total 2, got %d", l.RedFlags.TotalRedFlags)
	}

	// A stated total above the flag count is kept as-is.
	ext.RedFlags.TotalRedFlags = 3
	l = Normalize(ext, nil)
	if l.RedFlags.TotalRedFlags != 3 {
		t.Errorf("expected stated total 3 kept, got %d", l.RedFlags.TotalRedFlags)
	}
}

func TestNormalizeClampsProfessionalism(t *testing.T) {
	for raw, want := range map[int]int{0: 1, -3: 1, 11: 10, 7: 7} {
		ext := &Extraction{BusinessSignals: BusinessSignals{ProfessionalismScore: intptr(raw)}}
		if got := Normalize(ext, nil).Professionalism; got != want {
			t.Errorf("professionalism %d: expected %d, got %d", raw, want, got)
		}
	}
}

func TestNormalizeTrimsCompanyFields(t *testing.T) {
	ext := &Extraction{
		Company: Company{Name: ptr("  Acme Paving  "), Location: ptr("Denver")},
		Job:     Job{Title: ptr("Crew Lead")},
	}
	l := Normalize(ext, nil)
	if l.CompanyName != "Acme Paving" {
		t.Errorf("expected trimmed name, got %q", l.CompanyName)
	}
	if l.Location != "Denver" || l.JobTitle != "Crew Lead" {
		t.Errorf("unexpected passthrough: %q / %q", l.Location, l.JobTitle)
	}
}
