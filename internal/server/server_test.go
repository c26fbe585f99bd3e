package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/lead"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

// storeSampleLead analyzes a strong construction lead and stores it.
func storeSampleLead(t *testing.T, db *database.DB) string {
	t.Helper()

	prof := 8
	ext := &signals.Extraction{
		Company: signals.Company{Name: ptr("Acme Paving"), Location: ptr("Denver")},
		Job: signals.Job{
			Title:          ptr("Construction Crew Lead"),
			PositionsCount: signals.Count{Raw: "6"},
		},
		BusinessSignals: signals.BusinessSignals{
			Industry:             string(signals.IndustryConstruction),
			BusinessModel:        []string{"project-based"},
			MultiplePositions:    true,
			GrowthLanguage:       true,
			ManagerRoles:         true,
			Salary50kPlus:        true,
			BenefitsMentioned:    true,
			ProfessionalismScore: &prof,
		},
	}
	res := &signals.Research{
		VerifiedLegitimate:    true,
		EmployeeCountEstimate: "20-50",
		OwnershipType:         "local",
		DecisionMakers:        []string{"Owner"},
	}

	record := lead.New(ext, res)
	data, err := json.Marshal(record.Analysis)
	if err != nil {
		t.Fatal(err)
	}

	pid, _ := db.InsertPosting("https://denver.craigslist.org/jjj/d/x/1.html", "Crew Lead Wanted",
		ptr("denver"), ptr("jjj"), nil, ptr("body"))
	_, err = db.InsertLead(record.LeadID, pid, &record.CompanyName, &record.JobTitle, &record.Location,
		ptr(string(signals.IndustryConstruction)), string(record.LeadScoring.Tier),
		record.LeadScoring.FinalScore, false, nil, string(data))
	if err != nil {
		t.Fatal(err)
	}
	return record.LeadID
}

func TestIndexRoute(t *testing.T) {
	db := openTestDB(t)
	storeSampleLead(t, db)

	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Acme Paving") {
		t.Error("expected lead company in index")
	}
	if !strings.Contains(body, "TIER 1") {
		t.Error("expected tier badge in index")
	}
}

func TestIndexTierFilter(t *testing.T) {
	db := openTestDB(t)
	storeSampleLead(t, db)

	srv, _ := New(db)

	req := httptest.NewRequest("GET", "/?tier=TIER+5", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Acme Paving") {
		t.Error("tier filter should hide non-matching leads")
	}
}

func TestLeadRoute(t *testing.T) {
	db := openTestDB(t)
	leadID := storeSampleLead(t, db)

	srv, _ := New(db)

	req := httptest.NewRequest("GET", "/lead/"+leadID, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Acme Paving") {
		t.Error("expected company name on detail page")
	}
	if !strings.Contains(body, "Project Pipeline Uncertainty") {
		t.Error("expected pain point on detail page")
	}
	if !strings.Contains(body, "Call script") {
		t.Error("expected call script section")
	}
	if !strings.Contains(body, "15-minute call") {
		t.Error("expected meeting ask in rendered script")
	}
}

func TestLeadRouteNotFound(t *testing.T) {
	db := openTestDB(t)
	srv, _ := New(db)

	req := httptest.NewRequest("GET", "/lead/no-such-id", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPostingsRoute(t *testing.T) {
	db := openTestDB(t)
	storeSampleLead(t, db)

	srv, _ := New(db)

	req := httptest.NewRequest("GET", "/postings", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Crew Lead Wanted") {
		t.Error("expected posting title in list")
	}
	if !strings.Contains(body, "denver") {
		t.Error("expected posting city in list")
	}
}

func TestStaticRoute(t *testing.T) {
	db := openTestDB(t)
	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "font-sans") {
		t.Error("expected CSS content")
	}
}

func TestTierClass(t *testing.T) {
	if got := tierClass("TIER 1"); got != "tier-1" {
		t.Errorf("got %q", got)
	}
	if got := tierClass(" TIER 5 "); got != "tier-5" {
		t.Errorf("got %q", got)
	}
}
