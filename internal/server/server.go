// Package server serves the local leads dashboard: a tier-ordered
// list of scored leads and a detail page with the needs analysis and
// call script for each.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/lead"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the HTTP server for the leads dashboard.
type Server struct {
	db    *database.DB
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"tierClass": tierClass,
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "lead.html", "postings.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Routes
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/lead/", s.handleLead)
	s.mux.HandleFunc("/postings", s.handlePostings)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tier := r.URL.Query().Get("tier")
	qualifiedOnly := r.URL.Query().Get("qualified") == "1"

	leads, err := s.db.GetLeads(tier, qualifiedOnly)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	stats, _ := s.db.GetStats()
	tiers, _ := s.db.GetTierCounts()

	s.render(w, "index.html", map[string]any{
		"Leads":         leads,
		"Stats":         stats,
		"Tiers":         tiers,
		"ActiveTier":    tier,
		"QualifiedOnly": qualifiedOnly,
	})
}

func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	leadID := strings.TrimPrefix(r.URL.Path, "/lead/")
	if leadID == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	row, err := s.db.GetLead(leadID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	var analysis lead.Analysis
	if err := json.Unmarshal([]byte(row.AnalysisJSON), &analysis); err != nil {
		log.Printf("Decoding analysis for lead %s: %v", leadID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "lead.html", map[string]any{
		"Lead":     row,
		"Analysis": analysis,
		"Script":   scriptMarkdown(analysis),
	})
}

func (s *Server) handlePostings(w http.ResponseWriter, r *http.Request) {
	postings, err := s.db.GetRecentPostings(200)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "postings.html", map[string]any{
		"Postings": postings,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// scriptMarkdown lays the call script out as a markdown checklist for
// the detail page.
func scriptMarkdown(a lead.Analysis) string {
	if a.CallScript == nil {
		return ""
	}
	cs := a.CallScript
	var sb strings.Builder
	sb.WriteString("**Ask for:** " + cs.TargetContact + "\n\n")
	sb.WriteString("1. " + cs.PatternInterrupt + "\n")
	sb.WriteString("2. " + cs.DiagnosisQuestion + "\n")
	sb.WriteString("3. " + cs.ValueStatement + "\n")
	sb.WriteString("4. " + cs.MeetingAsk + "\n")
	return sb.String()
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// tierClass maps "TIER 1" to the css class "tier-1".
func tierClass(tier string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tier), " ", "-"))
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, port int) error {
	srv, err := New(db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
