// Package pipeline orchestrates the 6-step lead generation run:
// scrape, fetch, extract, research, score, store. The run is
// idempotent: postings already analyzed are skipped, so re-running
// after a partial failure only processes what remains.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/config"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/extract"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/fetch"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/lead"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/llm"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/research"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/scrape"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/signals"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline orchestrates the 6-step lead generation pipeline.
type Pipeline struct {
	cfg        *config.Config
	db         *database.DB
	extractor  *extract.Extractor
	researcher research.Researcher

	// working set for one run, keyed by posting ID
	postings    []database.Posting
	extractions map[int64]*signals.Extraction
	lookups     map[int64]*signals.Research
	records     map[int64]*lead.Record
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	ex := cfg.Extraction
	provider := llm.CreateProvider(llm.Options{
		Provider:        ex.Provider,
		Model:           ex.Model,
		OllamaURL:       ex.OllamaURL,
		AnthropicModel:  ex.AnthropicModel,
		AnthropicKeyEnv: ex.AnthropicKeyEnv,
		OpenAIModel:     ex.OpenAIModel,
		OpenAIKeyEnv:    ex.APIKeyEnv,
	})

	var researcher research.Researcher = research.StaticResearcher{}
	if cfg.Research.Enabled {
		researcher = research.NewLLMResearcher(provider)
	}

	return &Pipeline{
		cfg:        cfg,
		db:         db,
		extractor:  extract.NewExtractor(provider),
		researcher: researcher,
	}
}

// Run executes the full 6-step pipeline.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}
	p.extractions = make(map[int64]*signals.Extraction)
	p.lookups = make(map[int64]*signals.Research)
	p.records = make(map[int64]*lead.Record)

	step := p.runScrape(ctx)
	r.Steps = append(r.Steps, step)

	step = p.runFetch()
	r.Steps = append(r.Steps, step)

	step = p.runExtract(ctx)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runResearch(ctx)
	r.Steps = append(r.Steps, step)

	step = p.runScore()
	r.Steps = append(r.Steps, step)

	step = p.runStore()
	r.Steps = append(r.Steps, step)

	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun() *Result {
	r := &Result{}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Scrape",
		Summary: fmt.Sprintf("[dry-run] would scrape %d configured searches", len(p.cfg.Sources.Searches)),
	})

	needing, _ := p.db.GetPostingsNeedingFetch()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("[dry-run] %d postings need body fetching", len(needing)),
	})

	unanalyzed, _ := p.db.GetUnanalyzedPostings()
	for _, name := range []string{"Extract", "Research", "Score"} {
		r.Steps = append(r.Steps, StepResult{
			Name:    name,
			Summary: fmt.Sprintf("[dry-run] %d postings pending analysis", len(unanalyzed)),
		})
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Store",
		Summary: fmt.Sprintf("[dry-run] would store %d lead records", len(unanalyzed)),
	})

	return r
}

func (p *Pipeline) runScrape(ctx context.Context) StepResult {
	log.Println("Step 1/6: Scraping searches...")
	scraper := scrape.NewScraper(p.cfg, p.db)
	result := scraper.Scrape(ctx)
	return StepResult{
		Name:    "Scrape",
		Summary: fmt.Sprintf("Found %d new postings (%d total, %d duplicates)", result.NewPostings, result.TotalFound, result.Duplicates),
	}
}

func (p *Pipeline) runFetch() StepResult {
	log.Println("Step 2/6: Fetching posting bodies...")
	fetcher := fetch.NewBodyFetcher(p.db, 15*time.Second)
	result := fetcher.FetchMissingBodies()
	return StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("Fetched %d bodies, %d failed", result.Fetched, result.Failed),
	}
}

func (p *Pipeline) runExtract(ctx context.Context) StepResult {
	log.Println("Step 3/6: Extracting business signals...")

	postings, err := p.db.GetUnanalyzedPostings()
	if err != nil {
		return StepResult{Name: "Extract", Err: err}
	}
	p.postings = postings

	errors := 0
	for _, posting := range postings {
		body := ""
		if posting.Body != nil {
			body = *posting.Body
		}
		ext, err := p.extractor.Extract(ctx, posting.Title, body)
		if err != nil {
			log.Printf("Extraction failed for posting %d: %v", posting.ID, err)
			errors++
			continue
		}
		p.extractions[posting.ID] = ext
	}

	if len(p.extractions) == 0 && errors > 0 {
		return StepResult{Name: "Extract", Err: fmt.Errorf("all %d extractions failed", errors)}
	}
	return StepResult{
		Name:    "Extract",
		Summary: fmt.Sprintf("Extracted %d postings, %d errors", len(p.extractions), errors),
	}
}

func (p *Pipeline) runResearch(ctx context.Context) StepResult {
	log.Println("Step 4/6: Researching companies...")

	errors := 0
	for id, ext := range p.extractions {
		name := ""
		if ext.Company.Name != nil {
			name = *ext.Company.Name
		}
		location := ""
		if ext.Company.Location != nil {
			location = *ext.Company.Location
		}

		res, err := p.researcher.Research(ctx, name, location, ext.BusinessSignals.Industry)
		if err != nil {
			log.Printf("Research failed for posting %d: %v", id, err)
			errors++
			// res is still the safe placeholder
		}
		p.lookups[id] = &res
	}

	return StepResult{
		Name:    "Research",
		Summary: fmt.Sprintf("Researched %d companies, %d errors", len(p.lookups)-errors, errors),
	}
}

func (p *Pipeline) runScore() StepResult {
	log.Println("Step 5/6: Scoring leads...")

	qualified, disqualified := 0, 0
	for id, ext := range p.extractions {
		record := lead.New(ext, p.lookups[id])
		p.records[id] = record
		if record.LeadScoring.Disqualified {
			disqualified++
		} else {
			qualified++
		}
	}

	return StepResult{
		Name:    "Score",
		Summary: fmt.Sprintf("Scored %d leads: %d qualified, %d disqualified", len(p.records), qualified, disqualified),
	}
}

func (p *Pipeline) runStore() StepResult {
	log.Println("Step 6/6: Storing lead records...")

	stored, errors := 0, 0
	for _, posting := range p.postings {
		record, ok := p.records[posting.ID]
		if !ok {
			continue
		}

		data, err := json.Marshal(record.Analysis)
		if err != nil {
			errors++
			continue
		}

		var company, title, location, industry *string
		if record.CompanyName != "" {
			company = &record.CompanyName
		}
		if record.JobTitle != "" {
			title = &record.JobTitle
		}
		if record.Location != "" {
			location = &record.Location
		}
		norm := signals.Normalize(p.extractions[posting.ID], p.lookups[posting.ID])
		industryName := string(norm.Industry)
		industry = &industryName

		_, err = p.db.InsertLead(
			record.LeadID, posting.ID, company, title, location, industry,
			string(record.LeadScoring.Tier), record.LeadScoring.FinalScore,
			record.LeadScoring.Disqualified, record.LeadScoring.DisqualificationReason,
			string(data),
		)
		if err != nil {
			log.Printf("Storing lead for posting %d failed: %v", posting.ID, err)
			errors++
			continue
		}
		stored++
	}

	return StepResult{
		Name:    "Store",
		Summary: fmt.Sprintf("Stored %d lead records, %d errors", stored, errors),
	}
}
