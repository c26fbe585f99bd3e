package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/config"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/lead"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/pipeline"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/scrape"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "craigslist-agent",
	Short:   "Craigslist lead generation for workforce forecasting sales",
	Long:    "craigslist-agent scrapes job postings, extracts business signals, scores leads, and drafts the outreach for each.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leadsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("craigslist-agent", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/craigslist-agent/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure searches, API keys, and LLM provider.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Postings:")
		fmt.Printf("  Collected: %d\n", stats.TotalPostings)
		fmt.Printf("  Bodies fetched: %d\n", stats.FetchedPostings)
		fmt.Printf("  Analyzed: %d\n", stats.AnalyzedPostings)
		fmt.Println("\nLeads:")
		fmt.Printf("  Total: %d\n", stats.TotalLeads)
		fmt.Printf("  Qualified: %d\n", stats.QualifiedLeads)
		fmt.Printf("  Disqualified: %d\n", stats.DisqualifiedLeads)

		tiers, err := db.GetTierCounts()
		if err != nil {
			return err
		}
		if len(tiers) > 0 {
			fmt.Println("\nBy tier:")
			for _, tc := range tiers {
				fmt.Printf("  %s: %d\n", tc.Tier, tc.Count)
			}
		}
		return nil
	},
}

// --- scrape command ---

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape postings from configured searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Scraping configured searches...")

		scraper := scrape.NewScraper(cfg, db)
		result := scraper.Scrape(context.Background())

		fmt.Println("\nScrape complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  New postings: %d\n", result.NewPostings)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Searches) > 0 {
			fmt.Println("\nPostings by search:")
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range result.Searches {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}
		return nil
	},
}

// --- run command ---

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: scrape -> fetch -> extract -> research -> score -> store",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun()
		} else {
			result = pipe.Run(context.Background())
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/6: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if !dryRun {
			fmt.Println("\nPipeline complete! Run 'craigslist-agent serve' to browse leads.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local leads dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- leads command ---

var (
	leadsTier      string
	leadsQualified bool
	exportOutput   string
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and export scored leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads ordered by score",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := db.GetLeads(leadsTier, leadsQualified)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No leads found. Run 'craigslist-agent run' first.")
			return nil
		}

		for _, row := range rows {
			company := "(unknown company)"
			if row.CompanyName != nil && *row.CompanyName != "" {
				company = *row.CompanyName
			}
			title := ""
			if row.JobTitle != nil {
				title = *row.JobTitle
			}
			fmt.Printf("%2d  %-6s  %-30s  %s\n", row.FinalScore, row.Tier, company, title)
			if row.Disqualified && row.DisqualificationReason != nil {
				fmt.Printf("      disqualified: %s\n", *row.DisqualificationReason)
			}
			fmt.Printf("      id: %s\n", row.LeadID)
		}
		return nil
	},
}

var leadsShowCmd = &cobra.Command{
	Use:   "show [lead_id]",
	Short: "Print the full analysis for one lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		row, err := db.GetLead(args[0])
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("lead %s not found", args[0])
		}

		var pretty map[string]any
		if err := json.Unmarshal([]byte(row.AnalysisJSON), &pretty); err != nil {
			return fmt.Errorf("decoding analysis: %w", err)
		}
		out, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var leadsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leads as JSON lines for downstream ML",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := db.GetLeads(leadsTier, leadsQualified)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		for _, row := range rows {
			var analysis lead.Analysis
			if err := json.Unmarshal([]byte(row.AnalysisJSON), &analysis); err != nil {
				log.Printf("Skipping lead %s: %v", row.LeadID, err)
				continue
			}

			record := map[string]any{
				"lead_id":      row.LeadID,
				"company_name": row.CompanyName,
				"job_title":    row.JobTitle,
				"location":     row.Location,
				"lead_scoring": analysis.LeadScoring,
			}
			if analysis.MLFeatures != nil {
				record["ml_features"] = analysis.MLFeatures
			}
			record["outcome_tracking"] = analysis.OutcomeTracking

			if err := enc.Encode(record); err != nil {
				return err
			}
		}

		if exportOutput != "" {
			fmt.Printf("Exported %d leads to %s\n", len(rows), exportOutput)
		}
		return nil
	},
}

func init() {
	leadsCmd.PersistentFlags().StringVar(&leadsTier, "tier", "", `Filter by tier, e.g. "TIER 1"`)
	leadsCmd.PersistentFlags().BoolVar(&leadsQualified, "qualified", false, "Only qualified leads")
	leadsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsExportCmd)
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "leads.db")
	return database.Open(dbPath)
}
