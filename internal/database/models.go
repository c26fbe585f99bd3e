package database

// Posting represents a collected craigslist job posting.
type Posting struct {
	ID          int64
	URL         string
	Title       string
	Body        *string
	City        *string
	Category    *string
	PostedDate  *string
	BodyFetched bool
	CollectedAt *string
}

// LeadRow is the stored analysis for one posting. The full analysis
// payload lives in AnalysisJSON; the scalar columns exist for listing
// and filtering without decoding it.
type LeadRow struct {
	ID                     int64
	LeadID                 string
	PostingID              int64
	CompanyName            *string
	JobTitle               *string
	Location               *string
	Industry               *string
	Tier                   string
	FinalScore             int
	Disqualified           bool
	DisqualificationReason *string
	AnalysisJSON           string
	CreatedAt              *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalPostings     int
	FetchedPostings   int
	AnalyzedPostings  int
	TotalLeads        int
	QualifiedLeads    int
	DisqualifiedLeads int
}

// TierCount is one row of the tier distribution.
type TierCount struct {
	Tier  string
	Count int
}
