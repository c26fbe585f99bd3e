package database

import (
	"database/sql"
)

// InsertLead stores the analysis for a posting. Re-analyzing the same
// posting inserts a fresh row with a new lead_id; callers that want
// idempotent runs filter on GetUnanalyzedPostings first.
func (db *DB) InsertLead(leadID string, postingID int64, companyName, jobTitle, location, industry *string,
	tier string, finalScore int, disqualified bool, reason *string, analysisJSON string) (int64, error) {
	dq := 0
	if disqualified {
		dq = 1
	}
	result, err := db.conn.Exec(
		`INSERT INTO leads (lead_id, posting_id, company_name, job_title, location, industry,
		tier, final_score, disqualified, disqualification_reason, analysis_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		leadID, postingID, companyName, jobTitle, location, industry,
		tier, finalScore, dq, reason, analysisJSON,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLead returns a lead by its lead_id, or nil if not found.
func (db *DB) GetLead(leadID string) (*LeadRow, error) {
	row := db.conn.QueryRow(
		`SELECT id, lead_id, posting_id, company_name, job_title, location, industry,
		tier, final_score, disqualified, disqualification_reason, analysis_json, created_at
		FROM leads WHERE lead_id = ?`, leadID,
	)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLeads returns leads ordered by score. An empty tier returns all;
// qualifiedOnly drops disqualified rows.
func (db *DB) GetLeads(tier string, qualifiedOnly bool) ([]LeadRow, error) {
	query := `SELECT id, lead_id, posting_id, company_name, job_title, location, industry,
		tier, final_score, disqualified, disqualification_reason, analysis_json, created_at
		FROM leads WHERE 1=1`
	var args []any
	if tier != "" {
		query += " AND tier = ?"
		args = append(args, tier)
	}
	if qualifiedOnly {
		query += " AND disqualified = 0"
	}
	query += " ORDER BY final_score DESC, created_at DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

// GetLeadForPosting returns the most recent lead for a posting, or nil.
func (db *DB) GetLeadForPosting(postingID int64) (*LeadRow, error) {
	row := db.conn.QueryRow(
		`SELECT id, lead_id, posting_id, company_name, job_title, location, industry,
		tier, final_score, disqualified, disqualification_reason, analysis_json, created_at
		FROM leads WHERE posting_id = ? ORDER BY created_at DESC LIMIT 1`, postingID,
	)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetTierCounts returns the lead count per tier, best tier first.
func (db *DB) GetTierCounts() ([]TierCount, error) {
	rows, err := db.conn.Query(
		"SELECT tier, COUNT(*) FROM leads GROUP BY tier ORDER BY tier",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TierCount
	for rows.Next() {
		var tc TierCount
		if err := rows.Scan(&tc.Tier, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// GetStats returns aggregate counts for the status command.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM postings", &stats.TotalPostings},
		{"SELECT COUNT(*) FROM postings WHERE body_fetched = 1", &stats.FetchedPostings},
		{"SELECT COUNT(DISTINCT posting_id) FROM leads", &stats.AnalyzedPostings},
		{"SELECT COUNT(*) FROM leads", &stats.TotalLeads},
		{"SELECT COUNT(*) FROM leads WHERE disqualified = 0", &stats.QualifiedLeads},
		{"SELECT COUNT(*) FROM leads WHERE disqualified = 1", &stats.DisqualifiedLeads},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func scanLeads(rows *sql.Rows) ([]LeadRow, error) {
	var leads []LeadRow
	for rows.Next() {
		var l LeadRow
		var dq int
		if err := rows.Scan(&l.ID, &l.LeadID, &l.PostingID, &l.CompanyName, &l.JobTitle,
			&l.Location, &l.Industry, &l.Tier, &l.FinalScore, &dq,
			&l.DisqualificationReason, &l.AnalysisJSON, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Disqualified = dq != 0
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func scanLead(row *sql.Row) (*LeadRow, error) {
	var l LeadRow
	var dq int
	if err := row.Scan(&l.ID, &l.LeadID, &l.PostingID, &l.CompanyName, &l.JobTitle,
		&l.Location, &l.Industry, &l.Tier, &l.FinalScore, &dq,
		&l.DisqualificationReason, &l.AnalysisJSON, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Disqualified = dq != 0
	return &l, nil
}
