package database

import (
	"database/sql"
)

// InsertPosting inserts a posting. Returns the ID on success, 0 if the
// URL was already collected.
func (db *DB) InsertPosting(url, title string, city, category, postedDate, body *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO postings (url, title, city, category, posted_date, body)
		VALUES (?, ?, ?, ?, ?, ?)`,
		url, title, city, category, postedDate, body,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetPostingsNeedingFetch returns postings with an empty body that
// have not been fetched yet.
func (db *DB) GetPostingsNeedingFetch() ([]Posting, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, title, body, city, category, posted_date, body_fetched, collected_at
		FROM postings WHERE (body IS NULL OR body = '') AND body_fetched = 0
		ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

// UpdatePostingBody updates the posting body after fetching.
func (db *DB) UpdatePostingBody(postingID int64, body *string) error {
	_, err := db.conn.Exec(
		"UPDATE postings SET body = ?, body_fetched = 1 WHERE id = ?",
		body, postingID,
	)
	return err
}

// MarkPostingFetchAttempted marks that we tried to fetch the body.
func (db *DB) MarkPostingFetchAttempted(postingID int64) error {
	_, err := db.conn.Exec(
		"UPDATE postings SET body_fetched = 1 WHERE id = ?", postingID,
	)
	return err
}

// GetUnanalyzedPostings returns postings with a body that have no lead
// record yet.
func (db *DB) GetUnanalyzedPostings() ([]Posting, error) {
	rows, err := db.conn.Query(
		`SELECT p.id, p.url, p.title, p.body, p.city, p.category, p.posted_date,
		p.body_fetched, p.collected_at
		FROM postings p LEFT JOIN leads l ON p.id = l.posting_id
		WHERE l.posting_id IS NULL AND p.body IS NOT NULL AND p.body != ''
		ORDER BY p.collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

// GetRecentPostings returns the most recently collected postings.
func (db *DB) GetRecentPostings(limit int) ([]Posting, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.conn.Query(
		`SELECT id, url, title, body, city, category, posted_date, body_fetched, collected_at
		FROM postings ORDER BY collected_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

// GetPostingByID returns a single posting by ID.
func (db *DB) GetPostingByID(postingID int64) (*Posting, error) {
	row := db.conn.QueryRow(
		`SELECT id, url, title, body, city, category, posted_date, body_fetched, collected_at
		FROM postings WHERE id = ?`, postingID,
	)
	p, err := scanPosting(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPostings(rows *sql.Rows) ([]Posting, error) {
	var postings []Posting
	for rows.Next() {
		var p Posting
		var fetched int
		if err := rows.Scan(&p.ID, &p.URL, &p.Title, &p.Body, &p.City,
			&p.Category, &p.PostedDate, &fetched, &p.CollectedAt); err != nil {
			return nil, err
		}
		p.BodyFetched = fetched != 0
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func scanPosting(row *sql.Row) (*Posting, error) {
	var p Posting
	var fetched int
	if err := row.Scan(&p.ID, &p.URL, &p.Title, &p.Body, &p.City,
		&p.Category, &p.PostedDate, &fetched, &p.CollectedAt); err != nil {
		return nil, err
	}
	p.BodyFetched = fetched != 0
	return &p, nil
}
