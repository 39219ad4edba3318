package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps privacy-conscious page view counts. It never sees raw IPs and
// holds nothing about what a visitor did on a page.
type Store struct {
	db *sql.DB
}

// VisitorMetric is one recorded page view.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Page      string    `json:"page"`
	Timestamp time.Time `json:"timestamp"`
}

type PageStat struct {
	Page  string `json:"page"`
	Views int64  `json:"views"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TopPages         []PageStat      `json:"top_pages"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

const createVisitorTable = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	page TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// OpenStore opens (creating if needed) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createVisitorTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating visitors table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating visitors index: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(hashedIP, userAgent, path string, page PageID, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, page, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, hashedIP, userAgent, path, string(page), at.UTC())
	return err
}

// Cleanup deletes views older than 12 months and reports how many went.
func (s *Store) Cleanup(now time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, now.UTC().AddDate(-1, 0, 0))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats summarises page views as of now.
func (s *Store) Stats(now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	err := s.db.QueryRow("SELECT COUNT(*) FROM visitors").Scan(&stats.TotalVisitors)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(DISTINCT hashed_ip) FROM visitors").Scan(&stats.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", startOfDay).Scan(&stats.VisitorsToday)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", now.AddDate(0, 0, -7)).Scan(&stats.VisitorsThisWeek)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT page, COUNT(*) AS views
		FROM visitors
		GROUP BY page
		ORDER BY views DESC, page ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Page, &ps.Views); err != nil {
			continue
		}
		stats.TopPages = append(stats.TopPages, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = s.RecentVisitors(50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentVisitors returns up to limit views, newest first.
func (s *Store) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, user_agent, path, page, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Page, &v.Timestamp); err != nil {
			continue
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}
