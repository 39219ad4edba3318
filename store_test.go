package main

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "visitors.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreStats(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	visits := []struct {
		ip   string
		path string
		page PageID
		at   time.Time
	}{
		{"aaaa", "/about", PageAbout, now},
		{"aaaa", "/", PageHome, now.Add(-time.Hour)},
		{"bbbb", "/about", PageAbout, now.AddDate(0, 0, -3)},
		{"cccc", "/projects", PageProjects, now.AddDate(0, 0, -30)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v.ip, "test-agent", v.path, v.page, v.at); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	stats, err := s.Stats(now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Errorf("Expected 4 total, got %d", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("Expected 3 unique, got %d", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 {
		t.Errorf("Expected 2 today, got %d", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("Expected 3 this week, got %d", stats.VisitorsThisWeek)
	}
	if len(stats.TopPages) != 3 || stats.TopPages[0].Page != "about" || stats.TopPages[0].Views != 2 {
		t.Errorf("unexpected top pages: %+v", stats.TopPages)
	}
	if len(stats.RecentVisitors) != 4 || stats.RecentVisitors[0].Path != "/about" || stats.RecentVisitors[0].HashedIP != "aaaa" {
		t.Errorf("unexpected recent visitors: %+v", stats.RecentVisitors)
	}
}

func TestStoreCleanup(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	if err := s.RecordVisit("old", "", "/", PageHome, now.AddDate(-1, -1, 0)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if err := s.RecordVisit("new", "", "/", PageHome, now.AddDate(0, -11, 0)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	n, err := s.Cleanup(now)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row removed, got %d", n)
	}
	recent, err := s.RecentVisitors(10)
	if err != nil {
		t.Fatalf("RecentVisitors: %v", err)
	}
	if len(recent) != 1 || recent[0].HashedIP != "new" {
		t.Errorf("Expected only the newer visit to remain, got %+v", recent)
	}
}

func TestHashIP(t *testing.T) {
	a := &Admin{salt: "pepper"}
	h1 := a.hashIP("203.0.113.7")
	if len(h1) != 16 {
		t.Errorf("Expected 16 hex chars, got %q", h1)
	}
	if h1 != a.hashIP("203.0.113.7") {
		t.Error("Expected the same IP to hash the same way")
	}
	if h1 == a.hashIP("203.0.113.8") {
		t.Error("Expected different IPs to hash differently")
	}
	if h1 == (&Admin{salt: "salt"}).hashIP("203.0.113.7") {
		t.Error("Expected the salt to change the hash")
	}
}
