package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/canlink/go-waitlist-backend/internal/domain"
)

func newStatsDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedEntryAt(t *testing.T, db *gorm.DB, email, variant string, at time.Time) {
	t.Helper()
	e := domain.WaitlistEntry{Name: "n", Email: email, Variant: variant, Agree: true, CreatedAt: at}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
}

func TestCountRecentEntries_Error_NoTable(t *testing.T) {
	db := newStatsDB(t /* no migrations */)
	if _, err := CountRecentEntries(context.Background(), db, 7*24*time.Hour); err == nil {
		t.Fatalf("expected error due to missing table")
	}
}

func TestCountRecentEntries_WindowFilter(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})

	now := time.Now().UTC()
	seedEntryAt(t, db, "in1@x.com", "CAN FD", now.Add(-1*time.Hour))
	seedEntryAt(t, db, "in2@x.com", "CAN FD", now.Add(-6*24*time.Hour))
	seedEntryAt(t, db, "out@x.com", "CAN FD", now.Add(-8*24*time.Hour)) // outside 7d

	n, err := CountRecentEntries(context.Background(), db, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("CountRecentEntries: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entries inside the 7d window, got %d", n)
	}
}

func TestCountRecentEntries_ZeroRows(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})
	n, err := CountRecentEntries(context.Background(), db, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("CountRecentEntries: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestCountByVariant_Error_NoTable(t *testing.T) {
	db := newStatsDB(t /* no migrations */)
	if _, err := CountByVariant(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing table")
	}
}

func TestCountByVariant_GroupsAndOrders(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})

	now := time.Now().UTC()
	// 3x "CAN FD", 1x "CAN Classic"
	seedEntryAt(t, db, "a@x.com", "CAN FD", now)
	seedEntryAt(t, db, "b@x.com", "CAN FD", now)
	seedEntryAt(t, db, "c@x.com", "CAN FD", now)
	seedEntryAt(t, db, "d@x.com", "CAN Classic", now)

	rows, err := CountByVariant(context.Background(), db)
	if err != nil {
		t.Fatalf("CountByVariant: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 variant rows, got %d: %+v", len(rows), rows)
	}
	// Count descending: CAN FD (3) before CAN Classic (1)
	if rows[0].Variant != "CAN FD" || rows[0].Count != 3 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Variant != "CAN Classic" || rows[1].Count != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}

	// Per-variant counts must sum to the table total.
	var sum int64
	for _, r := range rows {
		sum += r.Count
	}
	total, err := CountEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if sum != total {
		t.Fatalf("variant counts sum %d != total %d", sum, total)
	}
}

func TestCountByVariant_TieBrokenByLabel(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})

	now := time.Now().UTC()
	seedEntryAt(t, db, "z@x.com", "Zeta", now)
	seedEntryAt(t, db, "a@x.com", "Alpha", now)

	rows, err := CountByVariant(context.Background(), db)
	if err != nil {
		t.Fatalf("CountByVariant: %v", err)
	}
	if len(rows) != 2 || rows[0].Variant != "Alpha" || rows[1].Variant != "Zeta" {
		t.Fatalf("expected alphabetical tiebreak, got %+v", rows)
	}
}

func TestCountByVariant_EmptyTable(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})
	rows, err := CountByVariant(context.Background(), db)
	if err != nil {
		t.Fatalf("CountByVariant: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", rows)
	}
}

func TestCountByDay_Error_NoTable(t *testing.T) {
	db := newStatsDB(t /* no migrations */)
	if _, err := CountByDay(context.Background(), db, 30*24*time.Hour); err == nil {
		t.Fatalf("expected error due to missing table")
	}
}

func TestCountByDay_GroupsByCalendarDateDescending(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	yesterday := today.Add(-24 * time.Hour)

	// Two entries today, one yesterday, one outside the 30d window.
	seedEntryAt(t, db, "t1@x.com", "CAN FD", today.Add(2*time.Hour))
	seedEntryAt(t, db, "t2@x.com", "CAN FD", today.Add(3*time.Hour))
	seedEntryAt(t, db, "y1@x.com", "CAN FD", yesterday.Add(1*time.Hour))
	seedEntryAt(t, db, "old@x.com", "CAN FD", now.Add(-40*24*time.Hour))

	rows, err := CountByDay(context.Background(), db, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("CountByDay: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 day rows inside the window, got %d: %+v", len(rows), rows)
	}
	// Date descending: today before yesterday.
	if rows[0].Date != today.Format("2006-01-02") || rows[0].Count != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Date != yesterday.Format("2006-01-02") || rows[1].Count != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestCountByDay_EmptyTable(t *testing.T) {
	db := newStatsDB(t, &domain.WaitlistEntry{})
	rows, err := CountByDay(context.Background(), db, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("CountByDay: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", rows)
	}
}
