// Package services – QueryService
//
// This file implements the QueryService, the read-only views over the
// waitlist used by the admin dashboard: paginated listing, a full export
// scan, and summary statistics. The service owns the pagination arithmetic
// (1-indexed pages, ceil division for the page count) and the recency
// windows for the aggregates.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canlink/go-waitlist-backend/internal/domain"
	"github.com/canlink/go-waitlist-backend/internal/repo"
)

// Default windows for the dashboard aggregates.
const (
	RecentWindow = 7 * 24 * time.Hour
	DailyWindow  = 30 * 24 * time.Hour
)

// WaitlistStats is the dashboard summary: the total number of signups, the
// count within the trailing 7-day window, the per-variant breakdown, and the
// per-day breakdown over the trailing 30 days.
//
// The four values are independent reads; they reflect a recent-enough state
// of the store rather than one atomic snapshot.
type WaitlistStats struct {
	Total    int64               `json:"total"`
	Recent   int64               `json:"recent"`
	Variants []repo.VariantCount `json:"variants"`
	Daily    []repo.DailyCount   `json:"daily"`
}

// QueryService provides read-only waitlist views. It is context-aware and
// safe for concurrent use.
type QueryService struct {
	// DB is the GORM handle used for all queries.
	DB *gorm.DB
}

// ListPage returns one page of entries (newest first) together with the
// total row count. Pages are 1-indexed; invalid page/pageSize values are
// coerced to sane defaults. Requesting a page past the end returns an empty
// slice with the correct total, not an error.
func (s *QueryService) ListPage(ctx context.Context, page, pageSize int) ([]domain.WaitlistEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountEntries(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.WaitlistEntry{}, 0, nil
	}

	items, err := repo.ListEntriesPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// ListAll returns every entry, newest first. Used by the CSV export.
func (s *QueryService) ListAll(ctx context.Context) ([]domain.WaitlistEntry, error) {
	return repo.ListEntries(ctx, s.DB)
}

// Stats computes the dashboard summary. The sub-queries run sequentially
// and independently; a failure in any of them aborts the whole call.
func (s *QueryService) Stats(ctx context.Context) (*WaitlistStats, error) {
	total, err := repo.CountEntries(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	recent, err := repo.CountRecentEntries(ctx, s.DB, RecentWindow)
	if err != nil {
		return nil, err
	}
	variants, err := repo.CountByVariant(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	daily, err := repo.CountByDay(ctx, s.DB, DailyWindow)
	if err != nil {
		return nil, err
	}
	return &WaitlistStats{
		Total:    total,
		Recent:   recent,
		Variants: variants,
		Daily:    daily,
	}, nil
}
