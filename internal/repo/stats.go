// Package repo implements the data persistence layer for waitlist entries,
// backed by GORM. This file provides the aggregate queries that feed the
// admin dashboard statistics. Each function is context-aware and safe to
// call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canlink/go-waitlist-backend/internal/domain"
)

// VariantCount is one row of the per-variant breakdown: a distinct variant
// label and the number of entries carrying it.
type VariantCount struct {
	Variant string `json:"variant"`
	Count   int64  `json:"count"`
}

// DailyCount is one row of the per-day breakdown: a calendar date
// (YYYY-MM-DD, derived from the stored UTC timestamps) and the number of
// entries created on that date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CountRecentEntries returns the number of entries created within window of
// the current time (e.g., the last 7 days).
func CountRecentEntries(ctx context.Context, db *gorm.DB, window time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-window)
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.WaitlistEntry{}).
		Where("created_at >= ?", cutoff).
		Count(&n).Error
	return n, err
}

// CountByVariant returns one row per distinct variant present, ordered by
// count descending. Ties are broken by variant label so the order is stable
// across runs.
func CountByVariant(ctx context.Context, db *gorm.DB) ([]VariantCount, error) {
	out := []VariantCount{}
	err := db.WithContext(ctx).
		Model(&domain.WaitlistEntry{}).
		Select("variant, COUNT(*) AS count").
		Group("variant").
		Order("count DESC, variant ASC").
		Scan(&out).Error
	return out, err
}

// CountByDay returns one row per calendar date with at least one entry
// within window of the current time, ordered by date descending. Dates are
// UTC days (DATE() over the stored UTC timestamps).
func CountByDay(ctx context.Context, db *gorm.DB, window time.Duration) ([]DailyCount, error) {
	cutoff := time.Now().UTC().Add(-window)
	out := []DailyCount{}
	err := db.WithContext(ctx).
		Model(&domain.WaitlistEntry{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ?", cutoff).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&out).Error
	return out, err
}
