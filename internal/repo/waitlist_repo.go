// Package repo implements the data persistence layer for waitlist entries,
// backed by GORM. This file provides repository functions for the
// WaitlistEntry model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - Inserting an email that already exists surfaces the driver's
//     unique-constraint error unchanged; the service layer translates it
//     into a domain-level duplicate error.
//   - On other DB errors (connectivity, missing table, etc.) the raw gorm
//     error is propagated. Callers do not retry.
//
// Functions:
//
//   - InsertEntry(ctx, db, entry) -> error
//     Inserts a new row, stamping CreatedAt server-side (UTC).
//
//   - CountEntries(ctx, db) -> (int64, error)
//     Returns the total number of waitlist rows.
//
//   - ListEntries(ctx, db) -> []domain.WaitlistEntry, error
//     Returns every entry, newest first (used by the CSV export).
//
//   - ListEntriesPage(ctx, db, offset, limit) -> []domain.WaitlistEntry, error
//     Returns a paginated slice of entries, newest first.
//
// This repository is designed to be wrapped by the service layer
// (see services.SignupService and services.QueryService) which enforces
// validation and normalization rules.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/canlink/go-waitlist-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across layers.
var ErrNotFound = gorm.ErrRecordNotFound

// InsertEntry persists a new waitlist entry. CreatedAt is always assigned
// here (UTC, never client-supplied) so chronological ordering is consistent
// regardless of client clock skew. The entry's ID is populated by the
// database on success.
//
// A duplicate email violates the ux_waitlist_email unique index and returns
// the driver's constraint error; no row is written in that case.
func InsertEntry(ctx context.Context, db *gorm.DB, e *domain.WaitlistEntry) error {
	e.ID = 0
	e.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(e).Error
}

// CountEntries returns the total number of waitlist rows.
// On DB error, it returns the error.
func CountEntries(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.WaitlistEntry{}).
		Count(&total).Error
	return total, err
}

// ListEntries returns all waitlist entries ordered by creation time
// descending (most recent first). It returns an empty slice when the table
// is empty. On DB error, it returns the error.
func ListEntries(ctx context.Context, db *gorm.DB) ([]domain.WaitlistEntry, error) {
	var out []domain.WaitlistEntry
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}

// ListEntriesPage returns a paginated slice of entries ordered by creation
// time descending. Use CountEntries to obtain the total for pagination
// metadata. Requesting past the end of the table yields an empty slice, not
// an error; limit 0 yields an empty slice.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListEntriesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.WaitlistEntry, error) {
	if limit == 0 {
		return []domain.WaitlistEntry{}, nil
	}
	var out []domain.WaitlistEntry
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
