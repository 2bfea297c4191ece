// Package services – SignupService
//
// This file implements the SignupService, which validates and admits one new
// waitlist signup. It enforces the required-field rules (name, email,
// consent), applies the normalization rules for optional fields, and
// persists the entry. Service-level errors (ErrNameRequired,
// ErrEmailRequired, ErrConsentRequired, ErrDuplicateEmail) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/canlink/go-waitlist-backend/internal/domain"
	"github.com/canlink/go-waitlist-backend/internal/repo"
)

// SignupInput carries one submitted signup form. Optional fields arrive as
// plain strings; the service decides whether they become NULL or a value.
type SignupInput struct {
	Name    string
	Email   string
	Company string
	Variant string
	Notes   string
	Agree   bool
}

// SignupService implements the use-case of joining the waitlist.
// It validates the submission, normalizes optional fields, and persists the
// entry using the provided GORM handle. The service is context-aware and
// safe for concurrent use.
type SignupService struct {
	// DB is the database handle used for all signup operations.
	DB *gorm.DB
}

// Submit validates and persists one signup.
//
// Validation:
//   - Name and Email must be non-empty after trimming; otherwise
//     ErrNameRequired / ErrEmailRequired.
//   - Agree must be true; otherwise ErrConsentRequired. A row with
//     agree=false is never written.
//
// Normalization:
//   - Variant defaults to domain.DefaultVariant when blank.
//   - Company and Notes are stored as NULL when blank, so "not supplied" is
//     distinguishable from a supplied empty value.
//   - Email is matched exactly as stored; no case folding is applied.
//
// Concurrency & atomicity:
//   - Uniqueness of the email is enforced by the schema's unique index, not
//     by a read-then-write check, so two concurrent submissions of the same
//     address yield exactly one success and one ErrDuplicateEmail.
//
// On success the returned entry carries the assigned ID and server-side
// CreatedAt. Validation and duplicate failures leave the store untouched;
// any other error is the underlying DB error.
func (s *SignupService) Submit(ctx context.Context, in SignupInput) (*domain.WaitlistEntry, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !in.Agree {
		return nil, ErrConsentRequired
	}

	variant := strings.TrimSpace(in.Variant)
	if variant == "" {
		variant = domain.DefaultVariant
	}

	e := &domain.WaitlistEntry{
		Name:    name,
		Email:   email,
		Company: optional(in.Company),
		Variant: variant,
		Notes:   optional(in.Notes),
		Agree:   true,
	}

	if err := repo.InsertEntry(ctx, s.DB, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return e, nil
}

// optional maps a blank string to NULL (nil) and anything else to a pointer
// to its trimmed value.
func optional(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
