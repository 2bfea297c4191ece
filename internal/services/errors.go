// Package services defines the business logic for waitlist signups and
// dashboard queries. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrNameRequired is returned when a signup is submitted without a name.
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when a signup is submitted without an
	// email address.
	ErrEmailRequired = errors.New("email is required")

	// ErrConsentRequired is returned when a signup is submitted without the
	// consent flag set. Entries are never persisted without consent.
	ErrConsentRequired = errors.New("agreement is required")

	// ErrDuplicateEmail is returned when the submitted email address is
	// already on the waitlist. The existing entry is left untouched.
	ErrDuplicateEmail = errors.New("email already exists in waitlist")
)
