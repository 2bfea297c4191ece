// Package domain defines the persistence model for waitlist signups. The
// type is mapped with GORM and forms the core data layer of the waitlist
// backend.
package domain

import (
	"time"
)

// DefaultVariant is the product variant assigned to signups that do not
// choose one explicitly.
const DefaultVariant = "CAN FD"

// WaitlistEntry represents a single signup on the product waitlist. A row is
// created exactly once by the signup flow and never updated or deleted.
//
// Fields:
//   - ID: auto-incrementing integer primary key; doubles as insertion order.
//   - Name: signer's display name, required.
//   - Email: contact address, required and unique across all rows. The
//     uniqueness constraint lives in the schema so concurrent submissions of
//     the same address cannot both land.
//   - Company: optional; NULL when not supplied (nil pointer), as opposed to
//     an empty string a client typed deliberately.
//   - Variant: product configuration the signer is interested in; defaults
//     to DefaultVariant when omitted.
//   - Notes: optional free text; NULL when not supplied.
//   - Agree: consent flag. The service refuses to persist rows where this is
//     false, so every stored row carries true. Stored as 0/1 in SQLite.
//   - CreatedAt: stamped server-side at insert time (UTC); the default sort
//     key (newest first) and the basis for the recency windows.
type WaitlistEntry struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null;uniqueIndex:ux_waitlist_email"`
	Company   *string   `json:"company"    gorm:"type:varchar(255)"`
	Variant   string    `json:"variant"    gorm:"type:varchar(64);not null;default:'CAN FD'"`
	Notes     *string   `json:"notes"      gorm:"type:text"`
	Agree     bool      `json:"agree"      gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_waitlist_created_at"`
}

// TableName returns the database table name for WaitlistEntry.
func (WaitlistEntry) TableName() string { return "waitlist_entries" }
