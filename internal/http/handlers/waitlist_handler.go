// Waitlist HTTP handlers.
//
// This file exposes the REST endpoints for the product waitlist:
//   - POST /waitlist          (join the waitlist)
//   - GET  /waitlist          (list signups, paginated; admin dashboard)
//   - GET  /waitlist/stats    (summary statistics; admin dashboard)
//   - GET  /waitlist/export   (CSV download of all signups)
//
// Handlers are transport-thin: they parse input, call application services,
// and translate results (including service sentinel errors) into HTTP
// responses. Field validation and normalization live in the service layer so
// the contract stays testable independent of the transport.
package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/canlink/go-waitlist-backend/internal/domain"
	"github.com/canlink/go-waitlist-backend/internal/services"
	"github.com/canlink/go-waitlist-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// SignupService defines the signup operation consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SignupService interface {
	// Submit validates, normalizes, and persists one signup.
	Submit(ctx context.Context, in services.SignupInput) (*domain.WaitlistEntry, error)
}

// QueryService defines the read-only views consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type QueryService interface {
	// ListPage returns one page of entries (newest first) and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.WaitlistEntry, int64, error)
	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]domain.WaitlistEntry, error)
	// Stats computes the dashboard summary.
	Stats(ctx context.Context) (*services.WaitlistStats, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the waitlist. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	signupSvc SignupService
	querySvc  QueryService

	// DefaultLimit is applied when the list endpoint gets no limit param.
	DefaultLimit int
	// MaxLimit caps the caller-supplied limit.
	MaxLimit int
}

// New constructs a Handlers instance bound to the given services, with the
// documented pagination defaults (limit 50, cap 200).
func New(signupSvc SignupService, querySvc QueryService) *Handlers {
	return &Handlers{
		signupSvc:    signupSvc,
		querySvc:     querySvc,
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

//
// DTOs
//

// JoinWaitlistRequest is the JSON payload for joining the waitlist.
// Required-field and consent validation is performed by the service layer;
// the handler only rejects bodies that are not valid JSON.
type JoinWaitlistRequest struct {
	// Name is the signer's display name (required).
	Name string `json:"name" example:"Ada Lovelace"`
	// Email is the contact address (required, unique across the waitlist).
	Email string `json:"email" example:"ada@example.com"`
	// Company optionally names the signer's organization.
	Company string `json:"company,omitempty" example:"Analytical Engines Ltd"`
	// Variant selects the product configuration; defaults to "CAN FD".
	Variant string `json:"variant,omitempty" example:"CAN FD"`
	// Notes carries optional free text.
	Notes string `json:"notes,omitempty" example:"Interested in the dev kit"`
	// Agree is the consent flag; must be true for the signup to be accepted.
	Agree bool `json:"agree" example:"true"`
}

// JoinWaitlistResponse is the success payload for a new signup.
type JoinWaitlistResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      uint   `json:"id" example:"42"`
	Message string `json:"message" example:"Successfully added to waitlist"`
}

// Pagination carries pagination metadata for the list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListWaitlistResponse wraps a page of entries and pagination information.
type ListWaitlistResponse struct {
	Entries    []domain.WaitlistEntry `json:"entries"`
	Pagination Pagination             `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds the page and limit query params,
// returning (page, limit). Defaults: page 1, limit h.DefaultLimit; limit is
// capped at h.MaxLimit.
func (h *Handlers) clampPagination(c *gin.Context) (page, limit int) {
	page = utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), h.DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > h.MaxLimit {
		limit = h.MaxLimit
	}
	return
}

//
// Handlers
//

// JoinWaitlist godoc
// @ID          joinWaitlist
// @Summary     Join the waitlist
// @Description Validates and stores one signup. Email addresses are unique; resubmitting an address yields 409.
// @Tags        Waitlist
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.JoinWaitlistRequest  true  "Signup payload"
//
// @Success     201  {object}  handlers.JoinWaitlistResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required field or consent"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already on the waitlist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /waitlist [post]
func (h *Handlers) JoinWaitlist(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.signupSvc.Submit(c.Request.Context(), services.SignupInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Variant: req.Variant,
		Notes:   req.Notes,
		Agree:   req.Agree,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired),
			errors.Is(err, services.ErrEmailRequired),
			errors.Is(err, services.ErrConsentRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSignupFailed, "failed to add to waitlist")
		}
		return
	}

	ok(c, http.StatusCreated, JoinWaitlistResponse{
		Success: true,
		ID:      entry.ID,
		Message: "Successfully added to waitlist",
	})
}

// ListWaitlist godoc
// @ID          listWaitlist
// @Summary     List waitlist entries (paginated)
// @Description Returns one page of signups, newest first, with pagination metadata. Pages past the end return an empty list.
// @Tags        Waitlist
// @Produce     json
//
// @Param       page   query  int  false  "Page number (1-indexed)"  minimum(1) default(1)
// @Param       limit  query  int  false  "Entries per page"         minimum(1) maximum(200) default(50)
//
// @Success     200  {object}  handlers.ListWaitlistResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /waitlist [get]
func (h *Handlers) ListWaitlist(c *gin.Context) {
	page, limit := h.clampPagination(c)

	entries, total, err := h.querySvc.ListPage(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "failed to fetch waitlist entries")
		return
	}

	ok(c, http.StatusOK, ListWaitlistResponse{
		Entries: entries,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: utils.TotalPages(total, limit),
		},
	})
}

// WaitlistStats godoc
// @ID          waitlistStats
// @Summary     Waitlist statistics
// @Description Returns the total signup count, the trailing 7-day count, the per-variant breakdown, and the per-day breakdown over the trailing 30 days.
// @Tags        Waitlist
// @Produce     json
//
// @Success     200  {object}  services.WaitlistStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /waitlist/stats [get]
func (h *Handlers) WaitlistStats(c *gin.Context) {
	stats, err := h.querySvc.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, "failed to fetch waitlist statistics")
		return
	}
	ok(c, http.StatusOK, stats)
}

// ExportWaitlist godoc
// @ID          exportWaitlist
// @Summary     Export the waitlist as CSV
// @Description Streams every signup, newest first, as a text/csv attachment.
// @Tags        Waitlist
// @Produce     text/csv
//
// @Success     200  {string}  string  "CSV payload"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /waitlist/export [get]
func (h *Handlers) ExportWaitlist(c *gin.Context) {
	entries, err := h.querySvc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, "failed to export waitlist")
		return
	}

	filename := "waitlist-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "name", "email", "company", "variant", "notes", "agree", "created_at"})
	for _, e := range entries {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Name,
			e.Email,
			deref(e.Company),
			e.Variant,
			deref(e.Notes),
			strconv.FormatBool(e.Agree),
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
}

// deref unwraps an optional column, mapping NULL to the empty string.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
