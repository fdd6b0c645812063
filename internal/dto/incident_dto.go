package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateIncidentRequest requires both coordinates: they arrive as pointers so
// a missing field is distinguishable from a legal zero (equator / prime
// meridian).
type CreateIncidentRequest struct {
	Category    string           `json:"category"    validate:"required,incident_category"`
	Description string           `json:"description" validate:"required,min=10,max=1000"`
	Latitude    *decimal.Decimal `json:"latitude"    validate:"required,min=-90,max=90"`
	Longitude   *decimal.Decimal `json:"longitude"   validate:"required,min=-180,max=180"`
	Address     *string          `json:"address"`
	ImageURL    *string          `json:"imageUrl"    validate:"omitempty,url"`
}

// UpdateIncidentRequest carries only the content fields an owner may touch.
// Status, priority and adminNotes are not bound here, so attempts to set them
// through this path are dropped, not rejected.
type UpdateIncidentRequest struct {
	Category    *string          `json:"category"    validate:"omitempty,incident_category"`
	Description *string          `json:"description" validate:"omitempty,min=10,max=1000"`
	Latitude    *decimal.Decimal `json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *decimal.Decimal `json:"longitude"   validate:"omitempty,min=-180,max=180"`
	Address     *string          `json:"address"`
	ImageURL    *string          `json:"imageUrl"    validate:"omitempty,url"`
}

type UpdateIncidentStatusRequest struct {
	Status     *string `json:"status"     validate:"omitempty,incident_status"`
	Priority   *string `json:"priority"   validate:"omitempty,incident_priority"`
	AdminNotes *string `json:"adminNotes"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type IncidentFilter struct {
	Status   string `form:"status"   validate:"omitempty,incident_status"`
	Category string `form:"category" validate:"omitempty,incident_category"`
	Priority string `form:"priority" validate:"omitempty,incident_priority"`
	UserID   string `form:"userId"   validate:"omitempty,uuid"`
	Limit    int    `form:"limit,default=50"  validate:"min=1,max=100"`
	Offset   int    `form:"offset,default=0"  validate:"min=0"`
}

type MyIncidentsFilter struct {
	Status   string `form:"status"   validate:"omitempty,incident_status"`
	Category string `form:"category" validate:"omitempty,incident_category"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ReporterResponse is the trimmed user embedded in incident payloads.
type ReporterResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"fullName"`
	Email    string  `json:"email,omitempty"`
}

type IncidentResponse struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Latitude    decimal.Decimal   `json:"latitude"`
	Longitude   decimal.Decimal   `json:"longitude"`
	Address     *string           `json:"address"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AdminNotes  *string           `json:"adminNotes"`
	ResolvedAt  *time.Time        `json:"resolvedAt"`
	ImageURL    *string           `json:"imageUrl"`
	UserID      string            `json:"userId"`
	Reporter    *ReporterResponse `json:"reporter,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type IncidentDetailResponse struct {
	Message  string           `json:"message,omitempty"`
	Incident IncidentResponse `json:"incident"`
}

type IncidentListResponse struct {
	Total     int64              `json:"total"`
	Incidents []IncidentResponse `json:"incidents"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type MyIncidentsResponse struct {
	Total     int                `json:"total"`
	Incidents []IncidentResponse `json:"incidents"`
}

type StatisticsResponse struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByCategory map[string]int64 `json:"byCategory"`
}
