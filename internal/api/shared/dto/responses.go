package dto

import (
	"time"

	apierrors "github.com/feral-file/ff-lead-analytics/internal/api/shared/errors"
)

// TrackResponse is the body returned to tracking beacons
type TrackResponse struct {
	Success bool `json:"success"`
}

// TrackResult is the outcome of a tracking event as seen by the transport
type TrackResult struct {
	// SessionToken is the correlation token the client should keep
	SessionToken string
	// Recorded is false when the event was dropped
	Recorded bool
}

// LeadResponse represents a stored lead
type LeadResponse struct {
	ID                int64      `json:"id"`
	ListingID         string     `json:"listing_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone,omitempty"`
	Message           *string    `json:"message,omitempty"`
	ScanTimestamp     *time.Time `json:"scan_timestamp,omitempty"`
	TimeToLeadSeconds *int64     `json:"time_to_lead_seconds,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ReconcileResponse reports a reconciliation run
type ReconcileResponse struct {
	ListingsProcessed int                 `json:"listingsProcessed"`
	RecordsCreated    int                 `json:"recordsCreated"`
	RecordsUpdated    int                 `json:"recordsUpdated"`
	GroupsFailed      int                 `json:"groupsFailed"`
	Error             *apierrors.APIError `json:"error,omitempty"`
}

// DailyAnalyticsResponse represents the counters of one listing day
type DailyAnalyticsResponse struct {
	Date           string `json:"date"`
	TotalScans     int    `json:"total_scans"`
	TotalLeads     int    `json:"total_leads"`
	UniqueVisitors int    `json:"unique_visitors"`
	PageViews      int    `json:"page_views"`
}

// AnalyticsTotals sums the daily counters of a range
type AnalyticsTotals struct {
	TotalScans     int `json:"total_scans"`
	TotalLeads     int `json:"total_leads"`
	UniqueVisitors int `json:"unique_visitors"`
	PageViews      int `json:"page_views"`
}

// ListingAnalyticsResponse represents the analytics of a listing over a range of days
type ListingAnalyticsResponse struct {
	ListingID string                   `json:"listing_id"`
	From      string                   `json:"from"`
	To        string                   `json:"to"`
	Days      []DailyAnalyticsResponse `json:"days"`
	Totals    AnalyticsTotals          `json:"totals"`
	// AverageTimeToLeadSeconds is null when no lead in the range has a meaningful time-to-lead
	AverageTimeToLeadSeconds *float64 `json:"average_time_to_lead_seconds"`
	LeadsWithTimeToLead      int      `json:"leads_with_time_to_lead"`
}
