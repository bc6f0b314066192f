package dto

import (
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/leads"
	"github.com/feral-file/ff-lead-analytics/internal/reconciler"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
)

// MapLeadToDTO maps a stored lead to its response
func MapLeadToDTO(lead *schema.Lead) *LeadResponse {
	response := &LeadResponse{
		ID:            lead.ID,
		ListingID:     lead.ListingID,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Message:       lead.Message,
		ScanTimestamp: lead.ScanTimestamp,
		CreatedAt:     lead.CreatedAt,
	}
	if d, ok := leads.TimeToLead(*lead); ok {
		seconds := int64(d / time.Second)
		response.TimeToLeadSeconds = &seconds
	}
	return response
}

// MapDailyAnalyticsToDTO maps a daily record to its response
func MapDailyAnalyticsToDTO(record schema.AnalyticsDaily) DailyAnalyticsResponse {
	return DailyAnalyticsResponse{
		Date:           record.Day().Format(time.DateOnly),
		TotalScans:     record.TotalScans,
		TotalLeads:     record.TotalLeads,
		UniqueVisitors: record.UniqueVisitors,
		PageViews:      record.PageViews,
	}
}

// MapSummaryToDTO maps a reconciliation summary to its response
func MapSummaryToDTO(summary *reconciler.Summary) *ReconcileResponse {
	if summary == nil {
		return &ReconcileResponse{}
	}
	return &ReconcileResponse{
		ListingsProcessed: summary.ListingsProcessed,
		RecordsCreated:    summary.RecordsCreated,
		RecordsUpdated:    summary.RecordsUpdated,
		GroupsFailed:      summary.GroupsFailed,
	}
}
