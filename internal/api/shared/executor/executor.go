package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/constants"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-lead-analytics/internal/api/shared/errors"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/leads"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/reconciler"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/tracker"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// TrackScan records a QR scan. Storage failures drop the event and are not returned.
	TrackScan(ctx context.Context, listingID, sessionToken, userAgent, referrer string) (*dto.TrackResult, error)

	// TrackPageView records a page-view beacon. Storage failures drop the event and are not returned.
	TrackPageView(ctx context.Context, req dto.PageViewRequest, sessionToken, userAgent, referrer string) (*dto.TrackResult, error)

	// SubmitLead stores a lead correlated with the visitor's scan session
	SubmitLead(ctx context.Context, listingID string, req dto.SubmitLeadRequest, sessionToken, referrer string) (*dto.LeadResponse, error)

	// Reconcile rebuilds daily analytics. The response is returned even when the run failed.
	Reconcile(ctx context.Context) (*dto.ReconcileResponse, error)

	// GetListingAnalytics retrieves the daily analytics of a listing for days in [from, to]
	GetListingAnalytics(ctx context.Context, listingID string, from, to *time.Time) (*dto.ListingAnalyticsResponse, error)

	// Ping checks the storage backend
	Ping(ctx context.Context) error
}

// Config holds executor configuration
type Config struct {
	// ReconcileTimeout bounds a reconciliation run triggered over the API, 0 means no bound
	ReconcileTimeout time.Duration
}

type executor struct {
	store      store.Store
	tracker    tracker.Tracker
	correlator leads.Correlator
	reconciler reconciler.Reconciler
	calendar   *analytics.Calendar
	clock      adapter.Clock
	cfg        Config
}

func NewExecutor(
	st store.Store,
	tr tracker.Tracker,
	correlator leads.Correlator,
	rec reconciler.Reconciler,
	calendar *analytics.Calendar,
	clock adapter.Clock,
	cfg Config,
) Executor {
	return &executor{
		store:      st,
		tracker:    tr,
		correlator: correlator,
		reconciler: rec,
		calendar:   calendar,
		clock:      clock,
		cfg:        cfg,
	}
}

func (e *executor) TrackScan(ctx context.Context, listingID, sessionToken, userAgent, referrer string) (*dto.TrackResult, error) {
	if !domain.ListingID(listingID).Valid() {
		return nil, apierrors.NewBadRequestError("Invalid listing ID", listingID)
	}

	result, err := e.tracker.TrackScan(ctx, tracker.ScanInput{
		ListingID:    listingID,
		SessionToken: sessionToken,
		UserAgent:    userAgent,
		Referrer:     optional(referrer),
		OccurredAt:   e.clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("scan event dropped: %w", err),
			logger.Listing(listingID),
			logger.SessionToken(sessionToken))
		return &dto.TrackResult{SessionToken: sessionToken}, nil
	}

	return &dto.TrackResult{SessionToken: result.SessionToken, Recorded: true}, nil
}

func (e *executor) TrackPageView(ctx context.Context, req dto.PageViewRequest, sessionToken, userAgent, referrer string) (*dto.TrackResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := e.tracker.TrackPageView(ctx, tracker.PageViewInput{
		ListingID:    req.ListingID,
		SessionToken: sessionToken,
		Source:       req.Source,
		UserAgent:    userAgent,
		Referrer:     optional(referrer),
		OccurredAt:   e.clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("page view event dropped: %w", err),
			logger.Listing(req.ListingID),
			logger.SessionToken(sessionToken))
		return &dto.TrackResult{SessionToken: sessionToken}, nil
	}

	return &dto.TrackResult{SessionToken: result.SessionToken, Recorded: true}, nil
}

func (e *executor) SubmitLead(ctx context.Context, listingID string, req dto.SubmitLeadRequest, sessionToken, referrer string) (*dto.LeadResponse, error) {
	if !domain.ListingID(listingID).Valid() {
		return nil, apierrors.NewBadRequestError("Invalid listing ID", listingID)
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead, err := e.correlator.Submit(ctx, leads.LeadInput{
		ListingID:    listingID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		Source:       req.Source,
		Referrer:     referrer,
		SessionToken: sessionToken,
		CreatedAt:    e.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidListingID) {
			return nil, apierrors.NewBadRequestError("Invalid listing ID", listingID)
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to submit lead: %v", err))
	}

	return dto.MapLeadToDTO(lead), nil
}

func (e *executor) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	if e.cfg.ReconcileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.ReconcileTimeout)
		defer cancel()
	}

	summary, err := e.reconciler.Run(ctx)
	response := dto.MapSummaryToDTO(summary)
	if err != nil {
		apiErr := apierrors.NewInternalError("Reconciliation failed", err.Error())
		response.Error = apiErr
		return response, apiErr
	}

	return response, nil
}

func (e *executor) GetListingAnalytics(ctx context.Context, listingID string, from, to *time.Time) (*dto.ListingAnalyticsResponse, error) {
	if !domain.ListingID(listingID).Valid() {
		return nil, apierrors.NewBadRequestError("Invalid listing ID", listingID)
	}

	// from and to are calendar days; the defaults end today in the store timezone
	end := e.calendar.Day(e.clock.Now())
	if to != nil {
		end = time.Time(analytics.DateOf(*to))
	}
	start := end.AddDate(0, 0, 1-constants.DEFAULT_ANALYTICS_RANGE_DAYS)
	if from != nil {
		start = time.Time(analytics.DateOf(*from))
	}

	if start.After(end) {
		return nil, apierrors.NewValidationError("from must not be after to")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > constants.MAX_ANALYTICS_RANGE_DAYS {
		return nil, apierrors.NewValidationError(fmt.Sprintf("maximum %d days allowed", constants.MAX_ANALYTICS_RANGE_DAYS))
	}

	records, err := e.store.ListDailyAnalytics(ctx, listingID, start, end)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get analytics: %v", err))
	}

	rangeStart, _ := e.calendar.Bounds(start)
	_, rangeEnd := e.calendar.Bounds(end)
	listingLeads, err := e.store.ListLeads(ctx, listingID, rangeStart, rangeEnd)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get leads: %v", err))
	}

	response := &dto.ListingAnalyticsResponse{
		ListingID: listingID,
		From:      start.Format(constants.DATE_LAYOUT),
		To:        end.Format(constants.DATE_LAYOUT),
		Days:      make([]dto.DailyAnalyticsResponse, 0, len(records)),
	}
	for _, record := range records {
		day := dto.MapDailyAnalyticsToDTO(record)
		response.Days = append(response.Days, day)
		response.Totals.TotalScans += day.TotalScans
		response.Totals.TotalLeads += day.TotalLeads
		response.Totals.UniqueVisitors += day.UniqueVisitors
		response.Totals.PageViews += day.PageViews
	}

	average, count := leads.AverageTimeToLead(listingLeads)
	response.LeadsWithTimeToLead = count
	if count > 0 {
		seconds := average.Seconds()
		response.AverageTimeToLeadSeconds = &seconds
	}

	logger.DebugCtx(ctx, "Listing analytics read",
		logger.Listing(listingID),
		zap.Int("days", len(records)),
		zap.Int("leads", len(listingLeads)))

	return response, nil
}

func (e *executor) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
