package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/api/shared/constants"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/dto"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/executor"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/session"
)

// healthCheckTimeout bounds the database ping of the health check
const healthCheckTimeout = 2 * time.Second

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// TrackScan records a QR scan and redirects to the listing page
	// GET /api/v1/scan/:listing_id
	TrackScan(c *gin.Context)

	// TrackPageView records a page-view beacon
	// POST /api/v1/track/page-view
	TrackPageView(c *gin.Context)

	// SubmitLead stores a lead from the listing contact form
	// POST /api/v1/listings/:listing_id/leads
	SubmitLead(c *gin.Context)

	// Reconcile rebuilds daily analytics (requires authentication)
	// POST /api/v1/admin/reconcile
	Reconcile(c *gin.Context)

	// GetListingAnalytics retrieves daily analytics and average time-to-lead (requires authentication)
	// GET /api/v1/listings/:listing_id/analytics?from=<YYYY-MM-DD>&to=<YYYY-MM-DD>
	GetListingAnalytics(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug          bool
	executor       executor.Executor
	resolver       *session.Resolver
	listingBaseURL string
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor, resolver *session.Resolver, listingBaseURL string) Handler {
	return &handler{
		debug:          debug,
		executor:       exec,
		resolver:       resolver,
		listingBaseURL: strings.TrimRight(listingBaseURL, "/"),
	}
}

// TrackScan records a QR scan. The visitor is always redirected to the listing,
// a lost analytics write must never break the scan.
func (h *handler) TrackScan(c *gin.Context) {
	listingID := c.Param("listing_id")
	identity := h.resolver.Resolve(c.Request)

	result, err := h.executor.TrackScan(
		c.Request.Context(),
		listingID,
		identity.Token,
		c.Request.UserAgent(),
		c.Request.Referer(),
	)
	if err != nil {
		respondError(c, err, "Failed to track scan")
		return
	}

	h.resolver.Persist(c.Writer, result.SessionToken)
	c.Redirect(http.StatusFound, h.listingURL(listingID, c.Request.URL.RawQuery))
}

// TrackPageView records a page-view beacon
func (h *handler) TrackPageView(c *gin.Context) {
	var req dto.PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	identity := h.resolver.Resolve(c.Request)

	result, err := h.executor.TrackPageView(
		c.Request.Context(),
		req,
		identity.Token,
		c.Request.UserAgent(),
		c.Request.Referer(),
	)
	if err != nil {
		respondError(c, err, "Failed to track page view")
		return
	}

	h.resolver.Persist(c.Writer, result.SessionToken)
	c.JSON(http.StatusOK, dto.TrackResponse{Success: true})
}

// SubmitLead stores a lead. The correlation cookie is read but never set here.
func (h *handler) SubmitLead(c *gin.Context) {
	listingID := c.Param("listing_id")

	var req dto.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	token, _ := h.resolver.Peek(c.Request)

	response, err := h.executor.SubmitLead(
		c.Request.Context(),
		listingID,
		req,
		token,
		c.Request.Referer(),
	)
	if err != nil {
		respondError(c, err, "Failed to submit lead")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Reconcile rebuilds daily analytics and reports what was written, also on failure
func (h *handler) Reconcile(c *gin.Context) {
	response, err := h.executor.Reconcile(c.Request.Context())
	if response == nil {
		response = &dto.ReconcileResponse{}
	}
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.Int("groups_failed", response.GroupsFailed))
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetListingAnalytics retrieves daily analytics of a listing
func (h *handler) GetListingAnalytics(c *gin.Context) {
	listingID := c.Param("listing_id")

	from, err := parseDay(c.Query("from"))
	if err != nil {
		respondValidationError(c, fmt.Sprintf("invalid from: %v", err))
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		respondValidationError(c, fmt.Sprintf("invalid to: %v", err))
		return
	}

	response, err := h.executor.GetListingAnalytics(c.Request.Context(), listingID, from, to)
	if err != nil {
		respondError(c, err, "Failed to get listing analytics")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.executor.Ping(ctx); err != nil {
		logger.WarnCtx(ctx, "Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": "ff-lead-analytics-api",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-lead-analytics-api",
	})
}

// listingURL returns the public page of a listing, keeping the scan's query parameters
func (h *handler) listingURL(listingID, rawQuery string) string {
	target := h.listingBaseURL + "/" + url.PathEscape(listingID)
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// parseDay parses an optional YYYY-MM-DD query parameter
func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := time.Parse(constants.DATE_LAYOUT, value)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD")
	}
	return &day, nil
}
