package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-lead-analytics/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Tracking endpoints (public, called by visitors' browsers)
		v1.GET("/scan/:listing_id", handler.TrackScan)
		v1.POST("/track/page-view", handler.TrackPageView)

		// Lead capture (public, called by the listing contact form)
		v1.POST("/listings/:listing_id/leads", handler.SubmitLead)

		// Analytics read (requires authentication)
		v1.GET("/listings/:listing_id/analytics", middleware.Auth(auth), handler.GetListingAnalytics)

		// Admin endpoints (requires authentication)
		v1.POST("/admin/reconcile", middleware.Auth(auth), handler.Reconcile)
	}
}
