package domain

import "time"

const (
	// DEFAULT_SESSION_COOKIE_NAME is the cookie carrying the correlation token
	DEFAULT_SESSION_COOKIE_NAME = "qr_session"

	// DEFAULT_SESSION_COOKIE_MAX_AGE is the lifetime of the correlation token cookie
	DEFAULT_SESSION_COOKIE_MAX_AGE = 30 * 24 * time.Hour

	// DEFAULT_QR_FALLBACK_WINDOW is how far back a token-less page view may be attributed
	// to a QR session of the same listing
	DEFAULT_QR_FALLBACK_WINDOW = 5 * time.Minute

	// MAX_TIME_TO_LEAD is the exclusive upper bound of a meaningful time-to-lead
	MAX_TIME_TO_LEAD = 7 * 24 * time.Hour
)
