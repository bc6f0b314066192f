package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field keys shared by the tracking pipeline so a failed write can be replayed
const (
	FieldListingID    = "listing_id"
	FieldSessionToken = "session_token"
	FieldDate         = "date"
	FieldEventKind    = "event_kind"
	FieldRequestID    = "request_id"
)

// Listing returns the listing ID field
func Listing(listingID string) zap.Field {
	return zap.String(FieldListingID, listingID)
}

// SessionToken returns the correlation token field
func SessionToken(token string) zap.Field {
	return zap.String(FieldSessionToken, token)
}

// Day returns the analytics date field formatted as YYYY-MM-DD
func Day(day time.Time) zap.Field {
	return zap.String(FieldDate, day.Format(time.DateOnly))
}

// EventKind returns the event kind field
func EventKind(kind string) zap.Field {
	return zap.String(FieldEventKind, kind)
}

// RequestID returns the request ID field
func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}
