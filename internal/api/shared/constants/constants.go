package constants

import "time"

const (
	MAX_LEAD_NAME_LENGTH    = 200
	MAX_LEAD_EMAIL_LENGTH   = 320
	MAX_LEAD_PHONE_LENGTH   = 50
	MAX_LEAD_MESSAGE_LENGTH = 5000
	MAX_SOURCE_LENGTH       = 50

	// DEFAULT_ANALYTICS_RANGE_DAYS is the number of days read when the request names no start day
	DEFAULT_ANALYTICS_RANGE_DAYS = 30
	// MAX_ANALYTICS_RANGE_DAYS bounds the number of days a single analytics read covers
	MAX_ANALYTICS_RANGE_DAYS = 366

	// DATE_LAYOUT is the layout of day query parameters
	DATE_LAYOUT = time.DateOnly
)
