package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Source represents how a visitor reached a listing
type Source string

const (
	SourceQR        Source = "qr"
	SourceDirect    Source = "direct"
	SourceMicrosite Source = "microsite"
)

// IsValidSource checks if a source is one of the known attribution sources
func IsValidSource(source Source) bool {
	return source == SourceQR ||
		source == SourceDirect ||
		source == SourceMicrosite
}

// IsPageViewSource checks if a source can be reported by the page-view beacon
func IsPageViewSource(source Source) bool {
	return source == SourceDirect || source == SourceMicrosite
}

// DeviceType represents the device class derived from a user agent
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceUnknown DeviceType = "unknown"
)

// EventKind represents the kind of inbound tracking event
type EventKind string

const (
	EventKindScan     EventKind = "scan"
	EventKindPageView EventKind = "page_view"
	EventKindLead     EventKind = "lead"
)

// ListingID is the opaque identifier of a listing owned by the listing service
type ListingID string

// Valid checks that the listing ID is a canonical UUID
func (id ListingID) Valid() bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(string(id))
	return err == nil
}

// String returns the string form of the listing ID
func (id ListingID) String() string {
	return string(id)
}

// DeviceTypeFromUserAgent classifies a user agent string into a device type
func DeviceTypeFromUserAgent(userAgent string) DeviceType {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return DeviceUnknown
	}

	// Tablets first: iPad and Android tablets also advertise mobile tokens
	switch {
	case strings.Contains(ua, "ipad"),
		strings.Contains(ua, "tablet"),
		strings.Contains(ua, "kindle"),
		strings.Contains(ua, "silk/"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobile"),
		strings.Contains(ua, "iphone"),
		strings.Contains(ua, "ipod"),
		strings.Contains(ua, "android"),
		strings.Contains(ua, "windows phone"),
		strings.Contains(ua, "blackberry"):
		return DeviceMobile
	case strings.Contains(ua, "windows"),
		strings.Contains(ua, "macintosh"),
		strings.Contains(ua, "x11"),
		strings.Contains(ua, "linux"),
		strings.Contains(ua, "cros"):
		return DeviceDesktop
	}

	return DeviceUnknown
}
