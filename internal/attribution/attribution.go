package attribution

import (
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
)

// Action is the change an event makes to its scan session
type Action string

const (
	// ActionCreate inserts a new session
	ActionCreate Action = "create"
	// ActionUpdateMetadataOnly refreshes device, hour, referrer and last_seen_at.
	// The source is only filled in when the session has none.
	ActionUpdateMetadataOnly Action = "update_metadata_only"
	// ActionUpgradeSource turns a non-QR session into a QR session and counts the scan
	ActionUpgradeSource Action = "upgrade_source"
	// ActionIncrementScanCount counts another scan on a QR session
	ActionIncrementScanCount Action = "increment_scan_count"
)

// Event is one inbound tracking event for a listing and correlation token
type Event struct {
	ListingID    string
	SessionToken string
	Source       domain.Source
	DeviceType   domain.DeviceType
	// Hour is the hour of day (0-23) of OccurredAt in the store timezone
	Hour       int
	Referrer   *string
	OccurredAt time.Time
}

// Mutation is the concrete change planned for an event
type Mutation struct {
	Action Action
	// Session is the row to insert when Action is ActionCreate
	Session *schema.ScanSession
	// Update is the patch for an existing row otherwise
	Update store.ScanSessionUpdate
}

// CountsScan reports whether the mutation adds a scan to the session
func (m Mutation) CountsScan() bool {
	if m.Action == ActionCreate {
		return m.Session != nil && m.Session.ScanCount > 0
	}
	return m.Update.IncrementScanCount
}

// Decide returns the action for an event given the current session, nil if none exists.
// A QR session is sticky: no later event downgrades its source or resets its scan count.
func Decide(existing *schema.ScanSession, ev Event) Action {
	if existing == nil {
		return ActionCreate
	}

	if ev.Source != domain.SourceQR {
		return ActionUpdateMetadataOnly
	}

	if existing.ScanCount == 0 {
		return ActionUpgradeSource
	}
	return ActionIncrementScanCount
}

// AfterConflict returns the action for an event whose insert lost a race to existing.
// A QR event colliding with a session that already counts a scan is the same first
// scan seen twice, so it only refreshes metadata.
func AfterConflict(existing *schema.ScanSession, ev Event) Action {
	if ev.Source == domain.SourceQR && existing != nil && existing.ScanCount > 0 {
		return ActionUpdateMetadataOnly
	}
	return Decide(existing, ev)
}

// Plan decides the action for an event and turns it into a mutation
func Plan(existing *schema.ScanSession, ev Event) Mutation {
	return PlanAction(Decide(existing, ev), ev)
}

// PlanAction turns an already decided action into a mutation
func PlanAction(action Action, ev Event) Mutation {
	if action == ActionCreate {
		source := ev.Source
		scanCount := 0
		if source == domain.SourceQR {
			scanCount = 1
		}
		return Mutation{
			Action: action,
			Session: &schema.ScanSession{
				ListingID:    ev.ListingID,
				SessionToken: ev.SessionToken,
				Source:       &source,
				ScanCount:    scanCount,
				DeviceType:   ev.DeviceType,
				TimeOfDay:    ev.Hour,
				Referrer:     ev.Referrer,
				FirstSeenAt:  ev.OccurredAt,
				LastSeenAt:   ev.OccurredAt,
			},
		}
	}

	update := store.ScanSessionUpdate{
		DeviceType: ev.DeviceType,
		TimeOfDay:  ev.Hour,
		Referrer:   ev.Referrer,
		SeenAt:     ev.OccurredAt,
	}

	switch action {
	case ActionUpgradeSource, ActionIncrementScanCount:
		update.IncrementScanCount = true
		update.SetSourceQR = true
	default:
		source := ev.Source
		update.SourceIfUnset = &source
	}

	return Mutation{Action: action, Update: update}
}

// Apply returns the session as it looks after the mutation.
// It mirrors the SQL update expressions and is used to reason about event orderings.
func Apply(existing *schema.ScanSession, m Mutation) *schema.ScanSession {
	if m.Action == ActionCreate {
		created := *m.Session
		return &created
	}

	next := *existing
	if m.Update.IncrementScanCount {
		next.ScanCount++
	}
	if m.Update.SetSourceQR {
		qr := domain.SourceQR
		next.Source = &qr
	} else if next.Source == nil && m.Update.SourceIfUnset != nil {
		source := *m.Update.SourceIfUnset
		next.Source = &source
	}
	next.DeviceType = m.Update.DeviceType
	next.TimeOfDay = m.Update.TimeOfDay
	if m.Update.Referrer != nil {
		next.Referrer = m.Update.Referrer
	}
	if m.Update.SeenAt.After(next.LastSeenAt) {
		next.LastSeenAt = m.Update.SeenAt
	}
	return &next
}
