// Package state defines the persisted monitor state and the pure cycle
// evaluation that decides whether an observed date is new.
//
// Evaluate is side-effect free: it maps the previous snapshot and the
// currently observed date to a Decision describing the notification to send
// and the snapshot to persist. The caller performs the I/O.
package state

import (
	"fmt"
	"time"
)

// Snapshot is the durable monitor state, stored as the sole contents of the
// state file. LastUpdateDate holds the most recently observed "Stand" date in
// DD.MM.YYYY form; no calendar validation is performed on it.
type Snapshot struct {
	LastUpdateDate string `json:"last_update_date"`
	LastCheck      string `json:"last_check"` // RFC3339
}

// NewSnapshot creates a snapshot recording date as observed at now.
func NewSnapshot(date string, now time.Time) *Snapshot {
	return &Snapshot{
		LastUpdateDate: date,
		LastCheck:      now.UTC().Format(time.RFC3339),
	}
}

// Kind classifies the outcome of a cycle evaluation.
type Kind int

const (
	// KindUnchanged means the observed date matches the stored date.
	KindUnchanged Kind = iota
	// KindInitialized means no prior state existed; the observed date was
	// recorded for the first time.
	KindInitialized
	// KindUpdated means the observed date differs from the stored date.
	KindUpdated
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindInitialized:
		return "initialized"
	case KindUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Notification is a message to dispatch through the configured backend.
type Notification struct {
	Title   string
	Message string
}

// Decision is the outcome of one cycle evaluation. Notification is nil when
// nothing should be sent; Next is nil when the state file should be left
// untouched.
type Decision struct {
	Kind         Kind
	Notification *Notification
	Next         *Snapshot
}

// Updated reports whether the cycle observed something new (first run or a
// changed date).
func (d *Decision) Updated() bool {
	return d.Kind != KindUnchanged
}

// Evaluate compares the observed date against the previous snapshot.
// A nil previous snapshot means no prior state is known (first run or an
// unreadable state file) and initializes the monitor. The returned messages
// use simple HTML markup; each notifier backend renders or strips it as its
// transport allows.
func Evaluate(previous *Snapshot, currentDate, targetURL string, now time.Time) *Decision {
	if previous == nil {
		return &Decision{
			Kind: KindInitialized,
			Notification: &Notification{
				Title: "Housing Monitor Active",
				Message: fmt.Sprintf("🏠 Housing Monitor Started!\n\n"+
					"Now monitoring Bad Leonfelden housing updates.\n"+
					"Current update date: %s\n\n"+
					"You'll be notified when new listings are posted!", currentDate),
			},
			Next: NewSnapshot(currentDate, now),
		}
	}

	if currentDate != previous.LastUpdateDate {
		return &Decision{
			Kind: KindUpdated,
			Notification: &Notification{
				Title: "New Housing Listings!",
				Message: fmt.Sprintf("🏠 <b>NEW HOUSING LISTINGS AVAILABLE!</b>\n\n"+
					"The Bad Leonfelden housing page has been updated!\n\n"+
					"📅 Previous update: %s\n"+
					"📅 New update: %s\n\n"+
					"🔗 <a href='%s'>Check the listings here</a>",
					previous.LastUpdateDate, currentDate, targetURL),
			},
			Next: NewSnapshot(currentDate, now),
		}
	}

	return &Decision{Kind: KindUnchanged}
}
