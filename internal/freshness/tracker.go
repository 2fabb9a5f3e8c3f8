package freshness

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultThreshold is how long after the last valid snapshot the data still
// counts as fresh. Firmware variants shipped both 1500ms and 2500ms; 2500ms
// is the value of the surviving build and the one we standardize on.
const DefaultThreshold = 2500 * time.Millisecond

// Status is the derived receive state shown on the status line.
type Status int

const (
	// Waiting means no valid snapshot has ever arrived.
	Waiting Status = iota
	Fresh
	Stale
)

func (s Status) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "waiting"
	}
}

// Tracker records the arrival instant of the last valid snapshot.
type Tracker struct {
	clock       clockwork.Clock
	threshold   time.Duration
	lastReceipt time.Time
	received    bool
}

// NewTracker starts a tracker in the waiting state. The receipt instant is
// initialized to now so that idle-time accounting (the sleep timeout) runs
// from startup even if nothing ever arrives.
func NewTracker(clock clockwork.Clock, threshold time.Duration) *Tracker {
	return &Tracker{
		clock:       clock,
		threshold:   threshold,
		lastReceipt: clock.Now(),
	}
}

// MarkReceived records now as the last-receipt instant.
func (t *Tracker) MarkReceived() {
	t.lastReceipt = t.clock.Now()
	t.received = true
}

// Status derives the receive state: a snapshot received at time r is fresh
// for any query in [r, r+threshold) and stale from r+threshold on.
func (t *Tracker) Status() Status {
	if !t.received {
		return Waiting
	}
	if t.clock.Since(t.lastReceipt) < t.threshold {
		return Fresh
	}
	return Stale
}

// SinceLastReceipt reports elapsed time since the last valid snapshot, or
// since startup when none has arrived yet.
func (t *Tracker) SinceLastReceipt() time.Duration {
	return t.clock.Since(t.lastReceipt)
}
