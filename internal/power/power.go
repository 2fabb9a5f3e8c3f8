package power

import "time"

// SleepTimeout is how long the panel stays lit with no valid snapshot
// before blanking.
const SleepTimeout = 60 * time.Second

// State is the display power state.
type State int

const (
	On State = iota
	Off
)

func (s State) String() string {
	if s == Off {
		return "off"
	}
	return "on"
}

// Panel is what the manager actuates on a transition.
type Panel interface {
	// Blank clears the screen content and disables backlight power.
	Blank()
	// Wake re-enables backlight power.
	Wake()
}

// Manager is the display power state machine. Two transitions exist:
// ON→OFF when the idle time exceeds the sleep timeout, and OFF→ON the
// instant a valid snapshot is accepted. Time alone never wakes the panel,
// and transport noise that fails to parse never wakes it either.
type Manager struct {
	panel   Panel
	timeout time.Duration
	state   State
}

func NewManager(panel Panel, timeout time.Duration) *Manager {
	return &Manager{panel: panel, timeout: timeout, state: On}
}

func (m *Manager) State() State {
	return m.state
}

// Tick evaluates the sleep timeout. idle is the elapsed time since the
// last valid snapshot (or since startup when none has arrived).
func (m *Manager) Tick(idle time.Duration) {
	if m.state == On && idle > m.timeout {
		m.state = Off
		m.panel.Blank()
	}
}

// OnSnapshot handles a valid snapshot arrival. When it wakes the panel it
// returns true and the caller must relayout, reset the draw cache and do a
// full repaint.
func (m *Manager) OnSnapshot() bool {
	if m.state != Off {
		return false
	}
	m.state = On
	m.panel.Wake()
	return true
}
