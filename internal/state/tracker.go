// Package state debounces raw per-tick detections into a stable boolean
// activation state. It is the only state carried across ticks.
package state

import "time"

// Phase is the tracker's position in the debounce cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePendingActive
	PhaseActive
	PhasePendingIdle
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePendingActive:
		return "pending-active"
	case PhaseActive:
		return "active"
	case PhasePendingIdle:
		return "pending-idle"
	default:
		return "unknown"
	}
}

// Event is the discrete outcome of one observation.
type Event int

const (
	Unchanged Event = iota
	Entered
	Exited
)

func (e Event) String() string {
	switch e {
	case Entered:
		return "entered"
	case Exited:
		return "exited"
	default:
		return "unchanged"
	}
}

// Tracker turns a stream of boolean observations into Entered/Exited events,
// requiring debounce consecutive matching observations before committing a
// transition. A single flickering sample therefore never fires an event, and
// exactly one Entered is emitted per activation episode no matter how long
// the episode lasts.
type Tracker struct {
	debounce int
	phase    Phase
	count    int
	pending  time.Time
	lastObs  bool
}

// New returns a tracker in the idle phase. A debounce depth below 1 is
// clamped to 1 (no debouncing: every observation commits immediately).
func New(debounce int) *Tracker {
	if debounce < 1 {
		debounce = 1
	}
	return &Tracker{debounce: debounce}
}

// Observe consumes one raw observation and returns the resulting event.
// The transition into Active (or back to Idle) happens only once count
// consecutive matching observations reach the debounce depth; a contradicting
// observation while pending resets to the confirmed phase, treating the
// pending run as noise.
func (t *Tracker) Observe(present bool, now time.Time) Event {
	t.lastObs = present

	switch t.phase {
	case PhaseIdle:
		if !present {
			return Unchanged
		}
		t.count = 1
		t.pending = now
		if t.count >= t.debounce {
			t.phase = PhaseActive
			return Entered
		}
		t.phase = PhasePendingActive
		return Unchanged

	case PhasePendingActive:
		if !present {
			t.phase = PhaseIdle
			t.count = 0
			return Unchanged
		}
		t.count++
		if t.count >= t.debounce {
			t.phase = PhaseActive
			return Entered
		}
		return Unchanged

	case PhaseActive:
		if present {
			return Unchanged
		}
		t.count = 1
		t.pending = now
		if t.count >= t.debounce {
			t.phase = PhaseIdle
			return Exited
		}
		t.phase = PhasePendingIdle
		return Unchanged

	case PhasePendingIdle:
		if present {
			t.phase = PhaseActive
			t.count = 0
			return Unchanged
		}
		t.count++
		if t.count >= t.debounce {
			t.phase = PhaseIdle
			return Exited
		}
		return Unchanged
	}

	return Unchanged
}

// ObserveMissing records that no observation was possible this tick. The
// tracker is left untouched: a transient capture outage must behave as if it
// never happened once observations resume.
func (t *Tracker) ObserveMissing() Event {
	return Unchanged
}

// Active reports whether the tracker is in a confirmed activation episode.
// Pending phases count toward their confirmed side: PendingIdle is still
// active, PendingActive is not yet.
func (t *Tracker) Active() bool {
	return t.phase == PhaseActive || t.phase == PhasePendingIdle
}

// Phase returns the current debounce phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// LastObservation returns the most recent raw observation.
func (t *Tracker) LastObservation() bool {
	return t.lastObs
}

// PendingSince returns when the current pending run began, and whether the
// tracker is in a pending phase at all.
func (t *Tracker) PendingSince() (time.Time, bool) {
	if t.phase == PhasePendingActive || t.phase == PhasePendingIdle {
		return t.pending, true
	}
	return time.Time{}, false
}
