package state

import (
	"testing"
	"time"
)

func observeAll(t *Tracker, observations []bool) []Event {
	now := time.Unix(1700000000, 0)
	events := make([]Event, 0, len(observations))
	for _, o := range observations {
		events = append(events, t.Observe(o, now))
		now = now.Add(5 * time.Second)
	}
	return events
}

func countEvents(events []Event) (entered, exited int) {
	for _, e := range events {
		switch e {
		case Entered:
			entered++
		case Exited:
			exited++
		}
	}
	return entered, exited
}

func TestDebounceScenario(t *testing.T) {
	// The canonical k=2 walk-through: two runs of true long enough to
	// confirm, one lull long enough to confirm, nothing else.
	tr := New(2)
	obs := []bool{false, false, true, true, false, false, true, true, true, false, false}
	want := []Event{
		Unchanged, Unchanged, Unchanged, Entered,
		Unchanged, Exited,
		Unchanged, Entered, Unchanged,
		Unchanged, Exited,
	}

	events := observeAll(tr, obs)
	for i, e := range events {
		if e != want[i] {
			t.Errorf("observation %d (%v): got %v, want %v", i, obs[i], e, want[i])
		}
	}

	entered, exited := countEvents(events)
	if entered != 2 || exited != 2 {
		t.Errorf("got %d Entered and %d Exited, want 2 and 2", entered, exited)
	}
}

func TestEnteredCountsMaximalRuns(t *testing.T) {
	tests := []struct {
		name        string
		debounce    int
		obs         []bool
		wantEntered int
	}{
		{"single long run", 2, []bool{true, true, true, true, true}, 1},
		{"two confirmed runs", 2, []bool{true, true, false, false, true, true}, 2},
		{"short runs ignored", 3, []bool{true, true, false, true, true, false}, 0},
		{"exactly at depth", 3, []bool{true, true, true}, 1},
		{"no debounce", 1, []bool{true, false, true, false, true}, 3},
		{"all false", 2, []bool{false, false, false, false}, 0},
		{"empty", 2, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.debounce)
			entered, _ := countEvents(observeAll(tr, tt.obs))
			if entered != tt.wantEntered {
				t.Errorf("got %d Entered events, want %d", entered, tt.wantEntered)
			}
		})
	}
}

func TestIsolatedSpikeNeverEnters(t *testing.T) {
	tr := New(2)
	events := observeAll(tr, []bool{false, true, false, false})
	entered, _ := countEvents(events)
	if entered != 0 {
		t.Errorf("isolated spike produced %d Entered events, want 0", entered)
	}
	if tr.Active() {
		t.Error("tracker active after isolated spike")
	}
}

func TestEventsStrictlyAlternate(t *testing.T) {
	// Noisy sequence; whatever events come out, Entered and Exited must
	// alternate and start with Entered.
	tr := New(2)
	obs := []bool{
		true, false, true, true, true, false, true, false, false,
		false, true, true, false, false, true, true, true, false, false,
	}

	last := Exited // so the first transition must be Entered
	for i, o := range obs {
		e := tr.Observe(o, time.Unix(int64(1700000000+i), 0))
		if e == Unchanged {
			continue
		}
		if e == last {
			t.Fatalf("observation %d: %v followed %v without the opposite in between", i, e, last)
		}
		last = e
	}
}

func TestIdempotentWhileActive(t *testing.T) {
	tr := New(2)
	observeAll(tr, []bool{true, true})
	if !tr.Active() {
		t.Fatal("tracker should be active after two true observations")
	}

	for i := 0; i < 10; i++ {
		if e := tr.Observe(true, time.Unix(1700000100, 0)); e != Unchanged {
			t.Fatalf("replayed observation %d produced %v, want Unchanged", i, e)
		}
	}
}

func TestMissingObservationsAreTransparent(t *testing.T) {
	run := func(withOutage bool) []Event {
		tr := New(2)
		pre := []bool{true, true, false} // active, one pending-idle sample
		events := observeAll(tr, pre)
		if withOutage {
			for i := 0; i < 5; i++ {
				events = append(events, tr.ObserveMissing())
			}
		}
		post := []bool{true, false, false} // recover, then confirm exit
		return append(events, observeAll(tr, post)...)
	}

	plain := run(false)
	outage := run(true)

	filter := func(events []Event) []Event {
		var out []Event
		for _, e := range events {
			if e != Unchanged {
				out = append(out, e)
			}
		}
		return out
	}

	p, o := filter(plain), filter(outage)
	if len(p) != len(o) {
		t.Fatalf("transition counts differ: %d without outage, %d with", len(p), len(o))
	}
	for i := range p {
		if p[i] != o[i] {
			t.Errorf("transition %d differs: %v without outage, %v with", i, p[i], o[i])
		}
	}
}

func TestObserveMissingPreservesState(t *testing.T) {
	tests := []struct {
		name string
		obs  []bool
	}{
		{"idle", []bool{false}},
		{"pending active", []bool{false, true}},
		{"active", []bool{true, true}},
		{"pending idle", []bool{true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(2)
			observeAll(tr, tt.obs)
			phase, active := tr.Phase(), tr.Active()

			if e := tr.ObserveMissing(); e != Unchanged {
				t.Errorf("ObserveMissing returned %v, want Unchanged", e)
			}
			if tr.Phase() != phase || tr.Active() != active {
				t.Errorf("state moved on missing observation: phase %v -> %v, active %v -> %v",
					phase, tr.Phase(), active, tr.Active())
			}
		})
	}
}

func TestPendingSince(t *testing.T) {
	tr := New(3)
	start := time.Unix(1700000000, 0)

	if _, ok := tr.PendingSince(); ok {
		t.Error("idle tracker reported a pending run")
	}

	tr.Observe(true, start)
	since, ok := tr.PendingSince()
	if !ok || !since.Equal(start) {
		t.Errorf("PendingSince = %v, %v; want %v, true", since, ok, start)
	}

	// Second matching sample extends the run without resetting its start.
	tr.Observe(true, start.Add(5*time.Second))
	since, ok = tr.PendingSince()
	if !ok || !since.Equal(start) {
		t.Errorf("PendingSince after second sample = %v, %v; want %v, true", since, ok, start)
	}

	// Contradiction resets to idle.
	tr.Observe(false, start.Add(10*time.Second))
	if _, ok := tr.PendingSince(); ok {
		t.Error("tracker reported a pending run after reset to idle")
	}
}

func TestDebounceClamped(t *testing.T) {
	tr := New(0)
	if e := tr.Observe(true, time.Now()); e != Entered {
		t.Errorf("depth-0 tracker should behave as depth 1: got %v, want Entered", e)
	}
}

func TestPhaseString(t *testing.T) {
	tr := New(2)
	if got := tr.Phase().String(); got != "idle" {
		t.Errorf("initial phase = %q, want %q", got, "idle")
	}
	tr.Observe(true, time.Now())
	if got := tr.Phase().String(); got != "pending-active" {
		t.Errorf("phase after one true = %q, want %q", got, "pending-active")
	}
}
