// Package watch drives the detection loop: one tick every interval, each tick
// running locate -> capture -> classify -> track -> notify/log to completion
// before the next begins.
package watch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"bosswatch/internal/config"
	"bosswatch/internal/detect"
	"bosswatch/internal/notify"
	"bosswatch/internal/state"
	"bosswatch/pkg/sampler"
	"bosswatch/pkg/window"
)

// ErrStartupTimeout is returned by Run when the target window never resolves
// within the startup grace period.
var ErrStartupTimeout = errors.New("target window not found within startup grace period")

// ErrWindowAbandoned is returned by Run when the window was found once but
// then stayed unreachable past the consecutive-miss budget.
var ErrWindowAbandoned = errors.New("target window lost and not recovered")

// Condition describes why observations are (or are not) flowing.
type Condition string

const (
	ConditionOK            Condition = "ok"
	ConditionNotFound      Condition = "not-found"
	ConditionMinimized     Condition = "minimized"
	ConditionCaptureFailed Condition = "capture-failed"
)

// Status is a read-only snapshot of the loop for the status surface. It
// shares no mutable state with the tick loop; Service.Status copies it under
// a lock.
type Status struct {
	Title             string    `json:"title"`
	Phase             string    `json:"phase"`
	Active            bool      `json:"active"`
	Condition         Condition `json:"condition"`
	LastTick          time.Time `json:"last_tick,omitzero"`
	LastChange        time.Time `json:"last_change,omitzero"`
	LastError         string    `json:"last_error,omitempty"`
	TicksTotal        int64     `json:"ticks_total"`
	TicksMissed       int64     `json:"ticks_missed"`
	WavesSeen         int64     `json:"waves_seen"`
	NotificationsSent int64     `json:"notifications_sent"`
}

// Service owns the detection loop and the only state carried across ticks.
type Service struct {
	cfg      *config.Config
	locator  window.Locator
	sampler  sampler.Sampler
	notifier notify.Notifier
	limiter  *notify.Limiter
	tracker  *state.Tracker
	sig      detect.Signature

	ref       window.Ref
	everFound bool
	misses    int
	condition Condition

	stopOnce sync.Once
	stopChan chan struct{}

	mu     sync.Mutex
	status Status

	now func() time.Time
}

// NewService wires the loop's collaborators together. The tracker starts
// idle; nothing is assumed about the game state before the first tick.
func NewService(cfg *config.Config, loc window.Locator, smp sampler.Sampler, n notify.Notifier) *Service {
	return &Service{
		cfg:       cfg,
		locator:   loc,
		sampler:   smp,
		notifier:  n,
		limiter:   notify.NewLimiter(n, cfg.Notify.MinBossInterval),
		tracker:   state.New(cfg.Watch.Debounce),
		sig:       cfg.Detect.Signature(),
		condition: ConditionOK,
		stopChan:  make(chan struct{}),
		status: Status{
			Title:     cfg.Target.Title,
			Phase:     state.PhaseIdle.String(),
			Condition: ConditionOK,
		},
		now: time.Now,
	}
}

// Run executes the detection loop until the context is cancelled, Stop is
// called, or a terminal condition is reached. A single failed tick is never
// fatal; only startup-grace expiry or a sustained run of failed ticks ends
// the loop with an error.
func (s *Service) Run(ctx context.Context) error {
	log.Printf("Watching %q every %v (debounce %d, region %dx%d)",
		s.cfg.Target.Title, s.cfg.Watch.Interval, s.cfg.Watch.Debounce,
		s.cfg.Target.Region.Width(), s.cfg.Target.Region.Height())

	deadline := s.now().Add(s.cfg.Watch.StartupGrace)

	ticker := time.NewTicker(s.cfg.Watch.Interval)
	defer ticker.Stop()

	if err := s.tick(deadline); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Watcher stopped by context")
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Watcher stopped")
			return nil

		case <-ticker.C:
			if err := s.tick(deadline); err != nil {
				return err
			}
		}
	}
}

// Stop requests a graceful shutdown. Safe to call from any goroutine and
// more than once; the loop observes it at the next tick boundary.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Status returns a copy of the current loop snapshot.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// tick performs one full pass of the pipeline. The returned error is
// terminal; per-tick failures are contained here and only counted.
func (s *Service) tick(deadline time.Time) error {
	now := s.now()
	res, err := s.observe()

	if err != nil {
		// No observation this tick: the tracker must not move. Whatever
		// state the last confirmed observation established is preserved
		// until pixels can be read again.
		s.tracker.ObserveMissing()
		cond := classify(err)
		if cond == ConditionMinimized {
			// The window is alive, just iconified. It can stay that way
			// indefinitely without spending the miss budget.
			s.misses = 0
		} else {
			s.misses++
		}
		s.noteCondition(cond, err)
		s.recordTick(now, true, err)
		s.logWarn("%s (%s)", err, cond)

		if !s.everFound && now.After(deadline) {
			return errors.Wrapf(ErrStartupTimeout, "no window titled %q after %v",
				s.cfg.Target.Title, s.cfg.Watch.StartupGrace)
		}
		if s.everFound && s.misses >= s.cfg.Watch.MaxConsecutiveMisses {
			return errors.Wrapf(ErrWindowAbandoned, "%d consecutive failed ticks", s.misses)
		}
		return nil
	}

	s.everFound = true
	s.misses = 0
	s.noteCondition(ConditionOK, nil)

	event := s.tracker.Observe(res.Present, now)
	s.recordTick(now, false, nil)

	switch event {
	case state.Entered:
		s.mu.Lock()
		s.status.WavesSeen++
		s.status.LastChange = now
		s.mu.Unlock()
		s.logTransition("Boss wave detected (%d/%d pixels matched)", res.Matched, res.Total)
		s.announceBossWave()

	case state.Exited:
		s.mu.Lock()
		s.status.LastChange = now
		s.mu.Unlock()
		s.logTransition("Boss wave over (%d/%d pixels matched)", res.Matched, res.Total)

	default:
		s.logStatus("%s: phase=%s present=%v matched=%d/%d",
			s.cfg.Target.Title, s.tracker.Phase(), res.Present, res.Matched, res.Total)
	}

	return nil
}

// observe resolves the window, derives a fresh capture rectangle, samples it,
// and classifies the pixels. Any failure means no observation for this tick.
func (s *Service) observe() (detect.Result, error) {
	if s.ref == 0 {
		ref, err := s.locator.Find(s.cfg.Target.Title)
		if err != nil {
			return detect.Result{}, err
		}
		s.ref = ref
		// The window exists, even if this tick's pixels end up unreadable;
		// the startup grace period only guards against a window that never
		// appears at all.
		s.everFound = true
	}

	info, err := s.locator.Info(s.ref)
	if err != nil {
		// Handle is stale; re-resolve by title on the next tick.
		s.ref = 0
		return detect.Result{}, err
	}

	if info.Minimized {
		return detect.Result{}, errors.Wrapf(window.ErrWindowMinimized, "%q is iconified", s.cfg.Target.Title)
	}

	region := s.cfg.Target.Region
	roi := window.Rect{
		X:      info.Rect.X + region.X1,
		Y:      info.Rect.Y + region.Y1,
		Width:  region.Width(),
		Height: region.Height(),
	}.Intersect(info.Rect)
	if roi.Empty() {
		return detect.Result{}, errors.Wrapf(sampler.ErrCaptureFailed,
			"capture region lies outside the %dx%d window", info.Rect.Width, info.Rect.Height)
	}

	frame, err := s.sampler.Capture(roi)
	if err != nil {
		return detect.Result{}, err
	}

	return detect.Classify(frame, s.sig), nil
}

// announceBossWave delivers the one notification this tool exists for.
// Delivery failures are logged and otherwise ignored; the tracked state has
// already committed.
func (s *Service) announceBossWave() {
	if !s.cfg.Notify.Enabled {
		return
	}

	msg := fmt.Sprintf("A boss wave has been detected in your %s game.", s.cfg.Target.Title)
	sent, err := s.limiter.Notify("Boss Wave", msg)
	switch {
	case err != nil:
		s.logWarn("Boss wave notification failed: %v", err)
	case !sent:
		s.logWarn("Boss wave notification suppressed (last alert under %v ago)", s.cfg.Notify.MinBossInterval)
	default:
		s.mu.Lock()
		s.status.NotificationsSent++
		s.mu.Unlock()
	}
}

// noteCondition records availability transitions and raises a one-shot alert
// when detection becomes unavailable for a reason the user can fix.
func (s *Service) noteCondition(cond Condition, cause error) {
	if cond == s.condition {
		return
	}
	prev := s.condition
	s.condition = cond

	s.mu.Lock()
	s.status.Condition = cond
	s.mu.Unlock()

	if prev == ConditionOK || cond == ConditionOK {
		s.logWarn("Detection %s (was %s)", cond, prev)
	}

	if !s.cfg.Notify.Enabled {
		return
	}

	var title, msg string
	switch cond {
	case ConditionMinimized:
		title = fmt.Sprintf("%s is minimized.", s.cfg.Target.Title)
		msg = "Boss waves cannot be detected while the game window is minimized."
	case ConditionCaptureFailed:
		title = "Failed to read pixels."
		msg = fmt.Sprintf("Unable to read pixel data from the %s window. Boss wave notifications will be unavailable.", s.cfg.Target.Title)
	default:
		return
	}

	if err := s.notifier.Notify(title, msg); err != nil {
		s.logWarn("Availability notification failed: %v", err)
	}
}

func (s *Service) recordTick(now time.Time, missed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastTick = now
	s.status.TicksTotal++
	if missed {
		s.status.TicksMissed++
	}
	if err != nil {
		s.status.LastError = err.Error()
	} else {
		s.status.LastError = ""
	}
	s.status.Phase = s.tracker.Phase().String()
	s.status.Active = s.tracker.Active()
}

// classify maps an observation error onto the loop's condition taxonomy.
func classify(err error) Condition {
	switch {
	case errors.Is(err, window.ErrWindowMinimized):
		return ConditionMinimized
	case errors.Is(err, sampler.ErrCaptureFailed):
		return ConditionCaptureFailed
	default:
		return ConditionNotFound
	}
}

// logTransition always logs: state transitions are the product of this tool.
func (s *Service) logTransition(format string, args ...any) {
	log.Printf(format, args...)
}

// logStatus logs unchanged per-tick status, verbose mode only.
func (s *Service) logStatus(format string, args ...any) {
	if s.cfg.Log.Mode == config.LogVerbose {
		log.Printf(format, args...)
	}
}

// logWarn logs failures and availability changes, suppressed in quiet mode.
func (s *Service) logWarn(format string, args ...any) {
	if s.cfg.Log.Mode != config.LogQuiet {
		log.Printf(format, args...)
	}
}
