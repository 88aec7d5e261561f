package notify

import "time"

// Limiter spaces boss alerts at least a minimum interval apart. Waves arrive
// in bursts; without a floor between alerts a short lull inside one assault
// would fire a second notification for what the player perceives as the same
// event. The first alert after startup is always allowed, even when the boss
// is already on screen the moment the watcher starts.
type Limiter struct {
	notifier Notifier
	min      time.Duration
	last     time.Time
	now      func() time.Time
}

// NewLimiter wraps a notifier with a minimum interval between deliveries.
func NewLimiter(n Notifier, min time.Duration) *Limiter {
	return &Limiter{notifier: n, min: min, now: time.Now}
}

// Notify delivers the notification unless one was already delivered within
// the minimum interval. It reports whether delivery was attempted; a
// suppressed alert returns (false, nil).
func (l *Limiter) Notify(title, message string) (bool, error) {
	now := l.now()
	if !l.last.IsZero() && now.Sub(l.last) < l.min {
		return false, nil
	}
	l.last = now
	return true, l.notifier.Notify(title, message)
}
