package systemd

import (
	"time"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier reports service state to systemd. Outside of a systemd unit
// every call is a no-op.
type Notifier struct {
	notify   func(unsetEnv bool, state string) (bool, error)
	watchdog time.Duration
	lastPing time.Time
	now      func() time.Time
}

// NewNotifier reads the watchdog interval configured for the unit, if any.
func NewNotifier() *Notifier {
	n := &Notifier{notify: daemon.SdNotify, now: time.Now}
	if d, err := daemon.SdWatchdogEnabled(false); err == nil {
		n.watchdog = d
	}

	return n
}

// WatchdogInterval is the unit's WatchdogSec, or zero when disabled.
func (n *Notifier) WatchdogInterval() time.Duration {
	return n.watchdog
}

func (n *Notifier) Ready() error {
	return n.send(daemon.SdNotifyReady)
}

func (n *Notifier) Stopping() error {
	return n.send(daemon.SdNotifyStopping)
}

// Alive pings the watchdog, at most twice per watchdog interval.
func (n *Notifier) Alive() error {
	if n.watchdog <= 0 {
		return nil
	}

	now := n.now()
	if !n.lastPing.IsZero() && now.Sub(n.lastPing) < n.watchdog/2 {
		return nil
	}
	n.lastPing = now

	return n.send(daemon.SdNotifyWatchdog)
}

func (n *Notifier) send(state string) error {
	if _, err := n.notify(false, state); err != nil {
		return errors.New().Wrap(errors.ErrNotify, err).WithData(state)
	}

	return nil
}
