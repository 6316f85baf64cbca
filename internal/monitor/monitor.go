package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/mjaros/housing-monitor/internal/logger"
	"github.com/mjaros/housing-monitor/internal/notifier"
	"github.com/mjaros/housing-monitor/internal/scraper"
	"github.com/mjaros/housing-monitor/internal/state"
	"github.com/mjaros/housing-monitor/internal/storage"
)

// ErrorCooldown is the fixed wait after an unexpected in-cycle failure
// before the next attempt. There is no backoff schedule; failures simply
// wait out the cooldown or the regular interval.
const ErrorCooldown = 60 * time.Second

// Runner executes monitoring cycles: fetch, extract, compare, notify,
// persist. It is strictly sequential; the only blocking points are the two
// outbound HTTP calls and the interval sleep.
type Runner struct {
	scraper  *scraper.Scraper
	store    *storage.Store
	notifier notifier.Notifier
	interval time.Duration

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// previous mirrors the persisted snapshot across cycles, so a state-file
	// write failure still leaves change detection correct for the remainder
	// of the process.
	previous *state.Snapshot
	loaded   bool
}

// NewRunner creates a Runner over the given scraper, store, and notifier.
func NewRunner(sc *scraper.Scraper, store *storage.Store, n notifier.Notifier, interval time.Duration) *Runner {
	return &Runner{
		scraper:  sc,
		store:    store,
		notifier: n,
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// sleepContext blocks for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// loadPrevious reads the persisted snapshot once. A read failure is logged
// and treated identically to "no prior state known".
func (r *Runner) loadPrevious() *state.Snapshot {
	if r.loaded {
		return r.previous
	}
	snap, err := r.store.Load()
	if err != nil {
		logger.Warn("Could not read state file, treating as first run", logger.Fields{
			"state_file": r.store.Path(),
			"error":      err.Error(),
		})
		snap = nil
	}
	r.previous = snap
	r.loaded = true
	return snap
}

// CheckOnce runs a single cycle and reports whether an update (first-run
// initialization or a changed date) was observed. Fetch failures and
// extraction misses abort the cycle with the state untouched and are
// returned after being logged; notification and state-write failures are
// logged and swallowed.
func (r *Runner) CheckOnce() (bool, error) {
	start := r.now()
	logger.IncrCounter("cycle.checks")
	logger.Info("Checking for updates", logger.Fields{"url": r.scraper.URL()})

	content, err := r.scraper.Fetch()
	if err != nil {
		logger.IncrCounter("cycle.fetch_errors")
		logger.Error("Failed to fetch page", logger.Fields{"url": r.scraper.URL()}, err)
		return false, err
	}

	currentDate, err := scraper.ExtractUpdateDate(content)
	if err != nil {
		logger.IncrCounter("cycle.extract_misses")
		logger.Error("Could not find update date on page", nil, err)
		return false, err
	}

	previous := r.loadPrevious()
	decision := state.Evaluate(previous, currentDate, r.scraper.URL(), r.now())

	lastKnown := ""
	if previous != nil {
		lastKnown = previous.LastUpdateDate
	}
	logger.Debug("Cycle evaluated", logger.Fields{
		"current_date": currentDate,
		"last_known":   lastKnown,
		"result":       decision.Kind.String(),
	})

	switch decision.Kind {
	case state.KindInitialized:
		// First run persists before notifying; the stored date is the ground
		// truth for "already notified" from here on.
		r.persist(decision.Next)
		r.send(decision.Notification)
		logger.Info("Initial run, saved current state", logger.Fields{"date": currentDate})

	case state.KindUpdated:
		// Notification failure deliberately does not block the state write:
		// the new date is persisted regardless, so a broken backend never
		// causes repeated notifications for the same date.
		r.send(decision.Notification)
		r.persist(decision.Next)
		logger.IncrCounter("cycle.updates")
		logger.Info("Update detected", logger.Fields{
			"previous_date": lastKnown,
			"new_date":      currentDate,
		})

	default:
		logger.Info("No updates found", logger.Fields{"date": currentDate})
	}

	logger.RecordTiming("cycle.duration", r.now().Sub(start))
	return decision.Updated(), nil
}

// send dispatches a notification; delivery failure is logged and dropped.
func (r *Runner) send(n *state.Notification) {
	if n == nil {
		return
	}
	if err := r.notifier.Send(n.Message, n.Title); err != nil {
		logger.IncrCounter("notify.errors")
		logger.Error("Failed to send notification", logger.Fields{"title": n.Title}, err)
		return
	}
	logger.Info("Notification sent", logger.Fields{"title": n.Title})
}

// persist writes the next snapshot. A write failure is logged and dropped;
// the in-memory snapshot still advances so the running process does not
// re-notify, though the date is lost for the next restart.
func (r *Runner) persist(next *state.Snapshot) {
	if next == nil {
		return
	}
	if err := r.store.Save(next); err != nil {
		logger.IncrCounter("state.write_errors")
		logger.Error("Failed to save state", logger.Fields{"state_file": r.store.Path()}, err)
	}
	r.previous = next
	r.loaded = true
}

// checkRecover runs one cycle with panic recovery so a programming error in
// a dependency cannot kill the loop. It reports whether the cycle ended in an
// unexpected failure; expected failures (fetch, extraction) are logged inside
// CheckOnce and do not trigger the cooldown.
func (r *Runner) checkRecover() (unexpected bool) {
	defer func() {
		if p := recover(); p != nil {
			unexpected = true
			logger.Error("Unexpected error, continuing monitoring", nil,
				fmt.Errorf("cycle panic: %v", p))
		}
	}()
	_, _ = r.CheckOnce()
	return false
}

// Run executes one cycle immediately, then repeats every interval until ctx
// is canceled. Expected cycle failures (fetch, extraction) were already
// logged and wait out the normal interval; an unexpected panic waits the
// fixed 60s cooldown instead. The loop never exits on its own.
func (r *Runner) Run(ctx context.Context) error {
	logger.Info("Starting continuous monitoring", logger.Fields{
		"url":              r.scraper.URL(),
		"interval_minutes": r.interval.Minutes(),
		"state_file":       r.store.Path(),
	})

	for {
		delay := r.interval
		if r.checkRecover() {
			delay = ErrorCooldown
		}

		logger.Debug("Sleeping until next check", logger.Fields{"delay": delay.String()})
		if err := r.sleep(ctx, delay); err != nil {
			logger.Info("Monitoring stopped", nil)
			logger.Info("Metrics snapshot", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
			return nil
		}
	}
}
