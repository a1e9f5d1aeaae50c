package reconcile

import (
	"time"

	"go.uber.org/zap"
)

// Run reconciles a product's cycle records against its feed.
// Observations are applied strictly in feed order; later decisions depend on
// the state left by earlier ones.
func Run(name string, records []CycleRecord, feed *Feed, opts Options, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	product := NewProduct(name, records, feed, logger)
	for _, obs := range product.Feed().Observations() {
		product.ProcessObservation(obs.Version, obs.Date)
	}
	inconsistencies := product.CheckConsistency()

	result := &Result{
		Product:         name,
		Updated:         product.Updated(),
		Observations:    product.Feed().Len(),
		Cycles:          make([]CycleRecord, 0, len(product.Cycles())),
		Changes:         []CycleChange{},
		Unmatched:       product.Unmatched(),
		Inconsistencies: inconsistencies,
	}

	for _, cycle := range product.Cycles() {
		result.Cycles = append(result.Cycles, cycle.Record())
		if cycle.Updated() {
			result.Changes = append(result.Changes, cycle.Change())
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	result.RecentUnmatched = RecentUnmatched(result.Unmatched, now, opts.RecencyWindow)

	return result
}

// RecentUnmatched keeps the entries released less than window before the UTC
// day of now. A zero window means DefaultRecencyWindow.
func RecentUnmatched(entries []Unmatched, now time.Time, window time.Duration) []Unmatched {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	today := Day(now)

	recent := []Unmatched{}
	for _, entry := range entries {
		if today.Sub(Day(entry.Date)) < window {
			recent = append(recent, entry)
		}
	}
	return recent
}

// Day truncates t to midnight UTC of its UTC calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
