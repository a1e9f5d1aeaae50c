package reconcile

import (
	"time"

	"go.uber.org/zap"
)

// Product owns the ordered release cycles of a product and its feed.
type Product struct {
	name      string
	cycles    []*ReleaseCycle
	feed      *Feed
	unmatched *Feed
	updated   bool
	logger    *zap.Logger
}

// NewProduct creates a product from its cycle records, in record order.
func NewProduct(name string, records []CycleRecord, feed *Feed, logger *zap.Logger) *Product {
	if logger == nil {
		logger = zap.NewNop()
	}
	if feed == nil {
		feed = NewFeed("")
	}

	cycles := make([]*ReleaseCycle, 0, len(records))
	for i, rec := range records {
		cycles = append(cycles, NewReleaseCycle(name, i, rec, logger))
	}

	return &Product{
		name:      name,
		cycles:    cycles,
		feed:      feed,
		unmatched: NewFeed(feed.Location()),
		logger:    logger.With(zap.String("product", name)),
	}
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Cycles returns the cycles in record order.
func (p *Product) Cycles() []*ReleaseCycle {
	return p.cycles
}

// Feed returns the observation feed.
func (p *Product) Feed() *Feed {
	return p.feed
}

// Updated reports whether any cycle changed during the run.
func (p *Product) Updated() bool {
	return p.updated
}

// ProcessObservation dispatches an observation to every cycle that includes it.
// When no cycle does, the observation is kept as unmatched.
func (p *Product) ProcessObservation(v string, date time.Time) {
	matched := false
	for _, cycle := range p.cycles {
		if !cycle.Includes(v) {
			continue
		}
		matched = true
		cycle.UpdateWith(v, date)
		p.updated = p.updated || cycle.Updated()
	}

	if !matched {
		p.logger.Debug("No cycle matches version", zap.String("version", v), zap.String("date", formatDate(date)))
		p.unmatched.Set(v, date)
	}
}

// CheckConsistency returns the matched cycles whose latest version is not a
// key of the feed. It never changes state.
func (p *Product) CheckConsistency() []Inconsistency {
	var issues []Inconsistency
	for _, cycle := range p.cycles {
		if !cycle.Matched() {
			continue
		}
		latest, _ := cycle.Latest()
		if p.feed.Has(latest) {
			continue
		}
		p.logger.Warn("Latest version not found in feed",
			zap.String("cycle", cycle.Name()),
			zap.String("latest", latest),
			zap.String("feed", p.feed.Location()),
		)
		issues = append(issues, Inconsistency{
			Cycle:        cycle.Name(),
			Latest:       latest,
			FeedLocation: p.feed.Location(),
		})
	}
	return issues
}

// UnmatchedVersions returns the unmatched observations keyed by version.
func (p *Product) UnmatchedVersions() map[string]time.Time {
	out := make(map[string]time.Time, p.unmatched.Len())
	for _, obs := range p.unmatched.Observations() {
		out[obs.Version] = obs.Date
	}
	return out
}

// Unmatched returns the unmatched observations in feed order.
func (p *Product) Unmatched() []Unmatched {
	obs := p.unmatched.Observations()
	out := make([]Unmatched, 0, len(obs))
	for _, o := range obs {
		out = append(out, Unmatched{Product: p.name, Observation: o})
	}
	return out
}
