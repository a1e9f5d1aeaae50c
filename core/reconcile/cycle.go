package reconcile

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"release-sync/core/version"

	"go.uber.org/zap"
)

// ReleaseCycle owns one release cycle record for the duration of a run.
type ReleaseCycle struct {
	product string
	index   int
	loaded  CycleRecord
	current CycleRecord

	matched bool
	updated bool

	logger *zap.Logger
}

// NewReleaseCycle creates a cycle from its persisted record.
// index is the position of the record in the product file.
func NewReleaseCycle(product string, index int, record CycleRecord, logger *zap.Logger) *ReleaseCycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReleaseCycle{
		product: product,
		index:   index,
		loaded:  record,
		current: record,
		logger:  logger.With(zap.String("product", product), zap.String("cycle", record.Name)),
	}
}

// Name returns the cycle name.
func (c *ReleaseCycle) Name() string {
	return c.current.Name
}

// String returns "product#cycle".
func (c *ReleaseCycle) String() string {
	return c.product + "#" + c.current.Name
}

// Latest returns the recorded latest version, if any.
func (c *ReleaseCycle) Latest() (string, bool) {
	return c.current.Latest, c.current.Latest != ""
}

// Record returns the current state of the cycle.
func (c *ReleaseCycle) Record() CycleRecord {
	return c.current
}

// Matched reports whether any observation was dispatched to this cycle.
func (c *ReleaseCycle) Matched() bool {
	return c.matched
}

// Updated reports whether any field changed during the run.
func (c *ReleaseCycle) Updated() bool {
	return c.updated
}

// Change returns the difference between the loaded and the current record.
func (c *ReleaseCycle) Change() CycleChange {
	return CycleChange{Index: c.index, Before: c.loaded, After: c.current}
}

// Includes reports whether version belongs to this cycle.
//
// The cycle name must be a prefix of version. An exact match is included.
// Otherwise the next character must be '.', '-', '+' or a letter; a digit
// means the version belongs to a longer cycle (4.10.2 is not in 4.1).
func (c *ReleaseCycle) Includes(v string) bool {
	name := c.current.Name
	if !strings.HasPrefix(v, name) {
		return false
	}
	if len(v) == len(name) {
		return true
	}

	next, _ := utf8.DecodeRuneInString(v[len(name):])
	switch next {
	case '.', '-', '+':
		return true
	}
	return unicode.IsLetter(next)
}

// UpdateWith applies an observation that belongs to this cycle.
// The cycle is marked matched even if nothing changes.
func (c *ReleaseCycle) UpdateWith(v string, date time.Time) {
	c.logger.Debug("Trying observation", zap.String("version", v), zap.String("date", formatDate(date)))
	c.matched = true
	c.tightenReleaseDate(v, date)
	c.updateLatest(v, date)
}

// tightenReleaseDate only ever moves an existing release date earlier.
// A missing release date stays missing.
func (c *ReleaseCycle) tightenReleaseDate(v string, date time.Time) {
	current := c.current.ReleaseDate
	if current.IsZero() || !date.Before(current) {
		return
	}

	c.logger.Info("Release date updated",
		zap.String("old", formatDate(current)),
		zap.String("new", formatDate(date)),
		zap.String("version", v),
	)
	c.current.ReleaseDate = date
	c.updated = true
}

func (c *ReleaseCycle) updateLatest(v string, date time.Time) {
	oldLatest := c.current.Latest
	oldDate := c.current.LatestReleaseDate

	switch {
	case oldLatest == "":
		c.logger.Info("Latest updated (no prior latest version)",
			zap.String("new", v),
			zap.String("date", formatDate(date)),
		)

	case oldLatest == v && !oldDate.Equal(date):
		c.logger.Info("Latest date updated",
			zap.String("version", v),
			zap.String("old", formatDate(oldDate)),
			zap.String("new", formatDate(date)),
		)

	default:
		switch version.Compare(v, oldLatest) {
		case version.Greater:
			c.logger.Info("Latest updated",
				zap.String("old", oldLatest),
				zap.String("old_date", formatDate(oldDate)),
				zap.String("new", v),
				zap.String("date", formatDate(date)),
			)
		case version.Incomparable:
			c.logger.Debug("Could not compare versions, skipping",
				zap.String("latest", oldLatest),
				zap.String("version", v),
			)
			return
		default:
			return
		}
	}

	c.current.Latest = v
	c.current.LatestReleaseDate = date
	c.updated = true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
