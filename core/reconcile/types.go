package reconcile

import (
	"fmt"
	"time"
)

// DateLayout is the layout of every date read or written by the engine.
const DateLayout = "2006-01-02"

// DefaultRecencyWindow is the age below which an unmatched observation is reported.
const DefaultRecencyWindow = 30 * 24 * time.Hour

// Observation is a single (version, release date) pair taken from a feed.
type Observation struct {
	// Version is the raw version string, used verbatim as the feed key.
	Version string `json:"version"`

	// Date is the release date, at midnight UTC.
	Date time.Time `json:"date"`
}

// Unmatched is an observation that no release cycle of Product accepted.
type Unmatched struct {
	// Product is the name of the product the observation belongs to.
	Product string `json:"product"`

	Observation
}

// String formats the entry as "{product}:{version} ({date})".
func (u Unmatched) String() string {
	return fmt.Sprintf("%s:%s (%s)", u.Product, u.Version, u.Date.Format(DateLayout))
}

// Feed is an ordered mapping of version to release date.
// Iteration order is insertion order; setting an existing version replaces
// its date but keeps its original position.
type Feed struct {
	location string
	entries  []Observation
	index    map[string]int
}

// NewFeed creates an empty feed read from location.
// The location only appears in diagnostics.
func NewFeed(location string) *Feed {
	return &Feed{
		location: location,
		index:    make(map[string]int),
	}
}

// Location returns where the feed was read from.
func (f *Feed) Location() string {
	return f.location
}

// Set records the date for version. Last write wins.
func (f *Feed) Set(version string, date time.Time) {
	if i, ok := f.index[version]; ok {
		f.entries[i].Date = date
		return
	}
	f.index[version] = len(f.entries)
	f.entries = append(f.entries, Observation{Version: version, Date: date})
}

// Get returns the date recorded for version.
func (f *Feed) Get(version string) (time.Time, bool) {
	i, ok := f.index[version]
	if !ok {
		return time.Time{}, false
	}
	return f.entries[i].Date, true
}

// Has reports whether version is a key of the feed.
func (f *Feed) Has(version string) bool {
	_, ok := f.index[version]
	return ok
}

// Len returns the number of distinct versions.
func (f *Feed) Len() int {
	return len(f.entries)
}

// Observations returns a copy of the entries in feed order.
func (f *Feed) Observations() []Observation {
	out := make([]Observation, len(f.entries))
	copy(out, f.entries)
	return out
}

// CycleRecord is the persisted state of a release cycle.
// Zero dates and an empty Latest mean the field is absent.
type CycleRecord struct {
	// Name is the releaseCycle value, e.g. "1.2" or "17".
	Name string `json:"releaseCycle"`

	// ReleaseDate is the earliest known release date of the cycle.
	ReleaseDate time.Time `json:"releaseDate"`

	// Latest is the latest known version of the cycle.
	Latest string `json:"latest,omitempty"`

	// LatestReleaseDate is the release date of Latest.
	LatestReleaseDate time.Time `json:"latestReleaseDate"`
}

// CycleChange describes how an updated cycle differs from its persisted record.
type CycleChange struct {
	// Index is the position of the cycle in the product record.
	Index int `json:"index"`

	// Before is the record as loaded.
	Before CycleRecord `json:"before"`

	// After is the record to persist.
	After CycleRecord `json:"after"`
}

// ReleaseDateChanged reports whether the release date was tightened.
func (c CycleChange) ReleaseDateChanged() bool {
	return !c.Before.ReleaseDate.Equal(c.After.ReleaseDate)
}

// LatestChanged reports whether the latest version or its date changed.
func (c CycleChange) LatestChanged() bool {
	return c.Before.Latest != c.After.Latest || !c.Before.LatestReleaseDate.Equal(c.After.LatestReleaseDate)
}

// Inconsistency reports a matched cycle whose latest version is not a feed key.
type Inconsistency struct {
	// Cycle is the cycle name.
	Cycle string `json:"cycle"`

	// Latest is the recorded latest version that is missing from the feed.
	Latest string `json:"latest"`

	// FeedLocation is where the feed was read from.
	FeedLocation string `json:"feed_location"`
}

// Options controls a reconciliation run.
type Options struct {
	// Now is the run time used by the recency filter. Zero means time.Now().
	Now time.Time

	// RecencyWindow is the maximum age of a reported unmatched observation.
	// Zero means DefaultRecencyWindow.
	RecencyWindow time.Duration
}

// Result is the outcome of reconciling one product.
type Result struct {
	// Product is the product name.
	Product string `json:"product"`

	// Updated is true when at least one cycle changed.
	Updated bool `json:"updated"`

	// Observations is the number of feed entries processed.
	Observations int `json:"observations"`

	// Cycles is the final state of every cycle, in record order.
	Cycles []CycleRecord `json:"cycles"`

	// Changes lists the updated cycles only.
	Changes []CycleChange `json:"changes"`

	// Unmatched lists every observation no cycle accepted, in feed order.
	Unmatched []Unmatched `json:"unmatched"`

	// RecentUnmatched is the subset of Unmatched inside the recency window.
	RecentUnmatched []Unmatched `json:"recent_unmatched"`

	// Inconsistencies lists matched cycles whose latest is not in the feed.
	Inconsistencies []Inconsistency `json:"inconsistencies"`
}
