// Package reconcile keeps the "latest" fields of a product's release cycles in
// sync with a feed of observed (version, release date) pairs.
//
// # Architecture
//
// The engine consists of three components:
//
// 1. ReleaseCycle: owns one cycle record. It decides whether a version belongs
//    to the cycle (Includes) and whether an observation replaces the recorded
//    latest version or tightens the recorded release date (UpdateWith).
//
// 2. Product: owns the ordered cycles of a product and its feed. It dispatches
//    every observation to all matching cycles, aggregates the updated flag and
//    keeps the observations no cycle accepted.
//
// 3. Run: drives a Product over a whole feed, checks that every matched cycle's
//    latest version is present in the feed and selects the recent unmatched
//    observations worth alerting on.
//
// # Matching
//
// A cycle named "4.1" includes "4.1", "4.1.2", "4.1-final", "4.1+3" and "4.1r"
// but not "4.10" or "4.10.2": the character following the cycle name must be
// '.', '-', '+' or a letter.
//
// # Usage Example
//
//	feed := reconcile.NewFeed("releases/nodejs.json")
//	feed.Set("20.11.1", date)
//
//	result := reconcile.Run("nodejs", records, feed, reconcile.Options{Now: time.Now()}, logger)
//	if result.Updated {
//	    // persist result.Changes
//	}
//
// The package performs no I/O. Loading records and feeds and persisting the
// outcome is the job of the catalog and feeds features.
package reconcile
