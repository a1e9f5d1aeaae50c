// Package integrity provides health checks for the product catalog.
//
// Unlike the 'updater' package which reconciles release cycles, this package
// validates the inputs those runs depend on.
//
// # Checks Provided
//
//   - Records: Every product record parses (frontmatter, releases list, cycle names).
//   - Feeds: Products without a feed (skipped by every run) and feeds without a product record.
//   - Journal: The journal tables have the expected columns, when the journal is enabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/records : Runs the record check.
//   - GET /integrity/feeds : Runs the feed coverage check.
//   - GET /integrity/journal : Runs the journal schema check.
package integrity
