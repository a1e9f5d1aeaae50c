// Package feeds reads per-product observation feeds.
//
// A feed is a JSON (or YAML) object mapping version strings to release dates,
// produced by an upstream collection step. Two layouts are accepted:
//
//	{"1.2.3": "2024-01-02", "1.2.4": "2024-02-01"}
//	{"versions": {"1.2.3": {"date": "2024-01-02"}}}
//
// Key order is preserved and duplicated keys keep the last date, so the
// engine sees observations exactly in document order.
//
// Feeds are read from a local directory or from an S3 compatible bucket
// addressed as s3://bucket/prefix.
package feeds
