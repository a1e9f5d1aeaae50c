// Package catalog reads and writes product records.
//
// A product record is a Markdown file named after the product, made of a YAML
// frontmatter block between two "---" lines followed by a prose body:
//
//	---
//	title: Demo
//	releases:
//	-   releaseCycle: "1.10"
//	    releaseDate: 2020-01-10
//	    latest: "1.10.2"
//	    latestReleaseDate: 2020-03-01
//	---
//
//	Prose body, kept byte for byte.
//
// # Round Trip
//
// The frontmatter is parsed into a goccy/go-yaml AST with comments, and cycle
// fields are read from their raw scalar text so "1.10" never becomes 1.1.
// Apply only touches releaseDate, latest and latestReleaseDate of changed
// cycles: existing keys are replaced in place, missing ones are appended to the
// cycle mapping. Every other key, comment and the cycle order are kept.
package catalog
