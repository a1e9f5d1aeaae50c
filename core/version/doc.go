// Package version provides best-effort ordering of version strings.
//
// Versions are first parsed with a permissive semantic-version grammar
// (Masterminds/semver: optional "v" prefix, one to three numeric components,
// optional pre-release and build suffixes). Strings with more numeric
// components, such as "1.2.3.4", fall back to a component-wise numeric
// comparison. Anything else is reported as Incomparable.
//
// # Usage
//
//	switch version.Compare(observed, recorded) {
//	case version.Greater:
//	    // adopt observed
//	case version.Incomparable:
//	    // no information, keep recorded
//	}
package version
