// Package alerts delivers unmatched observations to the people who maintain
// the product records.
//
// Every entry is rendered as "{product}:{version} ({date})". Sinks:
//
//   - Writer: one line per entry on an io.Writer (stdout for the CLI).
//   - GitHubOutput: a multiline step output appended to $GITHUB_OUTPUT.
//   - Telegram: a single message to a chat.
//   - Multi: fan-out to several sinks.
package alerts
