// Package scheduler runs named jobs on cron expressions.
//
// It wraps robfig/cron with zap logging, panic recovery and a per-job
// timeout context. Overlapping runs of the same job are skipped.
package scheduler
