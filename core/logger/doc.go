// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// Two correlation ids are attached to log entries:
//   - ray_id: set per HTTP request by the rayid middleware, see WithRayID.
//   - run_id: set per update run, see WithRunID. Every product processed in a
//     run logs with the same id, which is also the journal key.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// Logs are written to stderr so stdout only carries the run report.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Run started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
