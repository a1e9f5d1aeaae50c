// Package server holds the HTTP server configuration.
//
// The serve command owns the server lifecycle; this package only defines the
// settings it needs.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the routes,
// and how long graceful shutdown may take.
package server
