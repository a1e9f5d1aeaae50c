// Package utils provides common utility functions for the release-sync application.
// It includes helpers for date and string conversion shared by the catalog and
// feed loaders.
package utils
