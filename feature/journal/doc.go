// Package journal records what every run changed.
//
// Each run gets an id; the journal stores one row per updated release cycle
// (old and new values) and one row per unmatched observation. The journal is
// optional and lives in MySQL or SQLite through GORM.
package journal
