package checks

import (
	"release-sync/feature/journal"

	"gorm.io/gorm"
)

// JournalReport is the outcome of CheckJournal.
type JournalReport struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// CheckJournal verifies the journal schema. A nil db reports the journal as disabled.
func CheckJournal(db *gorm.DB) *JournalReport {
	if db == nil {
		return &JournalReport{Status: "disabled"}
	}
	if err := journal.Verify(db); err != nil {
		return &JournalReport{Enabled: true, Status: "error", Error: err.Error()}
	}
	return &JournalReport{Enabled: true, Status: "ok"}
}
