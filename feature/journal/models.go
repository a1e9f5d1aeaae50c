package journal

import "time"

// CycleChange is a journal row for one updated release cycle.
type CycleChange struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RunID          string     `gorm:"size:36;index" json:"run_id"`
	Product        string     `gorm:"size:191;index" json:"product"`
	Cycle          string     `gorm:"size:191" json:"cycle"`
	OldLatest      string     `gorm:"size:191" json:"old_latest"`
	NewLatest      string     `gorm:"size:191" json:"new_latest"`
	OldLatestDate  *time.Time `json:"old_latest_date"`
	NewLatestDate  *time.Time `json:"new_latest_date"`
	OldReleaseDate *time.Time `json:"old_release_date"`
	NewReleaseDate *time.Time `json:"new_release_date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UnmatchedObservation is a journal row for a version no cycle accepted.
type UnmatchedObservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	Product   string    `gorm:"size:191;index" json:"product"`
	Version   string    `gorm:"size:191" json:"version"`
	Date      time.Time `json:"date"`
	Recent    bool      `json:"recent"`
	CreatedAt time.Time `json:"created_at"`
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
