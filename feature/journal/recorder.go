package journal

import (
	"context"
	"fmt"
	"strings"

	"release-sync/core/database"
	"release-sync/core/reconcile"

	"gorm.io/gorm"
)

// Recorder writes run results to the journal tables.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder prepares the journal tables. With migrate the tables are created
// or updated; otherwise their columns are verified.
func NewRecorder(db *gorm.DB, migrate bool) (*Recorder, error) {
	r := &Recorder{db: db}
	if migrate {
		if err := db.AutoMigrate(&CycleChange{}, &UnmatchedObservation{}); err != nil {
			return nil, fmt.Errorf("failed to migrate journal: %w", err)
		}
		return r, nil
	}
	if err := Verify(db); err != nil {
		return nil, err
	}
	return r, nil
}

// Verify checks that the journal tables have every expected column.
func Verify(db *gorm.DB) error {
	for _, model := range []any{&CycleChange{}, &UnmatchedObservation{}} {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse journal model: %w", err)
		}
		missing, err := database.MissingColumns(db, stmt.Schema.Table, stmt.Schema.DBNames)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("journal table %s is missing columns: %s", stmt.Schema.Table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Record stores the changes and unmatched observations of result under runID.
func (r *Recorder) Record(ctx context.Context, runID string, result *reconcile.Result) error {
	changes := make([]CycleChange, 0, len(result.Changes))
	for _, c := range result.Changes {
		changes = append(changes, CycleChange{
			RunID:          runID,
			Product:        result.Product,
			Cycle:          c.After.Name,
			OldLatest:      c.Before.Latest,
			NewLatest:      c.After.Latest,
			OldLatestDate:  optionalDate(c.Before.LatestReleaseDate),
			NewLatestDate:  optionalDate(c.After.LatestReleaseDate),
			OldReleaseDate: optionalDate(c.Before.ReleaseDate),
			NewReleaseDate: optionalDate(c.After.ReleaseDate),
		})
	}

	recent := make(map[string]bool, len(result.RecentUnmatched))
	for _, u := range result.RecentUnmatched {
		recent[u.Version] = true
	}
	unmatched := make([]UnmatchedObservation, 0, len(result.Unmatched))
	for _, u := range result.Unmatched {
		unmatched = append(unmatched, UnmatchedObservation{
			RunID:   runID,
			Product: result.Product,
			Version: u.Version,
			Date:    u.Date,
			Recent:  recent[u.Version],
		})
	}

	if len(changes) == 0 && len(unmatched) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Create(&changes).Error; err != nil {
				return fmt.Errorf("failed to record cycle changes: %w", err)
			}
		}
		if len(unmatched) > 0 {
			if err := tx.Create(&unmatched).Error; err != nil {
				return fmt.Errorf("failed to record unmatched observations: %w", err)
			}
		}
		return nil
	})
}

// Changes returns the most recent cycle changes of product, newest first.
func (r *Recorder) Changes(ctx context.Context, product string, limit int) ([]CycleChange, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []CycleChange
	err := r.db.WithContext(ctx).
		Where("product = ?", product).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	return rows, nil
}
