package integrity

import (
	"context"

	"release-sync/feature/catalog"
	"release-sync/feature/feeds"
	"release-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	productDir string
	source     feeds.Source
	db         *gorm.DB
	logger     *zap.Logger
}

// NewService creates a new integrity service. db may be nil when the journal is disabled.
func NewService(productDir string, source feeds.Source, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		productDir: productDir,
		source:     source,
		db:         db,
		logger:     logger,
	}
}

// Report combines every check. A failed check carries its error instead of a result.
type Report struct {
	Records      *checks.RecordsReport `json:"records,omitempty"`
	RecordsError string                `json:"records_error,omitempty"`
	Feeds        *checks.FeedsReport   `json:"feeds,omitempty"`
	FeedsError   string                `json:"feeds_error,omitempty"`
	Journal      *checks.JournalReport `json:"journal"`
}

// Healthy reports whether every check passed without findings.
func (r *Report) Healthy() bool {
	return r.RecordsError == "" && r.FeedsError == "" &&
		r.Records != nil && len(r.Records.Invalid) == 0 &&
		r.Feeds != nil && len(r.Feeds.Orphans) == 0 &&
		r.Journal.Status != "error"
}

// CheckRecords parses every product record.
func (s *Service) CheckRecords() (*checks.RecordsReport, error) {
	return checks.CheckRecords(s.productDir)
}

// CheckFeeds compares product records with available feeds.
func (s *Service) CheckFeeds(ctx context.Context) (*checks.FeedsReport, error) {
	products, err := catalog.List(s.productDir)
	if err != nil {
		return nil, err
	}
	return checks.CheckFeeds(ctx, s.source, products)
}

// CheckJournal verifies the journal schema.
func (s *Service) CheckJournal() *checks.JournalReport {
	return checks.CheckJournal(s.db)
}

// CheckAll runs every check.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{}

	if records, err := s.CheckRecords(); err != nil {
		s.logger.Error("Record check failed", zap.Error(err))
		report.RecordsError = err.Error()
	} else {
		report.Records = records
		if len(records.Invalid) > 0 {
			s.logger.Warn("Invalid product records", zap.Int("count", len(records.Invalid)))
		}
	}

	if fr, err := s.CheckFeeds(ctx); err != nil {
		s.logger.Error("Feed check failed", zap.Error(err))
		report.FeedsError = err.Error()
	} else {
		report.Feeds = fr
		if len(fr.Orphans) > 0 {
			s.logger.Warn("Feeds without product record", zap.Strings("feeds", fr.Orphans))
		}
	}

	report.Journal = s.CheckJournal()
	return report
}
