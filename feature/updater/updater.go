package updater

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"release-sync/core/logger"
	"release-sync/core/reconcile"
	"release-sync/feature/alerts"
	"release-sync/feature/catalog"
	"release-sync/feature/feeds"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status is the outcome of processing one product.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

var errInvalidName = errors.New("invalid product name")

// ValidName reports whether name can be used as a record file stem.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// Journal persists run results.
type Journal interface {
	Record(ctx context.Context, runID string, result *reconcile.Result) error
}

// Options controls how products are updated.
type Options struct {
	// DryRun computes changes without writing records, journal rows or alerts.
	DryRun bool
	// RecencyWindow is the maximum age of a reported unmatched observation.
	RecencyWindow time.Duration
	// Now returns the run time. Nil means time.Now.
	Now func() time.Time
}

// Dependencies are the collaborators of an Updater. Journal and Alerts are optional.
type Dependencies struct {
	ProductDir string
	Feeds      feeds.Source
	Journal    Journal
	Alerts     alerts.Sink
	Logger     *zap.Logger
}

// ProductReport describes what happened to one product.
type ProductReport struct {
	Product string            `json:"product"`
	Status  Status            `json:"status"`
	Saved   bool              `json:"saved"`
	Result  *reconcile.Result `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`

	err error
}

// Err returns the failure cause, nil unless Status is StatusFailed.
func (r *ProductReport) Err() error {
	return r.err
}

// RunReport summarizes a run over several products.
type RunReport struct {
	RunID     string                `json:"run_id"`
	StartedAt time.Time             `json:"started_at"`
	DryRun    bool                  `json:"dry_run"`
	Products  []ProductReport       `json:"products"`
	Recent    []reconcile.Unmatched `json:"recent_unmatched"`
}

// Names returns the products that ended with status.
func (r *RunReport) Names(status Status) []string {
	var names []string
	for _, p := range r.Products {
		if p.Status == status {
			names = append(names, p.Product)
		}
	}
	return names
}

// Updater reconciles product records against their observation feeds.
type Updater struct {
	deps   Dependencies
	opts   Options
	logger *zap.Logger
}

// New creates an Updater.
func New(deps Dependencies, opts Options) *Updater {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = reconcile.DefaultRecencyWindow
	}
	return &Updater{deps: deps, opts: opts, logger: deps.Logger}
}

// Products lists every product that has a record.
func (u *Updater) Products() ([]string, error) {
	return catalog.List(u.deps.ProductDir)
}

// UpdateProduct reconciles a single product in its own run.
func (u *Updater) UpdateProduct(ctx context.Context, name string) (*ProductReport, error) {
	runID := uuid.NewString()
	report := u.process(ctx, runID, name, u.opts.DryRun)
	if report.Status == StatusFailed {
		return &report, report.err
	}
	if !u.opts.DryRun && report.Result != nil {
		u.alert(ctx, logger.WithRunID(u.logger, runID), report.Result.RecentUnmatched)
	}
	return &report, nil
}

// Plan reconciles a single product without persisting anything.
func (u *Updater) Plan(ctx context.Context, name string) (*ProductReport, error) {
	report := u.process(ctx, "", name, true)
	if report.Status == StatusFailed {
		return &report, report.err
	}
	return &report, nil
}

// UpdateAll reconciles names, or every product when names is empty.
// Products are processed one after another; a failing product does not stop
// the others. Recent unmatched observations of the whole run are delivered
// to the alert sink once.
func (u *Updater) UpdateAll(ctx context.Context, names []string) (*RunReport, error) {
	if len(names) == 0 {
		all, err := u.Products()
		if err != nil {
			return nil, err
		}
		names = all
	}

	run := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: u.opts.Now().UTC(),
		DryRun:    u.opts.DryRun,
		Products:  make([]ProductReport, 0, len(names)),
		Recent:    []reconcile.Unmatched{},
	}
	l := logger.WithRunID(u.logger, run.RunID)
	l.Info("Update started", zap.Int("products", len(names)), zap.Bool("dry_run", u.opts.DryRun))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		report := u.process(ctx, run.RunID, name, u.opts.DryRun)
		run.Products = append(run.Products, report)
		if report.Result != nil {
			run.Recent = append(run.Recent, report.Result.RecentUnmatched...)
		}
	}

	if !u.opts.DryRun {
		u.alert(ctx, l, run.Recent)
	}

	l.Info("Update finished",
		zap.Strings("updated", run.Names(StatusUpdated)),
		zap.Int("skipped", len(run.Names(StatusSkipped))),
		zap.Strings("failed", run.Names(StatusFailed)),
		zap.Int("recent_unmatched", len(run.Recent)))
	return run, nil
}

func (u *Updater) process(ctx context.Context, runID, name string, dryRun bool) ProductReport {
	l := logger.WithRunID(u.logger, runID).With(zap.String("product", name))
	report := ProductReport{Product: name}
	if !ValidName(name) {
		return u.fail(l, report, reconcile.NewInputError(name, "", errInvalidName))
	}

	feed, err := u.deps.Feeds.Load(ctx, name)
	if errors.Is(err, reconcile.ErrFeedNotFound) {
		l.Debug("No feed, skipping product", zap.String("feeds", u.deps.Feeds.Location()))
		report.Status = StatusSkipped
		return report
	}
	if err != nil {
		return u.fail(l, report, err)
	}

	record, err := catalog.Load(u.deps.ProductDir, name)
	if err != nil {
		return u.fail(l, report, err)
	}

	result := reconcile.Run(name, record.Cycles(), feed, reconcile.Options{
		Now:           u.opts.Now(),
		RecencyWindow: u.opts.RecencyWindow,
	}, l)
	report.Result = result
	report.Status = StatusUnchanged

	for _, entry := range result.RecentUnmatched {
		l.Warn(fmt.Sprintf("%s not included", entry))
	}

	if result.Updated {
		report.Status = StatusUpdated
		if dryRun {
			l.Info("Product would be updated", zap.Int("cycles", len(result.Changes)))
			return report
		}
		if err := record.Apply(result.Changes); err != nil {
			return u.fail(l, report, err)
		}
		if err := record.Save(); err != nil {
			return u.fail(l, report, err)
		}
		report.Saved = true
		l.Info("Product updated", zap.String("path", record.Path), zap.Int("cycles", len(result.Changes)))
	} else {
		l.Debug("Product unchanged", zap.Int("observations", result.Observations))
	}

	if !dryRun && u.deps.Journal != nil {
		if err := u.deps.Journal.Record(ctx, runID, result); err != nil {
			l.Warn("Failed to journal product run", zap.Error(err))
		}
	}
	return report
}

func (u *Updater) fail(l *zap.Logger, report ProductReport, err error) ProductReport {
	if errors.Is(err, reconcile.ErrInvalidInput) {
		l.Error("Invalid product input", zap.Error(err))
	} else {
		l.Error("Product update failed", zap.Error(err))
	}
	report.Status = StatusFailed
	report.Error = err.Error()
	report.err = err
	return report
}

func (u *Updater) alert(ctx context.Context, l *zap.Logger, entries []reconcile.Unmatched) {
	if u.deps.Alerts == nil {
		return
	}
	if err := u.deps.Alerts.Notify(ctx, entries); err != nil {
		l.Warn("Failed to deliver unmatched versions", zap.Error(err))
	}
}
