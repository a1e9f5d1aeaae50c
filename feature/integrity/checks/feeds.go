package checks

import (
	"context"
	"sort"

	"release-sync/feature/feeds"
)

// FeedsReport compares product records with available feeds.
type FeedsReport struct {
	Location    string   `json:"location"`
	WithFeed    int      `json:"with_feed"`
	WithoutFeed []string `json:"without_feed"`
	Orphans     []string `json:"orphans"`
}

// CheckFeeds reports products that have no feed and feeds that have no product.
func CheckFeeds(ctx context.Context, source feeds.Source, products []string) (*FeedsReport, error) {
	available, err := source.Products(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p] = true
	}
	present := make(map[string]bool, len(available))
	for _, f := range available {
		present[f] = true
	}

	report := &FeedsReport{Location: source.Location(), WithoutFeed: []string{}, Orphans: []string{}}
	for _, p := range products {
		if present[p] {
			report.WithFeed++
		} else {
			report.WithoutFeed = append(report.WithoutFeed, p)
		}
	}
	for _, f := range available {
		if !known[f] {
			report.Orphans = append(report.Orphans, f)
		}
	}
	sort.Strings(report.WithoutFeed)
	sort.Strings(report.Orphans)
	return report, nil
}
