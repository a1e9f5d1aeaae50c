package reconcile

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UpdatesAndPreservesOrder(t *testing.T) {
	records := []CycleRecord{
		{Name: "2.0", ReleaseDate: date("2021-01-10"), Latest: "2.0.1", LatestReleaseDate: date("2021-02-01")},
		{Name: "1.0", ReleaseDate: date("2020-01-10"), Latest: "1.0.3", LatestReleaseDate: date("2020-06-01")},
	}
	feed := NewFeed("demo.json")
	feed.Set("1.0.0", date("2020-01-05"))
	feed.Set("1.0.3", date("2020-06-01"))
	feed.Set("2.0.1", date("2021-02-01"))
	feed.Set("2.0.2", date("2021-03-01"))
	feed.Set("3.0.0", date("2024-06-20"))

	result := Run("demo", records, feed, Options{Now: date("2024-06-30")}, nil)

	assert.True(t, result.Updated)
	assert.Equal(t, 5, result.Observations)
	require.Len(t, result.Cycles, 2)
	assert.Equal(t, "2.0", result.Cycles[0].Name)
	assert.Equal(t, "2.0.2", result.Cycles[0].Latest)
	assert.Equal(t, "1.0", result.Cycles[1].Name)
	assert.Equal(t, "1.0.3", result.Cycles[1].Latest)
	assert.Equal(t, date("2020-01-05"), result.Cycles[1].ReleaseDate)

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 0, result.Changes[0].Index)
	assert.Equal(t, 1, result.Changes[1].Index)

	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "3.0.0", result.Unmatched[0].Version)
	require.Len(t, result.RecentUnmatched, 1)
	assert.Empty(t, result.Inconsistencies)
}

func TestRun_NothingChanged(t *testing.T) {
	records := []CycleRecord{
		{Name: "1", Latest: "1.1", LatestReleaseDate: date("2020-01-01")},
	}
	feed := NewFeed("demo.json")
	feed.Set("1.0", date("2019-01-01"))
	feed.Set("1.1", date("2020-01-01"))

	result := Run("demo", records, feed, Options{Now: date("2024-01-01")}, nil)

	assert.False(t, result.Updated)
	assert.Empty(t, result.Changes)
	assert.Empty(t, result.Unmatched)
}

func TestRecentUnmatched(t *testing.T) {
	entries := []Unmatched{
		{Product: "demo", Observation: Observation{Version: "9.0", Date: date("2024-06-15")}},
		{Product: "demo", Observation: Observation{Version: "8.0", Date: date("2024-05-01")}},
		{Product: "demo", Observation: Observation{Version: "10.0", Date: date("2024-07-02")}},
	}
	now := time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC)

	recent := RecentUnmatched(entries, now, 0)

	require.Len(t, recent, 2)
	assert.Equal(t, "9.0", recent[0].Version)
	assert.Equal(t, "10.0", recent[1].Version)
}

func TestRecentUnmatched_Boundary(t *testing.T) {
	entries := []Unmatched{
		{Product: "demo", Observation: Observation{Version: "a", Date: date("2024-05-31")}},
		{Product: "demo", Observation: Observation{Version: "b", Date: date("2024-06-01")}},
	}

	recent := RecentUnmatched(entries, date("2024-06-30"), 30*24*time.Hour)

	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].Version)
}

func TestRun_RecencyFilterKeepsAllUnmatched(t *testing.T) {
	feed := NewFeed("demo.json")
	feed.Set("9.0", date("2024-06-15"))
	feed.Set("8.0", date("2024-05-01"))

	result := Run("demo", []CycleRecord{{Name: "1"}}, feed, Options{Now: date("2024-06-30")}, nil)

	assert.Len(t, result.Unmatched, 2)
	require.Len(t, result.RecentUnmatched, 1)
	assert.Equal(t, "demo:9.0 (2024-06-15)", result.RecentUnmatched[0].String())
}

func TestInputError(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewInputError("demo", "demo.md", errors.New("missing releases")))

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrFeedNotFound))
	assert.Contains(t, err.Error(), "demo.md")

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "demo", inputErr.Product)
}
