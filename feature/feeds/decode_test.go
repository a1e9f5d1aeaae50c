package feeds

import (
	"errors"
	"testing"
	"time"

	"release-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(reconcile.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDecode_FlatKeepsOrder(t *testing.T) {
	feed, err := Decode("demo", "demo.json", []byte(`{"1.10.0": "2024-03-01", "1.9.2": "2024-02-01", "2.0.0-rc1": "2024-04-01"}`))
	require.NoError(t, err)

	assert.Equal(t, "demo.json", feed.Location())
	assert.Equal(t, []reconcile.Observation{
		{Version: "1.10.0", Date: day("2024-03-01")},
		{Version: "1.9.2", Date: day("2024-02-01")},
		{Version: "2.0.0-rc1", Date: day("2024-04-01")},
	}, feed.Observations())
}

func TestDecode_Nested(t *testing.T) {
	feed, err := Decode("demo", "demo.json", []byte(`{"versions": {"1.0": {"date": "2023-05-06", "link": "x"}, "1.1": {"date": "2023-06-07T10:00:00Z"}}}`))
	require.NoError(t, err)

	assert.Equal(t, 2, feed.Len())
	d, ok := feed.Get("1.1")
	require.True(t, ok)
	assert.Equal(t, day("2023-06-07"), d)
}

func TestDecode_DuplicateKeyLastWins(t *testing.T) {
	feed, err := Decode("demo", "demo.json", []byte(`{"1.0": "2023-01-01", "1.1": "2023-02-01", "1.0": "2023-03-01"}`))
	require.NoError(t, err)

	obs := feed.Observations()
	require.Len(t, obs, 2)
	assert.Equal(t, "1.0", obs[0].Version)
	assert.Equal(t, day("2023-03-01"), obs[0].Date)
}

func TestDecode_Empty(t *testing.T) {
	feed, err := Decode("demo", "demo.json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Len())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Syntax", `{"1.0": `},
		{"NotMapping", `["1.0"]`},
		{"BadDate", `{"1.0": "yesterday"}`},
		{"MissingDate", `{"versions": {"1.0": {"link": "x"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("demo", "demo.json", []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, reconcile.ErrInvalidInput))
		})
	}
}
