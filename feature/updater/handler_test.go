package updater

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"release-sync/feature/journal"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Changes(ctx context.Context, product string, limit int) ([]journal.CycleChange, error) {
	args := m.Called(ctx, product, limit)
	changes, _ := args.Get(0).([]journal.CycleChange)
	return changes, args.Error(1)
}

func setupTestApp(t *testing.T, history History) (*fiber.App, *fixture) {
	f := newFixture(t)
	app := fiber.New()
	feature := NewFeature(f.updater(false), history)
	require.NoError(t, feature.Load(app))
	return app, f
}

func decode(t *testing.T, app *fiber.App, method, target string, want int) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	assert.Equal(t, want, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestFeature(t *testing.T) {
	f := newFixture(t)
	feature := NewFeature(f.updater(false), nil)
	assert.Equal(t, "products", feature.Name())
	assert.True(t, feature.IsEnabled())
}

func TestHandleList(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	body := decode(t, app, "GET", "/products", 200)
	assert.Equal(t, []any{"broken", "demo", "nofeed"}, body["products"])
}

func TestHandlePlan(t *testing.T) {
	app, f := setupTestApp(t, nil)

	body := decode(t, app, "GET", "/products/demo/plan", 200)
	assert.Equal(t, "updated", body["status"])
	assert.Equal(t, false, body["saved"])
	assert.Zero(t, f.sink.calls)

	body = decode(t, app, "GET", "/products/nofeed/plan", 200)
	assert.Equal(t, "skipped", body["status"])

	body = decode(t, app, "GET", "/products/broken/plan", 422)
	assert.Equal(t, "failed", body["status"])
	assert.NotEmpty(t, body["error"])
}

func TestHandleUpdate(t *testing.T) {
	app, f := setupTestApp(t, nil)

	body := decode(t, app, "POST", "/products/demo/update", 200)
	assert.Equal(t, "updated", body["status"])
	assert.Equal(t, true, body["saved"])
	assert.Equal(t, 1, f.sink.calls)
	assert.Len(t, f.journal.runs, 1)
}

func TestHandleUpdateAll(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	body := decode(t, app, "POST", "/products/update", 200)
	assert.NotEmpty(t, body["run_id"])
	products, ok := body["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 3)
	recent, ok := body["recent_unmatched"].([]any)
	require.True(t, ok)
	assert.Len(t, recent, 1)
}

func TestHandleHistory(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		decode(t, app, "GET", "/products/demo/history", 503)
	})

	t.Run("Changes", func(t *testing.T) {
		history := new(mockHistory)
		history.On("Changes", mock.Anything, "demo", 5).
			Return([]journal.CycleChange{{ID: 1, Product: "demo", Cycle: "1.10", NewLatest: "1.10.3"}}, nil)

		app, _ := setupTestApp(t, history)
		body := decode(t, app, "GET", "/products/demo/history?limit=5", 200)
		changes, ok := body["changes"].([]any)
		require.True(t, ok)
		require.Len(t, changes, 1)
		assert.Equal(t, "1.10.3", changes[0].(map[string]any)["new_latest"])
		history.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		history := new(mockHistory)
		history.On("Changes", mock.Anything, "demo", 50).Return(nil, errors.New("db down"))

		app, _ := setupTestApp(t, history)
		body := decode(t, app, "GET", "/products/demo/history", 500)
		assert.Equal(t, "db down", body["error"])
	})
}
