package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"release-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	products, feeds := t.TempDir(), t.TempDir()
	record := "---\nreleases:\n-   releaseCycle: \"2.1\"\n    releaseDate: 2020-01-01\n    latest: \"2.1.0\"\n    latestReleaseDate: 2020-01-01\n---\n"
	recent := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02")
	feed := `{"2.1.4": "2021-05-01", "3.0.0": "` + recent + `"}`
	require.NoError(t, os.WriteFile(filepath.Join(products, "demo.md"), []byte(record), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(feeds, "demo.json"), []byte(feed), 0o644))
	return products, feeds
}

func TestUpdateCommand(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	products, feeds := writeFixtures(t)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"update", "demo", "-p", products, "-d", feeds})
	require.NoError(t, RootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "demo:3.0.0 ("))

	data, err := os.ReadFile(filepath.Join(products, "demo.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `latest: "2.1.4"`)
	assert.Contains(t, string(data), "latestReleaseDate: 2021-05-01")
}

func TestNewApp(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	t.Setenv("SERVER_API_KEY", "secret")
	products, feeds := writeFixtures(t)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Catalog.ProductDir = products
	cfg.Catalog.FeedDir = feeds

	rt, err := setup(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer rt.close()
	app := newApp(rt)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	resp, err = app.Test(httptest.NewRequest("GET", "/products", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/products/demo/plan", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
