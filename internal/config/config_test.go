package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_MCP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAppID, c.AppID)
	assert.Equal(t, DefaultChartsIndex, c.ChartsIndex)
	assert.Equal(t, DefaultDatasetteURL, c.DatasetteURL)
	assert.Equal(t, DefaultSiteURL, c.SiteURL)
	assert.Equal(t, DefaultHTTPTimeout, c.HTTPTimeout)
	assert.Empty(t, c.CacheDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_MCP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("SEARCH_APP_ID", "TESTAPP")
	t.Setenv("SITE_URL", "https://staging.example.org")
	t.Setenv("HTTP_TIMEOUT", "5s")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "TESTAPP", c.AppID)
	assert.Equal(t, "https://staging.example.org", c.SiteURL)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
site_url = "https://file.example.org"
datasette_url = "https://file.example.org/owid.json"
http_timeout = "10s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("CATALOG_MCP_CONFIG", path)
	t.Setenv("SITE_URL", "https://env.example.org")

	c, err := Load()
	require.NoError(t, err)

	// Env beats file, file beats default.
	assert.Equal(t, "https://env.example.org", c.SiteURL)
	assert.Equal(t, "https://file.example.org/owid.json", c.DatasetteURL)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
}

func TestLoadRejectsBadFileDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`http_timeout = "not-a-duration"`), 0600))
	t.Setenv("CATALOG_MCP_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http_timeout")
}

func TestResolvedSearchHost(t *testing.T) {
	c := &Config{AppID: "TESTAPP"}
	assert.Equal(t, "https://TESTAPP-dsn.algolia.net", c.ResolvedSearchHost())

	c.SearchHost = "https://search.example.org"
	assert.Equal(t, "https://search.example.org", c.ResolvedSearchHost())
}

func TestGetDurationBareSeconds(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "45")
	assert.Equal(t, 45*time.Second, getDuration("SOME_TIMEOUT", time.Second))
}
