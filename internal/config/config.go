// Package config loads catalog-mcp configuration.
//
// Precedence, lowest to highest: built-in public defaults, an optional
// TOML file (~/.catalog-mcp/config.toml or $CATALOG_MCP_CONFIG), then
// environment variables. Only base URLs, credentials and timeouts live
// here; nothing else affects tool behaviour.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Public defaults. All endpoints are read-only public services.
const (
	DefaultAppID        = "OWID1XK4PR"
	DefaultSearchAPIKey = "b0421d1ab817a7ec0c99c38cf84f3ecf" // search-only key, safe to embed
	DefaultChartsIndex     = "charts"
	DefaultPagesIndex      = "pages"
	DefaultIndicatorsIndex = "indicators"
	DefaultDatasetteURL = "https://datasette-public.owid.io/owid.json"
	DefaultSiteURL      = "https://ourworldindata.org"
	DefaultIndicatorAPI = "https://api.ourworldindata.org/v1"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultCacheTTL     = 24 * time.Hour
)

// Config holds all externally-visible configuration.
type Config struct {
	// AppID is the search-index application ID.
	AppID string `toml:"app_id"`

	// SearchAPIKey is the read-only search API key.
	SearchAPIKey string `toml:"search_api_key"`

	// SearchHost is the search-index host. Empty means derived from
	// AppID ("https://<app-id>-dsn.algolia.net").
	SearchHost string `toml:"search_host"`

	// ChartsIndex, PagesIndex and IndicatorsIndex are the index names
	// queried for charts, posts and indicators respectively.
	ChartsIndex     string `toml:"charts_index"`
	PagesIndex      string `toml:"pages_index"`
	IndicatorsIndex string `toml:"indicators_index"`

	// DatasetteURL is the read-only SQL endpoint.
	DatasetteURL string `toml:"datasette_url"`

	// SiteURL is the base of the charting site; grapher links and post
	// bodies are fetched from it.
	SiteURL string `toml:"site_url"`

	// IndicatorAPIURL is the base of the indicator data/metadata API.
	IndicatorAPIURL string `toml:"indicator_api_url"`

	// HTTPTimeout applies uniformly to every outbound HTTP call.
	HTTPTimeout time.Duration `toml:"-"`

	// CacheDir enables the on-disk download cache when non-empty.
	CacheDir string `toml:"cache_dir"`

	// CacheTTL bounds how long cached downloads are served.
	CacheTTL time.Duration `toml:"-"`
}

// fileConfig mirrors Config for TOML decoding of duration fields,
// which the file expresses as strings ("30s", "24h").
type fileConfig struct {
	Config
	HTTPTimeout string `toml:"http_timeout"`
	CacheTTL    string `toml:"cache_ttl"`
}

// Load builds a Config from defaults, the optional config file and the
// environment.
func Load() (*Config, error) {
	c := &Config{
		AppID:           DefaultAppID,
		SearchAPIKey:    DefaultSearchAPIKey,
		ChartsIndex:     DefaultChartsIndex,
		PagesIndex:      DefaultPagesIndex,
		IndicatorsIndex: DefaultIndicatorsIndex,
		DatasetteURL:    DefaultDatasetteURL,
		SiteURL:         DefaultSiteURL,
		IndicatorAPIURL: DefaultIndicatorAPI,
		HTTPTimeout:     DefaultHTTPTimeout,
		CacheTTL:        DefaultCacheTTL,
	}

	if err := c.applyFile(configFilePath()); err != nil {
		return nil, err
	}
	c.applyEnv()

	if c.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("http timeout must be positive")
	}
	if c.AppID == "" || c.SearchAPIKey == "" {
		return nil, fmt.Errorf("search app ID and API key must be set")
	}

	return c, nil
}

// ResolvedSearchHost returns the configured search host, deriving the
// conventional DSN host from the app ID when unset.
func (c *Config) ResolvedSearchHost() string {
	if c.SearchHost != "" {
		return c.SearchHost
	}
	return fmt.Sprintf("https://%s-dsn.algolia.net", c.AppID)
}

func configFilePath() string {
	if p := os.Getenv("CATALOG_MCP_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catalog-mcp", "config.toml")
}

func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	fc.Config = *c
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	*c = fc.Config
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("config file http_timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if fc.CacheTTL != "" {
		d, err := time.ParseDuration(fc.CacheTTL)
		if err != nil {
			return fmt.Errorf("config file cache_ttl: %w", err)
		}
		c.CacheTTL = d
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppID = getEnv("SEARCH_APP_ID", c.AppID)
	c.SearchAPIKey = getEnv("SEARCH_API_KEY", c.SearchAPIKey)
	c.SearchHost = getEnv("SEARCH_HOST", c.SearchHost)
	c.ChartsIndex = getEnv("SEARCH_CHARTS_INDEX", c.ChartsIndex)
	c.PagesIndex = getEnv("SEARCH_PAGES_INDEX", c.PagesIndex)
	c.IndicatorsIndex = getEnv("SEARCH_INDICATORS_INDEX", c.IndicatorsIndex)
	c.DatasetteURL = getEnv("DATASETTE_URL", c.DatasetteURL)
	c.SiteURL = getEnv("SITE_URL", c.SiteURL)
	c.IndicatorAPIURL = getEnv("INDICATOR_API_URL", c.IndicatorAPIURL)
	c.CacheDir = getEnv("CACHE_DIR", c.CacheDir)
	c.HTTPTimeout = getDuration("HTTP_TIMEOUT", c.HTTPTimeout)
	c.CacheTTL = getDuration("CACHE_TTL", c.CacheTTL)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare integers are treated as seconds.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
