package services

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// mockSearchIndex is a mock implementation of driven.SearchIndex.
type mockSearchIndex struct {
	chartHits     []domain.SearchHit
	pageHits      []domain.SearchHit
	indicatorHits []domain.IndicatorHit
	err           error

	lastQuery string
	lastLimit int
}

func (m *mockSearchIndex) SearchCharts(_ context.Context, query string, limit int) ([]domain.SearchHit, error) {
	m.lastQuery, m.lastLimit = query, limit
	return m.chartHits, m.err
}

func (m *mockSearchIndex) SearchPages(_ context.Context, query string, limit int) ([]domain.SearchHit, error) {
	m.lastQuery, m.lastLimit = query, limit
	return m.pageHits, m.err
}

func (m *mockSearchIndex) SearchIndicators(_ context.Context, query string, limit int) ([]domain.IndicatorHit, error) {
	m.lastQuery, m.lastLimit = query, limit
	return m.indicatorHits, m.err
}

// mockFetcher is a mock implementation of driven.ChartFetcher and
// driven.PostFetcher.
type mockFetcher struct {
	csv     string
	png     []byte
	post    string
	err     error
	lastURL string
}

func (m *mockFetcher) FetchCSV(_ context.Context, url string) (string, error) {
	m.lastURL = url
	return m.csv, m.err
}

func (m *mockFetcher) FetchPNG(_ context.Context, url string) ([]byte, error) {
	m.lastURL = url
	return m.png, m.err
}

func (m *mockFetcher) FetchPost(_ context.Context, slug string) (string, error) {
	m.lastURL = slug
	return m.post, m.err
}

// mockSQLGateway is a mock implementation of driven.SQLGateway.
type mockSQLGateway struct {
	result   *domain.SQLResult
	err      error
	executed []string
}

func (m *mockSQLGateway) Execute(_ context.Context, query string) (*domain.SQLResult, error) {
	m.executed = append(m.executed, query)
	return m.result, m.err
}

// mockIndicatorAPI is a mock implementation of driven.IndicatorAPI.
type mockIndicatorAPI struct {
	metadata map[string]any
	data     map[string]any
	err      error
}

func (m *mockIndicatorAPI) IndicatorMetadata(_ context.Context, _ int) (map[string]any, error) {
	return m.metadata, m.err
}

func (m *mockIndicatorAPI) IndicatorData(_ context.Context, _ int) (map[string]any, error) {
	return m.data, m.err
}
