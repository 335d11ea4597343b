package mcp

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// mockChartService is a mock implementation of driving.ChartService.
type mockChartService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	image   []byte
	err     error
}

func (m *mockChartService) SearchCharts(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockChartService) FetchChartData(
	_ context.Context,
	_, _ string,
	_ []string,
) (*domain.FetchResult, error) {
	return m.fetched, m.err
}

func (m *mockChartService) FetchChartImage(
	_ context.Context,
	_, _ string,
	_ []string,
) ([]byte, *domain.FetchResult, error) {
	return m.image, m.fetched, m.err
}

// mockIndicatorService is a mock implementation of driving.IndicatorService.
type mockIndicatorService struct {
	hits []domain.IndicatorHit
	data *domain.IndicatorData
	err  error
}

func (m *mockIndicatorService) SearchIndicators(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.IndicatorHit, error) {
	return m.hits, m.err
}

func (m *mockIndicatorService) FetchIndicatorData(
	_ context.Context,
	_ int,
	_ string,
) (*domain.IndicatorData, error) {
	return m.data, m.err
}

// mockPostService is a mock implementation of driving.PostService.
type mockPostService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	err     error
}

func (m *mockPostService) SearchPosts(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockPostService) FetchPost(
	_ context.Context,
	_ string,
) (*domain.FetchResult, error) {
	return m.fetched, m.err
}

// mockSQLService is a mock implementation of driving.SQLService.
type mockSQLService struct {
	result  *domain.SQLResult
	maxRows int
	err     error
}

func (m *mockSQLService) RunSQL(
	_ context.Context,
	_ string,
	maxRows int,
) (*domain.SQLResult, error) {
	m.maxRows = maxRows
	return m.result, m.err
}

// mockDeepResearchService is a mock implementation of
// driving.DeepResearchService.
type mockDeepResearchService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	err     error
}

func (m *mockDeepResearchService) Search(
	_ context.Context,
	_ string,
) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockDeepResearchService) Fetch(
	_ context.Context,
	_ string,
) *domain.FetchResult {
	return m.fetched
}
