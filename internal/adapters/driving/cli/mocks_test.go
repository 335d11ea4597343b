package cli

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous ones.
func setupTestServices() func() {
	prevCharts := chartService
	prevIndicators := indicatorService
	prevPosts := postService
	prevSQL := sqlService
	prevDeep := deepResearchService

	chartService = &mockChartService{}
	indicatorService = &mockIndicatorService{}
	postService = &mockPostService{}
	sqlService = &mockSQLService{}
	deepResearchService = &mockDeepResearchService{}

	return func() {
		chartService = prevCharts
		indicatorService = prevIndicators
		postService = prevPosts
		sqlService = prevSQL
		deepResearchService = prevDeep
	}
}

type mockChartService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	err     error
}

func (m *mockChartService) SearchCharts(_ context.Context, _ string, _ int) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockChartService) FetchChartData(_ context.Context, _, _ string, _ []string) (*domain.FetchResult, error) {
	return m.fetched, m.err
}

func (m *mockChartService) FetchChartImage(_ context.Context, _, _ string, _ []string) ([]byte, *domain.FetchResult, error) {
	return nil, m.fetched, m.err
}

type mockIndicatorService struct {
	hits []domain.IndicatorHit
	data *domain.IndicatorData
	err  error
}

func (m *mockIndicatorService) SearchIndicators(_ context.Context, _ string, _ int) ([]domain.IndicatorHit, error) {
	return m.hits, m.err
}

func (m *mockIndicatorService) FetchIndicatorData(_ context.Context, _ int, _ string) (*domain.IndicatorData, error) {
	return m.data, m.err
}

type mockPostService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	err     error
}

func (m *mockPostService) SearchPosts(_ context.Context, _ string, _ int) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockPostService) FetchPost(_ context.Context, _ string) (*domain.FetchResult, error) {
	return m.fetched, m.err
}

type mockSQLService struct {
	result *domain.SQLResult
	err    error
}

func (m *mockSQLService) RunSQL(_ context.Context, _ string, _ int) (*domain.SQLResult, error) {
	return m.result, m.err
}

type mockDeepResearchService struct {
	results []domain.NormalizedResult
	fetched *domain.FetchResult
	err     error
}

func (m *mockDeepResearchService) Search(_ context.Context, _ string) ([]domain.NormalizedResult, error) {
	return m.results, m.err
}

func (m *mockDeepResearchService) Fetch(_ context.Context, _ string) *domain.FetchResult {
	return m.fetched
}
