package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

// defaultSearchLimit applies when a search tool is called without one.
const defaultSearchLimit = 10

// SearchChartInput is the input schema for the search_chart tool.
type SearchChartInput struct {
	Query string `json:"query" jsonschema:"short concept-only search terms, e.g. 'life expectancy'"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, max 60)"`
}

// SearchOutput is the output schema shared by the search tools.
type SearchOutput struct {
	Results []domain.NormalizedResult `json:"results"`
	Count   int                       `json:"count"`
}

// FetchChartInput is the input schema for the chart fetch tools.
type FetchChartInput struct {
	ID        string   `json:"id" jsonschema:"chart slug as returned by search_chart"`
	Time      string   `json:"time,omitempty" jsonschema:"time range, e.g. '2000..2020' or 'latest'"`
	Countries []string `json:"countries,omitempty" jsonschema:"country or region names to filter by"`
}

// SearchIndicatorInput is the input schema for search_indicator.
type SearchIndicatorInput struct {
	Query string `json:"query" jsonschema:"indicator name or topic"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, max 60)"`
}

// IndicatorHitOutput is one search_indicator result.
type IndicatorHitOutput struct {
	Title       string  `json:"title"`
	IndicatorID int     `json:"indicator_id"`
	Snippet     string  `json:"snippet,omitempty"`
	Score       float64 `json:"score"`
}

// SearchIndicatorOutput is the output schema for search_indicator.
type SearchIndicatorOutput struct {
	Results []IndicatorHitOutput `json:"results"`
	Count   int                  `json:"count"`
}

// FetchIndicatorInput is the input schema for fetch_indicator_data.
type FetchIndicatorInput struct {
	IndicatorID int    `json:"indicator_id" jsonschema:"numeric indicator ID from search_indicator"`
	Entity      string `json:"entity,omitempty" jsonschema:"optional country or region name to filter the series"`
}

// RunSQLInput is the input schema for run_sql.
type RunSQLInput struct {
	Query   string `json:"query" jsonschema:"a SELECT statement; anything else is rejected"`
	MaxRows int    `json:"max_rows,omitempty" jsonschema:"row cap between 1 and 5000 (default 100)"`
}

// SearchPostsInput is the input schema for search_posts.
type SearchPostsInput struct {
	Query string `json:"query" jsonschema:"topic to find articles about; include country names when relevant"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, max 60)"`
}

// FetchPostInput is the input schema for fetch_post.
type FetchPostInput struct {
	Slug string `json:"slug" jsonschema:"post slug as returned by search_posts"`
}

// registerRichTools registers the full tool set with the MCP server.
func (s *Server) registerRichTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_chart",
		Description: "Search the catalog's interactive charts by topic",
	}, s.handleSearchChart)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_chart_data",
		Description: "Fetch a chart's underlying data as CSV, optionally filtered by time and countries",
	}, s.handleFetchChartData)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_chart_image",
		Description: "Fetch a chart's PNG rendering",
	}, s.handleFetchChartImage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_sql",
		Description: "Run a read-only SELECT against the public catalog database",
	}, s.handleRunSQL)

	if s.ports.Indicators != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_indicator",
			Description: "Search individual data series (indicators) by name or topic",
		}, s.handleSearchIndicator)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "fetch_indicator_data",
			Description: "Fetch an indicator's metadata and value series",
		}, s.handleFetchIndicator)
	}

	if s.ports.Posts != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_posts",
			Description: "Search written articles and essays",
		}, s.handleSearchPosts)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "fetch_post",
			Description: "Fetch the full body of an article",
		}, s.handleFetchPost)
	}
}

func (s *Server) handleSearchChart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchChartInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] search_chart %q", rid, input.Query)

	results, err := s.ports.Charts.SearchCharts(ctx, input.Query, limitOrDefault(input.Limit))
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleFetchChartData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchChartInput,
) (*mcp.CallToolResult, domain.FetchResult, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] fetch_chart_data %s time=%q countries=%v", rid, input.ID, input.Time, input.Countries)

	res, err := s.ports.Charts.FetchChartData(ctx, input.ID, input.Time, input.Countries)
	if err != nil {
		return nil, domain.FetchResult{}, err
	}

	return nil, *res, nil
}

func (s *Server) handleFetchChartImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchChartInput,
) (*mcp.CallToolResult, domain.FetchResult, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] fetch_chart_image %s", rid, input.ID)

	data, res, err := s.ports.Charts.FetchChartImage(ctx, input.ID, input.Time, input.Countries)
	if err != nil {
		return nil, domain.FetchResult{}, err
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.ImageContent{Data: data, MIMEType: "image/png"},
		},
	}
	return result, *res, nil
}

func (s *Server) handleSearchIndicator(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchIndicatorInput,
) (*mcp.CallToolResult, SearchIndicatorOutput, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] search_indicator %q", rid, input.Query)

	hits, err := s.ports.Indicators.SearchIndicators(ctx, input.Query, limitOrDefault(input.Limit))
	if err != nil {
		return nil, SearchIndicatorOutput{}, err
	}

	out := SearchIndicatorOutput{
		Results: make([]IndicatorHitOutput, len(hits)),
		Count:   len(hits),
	}
	for i, h := range hits {
		out.Results[i] = IndicatorHitOutput{
			Title:       h.Title,
			IndicatorID: h.IndicatorID,
			Snippet:     h.Snippet,
			Score:       h.Score,
		}
	}
	return nil, out, nil
}

func (s *Server) handleFetchIndicator(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchIndicatorInput,
) (*mcp.CallToolResult, domain.IndicatorData, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] fetch_indicator_data %d entity=%q", rid, input.IndicatorID, input.Entity)

	res, err := s.ports.Indicators.FetchIndicatorData(ctx, input.IndicatorID, input.Entity)
	if err != nil {
		return nil, domain.IndicatorData{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleRunSQL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunSQLInput,
) (*mcp.CallToolResult, domain.SQLResult, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] run_sql max_rows=%d", rid, input.MaxRows)

	res, err := s.ports.SQL.RunSQL(ctx, input.Query, input.MaxRows)
	if err != nil {
		return nil, domain.SQLResult{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleSearchPosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPostsInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] search_posts %q", rid, input.Query)

	results, err := s.ports.Posts.SearchPosts(ctx, input.Query, limitOrDefault(input.Limit))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleFetchPost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchPostInput,
) (*mcp.CallToolResult, domain.FetchResult, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] fetch_post %s", rid, input.Slug)

	res, err := s.ports.Posts.FetchPost(ctx, input.Slug)
	if err != nil {
		return nil, domain.FetchResult{}, err
	}
	return nil, *res, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}
