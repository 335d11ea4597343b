package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

const testSite = "https://ourworldindata.org"

func newChartService(index *mockSearchIndex, fetcher *mockFetcher) *ChartService {
	return NewChartService(index, fetcher, NewRegions(), testSite)
}

func TestSearchChartsNormalizes(t *testing.T) {
	index := &mockSearchIndex{chartHits: []domain.SearchHit{
		{
			Slug:    "population-density",
			Title:   "Population density",
			Snippet: "People per km² of <mark>land</mark> area",
			Type:    domain.HitTypeChart,
		},
		{
			Slug: "untitled-chart",
			Type: domain.HitTypeChart,
		},
	}}

	svc := newChartService(index, &mockFetcher{})
	results, err := svc.SearchCharts(context.Background(), "population density", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "population-density", results[0].ID)
	assert.Equal(t, "People per km² of land area", results[0].Text)
	assert.Equal(t, testSite+"/grapher/population-density", results[0].URL)

	// Missing title derived from slug; missing snippet falls back to title.
	assert.Equal(t, "Untitled Chart", results[1].Title)
	assert.Equal(t, "Untitled Chart", results[1].Text)
}

func TestSearchChartsDeduplicatesSlugs(t *testing.T) {
	index := &mockSearchIndex{chartHits: []domain.SearchHit{
		{Slug: "population-density", Title: "A", Type: domain.HitTypeChart},
		{Slug: "population-density", Title: "B", Type: domain.HitTypeChart},
	}}

	svc := newChartService(index, &mockFetcher{})
	results, err := svc.SearchCharts(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Title)
}

func TestSearchChartsEmptyQuery(t *testing.T) {
	svc := newChartService(&mockSearchIndex{}, &mockFetcher{})
	results, err := svc.SearchCharts(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchChartsTruncatesLongSnippets(t *testing.T) {
	index := &mockSearchIndex{chartHits: []domain.SearchHit{
		{Slug: "x", Title: "X", Snippet: strings.Repeat("a", 1000), Type: domain.HitTypeChart},
	}}

	svc := newChartService(index, &mockFetcher{})
	results, err := svc.SearchCharts(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Len(t, results[0].Text, maxSnippetLen+3)
	assert.True(t, strings.HasSuffix(results[0].Text, "..."))
}

func TestSearchChartsTruncatesAtRuneBoundary(t *testing.T) {
	// Two-byte runes guarantee the byte cap lands mid-rune.
	index := &mockSearchIndex{chartHits: []domain.SearchHit{
		{Slug: "x", Title: "X", Snippet: strings.Repeat("é", 400), Type: domain.HitTypeChart},
	}}

	svc := newChartService(index, &mockFetcher{})
	results, err := svc.SearchCharts(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(results[0].Text))
	assert.True(t, strings.HasSuffix(results[0].Text, "..."))
}

func TestFetchChartDataResolvesCountriesAndNormalizes(t *testing.T) {
	fetcher := &mockFetcher{csv: "Entity,Code,Year,Value\nFrance,FRA,2020,122.3\n"}
	svc := newChartService(&mockSearchIndex{}, fetcher)

	res, err := svc.FetchChartData(context.Background(), "population-density", "2000..2020", []string{"france", "Atlantis", "Germany"})
	require.NoError(t, err)

	// Unresolvable names are dropped, not fatal.
	assert.Equal(t,
		testSite+"/grapher/population-density.csv?tab=line&csvType=filtered&time=2000..2020&country=FRA~DEU",
		fetcher.lastURL)

	// Entity column dropped: every row had a code.
	assert.NotContains(t, res.Text, "Entity")
	assert.Equal(t, "text/csv", res.Metadata.MIME)
	assert.Equal(t, 1, res.Metadata.Rows)
	assert.Equal(t, 3, res.Metadata.Columns)
	assert.Equal(t, "2000..2020", res.Metadata.TimeFilter)
	assert.Equal(t, "population-density", res.ID)
	assert.Equal(t, testSite+"/grapher/population-density", res.URL)
}

func TestFetchChartDataMalformedCSVPassesThrough(t *testing.T) {
	raw := "a,b\n\"unterminated\n"
	fetcher := &mockFetcher{csv: raw}
	svc := newChartService(&mockSearchIndex{}, fetcher)

	res, err := svc.FetchChartData(context.Background(), "x", "", nil)
	require.NoError(t, err)
	assert.Equal(t, raw, res.Text)
	assert.NotEmpty(t, res.Metadata.Error)
}

func TestFetchChartDataRequiresSlug(t *testing.T) {
	svc := newChartService(&mockSearchIndex{}, &mockFetcher{})
	_, err := svc.FetchChartData(context.Background(), "", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetchChartImageSingleCountryConvention(t *testing.T) {
	fetcher := &mockFetcher{png: []byte{0x89, 'P', 'N', 'G'}}
	svc := newChartService(&mockSearchIndex{}, fetcher)

	data, res, err := svc.FetchChartImage(context.Background(), "population-density", "", []string{"France", "Germany"})
	require.NoError(t, err)

	// PNG uses the leading-tilde single-code convention.
	assert.Equal(t, testSite+"/grapher/population-density.png?tab=chart&country=~FRA", fetcher.lastURL)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.Equal(t, "image/png", res.Metadata.MIME)
	assert.Equal(t, "base64", res.Metadata.Encoding)
	assert.Equal(t, 4, res.Metadata.SizeBytes)
}
