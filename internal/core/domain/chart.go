package domain

import (
	"net/url"
	"strings"
)

// URLKind selects which form of chart link to build.
type URLKind int

// Link kinds for a chart slug.
const (
	// URLInteractive is the plain grapher page. This is the form end
	// users should be shown.
	URLInteractive URLKind = iota

	// URLCSV is the filtered CSV download endpoint.
	URLCSV

	// URLPNG is the static image download endpoint.
	URLPNG
)

// ChartQueryParams narrows a chart download to a time range and a set
// of entities. Constructed per request, never persisted.
type ChartQueryParams struct {
	// Time is a grapher time expression, e.g. "2000..2020" or "latest".
	// Empty means the chart default.
	Time string

	// CountryCodes are resolved entity codes, e.g. ["FRA", "DEU"].
	// Empty means no country filter: the parameter is omitted entirely,
	// never passed as an empty value.
	CountryCodes []string
}

// BuildChartURL constructs a deterministic deep link to a chart.
//
// CSV downloads join multiple codes with a tilde (country=FRA~DEU).
// PNG downloads use the grapher single-selection convention: a leading
// tilde and only the first code (country=~FRA). The two conventions
// differ upstream and are preserved as observed.
func BuildChartURL(base, slug string, kind URLKind, p ChartQueryParams) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	b.WriteString("/grapher/")
	b.WriteString(url.PathEscape(slug))

	switch kind {
	case URLCSV:
		b.WriteString(".csv?tab=line&csvType=filtered")
		if p.Time != "" {
			b.WriteString("&time=")
			b.WriteString(url.QueryEscape(p.Time))
		}
		if len(p.CountryCodes) > 0 {
			b.WriteString("&country=")
			b.WriteString(url.QueryEscape(strings.Join(p.CountryCodes, "~")))
		}
	case URLPNG:
		b.WriteString(".png?tab=chart")
		if p.Time != "" {
			b.WriteString("&time=")
			b.WriteString(url.QueryEscape(p.Time))
		}
		if len(p.CountryCodes) > 0 {
			b.WriteString("&country=~")
			b.WriteString(url.QueryEscape(p.CountryCodes[0]))
		}
	default:
		// Interactive: base path only.
	}

	return b.String()
}

// TitleFromSlug derives a display title from a chart slug when the
// index record carries none: hyphens become spaces and each word is
// title-cased.
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// StripHighlight removes the literal <mark> and </mark> markers the
// search index uses for highlight spans. No HTML parsing: the markers
// are fixed substrings.
func StripHighlight(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}
