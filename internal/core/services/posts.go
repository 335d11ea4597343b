package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
)

// Ensure PostService implements the interface.
var _ driving.PostService = (*PostService)(nil)

// PostService provides search and fetch over published posts.
type PostService struct {
	index   driven.SearchIndex
	fetcher driven.PostFetcher
	siteURL string
}

// NewPostService creates a post service.
func NewPostService(index driven.SearchIndex, fetcher driven.PostFetcher, siteURL string) *PostService {
	return &PostService{
		index:   index,
		fetcher: fetcher,
		siteURL: strings.TrimSuffix(siteURL, "/"),
	}
}

// SearchPosts returns normalized post results. IDs are post slugs.
func (s *PostService) SearchPosts(ctx context.Context, query string, limit int) ([]domain.NormalizedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.NormalizedResult{}, nil
	}

	hits, err := s.index.SearchPages(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}

	out := make([]domain.NormalizedResult, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.Slug]; dup || h.Slug == "" {
			continue
		}
		seen[h.Slug] = struct{}{}

		text := truncateSnippet(domain.StripHighlight(h.Snippet))
		if text == "" {
			text = h.Title
		}
		out = append(out, domain.NormalizedResult{
			ID:    h.Slug,
			Title: h.Title,
			Text:  text,
			URL:   s.siteURL + "/" + h.Slug,
		})
	}
	return out, nil
}

// FetchPost retrieves the body of a published post.
func (s *PostService) FetchPost(ctx context.Context, slug string) (*domain.FetchResult, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	body, err := s.fetcher.FetchPost(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}

	return &domain.FetchResult{
		ID:    slug,
		Title: domain.TitleFromSlug(slug),
		Text:  body,
		URL:   s.siteURL + "/" + slug,
		Metadata: domain.FetchMetadata{
			MIME:      "text/html",
			Encoding:  "utf-8",
			SizeBytes: len(body),
		},
	}, nil
}
