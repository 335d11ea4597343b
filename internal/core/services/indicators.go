package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
)

// Ensure IndicatorService implements the interface.
var _ driving.IndicatorService = (*IndicatorService)(nil)

// IndicatorService provides indicator search and data fetch.
type IndicatorService struct {
	index   driven.SearchIndex
	api     driven.IndicatorAPI
	regions *Regions
}

// NewIndicatorService creates an indicator service.
func NewIndicatorService(index driven.SearchIndex, api driven.IndicatorAPI, regions *Regions) *IndicatorService {
	return &IndicatorService{index: index, api: api, regions: regions}
}

// SearchIndicators returns indicator hits for a free-text query.
func (s *IndicatorService) SearchIndicators(ctx context.Context, query string, limit int) ([]domain.IndicatorHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.IndicatorHit{}, nil
	}

	hits, err := s.index.SearchIndicators(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching indicators: %w", err)
	}

	for i := range hits {
		hits[i].Snippet = domain.StripHighlight(hits[i].Snippet)
	}
	return hits, nil
}

// FetchIndicatorData returns the indicator's metadata and data
// documents. When entity is non-empty the value series is filtered to
// that single entity; an entity the catalog does not know yields the
// unfiltered series, mirroring the resolver's "no filter applied"
// convention.
func (s *IndicatorService) FetchIndicatorData(ctx context.Context, indicatorID int, entity string) (*domain.IndicatorData, error) {
	if indicatorID <= 0 {
		return nil, fmt.Errorf("%w: indicator ID must be positive", domain.ErrInvalidInput)
	}

	meta, err := s.api.IndicatorMetadata(ctx, indicatorID)
	if err != nil {
		return nil, fmt.Errorf("fetching indicator metadata: %w", err)
	}
	data, err := s.api.IndicatorData(ctx, indicatorID)
	if err != nil {
		return nil, fmt.Errorf("fetching indicator data: %w", err)
	}

	if entity != "" {
		if filtered, ok := filterEntity(meta, data, entity, s.regions); ok {
			data = filtered
		}
	}

	return &domain.IndicatorData{Metadata: meta, Data: data}, nil
}

// filterEntity narrows the parallel values/years/entities arrays of a
// data document to the single entity named. The metadata document maps
// entity IDs to names and codes under dimensions.entities.values.
func filterEntity(meta, data map[string]any, entity string, regions *Regions) (map[string]any, bool) {
	wantCode, _ := regions.Resolve(entity)
	wantName := strings.ToLower(strings.TrimSpace(entity))

	targetID, ok := findEntityID(meta, wantName, wantCode)
	if !ok {
		return nil, false
	}

	entities, ok := toFloatSlice(data["entities"])
	if !ok {
		return nil, false
	}
	values, _ := data["values"].([]any)
	years, _ := data["years"].([]any)

	out := map[string]any{
		"entities": []any{},
		"values":   []any{},
		"years":    []any{},
	}
	outEntities := []any{}
	outValues := []any{}
	outYears := []any{}
	for i, id := range entities {
		if id != targetID {
			continue
		}
		outEntities = append(outEntities, id)
		if i < len(values) {
			outValues = append(outValues, values[i])
		}
		if i < len(years) {
			outYears = append(outYears, years[i])
		}
	}
	out["entities"] = outEntities
	out["values"] = outValues
	out["years"] = outYears
	return out, true
}

// findEntityID scans dimensions.entities.values for a matching name or
// code and returns the numeric entity ID.
func findEntityID(meta map[string]any, wantName, wantCode string) (float64, bool) {
	dims, _ := meta["dimensions"].(map[string]any)
	ents, _ := dims["entities"].(map[string]any)
	vals, _ := ents["values"].([]any)

	for _, v := range vals {
		ent, ok := v.(map[string]any)
		if !ok {
			continue
		}
		name, _ := ent["name"].(string)
		code, _ := ent["code"].(string)
		if strings.ToLower(name) == wantName || (wantCode != "" && code == wantCode) {
			if id, ok := ent["id"].(float64); ok {
				return id, true
			}
		}
	}
	return 0, false
}

func toFloatSlice(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		f, ok := e.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
