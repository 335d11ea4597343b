package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

//go:embed regions.json
var regionsJSON []byte

// Regions resolves free-text entity names to canonical codes.
//
// The mapping is built at most once, on first use, from the embedded
// region definitions, and never mutated afterwards: concurrent readers
// always see a consistent snapshot. One Regions instance is shared by
// every service in the process; it is the only process-wide state this
// layer carries.
type Regions struct {
	once   sync.Once
	byName map[string]string
	err    error
}

// NewRegions creates an unbuilt resolver. The mapping is materialised
// on the first Resolve call.
func NewRegions() *Regions {
	return &Regions{}
}

func (r *Regions) build() {
	var defs []domain.Region
	if err := json.Unmarshal(regionsJSON, &defs); err != nil {
		r.err = fmt.Errorf("parsing region definitions: %w", err)
		return
	}

	m := make(map[string]string, len(defs)*2)
	for _, d := range defs {
		m[strings.ToLower(d.Name)] = d.Code
		m[strings.ToLower(d.Code)] = d.Code
		for _, a := range d.Aliases {
			m[strings.ToLower(a)] = d.Code
		}
	}
	r.byName = m
}

// Resolve maps a free-text entity name to its canonical code. Lookups
// are case-insensitive. A miss returns ok=false and means "no filter
// applied"; it is never an error.
func (r *Regions) Resolve(name string) (string, bool) {
	r.once.Do(r.build)
	if r.err != nil {
		return "", false
	}
	code, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// ResolveAll resolves each name, preserving input order and dropping
// names that do not resolve.
func (r *Regions) ResolveAll(names []string) []string {
	codes := make([]string, 0, len(names))
	for _, n := range names {
		if code, ok := r.Resolve(n); ok {
			codes = append(codes, code)
		}
	}
	return codes
}
