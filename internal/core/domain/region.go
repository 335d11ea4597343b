package domain

// Region is one entry of the static region-definitions collection used
// by the country-name resolver.
type Region struct {
	// Code is the canonical entity code (ISO alpha-3 for countries,
	// OWID_-prefixed for aggregates like continents).
	Code string `json:"code"`

	// Name is the canonical display name.
	Name string `json:"name"`

	// Aliases are alternative spellings that resolve to the same code.
	Aliases []string `json:"aliases,omitempty"`
}
