package types

// SortBy names a recipe list ordering.
type SortBy string

// Recipe list orderings. The zero value keeps insertion order.
const (
	SortNone     SortBy = ""
	SortName     SortBy = "name"
	SortCostLow  SortBy = "cost_low"
	SortCostHigh SortBy = "cost_high"
	SortMargin   SortBy = "margin"
)

var validSorts = map[SortBy]bool{
	SortNone:     true,
	SortName:     true,
	SortCostLow:  true,
	SortCostHigh: true,
	SortMargin:   true,
}

// RecipeFilter selects and orders recipes. Empty fields match everything;
// set fields are combined with AND.
type RecipeFilter struct {
	Search      string      `json:"search,omitempty"`
	Category    Category    `json:"category,omitempty"`
	Subcategory Subcategory `json:"subcategory,omitempty"`
	SortBy      SortBy      `json:"sortBy,omitempty"`
}

// Validate rejects unknown enumeration values.
func (f RecipeFilter) Validate() error {
	if f.Category != "" && !f.Category.Valid() {
		return invalid("category", "unknown category %q", f.Category)
	}
	if f.Subcategory != "" && !f.Subcategory.Valid() {
		return invalid("subcategory", "unknown subcategory %q", f.Subcategory)
	}
	if !validSorts[f.SortBy] {
		return invalid("sortBy", "unknown sort order %q", f.SortBy)
	}
	return nil
}
