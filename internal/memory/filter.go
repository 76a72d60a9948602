package memory

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// filterRecipes applies the filter predicates and ordering to recipes, which
// must be in insertion order. Ties and nulls keep insertion order.
func filterRecipes(recipes []types.Recipe, f types.RecipeFilter) []types.Recipe {
	search := strings.ToLower(f.Search)
	out := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Subcategory != "" && (r.Subcategory == nil || *r.Subcategory != f.Subcategory) {
			continue
		}
		out = append(out, r)
	}

	switch f.SortBy {
	case types.SortName:
		c := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b types.Recipe) int {
			return c.CompareString(a.Name, b.Name)
		})
	case types.SortCostLow:
		slices.SortStableFunc(out, func(a, b types.Recipe) int {
			return compareNullsLast(a.CostPerServing, b.CostPerServing, false)
		})
	case types.SortCostHigh:
		slices.SortStableFunc(out, func(a, b types.Recipe) int {
			return compareNullsLast(a.CostPerServing, b.CostPerServing, true)
		})
	case types.SortMargin:
		slices.SortStableFunc(out, func(a, b types.Recipe) int {
			return compareNullsLast(a.ProfitMargin, b.ProfitMargin, true)
		})
	}
	return out
}

// compareNullsLast orders set values ascending, or descending when desc is
// true. Null values sort after every set value in both directions.
func compareNullsLast(a, b decimal.NullDecimal, desc bool) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	if desc {
		return b.Decimal.Cmp(a.Decimal)
	}
	return a.Decimal.Cmp(b.Decimal)
}
