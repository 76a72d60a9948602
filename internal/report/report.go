// Package report summarizes recipes and ingredients for dashboards and the
// report command.
package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// DefaultLimit is the length of the top and latest lists.
const DefaultLimit = 5

// Summary is an overview of the store.
type Summary struct {
	RecipeCount     int                    `json:"recipeCount"`
	IngredientCount int                    `json:"ingredientCount"`
	ByCategory      map[types.Category]int `json:"byCategory"`
	CostedCount     int                    `json:"costedCount"`

	// AverageMargin is taken over costed recipes; a recipe without a margin
	// counts as zero. Null when no recipe is costed.
	AverageMargin decimal.NullDecimal `json:"averageMargin"`
	BestMargin    *types.Recipe       `json:"bestMargin"`

	TopByMargin         []types.Recipe     `json:"topByMargin"`
	Latest              []types.Recipe     `json:"latest"`
	PriciestIngredients []types.Ingredient `json:"priciestIngredients"`
	CostedByCost        []types.Recipe     `json:"costedByCost"`
}

// Summarize builds a Summary. Lists are cut to limit entries, except
// CostedByCost which holds every costed recipe. A limit below one uses
// DefaultLimit.
func Summarize(recipes []types.Recipe, ingredients []types.Ingredient, limit int) Summary {
	if limit < 1 {
		limit = DefaultLimit
	}
	s := Summary{
		RecipeCount:     len(recipes),
		IngredientCount: len(ingredients),
		ByCategory:      make(map[types.Category]int),
	}

	var costed, withMargin []types.Recipe
	for _, r := range recipes {
		s.ByCategory[r.Category]++
		if r.CostPerServing.Valid && r.CostPerServing.Decimal.IsPositive() {
			costed = append(costed, r)
		}
		if r.ProfitMargin.Valid {
			withMargin = append(withMargin, r)
		}
	}

	s.CostedCount = len(costed)
	if len(costed) > 0 {
		sum := decimal.Zero
		for _, r := range costed {
			if r.ProfitMargin.Valid {
				sum = sum.Add(r.ProfitMargin.Decimal)
			}
		}
		s.AverageMargin = decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(len(costed)))))
	}

	slices.SortStableFunc(withMargin, func(a, b types.Recipe) int {
		return b.ProfitMargin.Decimal.Cmp(a.ProfitMargin.Decimal)
	})
	if len(withMargin) > 0 {
		best := withMargin[0]
		s.BestMargin = &best
	}
	s.TopByMargin = head(withMargin, limit)

	latest := slices.Clone(recipes)
	slices.SortStableFunc(latest, func(a, b types.Recipe) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	s.Latest = head(latest, limit)

	priciest := slices.Clone(ingredients)
	slices.SortStableFunc(priciest, func(a, b types.Ingredient) int {
		return b.UnitCost.Cmp(a.UnitCost)
	})
	s.PriciestIngredients = head(priciest, limit)

	slices.SortStableFunc(costed, func(a, b types.Recipe) int {
		return a.CostPerServing.Decimal.Cmp(b.CostPerServing.Decimal)
	})
	s.CostedByCost = costed
	if s.CostedByCost == nil {
		s.CostedByCost = []types.Recipe{}
	}
	return s
}

func head[T any](xs []T, n int) []T {
	if len(xs) > n {
		xs = xs[:n]
	}
	if xs == nil {
		return []T{}
	}
	return xs
}
