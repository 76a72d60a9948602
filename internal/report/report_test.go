package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

func recipeNames(rs []types.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	recipes := []types.Recipe{
		{ID: 1, Name: "Carbonara", Category: types.CategoryMain, CostPerServing: nd("1.5"), ProfitMargin: nd("70"), CreatedAt: base},
		{ID: 2, Name: "Negroni", Category: types.CategoryCocktail, CostPerServing: nd("2"), ProfitMargin: nd("80"), CreatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "Tiramisu", Category: types.CategoryDessert, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Name: "Gricia", Category: types.CategoryMain, CostPerServing: nd("1"), CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, Name: "Water", Category: types.CategoryBeverage, CostPerServing: nd("0"), ProfitMargin: nd("100"), CreatedAt: base.Add(4 * time.Hour)},
	}
	ingredients := []types.Ingredient{
		{ID: 1, Name: "Salt", UnitCost: decimal.RequireFromString("0.001")},
		{ID: 2, Name: "Eggs", UnitCost: decimal.RequireFromString("0.25")},
		{ID: 3, Name: "Pepper", UnitCost: decimal.RequireFromString("0.05")},
	}

	s := Summarize(recipes, ingredients, 2)

	assert.Equal(t, 5, s.RecipeCount)
	assert.Equal(t, 3, s.IngredientCount)
	assert.Equal(t, 2, s.ByCategory[types.CategoryMain])
	assert.Equal(t, 1, s.ByCategory[types.CategoryCocktail])
	assert.Equal(t, 3, s.CostedCount, "zero cost per serving is not costed")

	require.True(t, s.AverageMargin.Valid)
	assert.True(t, decimal.NewFromInt(50).Equal(s.AverageMargin.Decimal), "(70 + 80 + 0) / 3, got %s", s.AverageMargin.Decimal)

	require.NotNil(t, s.BestMargin)
	assert.Equal(t, "Water", s.BestMargin.Name)
	assert.Equal(t, []string{"Water", "Negroni"}, recipeNames(s.TopByMargin))
	assert.Equal(t, []string{"Water", "Gricia"}, recipeNames(s.Latest))
	require.Len(t, s.PriciestIngredients, 2)
	assert.Equal(t, "Eggs", s.PriciestIngredients[0].Name)
	assert.Equal(t, "Pepper", s.PriciestIngredients[1].Name)
	assert.Equal(t, []string{"Gricia", "Carbonara", "Negroni"}, recipeNames(s.CostedByCost))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, 0)

	assert.Zero(t, s.RecipeCount)
	assert.False(t, s.AverageMargin.Valid)
	assert.Nil(t, s.BestMargin)
	assert.NotNil(t, s.TopByMargin)
	assert.NotNil(t, s.Latest)
	assert.NotNil(t, s.CostedByCost)
	assert.Empty(t, s.ByCategory)
}
