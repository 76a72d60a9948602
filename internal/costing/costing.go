// Package costing derives a recipe's total cost, cost per serving and profit
// margin from its ingredient lines.
package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// Line is one ingredient row of a recipe: a quantity of an ingredient at the
// ingredient's unit cost.
type Line struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Compute returns the costs of a recipe with the given servings, selling
// price and lines. The total is summed exactly. Division is carried to
// decimal.DivisionPrecision digits. The margin is null unless the selling
// price is set and positive.
func Compute(servings int, sellingPrice decimal.NullDecimal, lines []Line) (types.Costs, error) {
	if servings < 1 {
		return types.Costs{}, fmt.Errorf("servings %d: %w", servings, types.ErrInvalidData)
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}
	perServing := total.Div(decimal.NewFromInt(int64(servings)))

	costs := types.Costs{TotalCost: total, CostPerServing: perServing}
	if sellingPrice.Valid && sellingPrice.Decimal.IsPositive() {
		price := sellingPrice.Decimal
		costs.ProfitMargin = decimal.NewNullDecimal(price.Sub(perServing).Div(price).Mul(hundred))
	}
	return costs, nil
}

// Lines joins recipe ingredient rows with their ingredients. It fails with
// ErrDanglingIngredient if a row references an ingredient not in the lookup.
func Lines(rows []types.RecipeIngredient, lookup func(id int64) (types.Ingredient, bool)) ([]Line, error) {
	lines := make([]Line, 0, len(rows))
	for _, ri := range rows {
		ing, ok := lookup(ri.IngredientID)
		if !ok {
			return nil, fmt.Errorf("recipe ingredient %d -> ingredient %d: %w", ri.ID, ri.IngredientID, types.ErrDanglingIngredient)
		}
		lines = append(lines, Line{Quantity: ri.Quantity, UnitCost: ing.UnitCost})
	}
	return lines, nil
}

// Display rounds costs for presentation: two places for money, one for the
// margin percentage.
func Display(c types.Costs) (total, perServing, margin string) {
	total = c.TotalCost.StringFixed(2)
	perServing = c.CostPerServing.StringFixed(2)
	if c.ProfitMargin.Valid {
		margin = c.ProfitMargin.Decimal.StringFixed(1)
	}
	return total, perServing, margin
}
