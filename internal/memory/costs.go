package memory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/internal/costing"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// CalculateRecipeCosts recomputes the recipe's costs from its current rows,
// stores them and refreshes the update timestamp.
func (s *Store) CalculateRecipeCosts(recipeID int64) (types.Costs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.costedLocked(recipeID, s.rowsOf(recipeID))
	if err != nil {
		return types.Costs{}, err
	}
	s.recipes[recipeID] = r
	return costsOf(r), nil
}

// costedLocked returns the stored recipe with costs computed over rows. The
// store is not modified.
func (s *Store) costedLocked(recipeID int64, rows []types.RecipeIngredient) (types.Recipe, error) {
	r, ok := s.recipes[recipeID]
	if !ok {
		costing.RecordFailure(costing.ReasonRecipeNotFound)
		return types.Recipe{}, fmt.Errorf("calculating costs of recipe %d: %w", recipeID, types.ErrRecipeNotFound)
	}
	return s.costLocked(r, rows)
}

// costLocked returns r with costs computed over rows and a fresh update
// timestamp.
func (s *Store) costLocked(r types.Recipe, rows []types.RecipeIngredient) (types.Recipe, error) {
	lines, err := costing.Lines(rows, func(id int64) (types.Ingredient, bool) {
		ing, ok := s.ingredients[id]
		return ing, ok
	})
	if err != nil {
		costing.RecordFailure(costing.ReasonDanglingIngredient)
		return types.Recipe{}, fmt.Errorf("calculating costs of recipe %d: %w", r.ID, err)
	}
	costs, err := costing.Compute(r.Servings, r.SellingPrice, lines)
	if err != nil {
		costing.RecordFailure(costing.ReasonInvalid)
		return types.Recipe{}, fmt.Errorf("calculating costs of recipe %d: %w", r.ID, err)
	}
	costing.RecordRecalculation()

	out := r.Clone()
	out.SetCosts(costs)
	out.UpdatedAt = s.now()
	s.log.Debug("recipe costs recalculated",
		zap.Int64("recipe_id", r.ID),
		zap.Stringer("total_cost", costs.TotalCost),
		zap.Stringer("cost_per_serving", costs.CostPerServing))
	return out, nil
}

func costsOf(r types.Recipe) types.Costs {
	return types.Costs{
		TotalCost:      r.TotalCost.Decimal,
		CostPerServing: r.CostPerServing.Decimal,
		ProfitMargin:   r.ProfitMargin,
	}
}

