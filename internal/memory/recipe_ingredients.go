package memory

import (
	"fmt"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// GetRecipeIngredients returns the recipe's rows joined with their
// ingredients, in insertion order.
func (s *Store) GetRecipeIngredients(recipeID int64) ([]types.RecipeIngredientDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return nil, fmt.Errorf("listing ingredients of recipe %d: %w", recipeID, types.ErrRecipeNotFound)
	}
	return s.detailsLocked(recipeID)
}

// GetRecipeIngredient returns one row by id.
func (s *Store) GetRecipeIngredient(id int64) (types.RecipeIngredient, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ri, ok := s.recipeIngredients[id]
	return ri, ok, nil
}

func (s *Store) detailsLocked(recipeID int64) ([]types.RecipeIngredientDetail, error) {
	rows := s.rowsOf(recipeID)
	out := make([]types.RecipeIngredientDetail, 0, len(rows))
	for _, ri := range rows {
		ing, ok := s.ingredients[ri.IngredientID]
		if !ok {
			return nil, fmt.Errorf("recipe ingredient %d -> ingredient %d: %w", ri.ID, ri.IngredientID, types.ErrDanglingIngredient)
		}
		out = append(out, types.RecipeIngredientDetail{RecipeIngredient: ri, Ingredient: ing.Clone()})
	}
	return out, nil
}

// AddIngredientToRecipe adds a row to the recipe and recomputes its costs.
func (s *Store) AddIngredientToRecipe(recipeID int64, in types.RecipeIngredientInput) (types.RecipeIngredient, error) {
	c, err := s.AddIngredientToRecipeCosted(recipeID, in)
	return c.Row, err
}

// AddIngredientToRecipeCosted is AddIngredientToRecipe returning the
// recomputed recipe as well.
func (s *Store) AddIngredientToRecipeCosted(recipeID int64, in types.RecipeIngredientInput) (types.RowChange, error) {
	if err := in.Validate(); err != nil {
		return types.RowChange{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return types.RowChange{}, fmt.Errorf("adding ingredient to recipe %d: %w", recipeID, types.ErrRecipeNotFound)
	}
	if _, ok := s.ingredients[in.IngredientID]; !ok {
		return types.RowChange{}, fmt.Errorf("adding ingredient %d to recipe %d: %w", in.IngredientID, recipeID, types.ErrIngredientNotFound)
	}

	ri := types.RecipeIngredient{
		ID:           s.seq.RecipeIngredient + 1,
		RecipeID:     recipeID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	}
	r, err := s.costedLocked(recipeID, append(s.rowsOf(recipeID), ri))
	if err != nil {
		return types.RowChange{}, err
	}

	s.seq.RecipeIngredient = ri.ID
	s.recipeIngredients[ri.ID] = ri
	s.recipes[recipeID] = r
	return types.RowChange{Row: ri, Recipe: r.Clone()}, nil
}

// UpdateRecipeIngredient merges p into the row and recomputes the owning
// recipe's costs.
func (s *Store) UpdateRecipeIngredient(id int64, p types.RecipeIngredientPatch) (types.RecipeIngredient, error) {
	c, err := s.UpdateRecipeIngredientCosted(id, p)
	return c.Row, err
}

// UpdateRecipeIngredientCosted is UpdateRecipeIngredient returning the
// recomputed recipe as well.
func (s *Store) UpdateRecipeIngredientCosted(id int64, p types.RecipeIngredientPatch) (types.RowChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recipeIngredients[id]
	if !ok {
		return types.RowChange{}, fmt.Errorf("updating recipe ingredient %d: %w", id, types.ErrRecipeIngredientNotFound)
	}
	next, err := p.Apply(cur)
	if err != nil {
		return types.RowChange{}, err
	}
	if _, ok := s.ingredients[next.IngredientID]; !ok {
		return types.RowChange{}, fmt.Errorf("updating recipe ingredient %d: ingredient %d: %w", id, next.IngredientID, types.ErrIngredientNotFound)
	}

	s.recipeIngredients[id] = next
	r, err := s.costedLocked(next.RecipeID, s.rowsOf(next.RecipeID))
	if err != nil {
		s.recipeIngredients[id] = cur
		return types.RowChange{}, err
	}
	s.recipes[next.RecipeID] = r
	return types.RowChange{Row: next, Recipe: r.Clone()}, nil
}

// RemoveIngredientFromRecipe deletes the row and recomputes the owning
// recipe's costs.
func (s *Store) RemoveIngredientFromRecipe(id int64) (bool, error) {
	_, removed, err := s.RemoveIngredientFromRecipeCosted(id)
	return removed, err
}

// RemoveIngredientFromRecipeCosted is RemoveIngredientFromRecipe returning
// the removed row and the recomputed recipe.
func (s *Store) RemoveIngredientFromRecipeCosted(id int64) (types.RowChange, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recipeIngredients[id]
	if !ok {
		return types.RowChange{}, false, nil
	}

	delete(s.recipeIngredients, id)
	r, err := s.costedLocked(cur.RecipeID, s.rowsOf(cur.RecipeID))
	if err != nil {
		s.recipeIngredients[id] = cur
		return types.RowChange{}, false, err
	}
	s.recipes[cur.RecipeID] = r
	return types.RowChange{Row: cur, Recipe: r.Clone()}, true, nil
}
