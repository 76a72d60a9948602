package memory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// ListIngredients returns all ingredients in insertion order.
func (s *Store) ListIngredients() ([]types.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Ingredient, 0, len(s.ingredients))
	for _, id := range sortedKeys(s.ingredients) {
		out = append(out, s.ingredients[id].Clone())
	}
	return out, nil
}

// GetIngredient returns the ingredient with the given id.
func (s *Store) GetIngredient(id int64) (types.Ingredient, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ing, ok := s.ingredients[id]
	if !ok {
		return types.Ingredient{}, false, nil
	}
	return ing.Clone(), true, nil
}

// CreateIngredient validates in and stores it under the next identifier.
func (s *Store) CreateIngredient(in types.IngredientInput) (types.Ingredient, error) {
	in, err := in.Normalize()
	if err != nil {
		return types.Ingredient{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.Ingredient++
	ing := types.Ingredient{
		ID:        s.seq.Ingredient,
		Name:      in.Name,
		UnitCost:  in.UnitCost,
		Unit:      in.Unit,
		Allergens: in.Allergens,
		Supplier:  in.Supplier,
		Notes:     in.Notes,
	}
	s.ingredients[ing.ID] = ing
	return ing.Clone(), nil
}

// UpdateIngredient merges p into the ingredient. A unit cost change
// recomputes every recipe that uses the ingredient.
func (s *Store) UpdateIngredient(id int64, p types.IngredientPatch) (types.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.ingredients[id]
	if !ok {
		return types.Ingredient{}, fmt.Errorf("updating ingredient %d: %w", id, types.ErrIngredientNotFound)
	}
	next, err := p.Apply(cur)
	if err != nil {
		return types.Ingredient{}, err
	}

	s.ingredients[id] = next
	if !next.UnitCost.Equal(cur.UnitCost) {
		if err := s.recalculateUsersLocked(id); err != nil {
			s.ingredients[id] = cur
			return types.Ingredient{}, err
		}
	}
	return next.Clone(), nil
}

// DeleteIngredient removes an ingredient no recipe uses.
func (s *Store) DeleteIngredient(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ingredients[id]; !ok {
		return false, nil
	}
	for _, ri := range s.recipeIngredients {
		if ri.IngredientID == id {
			return false, fmt.Errorf("deleting ingredient %d used by recipe %d: %w", id, ri.RecipeID, types.ErrIngredientInUse)
		}
	}
	delete(s.ingredients, id)
	return true, nil
}

// recalculateUsersLocked recomputes every recipe with a row referencing the
// ingredient. Either all recipes are updated or none are.
func (s *Store) recalculateUsersLocked(ingredientID int64) error {
	users := make(map[int64]bool)
	for _, ri := range s.recipeIngredients {
		if ri.IngredientID == ingredientID {
			users[ri.RecipeID] = true
		}
	}
	staged := make(map[int64]types.Recipe, len(users))
	for recipeID := range users {
		r, err := s.costedLocked(recipeID, s.rowsOf(recipeID))
		if err != nil {
			return err
		}
		staged[recipeID] = r
	}
	for id, r := range staged {
		s.recipes[id] = r
	}
	if len(staged) > 0 {
		s.log.Debug("recipes recalculated after unit cost change",
			zap.Int64("ingredient_id", ingredientID),
			zap.Int("recipes", len(staged)))
	}
	return nil
}
