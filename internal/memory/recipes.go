package memory

import (
	"fmt"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// GetRecipes returns the recipes matching f in the order f asks for.
func (s *Store) GetRecipes(f types.RecipeFilter) ([]types.Recipe, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	all := make([]types.Recipe, 0, len(s.recipes))
	for _, id := range sortedKeys(s.recipes) {
		all = append(all, s.recipes[id].Clone())
	}
	s.mu.RUnlock()

	return filterRecipes(all, f), nil
}

// GetRecipe returns the recipe with the given id.
func (s *Store) GetRecipe(id int64) (types.Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return types.Recipe{}, false, nil
	}
	return r.Clone(), true, nil
}

// GetFullRecipe assembles the recipe with its joined ingredient rows and
// ordered steps. Empty lists are returned as empty slices.
func (s *Store) GetFullRecipe(id int64) (types.FullRecipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return types.FullRecipe{}, false, nil
	}
	details, err := s.detailsLocked(id)
	if err != nil {
		return types.FullRecipe{}, false, err
	}
	steps := s.stepsOf(id)
	if steps == nil {
		steps = []types.Step{}
	}
	return types.FullRecipe{Recipe: r.Clone(), Ingredients: details, Steps: steps}, true, nil
}

// CreateRecipe validates in and stores an uncosted recipe under the next
// identifier.
func (s *Store) CreateRecipe(in types.RecipeInput) (types.Recipe, error) {
	in, err := in.Normalize()
	if err != nil {
		return types.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.Recipe++
	r := in.Recipe(s.seq.Recipe, s.now())
	s.recipes[r.ID] = r
	return r.Clone(), nil
}

// UpdateRecipe merges p into the recipe and refreshes its update timestamp.
// Changing servings or selling price recomputes costs.
func (s *Store) UpdateRecipe(id int64, p types.RecipePatch) (types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recipes[id]
	if !ok {
		return types.Recipe{}, fmt.Errorf("updating recipe %d: %w", id, types.ErrRecipeNotFound)
	}
	next, err := p.Apply(cur)
	if err != nil {
		return types.Recipe{}, err
	}
	next.UpdatedAt = s.now()
	if p.AffectsCosts() {
		if next, err = s.costLocked(next, s.rowsOf(id)); err != nil {
			return types.Recipe{}, err
		}
	}
	s.recipes[id] = next
	return next.Clone(), nil
}

// DeleteRecipe removes the recipe's ingredient rows and steps, then the
// recipe itself.
func (s *Store) DeleteRecipe(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return false, nil
	}
	for riID, ri := range s.recipeIngredients {
		if ri.RecipeID == id {
			delete(s.recipeIngredients, riID)
		}
	}
	for stID, st := range s.steps {
		if st.RecipeID == id {
			delete(s.steps, stID)
		}
	}
	delete(s.recipes, id)
	return true, nil
}
