package sqlstore

import (
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Store methods delegate to the memory store under the store lock. Reads
// take the read lock; mutations go through mutate, which persists the
// result before returning.

// found pairs a result with its found flag.
type found[T any] struct {
	v  T
	ok bool
}

func readFound[T any](s *Store, op func() (T, bool, error)) (T, bool, error) {
	r, err := read(s, func() (found[T], error) {
		v, ok, err := op()
		return found[T]{v, ok}, err
	})
	return r.v, r.ok, err
}

func mutateFound[T any](s *Store, op func() (T, bool, error)) (T, bool, error) {
	r, err := mutate(s, func() (found[T], error) {
		v, ok, err := op()
		return found[T]{v, ok}, err
	})
	return r.v, r.ok, err
}

// ListIngredients returns all ingredients in insertion order.
func (s *Store) ListIngredients() ([]types.Ingredient, error) {
	return read(s, s.mem.ListIngredients)
}

// GetIngredient returns the ingredient with the given id.
func (s *Store) GetIngredient(id int64) (types.Ingredient, bool, error) {
	return readFound(s, func() (types.Ingredient, bool, error) { return s.mem.GetIngredient(id) })
}

// CreateIngredient stores a new ingredient.
func (s *Store) CreateIngredient(in types.IngredientInput) (types.Ingredient, error) {
	return mutate(s, func() (types.Ingredient, error) { return s.mem.CreateIngredient(in) })
}

// UpdateIngredient merges p into the ingredient.
func (s *Store) UpdateIngredient(id int64, p types.IngredientPatch) (types.Ingredient, error) {
	return mutate(s, func() (types.Ingredient, error) { return s.mem.UpdateIngredient(id, p) })
}

// DeleteIngredient removes an ingredient no recipe uses.
func (s *Store) DeleteIngredient(id int64) (bool, error) {
	return mutate(s, func() (bool, error) { return s.mem.DeleteIngredient(id) })
}

// GetRecipes returns the recipes matching f.
func (s *Store) GetRecipes(f types.RecipeFilter) ([]types.Recipe, error) {
	return read(s, func() ([]types.Recipe, error) { return s.mem.GetRecipes(f) })
}

// GetRecipe returns the recipe with the given id.
func (s *Store) GetRecipe(id int64) (types.Recipe, bool, error) {
	return readFound(s, func() (types.Recipe, bool, error) { return s.mem.GetRecipe(id) })
}

// GetFullRecipe returns the recipe with its rows and steps.
func (s *Store) GetFullRecipe(id int64) (types.FullRecipe, bool, error) {
	return readFound(s, func() (types.FullRecipe, bool, error) { return s.mem.GetFullRecipe(id) })
}

// CreateRecipe stores a new uncosted recipe.
func (s *Store) CreateRecipe(in types.RecipeInput) (types.Recipe, error) {
	return mutate(s, func() (types.Recipe, error) { return s.mem.CreateRecipe(in) })
}

// UpdateRecipe merges p into the recipe.
func (s *Store) UpdateRecipe(id int64, p types.RecipePatch) (types.Recipe, error) {
	return mutate(s, func() (types.Recipe, error) { return s.mem.UpdateRecipe(id, p) })
}

// DeleteRecipe removes the recipe with its rows and steps.
func (s *Store) DeleteRecipe(id int64) (bool, error) {
	return mutate(s, func() (bool, error) { return s.mem.DeleteRecipe(id) })
}

// GetRecipeIngredients returns the recipe's rows joined with their ingredients.
func (s *Store) GetRecipeIngredients(recipeID int64) ([]types.RecipeIngredientDetail, error) {
	return read(s, func() ([]types.RecipeIngredientDetail, error) { return s.mem.GetRecipeIngredients(recipeID) })
}

// GetRecipeIngredient returns one row by id.
func (s *Store) GetRecipeIngredient(id int64) (types.RecipeIngredient, bool, error) {
	return readFound(s, func() (types.RecipeIngredient, bool, error) { return s.mem.GetRecipeIngredient(id) })
}

// AddIngredientToRecipe adds a row and recomputes the recipe's costs.
func (s *Store) AddIngredientToRecipe(recipeID int64, in types.RecipeIngredientInput) (types.RecipeIngredient, error) {
	c, err := s.AddIngredientToRecipeCosted(recipeID, in)
	return c.Row, err
}

// AddIngredientToRecipeCosted adds a row and returns it with the recomputed recipe.
func (s *Store) AddIngredientToRecipeCosted(recipeID int64, in types.RecipeIngredientInput) (types.RowChange, error) {
	return mutate(s, func() (types.RowChange, error) { return s.mem.AddIngredientToRecipeCosted(recipeID, in) })
}

// UpdateRecipeIngredient merges p into the row and recomputes the recipe's costs.
func (s *Store) UpdateRecipeIngredient(id int64, p types.RecipeIngredientPatch) (types.RecipeIngredient, error) {
	c, err := s.UpdateRecipeIngredientCosted(id, p)
	return c.Row, err
}

// UpdateRecipeIngredientCosted merges p into the row and returns it with the
// recomputed recipe.
func (s *Store) UpdateRecipeIngredientCosted(id int64, p types.RecipeIngredientPatch) (types.RowChange, error) {
	return mutate(s, func() (types.RowChange, error) { return s.mem.UpdateRecipeIngredientCosted(id, p) })
}

// RemoveIngredientFromRecipe deletes the row and recomputes the recipe's costs.
func (s *Store) RemoveIngredientFromRecipe(id int64) (bool, error) {
	_, removed, err := s.RemoveIngredientFromRecipeCosted(id)
	return removed, err
}

// RemoveIngredientFromRecipeCosted deletes the row and returns it with the
// recomputed recipe.
func (s *Store) RemoveIngredientFromRecipeCosted(id int64) (types.RowChange, bool, error) {
	return mutateFound(s, func() (types.RowChange, bool, error) { return s.mem.RemoveIngredientFromRecipeCosted(id) })
}

// GetRecipeSteps returns the recipe's steps in order.
func (s *Store) GetRecipeSteps(recipeID int64) ([]types.Step, error) {
	return read(s, func() ([]types.Step, error) { return s.mem.GetRecipeSteps(recipeID) })
}

// AddStepToRecipe inserts a step, shifting later steps.
func (s *Store) AddStepToRecipe(recipeID int64, in types.StepInput) (types.Step, error) {
	return mutate(s, func() (types.Step, error) { return s.mem.AddStepToRecipe(recipeID, in) })
}

// UpdateStep merges p into the step, moving it when its number changes.
func (s *Store) UpdateStep(id int64, p types.StepPatch) (types.Step, error) {
	return mutate(s, func() (types.Step, error) { return s.mem.UpdateStep(id, p) })
}

// DeleteStep removes the step and renumbers the later ones.
func (s *Store) DeleteStep(id int64) (bool, error) {
	return mutate(s, func() (bool, error) { return s.mem.DeleteStep(id) })
}

// CalculateRecipeCosts recomputes and stores the recipe's costs.
func (s *Store) CalculateRecipeCosts(recipeID int64) (types.Costs, error) {
	return mutate(s, func() (types.Costs, error) { return s.mem.CalculateRecipeCosts(recipeID) })
}

// ExportState returns a deep copy of the whole store.
func (s *Store) ExportState() (types.Snapshot, error) {
	return read(s, s.mem.ExportState)
}

// ImportState replaces the store contents and persists them.
func (s *Store) ImportState(snap types.Snapshot) error {
	_, err := mutate(s, func() (struct{}, error) { return struct{}{}, s.mem.ImportState(snap) })
	return err
}
