package types

// Store is the entity store, costing engine and recipe aggregation behind
// one interface. Reads report absence with a false found flag; updates and
// cost passes return an error wrapping ErrNotFound. Delete reports whether a
// row was removed.
//
// Any change to a recipe's ingredient rows, servings or selling price
// recomputes the recipe's costs before the call returns. A failed call
// leaves the store unchanged.
type Store interface {
	ListIngredients() ([]Ingredient, error)
	GetIngredient(id int64) (Ingredient, bool, error)
	CreateIngredient(in IngredientInput) (Ingredient, error)
	UpdateIngredient(id int64, p IngredientPatch) (Ingredient, error)

	// DeleteIngredient returns ErrIngredientInUse while any recipe
	// ingredient row references the ingredient.
	DeleteIngredient(id int64) (bool, error)

	GetRecipes(f RecipeFilter) ([]Recipe, error)
	GetRecipe(id int64) (Recipe, bool, error)
	GetFullRecipe(id int64) (FullRecipe, bool, error)
	CreateRecipe(in RecipeInput) (Recipe, error)
	UpdateRecipe(id int64, p RecipePatch) (Recipe, error)

	// DeleteRecipe removes the recipe with its ingredient rows and steps.
	DeleteRecipe(id int64) (bool, error)

	GetRecipeIngredients(recipeID int64) ([]RecipeIngredientDetail, error)
	GetRecipeIngredient(id int64) (RecipeIngredient, bool, error)
	AddIngredientToRecipe(recipeID int64, in RecipeIngredientInput) (RecipeIngredient, error)
	UpdateRecipeIngredient(id int64, p RecipeIngredientPatch) (RecipeIngredient, error)
	RemoveIngredientFromRecipe(id int64) (bool, error)

	// The Costed variants also return the owning recipe as the mutation
	// left it, read under the same lock.
	AddIngredientToRecipeCosted(recipeID int64, in RecipeIngredientInput) (RowChange, error)
	UpdateRecipeIngredientCosted(id int64, p RecipeIngredientPatch) (RowChange, error)
	RemoveIngredientFromRecipeCosted(id int64) (RowChange, bool, error)

	GetRecipeSteps(recipeID int64) ([]Step, error)
	AddStepToRecipe(recipeID int64, in StepInput) (Step, error)
	UpdateStep(id int64, p StepPatch) (Step, error)

	// DeleteStep renumbers the later steps of the recipe down by one.
	DeleteStep(id int64) (bool, error)

	// CalculateRecipeCosts recomputes and stores the recipe's derived cost
	// fields.
	CalculateRecipeCosts(recipeID int64) (Costs, error)

	// ExportState returns a deep copy of the whole store.
	ExportState() (Snapshot, error)

	// ImportState replaces the whole store with s after validating it.
	ImportState(s Snapshot) error

	Close() error
}
