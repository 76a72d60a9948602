package types

// FullRecipe is a recipe with its ingredient rows in insertion order and its
// steps in step-number order. It is assembled on read and never stored.
type FullRecipe struct {
	Recipe
	Ingredients []RecipeIngredientDetail `json:"ingredients"`
	Steps       []Step                   `json:"steps"`
}
