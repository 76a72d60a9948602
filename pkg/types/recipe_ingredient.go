package types

import "github.com/shopspring/decimal"

// RecipeIngredient links a recipe to an ingredient with a usage quantity.
// Unit is recorded as given; it is not converted against the ingredient's
// own unit.
type RecipeIngredient struct {
	ID           int64           `json:"id"`
	RecipeID     int64           `json:"recipeId"`
	IngredientID int64           `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
}

// Validate applies the checks of AddIngredientToRecipe to a stored row.
func (ri RecipeIngredient) Validate() error {
	return RecipeIngredientInput{IngredientID: ri.IngredientID, Quantity: ri.Quantity, Unit: ri.Unit}.Validate()
}

// RecipeIngredientInput carries the fields of a new recipe ingredient. The
// owning recipe is given separately.
type RecipeIngredientInput struct {
	IngredientID int64           `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
}

// Validate checks the input.
func (in RecipeIngredientInput) Validate() error {
	if in.IngredientID <= 0 {
		return invalid("ingredientId", "must be positive")
	}
	if !in.Quantity.IsPositive() {
		return invalid("quantity", "must be positive")
	}
	if !in.Unit.Valid() {
		return invalid("unit", "unknown unit %q", in.Unit)
	}
	return nil
}

// RecipeIngredientPatch is a partial update. A row cannot be moved to
// another recipe.
type RecipeIngredientPatch struct {
	IngredientID *int64           `json:"ingredientId"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *Unit            `json:"unit"`
}

// Apply merges the patch into ri and validates the result.
func (p RecipeIngredientPatch) Apply(ri RecipeIngredient) (RecipeIngredient, error) {
	out := ri
	if p.IngredientID != nil {
		out.IngredientID = *p.IngredientID
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		out.Unit = *p.Unit
	}
	in := RecipeIngredientInput{IngredientID: out.IngredientID, Quantity: out.Quantity, Unit: out.Unit}
	if err := in.Validate(); err != nil {
		return ri, err
	}
	return out, nil
}

// RowChange is the outcome of one recipe ingredient mutation: the row as
// written, or as it was before a removal, and the owning recipe with the
// costs that same mutation computed.
type RowChange struct {
	Row    RecipeIngredient `json:"recipeIngredient"`
	Recipe Recipe           `json:"recipe"`
}

// RecipeIngredientDetail is a recipe ingredient joined with its ingredient.
type RecipeIngredientDetail struct {
	RecipeIngredient
	Ingredient Ingredient `json:"ingredient"`
}

// LineCost is the row's contribution to the recipe's total cost.
func (d RecipeIngredientDetail) LineCost() decimal.Decimal {
	return d.Quantity.Mul(d.Ingredient.UnitCost)
}
