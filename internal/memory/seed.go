package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// SeedIngredients lists the sample ingredients loaded into a new store.
func SeedIngredients() []types.IngredientInput {
	return []types.IngredientInput{
		{
			Name:      "Spaghetti",
			UnitCost:  decimal.RequireFromString("0.002"),
			Unit:      types.UnitGram,
			Allergens: []types.Allergen{types.AllergenGluten},
			Supplier:  ptr("Local Supplier"),
			Notes:     ptr("Dried pasta"),
		},
		{
			Name:      "Eggs",
			UnitCost:  decimal.RequireFromString("0.25"),
			Unit:      types.UnitPiece,
			Allergens: []types.Allergen{types.AllergenEggs},
			Supplier:  ptr("Local Farm"),
			Notes:     ptr("Free-range eggs"),
		},
		{
			Name:      "Guanciale",
			UnitCost:  decimal.RequireFromString("0.028"),
			Unit:      types.UnitGram,
			Allergens: []types.Allergen{types.AllergenNone},
			Supplier:  ptr("Italian Importer"),
			Notes:     ptr("Cured pork cheek"),
		},
		{
			Name:      "Pecorino Romano",
			UnitCost:  decimal.RequireFromString("0.025"),
			Unit:      types.UnitGram,
			Allergens: []types.Allergen{types.AllergenMilk},
			Supplier:  ptr("Italian Importer"),
			Notes:     ptr("Aged sheep's milk cheese"),
		},
		{
			Name:      "Black Pepper",
			UnitCost:  decimal.RequireFromString("0.05"),
			Unit:      types.UnitGram,
			Allergens: []types.Allergen{types.AllergenNone},
			Supplier:  ptr("Spice Trader"),
			Notes:     ptr("Freshly ground"),
		},
		{
			Name:      "Salt",
			UnitCost:  decimal.RequireFromString("0.001"),
			Unit:      types.UnitGram,
			Allergens: []types.Allergen{types.AllergenNone},
			Supplier:  ptr("Local Supplier"),
			Notes:     ptr("Kosher salt"),
		},
	}
}

// Seed creates the sample ingredients in st if it has no ingredients yet.
// It returns the number of ingredients created.
func Seed(st types.Store) (int, error) {
	existing, err := st.ListIngredients()
	if err != nil {
		return 0, fmt.Errorf("listing ingredients: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	n := 0
	for _, in := range SeedIngredients() {
		if _, err := st.CreateIngredient(in); err != nil {
			return n, fmt.Errorf("seeding %s: %w", in.Name, err)
		}
		n++
	}
	return n, nil
}
