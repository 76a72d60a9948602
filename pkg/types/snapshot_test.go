package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() Snapshot {
	return Snapshot{
		Ingredients: []Ingredient{{ID: 1, Name: "Salt", Unit: UnitGram, Allergens: []Allergen{AllergenNone}}},
		Recipes:     []Recipe{{ID: 1, Name: "Brine", Category: CategorySauce, Servings: 1, PrepTime: 5}},
		RecipeIngredients: []RecipeIngredient{
			{ID: 1, RecipeID: 1, IngredientID: 1, Quantity: decimal.NewFromInt(10), Unit: UnitGram},
		},
		Steps: []Step{
			{ID: 1, RecipeID: 1, StepNumber: 2, Description: "Stir"},
			{ID: 2, RecipeID: 1, StepNumber: 1, Description: "Boil"},
		},
		Sequences: Sequences{Ingredient: 3, Recipe: 1, RecipeIngredient: 1, Step: 2},
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Snapshot)
		wantErr error
	}{
		{name: "valid", mutate: func(*Snapshot) {}},
		{name: "empty", mutate: func(s *Snapshot) { *s = Snapshot{} }},
		{
			name:    "dangling ingredient",
			mutate:  func(s *Snapshot) { s.RecipeIngredients[0].IngredientID = 9 },
			wantErr: ErrDanglingIngredient,
		},
		{
			name:    "row of missing recipe",
			mutate:  func(s *Snapshot) { s.Steps[0].RecipeID = 9 },
			wantErr: ErrRecipeNotFound,
		},
		{
			name:    "duplicate step number",
			mutate:  func(s *Snapshot) { s.Steps[0].StepNumber = 1 },
			wantErr: ErrInvalidData,
		},
		{
			name:    "gap in step numbers",
			mutate:  func(s *Snapshot) { s.Steps[0].StepNumber = 3 },
			wantErr: ErrInvalidData,
		},
		{
			name:    "sequence behind ids",
			mutate:  func(s *Snapshot) { s.Sequences.Step = 1 },
			wantErr: ErrInvalidData,
		},
		{
			name:    "unknown recipe category",
			mutate:  func(s *Snapshot) { s.Recipes[0].Category = "bogus" },
			wantErr: ErrInvalidData,
		},
		{
			name:    "zero servings",
			mutate:  func(s *Snapshot) { s.Recipes[0].Servings = 0 },
			wantErr: ErrInvalidData,
		},
		{
			name:    "unknown ingredient unit",
			mutate:  func(s *Snapshot) { s.Ingredients[0].Unit = "furlong" },
			wantErr: ErrInvalidData,
		},
		{
			name:    "unknown allergen",
			mutate:  func(s *Snapshot) { s.Ingredients[0].Allergens = []Allergen{"dust"} },
			wantErr: ErrInvalidData,
		},
		{
			name:    "negative unit cost",
			mutate:  func(s *Snapshot) { s.Ingredients[0].UnitCost = decimal.NewFromInt(-5) },
			wantErr: ErrInvalidData,
		},
		{
			name:    "negative quantity",
			mutate:  func(s *Snapshot) { s.RecipeIngredients[0].Quantity = decimal.NewFromInt(-2) },
			wantErr: ErrInvalidData,
		},
		{
			name:    "blank step description",
			mutate:  func(s *Snapshot) { s.Steps[0].Description = "  " },
			wantErr: ErrInvalidData,
		},
		{
			name:    "total cost without cost per serving",
			mutate:  func(s *Snapshot) { s.Recipes[0].TotalCost = decimal.NewNullDecimal(decimal.NewFromInt(3)) },
			wantErr: ErrInvalidData,
		},
		{
			name: "costed recipe",
			mutate: func(s *Snapshot) {
				s.Recipes[0].TotalCost = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].CostPerServing = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].SellingPrice = decimal.NewNullDecimal(decimal.NewFromInt(6))
				s.Recipes[0].ProfitMargin = decimal.NewNullDecimal(decimal.NewFromInt(50))
			},
		},
		{
			name: "margin without selling price",
			mutate: func(s *Snapshot) {
				s.Recipes[0].TotalCost = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].CostPerServing = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].ProfitMargin = decimal.NewNullDecimal(decimal.NewFromInt(50))
			},
			wantErr: ErrInvalidData,
		},
		{
			name: "margin with zero selling price",
			mutate: func(s *Snapshot) {
				s.Recipes[0].TotalCost = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].CostPerServing = decimal.NewNullDecimal(decimal.NewFromInt(3))
				s.Recipes[0].SellingPrice = decimal.NewNullDecimal(decimal.Zero)
				s.Recipes[0].ProfitMargin = decimal.NewNullDecimal(decimal.NewFromInt(50))
			},
			wantErr: ErrInvalidData,
		},
		{
			name:    "duplicate ingredient id",
			mutate:  func(s *Snapshot) { s.Ingredients = append(s.Ingredients, s.Ingredients[0]) },
			wantErr: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSnapshotValidateNamesField(t *testing.T) {
	s := validSnapshot()
	s.Recipes[0].Servings = 0

	var verr *ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "servings", verr.Field)
}
