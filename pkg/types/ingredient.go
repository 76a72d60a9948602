package types

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Ingredient is a priced raw material.
type Ingredient struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Unit      Unit            `json:"unit"`
	Allergens []Allergen      `json:"allergens"`
	Supplier  *string         `json:"supplier"`
	Notes     *string         `json:"notes"`
}

// Clone returns a deep copy of the ingredient.
func (i Ingredient) Clone() Ingredient {
	i.Allergens = slices.Clone(i.Allergens)
	i.Supplier = cloneString(i.Supplier)
	i.Notes = cloneString(i.Notes)
	return i
}

// Validate applies the checks of CreateIngredient to a stored ingredient.
func (i Ingredient) Validate() error {
	_, err := IngredientInput{
		Name:      i.Name,
		UnitCost:  i.UnitCost,
		Unit:      i.Unit,
		Allergens: i.Allergens,
	}.Normalize()
	return err
}

// IngredientInput carries the fields of a new ingredient.
type IngredientInput struct {
	Name      string          `json:"name"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Unit      Unit            `json:"unit"`
	Allergens []Allergen      `json:"allergens"`
	Supplier  *string         `json:"supplier"`
	Notes     *string         `json:"notes"`
}

// Normalize validates the input and returns it with the name trimmed and
// allergens deduplicated.
func (in IngredientInput) Normalize() (IngredientInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("name", "must not be empty")
	}
	if in.UnitCost.IsNegative() {
		return in, invalid("unitCost", "must not be negative")
	}
	if !in.Unit.Valid() {
		return in, invalid("unit", "unknown unit %q", in.Unit)
	}
	allergens, err := NormalizeAllergens(in.Allergens)
	if err != nil {
		return in, err
	}
	in.Allergens = allergens
	in.Supplier = cloneString(in.Supplier)
	in.Notes = cloneString(in.Notes)
	return in, nil
}

// IngredientPatch is a partial update. Nil fields keep the stored value.
type IngredientPatch struct {
	Name      *string          `json:"name"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
	Unit      *Unit            `json:"unit"`
	Allergens []Allergen       `json:"allergens"`
	Supplier  Optional[string] `json:"supplier"`
	Notes     Optional[string] `json:"notes"`
}

// Apply merges the patch into ing and validates the result.
func (p IngredientPatch) Apply(ing Ingredient) (Ingredient, error) {
	out := ing.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.UnitCost != nil {
		out.UnitCost = *p.UnitCost
	}
	if p.Unit != nil {
		out.Unit = *p.Unit
	}
	if p.Allergens != nil {
		out.Allergens = p.Allergens
	}
	p.Supplier.apply(&out.Supplier)
	p.Notes.apply(&out.Notes)

	in, err := IngredientInput{
		Name:      out.Name,
		UnitCost:  out.UnitCost,
		Unit:      out.Unit,
		Allergens: out.Allergens,
		Supplier:  out.Supplier,
		Notes:     out.Notes,
	}.Normalize()
	if err != nil {
		return ing, err
	}
	out.Name = in.Name
	out.Allergens = in.Allergens
	return out, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
