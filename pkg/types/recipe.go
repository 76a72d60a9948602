package types

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a named dish or drink. TotalCost and CostPerServing are either
// both null or both set; ProfitMargin is set only when SellingPrice is
// positive.
type Recipe struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Category       Category            `json:"category"`
	Subcategory    *Subcategory        `json:"subcategory"`
	Servings       int                 `json:"servings"`
	PrepTime       int                 `json:"prepTime"`
	TotalCost      decimal.NullDecimal `json:"totalCost"`
	CostPerServing decimal.NullDecimal `json:"costPerServing"`
	SellingPrice   decimal.NullDecimal `json:"sellingPrice"`
	ProfitMargin   decimal.NullDecimal `json:"profitMargin"`
	Notes          *string             `json:"notes"`
	Equipment      []Equipment         `json:"equipment"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	if r.Subcategory != nil {
		s := *r.Subcategory
		r.Subcategory = &s
	}
	r.Notes = cloneString(r.Notes)
	r.Equipment = slices.Clone(r.Equipment)
	return r
}

// Costed reports whether at least one costing pass has run.
func (r Recipe) Costed() bool { return r.TotalCost.Valid }

// Validate applies the checks of CreateRecipe to a stored recipe and checks
// that the derived cost fields are consistent with each other.
func (r Recipe) Validate() error {
	in := RecipeInput{
		Name:        r.Name,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Servings:    r.Servings,
		PrepTime:    r.PrepTime,
		Equipment:   r.Equipment,
	}
	if r.SellingPrice.Valid {
		in.SellingPrice = &r.SellingPrice.Decimal
	}
	if _, err := in.Normalize(); err != nil {
		return err
	}

	if r.TotalCost.Valid != r.CostPerServing.Valid {
		return invalid("costPerServing", "must be set exactly when totalCost is set")
	}
	if r.TotalCost.Valid && (r.TotalCost.Decimal.IsNegative() || r.CostPerServing.Decimal.IsNegative()) {
		return invalid("totalCost", "must not be negative")
	}
	if r.ProfitMargin.Valid {
		if !r.TotalCost.Valid {
			return invalid("profitMargin", "must be null for an uncosted recipe")
		}
		if !r.SellingPrice.Valid || !r.SellingPrice.Decimal.IsPositive() {
			return invalid("profitMargin", "must be null without a positive selling price")
		}
	}
	return nil
}

// SetCosts stores derived cost fields on the recipe.
func (r *Recipe) SetCosts(c Costs) {
	r.TotalCost = decimal.NewNullDecimal(c.TotalCost)
	r.CostPerServing = decimal.NewNullDecimal(c.CostPerServing)
	r.ProfitMargin = c.ProfitMargin
}

// Costs is the result of one costing pass.
type Costs struct {
	TotalCost      decimal.Decimal     `json:"totalCost"`
	CostPerServing decimal.Decimal     `json:"costPerServing"`
	ProfitMargin   decimal.NullDecimal `json:"profitMargin"`
}

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Name         string           `json:"name"`
	Category     Category         `json:"category"`
	Subcategory  *Subcategory     `json:"subcategory"`
	Servings     int              `json:"servings"`
	PrepTime     int              `json:"prepTime"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Notes        *string          `json:"notes"`
	Equipment    []Equipment      `json:"equipment"`
}

// Normalize validates the input and returns it with the name trimmed and
// equipment deduplicated.
func (in RecipeInput) Normalize() (RecipeInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("name", "must not be empty")
	}
	if !in.Category.Valid() {
		return in, invalid("category", "unknown category %q", in.Category)
	}
	if in.Subcategory != nil && !in.Subcategory.Valid() {
		return in, invalid("subcategory", "unknown subcategory %q", *in.Subcategory)
	}
	if in.Servings < 1 {
		return in, invalid("servings", "must be at least 1")
	}
	if in.PrepTime < 1 {
		return in, invalid("prepTime", "must be at least 1 minute")
	}
	if in.SellingPrice != nil && in.SellingPrice.IsNegative() {
		return in, invalid("sellingPrice", "must not be negative")
	}
	equipment, err := NormalizeEquipment(in.Equipment)
	if err != nil {
		return in, err
	}
	in.Equipment = equipment
	return in, nil
}

// Recipe builds an uncosted recipe from the input.
func (in RecipeInput) Recipe(id int64, now time.Time) Recipe {
	r := Recipe{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Servings:    in.Servings,
		PrepTime:    in.PrepTime,
		Notes:       in.Notes,
		Equipment:   in.Equipment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.SellingPrice != nil {
		r.SellingPrice = decimal.NewNullDecimal(*in.SellingPrice)
	}
	return r.Clone()
}

// RecipePatch is a partial update. Nil fields keep the stored value. Derived
// cost fields cannot be patched.
type RecipePatch struct {
	Name         *string                   `json:"name"`
	Category     *Category                 `json:"category"`
	Subcategory  Optional[Subcategory]     `json:"subcategory"`
	Servings     *int                      `json:"servings"`
	PrepTime     *int                      `json:"prepTime"`
	SellingPrice Optional[decimal.Decimal] `json:"sellingPrice"`
	Notes        Optional[string]          `json:"notes"`
	Equipment    []Equipment               `json:"equipment"`
}

// AffectsCosts reports whether applying the patch changes an input of the
// costing pass.
func (p RecipePatch) AffectsCosts() bool {
	return p.Servings != nil || p.SellingPrice.Set
}

// Apply merges the patch into r and validates the result.
func (p RecipePatch) Apply(r Recipe) (Recipe, error) {
	out := r.Clone()
	in := RecipeInput{
		Name:        out.Name,
		Category:    out.Category,
		Subcategory: out.Subcategory,
		Servings:    out.Servings,
		PrepTime:    out.PrepTime,
		Notes:       out.Notes,
		Equipment:   out.Equipment,
	}
	if out.SellingPrice.Valid {
		v := out.SellingPrice.Decimal
		in.SellingPrice = &v
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	p.Subcategory.apply(&in.Subcategory)
	if p.Servings != nil {
		in.Servings = *p.Servings
	}
	if p.PrepTime != nil {
		in.PrepTime = *p.PrepTime
	}
	p.SellingPrice.apply(&in.SellingPrice)
	p.Notes.apply(&in.Notes)
	if p.Equipment != nil {
		in.Equipment = p.Equipment
	}

	in, err := in.Normalize()
	if err != nil {
		return r, err
	}
	out.Name = in.Name
	out.Category = in.Category
	out.Subcategory = in.Subcategory
	out.Servings = in.Servings
	out.PrepTime = in.PrepTime
	out.Notes = in.Notes
	out.Equipment = in.Equipment
	out.SellingPrice = decimal.NullDecimal{}
	if in.SellingPrice != nil {
		out.SellingPrice = decimal.NewNullDecimal(*in.SellingPrice)
	}
	return out, nil
}
