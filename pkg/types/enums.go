package types

import "slices"

// Unit is a unit of measure. No conversion is performed between units.
type Unit string

// Units of measure.
const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMillilitre Unit = "ml"
	UnitCentilitre Unit = "cl"
	UnitLitre      Unit = "L"
	UnitPiece      Unit = "pcs"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
	UnitCup        Unit = "cup"
	UnitOunce      Unit = "oz"
)

// Units lists every unit in display order.
var Units = []Unit{
	UnitGram, UnitKilogram, UnitMillilitre, UnitCentilitre, UnitLitre,
	UnitPiece, UnitTablespoon, UnitTeaspoon, UnitCup, UnitOunce,
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool { return slices.Contains(Units, u) }

// Allergen is an allergen tag. AllergenNone is a sentinel that cannot be
// combined with other tags.
type Allergen string

// Allergen tags.
const (
	AllergenGluten      Allergen = "gluten"
	AllergenCrustaceans Allergen = "crustaceans"
	AllergenEggs        Allergen = "eggs"
	AllergenFish        Allergen = "fish"
	AllergenPeanuts     Allergen = "peanuts"
	AllergenSoybeans    Allergen = "soybeans"
	AllergenMilk        Allergen = "milk"
	AllergenNuts        Allergen = "nuts"
	AllergenCelery      Allergen = "celery"
	AllergenMustard     Allergen = "mustard"
	AllergenSesame      Allergen = "sesame"
	AllergenSulphites   Allergen = "sulphites"
	AllergenLupin       Allergen = "lupin"
	AllergenMolluscs    Allergen = "molluscs"
	AllergenNone        Allergen = "none"
)

// Allergens lists every allergen tag in display order.
var Allergens = []Allergen{
	AllergenGluten, AllergenCrustaceans, AllergenEggs, AllergenFish,
	AllergenPeanuts, AllergenSoybeans, AllergenMilk, AllergenNuts,
	AllergenCelery, AllergenMustard, AllergenSesame, AllergenSulphites,
	AllergenLupin, AllergenMolluscs, AllergenNone,
}

// Valid reports whether a is a known allergen tag.
func (a Allergen) Valid() bool { return slices.Contains(Allergens, a) }

// Category is the kind of dish or drink.
type Category string

// Recipe categories.
const (
	CategoryMain      Category = "main"
	CategoryAppetizer Category = "appetizer"
	CategoryDessert   Category = "dessert"
	CategoryCocktail  Category = "cocktail"
	CategoryBeverage  Category = "beverage"
	CategorySalad     Category = "salad"
	CategorySauce     Category = "sauce"
	CategorySoup      Category = "soup"
	CategorySide      Category = "side"
	CategoryBreakfast Category = "breakfast"
)

// Categories lists every recipe category in display order.
var Categories = []Category{
	CategoryMain, CategoryAppetizer, CategoryDessert, CategoryCocktail,
	CategoryBeverage, CategorySalad, CategorySauce, CategorySoup,
	CategorySide, CategoryBreakfast,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return slices.Contains(Categories, c) }

// Subcategory refines a category by cuisine, diet or base spirit.
type Subcategory string

// Subcategories lists every subcategory in display order.
var Subcategories = []Subcategory{
	"italian", "french", "asian", "mexican", "american", "spanish", "greek",
	"japanese", "indian", "thai", "middle_eastern", "vegan", "vegetarian",
	"gluten_free", "fusion", "rum", "vodka", "gin", "whiskey", "tequila",
	"wine", "none",
}

// Valid reports whether s is a known subcategory.
func (s Subcategory) Valid() bool { return slices.Contains(Subcategories, s) }

// Equipment is a kitchen or bar tool a recipe needs.
type Equipment string

// EquipmentTypes lists every equipment tag in display order.
var EquipmentTypes = []Equipment{
	"pot", "pan", "skillet", "oven", "mixer", "blender", "food_processor",
	"grill", "knife", "cutting_board", "measuring_cups", "measuring_spoons",
	"colander", "grater", "shaker", "jigger", "strainer", "muddler",
	"bar_spoon",
}

// Valid reports whether e is a known equipment tag.
func (e Equipment) Valid() bool { return slices.Contains(EquipmentTypes, e) }

// NormalizeAllergens validates tags and removes duplicates, keeping first
// occurrence order. An empty or nil list becomes [none].
func NormalizeAllergens(tags []Allergen) ([]Allergen, error) {
	out := make([]Allergen, 0, len(tags))
	for _, a := range tags {
		if !a.Valid() {
			return nil, invalid("allergens", "unknown allergen %q", a)
		}
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return []Allergen{AllergenNone}, nil
	}
	if len(out) > 1 && slices.Contains(out, AllergenNone) {
		return nil, invalid("allergens", "%q cannot be combined with other allergens", AllergenNone)
	}
	return out, nil
}

// NormalizeEquipment validates tags and removes duplicates. Nil stays nil.
func NormalizeEquipment(tags []Equipment) ([]Equipment, error) {
	if tags == nil {
		return nil, nil
	}
	out := make([]Equipment, 0, len(tags))
	for _, e := range tags {
		if !e.Valid() {
			return nil, invalid("equipment", "unknown equipment %q", e)
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out, nil
}
