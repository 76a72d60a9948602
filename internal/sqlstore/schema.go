package sqlstore

// SQLite schema. Decimals are stored as TEXT so values round-trip exactly;
// tag sets are JSON arrays.
const (
	createIngredients = `CREATE TABLE IF NOT EXISTS ingredients (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    unit_cost TEXT NOT NULL,
    unit TEXT NOT NULL,
    allergens TEXT NOT NULL,
    supplier TEXT,
    notes TEXT
);`

	createRecipes = `CREATE TABLE IF NOT EXISTS recipes (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    subcategory TEXT,
    servings INTEGER NOT NULL,
    prep_time INTEGER NOT NULL,
    total_cost TEXT,
    cost_per_serving TEXT,
    selling_price TEXT,
    profit_margin TEXT,
    notes TEXT,
    equipment TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRecipeIngredients = `CREATE TABLE IF NOT EXISTS recipe_ingredients (
    id INTEGER PRIMARY KEY,
    recipe_id INTEGER NOT NULL REFERENCES recipes(id),
    ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
    quantity TEXT NOT NULL,
    unit TEXT NOT NULL
);`

	createSteps = `CREATE TABLE IF NOT EXISTS steps (
    id INTEGER PRIMARY KEY,
    recipe_id INTEGER NOT NULL REFERENCES recipes(id),
    step_number INTEGER NOT NULL,
    description TEXT NOT NULL
);`

	createSequences = `CREATE TABLE IF NOT EXISTS sequences (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`
)

// Index DDL.
const (
	idxRecipeIngredientsRecipe = `CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id);`
	idxRecipeIngredientsIngr   = `CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient ON recipe_ingredients(ingredient_id);`
	idxStepsRecipe             = `CREATE INDEX IF NOT EXISTS idx_steps_recipe ON steps(recipe_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createIngredients,
	createRecipes,
	createRecipeIngredients,
	createSteps,
	createSequences,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRecipeIngredientsRecipe,
	idxRecipeIngredientsIngr,
	idxStepsRecipe,
}

// Sequence row names.
const (
	seqIngredient       = "ingredient"
	seqRecipe           = "recipe"
	seqRecipeIngredient = "recipe_ingredient"
	seqStep             = "step"
)
