package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// loadSnapshot reads every table into a snapshot, each collection in
// identifier order.
func loadSnapshot(db *sql.DB) (types.Snapshot, error) {
	var snap types.Snapshot
	var err error

	if snap.Ingredients, err = loadIngredients(db); err != nil {
		return snap, err
	}
	if snap.Recipes, err = loadRecipes(db); err != nil {
		return snap, err
	}
	if snap.RecipeIngredients, err = loadRecipeIngredients(db); err != nil {
		return snap, err
	}
	if snap.Steps, err = loadSteps(db); err != nil {
		return snap, err
	}
	if snap.Sequences, err = loadSequences(db); err != nil {
		return snap, err
	}
	return snap, nil
}

func loadIngredients(db *sql.DB) ([]types.Ingredient, error) {
	rows, err := db.Query("SELECT id, name, unit_cost, unit, allergens, supplier, notes FROM ingredients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var out []types.Ingredient
	for rows.Next() {
		var (
			ing             types.Ingredient
			unitCost, unit  string
			allergens       string
			supplier, notes sql.NullString
		)
		if err := rows.Scan(&ing.ID, &ing.Name, &unitCost, &unit, &allergens, &supplier, &notes); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		if ing.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
			return nil, fmt.Errorf("parsing unit cost of ingredient %d: %w", ing.ID, err)
		}
		if err := json.Unmarshal([]byte(allergens), &ing.Allergens); err != nil {
			return nil, fmt.Errorf("parsing allergens of ingredient %d: %w", ing.ID, err)
		}
		ing.Unit = types.Unit(unit)
		ing.Supplier = stringPtr(supplier)
		ing.Notes = stringPtr(notes)
		out = append(out, ing)
	}
	return out, rows.Err()
}

func loadRecipes(db *sql.DB) ([]types.Recipe, error) {
	rows, err := db.Query(`SELECT id, name, category, subcategory, servings, prep_time,
        total_cost, cost_per_serving, selling_price, profit_margin, notes, equipment,
        created_at, updated_at FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var out []types.Recipe
	for rows.Next() {
		var (
			r                                types.Recipe
			category                         string
			sub, notes, equipment            sql.NullString
			total, perServing, price, margin sql.NullString
			createdAt, updatedAt             string
		)
		if err := rows.Scan(&r.ID, &r.Name, &category, &sub, &r.Servings, &r.PrepTime,
			&total, &perServing, &price, &margin, &notes, &equipment,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		r.Category = types.Category(category)
		if sub.Valid {
			s := types.Subcategory(sub.String)
			r.Subcategory = &s
		}
		r.Notes = stringPtr(notes)
		if equipment.Valid {
			if err := json.Unmarshal([]byte(equipment.String), &r.Equipment); err != nil {
				return nil, fmt.Errorf("parsing equipment of recipe %d: %w", r.ID, err)
			}
		}
		for _, f := range []struct {
			col sql.NullString
			dst *decimal.NullDecimal
		}{
			{total, &r.TotalCost},
			{perServing, &r.CostPerServing},
			{price, &r.SellingPrice},
			{margin, &r.ProfitMargin},
		} {
			if *f.dst, err = parseNullDecimal(f.col); err != nil {
				return nil, fmt.Errorf("parsing decimal of recipe %d: %w", r.ID, err)
			}
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of recipe %d: %w", r.ID, err)
		}
		if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at of recipe %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func loadRecipeIngredients(db *sql.DB) ([]types.RecipeIngredient, error) {
	rows, err := db.Query("SELECT id, recipe_id, ingredient_id, quantity, unit FROM recipe_ingredients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying recipe ingredients: %w", err)
	}
	defer rows.Close()

	var out []types.RecipeIngredient
	for rows.Next() {
		var (
			ri             types.RecipeIngredient
			quantity, unit string
		)
		if err := rows.Scan(&ri.ID, &ri.RecipeID, &ri.IngredientID, &quantity, &unit); err != nil {
			return nil, fmt.Errorf("scanning recipe ingredient: %w", err)
		}
		if ri.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("parsing quantity of recipe ingredient %d: %w", ri.ID, err)
		}
		ri.Unit = types.Unit(unit)
		out = append(out, ri)
	}
	return out, rows.Err()
}

func loadSteps(db *sql.DB) ([]types.Step, error) {
	rows, err := db.Query("SELECT id, recipe_id, step_number, description FROM steps ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var out []types.Step
	for rows.Next() {
		var st types.Step
		if err := rows.Scan(&st.ID, &st.RecipeID, &st.StepNumber, &st.Description); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func loadSequences(db *sql.DB) (types.Sequences, error) {
	var seq types.Sequences
	rows, err := db.Query("SELECT name, value FROM sequences")
	if err != nil {
		return seq, fmt.Errorf("querying sequences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			value int64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return seq, fmt.Errorf("scanning sequence: %w", err)
		}
		switch name {
		case seqIngredient:
			seq.Ingredient = value
		case seqRecipe:
			seq.Recipe = value
		case seqRecipeIngredient:
			seq.RecipeIngredient = value
		case seqStep:
			seq.Step = value
		}
	}
	return seq, rows.Err()
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func parseNullDecimal(s sql.NullString) (decimal.NullDecimal, error) {
	if !s.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
