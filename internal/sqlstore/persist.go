package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// dialect selects placeholder syntax.
type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Insert statements, in dependency order.
const (
	insertIngredient       = `INSERT INTO ingredients (id, name, unit_cost, unit, allergens, supplier, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertRecipe           = `INSERT INTO recipes (id, name, category, subcategory, servings, prep_time, total_cost, cost_per_serving, selling_price, profit_margin, notes, equipment, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertRecipeIngredient = `INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, unit) VALUES (?, ?, ?, ?, ?)`
	insertStep             = `INSERT INTO steps (id, recipe_id, step_number, description) VALUES (?, ?, ?, ?)`
	insertSequence         = `INSERT INTO sequences (name, value) VALUES (?, ?)`
)

// clearOrder deletes children before parents.
var clearOrder = []string{"steps", "recipe_ingredients", "recipes", "ingredients", "sequences"}

// writeSnapshot replaces every table's contents with snap in one
// transaction.
func writeSnapshot(db *sql.DB, d dialect, snap types.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning persist transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range clearOrder {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, ing := range snap.Ingredients {
		allergens, err := json.Marshal(ing.Allergens)
		if err != nil {
			return fmt.Errorf("encoding allergens of ingredient %d: %w", ing.ID, err)
		}
		if _, err := tx.Exec(d.rebind(insertIngredient),
			ing.ID, ing.Name, ing.UnitCost.String(), string(ing.Unit), string(allergens),
			nullString(ing.Supplier), nullString(ing.Notes),
		); err != nil {
			return fmt.Errorf("inserting ingredient %d: %w", ing.ID, err)
		}
	}

	for _, r := range snap.Recipes {
		var equipment sql.NullString
		if r.Equipment != nil {
			data, err := json.Marshal(r.Equipment)
			if err != nil {
				return fmt.Errorf("encoding equipment of recipe %d: %w", r.ID, err)
			}
			equipment = sql.NullString{String: string(data), Valid: true}
		}
		var sub sql.NullString
		if r.Subcategory != nil {
			sub = sql.NullString{String: string(*r.Subcategory), Valid: true}
		}
		if _, err := tx.Exec(d.rebind(insertRecipe),
			r.ID, r.Name, string(r.Category), sub, r.Servings, r.PrepTime,
			nullDecimal(r.TotalCost), nullDecimal(r.CostPerServing),
			nullDecimal(r.SellingPrice), nullDecimal(r.ProfitMargin),
			nullString(r.Notes), equipment,
			r.CreatedAt.UTC().Format(time.RFC3339Nano), r.UpdatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("inserting recipe %d: %w", r.ID, err)
		}
	}

	for _, ri := range snap.RecipeIngredients {
		if _, err := tx.Exec(d.rebind(insertRecipeIngredient),
			ri.ID, ri.RecipeID, ri.IngredientID, ri.Quantity.String(), string(ri.Unit),
		); err != nil {
			return fmt.Errorf("inserting recipe ingredient %d: %w", ri.ID, err)
		}
	}

	for _, st := range snap.Steps {
		if _, err := tx.Exec(d.rebind(insertStep), st.ID, st.RecipeID, st.StepNumber, st.Description); err != nil {
			return fmt.Errorf("inserting step %d: %w", st.ID, err)
		}
	}

	for name, value := range map[string]int64{
		seqIngredient:       snap.Sequences.Ingredient,
		seqRecipe:           snap.Sequences.Recipe,
		seqRecipeIngredient: snap.Sequences.RecipeIngredient,
		seqStep:             snap.Sequences.Step,
	} {
		if _, err := tx.Exec(d.rebind(insertSequence), name, value); err != nil {
			return fmt.Errorf("inserting sequence %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing persist transaction: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDecimal(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}
