package types

import "fmt"

// Sequences holds the last identifier issued per entity type. Identifiers
// are never reused, so counters survive deletes and are carried in
// snapshots.
type Sequences struct {
	Ingredient       int64 `json:"ingredient"`
	Recipe           int64 `json:"recipe"`
	RecipeIngredient int64 `json:"recipeIngredient"`
	Step             int64 `json:"step"`
}

// Snapshot is the complete state of a store, in identifier order.
type Snapshot struct {
	Ingredients       []Ingredient       `json:"ingredients"`
	Recipes           []Recipe           `json:"recipes"`
	RecipeIngredients []RecipeIngredient `json:"recipeIngredients"`
	Steps             []Step             `json:"steps"`
	Sequences         Sequences          `json:"sequences"`
}

// Validate checks every entity the way the create operations do, then
// identifier uniqueness, references between rows, step contiguity, and that
// sequences are not behind any identifier in use.
func (s Snapshot) Validate() error {
	ingredients := make(map[int64]bool, len(s.Ingredients))
	for _, ing := range s.Ingredients {
		if ing.ID <= 0 || ingredients[ing.ID] {
			return fmt.Errorf("ingredient %d: %w", ing.ID, ErrInvalidID)
		}
		ingredients[ing.ID] = true
		if err := ing.Validate(); err != nil {
			return fmt.Errorf("ingredient %d: %w", ing.ID, err)
		}
		if ing.ID > s.Sequences.Ingredient {
			return fmt.Errorf("ingredient sequence %d behind id %d: %w", s.Sequences.Ingredient, ing.ID, ErrInvalidData)
		}
	}
	recipes := make(map[int64]bool, len(s.Recipes))
	for _, r := range s.Recipes {
		if r.ID <= 0 || recipes[r.ID] {
			return fmt.Errorf("recipe %d: %w", r.ID, ErrInvalidID)
		}
		recipes[r.ID] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("recipe %d: %w", r.ID, err)
		}
		if r.ID > s.Sequences.Recipe {
			return fmt.Errorf("recipe sequence %d behind id %d: %w", s.Sequences.Recipe, r.ID, ErrInvalidData)
		}
	}
	seen := make(map[int64]bool, len(s.RecipeIngredients))
	for _, ri := range s.RecipeIngredients {
		if ri.ID <= 0 || seen[ri.ID] {
			return fmt.Errorf("recipe ingredient %d: %w", ri.ID, ErrInvalidID)
		}
		seen[ri.ID] = true
		if err := ri.Validate(); err != nil {
			return fmt.Errorf("recipe ingredient %d: %w", ri.ID, err)
		}
		if ri.ID > s.Sequences.RecipeIngredient {
			return fmt.Errorf("recipe ingredient sequence %d behind id %d: %w", s.Sequences.RecipeIngredient, ri.ID, ErrInvalidData)
		}
		if !recipes[ri.RecipeID] {
			return fmt.Errorf("recipe ingredient %d: %w", ri.ID, ErrRecipeNotFound)
		}
		if !ingredients[ri.IngredientID] {
			return fmt.Errorf("recipe ingredient %d: %w", ri.ID, ErrDanglingIngredient)
		}
	}
	clear(seen)
	numbers := make(map[int64][]int)
	for _, st := range s.Steps {
		if st.ID <= 0 || seen[st.ID] {
			return fmt.Errorf("step %d: %w", st.ID, ErrInvalidID)
		}
		seen[st.ID] = true
		if err := st.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", st.ID, err)
		}
		if st.ID > s.Sequences.Step {
			return fmt.Errorf("step sequence %d behind id %d: %w", s.Sequences.Step, st.ID, ErrInvalidData)
		}
		if !recipes[st.RecipeID] {
			return fmt.Errorf("step %d: %w", st.ID, ErrRecipeNotFound)
		}
		numbers[st.RecipeID] = append(numbers[st.RecipeID], st.StepNumber)
	}
	for recipeID, ns := range numbers {
		present := make([]bool, len(ns)+1)
		for _, n := range ns {
			if n < 1 || n > len(ns) || present[n] {
				return fmt.Errorf("recipe %d steps are not numbered 1..%d: %w", recipeID, len(ns), ErrInvalidData)
			}
			present[n] = true
		}
	}
	return nil
}
