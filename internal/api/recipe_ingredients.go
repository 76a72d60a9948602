package api

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// RecipeCosts carries a recipe's derived cost fields after a row change.
type RecipeCosts struct {
	TotalCost      decimal.NullDecimal `json:"totalCost"`
	CostPerServing decimal.NullDecimal `json:"costPerServing"`
	ProfitMargin   decimal.NullDecimal `json:"profitMargin"`
}

// RecipeIngredientResponse answers POST and PATCH on recipe ingredients.
type RecipeIngredientResponse struct {
	RecipeIngredient types.RecipeIngredient `json:"recipeIngredient"`
	RecipeCosts      RecipeCosts            `json:"recipeCosts"`
}

// RemoveRecipeIngredientResponse answers DELETE on a recipe ingredient.
type RemoveRecipeIngredientResponse struct {
	Success     bool        `json:"success"`
	RecipeCosts RecipeCosts `json:"recipeCosts"`
}

// costsOf extracts the derived cost fields of a recipe.
func costsOf(r types.Recipe) RecipeCosts {
	return RecipeCosts{
		TotalCost:      r.TotalCost,
		CostPerServing: r.CostPerServing,
		ProfitMargin:   r.ProfitMargin,
	}
}

// listRecipeIngredients handles GET /api/recipes/{id}/ingredients
func (s *Server) listRecipeIngredients(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := s.store.GetRecipeIngredients(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// addRecipeIngredient handles POST /api/recipes/{id}/ingredients
func (s *Server) addRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in types.RecipeIngredientInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	c, err := s.store.AddIngredientToRecipeCosted(id, in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, RecipeIngredientResponse{RecipeIngredient: c.Row, RecipeCosts: costsOf(c.Recipe)})
}

// updateRecipeIngredient handles PATCH /api/recipe-ingredients/{id}
func (s *Server) updateRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p types.RecipeIngredientPatch
	if !decodeOrReject(w, r, &p) {
		return
	}
	c, err := s.store.UpdateRecipeIngredientCosted(id, p)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, RecipeIngredientResponse{RecipeIngredient: c.Row, RecipeCosts: costsOf(c.Recipe)})
}

// removeRecipeIngredient handles DELETE /api/recipe-ingredients/{id}. It
// answers with the recipe's costs after the removal.
func (s *Server) removeRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, removed, err := s.store.RemoveIngredientFromRecipeCosted(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !removed {
		writeNotFound(w, r, fmt.Errorf("recipe ingredient %d: %w", id, types.ErrRecipeIngredientNotFound))
		return
	}
	respondJSON(w, http.StatusOK, RemoveRecipeIngredientResponse{Success: true, RecipeCosts: costsOf(c.Recipe)})
}
