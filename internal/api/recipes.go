package api

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// filterFrom reads the recipe list query parameters.
func filterFrom(r *http.Request) types.RecipeFilter {
	q := r.URL.Query()
	return types.RecipeFilter{
		Search:      q.Get("search"),
		Category:    types.Category(q.Get("category")),
		Subcategory: types.Subcategory(q.Get("subcategory")),
		SortBy:      types.SortBy(q.Get("sortBy")),
	}
}

// listRecipes handles GET /api/recipes
func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.store.GetRecipes(filterFrom(r))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipes)
}

// getRecipe handles GET /api/recipes/{id} and answers the full recipe.
func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	full, found, err := s.store.GetFullRecipe(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, fmt.Errorf("recipe %d: %w", id, types.ErrRecipeNotFound))
		return
	}
	respondJSON(w, http.StatusOK, full)
}

// createRecipe handles POST /api/recipes
func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	var in types.RecipeInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	recipe, err := s.store.CreateRecipe(in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

// updateRecipe handles PATCH /api/recipes/{id}
func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p types.RecipePatch
	if !decodeOrReject(w, r, &p) {
		return
	}
	recipe, err := s.store.UpdateRecipe(id, p)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// deleteRecipe handles DELETE /api/recipes/{id}
func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	removed, err := s.store.DeleteRecipe(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !removed {
		writeNotFound(w, r, fmt.Errorf("recipe %d: %w", id, types.ErrRecipeNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// calculateRecipeCosts handles POST /api/recipes/{id}/costs
func (s *Server) calculateRecipeCosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	costs, err := s.store.CalculateRecipeCosts(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, costs)
}
