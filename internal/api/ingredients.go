package api

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// listIngredients handles GET /api/ingredients
func (s *Server) listIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := s.store.ListIngredients()
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ings)
}

// getIngredient handles GET /api/ingredients/{id}
func (s *Server) getIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ing, found, err := s.store.GetIngredient(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, fmt.Errorf("ingredient %d: %w", id, types.ErrIngredientNotFound))
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

// createIngredient handles POST /api/ingredients
func (s *Server) createIngredient(w http.ResponseWriter, r *http.Request) {
	var in types.IngredientInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	ing, err := s.store.CreateIngredient(in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ing)
}

// updateIngredient handles PATCH /api/ingredients/{id}
func (s *Server) updateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p types.IngredientPatch
	if !decodeOrReject(w, r, &p) {
		return
	}
	ing, err := s.store.UpdateIngredient(id, p)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

// deleteIngredient handles DELETE /api/ingredients/{id}
func (s *Server) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	removed, err := s.store.DeleteIngredient(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !removed {
		writeNotFound(w, r, fmt.Errorf("ingredient %d: %w", id, types.ErrIngredientNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
