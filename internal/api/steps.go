package api

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// listSteps handles GET /api/recipes/{id}/steps
func (s *Server) listSteps(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	steps, err := s.store.GetRecipeSteps(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, steps)
}

// addStep handles POST /api/recipes/{id}/steps. Without a stepNumber the
// step is appended.
func (s *Server) addStep(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in types.StepInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	step, err := s.store.AddStepToRecipe(id, in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, step)
}

// updateStep handles PATCH /api/steps/{id}
func (s *Server) updateStep(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p types.StepPatch
	if !decodeOrReject(w, r, &p) {
		return
	}
	step, err := s.store.UpdateStep(id, p)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, step)
}

// deleteStep handles DELETE /api/steps/{id}
func (s *Server) deleteStep(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	removed, err := s.store.DeleteStep(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !removed {
		writeNotFound(w, r, fmt.Errorf("step %d: %w", id, types.ErrStepNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
