package api

import (
	"net/http"
	"strconv"

	"github.com/mesh-intelligence/recipecost/internal/report"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Options lists the closed enumerations clients build forms from.
type Options struct {
	Units         []types.Unit        `json:"units"`
	Allergens     []types.Allergen    `json:"allergens"`
	Categories    []types.Category    `json:"categories"`
	Subcategories []types.Subcategory `json:"subcategories"`
	Equipment     []types.Equipment   `json:"equipment"`
	SortBy        []types.SortBy      `json:"sortBy"`
}

// handleSummary handles GET /api/reports/summary?limit=N
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	limit := s.config.SummaryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest,
				"limit must be a positive integer", false, map[string]any{"param": "limit"})
			return
		}
		limit = n
	}

	recipes, err := s.store.GetRecipes(types.RecipeFilter{})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	ingredients, err := s.store.ListIngredients()
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report.Summarize(recipes, ingredients, limit))
}

// handleOptions handles GET /api/options
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Options{
		Units:         types.Units,
		Allergens:     types.Allergens,
		Categories:    types.Categories,
		Subcategories: types.Subcategories,
		Equipment:     types.EquipmentTypes,
		SortBy:        []types.SortBy{types.SortName, types.SortCostLow, types.SortCostHigh, types.SortMargin},
	})
}
