package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes and middleware.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no middleware)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, s.withMiddleware(h))
	}

	handle("GET /api/ingredients", s.listIngredients)
	handle("POST /api/ingredients", s.createIngredient)
	handle("GET /api/ingredients/{id}", s.getIngredient)
	handle("PATCH /api/ingredients/{id}", s.updateIngredient)
	handle("DELETE /api/ingredients/{id}", s.deleteIngredient)

	handle("GET /api/recipes", s.listRecipes)
	handle("POST /api/recipes", s.createRecipe)
	handle("GET /api/recipes/{id}", s.getRecipe)
	handle("PATCH /api/recipes/{id}", s.updateRecipe)
	handle("DELETE /api/recipes/{id}", s.deleteRecipe)
	handle("POST /api/recipes/{id}/costs", s.calculateRecipeCosts)

	handle("GET /api/recipes/{id}/ingredients", s.listRecipeIngredients)
	handle("POST /api/recipes/{id}/ingredients", s.addRecipeIngredient)
	handle("PATCH /api/recipe-ingredients/{id}", s.updateRecipeIngredient)
	handle("DELETE /api/recipe-ingredients/{id}", s.removeRecipeIngredient)

	handle("GET /api/recipes/{id}/steps", s.listSteps)
	handle("POST /api/recipes/{id}/steps", s.addStep)
	handle("PATCH /api/steps/{id}", s.updateStep)
	handle("DELETE /api/steps/{id}", s.deleteStep)

	handle("GET /api/reports/summary", s.handleSummary)
	handle("GET /api/options", s.handleOptions)

	return mux
}
