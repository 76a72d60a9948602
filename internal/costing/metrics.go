package costing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recalculations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipecost_cost_recalculations_total",
		Help: "Total number of recipe cost recalculations",
	})

	recalculationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipecost_cost_recalculation_failures_total",
			Help: "Total number of failed recipe cost recalculations by reason",
		},
		[]string{"reason"},
	)
)

// Failure reasons.
const (
	ReasonRecipeNotFound     = "recipe_not_found"
	ReasonDanglingIngredient = "dangling_ingredient"
	ReasonInvalid            = "invalid"
)

// RecordRecalculation counts a successful cost pass.
func RecordRecalculation() {
	recalculations.Inc()
}

// RecordFailure counts a failed cost pass.
func RecordFailure(reason string) {
	recalculationFailures.WithLabelValues(reason).Inc()
}
