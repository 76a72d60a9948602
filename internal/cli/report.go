package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/internal/report"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newReportCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recipes, margins and ingredient prices",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("%w: --limit must be positive", errUsage)
			}
			return a.withStore(func(st types.Store) error {
				recipes, err := st.GetRecipes(types.RecipeFilter{})
				if err != nil {
					return err
				}
				ings, err := st.ListIngredients()
				if err != nil {
					return err
				}
				sum := report.Summarize(recipes, ings, limit)
				return a.render(cmd, sum, func(w io.Writer) { printSummary(w, sum) })
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", report.DefaultLimit, "length of the top and latest lists")
	return cmd
}

func printSummary(w io.Writer, s report.Summary) {
	fmt.Fprintf(w, "Recipes:\t%d\n", s.RecipeCount)
	fmt.Fprintf(w, "Ingredients:\t%d\n", s.IngredientCount)
	fmt.Fprintf(w, "Costed recipes:\t%d\n", s.CostedCount)
	fmt.Fprintf(w, "Average margin:\t%s%%\n", nullable(s.AverageMargin, 1))
	if s.BestMargin != nil {
		fmt.Fprintf(w, "Best margin:\t%s (%s%%)\n", s.BestMargin.Name, nullable(s.BestMargin.ProfitMargin, 1))
	}
	for _, c := range types.Categories {
		if n := s.ByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %s:\t%d\n", c, n)
		}
	}

	if len(s.TopByMargin) > 0 {
		fmt.Fprintln(w, "\nTop by margin:")
		for _, r := range s.TopByMargin {
			fmt.Fprintf(w, "  %s\t%s%%\n", r.Name, nullable(r.ProfitMargin, 1))
		}
	}
	if len(s.Latest) > 0 {
		fmt.Fprintln(w, "\nLatest:")
		for _, r := range s.Latest {
			fmt.Fprintf(w, "  %s\t%s\n", r.Name, r.CreatedAt.Format("2006-01-02"))
		}
	}
	if len(s.PriciestIngredients) > 0 {
		fmt.Fprintln(w, "\nPriciest ingredients:")
		for _, ing := range s.PriciestIngredients {
			fmt.Fprintf(w, "  %s\t%s/%s\n", ing.Name, ing.UnitCost.String(), ing.Unit)
		}
	}
	if len(s.CostedByCost) > 0 {
		fmt.Fprintln(w, "\nCost per serving:")
		for _, r := range s.CostedByCost {
			fmt.Fprintf(w, "  %s\t%s\n", r.Name, nullable(r.CostPerServing, 2))
		}
	}
}
