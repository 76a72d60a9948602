package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// rowResult is the JSON answer of a recipe ingredient change: the row and
// the recipe it belongs to with its recomputed costs.
type rowResult struct {
	RecipeIngredient *types.RecipeIngredient `json:"recipeIngredient,omitempty"`
	Recipe           types.Recipe            `json:"recipe"`
}

func (a *app) newRecipeIngredientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredient",
		Short: "Manage the ingredient rows of a recipe",
	}
	cmd.AddCommand(
		a.newRowAddCmd(),
		a.newRowUpdateCmd(),
		a.newRowRemoveCmd(),
	)
	return cmd
}

// rowFlags are the editable fields of a recipe ingredient row.
type rowFlags struct {
	ingredientID int64
	quantity     string
	unit         string
}

func (f *rowFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.ingredientID, "ingredient", 0, "ingredient id")
	cmd.Flags().StringVar(&f.quantity, "quantity", "", "amount used, e.g. 150")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of the quantity")
}

func printRowResult(w io.Writer, verb string, res rowResult) {
	if ri := res.RecipeIngredient; ri != nil {
		fmt.Fprintf(w, "%s row %d: ingredient %d, %s %s\n", verb, ri.ID, ri.IngredientID, ri.Quantity.String(), ri.Unit)
	}
	fmt.Fprintf(w, "Recipe %d (%s)\n", res.Recipe.ID, res.Recipe.Name)
	fmt.Fprintf(w, "Total cost:\t%s\n", nullable(res.Recipe.TotalCost, 2))
	fmt.Fprintf(w, "Cost per serving:\t%s\n", nullable(res.Recipe.CostPerServing, 2))
	fmt.Fprintf(w, "Profit margin:\t%s%%\n", nullable(res.Recipe.ProfitMargin, 1))
}

func (a *app) newRowAddCmd() *cobra.Command {
	var f rowFlags
	cmd := &cobra.Command{
		Use:     "add <recipe-id>",
		Short:   "Add an ingredient to a recipe",
		Example: `  recipecost recipe ingredient add 1 --ingredient 3 --quantity 150 --unit g`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			if f.quantity == "" {
				return fmt.Errorf("%w: --quantity is required", errUsage)
			}
			qty, err := parseDecimal("quantity", f.quantity)
			if err != nil {
				return err
			}
			in := types.RecipeIngredientInput{IngredientID: f.ingredientID, Quantity: qty, Unit: types.Unit(f.unit)}
			return a.withStore(func(st types.Store) error {
				c, err := st.AddIngredientToRecipeCosted(recipeID, in)
				if err != nil {
					return err
				}
				res := rowResult{RecipeIngredient: &c.Row, Recipe: c.Recipe}
				return a.render(cmd, res, func(w io.Writer) { printRowResult(w, "Added", res) })
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newRowUpdateCmd() *cobra.Command {
	var f rowFlags
	cmd := &cobra.Command{
		Use:   "update <row-id>",
		Short: "Change an ingredient row of a recipe",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe ingredient", args[0])
			if err != nil {
				return err
			}
			var p types.RecipeIngredientPatch
			changed := cmd.Flags().Changed
			if changed("ingredient") {
				p.IngredientID = &f.ingredientID
			}
			if changed("quantity") {
				qty, err := parseDecimal("quantity", f.quantity)
				if err != nil {
					return err
				}
				p.Quantity = &qty
			}
			if changed("unit") {
				u := types.Unit(f.unit)
				p.Unit = &u
			}
			return a.withStore(func(st types.Store) error {
				c, err := st.UpdateRecipeIngredientCosted(id, p)
				if err != nil {
					return err
				}
				res := rowResult{RecipeIngredient: &c.Row, Recipe: c.Recipe}
				return a.render(cmd, res, func(w io.Writer) { printRowResult(w, "Updated", res) })
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newRowRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <row-id>",
		Short: "Remove an ingredient row from a recipe",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe ingredient", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				c, removed, err := st.RemoveIngredientFromRecipeCosted(id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("recipe ingredient %d: %w", id, types.ErrRecipeIngredientNotFound)
				}
				res := rowResult{Recipe: c.Recipe}
				return a.render(cmd, res, func(w io.Writer) {
					fmt.Fprintf(w, "Removed row %d\n", id)
					printRowResult(w, "", res)
				})
			})
		},
	}
}
