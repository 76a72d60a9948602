package cli

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/internal/costing"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage recipes and their costs",
	}
	cmd.AddCommand(
		a.newRecipeListCmd(),
		a.newRecipeShowCmd(),
		a.newRecipeCreateCmd(),
		a.newRecipeUpdateCmd(),
		a.newRecipeDeleteCmd(),
		a.newRecipeCostCmd(),
		a.newRecipeIngredientCmd(),
		a.newRecipeStepCmd(),
	)
	return cmd
}

// recipeFlags are the editable fields of a recipe.
type recipeFlags struct {
	name         string
	category     string
	subcategory  string
	servings     int
	prepTime     int
	sellingPrice string
	notes        string
	equipment    []string
}

func (f *recipeFlags) register(cmd *cobra.Command, servingsDefault int) {
	cmd.Flags().StringVar(&f.name, "name", "", "recipe name")
	cmd.Flags().StringVar(&f.category, "category", "", "category (main, appetizer, dessert, cocktail, ...)")
	cmd.Flags().StringVar(&f.subcategory, "subcategory", "", "cuisine, diet or base spirit; empty clears it on update")
	cmd.Flags().IntVar(&f.servings, "servings", servingsDefault, "number of servings the recipe yields")
	cmd.Flags().IntVar(&f.prepTime, "prep-time", 0, "preparation time in minutes")
	cmd.Flags().StringVar(&f.sellingPrice, "selling-price", "", "price of one serving; empty clears it on update")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes; empty clears them on update")
	cmd.Flags().StringSliceVar(&f.equipment, "equipment", nil, "equipment tag, repeatable or comma separated")
}

func (f *recipeFlags) input(cmd *cobra.Command) (types.RecipeInput, error) {
	in := types.RecipeInput{
		Name:      f.name,
		Category:  types.Category(f.category),
		Servings:  f.servings,
		PrepTime:  f.prepTime,
		Equipment: equipment(f.equipment),
	}
	if f.subcategory != "" {
		sub := types.Subcategory(f.subcategory)
		in.Subcategory = &sub
	}
	if f.sellingPrice != "" {
		price, err := parseDecimal("selling-price", f.sellingPrice)
		if err != nil {
			return in, err
		}
		in.SellingPrice = &price
	}
	if cmd.Flags().Changed("notes") {
		in.Notes = &f.notes
	}
	return in, nil
}

func (f *recipeFlags) patch(cmd *cobra.Command) (types.RecipePatch, error) {
	var p types.RecipePatch
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = &f.name
	}
	if changed("category") {
		c := types.Category(f.category)
		p.Category = &c
	}
	if changed("subcategory") {
		if f.subcategory == "" {
			p.Subcategory = types.Null[types.Subcategory]()
		} else {
			p.Subcategory = types.Some(types.Subcategory(f.subcategory))
		}
	}
	if changed("servings") {
		p.Servings = &f.servings
	}
	if changed("prep-time") {
		p.PrepTime = &f.prepTime
	}
	if changed("selling-price") {
		if f.sellingPrice == "" {
			p.SellingPrice = types.Null[decimal.Decimal]()
		} else {
			price, err := parseDecimal("selling-price", f.sellingPrice)
			if err != nil {
				return p, err
			}
			p.SellingPrice = types.Some(price)
		}
	}
	if changed("notes") {
		p.Notes = optionalString(f.notes)
	}
	if changed("equipment") {
		p.Equipment = equipment(f.equipment)
		if p.Equipment == nil {
			p.Equipment = []types.Equipment{}
		}
	}
	return p, nil
}

func equipment(raw []string) []types.Equipment {
	if len(raw) == 0 {
		return nil
	}
	out := make([]types.Equipment, len(raw))
	for i, r := range raw {
		out[i] = types.Equipment(r)
	}
	return out
}

func (a *app) newRecipeListCmd() *cobra.Command {
	var f types.RecipeFilter
	var sortBy, category, subcategory string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Example: `  recipecost recipe list --category cocktail --sort margin
  recipecost recipe list --search carbonara`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Category = types.Category(category)
			f.Subcategory = types.Subcategory(subcategory)
			f.SortBy = types.SortBy(sortBy)
			return a.withStore(func(st types.Store) error {
				recipes, err := st.GetRecipes(f)
				if err != nil {
					return err
				}
				return a.render(cmd, recipes, func(w io.Writer) { printRecipes(w, recipes) })
			})
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive substring of the name")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "only this subcategory")
	cmd.Flags().StringVar(&sortBy, "sort", "", "order: name, cost_low, cost_high or margin")
	return cmd
}

func printRecipes(w io.Writer, recipes []types.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSERVINGS\tTOTAL\tPER SERVING\tPRICE\tMARGIN %")
	for _, r := range recipes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, truncate(r.Name, 40), r.Category, r.Servings,
			nullable(r.TotalCost, 2), nullable(r.CostPerServing, 2),
			nullable(r.SellingPrice, 2), nullable(r.ProfitMargin, 1))
	}
	fmt.Fprintf(w, "Total: %d recipe(s)\n", len(recipes))
}

func printRecipe(w io.Writer, r types.Recipe) {
	sub := "-"
	if r.Subcategory != nil {
		sub = string(*r.Subcategory)
	}
	fmt.Fprintf(w, "ID:\t%d\n", r.ID)
	fmt.Fprintf(w, "Name:\t%s\n", r.Name)
	fmt.Fprintf(w, "Category:\t%s / %s\n", r.Category, sub)
	fmt.Fprintf(w, "Servings:\t%d\n", r.Servings)
	fmt.Fprintf(w, "Prep time:\t%d min\n", r.PrepTime)
	fmt.Fprintf(w, "Equipment:\t%s\n", joinTags(r.Equipment))
	fmt.Fprintf(w, "Total cost:\t%s\n", nullable(r.TotalCost, 2))
	fmt.Fprintf(w, "Cost per serving:\t%s\n", nullable(r.CostPerServing, 2))
	fmt.Fprintf(w, "Selling price:\t%s\n", nullable(r.SellingPrice, 2))
	fmt.Fprintf(w, "Profit margin:\t%s%%\n", nullable(r.ProfitMargin, 1))
	fmt.Fprintf(w, "Notes:\t%s\n", orDash(r.Notes))
}

func printFullRecipe(w io.Writer, full types.FullRecipe) {
	printRecipe(w, full.Recipe)

	fmt.Fprintln(w)
	if len(full.Ingredients) == 0 {
		fmt.Fprintln(w, "No ingredients.")
	} else {
		fmt.Fprintln(w, "ROW\tINGREDIENT\tQUANTITY\tUNIT\tLINE COST")
		for _, d := range full.Ingredients {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				d.ID, d.Ingredient.Name, d.Quantity.String(), d.Unit, d.LineCost().StringFixed(2))
		}
	}

	fmt.Fprintln(w)
	if len(full.Steps) == 0 {
		fmt.Fprintln(w, "No steps.")
		return
	}
	for _, s := range full.Steps {
		fmt.Fprintf(w, "%d.\t%s\t(step %d)\n", s.StepNumber, s.Description, s.ID)
	}
}

func (a *app) newRecipeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with its ingredients and steps",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				full, found, err := st.GetFullRecipe(id)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("recipe %d: %w", id, types.ErrRecipeNotFound)
				}
				return a.render(cmd, full, func(w io.Writer) { printFullRecipe(w, full) })
			})
		},
	}
}

func (a *app) newRecipeCreateCmd() *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a recipe",
		Example: `  recipecost recipe create --name Carbonara --category main --subcategory italian --servings 2 --prep-time 20 --selling-price 14.50`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input(cmd)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				r, err := st.CreateRecipe(in)
				if err != nil {
					return err
				}
				return a.render(cmd, r, func(w io.Writer) {
					fmt.Fprintf(w, "Created recipe %d (%s)\n", r.ID, r.Name)
				})
			})
		},
	}
	f.register(cmd, 1)
	return cmd
}

func (a *app) newRecipeUpdateCmd() *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a recipe",
		Long: "Change the fields given as flags. New servings or a new selling price\n" +
			"recompute the recipe's costs.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			p, err := f.patch(cmd)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				r, err := st.UpdateRecipe(id, p)
				if err != nil {
					return err
				}
				return a.render(cmd, r, func(w io.Writer) { printRecipe(w, r) })
			})
		},
	}
	f.register(cmd, 0)
	return cmd
}

func (a *app) newRecipeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe with its ingredient rows and steps",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				removed, err := st.DeleteRecipe(id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("recipe %d: %w", id, types.ErrRecipeNotFound)
				}
				return a.render(cmd, map[string]any{"deleted": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted recipe %d\n", id)
				})
			})
		},
	}
}

func (a *app) newRecipeCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost <id>",
		Short: "Recompute and store a recipe's costs",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				costs, err := st.CalculateRecipeCosts(id)
				if err != nil {
					return err
				}
				return a.render(cmd, costs, func(w io.Writer) { printCosts(w, costs) })
			})
		},
	}
}

func printCosts(w io.Writer, c types.Costs) {
	total, perServing, margin := costing.Display(c)
	if margin == "" {
		margin = "-"
	}
	fmt.Fprintf(w, "Total cost:\t%s\n", total)
	fmt.Fprintf(w, "Cost per serving:\t%s\n", perServing)
	fmt.Fprintf(w, "Profit margin:\t%s%%\n", margin)
}
