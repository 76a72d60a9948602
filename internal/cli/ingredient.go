package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newIngredientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredient",
		Aliases: []string{"ingredients", "ing"},
		Short:   "Manage the ingredient catalogue",
	}
	cmd.AddCommand(
		a.newIngredientListCmd(),
		a.newIngredientGetCmd(),
		a.newIngredientAddCmd(),
		a.newIngredientUpdateCmd(),
		a.newIngredientDeleteCmd(),
	)
	return cmd
}

// ingredientFlags are the editable fields of an ingredient.
type ingredientFlags struct {
	name      string
	unitCost  string
	unit      string
	allergens []string
	supplier  string
	notes     string
}

func (f *ingredientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "ingredient name")
	cmd.Flags().StringVar(&f.unitCost, "unit-cost", "", "cost of one unit, e.g. 0.025")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of measure (g, kg, ml, cl, L, pcs, tbsp, tsp, cup, oz)")
	cmd.Flags().StringSliceVar(&f.allergens, "allergen", nil, "allergen tag, repeatable or comma separated")
	cmd.Flags().StringVar(&f.supplier, "supplier", "", "supplier name; empty clears it on update")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes; empty clears them on update")
}

func (f *ingredientFlags) input(cmd *cobra.Command) (types.IngredientInput, error) {
	in := types.IngredientInput{
		Name:      f.name,
		Unit:      types.Unit(f.unit),
		Allergens: allergens(f.allergens),
	}
	if f.unitCost == "" {
		return in, fmt.Errorf("%w: --unit-cost is required", errUsage)
	}
	cost, err := parseDecimal("unit-cost", f.unitCost)
	if err != nil {
		return in, err
	}
	in.UnitCost = cost
	if cmd.Flags().Changed("supplier") {
		in.Supplier = &f.supplier
	}
	if cmd.Flags().Changed("notes") {
		in.Notes = &f.notes
	}
	return in, nil
}

func (f *ingredientFlags) patch(cmd *cobra.Command) (types.IngredientPatch, error) {
	var p types.IngredientPatch
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = &f.name
	}
	if changed("unit-cost") {
		cost, err := parseDecimal("unit-cost", f.unitCost)
		if err != nil {
			return p, err
		}
		p.UnitCost = &cost
	}
	if changed("unit") {
		u := types.Unit(f.unit)
		p.Unit = &u
	}
	if changed("allergen") {
		p.Allergens = allergens(f.allergens)
		if p.Allergens == nil {
			p.Allergens = []types.Allergen{}
		}
	}
	if changed("supplier") {
		p.Supplier = optionalString(f.supplier)
	}
	if changed("notes") {
		p.Notes = optionalString(f.notes)
	}
	return p, nil
}

func allergens(raw []string) []types.Allergen {
	if len(raw) == 0 {
		return nil
	}
	out := make([]types.Allergen, len(raw))
	for i, r := range raw {
		out[i] = types.Allergen(r)
	}
	return out
}

// optionalString sets s, or clears the field when s is empty.
func optionalString(s string) types.Optional[string] {
	if s == "" {
		return types.Null[string]()
	}
	return types.Some(s)
}

func (a *app) newIngredientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all ingredients",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(st types.Store) error {
				ings, err := st.ListIngredients()
				if err != nil {
					return err
				}
				return a.render(cmd, ings, func(w io.Writer) {
					printIngredients(w, ings)
				})
			})
		},
	}
}

func printIngredients(w io.Writer, ings []types.Ingredient) {
	if len(ings) == 0 {
		fmt.Fprintln(w, "No ingredients found.")
		return
	}
	fmt.Fprintln(w, "ID\tNAME\tUNIT COST\tUNIT\tALLERGENS\tSUPPLIER")
	for _, ing := range ings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			ing.ID, truncate(ing.Name, 40), ing.UnitCost.String(), ing.Unit,
			joinTags(ing.Allergens), orDash(ing.Supplier))
	}
	fmt.Fprintf(w, "Total: %d ingredient(s)\n", len(ings))
}

func printIngredient(w io.Writer, ing types.Ingredient) {
	fmt.Fprintf(w, "ID:\t%d\n", ing.ID)
	fmt.Fprintf(w, "Name:\t%s\n", ing.Name)
	fmt.Fprintf(w, "Unit cost:\t%s per %s\n", ing.UnitCost.String(), ing.Unit)
	fmt.Fprintf(w, "Allergens:\t%s\n", joinTags(ing.Allergens))
	fmt.Fprintf(w, "Supplier:\t%s\n", orDash(ing.Supplier))
	fmt.Fprintf(w, "Notes:\t%s\n", orDash(ing.Notes))
}

func (a *app) newIngredientGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one ingredient",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ingredient", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				ing, found, err := st.GetIngredient(id)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("ingredient %d: %w", id, types.ErrIngredientNotFound)
				}
				return a.render(cmd, ing, func(w io.Writer) { printIngredient(w, ing) })
			})
		},
	}
}

func (a *app) newIngredientAddCmd() *cobra.Command {
	var f ingredientFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an ingredient",
		Example: `  recipecost ingredient add --name Guanciale --unit-cost 0.028 --unit g --allergen none
  recipecost ingredient add --name Eggs --unit-cost 0.25 --unit pcs --allergen eggs --supplier "Local Farm"`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input(cmd)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				ing, err := st.CreateIngredient(in)
				if err != nil {
					return err
				}
				return a.render(cmd, ing, func(w io.Writer) {
					fmt.Fprintf(w, "Created ingredient %d (%s)\n", ing.ID, ing.Name)
				})
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newIngredientUpdateCmd() *cobra.Command {
	var f ingredientFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an ingredient",
		Long: "Change the fields given as flags. A new unit cost recomputes every\n" +
			"recipe that uses the ingredient.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ingredient", args[0])
			if err != nil {
				return err
			}
			p, err := f.patch(cmd)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				ing, err := st.UpdateIngredient(id, p)
				if err != nil {
					return err
				}
				return a.render(cmd, ing, func(w io.Writer) { printIngredient(w, ing) })
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newIngredientDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an ingredient no recipe uses",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ingredient", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				removed, err := st.DeleteIngredient(id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("ingredient %d: %w", id, types.ErrIngredientNotFound)
				}
				return a.render(cmd, map[string]any{"deleted": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted ingredient %d\n", id)
				})
			})
		},
	}
}
