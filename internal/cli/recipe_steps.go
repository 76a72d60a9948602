package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newRecipeStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Manage the ordered steps of a recipe",
	}
	cmd.AddCommand(
		a.newStepListCmd(),
		a.newStepAddCmd(),
		a.newStepUpdateCmd(),
		a.newStepDeleteCmd(),
	)
	return cmd
}

func printSteps(w io.Writer, steps []types.Step) {
	if len(steps) == 0 {
		fmt.Fprintln(w, "No steps.")
		return
	}
	fmt.Fprintln(w, "#\tID\tDESCRIPTION")
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%d\t%s\n", s.StepNumber, s.ID, s.Description)
	}
}

func (a *app) newStepListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <recipe-id>",
		Short: "List the steps of a recipe in order",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				steps, err := st.GetRecipeSteps(recipeID)
				if err != nil {
					return err
				}
				return a.render(cmd, steps, func(w io.Writer) { printSteps(w, steps) })
			})
		},
	}
}

func (a *app) newStepAddCmd() *cobra.Command {
	var in types.StepInput
	cmd := &cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Add a step to a recipe",
		Long: "Append a step, or insert it at --number and shift the later steps\n" +
			"down by one.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID("recipe", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				step, err := st.AddStepToRecipe(recipeID, in)
				if err != nil {
					return err
				}
				return a.render(cmd, step, func(w io.Writer) {
					fmt.Fprintf(w, "Added step %d as number %d\n", step.ID, step.StepNumber)
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Description, "description", "", "what to do")
	cmd.Flags().IntVar(&in.StepNumber, "number", 0, "position to insert at (default: append)")
	return cmd
}

func (a *app) newStepUpdateCmd() *cobra.Command {
	var (
		description string
		number      int
	)
	cmd := &cobra.Command{
		Use:   "update <step-id>",
		Short: "Change or move a step",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("step", args[0])
			if err != nil {
				return err
			}
			var p types.StepPatch
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if cmd.Flags().Changed("number") {
				p.StepNumber = &number
			}
			return a.withStore(func(st types.Store) error {
				step, err := st.UpdateStep(id, p)
				if err != nil {
					return err
				}
				return a.render(cmd, step, func(w io.Writer) {
					fmt.Fprintf(w, "Step %d is number %d: %s\n", step.ID, step.StepNumber, step.Description)
				})
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().IntVar(&number, "number", 0, "move the step to this position")
	return cmd
}

func (a *app) newStepDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <step-id>",
		Short: "Delete a step and renumber the rest",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("step", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				removed, err := st.DeleteStep(id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("step %d: %w", id, types.ErrStepNotFound)
				}
				return a.render(cmd, map[string]any{"deleted": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted step %d\n", id)
				})
			})
		},
	}
}
