package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/internal/memory"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func (a *app) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample ingredients into an empty store",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(st types.Store) error {
				n, err := memory.Seed(st)
				if err != nil {
					return err
				}
				return a.render(cmd, map[string]int{"seeded": n}, func(w io.Writer) {
					if n == 0 {
						fmt.Fprintln(w, "Store already has ingredients; nothing seeded.")
						return
					}
					fmt.Fprintf(w, "Seeded %d ingredient(s)\n", n)
				})
			})
		},
	}
}
