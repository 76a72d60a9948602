package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/recipecost"

// Version is overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/recipecost/internal/cli.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the recipecost version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(out(cmd), "recipecost %s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
