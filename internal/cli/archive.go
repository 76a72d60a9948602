package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/internal/archive"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// sinkFlags select where a bundle is written or read.
type sinkFlags struct {
	dir       string
	bucket    string
	prefix    string
	region    string
	endpoint  string
	pathStyle bool
}

func (f *sinkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "local bundle directory")
	cmd.Flags().StringVar(&f.bucket, "s3-bucket", "", "S3 bucket (default from archive.s3.bucket)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "S3 key prefix (default from archive.s3.prefix)")
	cmd.Flags().StringVar(&f.region, "s3-region", "", "S3 region (default from archive.s3.region)")
	cmd.Flags().StringVar(&f.endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().BoolVar(&f.pathStyle, "s3-path-style", false, "use path-style S3 addressing")
}

// sink builds the bundle sink: --dir wins, otherwise S3 with flags over
// the archive.s3.* keys.
func (a *app) sink(cmd *cobra.Command, f sinkFlags) (archive.Sink, error) {
	if f.dir != "" {
		return archive.DirSink{Dir: f.dir}, nil
	}
	pick := func(flag, val, key string) string {
		if cmd.Flags().Changed(flag) {
			return val
		}
		return a.v.GetString(key)
	}
	cfg := archive.S3Config{
		Bucket:    pick("s3-bucket", f.bucket, cfgKeyS3Bucket),
		Prefix:    pick("prefix", f.prefix, cfgKeyS3Prefix),
		Region:    pick("s3-region", f.region, cfgKeyS3Region),
		Endpoint:  pick("s3-endpoint", f.endpoint, cfgKeyS3Endpoint),
		PathStyle: f.pathStyle || a.v.GetBool(cfgKeyS3PathStyle),
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: one of --dir or --s3-bucket is required", errUsage)
	}
	return archive.NewS3Sink(cmd.Context(), cfg)
}

func bundleCounts(s types.Snapshot) map[string]int {
	return map[string]int{
		"ingredients":       len(s.Ingredients),
		"recipes":           len(s.Recipes),
		"recipeIngredients": len(s.RecipeIngredients),
		"steps":             len(s.Steps),
	}
}

func printCounts(w io.Writer, verb string, s types.Snapshot) {
	fmt.Fprintf(w, "%s %d ingredient(s), %d recipe(s), %d recipe ingredient(s), %d step(s)\n",
		verb, len(s.Ingredients), len(s.Recipes), len(s.RecipeIngredients), len(s.Steps))
}

func (a *app) newExportCmd() *cobra.Command {
	var f sinkFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole store as a JSONL bundle",
		Example: `  recipecost export --dir ./backup
  recipecost export --s3-bucket kitchen-backups --prefix nightly/2026-10-19`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, err := a.sink(cmd, f)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				snap, err := st.ExportState()
				if err != nil {
					return err
				}
				if err := archive.Export(cmd.Context(), sink, snap); err != nil {
					return err
				}
				return a.render(cmd, bundleCounts(snap), func(w io.Writer) { printCounts(w, "Exported", snap) })
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newImportCmd() *cobra.Command {
	var f sinkFlags
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the store contents with a JSONL bundle",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, err := a.sink(cmd, f)
			if err != nil {
				return err
			}
			snap, err := archive.Import(cmd.Context(), sink, a.log)
			if err != nil {
				return err
			}
			return a.withStore(func(st types.Store) error {
				if err := st.ImportState(snap); err != nil {
					return err
				}
				return a.render(cmd, bundleCounts(snap), func(w io.Writer) { printCounts(w, "Imported", snap) })
			})
		},
	}
	f.register(cmd)
	return cmd
}
