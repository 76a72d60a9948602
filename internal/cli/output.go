package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// render writes v as indented JSON in --json mode, otherwise it lets table
// write tab-separated rows that are aligned on flush.
func (a *app) render(cmd *cobra.Command, v any, table func(w io.Writer)) error {
	if a.flags.jsonMode {
		enc := json.NewEncoder(out(cmd))
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s takes no arguments", errUsage, cmd.CommandPath())
	}
	return nil
}

// exactArgs requires n positional arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// parseID parses a positive entity identifier.
func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s %q", types.ErrInvalidID, what, raw)
	}
	return id, nil
}

// parseDecimal parses a decimal flag value.
func parseDecimal(flag, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: --%s %q is not a number", errUsage, flag, raw)
	}
	return v, nil
}

// nullable renders a nullable decimal at the given places, or "-".
func nullable(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(places)
}

// orDash renders an optional string, or "-".
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// joinTags renders a tag list comma separated.
func joinTags[T ~string](tags []T) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
