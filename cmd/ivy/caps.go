package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umer200/ivy/internal/ops"
	"github.com/umer200/ivy/internal/tensor"
)

var capsCmd = &cobra.Command{
	Use:   "caps [op...]",
	Short: "Show unsupported dtypes per operation and device",
	Long: `Caps lists, for the configured engine and version, the dtypes each
operation rejects on every device the engine knows.

Example:
  ivy caps
  ivy caps arange expand
  IVY_BACKEND=sim IVY_BACKEND_VERSION=2.5.0 ivy caps`,
	RunE: runCaps,
}

func runCaps(cmd *cobra.Command, args []string) error {
	b := ctx.Backend()
	names := args
	if len(names) == 0 {
		for _, d := range ops.Catalog() {
			names = append(names, d.Name)
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "backend %s %s\n", b.Name(), b.Version())
	fmt.Fprintln(w, "OP\tDEVICE\tUNSUPPORTED")
	for _, name := range names {
		if _, ok := ops.Lookup(name); !ok {
			return fmt.Errorf("unknown operation %q", name)
		}
		for _, dev := range b.Devices() {
			dts := ctx.Registry().Unsupported(name, b.Name(), b.Version(), dev)
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, dev, joinDTypes(dts))
		}
	}
	return w.Flush()
}

func joinDTypes(dts []tensor.DType) string {
	if len(dts) == 0 {
		return "-"
	}
	names := make([]string, len(dts))
	for i, dt := range dts {
		names[i] = dt.String()
	}
	return strings.Join(names, ",")
}
