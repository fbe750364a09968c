package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unitspace/unitspace/units"
)

var tableKind string // Optional kind filter: constant, unit, lambda

// tableCmd dumps the registry in definition order
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "List every defined symbol",
	Run: func(cmd *cobra.Command, args []string) {
		registry := buildRegistry()
		style := outputStyle()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tKIND\tDIMENSION\tVALUE")
		for _, name := range registry.Names() {
			sym, err := registry.Lookup(name)
			if err != nil {
				continue
			}
			if tableKind != "" && tableKind != sym.Kind().String() {
				continue
			}

			dim := sym.Dimension().Format(style)
			if dim == "" {
				dim = "1"
			}
			value := ""
			switch s := sym.(type) {
			case *units.ScalarUnit:
				value = registry.FormatPrecision(s.Quantity().WithDisplay(nil), style, precision)
			case *units.Constant:
				value = registry.FormatPrecision(s.Quantity(), style, precision)
			case *units.LambdaUnit:
				value = registry.FormatPrecision(s.FromNumber(1).WithDisplay(nil), style, precision)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, sym.Kind(), dim, value)
		}
		w.Flush()
	},
}

func init() {
	tableCmd.Flags().StringVar(&tableKind, "kind", "", "Only show symbols of this kind (constant, unit, lambda unit)")
	rootCmd.AddCommand(tableCmd)
}
