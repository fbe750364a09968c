package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unitspace/unitspace/units"
)

// lookupCmd resolves one symbol, including prefixed forms such as "km"
var lookupCmd = &cobra.Command{
	Use:   "lookup <symbol>",
	Short: "Show the definition behind a symbol",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := buildRegistry()
		style := outputStyle()

		sym, err := registry.Lookup(args[0])
		if err != nil {
			logrus.Fatalf("Lookup failed: %v", err)
		}

		fmt.Printf("%s: %s\n", sym.SymbolName(), sym.Kind())
		if dim := sym.Dimension(); !dim.Empty() {
			fmt.Printf("  dimension: %s\n", dim.Format(style))
		} else {
			fmt.Printf("  dimension: (dimensionless)\n")
		}

		switch s := sym.(type) {
		case *units.ScalarUnit:
			fmt.Printf("  value: %s\n", registry.FormatPrecision(s.Quantity().WithDisplay(nil), style, precision))
			fmt.Printf("  prefixable: %v\n", s.Prefixable())
		case *units.Constant:
			fmt.Printf("  value: %s\n", registry.FormatPrecision(s.Quantity(), style, precision))
		case *units.LambdaUnit:
			fmt.Printf("  prefixable: %v\n", s.Prefixable())
			fmt.Printf("  1 %s = %s\n", s.SymbolName(), registry.FormatPrecision(s.FromNumber(1).WithDisplay(nil), style, precision))
		}
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
