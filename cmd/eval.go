package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unitspace/unitspace/units"
	"github.com/unitspace/unitspace/units/deffile"
)

// evalCmd evaluates a quantity expression against the loaded registry,
// e.g. `unitspace eval "9.81*m/s**2 * 70*kg"`. Unlike definition files,
// prefixed symbols (km, mA) resolve here.
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a quantity expression",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := buildRegistry()
		style := outputStyle()

		resolve := func(name string) (units.Symbol, bool) {
			sym, err := registry.Lookup(name)
			if err != nil {
				return nil, false
			}
			return sym, true
		}

		q, err := deffile.Eval(strings.Join(args, " "), resolve)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		fmt.Println(registry.FormatPrecision(q, style, precision))
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
