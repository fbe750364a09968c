package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unitspace/unitspace/units"
)

// convertCmd re-expresses a number of one unit in another unit. Both sides
// accept prefixed symbols and compound unit strings such as "km/hr"; the
// source additionally accepts lambda units such as degC.
var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		registry := buildRegistry()

		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			logrus.Fatalf("Invalid value %q: %v", args[0], err)
		}

		q, err := quantityIn(registry, value, args[1])
		if err != nil {
			logrus.Fatalf("Unknown source unit: %v", err)
		}

		result, err := registry.Convert(q, args[2])
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		fmt.Printf("%s %s = %s %s\n",
			strconv.FormatFloat(value, 'g', precision, 64), args[1],
			strconv.FormatFloat(result, 'g', precision, 64), args[2])
	},
}

// quantityIn interprets value in the named unit. Single symbols resolve
// through the registry (so lambda units and prefixes work); anything else
// is evaluated as a compound unit string.
func quantityIn(registry *units.Registry, value float64, unitName string) (units.Quantity, error) {
	sym, err := registry.Lookup(unitName)
	if err != nil {
		unitQ, cerr := registry.Compound(unitName)
		if cerr != nil {
			return units.Quantity{}, err
		}
		return unitQ.MulFloat(value), nil
	}
	switch s := sym.(type) {
	case *units.ScalarUnit:
		return s.FromNumber(value), nil
	case *units.LambdaUnit:
		return s.FromNumber(value), nil
	case *units.Constant:
		return s.Quantity().MulFloat(value), nil
	}
	return units.Quantity{}, fmt.Errorf("cannot interpret %q as a unit", unitName)
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
