package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unitspace/unitspace/definitions"
	"github.com/unitspace/unitspace/units"
	"github.com/unitspace/unitspace/units/deffile"
)

var (
	// Persistent CLI flags shared by all subcommands
	logLevel        string   // Log verbosity level
	systemPath      string   // Optional unit-system YAML config
	definitionFiles []string // Extra definition files, layered after the defaults
	noDefaults      bool     // Skip the embedded default definitions
	styleName       string   // Output style for formatted quantities
	precision       int      // Significant digits (-1 = shortest round-trip)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "unitspace",
	Short: "Quantity calculator over configurable unit systems",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// buildRegistry assembles the definition sources selected by the flags and
// the optional YAML config, and loads them into a frozen registry.
func buildRegistry() *units.Registry {
	useDefaults := !noDefaults
	extraFiles := definitionFiles
	level := units.DefaultSimplificationLevel

	if systemPath != "" {
		cfg, err := LoadSystemConfig(systemPath)
		if err != nil {
			logrus.Fatalf("Unable to read system config %q: %v", systemPath, err)
		}
		if cfg.UseDefaults != nil {
			useDefaults = *cfg.UseDefaults
		}
		if cfg.SimplificationLevel != nil {
			level = *cfg.SimplificationLevel
		}
		if styleName == "" && cfg.Style != "" {
			styleName = cfg.Style
		}
		// Config files load before files named on the command line.
		extraFiles = append(append([]string(nil), cfg.Definitions...), extraFiles...)
	}

	var sources []deffile.Source
	if useDefaults {
		defaults, err := definitions.Sources()
		if err != nil {
			logrus.Fatalf("Unable to read embedded definitions: %v", err)
		}
		sources = defaults
	}
	if len(extraFiles) > 0 {
		extra, err := deffile.ReadFiles(extraFiles)
		if err != nil {
			logrus.Fatalf("Unable to read definition files: %v", err)
		}
		sources = append(sources, extra...)
	}
	if len(sources) == 0 {
		logrus.Fatalf("No definition sources: defaults disabled and no files given")
	}

	registry, err := deffile.Load(sources)
	if err != nil {
		logrus.Fatalf("Unable to build unit registry: %v", err)
	}
	registry.SetSimplificationLevel(level)
	return registry
}

// outputStyle parses the --style flag (or the config's style).
func outputStyle() units.Style {
	if styleName == "" {
		return units.StylePlain
	}
	style, err := units.ParseStyle(styleName)
	if err != nil {
		logrus.Fatalf("Invalid style: %v", err)
	}
	return style
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the persistent flags
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&systemPath, "system", "", "Path to a unit-system YAML config")
	rootCmd.PersistentFlags().StringSliceVar(&definitionFiles, "definitions", nil, "Comma-separated definition files layered after the defaults")
	rootCmd.PersistentFlags().BoolVar(&noDefaults, "no-defaults", false, "Do not load the embedded default definitions")
	rootCmd.PersistentFlags().StringVar(&styleName, "style", "", "Output style (plain, unicode, html, latex, modelica)")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", -1, "Significant digits (-1 = shortest round-trip)")
}
