package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unitspace/unitspace/units"
)

// SystemConfig is the YAML description of a unit system: which definition
// sources to load and how to present results. Everything is optional; the
// zero config means the embedded SI defaults.
type SystemConfig struct {
	// Definition files loaded after the embedded defaults, in order.
	Definitions []string `yaml:"definitions"`
	// UseDefaults controls whether the embedded sources load first.
	// Unset means true.
	UseDefaults *bool `yaml:"use_defaults"`
	// SimplificationLevel is the display simplifier's recursion budget.
	// Unset keeps the built-in default; 0 disables simplification.
	SimplificationLevel *int `yaml:"simplification_level"`
	// Style names the default output style (plain, unicode, html, latex,
	// modelica). The --style flag overrides it.
	Style string `yaml:"style"`
}

// Validate checks the config for values that would only fail later.
func (c *SystemConfig) Validate() error {
	if c.SimplificationLevel != nil && *c.SimplificationLevel < 0 {
		return fmt.Errorf("simplification_level must be >= 0, got %d", *c.SimplificationLevel)
	}
	if c.Style != "" {
		if _, err := units.ParseStyle(c.Style); err != nil {
			return err
		}
	}
	if c.UseDefaults != nil && !*c.UseDefaults && len(c.Definitions) == 0 {
		return fmt.Errorf("use_defaults is false but no definitions are listed")
	}
	return nil
}

// LoadSystemConfig reads and validates a unit-system YAML config.
func LoadSystemConfig(path string) (*SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SystemConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config %q: %w", path, err)
	}
	return &cfg, nil
}
