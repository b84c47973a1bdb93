// Package config implements ambient batch-sweep scenario configuration,
// directly adapted from the teacher's internal/config/config.go
// (Load/LoadUnchecked/Validate, battery-file merge idiom generalized into a
// vehicle-CSV merge).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vehsim/internal/data"
	"vehsim/internal/vehicle"
)

// ScenarioConfig is the on-disk configuration shape (YAML) for one batch
// sweep scenario: which vehicle, which cycle, and an optional initial-SOC
// override — the ambient configuration spec.md §6 implies around
// Driver.run but never itself specifies a file format for.
type ScenarioConfig struct {
	// Optional: load a vehicle database from a separate CSV (spec.md §6
	// vehicle-CSV format) and select one row by Selection id.
	VehicleFile      string `yaml:"vehicle_file"`
	VehicleSelection int    `yaml:"vehicle_selection"`

	// CycleName selects one of the bundled standard cycles (udds/us06/hwfet);
	// CycleFile, if set, overrides it with an arbitrary cycle CSV.
	CycleName string `yaml:"cycle_name"`
	CycleFile string `yaml:"cycle_file"`

	// InitialSoc, if non-nil, overrides the powertrain-type default.
	InitialSoc *float64 `yaml:"initial_soc"`
}

// Load reads and validates a ScenarioConfig from path.
func Load(path string) (*ScenarioConfig, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a ScenarioConfig without validating it, useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c ScenarioConfig
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the scenario names a cycle (by name or file) and,
// when a vehicle file is set, a vehicle selection. It does not check that
// either one resolves.
func (c *ScenarioConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.CycleName == "" && c.CycleFile == "" {
		return errors.New("cycle_name or cycle_file is required")
	}
	if c.VehicleFile != "" && c.VehicleSelection == 0 {
		return errors.New("vehicle_selection is required when vehicle_file is set")
	}
	return nil
}

// ResolveVehicleSource loads the configured vehicle database relative to
// the config file's directory, falling back to the CWD-relative path.
func (c *ScenarioConfig) ResolveVehicleSource(configPath string) (vehicle.Source, error) {
	path := c.VehicleFile
	if !filepath.IsAbs(path) {
		cand := filepath.Join(filepath.Dir(configPath), path)
		if _, err := os.Stat(cand); err == nil {
			path = cand
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vehicle file %q: %w", path, err)
	}
	defer f.Close()
	return data.LoadVehicleCSV(f)
}
