package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehsim/internal/config"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidScenario(t *testing.T) {
	path := writeTempConfig(t, `
cycle_name: udds
vehicle_selection: 11
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "udds", c.CycleName)
	assert.Equal(t, 11, c.VehicleSelection)
}

func TestLoadRejectsMissingCycle(t *testing.T) {
	path := writeTempConfig(t, `
vehicle_selection: 11
`)
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadWithInitialSoc(t *testing.T) {
	path := writeTempConfig(t, `
cycle_name: us06
vehicle_selection: 1
initial_soc: 0.6
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, c.InitialSoc)
	assert.InDelta(t, 0.6, *c.InitialSoc, 1e-9)
}
