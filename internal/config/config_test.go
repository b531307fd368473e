package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		ListenAddr:       ":9090",
		DatabaseURL:      "postgres://localhost:5432/easyshift",
		MaxHoursPerDay:   8,
		FallbackBase:     3,
		WeekendFactor:    1.2,
		FestivalFactor:   1.5,
		DemoBusinessType: "fashion",
		DemoStartDate:    "2026-03-02",
		DemoDays:         14,
		DemoStaffCount:   10,
		DemoSeed:         7,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	err := Validate(Default())
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := Default()
	cfg.ListenAddr = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_BadDemoStartDate(t *testing.T) {
	cfg := Default()
	cfg.DemoStartDate = "03/02/2026"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_MaxHoursPerDayOutOfRange(t *testing.T) {
	for _, hours := range []float64{0, -3, 25} {
		cfg := Default()
		cfg.MaxHoursPerDay = hours

		err := Validate(cfg)
		assert.Error(t, err, "maxHoursPerDay=%v should be rejected", hours)
	}
}

func TestValidate_PredictorTuningBounds(t *testing.T) {
	cfg := Default()
	cfg.WeekendFactor = 0.5

	err := Validate(cfg)
	assert.Error(t, err)

	cfg = Default()
	cfg.FallbackBase = -1

	err = Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_UnknownDemoBusinessType(t *testing.T) {
	cfg := Default()
	cfg.DemoBusinessType = "spaceport"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown demoBusinessType")
}

func TestValidate_BusinessTypeAliasAccepted(t *testing.T) {
	for _, alias := range []string{"supermarket", "qsr", "apparel", "general", "Electronics Store"} {
		cfg := Default()
		cfg.DemoBusinessType = alias

		err := Validate(cfg)
		assert.NoError(t, err, "alias %q should be accepted", alias)
	}
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
listenAddr: ":9191"
databaseURL: "postgres://localhost:5432/easyshift"
maxHoursPerDay: 9
demoBusinessType: "electronics"
demoStartDate: "2026-02-02"
demoDays: 10
demoStaffCount: 6
demoSeed: 99
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.ListenAddr)
	assert.Equal(t, "postgres://localhost:5432/easyshift", cfg.DatabaseURL)
	assert.Equal(t, 9.0, cfg.MaxHoursPerDay)
	assert.Equal(t, "electronics", cfg.DemoBusinessType)
	assert.Equal(t, "2026-02-02", cfg.DemoStartDate)
	assert.Equal(t, 10, cfg.DemoDays)
	assert.Equal(t, 6, cfg.DemoStaffCount)
	assert.Equal(t, int64(99), cfg.DemoSeed)
}

func TestLoadFromPath_PartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial_config.yaml")

	partialConfig := `
listenAddr: ":7070"
`

	err := os.WriteFile(configPath, []byte(partialConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, defaults.MaxHoursPerDay, cfg.MaxHoursPerDay)
	assert.Equal(t, defaults.DemoBusinessType, cfg.DemoBusinessType)
	assert.Equal(t, defaults.DemoDays, cfg.DemoDays)
}

func TestLoadFromPath_InvalidValuesRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
listenAddr: ":8080"
maxHoursPerDay: 30
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
listenAddr: ":8080"
  invalid indentation
maxHoursPerDay: 9
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
