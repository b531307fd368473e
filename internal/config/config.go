package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

// Config represents the application configuration
type Config struct {
	ListenAddr     string  `yaml:"listenAddr" validate:"required"`
	DatabaseURL    string  `yaml:"databaseURL,omitempty"`
	MaxHoursPerDay float64 `yaml:"maxHoursPerDay" validate:"required,gt=0,lte=24"`

	// Demand predictor tuning
	FallbackBase   float64 `yaml:"fallbackBase" validate:"required,gt=0"`
	WeekendFactor  float64 `yaml:"weekendFactor" validate:"required,gte=1"`
	FestivalFactor float64 `yaml:"festivalFactor" validate:"required,gte=1"`

	// Defaults for the demo payload generator
	DemoBusinessType string `yaml:"demoBusinessType" validate:"required"`
	DemoStartDate    string `yaml:"demoStartDate" validate:"required,datetime=2006-01-02"`
	DemoDays         int    `yaml:"demoDays" validate:"required,min=1,max=90"`
	DemoStaffCount   int    `yaml:"demoStaffCount" validate:"required,min=1,max=100"`
	DemoSeed         int64  `yaml:"demoSeed,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		ListenAddr:       ":8080",
		MaxHoursPerDay:   10,
		FallbackBase:     3,
		WeekendFactor:    1.2,
		FestivalFactor:   1.5,
		DemoBusinessType: "grocery",
		DemoStartDate:    "2026-01-05",
		DemoDays:         7,
		DemoStaffCount:   8,
		DemoSeed:         42,
	}
}

// Load loads and validates the configuration from easyshift.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory. When no file exists the defaults are returned.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Fields omitted from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks the demo business
// type against the known vocabulary
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// ParseBusinessType maps anything unknown to general, so an unknown
	// value in the config would be silently ignored. Catch it here instead.
	normalized := model.ParseBusinessType(cfg.DemoBusinessType)
	if normalized == model.BusinessGeneral && !strings.EqualFold(strings.TrimSpace(cfg.DemoBusinessType), "general") {
		return fmt.Errorf("unknown demoBusinessType %q", cfg.DemoBusinessType)
	}

	return nil
}

// findConfigFile searches for easyshift.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "easyshift.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
