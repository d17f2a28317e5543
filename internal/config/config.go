package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration of the crafting assistant.
// It is loaded once in main and passed explicitly to the components.
type Config struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Reference data
	DataDir             string `yaml:"data_dir"`
	ReferenceDataFile   string `yaml:"reference_data_file"`
	StrictReferenceData bool   `yaml:"strict_reference_data"`

	Crafting Crafting `yaml:"crafting"`

	// Prometheus endpoint, empty disables it
	MetricsAddr string `yaml:"metrics_addr"`

	Database DatabaseConfig `yaml:"database"`
}

// Crafting controls which items are processed and how.
type Crafting struct {
	SupportedClasses     []string `yaml:"supported_classes"`
	UniqueItemsSupported bool     `yaml:"unique_items_supported"`
	BatchWorkers         int      `yaml:"batch_workers"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ReferenceDataPath returns the full path of the reference document.
func (c Config) ReferenceDataPath() string {
	if filepath.IsAbs(c.ReferenceDataFile) {
		return c.ReferenceDataFile
	}
	return filepath.Join(c.DataDir, c.ReferenceDataFile)
}

// ItemsDir returns the directory of saved items.
func (c Config) ItemsDir() string {
	return filepath.Join(c.DataDir, "items")
}

// DefaultSupportedClasses lists item classes that can be crafted on.
func DefaultSupportedClasses() []string {
	return []string{
		"Body Armour",
		"Belt",
		"Boots",
		"Gloves",
		"Helmet",
		"Ring",
		"Amulet",
		"Quiver",
		"Shield",
		"Weapon",
	}
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:          "info",
		DataDir:           "data",
		ReferenceDataFile: "poe.json",
		Crafting: Crafting{
			SupportedClasses: DefaultSupportedClasses(),
			BatchWorkers:     4,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "craftassist",
			Password: "craftassist",
			DBName:   "craftassist",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Crafting.BatchWorkers <= 0 {
		cfg.Crafting.BatchWorkers = 1
	}
	if len(cfg.Crafting.SupportedClasses) == 0 {
		cfg.Crafting.SupportedClasses = DefaultSupportedClasses()
	}

	return cfg, nil
}
