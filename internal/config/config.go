package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, read from config.toml
// next to the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Source SourceConfig `toml:"source"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures local storage.
type DataConfig struct {
	DataDir      string `toml:"data_dir"`
	DatabaseFile string `toml:"database_file"`
}

// SourceConfig configures source data handling.
type SourceConfig struct {
	OverridesFile string `toml:"overrides_file"`
	YearFrom      int    `toml:"year_from"`
	YearTo        int    `toml:"year_to"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20290,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:      "data",
			DatabaseFile: "ukstats.db",
		},
		Source: SourceConfig{
			OverridesFile: "icd_harmonized_overrides.csv",
			YearFrom:      1800,
			YearTo:        2100,
		},
	}
}

// GetExeDir returns the directory holding the executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory, falling
// back to defaults when absent. Environment variables override file
// settings for local runs.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if v := os.Getenv("UKSTATS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("UKSTATS_OVERRIDES_FILE"); v != "" {
		config.Source.OverridesFile = v
	}

	return config, nil
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories next
// to the executable and returns its path.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"downloads", "outputs", "dashboards", "docs"}
	for _, subdir := range subdirs {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DatabasePath returns the SQLite database location under the data dir.
func DatabasePath(config *AppConfig, dataDir string) string {
	return filepath.Join(dataDir, config.Data.DatabaseFile)
}
