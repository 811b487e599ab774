// Package config loads runtime settings for the slidecase CLI from
// .slidecase.yaml, SLIDECASE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Output formats accepted by the generate command.
const (
	FormatSTL  = "stl"
	FormatJSON = "json"
)

// Geometry kernel backends.
const (
	KernelSDFX     = "sdfx"
	KernelManifold = "manifold"
)

// Config holds all runtime configuration for a CLI invocation.
type Config struct {
	OutputDir string        `mapstructure:"output_dir"`
	Format    string        `mapstructure:"format"`
	Kernel    string        `mapstructure:"kernel"`
	MeshCells int           `mapstructure:"mesh_cells"`
	CacheDir  string        `mapstructure:"cache_dir"`
	NoCache   bool          `mapstructure:"no_cache"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	Verbose   bool          `mapstructure:"verbose"`
}

// Init points viper at the config file. An explicit path wins; otherwise
// .slidecase.yaml is looked up in the working directory and then in $HOME.
// A missing default file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".slidecase")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SLIDECASE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("format", FormatSTL)
	viper.SetDefault("kernel", KernelSDFX)
	viper.SetDefault("mesh_cells", 200)
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("no_cache", false)
	viper.SetDefault("cache_ttl", 7*24*time.Hour)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Format {
	case FormatSTL, FormatJSON:
	default:
		return Config{}, fmt.Errorf("unsupported format %q (want %s or %s)", cfg.Format, FormatSTL, FormatJSON)
	}
	switch cfg.Kernel {
	case KernelSDFX, KernelManifold:
	default:
		return Config{}, fmt.Errorf("unsupported kernel %q (want %s or %s)", cfg.Kernel, KernelSDFX, KernelManifold)
	}
	if cfg.MeshCells < 16 {
		return Config{}, fmt.Errorf("mesh_cells must be at least 16, got %d", cfg.MeshCells)
	}
	return cfg, nil
}
