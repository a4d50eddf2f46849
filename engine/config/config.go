package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/astra/engine/core"
)

/** @brief Engine configuration, loaded from a TOML file. */
type Config struct {
	/** @brief The application name used in logs and device setup. */
	AppName string `toml:"app_name"`
	/** @brief Minimum log level: debug, info, warn, error or fatal. */
	LogLevel string `toml:"log_level"`
	/** @brief Directory watched for material assets. */
	AssetsDir string `toml:"assets_dir"`
	/** @brief The maximum number of materials held by the material system. */
	MaxMaterials uint32 `toml:"max_materials"`
	/** @brief Reload material files automatically when they change on disk. */
	AutoReload bool `toml:"auto_reload"`
}

func Default() *Config {
	return &Config{
		AppName:      "astra",
		LogLevel:     "info",
		AssetsDir:    "assets",
		MaxMaterials: 1024,
		AutoReload:   true,
	}
}

// Load reads a TOML config file, filling unset fields from Default. A
// missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogWarn("config file '%s' not found, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		err = fmt.Errorf("config file '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AppName == "" {
		return fmt.Errorf("config: app_name must not be empty")
	}
	if c.MaxMaterials == 0 {
		return fmt.Errorf("config: max_materials must be > 0")
	}
	return nil
}
