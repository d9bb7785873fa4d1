// Package config merges command line flags, environment variables and an
// optional config file into an options struct.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadEnvFile exports the variables of a dotenv file into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("[Config] env file %s not found, skipping", path)
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	logger.Debug("[Config] loaded env file %s", path)
	return nil
}

// Load fills out from, in increasing priority, the current values in out,
// configFile, environment variables named <envPrefix>_<FLAG> and explicitly
// set flags. Flag names map to keys, so "model.api-key" is read from the
// "model" section of the file or from <envPrefix>_MODEL_API_KEY.
func Load(flags *pflag.FlagSet, envPrefix, configFile string, out any) error {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", configFile, err)
		}
		logger.Debug("[Config] using config file %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
