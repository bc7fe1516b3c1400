package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mediarelay/pkg/logging"
)

const (
	userConfigDir  = ".config/mediarelay"
	configFileName = "config.yaml"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath over the defaults and
// validates the result.
//
// A missing file is not an error, the defaults are returned. Malformed YAML
// and validation failures are reported as a *ConfigurationErrorCollection.
func LoadConfig(configPath string) (MediaRelayConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return MediaRelayConfig{}, err
	}

	config, err = parseConfig(data, configFilePath)
	if err != nil {
		return MediaRelayConfig{}, err
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// parseConfig decodes data over the defaults and validates it.
func parseConfig(data []byte, filePath string) (MediaRelayConfig, error) {
	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		collection := NewConfigurationErrorCollection()
		collection.Add(NewConfigurationErrorWithDetails(
			filePath, filepath.Base(filePath), "file", "parse",
			"malformed YAML", err.Error(),
			[]string{"Check indentation and quoting", "Durations use Go syntax, e.g. 30s or 1m"},
		))
		return MediaRelayConfig{}, collection
	}

	if errs := Validate(config); errs.HasErrors() {
		collection := NewConfigurationErrorCollection()
		for _, ve := range errs {
			collection.Add(NewConfigurationError(filePath, filepath.Base(filePath), ve.Category(), "validation", ve.Error()))
		}
		logging.Warn("ConfigLoader", "%s failed validation with %d errors in %s",
			filepath.Base(filePath), collection.Count(), strings.Join(collection.Categories(), ", "))
		return MediaRelayConfig{}, collection
	}
	return config, nil
}
