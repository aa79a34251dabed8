package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName      = ".wadtree.yaml"
	globalConfigDirName = ".config/wadtree"
	globalConfigName    = "config.yaml"
)

// Configuration holds the defaults read from config files.
type Configuration struct {
	Hashtables []string `mapstructure:"hashtables"`
	Color      *bool    `mapstructure:"color"`
	LogLevel   string   `mapstructure:"log_level"`
}

// LoadOptions controls how configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	HomeDirectory    string
	ExplicitFilePath string
}

// LoadConfiguration reads the global config and then the local (or
// explicit) one, overlaying the second onto the first. Missing files are
// not an error; an explicit path that does not exist is.
func LoadConfiguration(options LoadOptions) (Configuration, error) {
	var merged Configuration

	if options.HomeDirectory != "" {
		globalPath := filepath.Join(options.HomeDirectory, globalConfigDirName, globalConfigName)
		global, err := loadConfigurationFromPath(globalPath, false)
		if err != nil {
			return Configuration{}, err
		}
		merged = merged.Merge(global)
	}

	localPath := options.ExplicitFilePath
	required := localPath != ""
	if localPath == "" && options.WorkingDirectory != "" {
		localPath = filepath.Join(options.WorkingDirectory, configFileName)
	} else if localPath != "" && !filepath.IsAbs(localPath) && options.WorkingDirectory != "" {
		localPath = filepath.Join(options.WorkingDirectory, localPath)
	}
	if localPath != "" {
		local, err := loadConfigurationFromPath(localPath, required)
		if err != nil {
			return Configuration{}, err
		}
		merged = merged.Merge(local)
	}
	return merged, nil
}

func loadConfigurationFromPath(path string, required bool) (Configuration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return Configuration{}, nil
		}
		return Configuration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return Configuration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if err := reader.ReadInConfig(); err != nil {
		return Configuration{}, fmt.Errorf("read configuration from %s: %w", path, err)
	}
	var config Configuration
	if err := reader.Unmarshal(&config); err != nil {
		return Configuration{}, fmt.Errorf("decode configuration from %s: %w", path, err)
	}
	// relative hashtable paths are relative to the file naming them
	for i, p := range config.Hashtables {
		if !filepath.IsAbs(p) {
			config.Hashtables[i] = filepath.Join(filepath.Dir(path), p)
		}
	}
	return config, nil
}

// Merge overlays override onto the receiver. Hashtable lists accumulate so
// that a project file can add to the tables a user loads globally.
func (c Configuration) Merge(override Configuration) Configuration {
	result := c
	result.Hashtables = append(append([]string(nil), c.Hashtables...), override.Hashtables...)
	if override.Color != nil {
		color := *override.Color
		result.Color = &color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	return result
}
