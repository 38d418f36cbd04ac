package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "image-enhancer"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "IMAGE_ENHANCER"
)

// Loader merges defaults, an optional YAML file, IMAGE_ENHANCER_* variables
// and any flags bound to its viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader wraps v; nil selects the global viper instance so cobra flag
// bindings made through the viper package apply.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.GetViper()
	}
	return &Loader{v: v}
}

// Load reads configFile, or searches the standard paths when it is empty.
// A missing file in the search paths is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		for _, path := range SearchPaths() {
			l.v.AddConfigPath(path)
		}
	}

	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SearchPaths lists the directories searched for image-enhancer.yaml.
func SearchPaths() []string {
	paths := []string{"."}

	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		paths = append(paths, filepath.Join(configDir, ConfigFileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", ConfigFileName))
	}

	return append(paths, "/etc/"+ConfigFileName)
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("show", defaults.Show)

	l.v.SetDefault("pipeline.version", defaults.Pipeline.Version)
	l.v.SetDefault("pipeline.denoise_kernel_common", defaults.Pipeline.DenoiseKernelCommon)
	l.v.SetDefault("pipeline.denoise_kernel_binary", defaults.Pipeline.DenoiseKernelBinary)
	l.v.SetDefault("pipeline.morphology_mode", defaults.Pipeline.MorphologyMode)
	l.v.SetDefault("pipeline.equalization_mode", defaults.Pipeline.EqualizationMode)
	l.v.SetDefault("pipeline.contrast_strength", defaults.Pipeline.ContrastStrength)
	l.v.SetDefault("pipeline.display.resolution", defaults.Pipeline.Display.Resolution)
	l.v.SetDefault("pipeline.display.quality", defaults.Pipeline.Display.Quality)

	l.v.SetDefault("output.path", defaults.Output.Path)
	l.v.SetDefault("metrics.file", defaults.Metrics.File)
}
