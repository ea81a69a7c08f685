package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kyildiz/restkit/logger"
)

// FileSystem abstracts file lookups so loading can be tested without
// touching the real filesystem.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads settings for the named application, applies defaults and
// validates the result. It searches for config.yml and .env files in
// standard locations unless explicit paths are given, and lets environment
// variables override file values.
func Load(name string, opts ...LoaderOption) (*Settings, error) {
	settings := &Settings{Name: name}
	if err := LoadInto(name, settings, opts...); err != nil {
		return nil, err
	}
	if settings.Name == "" {
		settings.Name = name
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadInto reads configuration for the named application into an arbitrary
// struct, without applying defaults or validating. Use Load unless you
// carry your own settings type.
func LoadInto(name string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findFile(lc.FileSystem, configSearchPaths(name))
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFile(lc.FileSystem, envSearchPaths(name))
	}

	log := logger.GetGlobalLogger().WithComponent("config")

	v := viper.New()

	// YAML file first, as the base layer.
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("failed to read config file", logger.Fields(
				"file", lc.ConfigFile, logger.FieldError, err.Error()))
		}
	}

	// Then the environment on top.
	v.AutomaticEnv()
	bindEnvVars(v)

	// A .env file contributes variables that were not already exported.
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			log.Warn("failed to load env file", logger.Fields(
				"file", lc.EnvFile, logger.FieldError, err.Error()))
		} else {
			bindEnvVars(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", name, err)
	}
	return nil
}

func configSearchPaths(name string) []string {
	paths := []string{
		fmt.Sprintf("./%s.yml", name),
		fmt.Sprintf("./%s.yaml", name),
		"./config.yml",
		"./config.yaml",
		"./config/config.yml",
		"./config/config.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			fmt.Sprintf("%s/.config/%s/config.yml", home, name),
			fmt.Sprintf("%s/.config/%s/config.yaml", home, name),
		)
	}
	return paths
}

func envSearchPaths(name string) []string {
	return []string{
		fmt.Sprintf("./.env.%s", name),
		"./.env",
		"./config/.env",
	}
}

func findFile(fs FileSystem, paths []string) string {
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars maps every environment variable into Viper under the nested
// key spellings its name can stand for, so AUTH_TOKEN reaches auth.token
// and CLIENT_BASE_URL reaches client.base_url.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants expands an UPPER_SNAKE name into the nested key spellings
// it may address. CLIENT_BASE_URL yields client_base_url, client.base.url
// and client.base_url; which one lands depends on the target struct's
// mapstructure tags.
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
