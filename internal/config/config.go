// Package config loads mdplan configuration from JSONC files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/mdplan/internal/plan"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	SpacesPerLevel     int      `json:"spaces_per_level"`
	MaxNestingLevel    int      `json:"max_nesting_level"`
	Editor             string   `json:"editor,omitempty"`
	MarkdownExtensions []string `json:"markdown_extensions"`
	User               string   `json:"user,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// fileConfig is the on-disk shape. Pointers tell "absent" from "zero".
type fileConfig struct {
	SpacesPerLevel     *int     `json:"spaces_per_level"`
	MaxNestingLevel    *int     `json:"max_nesting_level"`
	Editor             *string  `json:"editor"`
	MarkdownExtensions []string `json:"markdown_extensions"`
	User               *string  `json:"user"`

	hasExtensions bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SpacesPerLevel:     plan.DefaultSpacesPerLevel,
		MaxNestingLevel:    plan.DefaultMaxNestingLevel,
		MarkdownExtensions: []string{".md", ".markdown", ".mdown", ".mkd", ".mkdn"},
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".mdplan.json"

// PlanOptions returns the structural options for the plan package.
func (c Config) PlanOptions() plan.Options {
	return plan.Options{
		SpacesPerLevel:  c.SpacesPerLevel,
		MaxNestingLevel: c.MaxNestingLevel,
		User:            c.User,
	}
}

// IsMarkdown reports whether path has one of the configured markdown
// extensions. The comparison ignores case.
func (c Config) IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}

	for _, want := range c.MarkdownExtensions {
		if normalizeExtension(want) == ext {
			return true
		}
	}

	return false
}

// Resolve returns path made absolute against the effective working directory.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.EffectiveCwd, path)
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/mdplan/config.json if set, otherwise ~/.config/mdplan/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdplan", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "mdplan", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/mdplan/config.json or $XDG_CONFIG_HOME/mdplan/config.json)
// 3. Project config file at default location (.mdplan.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty), instead of 3.
//
// Values are validated per file, so errors name the file they came from.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig()

	if globalPath := getGlobalConfigPath(input.Env); globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, ConfigFileName), false

	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		if _, statErr := os.Stat(projectPath); statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}
	}

	projectCfg, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = mergeConfig(cfg, projectCfg)
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// loadConfigFile loads and validates a config file. If mustExist is false,
// a missing file returns a zero config and loaded=false.
func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	var raw map[string]json.RawMessage

	_ = json.Unmarshal(standardized, &raw)

	_, cfg.hasExtensions = raw["markdown_extensions"]

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return fileConfig{}, validateErr
	}

	return cfg, nil
}

func validateConfig(cfg fileConfig) error {
	if cfg.SpacesPerLevel != nil && *cfg.SpacesPerLevel < 1 {
		return ErrSpacesPerLevel
	}

	if cfg.MaxNestingLevel != nil && *cfg.MaxNestingLevel < 0 {
		return ErrMaxNestingLevel
	}

	if cfg.hasExtensions {
		for _, ext := range cfg.MarkdownExtensions {
			if normalizeExtension(ext) != "" {
				return nil
			}
		}

		return ErrNoExtensions
	}

	return nil
}

func mergeConfig(base Config, overlay fileConfig) Config {
	if overlay.SpacesPerLevel != nil {
		base.SpacesPerLevel = *overlay.SpacesPerLevel
	}

	if overlay.MaxNestingLevel != nil {
		base.MaxNestingLevel = *overlay.MaxNestingLevel
	}

	if overlay.Editor != nil {
		base.Editor = *overlay.Editor
	}

	if overlay.User != nil {
		base.User = *overlay.User
	}

	if overlay.hasExtensions {
		base.MarkdownExtensions = append([]string(nil), overlay.MarkdownExtensions...)
	}

	return base
}
