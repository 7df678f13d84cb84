package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/cssprefix"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssprefix.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set).
	// Defaults live in the getters below so they never mask file values.
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPREFIX_* prefix)
	if err := k.Load(env.Provider("CSSPREFIX_", ".", func(s string) string {
		// CSSPREFIX_PREFIX_SOURCE -> prefix.source
		// CSSPREFIX_SASS_ENABLED -> sass.enabled
		// CSSPREFIX_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSPREFIX_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() (cssprefix.Config, error) {
	config := cssprefix.Config{
		SourceDir:  getStringWithFallback("source", "prefix.source", "."),
		OutputDir:  getStringWithFallback("output-dir", "prefix.output-dir", ""),
		DryRun:     getBoolWithFallback("dry-run", "prefix.dry-run", false),
		Minify:     getBoolWithFallback("minify", "prefix.minify", false),
		ProjectDir: getStringWithFallback("project-dir", "prefix.project-dir", ""),
		Workers:    getIntWithFallback("workers", "prefix.workers", cssprefix.DefaultWorkers),
		MaxDepth:   getIntWithFallback("max-depth", "prefix.max-depth", 0),
		Verbose:    getBoolWithFallback("verbose", "verbose", false),
		Sass: cssprefix.SassConfig{
			Enabled:     getBoolWithFallback("sass", "sass.enabled", false),
			Binary:      getStringWithFallback("sass-binary", "sass.binary", ""),
			Flavor:      getStringWithFallback("sass-flavor", "sass.flavor", "dart"),
			Style:       getStringWithFallback("sass-style", "sass.style", "expanded"),
			ImportPaths: getStringsWithFallback("sass-import-path", "sass.import-paths", nil),
			SourceMap:   getBoolWithFallback("sass-source-map", "sass.source-map", false),
		},
	}

	config.Includes = getStringsWithFallback("include", "prefix.include", cssprefix.DefaultIncludes)
	config.Excludes = getStringsWithFallback("exclude", "prefix.exclude", nil)

	overrides, err := buildOverrides()
	if err != nil {
		return config, err
	}
	config.Overrides = overrides

	return config, nil
}

// buildOverrides reads prefix.properties and prefix.values.
//
//	prefix:
//	  properties:
//	    transition: ["-webkit-*", "transition"]
//	  values:
//	    display:
//	      flex: ["-webkit-flex", "flex"]
func buildOverrides() (cssprefix.Overrides, error) {
	var overrides cssprefix.Overrides
	if k.Exists("prefix.properties") {
		if err := k.Unmarshal("prefix.properties", &overrides.Properties); err != nil {
			return overrides, fmt.Errorf("reading prefix.properties: %w", err)
		}
	}
	if k.Exists("prefix.values") {
		if err := k.Unmarshal("prefix.values", &overrides.Values); err != nil {
			return overrides, fmt.Errorf("reading prefix.values: %w", err)
		}
	}
	overrides.PreconfiguredOnly = getBoolWithFallback("preconfigured-only", "prefix.preconfigured-only", false)
	return overrides, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
