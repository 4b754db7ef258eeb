package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default complexity thresholds
const (
	// DefaultCyclomaticThreshold is the cyclomatic score above which a
	// function is reported as a violation
	DefaultCyclomaticThreshold = 10

	// DefaultCognitiveThreshold is the cognitive score above which a
	// function is reported as a violation
	DefaultCognitiveThreshold = 15

	// DefaultLowRiskThreshold is the upper bound of the low risk band (cognitive)
	DefaultLowRiskThreshold = 7

	// DefaultMediumRiskThreshold is the upper bound of the medium risk band (cognitive)
	DefaultMediumRiskThreshold = 15

	// DefaultMinScoreFilter hides functions whose cognitive score is below it
	DefaultMinScoreFilter = 0
)

// Default extraction settings
const (
	DefaultExtractionMultiplier = 1.5
	DefaultMinPercentage        = 30
	DefaultMaxPercentage        = 70
	DefaultMaxLineGap           = 2
	DefaultMaxCandidates        = 3
)

// Default tip settings
const (
	DefaultNestingTipThreshold = 3
	DefaultChainThreshold      = 4
)

// Default performance settings
const (
	DefaultMaxGoroutines  = 0
	DefaultTimeoutSeconds = 300
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "JSPLIT"

// ConfigFileCandidates are the file names searched during discovery, in order
var ConfigFileCandidates = []string{
	"jsplit.config.yaml",
	"jsplit.config.yml",
	"jsplit.config.json",
	"jsplit.config.toml",
	".jsplit.yaml",
	".jsplit.yml",
	".jsplit.json",
	".jsplit.toml",
}

// Config represents the main configuration structure
type Config struct {
	// Complexity holds scoring thresholds and risk bands
	Complexity ComplexityConfig `json:"complexity" mapstructure:"complexity" yaml:"complexity"`

	// Extraction holds extraction candidate settings
	Extraction ExtractionConfig `json:"extraction" mapstructure:"extraction" yaml:"extraction"`

	// Tips holds refactoring tip settings
	Tips TipsConfig `json:"tips" mapstructure:"tips" yaml:"tips"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file selection configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds concurrency limits
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// ComplexityConfig holds thresholds for cyclomatic and cognitive scores
type ComplexityConfig struct {
	// CyclomaticThreshold is the maximum acceptable cyclomatic score
	CyclomaticThreshold int `json:"cyclomatic_threshold" mapstructure:"cyclomatic_threshold" yaml:"cyclomatic_threshold"`

	// CognitiveThreshold is the maximum acceptable cognitive score
	CognitiveThreshold int `json:"cognitive_threshold" mapstructure:"cognitive_threshold" yaml:"cognitive_threshold"`

	// LowThreshold is the upper bound for low risk (inclusive, cognitive)
	LowThreshold int `json:"low_threshold" mapstructure:"low_threshold" yaml:"low_threshold"`

	// MediumThreshold is the upper bound for medium risk (inclusive, cognitive)
	// Values above this are considered high risk
	MediumThreshold int `json:"medium_threshold" mapstructure:"medium_threshold" yaml:"medium_threshold"`

	// ReportUnchanged controls whether functions scoring zero are reported
	ReportUnchanged bool `json:"report_unchanged" mapstructure:"report_unchanged" yaml:"report_unchanged"`
}

// ExtractionConfig holds extraction candidate settings
type ExtractionConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Multiplier scales the cognitive threshold into the extraction trigger
	Multiplier float64 `json:"multiplier" mapstructure:"multiplier" yaml:"multiplier"`

	MinPercentage int `json:"min_percentage" mapstructure:"min_percentage" yaml:"min_percentage"`
	MaxPercentage int `json:"max_percentage" mapstructure:"max_percentage" yaml:"max_percentage"`
	MaxLineGap    int `json:"max_line_gap" mapstructure:"max_line_gap" yaml:"max_line_gap"`
	MaxCandidates int `json:"max_candidates" mapstructure:"max_candidates" yaml:"max_candidates"`
}

// TipsConfig holds refactoring tip settings
type TipsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// NestingThreshold is the nesting level that triggers a flattening tip
	NestingThreshold int `json:"nesting_threshold" mapstructure:"nesting_threshold" yaml:"nesting_threshold"`

	// ChainThreshold is the operator count that triggers a condition tip
	ChainThreshold int `json:"chain_threshold" mapstructure:"chain_threshold" yaml:"chain_threshold"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// SortBy specifies how to sort results: cognitive, cyclomatic, name, location
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// ShowDetails controls whether per-construct points are shown
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// ShowSuggestions controls whether extraction suggestions are shown
	ShowSuggestions bool `json:"show_suggestions" mapstructure:"show_suggestions" yaml:"show_suggestions"`

	// MinScore hides functions with a lower cognitive score
	MinScore int `json:"min_score" mapstructure:"min_score" yaml:"min_score"`
}

// AnalysisConfig holds file selection configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// MaxFunctionLines flags longer functions in check (0 = no limit)
	MaxFunctionLines int `json:"max_function_lines" mapstructure:"max_function_lines" yaml:"max_function_lines"`
}

// PerformanceConfig holds concurrency limits
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrent file analysis (0 = number of CPUs)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole analysis run
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Complexity: ComplexityConfig{
			CyclomaticThreshold: DefaultCyclomaticThreshold,
			CognitiveThreshold:  DefaultCognitiveThreshold,
			LowThreshold:        DefaultLowRiskThreshold,
			MediumThreshold:     DefaultMediumRiskThreshold,
			ReportUnchanged:     true,
		},
		Extraction: ExtractionConfig{
			Enabled:       true,
			Multiplier:    DefaultExtractionMultiplier,
			MinPercentage: DefaultMinPercentage,
			MaxPercentage: DefaultMaxPercentage,
			MaxLineGap:    DefaultMaxLineGap,
			MaxCandidates: DefaultMaxCandidates,
		},
		Tips: TipsConfig{
			Enabled:          true,
			NestingThreshold: DefaultNestingTipThreshold,
			ChainThreshold:   DefaultChainThreshold,
		},
		Output: OutputConfig{
			Format:          "text",
			SortBy:          "cognitive",
			ShowDetails:     false,
			ShowSuggestions: true,
			MinScore:        DefaultMinScoreFilter,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.mts", "**/*.cts",
			},
			ExcludePatterns: []string{
				// Package managers and dependencies
				"**/node_modules/**",
				"**/vendor/**",
				// Build outputs
				"**/dist/**",
				"**/build/**",
				"**/out/**",
				// Framework-specific
				"**/.next/**",
				"**/.nuxt/**",
				// Caches and coverage
				"**/.cache/**",
				"**/coverage/**",
				// Minified and bundled files
				"**/*.min.js",
				"**/*.bundle.js",
				"**/*.d.ts",
			},
			RespectGitignore: true,
			Recursive:        true,
			MaxFunctionLines: 0,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// Without an explicit path the file is discovered from targetPath upward.
// Values are layered: embedded defaults, then the file, then JSPLIT_*
// environment variables.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = FindConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile layers the file at configPath over the defaults.
// An empty path applies only defaults and the environment.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("failed to read embedded defaults: %w", err)
	}

	if configPath != "" {
		file := viper.New()
		file.SetConfigFile(configPath)
		if err := file.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := v.MergeConfigMap(file.AllSettings()); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string) string {
	for _, candidate := range ConfigFileCandidates {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// FindConfigFile looks for a configuration file starting at targetPath (or
// the working directory) and walking up to the filesystem root
func FindConfigFile(targetPath string) string {
	start := targetPath
	if start == "" {
		start = "."
	}

	absPath, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	for dir := absPath; ; {
		if config := searchConfigInDirectory(dir); config != "" {
			return config
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Complexity.CyclomaticThreshold < 1 {
		return fmt.Errorf("complexity.cyclomatic_threshold must be >= 1, got %d", c.Complexity.CyclomaticThreshold)
	}

	if c.Complexity.CognitiveThreshold < 1 {
		return fmt.Errorf("complexity.cognitive_threshold must be >= 1, got %d", c.Complexity.CognitiveThreshold)
	}

	if c.Complexity.LowThreshold < 0 {
		return fmt.Errorf("complexity.low_threshold must be >= 0, got %d", c.Complexity.LowThreshold)
	}

	if c.Complexity.MediumThreshold <= c.Complexity.LowThreshold {
		return fmt.Errorf("complexity.medium_threshold (%d) must be > low_threshold (%d)",
			c.Complexity.MediumThreshold, c.Complexity.LowThreshold)
	}

	if err := c.validateExtractionConfig(); err != nil {
		return err
	}

	if c.Tips.NestingThreshold < 1 {
		return fmt.Errorf("tips.nesting_threshold must be >= 1, got %d", c.Tips.NestingThreshold)
	}

	if c.Tips.ChainThreshold < 1 {
		return fmt.Errorf("tips.chain_threshold must be >= 1, got %d", c.Tips.ChainThreshold)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"cognitive":  true,
		"cyclomatic": true,
		"name":       true,
		"location":   true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: cognitive, cyclomatic, name, location", c.Output.SortBy)
	}

	if c.Output.MinScore < 0 {
		return fmt.Errorf("output.min_score must be >= 0, got %d", c.Output.MinScore)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Analysis.MaxFunctionLines < 0 {
		return fmt.Errorf("analysis.max_function_lines must be >= 0, got %d", c.Analysis.MaxFunctionLines)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

func (c *Config) validateExtractionConfig() error {
	e := c.Extraction
	if e.Multiplier <= 0 {
		return fmt.Errorf("extraction.multiplier must be > 0, got %g", e.Multiplier)
	}

	if e.MinPercentage < 0 || e.MaxPercentage > 100 {
		return fmt.Errorf("extraction percentages must lie within 0..100, got %d..%d", e.MinPercentage, e.MaxPercentage)
	}

	if e.MinPercentage > e.MaxPercentage {
		return fmt.Errorf("extraction.min_percentage (%d) cannot exceed max_percentage (%d)",
			e.MinPercentage, e.MaxPercentage)
	}

	if e.MaxLineGap < 0 {
		return fmt.Errorf("extraction.max_line_gap must be >= 0, got %d", e.MaxLineGap)
	}

	if e.MaxCandidates < 1 {
		return fmt.Errorf("extraction.max_candidates must be >= 1, got %d", e.MaxCandidates)
	}

	return nil
}

// AssessRiskLevel determines the risk level of a cognitive score
func (c *ComplexityConfig) AssessRiskLevel(cognitive int) string {
	if cognitive <= c.LowThreshold {
		return "low"
	} else if cognitive <= c.MediumThreshold {
		return "medium"
	}
	return "high"
}

// ShouldReport determines if a function with the given cognitive score is reported
func (c *ComplexityConfig) ShouldReport(cognitive int) bool {
	return cognitive > 0 || c.ReportUnchanged
}

// ExceedsThresholds reports whether either score is above its threshold
func (c *ComplexityConfig) ExceedsThresholds(cyclomatic, cognitive int) bool {
	return cyclomatic > c.CyclomaticThreshold || cognitive > c.CognitiveThreshold
}

// SaveConfig saves configuration to a file; the format follows the extension
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	v.Set("complexity", config.Complexity)
	v.Set("extraction", config.Extraction)
	v.Set("tips", config.Tips)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
