package service

import (
	"fmt"

	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalyzeRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	req := RequestFromConfig(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig discovers a configuration file from targetPath upward.
// A broken discovered file falls back to the built-in defaults.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(targetPath string) *domain.AnalyzeRequest {
	cfg, err := config.LoadConfigWithTarget("", targetPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return RequestFromConfig(cfg)
}

// FindDefaultConfigFile returns the configuration file that applies to targetPath
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile(targetPath string) string {
	return config.FindConfigFile(targetPath)
}

// MergeConfig merges CLI flags with configuration file. Non-zero values of
// override win; boolean switches can only be turned on here, the CLI turns
// them off explicitly.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalyzeRequest, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	merged := *base

	// Always override paths as they come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ShowDetails {
		merged.ShowDetails = true
	}
	if override.ShowSuggestions {
		merged.ShowSuggestions = true
	}

	if override.MinScore > 0 {
		merged.MinScore = override.MinScore
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}

	mergeInt(&merged.CyclomaticThreshold, override.CyclomaticThreshold)
	mergeInt(&merged.CognitiveThreshold, override.CognitiveThreshold)
	mergeInt(&merged.LowThreshold, override.LowThreshold)
	mergeInt(&merged.MediumThreshold, override.MediumThreshold)

	if override.Multiplier > 0 {
		merged.Multiplier = override.Multiplier
	}
	mergeInt(&merged.MinPercentage, override.MinPercentage)
	mergeInt(&merged.MaxPercentage, override.MaxPercentage)
	mergeInt(&merged.MaxLineGap, override.MaxLineGap)
	mergeInt(&merged.MaxCandidates, override.MaxCandidates)

	mergeInt(&merged.NestingTipThreshold, override.NestingTipThreshold)
	mergeInt(&merged.ChainThreshold, override.ChainThreshold)

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	mergeInt(&merged.MaxFunctionLines, override.MaxFunctionLines)
	mergeInt(&merged.MaxGoroutines, override.MaxGoroutines)
	mergeInt(&merged.TimeoutSeconds, override.TimeoutSeconds)

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

func mergeInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// RequestFromConfig converts a Config to an AnalyzeRequest. Paths are set
// by the caller.
func RequestFromConfig(cfg *config.Config) *domain.AnalyzeRequest {
	return &domain.AnalyzeRequest{
		Paths: []string{},

		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		ShowDetails:     cfg.Output.ShowDetails,
		ShowSuggestions: cfg.Output.ShowSuggestions,
		MinScore:        cfg.Output.MinScore,
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),

		CyclomaticThreshold: cfg.Complexity.CyclomaticThreshold,
		CognitiveThreshold:  cfg.Complexity.CognitiveThreshold,
		LowThreshold:        cfg.Complexity.LowThreshold,
		MediumThreshold:     cfg.Complexity.MediumThreshold,
		ReportUnchanged:     cfg.Complexity.ReportUnchanged,

		ExtractionEnabled: cfg.Extraction.Enabled,
		Multiplier:        cfg.Extraction.Multiplier,
		MinPercentage:     cfg.Extraction.MinPercentage,
		MaxPercentage:     cfg.Extraction.MaxPercentage,
		MaxLineGap:        cfg.Extraction.MaxLineGap,
		MaxCandidates:     cfg.Extraction.MaxCandidates,

		TipsEnabled:         cfg.Tips.Enabled,
		NestingTipThreshold: cfg.Tips.NestingThreshold,
		ChainThreshold:      cfg.Tips.ChainThreshold,

		Recursive:        cfg.Analysis.Recursive,
		RespectGitignore: cfg.Analysis.RespectGitignore,
		IncludePatterns:  cfg.Analysis.IncludePatterns,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		MaxFunctionLines: cfg.Analysis.MaxFunctionLines,

		MaxGoroutines:  cfg.Performance.MaxGoroutines,
		TimeoutSeconds: cfg.Performance.TimeoutSeconds,
	}
}

// ValidateConfig validates a merged request
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.AnalyzeRequest) error {
	if req.LowThreshold <= 0 {
		return fmt.Errorf("low_threshold must be greater than 0, got %d", req.LowThreshold)
	}
	if req.MediumThreshold <= req.LowThreshold {
		return fmt.Errorf("medium_threshold (%d) must be greater than low_threshold (%d)",
			req.MediumThreshold, req.LowThreshold)
	}
	if req.MinScore < 0 {
		return fmt.Errorf("min_score cannot be negative, got %d", req.MinScore)
	}
	if req.Multiplier < 0 {
		return fmt.Errorf("multiplier cannot be negative, got %g", req.Multiplier)
	}
	if req.MinPercentage > 0 && req.MaxPercentage > 0 && req.MinPercentage > req.MaxPercentage {
		return fmt.Errorf("min_percentage (%d) cannot be greater than max_percentage (%d)",
			req.MinPercentage, req.MaxPercentage)
	}

	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText: true,
		domain.OutputFormatJSON: true,
		domain.OutputFormatYAML: true,
		domain.OutputFormatCSV:  true,
		domain.OutputFormatHTML: true,
	}
	if !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, csv, html)",
			req.OutputFormat)
	}

	validSorts := map[domain.SortCriteria]bool{
		"":                      true,
		domain.SortByCognitive:  true,
		domain.SortByCyclomatic: true,
		domain.SortByName:       true,
		domain.SortByLocation:   true,
	}
	if !validSorts[req.SortBy] {
		return fmt.Errorf("invalid sort criteria: %s (must be one of: cognitive, cyclomatic, name, location)",
			req.SortBy)
	}

	return nil
}
