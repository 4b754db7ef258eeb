package config

import (
	"fmt"
	"strings"
)

// ProjectType represents the type of JavaScript/TypeScript project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file selection presets for a project type
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds threshold values for a strictness level
type StrictnessPreset struct {
	CyclomaticThreshold int
	CognitiveThreshold  int
	LowThreshold        int
	MediumThreshold     int
	Multiplier          float64
}

var baseExcludes = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/*.min.js",
	"**/*.bundle.js",
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	web := []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"}
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: web,
			ExcludePatterns: baseExcludes,
		},
		ProjectTypeReact: {
			IncludePatterns: web,
			ExcludePatterns: append(append([]string{}, baseExcludes...), "**/.next/**", "**/coverage/**"),
		},
		ProjectTypeVue: {
			IncludePatterns: web,
			ExcludePatterns: append(append([]string{}, baseExcludes...), "**/.nuxt/**", "**/coverage/**"),
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: append(append([]string{}, baseExcludes...), "**/test/**", "**/tests/**", "**/__tests__/**"),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			CyclomaticThreshold: 15,
			CognitiveThreshold:  25,
			LowThreshold:        10,
			MediumThreshold:     25,
			Multiplier:          2.0,
		},
		StrictnessStandard: {
			CyclomaticThreshold: DefaultCyclomaticThreshold,
			CognitiveThreshold:  DefaultCognitiveThreshold,
			LowThreshold:        DefaultLowRiskThreshold,
			MediumThreshold:     DefaultMediumRiskThreshold,
			Multiplier:          DefaultExtractionMultiplier,
		},
		StrictnessStrict: {
			CyclomaticThreshold: 8,
			CognitiveThreshold:  10,
			LowThreshold:        5,
			MediumThreshold:     10,
			Multiplier:          1.2,
		},
	}
}

// ApplyPresets returns the default configuration adjusted for a project
// type and strictness. Unknown names leave the defaults in place.
func ApplyPresets(projectType ProjectType, strictness Strictness) *Config {
	cfg := DefaultConfig()

	if preset, ok := GetProjectPresets()[projectType]; ok {
		cfg.Analysis.IncludePatterns = preset.IncludePatterns
		cfg.Analysis.ExcludePatterns = preset.ExcludePatterns
	}

	if strict, ok := GetStrictnessPresets()[strictness]; ok {
		cfg.Complexity.CyclomaticThreshold = strict.CyclomaticThreshold
		cfg.Complexity.CognitiveThreshold = strict.CognitiveThreshold
		cfg.Complexity.LowThreshold = strict.LowThreshold
		cfg.Complexity.MediumThreshold = strict.MediumThreshold
		cfg.Extraction.Multiplier = strict.Multiplier
	}

	return cfg
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	cfg := ApplyPresets(projectType, strictness)

	return `# jsplit configuration
# Project type: ` + string(projectType) + `, strictness: ` + string(strictness) + `

# ============================================================================
# COMPLEXITY
# ============================================================================
complexity:
  # Functions above either threshold fail "jsplit check"
  cyclomatic_threshold: ` + fmt.Sprint(cfg.Complexity.CyclomaticThreshold) + `
  cognitive_threshold: ` + fmt.Sprint(cfg.Complexity.CognitiveThreshold) + `

  # Risk bands on the cognitive score
  low_threshold: ` + fmt.Sprint(cfg.Complexity.LowThreshold) + `
  medium_threshold: ` + fmt.Sprint(cfg.Complexity.MediumThreshold) + `

  # Report functions that score zero
  report_unchanged: false

# ============================================================================
# EXTRACTION CANDIDATES
# ============================================================================
extraction:
  enabled: true
  # Candidates are sought when cognitive > cognitive_threshold * multiplier
  multiplier: ` + fmt.Sprint(cfg.Extraction.Multiplier) + `
  min_percentage: ` + fmt.Sprint(cfg.Extraction.MinPercentage) + `
  max_percentage: ` + fmt.Sprint(cfg.Extraction.MaxPercentage) + `
  max_line_gap: ` + fmt.Sprint(cfg.Extraction.MaxLineGap) + `
  max_candidates: ` + fmt.Sprint(cfg.Extraction.MaxCandidates) + `

# ============================================================================
# REFACTORING TIPS
# ============================================================================
tips:
  enabled: true
  nesting_threshold: ` + fmt.Sprint(cfg.Tips.NestingThreshold) + `
  chain_threshold: ` + fmt.Sprint(cfg.Tips.ChainThreshold) + `

# ============================================================================
# OUTPUT
# ============================================================================
output:
  # text, json, yaml, csv or html
  format: text
  # cognitive, cyclomatic, name or location
  sort_by: cognitive
  show_details: false
  show_suggestions: true
  min_score: 0

# ============================================================================
# ANALYSIS SCOPE
# ============================================================================
analysis:
  include_patterns:
` + formatYAMLList(cfg.Analysis.IncludePatterns) + `
  exclude_patterns:
` + formatYAMLList(cfg.Analysis.ExcludePatterns) + `
  respect_gitignore: true
  recursive: true
  max_function_lines: 0

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # 0 = number of CPUs
  max_goroutines: 0
  timeout_seconds: ` + fmt.Sprint(cfg.Performance.TimeoutSeconds) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# jsplit configuration (minimal)
# Run "jsplit init" without --minimal for every option.

complexity:
  cyclomatic_threshold: 10
  cognitive_threshold: 15

analysis:
  include_patterns: ["**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"]
  exclude_patterns: ["**/node_modules/**", "**/dist/**"]
`
}

// formatYAMLList formats items as an indented YAML sequence
func formatYAMLList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(`    - "` + item + `"`)
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
