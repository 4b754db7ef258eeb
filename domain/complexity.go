package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// SortCriteria represents the criteria for sorting results
type SortCriteria string

const (
	SortByCognitive  SortCriteria = "cognitive"
	SortByCyclomatic SortCriteria = "cyclomatic"
	SortByName       SortCriteria = "name"
	SortByLocation   SortCriteria = "location"
)

// RiskLevel represents the complexity risk level
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// AnalyzeRequest represents a request for complexity analysis
type AnalyzeRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat    OutputFormat
	OutputWriter    io.Writer
	ShowDetails     bool
	ShowSuggestions bool

	// Filtering and sorting
	MinScore int
	SortBy   SortCriteria

	// Score thresholds
	CyclomaticThreshold int
	CognitiveThreshold  int
	LowThreshold        int
	MediumThreshold     int
	ReportUnchanged     bool

	// Extraction candidates
	ExtractionEnabled bool
	Multiplier        float64
	MinPercentage     int
	MaxPercentage     int
	MaxLineGap        int
	MaxCandidates     int

	// Refactoring tips
	TipsEnabled         bool
	NestingTipThreshold int
	ChainThreshold      int

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive        bool
	RespectGitignore bool
	IncludePatterns  []string
	ExcludePatterns  []string
	MaxFunctionLines int

	// Performance
	MaxGoroutines  int
	TimeoutSeconds int
}

// ComplexityPointView is one scored construct of a function
type ComplexityPointView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Amount  int    `json:"amount" yaml:"amount"`
	Nesting int    `json:"nesting" yaml:"nesting"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	EndLine int    `json:"end_line" yaml:"end_line"`
}

// TypedVariableView is a variable crossing an extraction boundary
type TypedVariableView struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ExtractionIssueView is a problem that blocks a clean extraction
type ExtractionIssueView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
}

// ExtractionView is a recommended extraction range with its rating
type ExtractionView struct {
	StartLine            int                   `json:"start_line" yaml:"start_line"`
	EndLine              int                   `json:"end_line" yaml:"end_line"`
	Complexity           int                   `json:"complexity" yaml:"complexity"`
	ComplexityPercentage int                   `json:"complexity_percentage" yaml:"complexity_percentage"`
	ConstructKinds       []string              `json:"construct_kinds" yaml:"construct_kinds"`
	Confidence           string                `json:"confidence" yaml:"confidence"`
	Inputs               []TypedVariableView   `json:"inputs" yaml:"inputs"`
	Outputs              []TypedVariableView   `json:"outputs" yaml:"outputs"`
	SuggestedSignature   string                `json:"suggested_signature,omitempty" yaml:"suggested_signature,omitempty"`
	Issues               []ExtractionIssueView `json:"issues,omitempty" yaml:"issues,omitempty"`
	Suggestions          []string              `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// FunctionComplexity represents the analysis result for a single function
type FunctionComplexity struct {
	// Function identification
	Name        string `json:"name" yaml:"name"`
	FilePath    string `json:"file_path" yaml:"file_path"`
	StartLine   int    `json:"start_line" yaml:"start_line"`
	StartColumn int    `json:"start_column" yaml:"start_column"`
	EndLine     int    `json:"end_line" yaml:"end_line"`
	LineCount   int    `json:"line_count" yaml:"line_count"`

	// Scores
	Cyclomatic int `json:"cyclomatic" yaml:"cyclomatic"`
	Cognitive  int `json:"cognitive" yaml:"cognitive"`
	MaxNesting int `json:"max_nesting" yaml:"max_nesting"`

	// Risk assessment
	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`

	// Per-construct attribution, present with ShowDetails
	CyclomaticPoints []ComplexityPointView `json:"cyclomatic_points,omitempty" yaml:"cyclomatic_points,omitempty"`
	CognitivePoints  []ComplexityPointView `json:"cognitive_points,omitempty" yaml:"cognitive_points,omitempty"`

	// Recommendations, present with ShowSuggestions
	Extractions []ExtractionView `json:"extractions,omitempty" yaml:"extractions,omitempty"`
	Tips        []string         `json:"tips,omitempty" yaml:"tips,omitempty"`
}

// FileResult is the analysis of one file
type FileResult struct {
	FilePath  string               `json:"file_path" yaml:"file_path"`
	Functions []FunctionComplexity `json:"functions" yaml:"functions"`
	Error     string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// AnalyzeSummary represents aggregate statistics
type AnalyzeSummary struct {
	FilesAnalyzed   int `json:"files_analyzed" yaml:"files_analyzed"`
	FilesWithErrors int `json:"files_with_errors" yaml:"files_with_errors"`
	TotalFunctions  int `json:"total_functions" yaml:"total_functions"`

	AverageCyclomatic float64 `json:"average_cyclomatic" yaml:"average_cyclomatic"`
	AverageCognitive  float64 `json:"average_cognitive" yaml:"average_cognitive"`
	MaxCyclomatic     int     `json:"max_cyclomatic" yaml:"max_cyclomatic"`
	MaxCognitive      int     `json:"max_cognitive" yaml:"max_cognitive"`

	// Risk distribution
	LowRiskFunctions    int `json:"low_risk_functions" yaml:"low_risk_functions"`
	MediumRiskFunctions int `json:"medium_risk_functions" yaml:"medium_risk_functions"`
	HighRiskFunctions   int `json:"high_risk_functions" yaml:"high_risk_functions"`

	FunctionsOverThreshold int `json:"functions_over_threshold" yaml:"functions_over_threshold"`
	ExtractionCandidates   int `json:"extraction_candidates" yaml:"extraction_candidates"`
}

// AnalyzeResponse represents the complete analysis result
type AnalyzeResponse struct {
	// Analysis results
	Functions []FunctionComplexity `json:"functions" yaml:"functions"`
	Summary   AnalyzeSummary       `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"` // Configuration used for analysis
}

// AnalyzeService defines the core business logic for complexity analysis
type AnalyzeService interface {
	// Analyze performs complexity analysis on the given request
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// AnalyzeFile analyzes a single JavaScript/TypeScript file
	AnalyzeFile(ctx context.Context, filePath string, req AnalyzeRequest) (*FileResult, error)
}

// FileCollector defines JavaScript/TypeScript file discovery and reading
type FileCollector interface {
	// CollectJSFiles finds the source files below paths that match the
	// include patterns, skipping excluded and (optionally) git-ignored files
	CollectJSFiles(paths []string, recursive bool, includePatterns, excludePatterns []string, respectGitignore bool) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidJSFile checks if a path has a JavaScript/TypeScript extension
	IsValidJSFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *AnalyzeResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *AnalyzeResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*AnalyzeRequest, error)

	// LoadDefaultConfig discovers configuration from targetPath upward,
	// falling back to built-in defaults
	LoadDefaultConfig(targetPath string) *AnalyzeRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *AnalyzeRequest, override *AnalyzeRequest) *AnalyzeRequest
}
