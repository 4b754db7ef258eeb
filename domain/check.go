package domain

// Check rules
const (
	RuleMaxCyclomatic    = "max-cyclomatic"
	RuleMaxCognitive     = "max-cognitive"
	RuleMaxFunctionLines = "max-function-lines"
	RuleParseError       = "parse-error"
)

// CheckResult represents the result of a quality check
type CheckResult struct {
	Passed      bool             `json:"passed" yaml:"passed"`
	ExitCode    int              `json:"exit_code" yaml:"exit_code"`
	Violations  []CheckViolation `json:"violations" yaml:"violations"`
	Summary     CheckSummary     `json:"summary" yaml:"summary"`
	Duration    int64            `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string           `json:"generated_at" yaml:"generated_at"`
	Version     string           `json:"version" yaml:"version"`
}

// CheckViolation represents a single threshold violation
type CheckViolation struct {
	Rule      string `json:"rule" yaml:"rule"`                               // max-cognitive, max-cyclomatic, ...
	Severity  string `json:"severity" yaml:"severity"`                       // error, warning
	Message   string `json:"message" yaml:"message"`                         // Human-readable description
	Function  string `json:"function,omitempty" yaml:"function,omitempty"`   // Offending function
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`   // File:line if applicable
	Actual    int    `json:"actual" yaml:"actual"`                           // Actual value
	Threshold int    `json:"threshold,omitempty" yaml:"threshold,omitempty"` // Configured threshold
	// Suggestion names the strongest extraction candidate, when one exists
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesAnalyzed        int `json:"files_analyzed" yaml:"files_analyzed"`
	FunctionsChecked     int `json:"functions_checked" yaml:"functions_checked"`
	TotalViolations      int `json:"total_violations" yaml:"total_violations"`
	CyclomaticViolations int `json:"cyclomatic_violations" yaml:"cyclomatic_violations"`
	CognitiveViolations  int `json:"cognitive_violations" yaml:"cognitive_violations"`
	LengthViolations     int `json:"length_violations" yaml:"length_violations"`
	ParseErrors          int `json:"parse_errors" yaml:"parse_errors"`
}
