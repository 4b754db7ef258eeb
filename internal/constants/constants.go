package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "jsplit"

	// ConfigFileName is the file written by "jsplit init"
	ConfigFileName = "jsplit.config.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "JSPLIT"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
	OutputFormatCSV  = "csv"
	OutputFormatHTML = "html"
)

// Exit codes of the check command
const (
	ExitCodeSuccess    = 0
	ExitCodeViolations = 1
	ExitCodeError      = 2
)
