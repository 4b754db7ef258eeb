package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/app"
	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/constants"
	"github.com/ludo-technologies/jsplit/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

type checkOptions struct {
	scope scopeFlags

	maxCyclomatic int
	maxCognitive  int
	maxLines      int
	format        string
	jsonOutput    bool
}

func checkCmd() *cobra.Command {
	o := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fail when functions exceed complexity thresholds",
		Long: `Check every function against the configured thresholds for CI/CD.

Exit codes:
  0 - All checks pass
  1 - Threshold(s) violated
  2 - Analysis error (file not found, parse error, bad configuration)

Examples:
  jsplit check src/
  jsplit check --max-cognitive 10 --max-cyclomatic 8 src/
  jsplit check --max-lines 80 --json src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	o.scope.register(cmd)
	cmd.Flags().IntVar(&o.maxCyclomatic, "max-cyclomatic", 0,
		"Maximum cyclomatic complexity per function (default from config)")
	cmd.Flags().IntVar(&o.maxCognitive, "max-cognitive", 0,
		"Maximum cognitive complexity per function (default from config)")
	cmd.Flags().IntVar(&o.maxLines, "max-lines", 0,
		"Maximum lines per function, reported as warnings (0 = no limit)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&o.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")

	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitCodeError, Message: "no paths specified"}
	}

	format := domain.OutputFormat(o.format)
	if o.jsonOutput {
		format = domain.OutputFormatJSON
	}
	switch format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	default:
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("unsupported check format: %s", format)}
	}

	req, err := o.scope.loadRequest(cmd, args, &domain.AnalyzeRequest{
		CyclomaticThreshold: o.maxCyclomatic,
		CognitiveThreshold:  o.maxCognitive,
		MaxFunctionLines:    o.maxLines,
	})
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	pm := service.NewProgressManager(!quiet && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewAnalyzeService(newLogger(), pm, nil)
	uc := app.NewCheckUseCase(app.NewAnalyzeUseCase(svc, nil))

	result, err := uc.Execute(cmd.Context(), *req)
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	if err := service.NewOutputFormatter().WriteCheck(result, format, cmd.OutOrStdout()); err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	if result.ExitCode != constants.ExitCodeSuccess {
		// Report already printed
		return &CheckExitError{Code: result.ExitCode}
	}
	return nil
}
