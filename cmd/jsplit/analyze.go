package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/app"
	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/service"
)

type analyzeOptions struct {
	scope scopeFlags

	format      string
	jsonOutput  bool
	htmlOutput  bool
	outputPath  string
	sortBy      string
	minScore    int
	details     bool
	suggestions bool

	cyclomaticThreshold int
	cognitiveThreshold  int
	multiplier          float64
	maxCandidates       int
}

func analyzeCmd() *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Score functions and suggest extractions",
		Long: `Score every function for cyclomatic and cognitive complexity. Functions
whose cognitive complexity is well above the threshold get extraction
candidates: line ranges that can move to a new function, with the
parameters and return values that function would need.

Examples:
  jsplit analyze src/
  jsplit analyze --details --sort cyclomatic src/
  jsplit analyze --format json src/ > report.json
  jsplit analyze --html -o report.html src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	o.scope.register(cmd)
	cmd.Flags().StringVarP(&o.format, "format", "f", "",
		"Output format: text, json, yaml, csv, html (default from config: text)")
	cmd.Flags().BoolVar(&o.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&o.htmlOutput, "html", false,
		"Output results as HTML (shorthand for --format html)")
	cmd.Flags().StringVarP(&o.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&o.sortBy, "sort", "s", "",
		"Sort by: cognitive, cyclomatic, name, location")
	cmd.Flags().IntVar(&o.minScore, "min-score", 0,
		"Only report functions with at least this cognitive complexity")
	cmd.Flags().BoolVarP(&o.details, "details", "d", false,
		"Show the per-construct complexity breakdown")
	cmd.Flags().BoolVar(&o.suggestions, "suggestions", true,
		"Show extraction candidates and refactoring tips")
	cmd.Flags().IntVar(&o.cyclomaticThreshold, "cyclomatic-threshold", 0,
		"Cyclomatic complexity threshold")
	cmd.Flags().IntVar(&o.cognitiveThreshold, "cognitive-threshold", 0,
		"Cognitive complexity threshold")
	cmd.Flags().Float64Var(&o.multiplier, "multiplier", 0,
		"Look for extractions when cognitive > threshold * multiplier")
	cmd.Flags().IntVar(&o.maxCandidates, "max-candidates", 0,
		"Maximum extraction candidates per function")

	return cmd
}

func (o *analyzeOptions) outputFormat() domain.OutputFormat {
	switch {
	case o.jsonOutput:
		return domain.OutputFormatJSON
	case o.htmlOutput:
		return domain.OutputFormatHTML
	default:
		return domain.OutputFormat(o.format)
	}
}

func (o *analyzeOptions) request(cmd *cobra.Command, args []string) (*domain.AnalyzeRequest, error) {
	req, err := o.scope.loadRequest(cmd, args, &domain.AnalyzeRequest{
		OutputFormat:        o.outputFormat(),
		SortBy:              domain.SortCriteria(o.sortBy),
		MinScore:            o.minScore,
		CyclomaticThreshold: o.cyclomaticThreshold,
		CognitiveThreshold:  o.cognitiveThreshold,
		Multiplier:          o.multiplier,
		MaxCandidates:       o.maxCandidates,
	})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("details") {
		req.ShowDetails = o.details
	}
	if flags.Changed("suggestions") {
		req.ShowSuggestions = o.suggestions
	}
	return req, nil
}

func (o *analyzeOptions) run(cmd *cobra.Command, args []string) error {
	req, err := o.request(cmd, args)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd.OutOrStdout(), o.outputPath)
	if err != nil {
		return err
	}
	defer closeOut()
	req.OutputWriter = out

	logger := newLogger()
	if req.ConfigPath != "" {
		logger.Info("using configuration", "path", req.ConfigPath)
	}

	pm := service.NewProgressManager(!quiet)
	defer pm.Close()

	uc, err := app.NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalyzeService(logger, pm, nil)).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		return err
	}

	if _, err := uc.Execute(cmd.Context(), *req); err != nil {
		return err
	}

	if o.outputPath != "" {
		absPath, _ := filepath.Abs(o.outputPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to: %s\n", absPath)
	}
	return nil
}

// openOutput returns stdout, or the created file at path
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, domain.NewOutputError("failed to create output file", err)
	}
	return file, func() { _ = file.Close() }, nil
}
