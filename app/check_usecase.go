package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/constants"
	"github.com/ludo-technologies/jsplit/internal/version"
)

// CheckUseCase turns an analysis into pass/fail threshold violations for CI
type CheckUseCase struct {
	analyze *AnalyzeUseCase
}

// NewCheckUseCase creates a check use case on top of an analyze use case
func NewCheckUseCase(analyze *AnalyzeUseCase) *CheckUseCase {
	return &CheckUseCase{analyze: analyze}
}

// Execute analyzes req.Paths and reports every function over the
// cyclomatic, cognitive or length limits. Files that fail to parse are
// reported as parse-error violations and set the error exit code.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (*domain.CheckResult, error) {
	start := time.Now()

	// every function is checked, the report is written by the caller
	req.MinScore = 0
	req.ReportUnchanged = true
	req.ShowSuggestions = true
	req.ShowDetails = false
	req.SortBy = domain.SortByLocation
	req.OutputWriter = nil

	resp, err := uc.analyze.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &domain.CheckResult{
		Violations:  []domain.CheckViolation{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
		Summary: domain.CheckSummary{
			FilesAnalyzed:    resp.Summary.FilesAnalyzed,
			FunctionsChecked: len(resp.Functions),
		},
	}

	for _, fn := range resp.Functions {
		uc.checkFunction(fn, req, result)
	}
	for _, msg := range resp.Errors {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Rule:     domain.RuleParseError,
			Severity: "error",
			Message:  msg,
		})
		result.Summary.ParseErrors++
	}

	result.Summary.TotalViolations = len(result.Violations)
	result.Passed = result.Summary.TotalViolations == 0
	switch {
	case result.Summary.ParseErrors > 0:
		result.ExitCode = constants.ExitCodeError
	case !result.Passed:
		result.ExitCode = constants.ExitCodeViolations
	default:
		result.ExitCode = constants.ExitCodeSuccess
	}
	result.Duration = time.Since(start).Milliseconds()

	return result, nil
}

func (uc *CheckUseCase) checkFunction(fn domain.FunctionComplexity, req domain.AnalyzeRequest, result *domain.CheckResult) {
	location := fmt.Sprintf("%s:%d", fn.FilePath, fn.StartLine)

	if req.CyclomaticThreshold > 0 && fn.Cyclomatic > req.CyclomaticThreshold {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Rule:      domain.RuleMaxCyclomatic,
			Severity:  "error",
			Message:   fmt.Sprintf("%s has cyclomatic complexity %d (max %d)", fn.Name, fn.Cyclomatic, req.CyclomaticThreshold),
			Function:  fn.Name,
			Location:  location,
			Actual:    fn.Cyclomatic,
			Threshold: req.CyclomaticThreshold,
		})
		result.Summary.CyclomaticViolations++
	}

	if req.CognitiveThreshold > 0 && fn.Cognitive > req.CognitiveThreshold {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Rule:       domain.RuleMaxCognitive,
			Severity:   "error",
			Message:    fmt.Sprintf("%s has cognitive complexity %d (max %d)", fn.Name, fn.Cognitive, req.CognitiveThreshold),
			Function:   fn.Name,
			Location:   location,
			Actual:     fn.Cognitive,
			Threshold:  req.CognitiveThreshold,
			Suggestion: extractionHint(fn),
		})
		result.Summary.CognitiveViolations++
	}

	if req.MaxFunctionLines > 0 && fn.LineCount > req.MaxFunctionLines {
		result.Violations = append(result.Violations, domain.CheckViolation{
			Rule:      domain.RuleMaxFunctionLines,
			Severity:  "warning",
			Message:   fmt.Sprintf("%s spans %d lines (max %d)", fn.Name, fn.LineCount, req.MaxFunctionLines),
			Function:  fn.Name,
			Location:  location,
			Actual:    fn.LineCount,
			Threshold: req.MaxFunctionLines,
		})
		result.Summary.LengthViolations++
	}
}

// extractionHint describes the strongest extraction candidate of fn
func extractionHint(fn domain.FunctionComplexity) string {
	if len(fn.Extractions) == 0 {
		return ""
	}
	best := fn.Extractions[0]
	for _, e := range fn.Extractions[1:] {
		if e.Complexity > best.Complexity {
			best = e
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "consider extracting lines %d-%d (%d%% of complexity, %s confidence)",
		best.StartLine, best.EndLine, best.ComplexityPercentage, best.Confidence)
	if best.SuggestedSignature != "" {
		fmt.Fprintf(&b, " as %s", best.SuggestedSignature)
	}
	return b.String()
}
