package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/jsplit/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Format renders the response into a string
func (f *OutputFormatterImpl) Format(response *domain.AnalyzeResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	var err error
	switch format {
	case domain.OutputFormatText, "":
		err = f.writeText(response, writer)
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		err = f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		err = f.writeHTML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError("failed to write "+string(format)+" output", err)
	}
	return nil
}

// WriteCheck writes a check result. Text output lists violations; the
// structured formats serialize the whole result.
func (f *OutputFormatterImpl) WriteCheck(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	var err error
	switch format {
	case domain.OutputFormatText, "":
		err = f.writeCheckText(result, writer)
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, result)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, result)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError("failed to write check result", err)
	}
	return nil
}

// writeText writes the response as a human readable report
func (f *OutputFormatterImpl) writeText(response *domain.AnalyzeResponse, w io.Writer) error {
	tw := &textWriter{w: w}

	tw.printf("\n=== Complexity Analysis ===\n\n")
	tw.printf("Generated: %s\n", response.GeneratedAt)
	tw.printf("Version: %s\n\n", response.Version)

	s := response.Summary
	tw.printf("Summary:\n")
	tw.printf("  Files analyzed: %d\n", s.FilesAnalyzed)
	if s.FilesWithErrors > 0 {
		tw.printf("  Files with errors: %d\n", s.FilesWithErrors)
	}
	tw.printf("  Total functions: %d\n", s.TotalFunctions)
	tw.printf("  Average cyclomatic: %.2f\n", s.AverageCyclomatic)
	tw.printf("  Average cognitive: %.2f\n", s.AverageCognitive)
	tw.printf("  Max cyclomatic: %d\n", s.MaxCyclomatic)
	tw.printf("  Max cognitive: %d\n", s.MaxCognitive)
	tw.printf("  Over threshold: %d\n", s.FunctionsOverThreshold)
	tw.printf("  Extraction candidates: %d\n\n", s.ExtractionCandidates)

	tw.printf("Risk Distribution:\n")
	tw.printf("  High risk: %d\n", s.HighRiskFunctions)
	tw.printf("  Medium risk: %d\n", s.MediumRiskFunctions)
	tw.printf("  Low risk: %d\n", s.LowRiskFunctions)

	if len(response.Functions) > 0 {
		tw.printf("\nFunctions:\n")
		for _, fn := range response.Functions {
			f.writeFunctionText(tw, fn)
		}
	}

	if len(response.Warnings) > 0 {
		tw.printf("\nWarnings:\n")
		for _, msg := range response.Warnings {
			tw.printf("  - %s\n", msg)
		}
	}

	if len(response.Errors) > 0 {
		tw.printf("\nErrors:\n")
		for _, msg := range response.Errors {
			tw.printf("  - %s\n", msg)
		}
	}

	return tw.err
}

func (f *OutputFormatterImpl) writeFunctionText(tw *textWriter, fn domain.FunctionComplexity) {
	riskIndicator := ""
	switch fn.RiskLevel {
	case domain.RiskLevelHigh:
		riskIndicator = " [HIGH]"
	case domain.RiskLevelMedium:
		riskIndicator = " [MEDIUM]"
	}

	tw.printf("  %s: cognitive %d, cyclomatic %d, nesting %d%s\n",
		fn.Name, fn.Cognitive, fn.Cyclomatic, fn.MaxNesting, riskIndicator)
	tw.printf("    File: %s:%d-%d\n", fn.FilePath, fn.StartLine, fn.EndLine)

	if len(fn.CognitivePoints) > 0 {
		tw.printf("    Cognitive breakdown:\n")
		for _, p := range fn.CognitivePoints {
			tw.printf("      line %d: %s +%d", p.Line, p.Kind, p.Amount)
			if p.Nesting > 0 {
				tw.printf(" (nesting %d)", p.Nesting)
			}
			tw.printf("\n")
		}
	}
	if len(fn.CyclomaticPoints) > 0 {
		tw.printf("    Cyclomatic breakdown:\n")
		for _, p := range fn.CyclomaticPoints {
			tw.printf("      line %d: %s +%d\n", p.Line, p.Kind, p.Amount)
		}
	}

	for _, e := range fn.Extractions {
		tw.printf("    Extract lines %d-%d (%d%% of complexity, %s confidence)\n",
			e.StartLine, e.EndLine, e.ComplexityPercentage, e.Confidence)
		if e.SuggestedSignature != "" {
			tw.printf("      %s\n", e.SuggestedSignature)
		}
		for _, issue := range e.Issues {
			tw.printf("      ! line %d: %s\n", issue.Line, issue.Message)
		}
		for _, hint := range e.Suggestions {
			tw.printf("      - %s\n", hint)
		}
	}

	for _, tip := range fn.Tips {
		tw.printf("    Tip: %s\n", tip)
	}
}

func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, w io.Writer) error {
	tw := &textWriter{w: w}

	if result.Passed {
		tw.printf("All checks passed (%d functions in %d files)\n",
			result.Summary.FunctionsChecked, result.Summary.FilesAnalyzed)
		return tw.err
	}

	for _, v := range result.Violations {
		tw.printf("%s: [%s] %s\n", v.Location, v.Rule, v.Message)
		if v.Suggestion != "" {
			tw.printf("  %s\n", v.Suggestion)
		}
	}
	tw.printf("\n%d violation(s): %d cyclomatic, %d cognitive, %d length, %d parse errors\n",
		result.Summary.TotalViolations,
		result.Summary.CyclomaticViolations,
		result.Summary.CognitiveViolations,
		result.Summary.LengthViolations,
		result.Summary.ParseErrors)
	return tw.err
}

var csvHeader = []string{
	"file", "function", "start_line", "end_line", "lines",
	"cyclomatic", "cognitive", "max_nesting", "risk", "extractions",
}

// writeCSV writes one row per function
func (f *OutputFormatterImpl) writeCSV(response *domain.AnalyzeResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, fn := range response.Functions {
		ranges := make([]string, 0, len(fn.Extractions))
		for _, e := range fn.Extractions {
			ranges = append(ranges, fmt.Sprintf("%d-%d", e.StartLine, e.EndLine))
		}
		record := []string{
			fn.FilePath,
			fn.Name,
			strconv.Itoa(fn.StartLine),
			strconv.Itoa(fn.EndLine),
			strconv.Itoa(fn.LineCount),
			strconv.Itoa(fn.Cyclomatic),
			strconv.Itoa(fn.Cognitive),
			strconv.Itoa(fn.MaxNesting),
			string(fn.RiskLevel),
			strings.Join(ranges, ";"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// textWriter remembers the first write error
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
