package analyzer

import (
	"fmt"
	"strings"
)

// ExtractedFunctionName is the placeholder name used in synthesized signatures
const ExtractedFunctionName = "extractedFunction"

// Parameter and output limits that lower confidence
const (
	maxHighConfidenceInputs  = 3
	maxHighConfidenceOutputs = 1
	maxInputs                = 5
	maxOutputs               = 2
)

// Confidence rates how safely a candidate can be extracted
type Confidence string

// Confidence levels
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IssueKind classifies a problem that blocks a clean extraction
type IssueKind string

// Issue kinds
const (
	IssueMutation        IssueKind = "mutation"
	IssueClosure         IssueKind = "closure"
	IssueTooManyParams   IssueKind = "too-many-parameters"
	IssueMultipleOutputs IssueKind = "multiple-outputs"
	IssueEarlyReturn     IssueKind = "early-return"
	IssueSelfReference   IssueKind = "self-reference"
)

var issueAdvice = map[IssueKind]string{
	IssueMutation:        "Return the updated value instead of mutating variables declared outside the range",
	IssueClosure:         "Pass captured variables explicitly or declare them with const",
	IssueTooManyParams:   "Group related parameters into a single object",
	IssueMultipleOutputs: "Split the range or return an object holding the outputs",
	IssueEarlyReturn:     "Replace early returns with a result value the caller checks",
	IssueSelfReference:   "Extract into a method or pass the fields that are read from this",
}

// ExtractionIssue is one problem found in a candidate range
type ExtractionIssue struct {
	Kind    IssueKind
	Message string
	Line    int
}

// TypedVariable is a variable crossing the range boundary with its
// annotated type, if any
type TypedVariable struct {
	Name string
	Type string
}

// ExtractionSuggestion is the recommendation produced for one candidate
type ExtractionSuggestion struct {
	StartLine            int
	EndLine              int
	Complexity           int
	ComplexityPercentage int
	ConstructKinds       []ConstructKind
	Confidence           Confidence
	Inputs               []TypedVariable
	Outputs              []TypedVariable
	// SuggestedSignature is empty when no signature is offered
	SuggestedSignature string
	Issues             []ExtractionIssue
	Suggestions        []string
}

// HasSignature reports whether a signature was synthesized
func (s ExtractionSuggestion) HasSignature() bool {
	return s.SuggestedSignature != ""
}

// GenerateSuggestion rates a candidate from its flow analysis and, when
// the extraction looks clean, synthesizes a signature for it.
func GenerateSuggestion(c ExtractionCandidate, flow VariableFlowAnalysis) ExtractionSuggestion {
	s := ExtractionSuggestion{
		StartLine:            c.StartLine,
		EndLine:              c.EndLine,
		Complexity:           c.Complexity,
		ComplexityPercentage: c.ComplexityPercentage,
		ConstructKinds:       c.ConstructKinds,
		Confidence:           confidenceOf(flow),
		Inputs:               typed(flow.Inputs),
		Outputs:              typed(flow.Outputs),
	}

	s.Issues = collectIssues(c, flow)
	s.Suggestions = adviceFor(s.Issues)

	if s.Confidence != ConfidenceLow && len(s.Issues) == 0 {
		s.SuggestedSignature = Signature(s.Inputs, s.Outputs)
	}
	return s
}

func confidenceOf(flow VariableFlowAnalysis) Confidence {
	switch {
	case len(flow.Inputs) > maxInputs, len(flow.Outputs) > maxOutputs,
		len(flow.Mutations) > 0, len(flow.Closures) > 0:
		return ConfidenceLow
	case len(flow.Inputs) > maxHighConfidenceInputs, len(flow.Outputs) > maxHighConfidenceOutputs,
		flow.HasEarlyReturn:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

func collectIssues(c ExtractionCandidate, flow VariableFlowAnalysis) []ExtractionIssue {
	var issues []ExtractionIssue
	for _, m := range flow.Mutations {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueMutation,
			Message: fmt.Sprintf("mutates external variable %s (%s)", m.Variable.Name, m.Kind),
			Line:    m.Line,
		})
	}
	for _, cl := range flow.Closures {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueClosure,
			Message: fmt.Sprintf("captures mutable variable %s", cl.Variable.Name),
			Line:    cl.StartLine,
		})
	}
	if n := len(flow.Inputs); n > maxInputs {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueTooManyParams,
			Message: fmt.Sprintf("too many parameters (%d)", n),
			Line:    c.StartLine,
		})
	}
	if n := len(flow.Outputs); n > maxOutputs {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueMultipleOutputs,
			Message: fmt.Sprintf("multiple outputs (%d)", n),
			Line:    c.StartLine,
		})
	}
	if flow.HasEarlyReturn {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueEarlyReturn,
			Message: "contains an early return",
			Line:    c.StartLine,
		})
	}
	if flow.HasSelfReference {
		issues = append(issues, ExtractionIssue{
			Kind:    IssueSelfReference,
			Message: "references this",
			Line:    c.StartLine,
		})
	}
	return issues
}

func adviceFor(issues []ExtractionIssue) []string {
	var out []string
	seen := make(map[IssueKind]bool)
	for _, issue := range issues {
		if seen[issue.Kind] {
			continue
		}
		seen[issue.Kind] = true
		out = append(out, issueAdvice[issue.Kind])
	}
	return out
}

func typed(vars []*VariableInfo) []TypedVariable {
	out := make([]TypedVariable, 0, len(vars))
	for _, v := range vars {
		out = append(out, TypedVariable{Name: v.Name, Type: v.TypeAnnotation})
	}
	return out
}

// Signature renders a function signature with the placeholder name.
// Zero outputs return void, one output returns its type, several return a
// record of all outputs. Missing types render as unknown.
func Signature(inputs, outputs []TypedVariable) string {
	params := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Type != "" {
			params = append(params, in.Name+": "+in.Type)
		} else {
			params = append(params, in.Name)
		}
	}

	var ret string
	switch len(outputs) {
	case 0:
		ret = "void"
	case 1:
		ret = typeOrUnknown(outputs[0].Type)
	default:
		fields := make([]string, 0, len(outputs))
		for _, out := range outputs {
			fields = append(fields, out.Name+": "+typeOrUnknown(out.Type))
		}
		ret = "{ " + strings.Join(fields, "; ") + " }"
	}

	return fmt.Sprintf("function %s(%s): %s", ExtractedFunctionName, strings.Join(params, ", "), ret)
}

func typeOrUnknown(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}
