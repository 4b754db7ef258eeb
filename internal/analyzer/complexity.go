package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/jsplit/internal/config"
	"github.com/ludo-technologies/jsplit/internal/parser"
	"github.com/ludo-technologies/jsplit/internal/scope"
)

// FunctionReport holds the scores, extraction suggestions and tips of one
// function
type FunctionReport struct {
	FunctionResult

	StartLine int
	StartCol  int
	EndLine   int
	// MaxNesting is the deepest nesting level of a structural construct
	MaxNesting int

	Suggestions []ExtractionSuggestion
	Tips        []string
}

// LineCount returns the number of source lines the function spans
func (r *FunctionReport) LineCount() int {
	if r.EndLine < r.StartLine {
		return 0
	}
	return r.EndLine - r.StartLine + 1
}

func (r *FunctionReport) String() string {
	return fmt.Sprintf("Function: %s, Cyclomatic: %d, Cognitive: %d",
		r.Name, r.Cyclomatic, r.Cognitive)
}

// ComplexityAnalyzer scores every function of a file and recommends
// extractions for the ones above the trigger score
type ComplexityAnalyzer struct {
	extraction        ExtractionOptions
	extractionEnabled bool
	tips              TipOptions
	tipsEnabled       bool
}

// NewComplexityAnalyzer creates an analyzer from configuration. A nil
// configuration selects the defaults.
func NewComplexityAnalyzer(cfg *config.Config) *ComplexityAnalyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ComplexityAnalyzer{
		extraction: ExtractionOptions{
			Boundary: BoundaryOptions{
				MinPercentage: cfg.Extraction.MinPercentage,
				MaxPercentage: cfg.Extraction.MaxPercentage,
				MaxLineGap:    cfg.Extraction.MaxLineGap,
				MaxCandidates: cfg.Extraction.MaxCandidates,
			},
			Threshold:  cfg.Complexity.CognitiveThreshold,
			Multiplier: cfg.Extraction.Multiplier,
		},
		extractionEnabled: cfg.Extraction.Enabled,
		tips: TipOptions{
			NestingTipThreshold: cfg.Tips.NestingThreshold,
			ChainThreshold:      cfg.Tips.ChainThreshold,
		},
		tipsEnabled: cfg.Tips.Enabled,
	}
}

// AnalyzeFile analyzes every function literal below ast
func (ca *ComplexityAnalyzer) AnalyzeFile(ast *parser.Node) ([]*FunctionReport, error) {
	if ast == nil {
		return nil, fmt.Errorf("AST is nil")
	}

	results := ScoreCombined(ast)

	// scope resolution runs once per file and only when a function needs it
	var scopes *scope.Manager
	reports := make([]*FunctionReport, 0, len(results))
	for _, r := range results {
		report := &FunctionReport{
			FunctionResult: r,
			StartLine:      r.Node.Location.StartLine,
			StartCol:       r.Node.Location.StartCol,
			EndLine:        r.Node.Location.EndLine,
			MaxNesting:     maxNesting(r.CognitivePoints),
		}

		if ca.extractionEnabled && ca.extraction.Triggers(r.Cognitive) {
			if scopes == nil {
				scopes = scope.Analyze(ast)
			}
			table := TrackVariables(r.Node, scopes)
			report.Suggestions = AnalyzeFunction(r, table, ca.extraction)
		}

		if ca.tipsEnabled {
			report.Tips = Tips(r, ca.tips)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
