package service

import (
	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/analyzer"
	"github.com/ludo-technologies/jsplit/internal/config"
)

// toFunctionComplexity converts an analyzer report to the domain model
func toFunctionComplexity(filePath string, r *analyzer.FunctionReport, cfg *config.Config) domain.FunctionComplexity {
	fc := domain.FunctionComplexity{
		Name:             r.Name,
		FilePath:         filePath,
		StartLine:        r.StartLine,
		StartColumn:      r.StartCol,
		EndLine:          r.EndLine,
		LineCount:        r.LineCount(),
		Cyclomatic:       r.Cyclomatic,
		Cognitive:        r.Cognitive,
		MaxNesting:       r.MaxNesting,
		RiskLevel:        domain.RiskLevel(cfg.Complexity.AssessRiskLevel(r.Cognitive)),
		CyclomaticPoints: toPointViews(r.CyclomaticPoints),
		CognitivePoints:  toPointViews(r.CognitivePoints),
		Tips:             r.Tips,
	}

	for _, s := range r.Suggestions {
		fc.Extractions = append(fc.Extractions, toExtractionView(s))
	}
	return fc
}

func toPointViews(points []analyzer.ComplexityPoint) []domain.ComplexityPointView {
	if len(points) == 0 {
		return nil
	}
	views := make([]domain.ComplexityPointView, 0, len(points))
	for _, p := range points {
		views = append(views, domain.ComplexityPointView{
			Kind:    string(p.Kind),
			Amount:  p.Amount,
			Nesting: p.Nesting,
			Line:    p.Location.StartLine,
			Column:  p.Location.StartCol,
			EndLine: p.Location.EndLine,
		})
	}
	return views
}

func toExtractionView(s analyzer.ExtractionSuggestion) domain.ExtractionView {
	view := domain.ExtractionView{
		StartLine:            s.StartLine,
		EndLine:              s.EndLine,
		Complexity:           s.Complexity,
		ComplexityPercentage: s.ComplexityPercentage,
		Confidence:           string(s.Confidence),
		Inputs:               toVariableViews(s.Inputs),
		Outputs:              toVariableViews(s.Outputs),
		SuggestedSignature:   s.SuggestedSignature,
		Suggestions:          s.Suggestions,
	}
	for _, k := range s.ConstructKinds {
		view.ConstructKinds = append(view.ConstructKinds, string(k))
	}
	for _, issue := range s.Issues {
		view.Issues = append(view.Issues, domain.ExtractionIssueView{
			Kind:    string(issue.Kind),
			Message: issue.Message,
			Line:    issue.Line,
		})
	}
	return view
}

func toVariableViews(vars []analyzer.TypedVariable) []domain.TypedVariableView {
	views := make([]domain.TypedVariableView, 0, len(vars))
	for _, v := range vars {
		views = append(views, domain.TypedVariableView{Name: v.Name, Type: v.Type})
	}
	return views
}

// requestToConfig rebuilds the analysis configuration from a request.
// Zero numeric values keep the defaults.
func requestToConfig(req domain.AnalyzeRequest) *config.Config {
	cfg := config.DefaultConfig()

	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}

	setInt(&cfg.Complexity.CyclomaticThreshold, req.CyclomaticThreshold)
	setInt(&cfg.Complexity.CognitiveThreshold, req.CognitiveThreshold)
	setInt(&cfg.Complexity.LowThreshold, req.LowThreshold)
	setInt(&cfg.Complexity.MediumThreshold, req.MediumThreshold)
	cfg.Complexity.ReportUnchanged = req.ReportUnchanged

	cfg.Extraction.Enabled = req.ExtractionEnabled
	if req.Multiplier > 0 {
		cfg.Extraction.Multiplier = req.Multiplier
	}
	setInt(&cfg.Extraction.MinPercentage, req.MinPercentage)
	setInt(&cfg.Extraction.MaxPercentage, req.MaxPercentage)
	setInt(&cfg.Extraction.MaxLineGap, req.MaxLineGap)
	setInt(&cfg.Extraction.MaxCandidates, req.MaxCandidates)

	cfg.Tips.Enabled = req.TipsEnabled
	setInt(&cfg.Tips.NestingThreshold, req.NestingTipThreshold)
	setInt(&cfg.Tips.ChainThreshold, req.ChainThreshold)

	if req.OutputFormat != "" {
		cfg.Output.Format = string(req.OutputFormat)
	}
	if req.SortBy != "" {
		cfg.Output.SortBy = string(req.SortBy)
	}
	cfg.Output.ShowDetails = req.ShowDetails
	cfg.Output.ShowSuggestions = req.ShowSuggestions
	setInt(&cfg.Output.MinScore, req.MinScore)

	if len(req.IncludePatterns) > 0 {
		cfg.Analysis.IncludePatterns = req.IncludePatterns
	}
	if len(req.ExcludePatterns) > 0 {
		cfg.Analysis.ExcludePatterns = req.ExcludePatterns
	}
	cfg.Analysis.Recursive = req.Recursive
	cfg.Analysis.RespectGitignore = req.RespectGitignore
	setInt(&cfg.Analysis.MaxFunctionLines, req.MaxFunctionLines)
	setInt(&cfg.Performance.MaxGoroutines, req.MaxGoroutines)
	setInt(&cfg.Performance.TimeoutSeconds, req.TimeoutSeconds)

	return cfg
}
