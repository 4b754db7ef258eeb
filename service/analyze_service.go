package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/analyzer"
	"github.com/ludo-technologies/jsplit/internal/config"
	"github.com/ludo-technologies/jsplit/internal/logging"
	"github.com/ludo-technologies/jsplit/internal/parser"
	"github.com/ludo-technologies/jsplit/internal/version"
)

// AnalyzeServiceImpl implements the AnalyzeService interface
type AnalyzeServiceImpl struct {
	progress domain.ProgressManager
	cache    domain.ResultCache
	logger   *slog.Logger
}

// NewAnalyzeService creates a new analyze service. Progress and cache are
// optional; a nil logger discards log output.
func NewAnalyzeService(logger *slog.Logger, pm domain.ProgressManager, cache domain.ResultCache) *AnalyzeServiceImpl {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &AnalyzeServiceImpl{
		progress: pm,
		cache:    cache,
		logger:   logger,
	}
}

// Analyze performs complexity analysis on multiple files. Files are
// analyzed concurrently; a file that cannot be read or parsed is reported
// in the response errors and does not stop the others.
func (s *AnalyzeServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no files to analyze", nil)
	}

	cfg := requestToConfig(req)
	ca := analyzer.NewComplexityAnalyzer(cfg)

	results := make([]*domain.FileResult, len(req.Paths))

	pool := NewFilePool(cfg.Performance, s.progress)
	failures := pool.Run(ctx, req.Paths, func(ctx context.Context, i int, path string) error {
		result, err := s.analyzeFile(ctx, path, ca, cfg)
		if err != nil {
			return err
		}
		results[i] = result
		return nil
	})

	var fileErrors []string
	for _, fe := range failures {
		s.logger.Warn("file analysis failed", "file", fe.Path, "error", fe.Err)
		fileErrors = append(fileErrors, fe.Error())
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("complexity analysis cancelled: %w", ctxErr)
	}

	var allFunctions []domain.FunctionComplexity
	filesProcessed := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		filesProcessed++
		allFunctions = append(allFunctions, r.Functions...)
	}

	var warnings []string
	if len(allFunctions) == 0 && len(fileErrors) == 0 {
		warnings = append(warnings, "no functions found to analyze")
	}

	filtered := s.filterFunctions(allFunctions, req, cfg)
	summary := s.generateSummary(filtered, filesProcessed, len(fileErrors), cfg)
	sorted := s.sortFunctions(filtered, req.SortBy)

	return &domain.AnalyzeResponse{
		Functions:   s.applyDisplayOptions(sorted, req),
		Summary:     summary,
		Warnings:    warnings,
		Errors:      fileErrors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
		Config:      s.buildConfigForResponse(req, cfg),
	}, nil
}

// AnalyzeFile analyzes a single JavaScript/TypeScript file. The result
// carries every detail regardless of the display options of req.
func (s *AnalyzeServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.AnalyzeRequest) (*domain.FileResult, error) {
	cfg := requestToConfig(req)
	return s.analyzeFile(ctx, filePath, analyzer.NewComplexityAnalyzer(cfg), cfg)
}

// analyzeFile reads, parses and scores one file
func (s *AnalyzeServiceImpl) analyzeFile(ctx context.Context, filePath string, ca *analyzer.ComplexityAnalyzer, cfg *config.Config) (*domain.FileResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(filePath, err)
		}
		return nil, domain.NewAnalysisError("failed to read "+filePath, err)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(filePath, content); ok {
			s.logger.Debug("cache hit", "file", filePath)
			return cached, nil
		}
	}

	ast, err := parser.ParseSource(ctx, filePath, content)
	if err != nil {
		return nil, domain.NewParseError(filePath, err)
	}

	reports, err := ca.AnalyzeFile(ast)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to analyze "+filePath, err)
	}

	result := &domain.FileResult{
		FilePath:  filePath,
		Functions: make([]domain.FunctionComplexity, 0, len(reports)),
	}
	for _, r := range reports {
		result.Functions = append(result.Functions, toFunctionComplexity(filePath, r, cfg))
	}
	s.logger.Debug("file analyzed", "file", filePath, "functions", len(result.Functions))

	if s.cache != nil {
		s.cache.Put(filePath, content, result)
	}
	return result, nil
}

// filterFunctions filters functions based on request criteria
func (s *AnalyzeServiceImpl) filterFunctions(functions []domain.FunctionComplexity, req domain.AnalyzeRequest, cfg *config.Config) []domain.FunctionComplexity {
	filtered := make([]domain.FunctionComplexity, 0, len(functions))

	for _, fn := range functions {
		if req.MinScore > 0 && fn.Cognitive < req.MinScore {
			continue
		}
		if !cfg.Complexity.ShouldReport(fn.Cognitive) {
			continue
		}
		filtered = append(filtered, fn)
	}

	return filtered
}

// sortFunctions sorts functions based on the specified criteria
func (s *AnalyzeServiceImpl) sortFunctions(functions []domain.FunctionComplexity, sortBy domain.SortCriteria) []domain.FunctionComplexity {
	sorted := make([]domain.FunctionComplexity, len(functions))
	copy(sorted, functions)

	byLocation := func(a, b domain.FunctionComplexity) bool {
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartColumn < b.StartColumn
	}

	switch sortBy {
	case domain.SortByCyclomatic:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Cyclomatic != sorted[j].Cyclomatic {
				return sorted[i].Cyclomatic > sorted[j].Cyclomatic
			}
			return byLocation(sorted[i], sorted[j])
		})
	case domain.SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Name != sorted[j].Name {
				return sorted[i].Name < sorted[j].Name
			}
			return byLocation(sorted[i], sorted[j])
		})
	case domain.SortByLocation:
		sort.SliceStable(sorted, func(i, j int) bool {
			return byLocation(sorted[i], sorted[j])
		})
	default:
		// Default: cognitive descending
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Cognitive != sorted[j].Cognitive {
				return sorted[i].Cognitive > sorted[j].Cognitive
			}
			return byLocation(sorted[i], sorted[j])
		})
	}

	return sorted
}

// applyDisplayOptions drops attribution and recommendations the request
// did not ask for. Cached results are left untouched.
func (s *AnalyzeServiceImpl) applyDisplayOptions(functions []domain.FunctionComplexity, req domain.AnalyzeRequest) []domain.FunctionComplexity {
	out := make([]domain.FunctionComplexity, len(functions))
	for i, fn := range functions {
		if !req.ShowDetails {
			fn.CyclomaticPoints = nil
			fn.CognitivePoints = nil
		}
		if !req.ShowSuggestions {
			fn.Extractions = nil
			fn.Tips = nil
		}
		out[i] = fn
	}
	return out
}

// generateSummary generates a summary of the complexity analysis
func (s *AnalyzeServiceImpl) generateSummary(functions []domain.FunctionComplexity, filesProcessed, filesFailed int, cfg *config.Config) domain.AnalyzeSummary {
	summary := domain.AnalyzeSummary{
		FilesAnalyzed:   filesProcessed,
		FilesWithErrors: filesFailed,
		TotalFunctions:  len(functions),
	}

	if len(functions) == 0 {
		return summary
	}

	totalCyclomatic, totalCognitive := 0, 0
	for _, fn := range functions {
		totalCyclomatic += fn.Cyclomatic
		totalCognitive += fn.Cognitive

		if fn.Cyclomatic > summary.MaxCyclomatic {
			summary.MaxCyclomatic = fn.Cyclomatic
		}
		if fn.Cognitive > summary.MaxCognitive {
			summary.MaxCognitive = fn.Cognitive
		}

		switch fn.RiskLevel {
		case domain.RiskLevelHigh:
			summary.HighRiskFunctions++
		case domain.RiskLevelMedium:
			summary.MediumRiskFunctions++
		case domain.RiskLevelLow:
			summary.LowRiskFunctions++
		}

		if cfg.Complexity.ExceedsThresholds(fn.Cyclomatic, fn.Cognitive) {
			summary.FunctionsOverThreshold++
		}
		summary.ExtractionCandidates += len(fn.Extractions)
	}

	summary.AverageCyclomatic = float64(totalCyclomatic) / float64(len(functions))
	summary.AverageCognitive = float64(totalCognitive) / float64(len(functions))

	return summary
}

// buildConfigForResponse builds the configuration section for the response
func (s *AnalyzeServiceImpl) buildConfigForResponse(req domain.AnalyzeRequest, cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"cyclomatic_threshold": cfg.Complexity.CyclomaticThreshold,
		"cognitive_threshold":  cfg.Complexity.CognitiveThreshold,
		"extraction_trigger":   float64(cfg.Complexity.CognitiveThreshold) * cfg.Extraction.Multiplier,
		"sort_by":              req.SortBy,
		"min_score":            req.MinScore,
	}
}
