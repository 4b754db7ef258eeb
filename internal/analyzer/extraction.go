package analyzer

// Default extraction trigger
const (
	DefaultCognitiveThreshold = 15
	DefaultMultiplier         = 1.5
)

// ExtractionOptions controls when and how extraction candidates are sought
type ExtractionOptions struct {
	Boundary BoundaryOptions
	// Threshold is the cognitive score considered acceptable
	Threshold int
	// Multiplier scales Threshold into the score that triggers extraction
	Multiplier float64
}

// DefaultExtractionOptions returns the default extraction options
func DefaultExtractionOptions() ExtractionOptions {
	return ExtractionOptions{
		Boundary:   DefaultBoundaryOptions(),
		Threshold:  DefaultCognitiveThreshold,
		Multiplier: DefaultMultiplier,
	}
}

// Triggers reports whether a cognitive score is high enough to look for
// extraction candidates
func (o ExtractionOptions) Triggers(cognitive int) bool {
	return float64(cognitive) > float64(o.Threshold)*o.Multiplier
}

// AnalyzeFunction detects extraction candidates in a scored function,
// analyzes their variable flow and rates them. Functions below the trigger
// score yield nothing.
func AnalyzeFunction(result FunctionResult, table *VariableTable, opts ExtractionOptions) []ExtractionSuggestion {
	if !opts.Triggers(result.Cognitive) {
		return nil
	}

	candidates := DetectBoundaries(result.CognitivePoints, result.Cognitive, opts.Boundary)
	if len(candidates) == 0 {
		return nil
	}

	suggestions := make([]ExtractionSuggestion, 0, len(candidates))
	for _, c := range candidates {
		flow := AnalyzeFlow(c, table, result.Node)
		suggestions = append(suggestions, GenerateSuggestion(c, flow))
	}
	return suggestions
}
