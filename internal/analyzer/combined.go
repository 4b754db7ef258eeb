package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// FunctionResult holds the scores of one function literal
type FunctionResult struct {
	Node *parser.Node
	Name string

	Cyclomatic       int
	CyclomaticPoints []ComplexityPoint

	Cognitive       int
	CognitivePoints []ComplexityPoint
}

// ScoreCyclomatic scores every function under root with the cyclomatic scorer only
func ScoreCyclomatic(root *parser.Node) []FunctionResult {
	return collect(NewTraverser(CyclomaticScorer{}).Run(root), true, false)
}

// ScoreCognitive scores every function under root with the cognitive scorer only
func ScoreCognitive(root *parser.Node) []FunctionResult {
	return collect(NewTraverser(CognitiveScorer{}).Run(root), false, true)
}

// ScoreCombined produces both scores in a single traversal. Its results are
// identical to those of ScoreCyclomatic and ScoreCognitive.
func ScoreCombined(root *parser.Node) []FunctionResult {
	return collect(NewTraverser(CyclomaticScorer{}, CognitiveScorer{}).Run(root), true, true)
}

func collect(scopes []*FunctionScope, cyclomatic, cognitive bool) []FunctionResult {
	results := make([]FunctionResult, 0, len(scopes))
	for _, s := range scopes {
		r := FunctionResult{Node: s.Node, Name: s.Name}
		if cyclomatic {
			r.Cyclomatic = s.Cyclomatic()
			r.CyclomaticPoints = s.CyclomaticPoints
		}
		if cognitive {
			r.Cognitive = s.Cognitive()
			r.CognitivePoints = s.CognitivePoints
		}
		results = append(results, r)
	}
	return results
}
