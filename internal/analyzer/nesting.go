package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// Nesting regions are the sub-trees a construct handler marks on the
// current scope. The traverser checks every node against the set before
// any visitor sees it and again after all visitors have left it, so a
// construct raises the level only for the sub-trees it marked.

// MarkRegion opts node into nesting accounting for this scope
func (s *FunctionScope) MarkRegion(node *parser.Node) {
	if node != nil {
		s.regions[node] = struct{}{}
	}
}

// enterRegion raises the nesting level when node is a marked region
func (s *FunctionScope) enterRegion(node *parser.Node) {
	if _, ok := s.regions[node]; ok {
		s.NestingLevel++
	}
}

// exitRegion lowers the nesting level and consumes the region
func (s *FunctionScope) exitRegion(node *parser.Node) {
	if _, ok := s.regions[node]; ok {
		s.NestingLevel--
		delete(s.regions, node)
	}
}

// MaxNesting returns the deepest nesting level recorded by a structural
// cognitive point of the scope
func (s *FunctionScope) MaxNesting() int {
	return maxNesting(s.CognitivePoints)
}

func maxNesting(points []ComplexityPoint) int {
	deepest := 0
	for _, p := range points {
		if p.Nesting > deepest {
			deepest = p.Nesting
		}
	}
	return deepest
}
