package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// Anonymous function markers
const (
	AnonymousFunctionName = "<anonymous>"
	AnonymousArrowName    = "<arrow>"
)

// FunctionScope accumulates the points of one function literal while the
// traversal is inside it. It is finalized exactly once, when the traversal
// leaves the function.
type FunctionScope struct {
	Node *parser.Node
	Name string

	CyclomaticPoints []ComplexityPoint
	CognitivePoints  []ComplexityPoint

	// NestingLevel is the number of nesting regions currently entered
	NestingLevel int

	HasRecursiveCall bool
	recursionSite    *parser.Node

	// regions holds sub-trees that raise NestingLevel while traversed.
	// Entries are single use and removed when the sub-tree is left.
	regions map[*parser.Node]struct{}

	finalized  bool
	cyclomatic int
	cognitive  int
}

func newFunctionScope(node *parser.Node) *FunctionScope {
	return &FunctionScope{
		Node:    node,
		Name:    ResolveFunctionName(node),
		regions: make(map[*parser.Node]struct{}),
	}
}

// recordRecursion notes a recursive call site; the first site is kept
func (s *FunctionScope) recordRecursion(call *parser.Node) {
	if !s.HasRecursiveCall {
		s.recursionSite = call
	}
	s.HasRecursiveCall = true
}

// finalize reduces the point lists to totals
func (s *FunctionScope) finalize() {
	if s.finalized {
		return
	}
	s.cyclomatic = 1 + sumAmounts(s.CyclomaticPoints)
	s.cognitive = sumAmounts(s.CognitivePoints)
	s.finalized = true
}

// Cyclomatic returns the finalized cyclomatic total
func (s *FunctionScope) Cyclomatic() int { return s.cyclomatic }

// Cognitive returns the finalized cognitive total
func (s *FunctionScope) Cognitive() int { return s.cognitive }

// ResolveFunctionName names a function literal from the node itself, then
// from its immediate parent, then falls back to an anonymous marker.
func ResolveFunctionName(node *parser.Node) string {
	if node == nil {
		return AnonymousFunctionName
	}
	if node.Name != "" {
		return node.Name
	}

	if parent := node.Parent; parent != nil {
		switch parent.Type {
		case parser.NodeVariableDeclarator:
			if parent.Init == node && parent.ID != nil && parent.ID.Type == parser.NodeIdentifier {
				return parent.ID.Name
			}
		case parser.NodeProperty, parser.NodeClassProperty:
			if parent.Value == node && parent.Name != "" {
				return parent.Name
			}
		case parser.NodeAssignmentExpression:
			if parent.Right == node {
				if name := targetName(parent.Left); name != "" {
					return name
				}
			}
		case parser.NodeAssignmentPattern:
			if parent.Right == node && parent.Left != nil && parent.Left.Type == parser.NodeIdentifier {
				return parent.Left.Name
			}
		}
	}

	if node.Type == parser.NodeArrowFunction {
		return AnonymousArrowName
	}
	return AnonymousFunctionName
}

// targetName names an assignment target: identifiers by themselves,
// member accesses by their non-computed property
func targetName(target *parser.Node) string {
	if target == nil {
		return ""
	}
	switch target.Type {
	case parser.NodeIdentifier:
		return target.Name
	case parser.NodeMemberExpression:
		if !target.Computed && target.Property != nil {
			return target.Property.Name
		}
	}
	return ""
}

// IsAnonymous reports whether name is one of the anonymous markers
func IsAnonymous(name string) bool {
	return name == AnonymousFunctionName || name == AnonymousArrowName
}
