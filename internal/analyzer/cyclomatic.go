package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// CyclomaticScorer counts decision points: one per conditional, loop,
// non-default case, catch clause, ternary, logical operator occurrence and
// logical assignment. It applies no nesting weight and no exclusions.
type CyclomaticScorer struct{}

// EnterFunction implements Visitor
func (CyclomaticScorer) EnterFunction(*FunctionScope, *FunctionScope, int) {}

// ExitFunction implements Visitor
func (CyclomaticScorer) ExitFunction(*FunctionScope) {}

// ExitNode implements Visitor
func (CyclomaticScorer) ExitNode(*parser.Node, *FunctionScope) {}

// EnterNode implements Visitor
func (CyclomaticScorer) EnterNode(node *parser.Node, scope *FunctionScope) {
	if scope == nil {
		return
	}

	add := func(kind ConstructKind) {
		scope.CyclomaticPoints = append(scope.CyclomaticPoints, flatPoint(kind, node))
	}

	switch node.Type {
	case parser.NodeIfStatement:
		add(KindIf)
	case parser.NodeForStatement, parser.NodeForInStatement, parser.NodeForOfStatement,
		parser.NodeWhileStatement, parser.NodeDoWhileStatement:
		add(loopKind(node))
	case parser.NodeCaseClause:
		add(KindCase)
	case parser.NodeCatchClause:
		add(KindCatch)
	case parser.NodeConditionalExpression:
		add(KindTernary)
	case parser.NodeLogicalExpression:
		add(logicalKind(node.Operator))
	case parser.NodeAssignmentExpression:
		if kind, ok := logicalAssignmentKind(node.Operator); ok {
			add(kind)
		}
	}
}
