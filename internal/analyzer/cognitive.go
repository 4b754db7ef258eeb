package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// CognitiveScorer scores readability: structural constructs cost one plus
// the current nesting level, flow breaks cost one, and nested function
// literals and recursion add a flat point to the function that owns them.
type CognitiveScorer struct{}

// EnterFunction charges the enclosing function for a nested literal
func (CognitiveScorer) EnterFunction(fn *FunctionScope, enclosing *FunctionScope, depth int) {
	if enclosing == nil || depth <= 0 {
		return
	}
	enclosing.CognitivePoints = append(enclosing.CognitivePoints, flatPoint(nestedFunctionKind(fn.Node), fn.Node))
}

// ExitFunction adds a single recursion point when any call site recursed
func (CognitiveScorer) ExitFunction(fn *FunctionScope) {
	if fn.HasRecursiveCall {
		fn.CognitivePoints = append(fn.CognitivePoints, flatPoint(KindRecursion, fn.recursionSite))
	}
}

// ExitNode implements Visitor
func (CognitiveScorer) ExitNode(*parser.Node, *FunctionScope) {}

// EnterNode implements Visitor
func (CognitiveScorer) EnterNode(node *parser.Node, scope *FunctionScope) {
	if scope == nil {
		return
	}

	structural := func(kind ConstructKind) {
		scope.CognitivePoints = append(scope.CognitivePoints, structuralPoint(kind, node, scope.NestingLevel))
	}
	flat := func(kind ConstructKind, at *parser.Node) {
		scope.CognitivePoints = append(scope.CognitivePoints, flatPoint(kind, at))
	}

	switch node.Type {
	case parser.NodeIfStatement:
		if isElseIf(node) {
			flat(KindElseIf, node)
		} else {
			structural(KindIf)
		}
		scope.MarkRegion(node.Consequent)
		if alt := node.Alternate; alt != nil && alt.Type != parser.NodeIfStatement {
			flat(KindElse, alt)
			scope.MarkRegion(alt)
		}

	case parser.NodeForStatement, parser.NodeForInStatement, parser.NodeForOfStatement,
		parser.NodeWhileStatement, parser.NodeDoWhileStatement:
		structural(loopKind(node))
		markBody(scope, node)

	case parser.NodeSwitchStatement:
		structural(KindSwitch)
		for _, c := range node.Cases {
			scope.MarkRegion(c)
		}

	case parser.NodeCatchClause:
		structural(KindCatch)
		markBody(scope, node)

	case parser.NodeConditionalExpression:
		structural(KindTernary)
		scope.MarkRegion(node.Consequent)
		scope.MarkRegion(node.Alternate)

	case parser.NodeBreakStatement:
		if node.Label != nil {
			flat(KindLabeledBreak, node)
		}

	case parser.NodeContinueStatement:
		if node.Label != nil {
			flat(KindLabeledContinue, node)
		}

	case parser.NodeLogicalExpression:
		if isLogical(node.Parent, node.Operator) || isExcludedLogical(node) {
			return
		}
		flat(logicalKind(node.Operator), node)

	case parser.NodeCallExpression:
		if IsRecursiveCall(node, scope.Name) {
			scope.recordRecursion(node)
		}
	}
}

// isElseIf reports whether node is the alternate branch of an enclosing if
func isElseIf(node *parser.Node) bool {
	parent := node.Parent
	return parent != nil && parent.Type == parser.NodeIfStatement && parent.Alternate == node
}

// markBody marks the single body statement of a loop or catch clause
func markBody(scope *FunctionScope, node *parser.Node) {
	if len(node.Body) > 0 {
		scope.MarkRegion(node.Body[0])
	}
}
