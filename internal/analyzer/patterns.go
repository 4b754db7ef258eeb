package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// IsDefaultValuePattern reports whether a || or ?? chain only supplies a
// literal fallback to a declaration or to a self-assignment, as in
// `const x = a || []` and `x = x ?? {}`.
func IsDefaultValuePattern(node *parser.Node) bool {
	if !isLogical(node, "||") && !isLogical(node, "??") {
		return false
	}
	if !isLiteralLike(rightmostOperand(node)) {
		return false
	}

	root := chainRoot(node)
	parent := root.Parent
	if parent == nil {
		return false
	}

	switch parent.Type {
	case parser.NodeVariableDeclarator:
		return parent.Init == root
	case parser.NodeAssignmentExpression:
		if parent.Right != root || parent.Operator != "=" {
			return false
		}
		target := parent.Left.Text()
		return target != "" && target == leftmostOperand(root).Text()
	}
	return false
}

// IsJSXShortCircuit reports whether an && chain ends in a JSX element or
// fragment, as in `visible && <Panel />`.
func IsJSXShortCircuit(node *parser.Node) bool {
	if !isLogical(node, "&&") {
		return false
	}
	leaf := rightmostOperand(node)
	return leaf != nil && (leaf.Type == parser.NodeJSXElement || leaf.Type == parser.NodeJSXFragment)
}

// isExcludedLogical applies both exclusion rules
func isExcludedLogical(node *parser.Node) bool {
	return IsDefaultValuePattern(node) || IsJSXShortCircuit(node)
}

func isLogical(node *parser.Node, operator string) bool {
	return node != nil && node.Type == parser.NodeLogicalExpression && node.Operator == operator
}

// rightmostOperand follows same-operator right children to the last operand
func rightmostOperand(node *parser.Node) *parser.Node {
	cur := node
	for isLogical(cur, node.Operator) {
		cur = cur.Right
	}
	return cur
}

// leftmostOperand follows same-operator left children to the first operand
func leftmostOperand(node *parser.Node) *parser.Node {
	cur := node
	for isLogical(cur, node.Operator) {
		cur = cur.Left
	}
	return cur
}

// chainRoot walks up same-operator parents to the top of the chain
func chainRoot(node *parser.Node) *parser.Node {
	cur := node
	for isLogical(cur.Parent, node.Operator) {
		cur = cur.Parent
	}
	return cur
}

func isLiteralLike(node *parser.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case parser.NodeLiteral, parser.NodeArrayExpression, parser.NodeObjectExpression:
		return true
	}
	return false
}
