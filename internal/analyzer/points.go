package analyzer

import "github.com/ludo-technologies/jsplit/internal/parser"

// ConstructKind tags the construct that produced a complexity point
type ConstructKind string

// Construct kinds
const (
	KindIf              ConstructKind = "if"
	KindElseIf          ConstructKind = "else-if"
	KindElse            ConstructKind = "else"
	KindFor             ConstructKind = "for"
	KindForIn           ConstructKind = "for-in"
	KindForOf           ConstructKind = "for-of"
	KindWhile           ConstructKind = "while"
	KindDoWhile         ConstructKind = "do-while"
	KindSwitch          ConstructKind = "switch"
	KindCase            ConstructKind = "case"
	KindCatch           ConstructKind = "catch"
	KindTernary         ConstructKind = "ternary"
	KindLogicalAnd      ConstructKind = "logical-and"
	KindLogicalOr       ConstructKind = "logical-or"
	KindNullish         ConstructKind = "nullish"
	KindAssignAnd       ConstructKind = "assign-and"
	KindAssignOr        ConstructKind = "assign-or"
	KindAssignNullish   ConstructKind = "assign-nullish"
	KindLabeledBreak    ConstructKind = "labeled-break"
	KindLabeledContinue ConstructKind = "labeled-continue"
	KindNestedFunction  ConstructKind = "nested-function"
	KindNestedArrow     ConstructKind = "nested-arrow"
	KindNestedMethod    ConstructKind = "nested-method"
	KindRecursion       ConstructKind = "recursion"
)

// ComplexityPoint is one contribution to a function's score.
// Amount is the full contribution; Nesting records the nesting level that
// was added to the base increment (0 for flat points).
type ComplexityPoint struct {
	Kind     ConstructKind   `json:"kind" yaml:"kind"`
	Amount   int             `json:"amount" yaml:"amount"`
	Nesting  int             `json:"nesting" yaml:"nesting"`
	Location parser.Location `json:"location" yaml:"location"`
}

// flatPoint creates a point worth exactly one
func flatPoint(kind ConstructKind, node *parser.Node) ComplexityPoint {
	return ComplexityPoint{Kind: kind, Amount: 1, Location: locationOf(node)}
}

// structuralPoint creates a point worth one plus the nesting level
func structuralPoint(kind ConstructKind, node *parser.Node, nesting int) ComplexityPoint {
	return ComplexityPoint{Kind: kind, Amount: 1 + nesting, Nesting: nesting, Location: locationOf(node)}
}

// locationOf returns the node location, or the zero location for nil
func locationOf(node *parser.Node) parser.Location {
	if node == nil {
		return parser.Location{}
	}
	return node.Location
}

// sumAmounts totals the contribution of points
func sumAmounts(points []ComplexityPoint) int {
	total := 0
	for _, p := range points {
		total += p.Amount
	}
	return total
}

// loopKind maps a loop node to its construct kind
func loopKind(node *parser.Node) ConstructKind {
	switch node.Type {
	case parser.NodeForInStatement:
		return KindForIn
	case parser.NodeForOfStatement:
		return KindForOf
	case parser.NodeWhileStatement:
		return KindWhile
	case parser.NodeDoWhileStatement:
		return KindDoWhile
	default:
		return KindFor
	}
}

// logicalKind maps a logical operator to its construct kind
func logicalKind(operator string) ConstructKind {
	switch operator {
	case "&&":
		return KindLogicalAnd
	case "??":
		return KindNullish
	default:
		return KindLogicalOr
	}
}

// logicalAssignmentKind maps &&=, ||= and ??= to construct kinds.
// Other operators return false.
func logicalAssignmentKind(operator string) (ConstructKind, bool) {
	switch operator {
	case "&&=":
		return KindAssignAnd, true
	case "||=":
		return KindAssignOr, true
	case "??=":
		return KindAssignNullish, true
	}
	return "", false
}

// nestedFunctionKind tags the penalty point of a nested function literal
func nestedFunctionKind(node *parser.Node) ConstructKind {
	switch node.Type {
	case parser.NodeArrowFunction:
		return KindNestedArrow
	case parser.NodeMethodDefinition:
		return KindNestedMethod
	default:
		return KindNestedFunction
	}
}
