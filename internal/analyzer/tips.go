package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

// Default tip thresholds
const (
	DefaultNestingTipThreshold = 3
	DefaultChainThreshold      = 4
)

// TipOptions controls when refactoring tips are emitted
type TipOptions struct {
	NestingTipThreshold int
	ChainThreshold      int
}

// DefaultTipOptions returns the default tip thresholds
func DefaultTipOptions() TipOptions {
	return TipOptions{
		NestingTipThreshold: DefaultNestingTipThreshold,
		ChainThreshold:      DefaultChainThreshold,
	}
}

// Tips returns textual refactoring advice for a scored function
func Tips(result FunctionResult, opts TipOptions) []string {
	var tips []string

	if opts.NestingTipThreshold > 0 {
		if depth := maxNesting(result.CognitivePoints); depth >= opts.NestingTipThreshold {
			tips = append(tips, fmt.Sprintf(
				"Nesting reaches level %d; use guard clauses or early returns to flatten it", depth))
		}
	}

	if opts.ChainThreshold > 0 {
		if longest := LongestLogicalChain(result.Node); longest >= opts.ChainThreshold {
			tips = append(tips, fmt.Sprintf(
				"A condition chains %d logical operators; name its parts with intermediate variables", longest))
		}
	}

	return tips
}

// LongestLogicalChain returns the largest number of logical operators in a
// single outermost logical expression of fn, ignoring nested functions
func LongestLogicalChain(fn *parser.Node) int {
	if fn == nil {
		return 0
	}

	longest := 0
	var walk func(n *parser.Node)
	walk = func(n *parser.Node) {
		for _, child := range n.ChildNodes() {
			if child.IsFunction() {
				continue
			}
			if child.Type == parser.NodeLogicalExpression {
				if count := countLogical(child); count > longest {
					longest = count
				}
				continue
			}
			walk(child)
		}
	}
	walk(fn)
	return longest
}

// countLogical counts logical operators in the operand tree of a chain.
// Parentheses are already unwrapped by the parser.
func countLogical(n *parser.Node) int {
	if n == nil || n.Type != parser.NodeLogicalExpression {
		return 0
	}
	return 1 + countLogical(n.Left) + countLogical(n.Right)
}
