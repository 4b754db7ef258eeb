package analyzer

import (
	"sort"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

// MutationKind classifies how an external variable is mutated
type MutationKind string

// Mutation kinds
const (
	MutationAssignment MutationKind = "assignment"
	MutationIncrement  MutationKind = "increment"
	MutationMethodCall MutationKind = "method-call"
)

// MutationInfo is a write inside a range to a variable declared outside it
type MutationInfo struct {
	Variable *VariableInfo
	Line     int
	Kind     MutationKind
}

// ClosureInfo is a function literal inside a range that captures a
// mutable variable declared before the range
type ClosureInfo struct {
	Variable  *VariableInfo
	StartLine int
	EndLine   int
}

// VariableFlowAnalysis describes the data flow across a candidate range
type VariableFlowAnalysis struct {
	Inputs           []*VariableInfo
	Outputs          []*VariableInfo
	Internal         []*VariableInfo
	Mutations        []MutationInfo
	Closures         []ClosureInfo
	HasEarlyReturn   bool
	HasSelfReference bool
}

// ReceiverBinding tells whether a function literal binds its own receiver
type ReceiverBinding int

// Receiver bindings
const (
	ReceiverNone ReceiverBinding = iota
	// ReceiverRebinding literals get their own this
	ReceiverRebinding
	// ReceiverInheriting literals see the enclosing this
	ReceiverInheriting
)

// FunctionReceiver classifies the receiver binding of a node
func FunctionReceiver(node *parser.Node) ReceiverBinding {
	if node == nil {
		return ReceiverNone
	}
	switch node.Type {
	case parser.NodeArrowFunction:
		return ReceiverInheriting
	case parser.NodeFunction, parser.NodeFunctionExpression,
		parser.NodeGeneratorFunction, parser.NodeMethodDefinition:
		return ReceiverRebinding
	}
	return ReceiverNone
}

// mutatingMethods is read-only after initialization
var mutatingMethods = map[string]struct{}{
	"push": {}, "pop": {}, "shift": {}, "unshift": {}, "splice": {},
	"sort": {}, "reverse": {}, "fill": {}, "copyWithin": {},
	"set": {}, "add": {}, "delete": {}, "clear": {},
}

// IsMutatingMethod reports whether name mutates its receiver in place
func IsMutatingMethod(name string) bool {
	_, ok := mutatingMethods[name]
	return ok
}

// AnalyzeFlow classifies the variables of table relative to the candidate
// range and detects mutation, closure capture, early return and
// self-reference inside it.
func AnalyzeFlow(c ExtractionCandidate, table *VariableTable, fn *parser.Node) VariableFlowAnalysis {
	var flow VariableFlowAnalysis
	start, end := c.StartLine, c.EndLine
	inRange := func(line int) bool { return line >= start && line <= end }

	if table != nil {
		for _, v := range table.Variables {
			declaredInside := inRange(v.DeclarationLine)
			switch {
			case v.DeclarationLine < start && readsIn(v, start, end):
				flow.Inputs = append(flow.Inputs, v)
			case declaredInside && referencedAfter(v, end):
				flow.Outputs = append(flow.Outputs, v)
			case declaredInside:
				flow.Internal = append(flow.Internal, v)
			}
		}
	}

	flow.Mutations = detectMutations(table, fn, start, end)
	flow.Closures = detectClosures(table, fn, start, end)
	flow.HasEarlyReturn = hasEarlyReturn(fn, start, end)
	flow.HasSelfReference = hasSelfReference(fn, start, end)

	return flow
}

func readsIn(v *VariableInfo, start, end int) bool {
	for _, ref := range v.References {
		if ref.Line >= start && ref.Line <= end && ref.IsRead() {
			return true
		}
	}
	return false
}

func referencedAfter(v *VariableInfo, end int) bool {
	for _, ref := range v.References {
		if ref.Line > end {
			return true
		}
	}
	return false
}

func detectMutations(table *VariableTable, fn *parser.Node, start, end int) []MutationInfo {
	if table == nil {
		return nil
	}

	type key struct {
		v    *VariableInfo
		line int
	}
	seen := make(map[key]bool)
	var mutations []MutationInfo
	record := func(v *VariableInfo, line int, kind MutationKind) {
		if v == nil || (v.DeclarationLine >= start && v.DeclarationLine <= end) {
			return
		}
		k := key{v, line}
		if seen[k] {
			return
		}
		seen[k] = true
		mutations = append(mutations, MutationInfo{Variable: v, Line: line, Kind: kind})
	}

	for _, v := range table.Variables {
		for _, ref := range v.References {
			if ref.Line < start || ref.Line > end || !ref.IsWrite() {
				continue
			}
			kind := MutationAssignment
			if ref.Node != nil && ref.Node.Parent != nil && ref.Node.Parent.Type == parser.NodeUpdateExpression {
				kind = MutationIncrement
			}
			record(v, ref.Line, kind)
		}
	}

	walkRange(fn, start, end, (*parser.Node).IsFunction, func(n *parser.Node) {
		line := n.Location.StartLine
		switch n.Type {
		case parser.NodeAssignmentExpression:
			if isMember(n.Left) {
				record(table.Lookup(memberRoot(n.Left)), line, MutationAssignment)
			}
		case parser.NodeUpdateExpression:
			if isMember(n.Argument) {
				record(table.Lookup(memberRoot(n.Argument)), line, MutationIncrement)
			}
		case parser.NodeCallExpression:
			callee := n.Callee
			if isMember(callee) && !callee.Computed && callee.Property != nil && IsMutatingMethod(callee.Property.Name) {
				record(table.Lookup(memberRoot(callee.Object)), line, MutationMethodCall)
			}
		}
	})

	sort.SliceStable(mutations, func(i, j int) bool {
		return mutations[i].Line < mutations[j].Line
	})
	return mutations
}

func detectClosures(table *VariableTable, fn *parser.Node, start, end int) []ClosureInfo {
	if table == nil {
		return nil
	}

	var closures []ClosureInfo
	seen := make(map[string]bool)
	for _, v := range table.Variables {
		if !v.Mutable || v.DeclarationLine >= start || seen[v.Name] {
			continue
		}
		for _, ref := range v.References {
			if ref.Line < start || ref.Line > end {
				continue
			}
			if lit := enclosingLiteralIn(ref.Node, fn, start, end); lit != nil {
				seen[v.Name] = true
				closures = append(closures, ClosureInfo{
					Variable:  v,
					StartLine: lit.Location.StartLine,
					EndLine:   lit.Location.EndLine,
				})
				break
			}
		}
	}
	return closures
}

// enclosingLiteralIn walks up from node to fn looking for a function
// literal that lies entirely inside [start, end]
func enclosingLiteralIn(node, fn *parser.Node, start, end int) *parser.Node {
	if node == nil {
		return nil
	}
	for cur := node.Parent; cur != nil && cur != fn; cur = cur.Parent {
		if cur.IsFunction() && cur.Location.StartLine >= start && cur.Location.EndLine <= end {
			return cur
		}
	}
	return nil
}

func hasEarlyReturn(fn *parser.Node, start, end int) bool {
	var returns []int
	walkRange(fn, start, end, (*parser.Node).IsFunction, func(n *parser.Node) {
		if n.Type == parser.NodeReturnStatement {
			returns = append(returns, n.Location.StartLine)
		}
	})

	switch len(returns) {
	case 0:
		return false
	case 1:
		return end-returns[0] > 1 || returns[0]-end > 1
	default:
		return true
	}
}

func hasSelfReference(fn *parser.Node, start, end int) bool {
	found := false
	rebinding := func(n *parser.Node) bool {
		return FunctionReceiver(n) == ReceiverRebinding
	}
	walkRange(fn, start, end, rebinding, func(n *parser.Node) {
		if n.Type == parser.NodeThisExpression {
			found = true
		}
	})
	return found
}

// walkRange visits every node below fn that starts inside [start, end].
// Sub-trees for which skip returns true are not entered.
func walkRange(fn *parser.Node, start, end int, skip func(*parser.Node) bool, visit func(*parser.Node)) {
	var walk func(n *parser.Node)
	walk = func(n *parser.Node) {
		for _, child := range n.ChildNodes() {
			loc := child.Location
			if loc.EndLine < start || loc.StartLine > end || skip(child) {
				continue
			}
			if loc.StartLine >= start {
				visit(child)
			}
			walk(child)
		}
	}
	if fn != nil {
		walk(fn)
	}
}

func isMember(n *parser.Node) bool {
	return n != nil && n.Type == parser.NodeMemberExpression
}

// memberRoot returns the identifier at the base of a member access chain
func memberRoot(n *parser.Node) *parser.Node {
	cur := n
	for cur != nil && cur.Type == parser.NodeMemberExpression {
		cur = cur.Object
	}
	if cur != nil && cur.Type == parser.NodeIdentifier {
		return cur
	}
	return nil
}
