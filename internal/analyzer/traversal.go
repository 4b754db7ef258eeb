package analyzer

import (
	"sort"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

// Visitor receives traversal events. The scope argument is the innermost
// open function, or nil outside any function.
type Visitor interface {
	// EnterFunction is called before the traversal descends into a function
	// literal. depth counts the function literals already open.
	EnterFunction(fn *FunctionScope, enclosing *FunctionScope, depth int)
	// ExitFunction is called after the function body has been traversed,
	// before the scope is finalized.
	ExitFunction(fn *FunctionScope)
	// EnterNode is called for every non-function node before its children.
	EnterNode(node *parser.Node, scope *FunctionScope)
	// ExitNode is called for every non-function node after its children.
	ExitNode(node *parser.Node, scope *FunctionScope)
}

// Traverser walks a tree depth-first, maintaining the function scope stack
// and the nesting regions of the current scope.
type Traverser struct {
	visitors []Visitor
	stack    []*FunctionScope
	done     []*FunctionScope
}

// NewTraverser creates a traverser dispatching to the given visitors in order
func NewTraverser(visitors ...Visitor) *Traverser {
	return &Traverser{visitors: visitors}
}

// Run traverses root and returns every finalized function scope ordered by
// source position. A Traverser holds no state between runs.
func (t *Traverser) Run(root *parser.Node) []*FunctionScope {
	t.stack = nil
	t.done = nil

	t.walk(root, 0)

	scopes := t.done
	t.done = nil
	sort.SliceStable(scopes, func(i, j int) bool {
		a, b := scopes[i].Node.Location, scopes[j].Node.Location
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
	return scopes
}

// CurrentScope returns the innermost open function scope, or nil
func (t *Traverser) CurrentScope() *FunctionScope {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

func (t *Traverser) walk(node *parser.Node, depth int) {
	if node == nil {
		return
	}

	scope := t.CurrentScope()
	if scope != nil {
		scope.enterRegion(node)
	}

	if node.IsFunction() {
		t.walkFunction(node, scope, depth)
	} else {
		for _, v := range t.visitors {
			v.EnterNode(node, scope)
		}
		for _, child := range node.ChildNodes() {
			t.walk(child, depth)
		}
		for _, v := range t.visitors {
			v.ExitNode(node, scope)
		}
	}

	if scope != nil {
		scope.exitRegion(node)
	}
}

func (t *Traverser) walkFunction(node *parser.Node, enclosing *FunctionScope, depth int) {
	fn := newFunctionScope(node)
	for _, v := range t.visitors {
		v.EnterFunction(fn, enclosing, depth)
	}

	t.stack = append(t.stack, fn)
	for _, child := range node.ChildNodes() {
		t.walk(child, depth+1)
	}
	for _, v := range t.visitors {
		v.ExitFunction(fn)
	}
	t.stack = t.stack[:len(t.stack)-1]

	fn.finalize()
	t.done = append(t.done, fn)
}
