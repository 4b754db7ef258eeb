package parser

import (
	"fmt"
	"sort"
)

// NodeType represents the type of AST node
type NodeType string

// JavaScript/TypeScript AST node types
const (
	// Program and structure
	NodeProgram NodeType = "Program"

	// Function declarations
	NodeFunction           NodeType = "FunctionDeclaration"
	NodeFunctionExpression NodeType = "FunctionExpression"
	NodeArrowFunction      NodeType = "ArrowFunctionExpression"
	NodeGeneratorFunction  NodeType = "GeneratorFunctionDeclaration"
	NodeMethodDefinition   NodeType = "MethodDefinition"

	// Class declarations
	NodeClass           NodeType = "ClassDeclaration"
	NodeClassExpression NodeType = "ClassExpression"
	NodeClassProperty   NodeType = "PropertyDefinition"

	// Variable declarations and bindings
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeVariableDeclarator  NodeType = "VariableDeclarator"
	NodeIdentifier          NodeType = "Identifier"
	NodePropertyIdentifier  NodeType = "PropertyIdentifier"
	NodeObjectPattern       NodeType = "ObjectPattern"
	NodeArrayPattern        NodeType = "ArrayPattern"
	NodeAssignmentPattern   NodeType = "AssignmentPattern"
	NodeRestElement         NodeType = "RestElement"

	// Control flow statements
	NodeIfStatement       NodeType = "IfStatement"
	NodeSwitchStatement   NodeType = "SwitchStatement"
	NodeCaseClause        NodeType = "SwitchCase"
	NodeDefaultClause     NodeType = "SwitchDefault"
	NodeForStatement      NodeType = "ForStatement"
	NodeForInStatement    NodeType = "ForInStatement"
	NodeForOfStatement    NodeType = "ForOfStatement"
	NodeWhileStatement    NodeType = "WhileStatement"
	NodeDoWhileStatement  NodeType = "DoWhileStatement"
	NodeBreakStatement    NodeType = "BreakStatement"
	NodeContinueStatement NodeType = "ContinueStatement"
	NodeReturnStatement   NodeType = "ReturnStatement"
	NodeThrowStatement    NodeType = "ThrowStatement"

	// Exception handling
	NodeTryStatement NodeType = "TryStatement"
	NodeCatchClause  NodeType = "CatchClause"

	// Expressions
	NodeCallExpression        NodeType = "CallExpression"
	NodeMemberExpression      NodeType = "MemberExpression"
	NodeBinaryExpression      NodeType = "BinaryExpression"
	NodeUnaryExpression       NodeType = "UnaryExpression"
	NodeLogicalExpression     NodeType = "LogicalExpression"
	NodeConditionalExpression NodeType = "ConditionalExpression"
	NodeAssignmentExpression  NodeType = "AssignmentExpression"
	NodeUpdateExpression      NodeType = "UpdateExpression"
	NodeNewExpression         NodeType = "NewExpression"
	NodeThisExpression        NodeType = "ThisExpression"
	NodeSequenceExpression    NodeType = "SequenceExpression"
	NodeAwaitExpression       NodeType = "AwaitExpression"
	NodeYieldExpression       NodeType = "YieldExpression"
	NodeSpreadElement         NodeType = "SpreadElement"
	NodeTemplateLiteral       NodeType = "TemplateLiteral"

	// Literals
	NodeLiteral          NodeType = "Literal"
	NodeArrayExpression  NodeType = "ArrayExpression"
	NodeObjectExpression NodeType = "ObjectExpression"
	NodeProperty         NodeType = "Property"

	// Modules
	NodeImportDeclaration      NodeType = "ImportDeclaration"
	NodeImportSpecifier        NodeType = "ImportSpecifier"
	NodeExportNamedDeclaration NodeType = "ExportNamedDeclaration"

	// Other statements
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeEmptyStatement      NodeType = "EmptyStatement"
	NodeLabeledStatement    NodeType = "LabeledStatement"

	// TypeScript type annotations
	NodeTypeKeyword      NodeType = "TypeKeyword"
	NodeTypeReference    NodeType = "TypeReference"
	NodeArrayType        NodeType = "ArrayType"
	NodeUnionType        NodeType = "UnionType"
	NodeIntersectionType NodeType = "IntersectionType"

	// JSX
	NodeJSXElement  NodeType = "JSXElement"
	NodeJSXFragment NodeType = "JSXFragment"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Contains reports whether the line range of other lies within l.
func (l Location) Contains(other Location) bool {
	return other.StartLine >= l.StartLine && other.EndLine <= l.EndLine
}

// Node represents an AST node
type Node struct {
	Type     NodeType
	Children []*Node // Children of constructs without a dedicated shape
	Location Location
	Parent   *Node

	// Common fields for various node types
	Name string // For function/class/identifier names

	// Function-related fields
	Params    []*Node // Function parameters
	Body      []*Node // Function/block body
	Async     bool    // Async function
	Generator bool    // Generator function

	// Control flow fields
	Test       *Node   // Condition for if/while/for
	Consequent *Node   // Then branch for if
	Alternate  *Node   // Else branch for if
	Init       *Node   // For loop initializer, declarator initializer
	Update     *Node   // For loop update
	Cases      []*Node // Switch cases
	Label      *Node   // Label of labeled statements and break/continue

	// Try-catch fields
	Handler   *Node // Catch clause
	Finalizer *Node // Finally block

	// Expression fields
	Left      *Node   // Left operand, assignment target, for-in/of binding
	Right     *Node   // Right operand, assigned value, iterated object
	Operator  string  // Operator (+, -, *, etc.)
	Argument  *Node   // Unary/update/return/spread argument
	Arguments []*Node // Function call arguments
	Callee    *Node   // Function being called
	Object    *Node   // Object in member expression
	Property  *Node   // Property in member expression

	// Object, array and pattern fields
	Key       *Node   // Property or class field key
	Value     *Node   // Property or class field value
	Elements  []*Node // Array/object literal and pattern members
	Shorthand bool    // Shorthand property ({a})

	// Variable declaration fields
	Kind         string  // var, let, const
	Declarations []*Node // Variable declarators
	ID           *Node   // Declarator binding

	// Import/Export fields
	Source      *Node   // Import source
	Specifiers  []*Node // Import specifiers
	Declaration *Node   // Exported declaration or value
	Local       *Node   // Local binding of an import specifier

	// TypeScript fields
	TypeAnnotation *Node // Type annotation

	// Utility fields
	Computed bool   // Computed property
	Optional bool   // Optional chaining
	Raw      string // Raw literal value
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// ChildNodes returns the direct children of n in source order.
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}

	var out []*Node
	add := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	add(n.Children...)
	add(n.ID, n.Key, n.Label, n.TypeAnnotation)
	add(n.Params...)
	add(n.Init, n.Test, n.Update)
	add(n.Left, n.Right)
	add(n.Callee, n.Object, n.Property)
	add(n.Arguments...)
	add(n.Argument, n.Value)
	add(n.Elements...)
	add(n.Declarations...)
	add(n.Specifiers...)
	add(n.Local, n.Source, n.Declaration)
	add(n.Body...)
	add(n.Consequent, n.Alternate)
	add(n.Cases...)
	add(n.Handler, n.Finalizer)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Location, out[j].Location
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
	return out
}

// Walk traverses the AST depth-first and calls the visitor function for each node
// If the visitor returns false, traversal of that branch is stopped
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, child := range n.ChildNodes() {
		child.Walk(visitor)
	}
}

// LinkParents sets the Parent pointer of every node below root.
func LinkParents(root *Node) {
	if root == nil {
		return
	}
	for _, child := range root.ChildNodes() {
		child.Parent = root
		LinkParents(child)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsFunction returns true if the node is a function
func (n *Node) IsFunction() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case NodeFunction, NodeArrowFunction, NodeGeneratorFunction,
		NodeFunctionExpression, NodeMethodDefinition:
		return true
	}
	return false
}

// IsLoop returns true if the node is a loop statement
func (n *Node) IsLoop() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case NodeForStatement, NodeForInStatement, NodeForOfStatement,
		NodeWhileStatement, NodeDoWhileStatement:
		return true
	}
	return false
}

// IsPattern returns true if the node is a destructuring pattern
func (n *Node) IsPattern() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case NodeObjectPattern, NodeArrayPattern, NodeAssignmentPattern, NodeRestElement:
		return true
	}
	return false
}

// Text renders identifier, this and member access chains as source text.
// Other nodes render as the empty string.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case NodeIdentifier, NodePropertyIdentifier:
		return n.Name
	case NodeThisExpression:
		return "this"
	case NodeLiteral:
		return n.Raw
	case NodeMemberExpression:
		obj := n.Object.Text()
		prop := n.Property.Text()
		if obj == "" || prop == "" {
			return ""
		}
		if n.Computed {
			return obj + "[" + prop + "]"
		}
		return obj + "." + prop
	}
	return ""
}
