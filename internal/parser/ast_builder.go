package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node and links parents
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	node := b.buildNode(tsNode)
	LinkParents(node)
	return node
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil || b.isTrivia(tsNode) {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "function_declaration":
		return b.buildFunction(tsNode, NodeFunction)
	case "generator_function_declaration":
		fn := b.buildFunction(tsNode, NodeGeneratorFunction)
		fn.Generator = true
		return fn
	case "function_expression", "function", "generator_function":
		fn := b.buildFunction(tsNode, NodeFunctionExpression)
		fn.Generator = tsNode.Type() == "generator_function"
		return fn
	case "arrow_function":
		return b.buildArrowFunction(tsNode)
	case "method_definition":
		return b.buildMethodDefinition(tsNode)
	case "class_declaration", "abstract_class_declaration":
		return b.buildClass(tsNode, NodeClass)
	case "class":
		return b.buildClass(tsNode, NodeClassExpression)
	case "field_definition", "public_field_definition":
		return b.buildClassProperty(tsNode)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "else_clause":
		return b.firstNamedChild(tsNode)
	case "switch_statement":
		return b.buildSwitchStatement(tsNode)
	case "switch_case":
		return b.buildSwitchCase(tsNode, NodeCaseClause)
	case "switch_default":
		return b.buildSwitchCase(tsNode, NodeDefaultClause)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "for_in_statement":
		return b.buildForInStatement(tsNode)
	case "while_statement":
		return b.buildLoop(tsNode, NodeWhileStatement)
	case "do_statement":
		return b.buildLoop(tsNode, NodeDoWhileStatement)
	case "try_statement":
		return b.buildTryStatement(tsNode)
	case "catch_clause":
		return b.buildCatchClause(tsNode)
	case "finally_clause":
		return b.buildNode(b.getChildByFieldName(tsNode, "body"))
	case "return_statement", "throw_statement":
		return b.buildArgumentStatement(tsNode)
	case "break_statement", "continue_statement":
		return b.buildJumpStatement(tsNode)
	case "labeled_statement":
		return b.buildLabeledStatement(tsNode)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(tsNode)
	case "variable_declarator":
		return b.buildVariableDeclarator(tsNode)
	case "expression_statement", "parenthesized_expression", "parenthesized_type":
		return b.firstNamedChild(tsNode)
	case "statement_block", "class_static_block":
		return b.buildBlockStatement(tsNode)
	case "empty_statement":
		return b.newNode(NodeEmptyStatement, tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode, NodeCallExpression, "function")
	case "new_expression":
		return b.buildCallExpression(tsNode, NodeNewExpression, "constructor")
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "subscript_expression":
		return b.buildSubscriptExpression(tsNode)
	case "binary_expression":
		return b.buildBinaryExpression(tsNode)
	case "unary_expression", "update_expression":
		return b.buildUnaryExpression(tsNode)
	case "assignment_expression", "augmented_assignment_expression":
		return b.buildAssignmentExpression(tsNode)
	case "ternary_expression":
		return b.buildConditionalExpression(tsNode)
	case "await_expression":
		return b.buildWrapper(tsNode, NodeAwaitExpression)
	case "yield_expression":
		return b.buildWrapper(tsNode, NodeYieldExpression)
	case "spread_element":
		return b.buildWrapper(tsNode, NodeSpreadElement)
	case "rest_pattern":
		return b.buildWrapper(tsNode, NodeRestElement)
	case "sequence_expression":
		return b.buildContainer(tsNode, NodeSequenceExpression)
	case "identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern",
		"statement_identifier", "undefined":
		return b.buildIdentifier(tsNode, NodeIdentifier)
	case "property_identifier", "private_property_identifier":
		return b.buildIdentifier(tsNode, NodePropertyIdentifier)
	case "this":
		return b.newNode(NodeThisExpression, tsNode)
	case "string", "number", "true", "false", "null", "regex":
		return b.buildLiteral(tsNode)
	case "template_string":
		return b.buildTemplateString(tsNode)
	case "array":
		return b.buildElements(tsNode, NodeArrayExpression)
	case "object":
		return b.buildElements(tsNode, NodeObjectExpression)
	case "pair", "pair_pattern":
		return b.buildPair(tsNode)
	case "object_pattern":
		return b.buildElements(tsNode, NodeObjectPattern)
	case "array_pattern":
		return b.buildElements(tsNode, NodeArrayPattern)
	case "assignment_pattern", "object_assignment_pattern":
		return b.buildAssignmentPattern(tsNode)
	case "required_parameter", "optional_parameter":
		return b.buildTypedParameter(tsNode)
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return b.buildJSXElement(tsNode)
	case "import_statement":
		return b.buildImportStatement(tsNode)
	case "export_statement":
		return b.buildExportStatement(tsNode)
	case "type_annotation":
		return b.firstNamedChild(tsNode)
	case "predefined_type":
		return b.buildTypeName(tsNode, NodeTypeKeyword, tsNode)
	case "type_identifier", "nested_type_identifier":
		return b.buildTypeName(tsNode, NodeTypeReference, tsNode)
	case "generic_type":
		return b.buildGenericType(tsNode)
	case "array_type":
		return b.buildArrayType(tsNode)
	case "union_type":
		return b.buildContainer(tsNode, NodeUnionType)
	case "intersection_type":
		return b.buildContainer(tsNode, NodeIntersectionType)
	default:
		// For unknown nodes, create a generic node and process children
		return b.buildGenericNode(tsNode)
	}
}

// buildProgram builds a program node
func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeProgram, tsNode)
	node.Body = b.buildNamedChildren(tsNode)
	return node
}

// buildFunction builds a function declaration or expression node
func (b *ASTBuilder) buildFunction(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	node.Async = b.hasToken(tsNode, "async")

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildNamedChildren(paramsNode)
	}
	node.Body = b.buildFunctionBody(b.getChildByFieldName(tsNode, "body"))

	return node
}

// buildArrowFunction builds an arrow function node
func (b *ASTBuilder) buildArrowFunction(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeArrowFunction, tsNode)
	node.Async = b.hasToken(tsNode, "async")

	if paramNode := b.getChildByFieldName(tsNode, "parameter"); paramNode != nil {
		// Single parameter without parentheses
		if param := b.buildNode(paramNode); param != nil {
			node.Params = []*Node{param}
		}
	} else if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildNamedChildren(paramsNode)
	}
	node.Body = b.buildFunctionBody(b.getChildByFieldName(tsNode, "body"))

	return node
}

// buildFunctionBody flattens a statement block into its statements.
// Expression bodies become a single-element body.
func (b *ASTBuilder) buildFunctionBody(bodyNode *sitter.Node) []*Node {
	if bodyNode == nil {
		return nil
	}
	if bodyNode.Type() == "statement_block" {
		return b.buildNamedChildren(bodyNode)
	}
	if expr := b.buildNode(bodyNode); expr != nil {
		return []*Node{expr}
	}
	return nil
}

// buildMethodDefinition builds a method definition node
func (b *ASTBuilder) buildMethodDefinition(tsNode *sitter.Node) *Node {
	node := b.buildFunction(tsNode, NodeMethodDefinition)
	node.Generator = b.hasToken(tsNode, "*")
	return node
}

// buildClass builds a class declaration or expression node
func (b *ASTBuilder) buildClass(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
		node.ID = b.buildIdentifier(nameNode, NodeIdentifier)
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "class_heritage":
			for _, h := range b.buildNamedChildren(child) {
				node.AddChild(h)
			}
		case "class_body":
			node.Body = b.buildNamedChildren(child)
		}
	}

	return node
}

// buildClassProperty builds a class field node
func (b *ASTBuilder) buildClassProperty(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeClassProperty, tsNode)

	keyNode := b.getChildByFieldName(tsNode, "property")
	if keyNode == nil {
		keyNode = b.getChildByFieldName(tsNode, "name")
	}
	if keyNode != nil {
		node.Key = b.buildKey(keyNode, node)
		node.Name = b.keyName(keyNode)
	}
	if typeNode := b.getChildByFieldName(tsNode, "type"); typeNode != nil {
		node.TypeAnnotation = b.buildNode(typeNode)
	}
	node.Value = b.buildNode(b.getChildByFieldName(tsNode, "value"))

	return node
}

// buildIfStatement builds an if statement node
func (b *ASTBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeIfStatement, tsNode)
	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "condition"))
	node.Consequent = b.buildNode(b.getChildByFieldName(tsNode, "consequence"))
	// else_clause is unwrapped so Alternate is the inner if or block
	node.Alternate = b.buildNode(b.getChildByFieldName(tsNode, "alternative"))
	return node
}

// buildSwitchStatement builds a switch statement node
func (b *ASTBuilder) buildSwitchStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeSwitchStatement, tsNode)
	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "value"))
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Cases = b.buildNamedChildren(bodyNode)
	}
	return node
}

// buildSwitchCase builds a case or default clause with all of its statements
func (b *ASTBuilder) buildSwitchCase(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)

	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "value"))

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || !child.IsNamed() || b.isTrivia(child) || tsNode.FieldNameForChild(i) == "value" {
			continue
		}
		if stmt := b.buildNode(child); stmt != nil {
			node.Body = append(node.Body, stmt)
		}
	}

	return node
}

// buildForStatement builds a for statement node
func (b *ASTBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeForStatement, tsNode)
	node.Init = b.buildNode(b.getChildByFieldName(tsNode, "initializer"))
	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "condition"))
	node.Update = b.buildNode(b.getChildByFieldName(tsNode, "increment"))
	if node.Init != nil && node.Init.Type == NodeEmptyStatement {
		node.Init = nil
	}
	if node.Test != nil && node.Test.Type == NodeEmptyStatement {
		node.Test = nil
	}
	b.setLoopBody(node, tsNode)
	return node
}

// buildForInStatement builds a for-in or for-of statement node
func (b *ASTBuilder) buildForInStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeForInStatement, tsNode)

	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil && opNode.Content(b.source) == "of" {
		node.Type = NodeForOfStatement
	} else if b.hasToken(tsNode, "of") {
		node.Type = NodeForOfStatement
	}
	if kindNode := b.getChildByFieldName(tsNode, "kind"); kindNode != nil {
		node.Kind = kindNode.Content(b.source)
	}

	node.Left = b.buildNode(b.getChildByFieldName(tsNode, "left"))
	node.Right = b.buildNode(b.getChildByFieldName(tsNode, "right"))
	b.setLoopBody(node, tsNode)
	return node
}

// buildLoop builds a while or do-while statement node
func (b *ASTBuilder) buildLoop(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "condition"))
	b.setLoopBody(node, tsNode)
	return node
}

// setLoopBody keeps the loop body as a single statement node
func (b *ASTBuilder) setLoopBody(node *Node, tsNode *sitter.Node) {
	if body := b.buildNode(b.getChildByFieldName(tsNode, "body")); body != nil {
		node.Body = []*Node{body}
	}
}

// buildTryStatement builds a try statement node
func (b *ASTBuilder) buildTryStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeTryStatement, tsNode)
	if block := b.buildNode(b.getChildByFieldName(tsNode, "body")); block != nil {
		node.Body = []*Node{block}
	}
	node.Handler = b.buildNode(b.getChildByFieldName(tsNode, "handler"))
	node.Finalizer = b.buildNode(b.getChildByFieldName(tsNode, "finalizer"))
	return node
}

// buildCatchClause builds a catch clause node
func (b *ASTBuilder) buildCatchClause(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeCatchClause, tsNode)
	if param := b.buildNode(b.getChildByFieldName(tsNode, "parameter")); param != nil {
		node.Params = []*Node{param}
	}
	if block := b.buildNode(b.getChildByFieldName(tsNode, "body")); block != nil {
		node.Body = []*Node{block}
	}
	return node
}

// buildArgumentStatement builds a return or throw statement node
func (b *ASTBuilder) buildArgumentStatement(tsNode *sitter.Node) *Node {
	nodeType := NodeReturnStatement
	if tsNode.Type() == "throw_statement" {
		nodeType = NodeThrowStatement
	}
	node := b.newNode(nodeType, tsNode)
	node.Argument = b.firstNamedChild(tsNode)
	return node
}

// buildJumpStatement builds a break or continue statement node
func (b *ASTBuilder) buildJumpStatement(tsNode *sitter.Node) *Node {
	nodeType := NodeBreakStatement
	if tsNode.Type() == "continue_statement" {
		nodeType = NodeContinueStatement
	}
	node := b.newNode(nodeType, tsNode)

	labelNode := b.getChildByFieldName(tsNode, "label")
	if labelNode == nil {
		labelNode = b.firstChildOfType(tsNode, "statement_identifier")
	}
	if labelNode != nil {
		node.Label = b.buildIdentifier(labelNode, NodeIdentifier)
	}
	return node
}

// buildLabeledStatement builds a labeled statement node
func (b *ASTBuilder) buildLabeledStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeLabeledStatement, tsNode)
	if labelNode := b.getChildByFieldName(tsNode, "label"); labelNode != nil {
		node.Label = b.buildIdentifier(labelNode, NodeIdentifier)
	}
	if body := b.buildNode(b.getChildByFieldName(tsNode, "body")); body != nil {
		node.Body = []*Node{body}
	}
	return node
}

// buildVariableDeclaration builds a variable declaration node
func (b *ASTBuilder) buildVariableDeclaration(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeVariableDeclaration, tsNode)

	node.Kind = "var"
	if kindNode := b.getChildByFieldName(tsNode, "kind"); kindNode != nil {
		node.Kind = kindNode.Content(b.source)
	} else if tsNode.Type() == "lexical_declaration" && tsNode.ChildCount() > 0 {
		node.Kind = tsNode.Child(0).Content(b.source)
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && child.Type() == "variable_declarator" {
			node.Declarations = append(node.Declarations, b.buildVariableDeclarator(child))
		}
	}

	return node
}

// buildVariableDeclarator builds a declarator with its binding and initializer
func (b *ASTBuilder) buildVariableDeclarator(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeVariableDeclarator, tsNode)
	node.ID = b.buildNode(b.getChildByFieldName(tsNode, "name"))
	if node.ID != nil {
		node.Name = node.ID.Name
		if typeNode := b.getChildByFieldName(tsNode, "type"); typeNode != nil {
			node.ID.TypeAnnotation = b.buildNode(typeNode)
		}
	}
	node.Init = b.buildNode(b.getChildByFieldName(tsNode, "value"))
	return node
}

// buildBlockStatement builds a block statement node
func (b *ASTBuilder) buildBlockStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeBlockStatement, tsNode)
	node.Body = b.buildNamedChildren(tsNode)
	return node
}

// buildCallExpression builds a call or new expression node
func (b *ASTBuilder) buildCallExpression(tsNode *sitter.Node, nodeType NodeType, calleeField string) *Node {
	node := b.newNode(nodeType, tsNode)
	node.Callee = b.buildNode(b.getChildByFieldName(tsNode, calleeField))
	node.Optional = b.getChildByFieldName(tsNode, "optional_chain") != nil

	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		if argsNode.Type() == "arguments" {
			node.Arguments = b.buildNamedChildren(argsNode)
		} else if arg := b.buildNode(argsNode); arg != nil {
			// Tagged template
			node.Arguments = []*Node{arg}
		}
	}

	return node
}

// buildMemberExpression builds a member expression node
func (b *ASTBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeMemberExpression, tsNode)
	node.Object = b.buildNode(b.getChildByFieldName(tsNode, "object"))
	node.Property = b.buildNode(b.getChildByFieldName(tsNode, "property"))
	node.Optional = b.getChildByFieldName(tsNode, "optional_chain") != nil
	return node
}

// buildSubscriptExpression builds a computed member expression node
func (b *ASTBuilder) buildSubscriptExpression(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeMemberExpression, tsNode)
	node.Computed = true
	node.Object = b.buildNode(b.getChildByFieldName(tsNode, "object"))
	node.Property = b.buildNode(b.getChildByFieldName(tsNode, "index"))
	node.Optional = b.getChildByFieldName(tsNode, "optional_chain") != nil
	return node
}

// buildBinaryExpression builds a binary expression node
func (b *ASTBuilder) buildBinaryExpression(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeBinaryExpression, tsNode)
	node.Left = b.buildNode(b.getChildByFieldName(tsNode, "left"))
	node.Right = b.buildNode(b.getChildByFieldName(tsNode, "right"))
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}

	// Check if it's a logical operator (&&, ||, ??)
	if node.Operator == "&&" || node.Operator == "||" || node.Operator == "??" {
		node.Type = NodeLogicalExpression
	}

	return node
}

// buildUnaryExpression builds a unary or update expression node
func (b *ASTBuilder) buildUnaryExpression(tsNode *sitter.Node) *Node {
	nodeType := NodeUnaryExpression
	if tsNode.Type() == "update_expression" {
		nodeType = NodeUpdateExpression
	}
	node := b.newNode(nodeType, tsNode)

	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if argNode := b.getChildByFieldName(tsNode, "argument"); argNode != nil {
		node.Argument = b.buildNode(argNode)
	}

	return node
}

// buildAssignmentExpression builds a plain or augmented assignment node
func (b *ASTBuilder) buildAssignmentExpression(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeAssignmentExpression, tsNode)
	node.Left = b.buildNode(b.getChildByFieldName(tsNode, "left"))
	node.Right = b.buildNode(b.getChildByFieldName(tsNode, "right"))

	node.Operator = "="
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}

	return node
}

// buildConditionalExpression builds a conditional (ternary) expression node
func (b *ASTBuilder) buildConditionalExpression(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeConditionalExpression, tsNode)
	node.Test = b.buildNode(b.getChildByFieldName(tsNode, "condition"))
	node.Consequent = b.buildNode(b.getChildByFieldName(tsNode, "consequence"))
	node.Alternate = b.buildNode(b.getChildByFieldName(tsNode, "alternative"))
	return node
}

// buildWrapper builds a node whose only operand is its first named child
func (b *ASTBuilder) buildWrapper(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	node.Argument = b.firstNamedChild(tsNode)
	return node
}

// buildContainer builds a node whose named children become Children
func (b *ASTBuilder) buildContainer(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	for _, child := range b.buildNamedChildren(tsNode) {
		node.AddChild(child)
	}
	return node
}

// buildIdentifier builds an identifier node
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildLiteral builds a literal node
func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeLiteral, tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

// buildTemplateString builds a template literal with its substitutions
func (b *ASTBuilder) buildTemplateString(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeTemplateLiteral, tsNode)
	node.Raw = tsNode.Content(b.source)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && child.Type() == "template_substitution" {
			node.AddChild(b.firstNamedChild(child))
		}
	}
	return node
}

// buildElements builds array/object literals and patterns
func (b *ASTBuilder) buildElements(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := b.newNode(nodeType, tsNode)
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
			prop := b.newNode(NodeProperty, child)
			prop.Shorthand = true
			prop.Value = b.buildIdentifier(child, NodeIdentifier)
			prop.Name = prop.Value.Name
			node.Elements = append(node.Elements, prop)
		case "object_assignment_pattern":
			prop := b.newNode(NodeProperty, child)
			prop.Shorthand = true
			prop.Value = b.buildAssignmentPattern(child)
			if prop.Value.Left != nil {
				prop.Name = prop.Value.Left.Name
			}
			node.Elements = append(node.Elements, prop)
		default:
			if elem := b.buildNode(child); elem != nil {
				node.Elements = append(node.Elements, elem)
			}
		}
	}
	return node
}

// buildPair builds a key/value property of an object literal or pattern
func (b *ASTBuilder) buildPair(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeProperty, tsNode)
	if keyNode := b.getChildByFieldName(tsNode, "key"); keyNode != nil {
		node.Key = b.buildKey(keyNode, node)
		node.Name = b.keyName(keyNode)
	}
	node.Value = b.buildNode(b.getChildByFieldName(tsNode, "value"))
	return node
}

// buildKey builds a property key, marking owner as computed when needed
func (b *ASTBuilder) buildKey(keyNode *sitter.Node, owner *Node) *Node {
	if keyNode.Type() == "computed_property_name" {
		owner.Computed = true
		return b.firstNamedChild(keyNode)
	}
	if keyNode.Type() == "identifier" {
		return b.buildIdentifier(keyNode, NodePropertyIdentifier)
	}
	return b.buildNode(keyNode)
}

// keyName returns the property name of a key, without string quotes
func (b *ASTBuilder) keyName(keyNode *sitter.Node) string {
	name := keyNode.Content(b.source)
	if keyNode.Type() == "string" && len(name) >= 2 {
		return name[1 : len(name)-1]
	}
	return name
}

// buildAssignmentPattern builds a binding with a default value
func (b *ASTBuilder) buildAssignmentPattern(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeAssignmentPattern, tsNode)
	node.Left = b.buildNode(b.getChildByFieldName(tsNode, "left"))
	node.Right = b.buildNode(b.getChildByFieldName(tsNode, "right"))
	return node
}

// buildTypedParameter builds a TypeScript parameter as its binding pattern
func (b *ASTBuilder) buildTypedParameter(tsNode *sitter.Node) *Node {
	pattern := b.buildNode(b.getChildByFieldName(tsNode, "pattern"))
	if pattern == nil {
		return b.buildGenericNode(tsNode)
	}
	if typeNode := b.getChildByFieldName(tsNode, "type"); typeNode != nil {
		pattern.TypeAnnotation = b.buildNode(typeNode)
	}

	valueNode := b.getChildByFieldName(tsNode, "value")
	if valueNode == nil {
		return pattern
	}
	node := b.newNode(NodeAssignmentPattern, tsNode)
	node.Left = pattern
	node.Right = b.buildNode(valueNode)
	return node
}

// buildJSXElement builds a JSX element or fragment node
func (b *ASTBuilder) buildJSXElement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeJSXElement, tsNode)
	switch tsNode.Type() {
	case "jsx_fragment":
		node.Type = NodeJSXFragment
	case "jsx_element":
		if open := b.getChildByFieldName(tsNode, "open_tag"); open != nil && b.getChildByFieldName(open, "name") == nil {
			node.Type = NodeJSXFragment
		}
	}
	for _, child := range b.buildNamedChildren(tsNode) {
		node.AddChild(child)
	}
	return node
}

// buildImportStatement builds an import declaration with its local bindings
func (b *ASTBuilder) buildImportStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeImportDeclaration, tsNode)
	node.Source = b.buildNode(b.getChildByFieldName(tsNode, "source"))

	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "identifier":
				node.Specifiers = append(node.Specifiers, b.buildImportSpecifier(child, child))
			case "import_specifier":
				local := b.getChildByFieldName(child, "alias")
				if local == nil {
					local = b.getChildByFieldName(child, "name")
				}
				if local != nil {
					node.Specifiers = append(node.Specifiers, b.buildImportSpecifier(child, local))
				}
			case "import_clause", "named_imports", "namespace_import":
				collect(child)
			}
		}
	}
	collect(tsNode)

	return node
}

// buildImportSpecifier builds a specifier whose Local is the bound identifier
func (b *ASTBuilder) buildImportSpecifier(tsNode, localNode *sitter.Node) *Node {
	node := b.newNode(NodeImportSpecifier, tsNode)
	node.Local = b.buildIdentifier(localNode, NodeIdentifier)
	node.Name = node.Local.Name
	return node
}

// buildExportStatement builds an export statement node
func (b *ASTBuilder) buildExportStatement(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeExportNamedDeclaration, tsNode)
	if decl := b.getChildByFieldName(tsNode, "declaration"); decl != nil {
		node.Declaration = b.buildNode(decl)
		return node
	}
	if value := b.getChildByFieldName(tsNode, "value"); value != nil {
		node.Declaration = b.buildNode(value)
		return node
	}
	// Export clauses only name bindings; they do not introduce new ones.
	node.Source = b.buildNode(b.getChildByFieldName(tsNode, "source"))
	return node
}

// buildTypeName builds a keyword or named type reference
func (b *ASTBuilder) buildTypeName(tsNode *sitter.Node, nodeType NodeType, nameNode *sitter.Node) *Node {
	node := b.newNode(nodeType, tsNode)
	if nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	return node
}

// buildGenericType builds Name<A, B> as a type reference whose Children
// are the type arguments
func (b *ASTBuilder) buildGenericType(tsNode *sitter.Node) *Node {
	node := b.buildTypeName(tsNode, NodeTypeReference, b.getChildByFieldName(tsNode, "name"))
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || child.Type() != "type_arguments" {
			continue
		}
		for _, arg := range b.buildNamedChildren(child) {
			node.AddChild(arg)
		}
	}
	return node
}

// buildArrayType builds T[] with the element type as TypeAnnotation
func (b *ASTBuilder) buildArrayType(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeArrayType, tsNode)
	node.TypeAnnotation = b.firstNamedChild(tsNode)
	return node
}

// buildGenericNode builds a generic node for unknown types
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := b.newNode(NodeType(tsNode.Type()), tsNode)

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			node.AddChild(b.buildNode(child))
		}
	}

	return node
}

// Helper methods

// newNode creates a node located at tsNode
func (b *ASTBuilder) newNode(nodeType NodeType, tsNode *sitter.Node) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildNamedChildren builds every named, non-trivia child
func (b *ASTBuilder) buildNamedChildren(tsNode *sitter.Node) []*Node {
	var nodes []*Node
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if n := b.buildNode(child); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// firstNamedChild builds the first named, non-trivia child
func (b *ASTBuilder) firstNamedChild(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child != nil && !b.isTrivia(child) {
			return b.buildNode(child)
		}
	}
	return nil
}

// firstChildOfType returns the first direct child with the given type
func (b *ASTBuilder) firstChildOfType(tsNode *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// hasToken reports whether tsNode has an anonymous child token of the given type
func (b *ASTBuilder) hasToken(tsNode *sitter.Node, token string) bool {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// getChildByFieldName gets a child node by field name
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	if tsNode == nil {
		return nil
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (whitespace, comments, etc.)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" ||
		nodeType == "html_comment" ||
		nodeType == ""
}
