package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJS(t *testing.T, source string) *Node {
	t.Helper()
	p := New(JavaScript)
	defer p.Close()
	ast, err := p.Parse(context.Background(), "<input>", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, ast)
	return ast
}

func parseTS(t *testing.T, source string) *Node {
	t.Helper()
	p := New(TypeScript)
	defer p.Close()
	ast, err := p.Parse(context.Background(), "<input>", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, ast)
	return ast
}

// firstStatement returns the single top-level statement of source
func firstStatement(t *testing.T, ast *Node) *Node {
	t.Helper()
	require.Equal(t, NodeProgram, ast.Type)
	require.NotEmpty(t, ast.Body)
	return ast.Body[0]
}

func TestDialectOf(t *testing.T) {
	tests := []struct {
		file string
		want Dialect
	}{
		{"a.js", JavaScript},
		{"a.mjs", JavaScript},
		{"a.jsx", JavaScript},
		{"a.ts", TypeScript},
		{"A.TSX", TypeScript},
		{"a.mts", TypeScript},
		{"a.cts", TypeScript},
		{"Makefile", JavaScript},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectOf(tt.file))
		})
	}

	p := New(TypeScript)
	defer p.Close()
	assert.Equal(t, TypeScript, p.Dialect())
	assert.Equal(t, "typescript", TypeScript.String())
	assert.Equal(t, "javascript", JavaScript.String())
}

func TestParseSource(t *testing.T) {
	ast, err := ParseSource(context.Background(), "sum.ts", []byte("function sum(a: number, b: number): number { return a + b }"))
	require.NoError(t, err)

	fn := firstStatement(t, ast)
	assert.Equal(t, NodeFunction, fn.Type)
	assert.Equal(t, "sum.ts", fn.Location.File)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Params[0].TypeAnnotation)
	assert.Equal(t, "number", fn.Params[0].TypeAnnotation.Name)
}

func TestParser_Parse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.js")
	require.NoError(t, os.WriteFile(path, []byte("function hello() {\n  return 42;\n}\n"), 0o644))

	source, err := os.ReadFile(path)
	require.NoError(t, err)

	p := New(JavaScript)
	defer p.Close()
	ast, err := p.Parse(context.Background(), path, source)
	require.NoError(t, err)

	fn := firstStatement(t, ast)
	assert.Equal(t, "hello", fn.Name)
	assert.Equal(t, Location{File: path, StartLine: 1, StartCol: 0, EndLine: 3, EndCol: 1}, fn.Location)
	require.Len(t, fn.Body, 1)
	assert.Equal(t, NodeReturnStatement, fn.Body[0].Type)
	assert.Equal(t, "42", fn.Body[0].Argument.Raw)
}

func TestParser_EmptyAndBrokenInput(t *testing.T) {
	ast := parseJS(t, "")
	assert.Equal(t, NodeProgram, ast.Type)
	assert.Empty(t, ast.Body)

	// tree-sitter recovers from syntax errors instead of failing
	ast = parseJS(t, "function (")
	assert.Equal(t, NodeProgram, ast.Type)
}

func TestParse_CommentsAreSkipped(t *testing.T) {
	ast := parseJS(t, "// leading\nfunction f() { /* inner */ return 1 }")
	require.Len(t, ast.Body, 1)
	require.Len(t, ast.Body[0].Body, 1)
	assert.Equal(t, NodeReturnStatement, ast.Body[0].Body[0].Type)
}

func TestParse_Functions(t *testing.T) {
	t.Run("generator", func(t *testing.T) {
		fn := firstStatement(t, parseJS(t, "function* g() { yield 1; }"))
		assert.Equal(t, NodeGeneratorFunction, fn.Type)
		assert.True(t, fn.Generator)
		require.Len(t, fn.Body, 1)
		assert.Equal(t, NodeYieldExpression, fn.Body[0].Type)
	})

	t.Run("async arrow with block body", func(t *testing.T) {
		decl := firstStatement(t, parseJS(t, "const f = async () => { await g(); };"))
		arrow := decl.Declarations[0].Init
		require.NotNil(t, arrow)
		assert.Equal(t, NodeArrowFunction, arrow.Type)
		assert.True(t, arrow.Async)
		require.Len(t, arrow.Body, 1)
		assert.Equal(t, NodeAwaitExpression, arrow.Body[0].Type)
	})

	t.Run("arrow with expression body", func(t *testing.T) {
		decl := firstStatement(t, parseJS(t, "const double = x => x * 2;"))
		arrow := decl.Declarations[0].Init
		require.Len(t, arrow.Params, 1)
		assert.Equal(t, "x", arrow.Params[0].Name)
		require.Len(t, arrow.Body, 1)
		assert.Equal(t, NodeBinaryExpression, arrow.Body[0].Type)
		assert.Equal(t, "*", arrow.Body[0].Operator)
	})

	t.Run("default and rest parameters", func(t *testing.T) {
		fn := firstStatement(t, parseJS(t, "function f(a = 1, ...rest) {}"))
		require.Len(t, fn.Params, 2)
		assert.Equal(t, NodeAssignmentPattern, fn.Params[0].Type)
		assert.Equal(t, "a", fn.Params[0].Left.Name)
		assert.Equal(t, NodeRestElement, fn.Params[1].Type)
		assert.Equal(t, "rest", fn.Params[1].Argument.Name)
	})

	t.Run("class members", func(t *testing.T) {
		class := firstStatement(t, parseJS(t, "class Cart { total = 0; add(item) { return item; } }"))
		assert.Equal(t, NodeClass, class.Type)
		assert.Equal(t, "Cart", class.Name)
		require.Len(t, class.Body, 2)
		assert.Equal(t, NodeClassProperty, class.Body[0].Type)
		assert.Equal(t, "total", class.Body[0].Name)
		assert.Equal(t, NodeMethodDefinition, class.Body[1].Type)
		assert.Equal(t, "add", class.Body[1].Name)
		assert.True(t, class.Body[1].IsFunction())
	})
}

func TestParse_IfElseChain(t *testing.T) {
	stmt := firstStatement(t, parseJS(t, "if ((a)) { x(); } else if (b) { y(); } else { z(); }"))

	assert.Equal(t, NodeIfStatement, stmt.Type)
	// parentheses do not produce nodes
	assert.Equal(t, NodeIdentifier, stmt.Test.Type)
	assert.Equal(t, NodeBlockStatement, stmt.Consequent.Type)

	require.NotNil(t, stmt.Alternate)
	assert.Equal(t, NodeIfStatement, stmt.Alternate.Type)
	assert.Equal(t, "b", stmt.Alternate.Test.Name)
	require.NotNil(t, stmt.Alternate.Alternate)
	assert.Equal(t, NodeBlockStatement, stmt.Alternate.Alternate.Type)
}

func TestParse_Loops(t *testing.T) {
	t.Run("for", func(t *testing.T) {
		loop := firstStatement(t, parseJS(t, "for (let i = 0; i < n; i++) { step(i); }"))
		assert.Equal(t, NodeForStatement, loop.Type)
		require.NotNil(t, loop.Init)
		assert.Equal(t, NodeVariableDeclaration, loop.Init.Type)
		assert.Equal(t, "let", loop.Init.Kind)
		assert.Equal(t, "<", loop.Test.Operator)
		assert.Equal(t, NodeUpdateExpression, loop.Update.Type)
		require.Len(t, loop.Body, 1)
		assert.Equal(t, NodeBlockStatement, loop.Body[0].Type)
		assert.True(t, loop.IsLoop())
	})

	t.Run("infinite for", func(t *testing.T) {
		loop := firstStatement(t, parseJS(t, "for (;;) { break; }"))
		assert.Nil(t, loop.Init)
		assert.Nil(t, loop.Test)
	})

	t.Run("for-of", func(t *testing.T) {
		loop := firstStatement(t, parseJS(t, "for (const item of items) total += item;"))
		assert.Equal(t, NodeForOfStatement, loop.Type)
		assert.Equal(t, "const", loop.Kind)
		assert.Equal(t, "item", loop.Left.Name)
		assert.Equal(t, "items", loop.Right.Name)
		require.Len(t, loop.Body, 1)
		assert.Equal(t, NodeAssignmentExpression, loop.Body[0].Type)
		assert.Equal(t, "+=", loop.Body[0].Operator)
	})

	t.Run("for-in", func(t *testing.T) {
		loop := firstStatement(t, parseJS(t, "for (const key in obj) {}"))
		assert.Equal(t, NodeForInStatement, loop.Type)
	})

	t.Run("while and do-while", func(t *testing.T) {
		ast := parseJS(t, "while (busy) { wait(); }\ndo { i--; } while (i > 0);")
		require.Len(t, ast.Body, 2)
		assert.Equal(t, NodeWhileStatement, ast.Body[0].Type)
		assert.Equal(t, "busy", ast.Body[0].Test.Name)
		assert.Equal(t, NodeDoWhileStatement, ast.Body[1].Type)
		assert.Equal(t, ">", ast.Body[1].Test.Operator)
	})
}

func TestParse_SwitchCases(t *testing.T) {
	stmt := firstStatement(t, parseJS(t, "switch (x) { case 1: a(); break; case 2: default: b(); }"))

	assert.Equal(t, NodeSwitchStatement, stmt.Type)
	assert.Equal(t, "x", stmt.Test.Name)
	require.Len(t, stmt.Cases, 3)

	assert.Equal(t, NodeCaseClause, stmt.Cases[0].Type)
	assert.Equal(t, "1", stmt.Cases[0].Test.Raw)
	require.Len(t, stmt.Cases[0].Body, 2)
	assert.Equal(t, NodeCallExpression, stmt.Cases[0].Body[0].Type)
	assert.Equal(t, NodeBreakStatement, stmt.Cases[0].Body[1].Type)

	assert.Empty(t, stmt.Cases[1].Body)
	assert.Equal(t, NodeDefaultClause, stmt.Cases[2].Type)
	assert.Nil(t, stmt.Cases[2].Test)
}

func TestParse_TryCatchFinally(t *testing.T) {
	stmt := firstStatement(t, parseJS(t, "try { a(); } catch (e) { b(e); } finally { c(); }"))

	assert.Equal(t, NodeTryStatement, stmt.Type)
	require.Len(t, stmt.Body, 1)
	assert.Equal(t, NodeBlockStatement, stmt.Body[0].Type)

	require.NotNil(t, stmt.Handler)
	assert.Equal(t, NodeCatchClause, stmt.Handler.Type)
	require.Len(t, stmt.Handler.Params, 1)
	assert.Equal(t, "e", stmt.Handler.Params[0].Name)

	require.NotNil(t, stmt.Finalizer)
	assert.Equal(t, NodeBlockStatement, stmt.Finalizer.Type)
}

func TestParse_LabeledJump(t *testing.T) {
	stmt := firstStatement(t, parseJS(t, "outer: for (const a of xs) { for (const b of ys) { continue outer; } }"))

	assert.Equal(t, NodeLabeledStatement, stmt.Type)
	assert.Equal(t, "outer", stmt.Label.Name)

	var jump *Node
	stmt.Walk(func(n *Node) bool {
		if n.Type == NodeContinueStatement {
			jump = n
		}
		return true
	})
	require.NotNil(t, jump)
	require.NotNil(t, jump.Label)
	assert.Equal(t, "outer", jump.Label.Name)
}

func TestParse_Expressions(t *testing.T) {
	t.Run("logical operators", func(t *testing.T) {
		expr := firstStatement(t, parseJS(t, "a || b && c;"))
		assert.Equal(t, NodeLogicalExpression, expr.Type)
		assert.Equal(t, "||", expr.Operator)
		assert.Equal(t, NodeLogicalExpression, expr.Right.Type)
		assert.Equal(t, "&&", expr.Right.Operator)
	})

	t.Run("nullish coalescing", func(t *testing.T) {
		expr := firstStatement(t, parseJS(t, "a ?? b;"))
		assert.Equal(t, NodeLogicalExpression, expr.Type)
		assert.Equal(t, "??", expr.Operator)
	})

	t.Run("ternary", func(t *testing.T) {
		expr := firstStatement(t, parseJS(t, "ok ? yes() : no();"))
		assert.Equal(t, NodeConditionalExpression, expr.Type)
		assert.Equal(t, "ok", expr.Test.Name)
		assert.Equal(t, NodeCallExpression, expr.Consequent.Type)
		assert.Equal(t, NodeCallExpression, expr.Alternate.Type)
	})

	t.Run("template substitutions", func(t *testing.T) {
		expr := firstStatement(t, parseJS(t, "`a ${b} c ${d}`;"))
		assert.Equal(t, NodeTemplateLiteral, expr.Type)
		require.Len(t, expr.Children, 2)
		assert.Equal(t, "b", expr.Children[0].Name)
		assert.Equal(t, "d", expr.Children[1].Name)
	})

	t.Run("method call", func(t *testing.T) {
		call := firstStatement(t, parseJS(t, "list.push(item, 2);"))
		assert.Equal(t, NodeCallExpression, call.Type)
		assert.Equal(t, NodeMemberExpression, call.Callee.Type)
		assert.Equal(t, "list.push", call.Callee.Text())
		assert.Len(t, call.Arguments, 2)
	})

	t.Run("optional chain", func(t *testing.T) {
		member := firstStatement(t, parseJS(t, "user?.name;"))
		assert.Equal(t, NodeMemberExpression, member.Type)
		assert.True(t, member.Optional)
	})

	t.Run("spread", func(t *testing.T) {
		call := firstStatement(t, parseJS(t, "f(...args);"))
		require.Len(t, call.Arguments, 1)
		assert.Equal(t, NodeSpreadElement, call.Arguments[0].Type)
	})
}

func TestParse_Destructuring(t *testing.T) {
	decl := firstStatement(t, parseJS(t, "const { a, b: c, d = 1 } = obj, [e, ...f] = arr;"))

	assert.Equal(t, NodeVariableDeclaration, decl.Type)
	assert.Equal(t, "const", decl.Kind)
	require.Len(t, decl.Declarations, 2)

	obj := decl.Declarations[0].ID
	assert.Equal(t, NodeObjectPattern, obj.Type)
	assert.True(t, obj.IsPattern())
	require.Len(t, obj.Elements, 3)
	assert.True(t, obj.Elements[0].Shorthand)
	assert.Equal(t, "a", obj.Elements[0].Name)
	assert.Equal(t, "b", obj.Elements[1].Name)
	assert.Equal(t, "c", obj.Elements[1].Value.Name)
	assert.Equal(t, "d", obj.Elements[2].Name)
	assert.Equal(t, NodeAssignmentPattern, obj.Elements[2].Value.Type)

	arr := decl.Declarations[1].ID
	assert.Equal(t, NodeArrayPattern, arr.Type)
	require.Len(t, arr.Elements, 2)
	assert.Equal(t, NodeRestElement, arr.Elements[1].Type)
}

func TestParse_Modules(t *testing.T) {
	ast := parseJS(t, "import def, { a as b, c } from \"m\";\nexport function run() {}")
	require.Len(t, ast.Body, 2)

	imp := ast.Body[0]
	assert.Equal(t, NodeImportDeclaration, imp.Type)
	var names []string
	for _, spec := range imp.Specifiers {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"def", "b", "c"}, names)

	exp := ast.Body[1]
	assert.Equal(t, NodeExportNamedDeclaration, exp.Type)
	require.NotNil(t, exp.Declaration)
	assert.Equal(t, "run", exp.Declaration.Name)
}

func TestParse_JSX(t *testing.T) {
	ast := parseJS(t, "const a = <div>{x}</div>;\nconst b = <><span /></>;")
	require.Len(t, ast.Body, 2)
	assert.Equal(t, NodeJSXElement, ast.Body[0].Declarations[0].Init.Type)
	assert.Equal(t, NodeJSXFragment, ast.Body[1].Declarations[0].Init.Type)
}

func TestParse_TypeAnnotations(t *testing.T) {
	fn := firstStatement(t, parseTS(t, "function f(a: number, b?: string[], c: Map<string, number> = new Map()) { let d: boolean | null = null; }"))
	require.Len(t, fn.Params, 3)

	assert.Equal(t, NodeTypeKeyword, fn.Params[0].TypeAnnotation.Type)
	assert.Equal(t, "number", fn.Params[0].TypeAnnotation.Name)

	arr := fn.Params[1].TypeAnnotation
	require.NotNil(t, arr)
	assert.Equal(t, NodeArrayType, arr.Type)
	assert.Equal(t, "string", arr.TypeAnnotation.Name)

	withDefault := fn.Params[2]
	assert.Equal(t, NodeAssignmentPattern, withDefault.Type)
	assert.Equal(t, NodeTypeReference, withDefault.Left.TypeAnnotation.Type)
	assert.Equal(t, "Map", withDefault.Left.TypeAnnotation.Name)
	require.Len(t, withDefault.Left.TypeAnnotation.Children, 2, "type arguments")
	assert.Equal(t, "string", withDefault.Left.TypeAnnotation.Children[0].Name)
	assert.Equal(t, NodeNewExpression, withDefault.Right.Type)

	require.Len(t, fn.Body, 1)
	binding := fn.Body[0].Declarations[0].ID
	require.NotNil(t, binding.TypeAnnotation)
	assert.Equal(t, NodeUnionType, binding.TypeAnnotation.Type)
	assert.Len(t, binding.TypeAnnotation.Children, 2)
}

func TestNode_Parents(t *testing.T) {
	ast := parseJS(t, "function f() { if (a) { return b; } }")
	fn := ast.Body[0]
	ifStmt := fn.Body[0]
	ret := ifStmt.Consequent.Body[0]

	assert.Same(t, ast, fn.Parent)
	assert.Same(t, fn, ifStmt.Parent)
	assert.Same(t, ifStmt.Consequent, ret.Parent)
	assert.Same(t, ret, ret.Argument.Parent)
}

func TestNode_ChildNodesSourceOrder(t *testing.T) {
	stmt := firstStatement(t, parseJS(t, "if (a) { x(); } else { y(); }"))

	children := stmt.ChildNodes()
	require.Len(t, children, 3)
	assert.Same(t, stmt.Test, children[0])
	assert.Same(t, stmt.Consequent, children[1])
	assert.Same(t, stmt.Alternate, children[2])

	var nilNode *Node
	assert.Nil(t, nilNode.ChildNodes())
}

func TestNode_Walk(t *testing.T) {
	ast := parseJS(t, "function f() { g(); }\nfunction h() { i(); }")

	var calls int
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeCallExpression {
			calls++
		}
		return true
	})
	assert.Equal(t, 2, calls)

	// returning false prunes the subtree
	calls = 0
	ast.Walk(func(n *Node) bool {
		if n.IsFunction() {
			return false
		}
		if n.Type == NodeCallExpression {
			calls++
		}
		return true
	})
	assert.Zero(t, calls)

	var nilNode *Node
	nilNode.Walk(func(*Node) bool {
		t.Fatal("visitor called for nil node")
		return true
	})
}

func TestNode_Text(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"items;", "items"},
		{"this;", "this"},
		{"this.items.length;", "this.items.length"},
		{"cache[key];", "cache[key]"},
		{"this['run'];", "this['run']"},
		{"f().x;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, firstStatement(t, parseJS(t, tt.source)).Text())
		})
	}
}

func TestNode_Helpers(t *testing.T) {
	n := NewNode(NodeBlockStatement)
	n.AddChild(nil)
	assert.Empty(t, n.Children)

	child := NewNode(NodeIdentifier)
	n.AddChild(child)
	assert.Same(t, n, child.Parent)

	named := &Node{Type: NodeFunction, Name: "run", Location: Location{File: "a.js", StartLine: 3, StartCol: 2}}
	assert.Equal(t, "FunctionDeclaration(run) at a.js:3:2", named.String())
	assert.Equal(t, "Identifier at :0:0", child.String())

	var nilNode *Node
	assert.False(t, nilNode.IsFunction())
	assert.False(t, nilNode.IsLoop())
	assert.False(t, nilNode.IsPattern())
	assert.Equal(t, "", nilNode.Text())
}

func TestLocation_Contains(t *testing.T) {
	outer := Location{StartLine: 10, EndLine: 20}
	assert.True(t, outer.Contains(Location{StartLine: 10, EndLine: 20}))
	assert.True(t, outer.Contains(Location{StartLine: 12, EndLine: 15}))
	assert.False(t, outer.Contains(Location{StartLine: 9, EndLine: 15}))
	assert.False(t, outer.Contains(Location{StartLine: 15, EndLine: 21}))
}
