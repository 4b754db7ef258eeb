package scope

import "github.com/ludo-technologies/jsplit/internal/parser"

// resolver declares bindings while walking the tree and resolves all
// collected references once the walk is complete, so hoisted declarations
// are visible to earlier references.
type resolver struct {
	m    *Manager
	refs []*Reference
}

func (r *resolver) close() {
	for _, ref := range r.refs {
		v := ref.From.Lookup(ref.Identifier.Name)
		if v == nil {
			continue
		}
		ref.Resolved = v
		v.References = append(v.References, ref)
	}
}

func (r *resolver) reference(id *parser.Node, s *Scope, flag ReferenceFlag, init bool) {
	if id == nil || id.Type != parser.NodeIdentifier {
		return
	}
	ref := &Reference{Identifier: id, From: s, Flag: flag, Init: init}
	s.References = append(s.References, ref)
	r.refs = append(r.refs, ref)
}

func (r *resolver) visitList(nodes []*parser.Node, s *Scope) {
	for _, n := range nodes {
		r.visit(n, s)
	}
}

// visit dispatches on node type. Constructs that bind names or open scopes
// have dedicated handlers; everything else recurses into its children.
func (r *resolver) visit(n *parser.Node, s *Scope) {
	if n == nil {
		return
	}

	switch n.Type {
	case parser.NodeIdentifier:
		r.reference(n, s, Read, false)

	case parser.NodePropertyIdentifier, parser.NodeLiteral,
		parser.NodeTypeKeyword, parser.NodeTypeReference, parser.NodeArrayType,
		parser.NodeUnionType, parser.NodeIntersectionType,
		parser.NodeBreakStatement, parser.NodeContinueStatement:
		// no bindings or references

	case parser.NodeFunction, parser.NodeGeneratorFunction:
		s.declare(n.Name, &Definition{Type: DefFunctionName, Node: n})
		r.visitFunction(n, s)

	case parser.NodeFunctionExpression, parser.NodeArrowFunction, parser.NodeMethodDefinition:
		r.visitFunction(n, s)

	case parser.NodeClass, parser.NodeClassExpression:
		r.visitClass(n, s)

	case parser.NodeClassProperty:
		if n.Computed {
			r.visit(n.Key, s)
		}
		r.visit(n.Value, s)

	case parser.NodeVariableDeclaration:
		r.visitVariableDeclaration(n, s)

	case parser.NodeBlockStatement:
		r.visitList(n.Body, r.m.open(TypeBlock, n, s))

	case parser.NodeForStatement:
		inner := s
		if isLexical(n.Init) {
			inner = r.m.open(TypeFor, n, s)
		}
		r.visit(n.Init, inner)
		r.visit(n.Test, inner)
		r.visit(n.Update, inner)
		r.visitList(n.Body, inner)

	case parser.NodeForInStatement, parser.NodeForOfStatement:
		r.visitForIn(n, s)

	case parser.NodeSwitchStatement:
		r.visit(n.Test, s)
		inner := r.m.open(TypeSwitch, n, s)
		r.visitList(n.Cases, inner)

	case parser.NodeCatchClause:
		inner := r.m.open(TypeCatch, n, s)
		for _, param := range n.Params {
			r.bindPattern(param, inner, func(id *parser.Node, _ bool) {
				inner.declare(id.Name, &Definition{Type: DefCatchClause, Name: id, Node: n})
			})
		}
		r.visitList(n.Body, inner)

	case parser.NodeAssignmentExpression:
		flag := Write
		if n.Operator != "=" {
			flag = ReadWrite
		}
		r.visitTarget(n.Left, s, flag)
		r.visit(n.Right, s)

	case parser.NodeUpdateExpression:
		r.visitTarget(n.Argument, s, ReadWrite)

	case parser.NodeMemberExpression:
		r.visit(n.Object, s)
		if n.Computed {
			r.visit(n.Property, s)
		}

	case parser.NodeProperty:
		if n.Computed {
			r.visit(n.Key, s)
		}
		r.visit(n.Value, s)

	case parser.NodeLabeledStatement:
		r.visitList(n.Body, s)

	case parser.NodeImportDeclaration:
		for _, spec := range n.Specifiers {
			if spec.Local != nil {
				s.declare(spec.Local.Name, &Definition{Type: DefImportBinding, Name: spec.Local, Node: spec})
			}
		}

	default:
		for _, child := range n.ChildNodes() {
			if child == n.TypeAnnotation {
				continue
			}
			r.visit(child, s)
		}
	}
}

// visitFunction opens the function scope, binds parameters and walks the body
func (r *resolver) visitFunction(fn *parser.Node, s *Scope) {
	inner := r.m.open(TypeFunction, fn, s)

	if fn.Type == parser.NodeFunctionExpression && fn.Name != "" {
		inner.declare(fn.Name, &Definition{Type: DefFunctionName, Node: fn})
	}

	for _, param := range fn.Params {
		r.bindPattern(param, inner, func(id *parser.Node, hasDefault bool) {
			inner.declare(id.Name, &Definition{Type: DefParameter, Name: id, Node: fn})
			if hasDefault {
				r.reference(id, inner, Write, true)
			}
		})
	}

	r.visitList(fn.Body, inner)
}

// visitClass binds the class name and walks heritage and members in a class scope
func (r *resolver) visitClass(n *parser.Node, s *Scope) {
	if n.Type == parser.NodeClass && n.ID != nil {
		s.declare(n.ID.Name, &Definition{Type: DefClassName, Name: n.ID, Node: n})
	}

	inner := r.m.open(TypeClass, n, s)
	if n.Type == parser.NodeClassExpression && n.ID != nil {
		inner.declare(n.ID.Name, &Definition{Type: DefClassName, Name: n.ID, Node: n})
	}
	r.visitList(n.Children, inner)
	r.visitList(n.Body, inner)
}

// visitVariableDeclaration declares every bound name and records initializer writes
func (r *resolver) visitVariableDeclaration(n *parser.Node, s *Scope) {
	target := s
	if n.Kind == "var" {
		target = s.variableScope()
	}

	for _, decl := range n.Declarations {
		r.bindPattern(decl.ID, s, func(id *parser.Node, hasDefault bool) {
			target.declare(id.Name, &Definition{Type: DefVariable, Name: id, Node: decl, Kind: n.Kind})
			if decl.Init != nil || hasDefault {
				r.reference(id, s, Write, true)
			}
		})
		r.visit(decl.Init, s)
	}
}

// visitForIn handles both for-in and for-of loops
func (r *resolver) visitForIn(n *parser.Node, s *Scope) {
	inner := s
	if n.Kind == "let" || n.Kind == "const" {
		inner = r.m.open(TypeFor, n, s)
	}

	if n.Kind != "" {
		target := inner
		if n.Kind == "var" {
			target = s.variableScope()
		}
		r.bindPattern(n.Left, inner, func(id *parser.Node, _ bool) {
			target.declare(id.Name, &Definition{Type: DefVariable, Name: id, Node: n, Kind: n.Kind})
			r.reference(id, inner, Write, true)
		})
	} else {
		r.visitTarget(n.Left, inner, Write)
	}

	r.visit(n.Right, s)
	r.visitList(n.Body, inner)
}

// visitTarget records the identifiers written by an assignment target
func (r *resolver) visitTarget(n *parser.Node, s *Scope, flag ReferenceFlag) {
	if n == nil {
		return
	}
	if n.Type == parser.NodeIdentifier {
		r.reference(n, s, flag, false)
		return
	}
	if !n.IsPattern() {
		r.visit(n, s)
		return
	}
	r.bindPattern(n, s, func(id *parser.Node, _ bool) {
		r.reference(id, s, Write, false)
	})
}

// bindPattern calls bind for each identifier bound by pattern p. Default
// values and computed keys inside the pattern are visited as expressions.
func (r *resolver) bindPattern(p *parser.Node, s *Scope, bind func(id *parser.Node, hasDefault bool)) {
	r.bindPatternDefault(p, s, bind, false)
}

func (r *resolver) bindPatternDefault(p *parser.Node, s *Scope, bind func(id *parser.Node, hasDefault bool), hasDefault bool) {
	if p == nil {
		return
	}

	switch p.Type {
	case parser.NodeIdentifier:
		bind(p, hasDefault)
	case parser.NodeObjectPattern, parser.NodeArrayPattern:
		for _, elem := range p.Elements {
			r.bindPatternDefault(elem, s, bind, hasDefault)
		}
	case parser.NodeProperty:
		if p.Computed {
			r.visit(p.Key, s)
		}
		r.bindPatternDefault(p.Value, s, bind, hasDefault)
	case parser.NodeAssignmentPattern:
		r.bindPatternDefault(p.Left, s, bind, true)
		r.visit(p.Right, s)
	case parser.NodeRestElement:
		r.bindPatternDefault(p.Argument, s, bind, hasDefault)
	default:
		// Member expressions in destructuring assignment targets
		r.visit(p, s)
	}
}

func isLexical(n *parser.Node) bool {
	return n != nil && n.Type == parser.NodeVariableDeclaration && (n.Kind == "let" || n.Kind == "const")
}
