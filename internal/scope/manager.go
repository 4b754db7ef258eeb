package scope

import "github.com/ludo-technologies/jsplit/internal/parser"

// Manager holds the scope tree of one parsed file
type Manager struct {
	Global *Scope
	Scopes []*Scope

	byNode map[*parser.Node]*Scope
}

// Analyze builds the scope tree for root and resolves every reference.
// A nil root yields a manager with an empty global scope.
func Analyze(root *parser.Node) *Manager {
	m := &Manager{byNode: make(map[*parser.Node]*Scope)}
	r := &resolver{m: m}

	if root != nil && root.Type == parser.NodeProgram {
		m.Global = m.open(TypeGlobal, root, nil)
		top := m.Global
		if isModule(root) {
			top = m.open(TypeModule, root, m.Global)
		}
		r.visitList(root.Body, top)
	} else {
		m.Global = m.open(TypeGlobal, nil, nil)
		r.visit(root, m.Global)
	}
	r.close()

	return m
}

// Acquire returns the scope opened by node, or nil
func (m *Manager) Acquire(node *parser.Node) *Scope {
	if m == nil || node == nil {
		return nil
	}
	return m.byNode[node]
}

// DeclaredVariables returns the variables declared in the scope opened by
// fn and in its child scopes, without entering nested function scopes.
// Unknown nodes yield an empty slice.
func (m *Manager) DeclaredVariables(fn *parser.Node) []*Variable {
	root := m.Acquire(fn)
	if root == nil {
		return nil
	}

	var vars []*Variable
	var collect func(s *Scope)
	collect = func(s *Scope) {
		vars = append(vars, s.Variables...)
		for _, child := range s.Children {
			if child.IsFunctionScope() {
				continue
			}
			collect(child)
		}
	}
	collect(root)
	return vars
}

func (m *Manager) open(typ Type, block *parser.Node, upper *Scope) *Scope {
	s := newScope(typ, block, upper)
	m.Scopes = append(m.Scopes, s)
	if block != nil {
		if _, exists := m.byNode[block]; !exists {
			m.byNode[block] = s
		}
	}
	return s
}

// isModule reports whether the program uses import or export statements
func isModule(program *parser.Node) bool {
	for _, stmt := range program.Body {
		switch stmt.Type {
		case parser.NodeImportDeclaration, parser.NodeExportNamedDeclaration:
			return true
		}
	}
	return false
}
