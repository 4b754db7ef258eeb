// Package scope resolves lexical scopes, variable declarations and
// identifier references over the parser tree.
package scope

import "github.com/ludo-technologies/jsplit/internal/parser"

// Type identifies the construct that opened a scope
type Type string

// Scope types
const (
	TypeGlobal   Type = "global"
	TypeModule   Type = "module"
	TypeFunction Type = "function"
	TypeBlock    Type = "block"
	TypeFor      Type = "for"
	TypeSwitch   Type = "switch"
	TypeCatch    Type = "catch"
	TypeClass    Type = "class"
)

// DefinitionType identifies the construct that declared a variable
type DefinitionType string

// Definition types
const (
	DefParameter     DefinitionType = "Parameter"
	DefCatchClause   DefinitionType = "CatchClause"
	DefVariable      DefinitionType = "Variable"
	DefImportBinding DefinitionType = "ImportBinding"
	DefClassName     DefinitionType = "ClassName"
	DefFunctionName  DefinitionType = "FunctionName"
)

// Definition is one declaration site of a variable
type Definition struct {
	Type DefinitionType
	// Name is the bound identifier. Function declarations carry no
	// identifier node, so Name is nil and Node locates the declaration.
	Name *parser.Node
	// Node is the declaring construct (declarator, function, catch clause, ...)
	Node *parser.Node
	// Kind is var, let or const for DefVariable
	Kind string
}

// Location returns the position of the declared name
func (d *Definition) Location() parser.Location {
	if d.Name != nil {
		return d.Name.Location
	}
	if d.Node != nil {
		return d.Node.Location
	}
	return parser.Location{}
}

// ReferenceFlag classifies how a reference uses its variable
type ReferenceFlag int

// Reference flags
const (
	Read      ReferenceFlag = 1
	Write     ReferenceFlag = 2
	ReadWrite ReferenceFlag = Read | Write
)

// Reference is one occurrence of an identifier in expression position
type Reference struct {
	Identifier *parser.Node
	From       *Scope
	Flag       ReferenceFlag
	// Init is set for writes performed by a declaration initializer or default value
	Init     bool
	Resolved *Variable
}

// IsRead reports whether the reference reads its variable
func (r *Reference) IsRead() bool { return r.Flag&Read != 0 }

// IsWrite reports whether the reference writes its variable
func (r *Reference) IsWrite() bool { return r.Flag&Write != 0 }

// IsReadWrite reports whether the reference both reads and writes
func (r *Reference) IsReadWrite() bool { return r.Flag == ReadWrite }

// Variable is a named binding owned by exactly one scope
type Variable struct {
	Name       string
	Scope      *Scope
	Defs       []*Definition
	References []*Reference
}

// Scope is a lexical scope
type Scope struct {
	Type      Type
	Block     *parser.Node
	Upper     *Scope
	Children  []*Scope
	Variables []*Variable

	// References lists identifiers that occur directly in this scope
	References []*Reference

	set map[string]*Variable
}

func newScope(typ Type, block *parser.Node, upper *Scope) *Scope {
	s := &Scope{
		Type:  typ,
		Block: block,
		Upper: upper,
		set:   make(map[string]*Variable),
	}
	if upper != nil {
		upper.Children = append(upper.Children, s)
	}
	return s
}

// IsFunctionScope reports whether s is a function scope
func (s *Scope) IsFunctionScope() bool {
	return s.Type == TypeFunction
}

// Variable returns the variable declared directly in s
func (s *Scope) Variable(name string) *Variable {
	return s.set[name]
}

// Lookup resolves name through s and its enclosing scopes
func (s *Scope) Lookup(name string) *Variable {
	for cur := s; cur != nil; cur = cur.Upper {
		if v, ok := cur.set[name]; ok {
			return v
		}
	}
	return nil
}

// variableScope returns the scope that receives hoisted var declarations
func (s *Scope) variableScope() *Scope {
	cur := s
	for cur.Upper != nil && cur.Type != TypeFunction && cur.Type != TypeModule && cur.Type != TypeGlobal {
		cur = cur.Upper
	}
	return cur
}

// declare adds a definition for name, creating the variable when needed
func (s *Scope) declare(name string, def *Definition) *Variable {
	v, ok := s.set[name]
	if !ok {
		v = &Variable{Name: name, Scope: s}
		s.set[name] = v
		s.Variables = append(s.Variables, v)
	}
	v.Defs = append(v.Defs, def)
	return v
}

// FunctionScope returns the nearest enclosing function scope, or nil
func (s *Scope) FunctionScope() *Scope {
	for cur := s; cur != nil; cur = cur.Upper {
		if cur.IsFunctionScope() {
			return cur
		}
	}
	return nil
}
