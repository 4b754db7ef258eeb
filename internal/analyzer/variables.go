package analyzer

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/jsplit/internal/parser"
	"github.com/ludo-technologies/jsplit/internal/scope"
)

// DeclarationKind classifies how a variable was introduced
type DeclarationKind string

// Declaration kinds
const (
	DeclConst        DeclarationKind = "const"
	DeclLet          DeclarationKind = "let"
	DeclVar          DeclarationKind = "var"
	DeclParam        DeclarationKind = "param"
	DeclDestructured DeclarationKind = "destructured"
)

// ReferenceKind classifies a variable reference
type ReferenceKind string

// Reference kinds
const (
	RefRead      ReferenceKind = "read"
	RefWrite     ReferenceKind = "write"
	RefReadWrite ReferenceKind = "read-write"
)

// VariableReference is one use of a tracked variable
type VariableReference struct {
	Line int
	Col  int
	Kind ReferenceKind
	Node *parser.Node
}

// IsRead reports whether the reference reads the variable
func (r VariableReference) IsRead() bool { return r.Kind == RefRead || r.Kind == RefReadWrite }

// IsWrite reports whether the reference writes the variable
func (r VariableReference) IsWrite() bool { return r.Kind == RefWrite || r.Kind == RefReadWrite }

// VariableInfo describes a variable declared in an analyzed function
type VariableInfo struct {
	Name            string
	DeclarationLine int
	DeclarationCol  int
	Kind            DeclarationKind
	Mutable         bool
	TypeAnnotation  string
	References      []VariableReference
	// ScopeLevel is 0 for the function scope and grows with each block scope
	ScopeLevel int
}

// ScopeProvider supplies the variables declared in a function's own scope
// and its non-function child scopes
type ScopeProvider interface {
	DeclaredVariables(fn *parser.Node) []*scope.Variable
}

// VariableTable is the set of variables tracked for one function
type VariableTable struct {
	Variables []*VariableInfo

	byIdentifier map[*parser.Node]*VariableInfo
}

// Lookup returns the variable that a declaring or referencing identifier
// belongs to, or nil
func (t *VariableTable) Lookup(id *parser.Node) *VariableInfo {
	if t == nil || id == nil {
		return nil
	}
	return t.byIdentifier[id]
}

// Len returns the number of tracked variables
func (t *VariableTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Variables)
}

// TrackVariables collects the variables of fn from the scope provider.
// A nil provider or an unknown function yields an empty table.
func TrackVariables(fn *parser.Node, provider ScopeProvider) *VariableTable {
	table := &VariableTable{byIdentifier: make(map[*parser.Node]*VariableInfo)}
	if fn == nil || provider == nil {
		return table
	}

	for _, v := range provider.DeclaredVariables(fn) {
		if len(v.Defs) == 0 {
			continue
		}
		def := v.Defs[0]
		loc := def.Location()

		info := &VariableInfo{
			Name:            v.Name,
			DeclarationLine: loc.StartLine,
			DeclarationCol:  loc.StartCol,
			Kind:            declarationKind(def),
			ScopeLevel:      scopeLevel(v.Scope),
		}
		info.Mutable = info.Kind != DeclConst
		if def.Name != nil {
			info.TypeAnnotation = RenderType(def.Name.TypeAnnotation)
			table.byIdentifier[def.Name] = info
		}

		for _, ref := range v.References {
			info.References = append(info.References, VariableReference{
				Line: ref.Identifier.Location.StartLine,
				Col:  ref.Identifier.Location.StartCol,
				Kind: referenceKind(ref),
				Node: ref.Identifier,
			})
			table.byIdentifier[ref.Identifier] = info
		}
		sort.SliceStable(info.References, func(i, j int) bool {
			a, b := info.References[i], info.References[j]
			if a.Line != b.Line {
				return a.Line < b.Line
			}
			return a.Col < b.Col
		})

		table.Variables = append(table.Variables, info)
	}

	sort.SliceStable(table.Variables, func(i, j int) bool {
		a, b := table.Variables[i], table.Variables[j]
		if a.DeclarationLine != b.DeclarationLine {
			return a.DeclarationLine < b.DeclarationLine
		}
		return a.DeclarationCol < b.DeclarationCol
	})

	return table
}

func declarationKind(def *scope.Definition) DeclarationKind {
	switch def.Type {
	case scope.DefParameter, scope.DefCatchClause:
		return DeclParam
	case scope.DefVariable:
		if inPattern(def.Name, def.Node) {
			return DeclDestructured
		}
		switch def.Kind {
		case "let":
			return DeclLet
		case "var":
			return DeclVar
		}
		return DeclConst
	default:
		return DeclConst
	}
}

// inPattern reports whether id sits inside an object or array pattern
// below the declaring construct
func inPattern(id, decl *parser.Node) bool {
	if id == nil {
		return false
	}
	for cur := id.Parent; cur != nil && cur != decl; cur = cur.Parent {
		if cur.Type == parser.NodeObjectPattern || cur.Type == parser.NodeArrayPattern {
			return true
		}
	}
	return false
}

func referenceKind(ref *scope.Reference) ReferenceKind {
	switch {
	case ref.IsReadWrite():
		return RefReadWrite
	case ref.IsWrite():
		return RefWrite
	default:
		return RefRead
	}
}

// scopeLevel counts block scopes between s and its function scope
func scopeLevel(s *scope.Scope) int {
	level := 0
	for cur := s; cur != nil && !cur.IsFunctionScope(); cur = cur.Upper {
		level++
	}
	return level
}

// RenderType renders a type annotation as readable text. Keywords and
// named references render as their names, arrays (and Array<T>) as T[],
// unions and intersections with | and &. Anything else renders as "unknown".
// A nil annotation renders as the empty string.
func RenderType(node *parser.Node) string {
	if node == nil {
		return ""
	}

	switch node.Type {
	case parser.NodeTypeReference:
		if isArrayGeneric(node) {
			return renderArrayOf(node.Children[0])
		}
		if node.Name != "" {
			return node.Name
		}
	case parser.NodeTypeKeyword:
		if node.Name != "" {
			return node.Name
		}
	case parser.NodeArrayType:
		return renderArrayOf(node.TypeAnnotation)
	case parser.NodeUnionType:
		return joinTypes(node.Children, " | ")
	case parser.NodeIntersectionType:
		return joinTypes(node.Children, " & ")
	}
	return "unknown"
}

// isArrayGeneric matches Array<T> and ReadonlyArray<T>
func isArrayGeneric(node *parser.Node) bool {
	return (node.Name == "Array" || node.Name == "ReadonlyArray") && len(node.Children) == 1
}

func renderArrayOf(elem *parser.Node) string {
	text := RenderType(elem)
	if text == "" {
		text = "unknown"
	}
	if elem != nil && (elem.Type == parser.NodeUnionType || elem.Type == parser.NodeIntersectionType) {
		text = "(" + text + ")"
	}
	return text + "[]"
}

func joinTypes(nodes []*parser.Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, RenderType(n))
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, sep)
}
