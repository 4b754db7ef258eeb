package analyzer

import (
	"strings"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

// IsRecursiveCall reports whether call invokes the function called name:
// name(), name.call/apply/bind(), this.name(), this[name]() or
// this.name.call/apply/bind(). Matching is by name only.
func IsRecursiveCall(call *parser.Node, name string) bool {
	if call == nil || call.Type != parser.NodeCallExpression || name == "" || IsAnonymous(name) {
		return false
	}

	callee := call.Callee
	if callee == nil {
		return false
	}
	if refersTo(callee, name) {
		return true
	}
	if callee.Type == parser.NodeMemberExpression && !callee.Computed && isBindingMethod(callee.Property) {
		return refersTo(callee.Object, name)
	}
	return false
}

// refersTo matches the bare name or a this-member access named name
func refersTo(node *parser.Node, name string) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case parser.NodeIdentifier:
		return node.Name == name
	case parser.NodeMemberExpression:
		if node.Object == nil || node.Object.Type != parser.NodeThisExpression || node.Property == nil {
			return false
		}
		prop := node.Property
		if prop.Type == parser.NodeLiteral {
			return strings.Trim(prop.Raw, `"'`+"`") == name
		}
		return prop.Name == name
	}
	return false
}

func isBindingMethod(prop *parser.Node) bool {
	if prop == nil {
		return false
	}
	switch prop.Name {
	case "call", "apply", "bind":
		return true
	}
	return false
}
